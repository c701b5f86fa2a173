package main

import (
	"errors"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/tomz197/speedpong/internal/audio"
	"github.com/tomz197/speedpong/internal/config"
)

func main() {
	logger := config.NewLogger(os.Stderr, "desktop")

	var player audio.Player = audio.Nop{}
	if !config.GetEnvBool("SPEEDPONG_MUTE", false) {
		sm := audio.NewSoundManager()
		if err := sm.Initialize(); err != nil {
			logger.Warn("audio unavailable, playing silently", "err", err)
		} else {
			defer sm.Cleanup()
			player = sm
		}
	}

	ebiten.SetWindowSize(screenWidth, screenHeight)
	ebiten.SetWindowTitle("Speed Pong")
	ebiten.SetTPS(config.ClientTargetFPS)

	g := newGame(player, logger)
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		logger.Error("game error", "err", err)
		os.Exit(1)
	}
}
