package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/tomz197/speedpong/internal/audio"
	"github.com/tomz197/speedpong/internal/config"
	"github.com/tomz197/speedpong/internal/loop"
)

func main() {
	logger, closeLog, err := newLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open log file: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	player := newPlayer(logger)
	if sm, ok := player.(*audio.SoundManager); ok {
		defer sm.Cleanup()
	}

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to enable raw mode: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer stop()

	logger.Info("game started")
	reader := bufio.NewReader(os.Stdin)
	err = loop.Run(ctx, reader, os.Stdout, loop.Options{
		Player: player,
		Logger: logger,
	})
	if err != nil {
		logger.Error("game error", "err", err)
		_ = term.Restore(fd, oldState)
		fmt.Fprintf(os.Stderr, "game error: %v\n", err)
		os.Exit(1)
	}
	logger.Info("game ended")
}

// newLogger logs to SPEEDPONG_LOG_FILE when set. The terminal itself is in raw
// mode and owned by the game, so without a file logs are discarded.
func newLogger() (*log.Logger, func(), error) {
	path := config.GetEnv("SPEEDPONG_LOG_FILE", "")
	if path == "" {
		return config.NewLogger(io.Discard, "game"), func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, err
	}
	return config.NewLogger(f, "game"), func() { _ = f.Close() }, nil
}

// newPlayer returns the speaker-backed player, or a silent one when muted or
// when no audio device is available.
func newPlayer(logger *log.Logger) audio.Player {
	if config.GetEnvBool("SPEEDPONG_MUTE", false) {
		return audio.Nop{}
	}
	sm := audio.NewSoundManager()
	if err := sm.Initialize(); err != nil {
		logger.Warn("audio unavailable, playing silently", "err", err)
		return audio.Nop{}
	}
	return sm
}
