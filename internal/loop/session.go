package loop

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/speedpong/internal/audio"
	"github.com/tomz197/speedpong/internal/config"
	"github.com/tomz197/speedpong/internal/draw"
	"github.com/tomz197/speedpong/internal/game"
	"github.com/tomz197/speedpong/internal/input"
	"github.com/tomz197/speedpong/internal/object"
)

const sparksPerHit = 14

// Session owns one game and renders it to one terminal.
type Session struct {
	game         *game.GameState
	controller   *input.Controller
	state        *ViewState
	canvas       *draw.Canvas
	chunkWriter  *draw.ChunkWriter // Accumulates the frame for chunked output
	inputStream  *input.Stream
	termSizeFunc draw.TermSizeFunc
	player       audio.Player
	logger       *log.Logger
	idleTimeout  bool
}

// Options configures a session.
type Options struct {
	TermSizeFunc draw.TermSizeFunc
	Player       audio.Player // Silent when nil
	Logger       *log.Logger  // Discards when nil
	IdleTimeout  bool         // Warn, then disconnect inactive players
	Rand         *rand.Rand   // Entry position source; time-seeded when nil
}

// NewSession creates a session reading input from r and drawing to w.
func NewSession(r *bufio.Reader, w io.Writer, opts Options) *Session {
	termSizeFunc := opts.TermSizeFunc
	if termSizeFunc == nil {
		termSizeFunc = draw.DefaultTermSizeFunc
	}
	player := opts.Player
	if player == nil {
		player = audio.Nop{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	termWidth, termHeight, _ := termSizeFunc()
	renderWidth, renderHeight, offsetCol, offsetRow := fitArena(termWidth, termHeight)
	canvas := draw.NewScaledCanvas(renderWidth, renderHeight, config.ArenaWidth, config.ArenaHeight)
	canvas.SetOffset(offsetCol, offsetRow)

	return &Session{
		game:         game.New(game.Options{Rand: opts.Rand}),
		controller:   input.NewController(config.ArenaHeight / 2),
		state:        NewViewState(),
		canvas:       canvas,
		chunkWriter:  draw.NewChunkWriter(w, offsetCol, offsetRow),
		inputStream:  input.StartStream(r),
		termSizeFunc: termSizeFunc,
		player:       player,
		logger:       logger,
		idleTimeout:  opts.IdleTimeout,
	}
}

// Run starts the session loop. Blocks until the player quits, input ends or ctx is done.
func (s *Session) Run(ctx context.Context) error {
	s.chunkWriter.SetModes(draw.ModeHiddenCursor | draw.ModeMouse)
	s.chunkWriter.ClearScreen()
	defer s.restoreTerminal()

	lastTime := time.Now()

	for s.state.Running {
		if ctx.Err() != nil {
			break
		}

		frameStart := time.Now()
		s.state.delta = frameStart.Sub(lastTime)
		lastTime = frameStart

		// Process input
		s.processInput()

		// Handle screen resize
		s.updateScreen()

		// Advance the game
		events, err := s.game.Tick(s.state.delta, s.controller.Intent())
		if err != nil {
			return fmt.Errorf("session tick: %w", err)
		}
		s.handleEvents(events)
		s.state.updateSparks(s.state.delta.Seconds())

		// Draw frame
		if err := s.drawFrame(); err != nil {
			return err
		}

		// Frame timing
		elapsed := time.Since(frameStart)
		if elapsed < config.ClientTargetFrameTime {
			time.Sleep(config.ClientTargetFrameTime - elapsed)
		}
	}

	return nil
}

// restoreTerminal switches the session's terminal modes off and clears the screen.
func (s *Session) restoreTerminal() {
	s.chunkWriter.SetModes(0)
	s.chunkWriter.ClearScreen()
	if err := s.chunkWriter.Flush(); err != nil {
		s.logger.Debug("restore terminal", "err", err)
	}
}

// processInput reads pending input and feeds the controller.
func (s *Session) processInput() {
	s.state.Input = input.ReadInput(s.inputStream)
	in := s.state.Input

	if s.idleTimeout {
		switch idle := time.Since(s.state.lastInput).Seconds(); {
		case len(in.Pressed) > 0:
			s.state.lastInput = time.Now()
			s.state.isInactive = false
		case idle > config.InactivityDisconnectUser:
			s.logger.Info("disconnecting inactive player", "idle", time.Duration(idle*float64(time.Second)).Round(time.Second))
			s.state.Running = false
		case idle > config.InactivityWarnUser:
			s.state.isInactive = true
		}
	}

	if in.Quit {
		s.state.Running = false
	}

	s.controller.SetKeys(in.Up, in.Down)
	for _, ev := range in.Pointer {
		s.applyPointer(ev)
	}
}

// applyPointer maps a terminal mouse event into arena space for the controller.
func (s *Session) applyPointer(ev input.PointerEvent) {
	if ev.Kind == input.PointerRelease {
		s.controller.PointerUp()
		return
	}
	x, y, ok := s.canvas.TerminalToLogical(ev.Col, ev.Row)
	if !ok {
		return
	}
	p := object.FromCanvas(draw.Point{X: x, Y: y})
	if ev.Kind == input.PointerPress {
		s.controller.PointerDown(p.X, p.Y)
	} else {
		s.controller.PointerMove(p.X, p.Y)
	}
}

// handleEvents plays cues and spawns hit effects.
func (s *Session) handleEvents(events []game.Event) {
	for _, ev := range events {
		s.player.Play(ev)

		switch ev.Cue {
		case game.CuePaddleHit:
			if s.game.Ball != nil {
				object.SpawnSparks(s.game.Ball.Pos, -1, sparksPerHit, draw.ColorSpark, s.state)
			}
		case game.CueMirrorHit:
			if s.game.Ball != nil {
				object.SpawnSparks(s.game.Ball.Pos, 1, sparksPerHit, draw.ColorMirror, s.state)
			}
		case game.CueLevelCleared:
			s.logger.Debug("level cleared", "level", s.game.LoopCount, "score", s.game.Score, "seconds", s.game.Seconds)
		case game.CueWin, game.CueGameOver:
			s.logger.Debug("round over",
				"result", ev.Cue,
				"score", s.game.Score,
				"highScore", s.game.HighScore,
				"level", s.game.LoopCount,
			)
		case game.CueCountdown:
			if ev.Phrase == "3" {
				input.ResetKeyInput(s.inputStream)
			}
		}
	}
}

// updateScreen handles terminal resize, fitting the arena into the render area.
// On actual size changes, clears the terminal to remove residual pixels
// outside the new canvas area (e.g. old borders or offset content).
func (s *Session) updateScreen() {
	termWidth, termHeight, err := s.termSizeFunc()
	if err != nil {
		return
	}
	renderWidth, renderHeight, offsetCol, offsetRow := fitArena(termWidth, termHeight)

	if renderWidth != s.canvas.TerminalWidth() || renderHeight != s.canvas.TerminalHeight() ||
		offsetCol != s.canvas.OffsetCol() || offsetRow != s.canvas.OffsetRow() {
		s.chunkWriter.ClearScreen()
		s.canvas.ForceRedraw()
	}

	s.canvas.Resize(renderWidth, renderHeight)
	s.canvas.SetOffset(offsetCol, offsetRow)
	s.chunkWriter.SetOffset(offsetCol, offsetRow)
}

// fitArena picks the largest render area within the terminal (and the max render
// resolution) that keeps the arena's 2:3 shape with square half-block pixels, and
// computes the centering offset for it.
func fitArena(termWidth, termHeight int) (renderWidth, renderHeight, offsetCol, offsetRow int) {
	availWidth := min(termWidth, config.MaxTermWidth)
	availHeight := min(termHeight, config.MaxTermHeight)

	// Each row holds two pixels: width/(2*height) = 800/1200.
	renderHeight = availHeight
	renderWidth = renderHeight * 4 / 3
	if renderWidth > availWidth {
		renderWidth = availWidth
		renderHeight = renderWidth * 3 / 4
	}
	renderWidth = max(renderWidth, 1)
	renderHeight = max(renderHeight, 1)

	offsetCol = max((termWidth-renderWidth)/2, 0)
	offsetRow = max((termHeight-renderHeight)/2, 0)
	return
}
