package game

import (
	"math/rand/v2"
	"time"

	"github.com/tomz197/speedpong/internal/config"
	"github.com/tomz197/speedpong/internal/draw"
	"github.com/tomz197/speedpong/internal/object"
)

// Phase is the round state machine position.
type Phase int

const (
	PhaseCountdown Phase = iota
	PhaseRunning
	PhaseWon
	PhaseLost
)

func (p Phase) String() string {
	switch p {
	case PhaseCountdown:
		return "countdown"
	case PhaseRunning:
		return "running"
	case PhaseWon:
		return "won"
	case PhaseLost:
		return "lost"
	default:
		return "unknown"
	}
}

// Banner is the centred overlay text shown during the countdown and the outros.
type Banner struct {
	Text     string
	Scale    float64
	Alpha    float64 // 0 transparent, 1 opaque
	Rotation float64 // Radians
}

// Visible reports whether the banner should be drawn at all.
func (b Banner) Visible() bool {
	return b.Text != "" && b.Alpha > 0 && b.Scale > 0
}

// Options configures a new game.
type Options struct {
	// Rand drives the entry position draw. A time-seeded source is used when nil.
	Rand *rand.Rand
}

// GameState is the whole single-player game. It is not safe for concurrent use;
// one host loop owns it and reads its fields between ticks.
type GameState struct {
	Phase     Phase
	Running   bool
	Score     int
	HighScore int
	Seconds   int
	LoopCount int
	EntryY    float64

	Ball      *object.Ball // nil unless Running
	Paddle    *object.Paddle
	Mirror    *object.Paddle
	Walls     []*object.Wall
	Separator *object.Separator

	Banner Banner

	seq       *Sequence
	timer     Ticker
	contacts  contactTracker
	skipTick  bool
	warned    bool
	milestone int
	events    []Event
	rng       *rand.Rand
}

// New creates a game and starts the first round's countdown.
func New(opts Options) *GameState {
	rng := opts.Rand
	if rng == nil {
		seed := uint64(time.Now().UnixNano())
		rng = rand.New(rand.NewPCG(seed, seed>>17))
	}

	s := &GameState{
		Paddle: object.NewPaddle(
			config.ArenaWidth-config.BallRadius, 0,
			config.PaddleWidth, config.PaddleHeight,
			draw.ColorPaddle,
		),
		Mirror: object.NewPaddle(
			0, 0,
			config.PaddleWidth, config.MirrorHeight,
			draw.ColorMirror,
		),
		Walls:     object.NewWalls(),
		Separator: object.NewSeparator(),
		timer:     NewTicker(config.TimerPeriod),
		contacts:  newContactTracker(),
		rng:       rng,
	}
	s.startRound()
	return s
}

// drainEvents returns the queued cues and clears the queue.
func (s *GameState) drainEvents() []Event {
	ev := s.events
	s.events = nil
	return ev
}
