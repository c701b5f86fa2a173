package game

import (
	"math/rand/v2"
	"time"

	"github.com/tomz197/speedpong/internal/config"
	"github.com/tomz197/speedpong/internal/object"
)

func countdownSteps() []Step {
	return []Step{
		{Label: "3", Phrase: "3", Duration: config.CountdownStep},
		{Label: "2", Phrase: "2", Duration: config.CountdownStep},
		{Label: "1", Phrase: "1", Duration: config.CountdownStep},
		{Label: "GO!", Phrase: "Go!", Duration: config.CountdownStep},
	}
}

// startRound resets the round counters and begins the countdown.
func (s *GameState) startRound() {
	s.Phase = PhaseCountdown
	s.Running = false
	s.Ball = nil
	s.Score = 0
	s.Seconds = config.InitialSeconds
	s.LoopCount = 0
	s.milestone = 0
	s.warned = false
	s.timer.Stop()
	s.contacts.reset()

	s.Paddle.Y = config.ArenaHeight/2 - s.Paddle.H/2
	s.Mirror.Y = config.ArenaHeight/2 - s.Mirror.H/2
	s.EntryY = DrawEntryY(s.rng)

	s.seq = NewSequence(countdownSteps()...)
	first, _ := s.seq.Current()
	s.emit(Event{Cue: CueCountdown, Phrase: first.Phrase})
	s.Banner = countdownBanner(first, 0)
}

// beginPlay spawns the ball and starts the clock once the countdown is over.
func (s *GameState) beginPlay() {
	s.Phase = PhaseRunning
	s.Running = true
	s.Ball = object.NewBall(config.WallThickness+config.BallRadius, s.EntryY)
	s.Banner = Banner{}
	s.contacts.reset()
	s.timer.Start()
	s.skipTick = true
}

// DrawEntryY picks the ball's entry height: a multiple of EntryStep outside the
// separator band and clear of the top and bottom walls.
func DrawEntryY(rng *rand.Rand) float64 {
	const (
		lo = config.WallThickness + config.BallRadius
		hi = config.ArenaHeight - lo
	)
	for {
		y := float64(rng.IntN(config.EntrySlots+1) * config.EntryStep)
		if y >= config.EntryBandMin && y <= config.EntryBandMax {
			continue
		}
		if y < lo || y > hi {
			continue
		}
		return y
	}
}

func countdownBanner(step Step, elapsed time.Duration) Banner {
	half := step.Duration / 2
	alpha := 1.0
	if half > 0 {
		if elapsed < half {
			alpha = float64(elapsed) / float64(half)
		} else {
			alpha = 1 - float64(elapsed-half)/float64(half)
		}
	}
	return Banner{Text: step.Label, Scale: 1, Alpha: clamp01(alpha)}
}

func clamp01(v float64) float64 {
	return min(max(v, 0), 1)
}
