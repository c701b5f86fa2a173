package game

import (
	"time"

	"github.com/tomz197/speedpong/internal/input"
)

// Tick advances the game by dt with the player's current movement intent and
// returns the cues produced, in order.
func (s *GameState) Tick(dt time.Duration, intent input.Intent) ([]Event, error) {
	if dt < 0 {
		dt = 0
	}
	switch s.Phase {
	case PhaseCountdown:
		s.tickCountdown(dt)
	case PhaseRunning:
		if err := s.tickRunning(dt, intent); err != nil {
			return s.drainEvents(), err
		}
	case PhaseWon, PhaseLost:
		s.tickOutro(dt)
	}
	return s.drainEvents(), nil
}

func (s *GameState) tickCountdown(dt time.Duration) {
	for _, step := range s.seq.Advance(dt) {
		s.emit(Event{Cue: CueCountdown, Phrase: step.Phrase})
	}
	step, ok := s.seq.Current()
	if !ok {
		s.beginPlay()
		return
	}
	s.Banner = countdownBanner(step, s.seq.Elapsed())
}

func (s *GameState) tickRunning(dt time.Duration, intent input.Intent) error {
	if s.skipTick {
		s.skipTick = false
		return nil
	}

	for n := s.timer.Advance(dt); n > 0; n-- {
		s.Seconds--
	}
	if s.Paddle != nil && s.Mirror != nil {
		s.movePaddle(intent, dt)
	}
	hits, err := s.stepPhysics(dt)
	if err != nil {
		return err
	}
	s.applyContacts(hits)
	s.checkStatus()
	return nil
}

func (s *GameState) tickOutro(dt time.Duration) {
	s.seq.Advance(dt)
	if s.seq.Done() {
		s.startRound()
		return
	}
	s.Banner = outroBanner(s.Phase, s.seq)
}
