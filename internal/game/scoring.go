package game

import (
	"math"
	"time"

	"github.com/tomz197/speedpong/internal/config"
	"github.com/tomz197/speedpong/internal/input"
)

// movePaddle shifts the paddle by the intent and moves the mirror by the same applied delta.
func (s *GameState) movePaddle(intent input.Intent, dt time.Duration) {
	var dir float64
	switch intent {
	case input.IntentUp:
		dir = 1
	case input.IntentDown:
		dir = -1
	default:
		return
	}
	applied := s.Paddle.Shift(dir*config.PaddleSpeed*dt.Seconds(), 0, config.ArenaHeight-s.Paddle.H)
	s.Mirror.Y += applied
}

// applyContacts turns contact events into score and time changes.
func (s *GameState) applyContacts(hits []BodyKind) {
	for _, k := range hits {
		switch k {
		case BodyPaddle:
			s.Score++
			s.emit(newEvent(CuePaddleHit))
		case BodyMirror:
			s.Seconds -= config.MirrorPenaltySeconds
			s.emit(newEvent(CueMirrorHit))
		}
	}
}

// checkStatus runs the per-tick warning, round end and milestone checks.
func (s *GameState) checkStatus() {
	if s.Seconds == config.WarningSeconds {
		if !s.warned {
			s.warned = true
			s.emit(newEvent(CueTimeWarning))
		}
	} else {
		s.warned = false
	}

	if s.Ball.Pos.X > config.ArenaWidth-config.BallRadius || s.Score < 0 || s.Seconds < 0 {
		s.endRound()
		return
	}

	if s.Score > 0 && s.Score%config.MilestoneEvery == 0 && s.Score != s.milestone {
		s.levelUp()
	}
}

// levelUp awards the milestone bonus and raises the difficulty.
func (s *GameState) levelUp() {
	s.milestone = s.Score
	s.Score += milestoneBonus(s.Seconds)
	s.LoopCount++
	s.Seconds = config.InitialSeconds - config.LevelSecondsStep*s.LoopCount
	s.emit(newEvent(CueLevelCleared))
}

func milestoneBonus(seconds int) int {
	switch {
	case seconds >= 10:
		return 3
	case seconds >= 5:
		return 2
	default:
		return 1
	}
}

// endRound removes the ball, stops the clock and starts the outro.
func (s *GameState) endRound() {
	s.Running = false
	s.Ball = nil
	s.timer.Stop()
	s.contacts.reset()

	if s.Score > s.HighScore {
		s.HighScore = s.Score
		s.Phase = PhaseWon
		s.seq = NewSequence(Step{Label: "Congrats, Top Scorer!", Duration: config.WinOutro})
		s.emit(newEvent(CueWin))
	} else {
		s.Phase = PhaseLost
		s.seq = NewSequence(Step{Label: "Game Over", Duration: config.LoseOutro})
		s.emit(newEvent(CueGameOver))
	}
	s.Banner = outroBanner(s.Phase, s.seq)
}

func outroBanner(phase Phase, seq *Sequence) Banner {
	step, ok := seq.Current()
	if !ok {
		return Banner{}
	}
	t := seq.Elapsed().Seconds()
	if phase == PhaseWon {
		grow := min(t/config.WinScaleDuration.Seconds(), 1)
		return Banner{
			Text:  step.Label,
			Scale: 1 + (config.WinScaleBy-1)*grow,
			Alpha: clamp01(1 - t/config.WinOutro.Seconds()),
		}
	}
	spins := min(t/config.LoseSpinDuration.Seconds(), config.LoseSpins)
	return Banner{
		Text:     step.Label,
		Scale:    clamp01(1 - t/config.LoseOutro.Seconds()),
		Alpha:    1,
		Rotation: math.Pi * spins,
	}
}
