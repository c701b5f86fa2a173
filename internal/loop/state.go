package loop

import (
	"time"

	"github.com/tomz197/speedpong/internal/game"
	"github.com/tomz197/speedpong/internal/input"
	"github.com/tomz197/speedpong/internal/object"
)

// ViewState holds per-session presentation state. The game itself lives in game.GameState.
type ViewState struct {
	Input       input.Input
	Running     bool          // Session loop running
	delta       time.Duration // Frame delta time
	prevPhase   game.Phase    // Phase drawn last frame
	isInactive  bool          // Showing the inactivity warning
	wasInactive bool
	lastInput   time.Time
	sparks      []*object.Particle
	pending     []*object.Particle // Spawned during the current update
}

// NewViewState creates a new initialized view state.
func NewViewState() *ViewState {
	return &ViewState{
		Running:   true,
		prevPhase: -1,
		lastInput: time.Now(),
	}
}

// Spawn queues a particle to be added after the current update.
// Implements object.Spawner.
func (v *ViewState) Spawn(p *object.Particle) {
	v.pending = append(v.pending, p)
}

// updateSparks advances live particles, releasing expired ones, then adds the queued ones.
func (v *ViewState) updateSparks(dt float64) {
	kept := v.sparks[:0]
	for _, p := range v.sparks {
		if p.Update(dt) {
			p.Release()
			continue
		}
		kept = append(kept, p)
	}
	v.sparks = append(kept, v.pending...)
	v.pending = v.pending[:0]
}
