package game

import (
	"fmt"
	"math"
	"time"

	"github.com/tomz197/speedpong/internal/config"
	"github.com/tomz197/speedpong/internal/physics"
)

// BodyKind categorizes what the ball touched.
type BodyKind int

const (
	BodyPaddle BodyKind = iota
	BodyMirror
	BodyWall
)

func (k BodyKind) String() string {
	switch k {
	case BodyPaddle:
		return "paddle"
	case BodyMirror:
		return "mirror"
	default:
		return "wall"
	}
}

type body struct {
	id   int
	kind BodyKind
	rect physics.Rect
}

// contactTracker remembers which bodies are touching the ball so only the
// beginning of a contact is reported.
type contactTracker struct {
	active map[int]bool
}

func newContactTracker() contactTracker {
	return contactTracker{active: make(map[int]bool)}
}

// begin marks id as touching and reports whether the contact is new.
func (t *contactTracker) begin(id int) bool {
	if t.active[id] {
		return false
	}
	t.active[id] = true
	return true
}

func (t *contactTracker) end(id int) {
	delete(t.active, id)
}

func (t *contactTracker) reset() {
	clear(t.active)
}

// bodies lists the static bodies in contact priority order.
func (s *GameState) bodies() []body {
	out := make([]body, 0, 2+len(s.Walls))
	out = append(out,
		body{id: 0, kind: BodyPaddle, rect: s.Paddle.Rect()},
		body{id: 1, kind: BodyMirror, rect: s.Mirror.Rect()},
	)
	for i, w := range s.Walls {
		out = append(out, body{id: 2 + i, kind: BodyWall, rect: w.Rect})
	}
	return out
}

// stepPhysics advances the ball over dt in bounded sub-steps and returns the
// contacts that began, one per physical contact.
func (s *GameState) stepPhysics(dt time.Duration) ([]BodyKind, error) {
	if s.Ball == nil || s.Paddle == nil || s.Mirror == nil {
		return nil, fmt.Errorf("step physics: %w", ErrRoundNotInitialized)
	}

	steps := int(math.Ceil(float64(dt) / float64(config.MaxPhysicsStep)))
	steps = min(max(steps, 1), config.MaxPhysicsSubstep)
	h := dt.Seconds() / float64(steps)

	bodies := s.bodies()
	var hits []BodyKind
	for range steps {
		s.Ball.Advance(h)
		if kind, ok := s.resolveContacts(bodies); ok {
			hits = append(hits, kind)
		}
	}
	return hits, nil
}

// resolveContacts pushes the ball out of every overlapping body and reflects it.
// Only the highest-priority newly begun contact is reported and gets an impulse.
func (s *GameState) resolveContacts(bodies []body) (BodyKind, bool) {
	var (
		fired BodyKind
		found bool
	)
	for _, b := range bodies {
		c, ok := physics.CircleRect(s.Ball.Pos, s.Ball.Radius, b.rect)
		if !ok {
			s.contacts.end(b.id)
			continue
		}
		s.Ball.Pos = s.Ball.Pos.Add(c.Normal.Scale(c.Penetration))
		s.Ball.Vel = physics.Reflect(s.Ball.Vel, c.Normal)
		if s.contacts.begin(b.id) && !found {
			fired, found = b.kind, true
		}
	}
	if found {
		s.applyImpulse(fired)
	}
	return fired, found
}

// applyImpulse adds the level-scaled kick for a contact with kind.
func (s *GameState) applyImpulse(kind BodyKind) {
	ix := float64(config.ImpulseBaseX + s.LoopCount*config.ImpulseStep)
	iy := float64(config.ImpulseBaseY + s.LoopCount*config.ImpulseStep)
	v := s.Ball.Vel
	switch kind {
	case BodyPaddle, BodyMirror:
		// Corner contacts can leave vx pointing into the paddle; kick along it.
		s.Ball.ApplyImpulse(physics.Sign(v.X)*ix/2, 0)
	case BodyWall:
		s.Ball.ApplyImpulse(physics.Sign(v.X)*ix, physics.Sign(v.Y)*iy)
	}
}
