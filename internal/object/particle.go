package object

import (
	"math"
	"math/rand/v2"
	"sync"

	"github.com/tomz197/speedpong/internal/draw"
	"github.com/tomz197/speedpong/internal/physics"
)

// particlePool is a sync.Pool for reusing Particle objects to reduce allocations.
var particlePool = sync.Pool{
	New: func() any {
		return &Particle{}
	},
}

// Particle is a short-lived spark drawn where the ball strikes a paddle.
type Particle struct {
	Pos         physics.Vec // Arena position
	Vel         physics.Vec
	Lifetime    float64 // Seconds remaining
	MaxLifetime float64
	Drag        float64 // Velocity kept per 1/60 s
	Color       draw.Color
}

// NewParticle creates a single particle from the pool.
func NewParticle(pos, vel physics.Vec, lifetime float64, color draw.Color) *Particle {
	p := particlePool.Get().(*Particle)
	p.Pos = pos
	p.Vel = vel
	p.Lifetime = lifetime
	p.MaxLifetime = lifetime
	p.Drag = 0.92
	p.Color = color
	return p
}

// Release returns the particle to the pool for reuse.
func (p *Particle) Release() {
	particlePool.Put(p)
}

// SpawnSparks bursts count particles from pos into the half-plane facing dirX
// (negative: sparks fly left).
func SpawnSparks(pos physics.Vec, dirX float64, count int, color draw.Color, spawner Spawner) {
	if spawner == nil {
		return
	}
	base := 0.0
	if dirX < 0 {
		base = math.Pi
	}
	for i := 0; i < count; i++ {
		angle := base + (rand.Float64()-0.5)*math.Pi*0.9
		speed := 250 + rand.Float64()*350
		life := 0.2 + rand.Float64()*0.25
		vel := physics.Vec{X: math.Cos(angle) * speed, Y: math.Sin(angle) * speed}
		spawner.Spawn(NewParticle(pos, vel, life, color))
	}
}

// Update moves the particle. It returns true once the particle has expired.
func (p *Particle) Update(dt float64) bool {
	p.Lifetime -= dt
	if p.Lifetime <= 0 {
		return true
	}

	drag := math.Pow(p.Drag, dt*60)
	p.Vel = p.Vel.Scale(drag)
	p.Pos = p.Pos.Add(p.Vel.Scale(dt))
	return false
}

// Draw renders the particle as a single pixel, skipping the faded tail of its life.
func (p *Particle) Draw(ctx DrawContext) error {
	if p.MaxLifetime > 0 && p.Lifetime/p.MaxLifetime < 0.25 {
		return nil
	}
	pt := ToCanvas(p.Pos)
	ctx.Canvas.SetFloat(pt.X, pt.Y, p.Color)
	return nil
}
