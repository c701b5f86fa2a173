package object

import (
	"github.com/tomz197/speedpong/internal/config"
	"github.com/tomz197/speedpong/internal/draw"
	"github.com/tomz197/speedpong/internal/physics"
)

// Ball is the only dynamic body: perfectly elastic, no gravity, no damping.
type Ball struct {
	Pos    physics.Vec
	Vel    physics.Vec
	Radius float64
}

// NewBall creates a ball at (x, y) with the launch velocity.
func NewBall(x, y float64) *Ball {
	return &Ball{
		Pos:    physics.Vec{X: x, Y: y},
		Vel:    physics.Vec{X: config.BallLaunchSpeed, Y: config.BallLaunchSpeed},
		Radius: config.BallRadius,
	}
}

// Advance integrates the position over dt seconds.
func (b *Ball) Advance(dt float64) {
	b.Pos = b.Pos.Add(b.Vel.Scale(dt))
}

// ApplyImpulse adds an impulse, expressed in impulse units, to the velocity.
func (b *Ball) ApplyImpulse(ix, iy float64) {
	b.Vel = b.Vel.Add(physics.Vec{X: ix, Y: iy}.Scale(config.ImpulseUnit))
}

// Draw renders the ball as a filled circle.
func (b *Ball) Draw(ctx DrawContext) error {
	p := ToCanvas(b.Pos)
	ctx.Canvas.FillCircle(p.X, p.Y, b.Radius, draw.ColorBall)
	return nil
}
