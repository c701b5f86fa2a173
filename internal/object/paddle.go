package object

import (
	"github.com/tomz197/speedpong/internal/draw"
	"github.com/tomz197/speedpong/internal/physics"
)

// Paddle is a static-in-x bar that only moves vertically. Both the player paddle
// and the mirror obstacle are paddles.
type Paddle struct {
	X, Y  float64 // Bottom-left corner
	W, H  float64
	Color draw.Color
}

// NewPaddle creates a paddle with its bottom-left corner at (x, y).
func NewPaddle(x, y, w, h float64, color draw.Color) *Paddle {
	return &Paddle{X: x, Y: y, W: w, H: h, Color: color}
}

// Rect returns the collision rectangle.
func (p *Paddle) Rect() physics.Rect {
	return physics.Rect{X: p.X, Y: p.Y, W: p.W, H: p.H}
}

// Shift moves the paddle by dy, keeping Y within [minY, maxY].
// It returns the distance actually moved.
func (p *Paddle) Shift(dy, minY, maxY float64) float64 {
	target := p.Y + dy
	if target < minY {
		target = minY
	}
	if target > maxY {
		target = maxY
	}
	applied := target - p.Y
	p.Y = target
	return applied
}

// Draw renders the paddle.
func (p *Paddle) Draw(ctx DrawContext) error {
	fillRect(ctx.Canvas, p.Rect(), p.Color)
	return nil
}
