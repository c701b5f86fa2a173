// Package object holds the arena bodies and visual effects, and knows how to draw them.
package object

import (
	"github.com/tomz197/speedpong/internal/config"
	"github.com/tomz197/speedpong/internal/draw"
	"github.com/tomz197/speedpong/internal/physics"
)

// DrawContext provides drawing resources for objects.
type DrawContext struct {
	Canvas *draw.Canvas      // Half-block canvas in arena units
	Writer *draw.ChunkWriter // Text overlay, 1-based render-area coordinates
}

// Object is anything that can draw itself.
type Object interface {
	Draw(ctx DrawContext) error
}

// Spawner accepts particles created by effects.
type Spawner interface {
	Spawn(p *Particle)
}

// ToCanvas converts an arena position (y up) to canvas space (y down).
func ToCanvas(p physics.Vec) draw.Point {
	return draw.Point{X: p.X, Y: config.ArenaHeight - p.Y}
}

// FromCanvas converts a canvas position back to arena space.
func FromCanvas(p draw.Point) physics.Vec {
	return physics.Vec{X: p.X, Y: config.ArenaHeight - p.Y}
}

// fillRect draws an arena rectangle.
func fillRect(c *draw.Canvas, r physics.Rect, color draw.Color) {
	c.FillRect(r.X, config.ArenaHeight-r.MaxY(), r.MaxX(), config.ArenaHeight-r.Y, color)
}
