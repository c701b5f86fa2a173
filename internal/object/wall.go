package object

import (
	"github.com/tomz197/speedpong/internal/config"
	"github.com/tomz197/speedpong/internal/draw"
	"github.com/tomz197/speedpong/internal/physics"
)

// WallSide identifies one of the arena walls.
type WallSide int

const (
	WallLeft WallSide = iota
	WallTop
	WallBottom
)

func (s WallSide) String() string {
	switch s {
	case WallLeft:
		return "left"
	case WallTop:
		return "top"
	default:
		return "bottom"
	}
}

// Wall is a static arena boundary.
type Wall struct {
	Side WallSide
	Rect physics.Rect
}

// NewWalls creates the left, top and bottom walls. The right side is open.
func NewWalls() []*Wall {
	const t = config.WallThickness
	return []*Wall{
		{Side: WallTop, Rect: physics.Rect{X: 0, Y: config.ArenaHeight - t, W: config.ArenaWidth, H: t}},
		{Side: WallBottom, Rect: physics.Rect{X: 0, Y: 0, W: config.ArenaWidth, H: t}},
		{Side: WallLeft, Rect: physics.Rect{X: 0, Y: 0, W: t, H: config.ArenaHeight}},
	}
}

// Draw renders the wall.
func (w *Wall) Draw(ctx DrawContext) error {
	fillRect(ctx.Canvas, w.Rect, draw.ColorWall)
	return nil
}

// Separator marks the vertical midpoint. It has no physics.
type Separator struct {
	Rect physics.Rect
}

// NewSeparator creates the midpoint strip between the left wall and the open side.
func NewSeparator() *Separator {
	return &Separator{Rect: physics.Rect{
		X: config.BallRadius,
		Y: config.ArenaHeight/2 - config.SeparatorSize/2,
		W: config.ArenaWidth - config.BallRadius,
		H: config.SeparatorSize,
	}}
}

// Draw renders the separator as a dashed line.
func (s *Separator) Draw(ctx DrawContext) error {
	const dash = 40.0
	y := config.ArenaHeight - (s.Rect.Y + s.Rect.H/2)
	for x := s.Rect.X; x < s.Rect.MaxX(); x += 2 * dash {
		end := x + dash
		if end > s.Rect.MaxX() {
			end = s.Rect.MaxX()
		}
		ctx.Canvas.DrawLine(draw.Point{X: x, Y: y}, draw.Point{X: end, Y: y}, draw.ColorSeparator)
	}
	return nil
}
