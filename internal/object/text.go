package object

import (
	"fmt"
	"unicode/utf8"

	"github.com/tomz197/speedpong/internal/draw"
)

// Align controls how a Text is positioned relative to its X coordinate.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// Text is a HUD label in 1-based render-area cells.
type Text struct {
	X     int
	Y     int
	Value string
	Align Align
	Color draw.Color // Terminal default when ColorNone
	Bold  bool
}

// Draw writes the text through the overlay writer.
func (t Text) Draw(ctx DrawContext) error {
	if t.Value == "" || ctx.Writer == nil {
		return nil
	}
	x := t.X
	switch t.Align {
	case AlignCenter:
		x -= utf8.RuneCountInString(t.Value) / 2
	case AlignRight:
		x -= utf8.RuneCountInString(t.Value) - 1
	}
	if x < 1 {
		x = 1
	}
	y := t.Y
	if y < 1 {
		y = 1
	}
	if t.Color == draw.ColorNone && !t.Bold {
		ctx.Writer.WriteAt(x, y, t.Value)
	} else {
		ctx.Writer.MoveCursor(x, y)
		if t.Bold {
			ctx.Writer.WriteString("\033[1m")
		}
		if t.Color != draw.ColorNone {
			ctx.Writer.WriteString(fmt.Sprintf("\033[38;5;%dm", t.Color))
		}
		ctx.Writer.WriteString(t.Value)
		ctx.Writer.WriteString("\033[0m")
	}
	if ctx.Canvas != nil {
		ctx.Canvas.MarkTextDirty(x, y, utf8.RuneCountInString(t.Value))
	}
	return nil
}
