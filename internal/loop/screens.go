package loop

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/tomz197/speedpong/internal/config"
	"github.com/tomz197/speedpong/internal/draw"
	"github.com/tomz197/speedpong/internal/game"
	"github.com/tomz197/speedpong/internal/object"
)

// drawFrame draws the current frame.
func (s *Session) drawFrame() error {
	// On phase or inactivity transitions, do a full terminal clear
	// so UI elements from the previous screen don't persist.
	phaseChanged := s.game.Phase != s.state.prevPhase
	inactiveChanged := s.state.isInactive != s.state.wasInactive
	if phaseChanged || inactiveChanged {
		s.chunkWriter.ClearScreen()
		s.canvas.ForceRedraw()
		s.state.prevPhase = s.game.Phase
		s.state.wasInactive = s.state.isInactive
	}

	s.canvas.Clear()

	ctx := object.DrawContext{
		Canvas: s.canvas,
		Writer: s.chunkWriter,
	}

	for _, obj := range s.objects() {
		if err := obj.Draw(ctx); err != nil {
			return err
		}
	}

	// Render canvas to terminal
	s.canvas.Render(s.chunkWriter)

	// Draw border when terminal exceeds the render area
	s.canvas.RenderBorder(s.chunkWriter)

	// Draw UI overlay
	if err := s.drawUI(ctx); err != nil {
		return err
	}

	return s.chunkWriter.Flush()
}

// objects lists everything drawn on the canvas, back to front.
func (s *Session) objects() []object.Object {
	g := s.game
	objs := make([]object.Object, 0, len(g.Walls)+len(s.state.sparks)+4)
	for _, w := range g.Walls {
		objs = append(objs, w)
	}
	objs = append(objs, g.Separator, g.Mirror, g.Paddle)
	for _, p := range s.state.sparks {
		objs = append(objs, p)
	}
	if g.Ball != nil {
		objs = append(objs, g.Ball)
	}
	return objs
}

// drawUI draws the HUD, banner and hints on top of the canvas.
func (s *Session) drawUI(ctx object.DrawContext) error {
	width := s.canvas.TerminalWidth()
	height := s.canvas.TerminalHeight()

	if s.state.isInactive {
		return s.drawInactivityScreen(ctx, width/2+1, height/2)
	}

	texts := hudTexts(s.game, width, height)
	if b, ok := bannerText(s.game.Banner, width/2+1, height/2); ok {
		texts = append(texts, b)
	}
	for _, t := range texts {
		if err := t.Draw(ctx); err != nil {
			return err
		}
	}
	return nil
}

// hudTexts builds the time, score and high score labels plus the control hint.
func hudTexts(g *game.GameState, width, height int) []object.Text {
	texts := []object.Text{
		{X: 2, Y: 1, Value: fmt.Sprintf("%ds left", max(g.Seconds, 0))},
		{X: width/2 + 1, Y: 1, Value: fmt.Sprintf("%d", g.Score), Align: object.AlignCenter, Bold: true},
		{X: width - 1, Y: 1, Value: fmt.Sprintf("Highest: %d", g.HighScore), Align: object.AlignRight},
	}
	if g.LoopCount > 0 {
		texts = append(texts, object.Text{X: 2, Y: height, Value: fmt.Sprintf("Level %d", g.LoopCount+1)})
	}
	if g.Phase == game.PhaseCountdown {
		hint := "W/S, arrows or mouse to move | Q to quit"
		if len(hint) < width-2 {
			texts = append(texts, object.Text{X: width/2 + 1, Y: height, Value: hint, Align: object.AlignCenter, Color: draw.ColorSeparator})
		}
	}
	return texts
}

// bannerText approximates the banner's scale, rotation and alpha in text:
// growing adds letter spacing, shrinking truncates from both ends, rotation past
// a quarter turn flips the text upside down and alpha picks a grey level.
func bannerText(b game.Banner, col, row int) (object.Text, bool) {
	if !b.Visible() || b.Alpha < 0.05 {
		return object.Text{}, false
	}

	runes := []rune(b.Text)
	if b.Scale < 1 {
		keep := int(math.Round(float64(len(runes)) * b.Scale))
		if keep <= 0 {
			return object.Text{}, false
		}
		trim := (len(runes) - keep) / 2
		runes = runes[trim : trim+keep]
	}
	if math.Cos(b.Rotation) < 0 {
		runes = upsideDown(runes)
	}

	value := string(runes)
	if gap := int(math.Round((b.Scale - 1) * 2)); gap > 0 {
		parts := make([]string, len(runes))
		for i, r := range runes {
			parts[i] = string(r)
		}
		value = strings.Join(parts, strings.Repeat(" ", gap))
	}

	// 232..255 is the xterm greyscale ramp.
	grey := draw.Color(232 + int(math.Round(b.Alpha*23)))
	return object.Text{X: col, Y: row, Value: value, Align: object.AlignCenter, Color: grey, Bold: true}, true
}

var flipped = map[rune]rune{
	'a': 'ɐ', 'b': 'q', 'c': 'ɔ', 'd': 'p', 'e': 'ǝ', 'f': 'ɟ', 'g': 'ƃ', 'h': 'ɥ',
	'i': 'ᴉ', 'j': 'ɾ', 'k': 'ʞ', 'm': 'ɯ', 'n': 'u', 'p': 'd', 'q': 'b', 'r': 'ɹ',
	't': 'ʇ', 'u': 'n', 'v': 'ʌ', 'w': 'ʍ', 'y': 'ʎ',
	'A': '∀', 'C': 'Ɔ', 'E': 'Ǝ', 'F': 'Ⅎ', 'G': '⅁', 'J': 'ſ', 'L': '˥', 'M': 'W',
	'P': 'Ԁ', 'T': '┴', 'U': '∩', 'V': 'Λ', 'W': 'M', 'Y': '⅄',
	'!': '¡', ',': '\'', '.': '˙', '?': '¿',
}

// upsideDown returns runes rotated by half a turn.
func upsideDown(runes []rune) []rune {
	out := make([]rune, len(runes))
	for i, r := range runes {
		if f, ok := flipped[r]; ok {
			r = f
		}
		out[len(runes)-1-i] = r
	}
	return out
}

// drawInactivityScreen draws the inactivity warning screen.
func (s *Session) drawInactivityScreen(ctx object.DrawContext, centerX, centerY int) error {
	remaining := int(config.InactivityDisconnectUser - time.Since(s.state.lastInput).Seconds())
	lines := []object.Text{
		{X: centerX, Y: centerY - 2, Value: "INACTIVITY WARNING", Align: object.AlignCenter, Bold: true},
		{X: centerX, Y: centerY, Value: fmt.Sprintf("Disconnecting in %d seconds", max(remaining, 0)), Align: object.AlignCenter},
		{X: centerX, Y: centerY + 2, Value: "Press any key to continue", Align: object.AlignCenter},
	}
	for _, t := range lines {
		if err := t.Draw(ctx); err != nil {
			return err
		}
	}
	return nil
}
