package audio

import (
	"io"
	"sync"

	"github.com/tomz197/speedpong/internal/game"
)

// Player turns game cues into sound.
type Player interface {
	Play(ev game.Event)
}

// Nop discards every cue.
type Nop struct{}

func (Nop) Play(game.Event) {}

// Bell rings the terminal bell for cues that carry a sound asset.
// Countdown narration stays silent.
type Bell struct {
	mu sync.Mutex
	w  io.Writer
}

// NewBell creates a bell player writing to w.
func NewBell(w io.Writer) *Bell {
	return &Bell{w: w}
}

func (b *Bell) Play(ev game.Event) {
	if ev.Asset == "" {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	_, _ = io.WriteString(b.w, "\a")
}
