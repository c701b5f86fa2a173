package draw

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"
)

// Mode is a set of terminal modes a session switches on while it owns the screen.
type Mode uint8

const (
	ModeHiddenCursor Mode = 1 << iota
	ModeMouse             // button-event tracking, SGR encoded: ESC[<b;x;yM / ESC[<b;x;ym
)

// modeSequences lists the enable and disable sequences per mode, in enable order.
var modeSequences = []struct {
	mode    Mode
	enable  string
	disable string
}{
	{ModeHiddenCursor, "\033[?25l", "\033[?25h"},
	{ModeMouse, "\033[?1000h\033[?1002h\033[?1006h", "\033[?1006l\033[?1002l\033[?1000l"},
}

const clearSequence = "\033[H\033[2J"

// ChunkWriter buffers a whole frame of escape sequences and text, then writes it
// in network-sized chunks on Flush. Cursor positions are 1-based render-area
// coordinates shifted by the current offset. It also tracks which terminal modes
// are on so a session can restore the terminal on exit.
type ChunkWriter struct {
	buf    strings.Builder
	out    *bufio.Writer
	scrat  [20]byte
	offCol int
	offRow int
	modes  Mode
}

// NewChunkWriter returns a ChunkWriter over w with the given render-area offset.
func NewChunkWriter(w io.Writer, offsetCol, offsetRow int) *ChunkWriter {
	return &ChunkWriter{
		out:    bufio.NewWriterSize(w, 8192),
		offCol: offsetCol,
		offRow: offsetRow,
	}
}

// SetOffset moves the render area, e.g. after a resize.
func (cw *ChunkWriter) SetOffset(offsetCol, offsetRow int) {
	cw.offCol, cw.offRow = offsetCol, offsetRow
}

// SetModes queues the sequences that switch the terminal from the current modes to m.
// Modes are disabled in reverse enable order.
func (cw *ChunkWriter) SetModes(m Mode) {
	for _, seq := range modeSequences {
		if m&seq.mode != 0 && cw.modes&seq.mode == 0 {
			cw.buf.WriteString(seq.enable)
		}
	}
	for i := len(modeSequences) - 1; i >= 0; i-- {
		seq := modeSequences[i]
		if m&seq.mode == 0 && cw.modes&seq.mode != 0 {
			cw.buf.WriteString(seq.disable)
		}
	}
	cw.modes = m
}

// Modes reports the modes currently switched on.
func (cw *ChunkWriter) Modes() Mode {
	return cw.modes
}

// ClearScreen queues a full clear with the cursor parked top-left.
func (cw *ChunkWriter) ClearScreen() {
	cw.buf.WriteString(clearSequence)
}

// MoveCursor queues a cursor move to (col, row) of the render area.
func (cw *ChunkWriter) MoveCursor(col, row int) {
	cw.buf.WriteString("\033[")
	cw.buf.Write(strconv.AppendInt(cw.scrat[:0], int64(row+cw.offRow), 10))
	cw.buf.WriteByte(';')
	cw.buf.Write(strconv.AppendInt(cw.scrat[:0], int64(col+cw.offCol), 10))
	cw.buf.WriteByte('H')
}

// Write implements io.Writer so Canvas.Render can target the frame buffer.
func (cw *ChunkWriter) Write(p []byte) (int, error) {
	return cw.buf.Write(p)
}

func (cw *ChunkWriter) WriteString(s string) {
	cw.buf.WriteString(s)
}

// WriteAt queues s at (col, row) of the render area.
func (cw *ChunkWriter) WriteAt(col, row int, s string) {
	cw.MoveCursor(col, row)
	cw.buf.WriteString(s)
}

var _ io.Writer = (*ChunkWriter)(nil)

// Flush sends the queued frame in chunks of at most maxChunkSize bytes.
func (cw *ChunkWriter) Flush() error {
	data := cw.buf.String()
	cw.buf.Reset()
	for start := 0; start < len(data); start += maxChunkSize {
		end := min(start+maxChunkSize, len(data))
		if _, err := cw.out.WriteString(data[start:end]); err != nil {
			return err
		}
	}
	return cw.out.Flush()
}

// TermSizeFunc reports the terminal size in cells.
type TermSizeFunc func() (width, height int, err error)

// DefaultTermSizeFunc reads the size of the local terminal.
var DefaultTermSizeFunc TermSizeFunc = func() (int, int, error) {
	return term.GetSize(int(os.Stdout.Fd()))
}
