// Package input turns a raw terminal byte stream into key and pointer input,
// and maps pointer input to paddle movement intents.
package input

import (
	"bufio"
	"strconv"
	"time"
)

// keyHoldDuration is how long a key is considered "held" after its last press.
const keyHoldDuration = 30 * time.Millisecond

// moveKeyHoldDuration bridges the gap between terminal key-repeat events for
// the paddle keys so a held key moves the paddle smoothly.
const moveKeyHoldDuration = 150 * time.Millisecond

// PointerKind distinguishes pointer events.
type PointerKind int

const (
	PointerPress PointerKind = iota
	PointerDrag
	PointerRelease
)

// PointerEvent is a left-button mouse event at a 1-based terminal cell.
type PointerEvent struct {
	Kind PointerKind
	Col  int
	Row  int
}

// Input represents the current frame's input state.
type Input struct {
	Quit    bool
	Up      bool
	Down    bool
	Space   bool
	Enter   bool
	Pointer []PointerEvent // In arrival order
	Pressed []byte
}

// keyState tracks the last time each key was pressed.
type keyState struct {
	quit  time.Time
	up    time.Time
	down  time.Time
	space time.Time
	enter time.Time
}

// Stream delivers input bytes via a channel and tracks key state between frames.
type Stream struct {
	ch      chan byte
	state   keyState
	pending []byte // Incomplete mouse sequence carried to the next read
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
func StartStream(r *bufio.Reader) *Stream {
	s := &Stream{
		ch: make(chan byte, 256),
	}
	go func() {
		for {
			b, err := r.ReadByte()
			if err != nil {
				close(s.ch)
				return
			}
			s.ch <- b
		}
	}()
	return s
}

// ReadInput drains all available bytes from the stream (non-blocking).
// Handles arrow key and SGR mouse escape sequences. A closed stream reports Quit.
func ReadInput(s *Stream) Input {
	now := time.Now()
	buf := append([]byte(nil), s.pending...)
	s.pending = s.pending[:0]
	closed := false

drain:
	for {
		select {
		case b, ok := <-s.ch:
			if !ok {
				closed = true
				break drain
			}
			buf = append(buf, b)
		default:
			break drain
		}
	}

	var pointer []PointerEvent
	for i := 0; i < len(buf); i++ {
		b := buf[i]

		// A read can end inside an escape prefix; finish it on the next drain.
		if b == '\x1b' && !closed && (i == len(buf)-1 || (i == len(buf)-2 && buf[i+1] == '[')) {
			s.pending = append(s.pending, buf[i:]...)
			break
		}

		if b == '\x1b' && i+2 < len(buf) && buf[i+1] == '[' {
			switch buf[i+2] {
			case 'A':
				s.state.up = now
				i += 2
				continue
			case 'B':
				s.state.down = now
				i += 2
				continue
			case 'C', 'D':
				i += 2
				continue
			case '<':
				ev, n, complete := parseSGRMouse(buf[i:])
				if !complete {
					s.pending = append(s.pending, buf[i:]...)
					i = len(buf)
					continue
				}
				if ev != nil {
					pointer = append(pointer, *ev)
				}
				i += n - 1
				continue
			}
		}

		applyByteToState(&s.state, b, now)
	}

	return Input{
		Quit:    closed || now.Sub(s.state.quit) < keyHoldDuration,
		Up:      now.Sub(s.state.up) < moveKeyHoldDuration,
		Down:    now.Sub(s.state.down) < moveKeyHoldDuration,
		Space:   now.Sub(s.state.space) < keyHoldDuration,
		Enter:   now.Sub(s.state.enter) < keyHoldDuration,
		Pointer: pointer,
		Pressed: buf,
	}
}

// ResetKeyInput forgets held keys, e.g. when a new round starts.
func ResetKeyInput(s *Stream) {
	if s == nil {
		return
	}
	s.state = keyState{}
}

// applyByteToState updates the key state timestamps based on the pressed byte.
func applyByteToState(state *keyState, b byte, now time.Time) {
	switch b {
	case 'q', 'Q', '\x03':
		state.quit = now
	case 'w', 'W', 'i', 'I':
		state.up = now
	case 's', 'S', 'k', 'K':
		state.down = now
	case ' ':
		state.space = now
	case '\n', '\r':
		state.enter = now
	}
}

// parseSGRMouse parses ESC [ < b ; col ; row (M|m) at the start of buf.
// It returns the number of bytes consumed and whether the sequence was complete.
// Events other than the left button (wheel, middle, right) yield a nil event.
func parseSGRMouse(buf []byte) (ev *PointerEvent, n int, complete bool) {
	const prefix = 3 // ESC [ <
	var fields [3]int
	field := 0
	start := prefix

	for i := prefix; i < len(buf); i++ {
		c := buf[i]
		switch {
		case c >= '0' && c <= '9':
			continue
		case c == ';' || c == 'M' || c == 'm':
			if field > 2 {
				return nil, i + 1, true
			}
			v, err := strconv.Atoi(string(buf[start:i]))
			if err != nil {
				return nil, i + 1, true
			}
			fields[field] = v
			field++
			start = i + 1
			if c == ';' {
				continue
			}
			if field != 3 {
				return nil, i + 1, true
			}
			return decodeMouse(fields[0], fields[1], fields[2], c == 'm'), i + 1, true
		default:
			// Malformed: drop the prefix and let the rest parse as keys.
			return nil, prefix, true
		}
	}
	return nil, 0, false
}

func decodeMouse(button, col, row int, release bool) *PointerEvent {
	if button&64 != 0 || button&3 != 0 {
		return nil
	}
	kind := PointerPress
	switch {
	case release:
		kind = PointerRelease
	case button&32 != 0:
		kind = PointerDrag
	}
	return &PointerEvent{Kind: kind, Col: col, Row: row}
}
