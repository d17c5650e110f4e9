// Package input turns raw terminal bytes into per-frame input and keeps
// the pointer/click latch the game reads once per frame.
package input

import (
	"bufio"
	"io"
	"strconv"
)

// Terminal escape sequences that switch SGR mouse reporting on and off.
// 1003 reports every motion event, 1006 selects the SGR encoding.
const (
	mouseOn  = "\033[?1003h\033[?1006h"
	mouseOff = "\033[?1006l\033[?1003l"
)

// maxPending bounds how many bytes of an unterminated escape sequence are
// carried over to the next frame before they are dropped as garbage.
const maxPending = 32

// EnableMouse asks the terminal to report pointer motion and clicks.
func EnableMouse(w io.Writer) {
	io.WriteString(w, mouseOn)
}

// DisableMouse restores normal terminal mouse behaviour.
func DisableMouse(w io.Writer) {
	io.WriteString(w, mouseOff)
}

// Mouse button numbers as reported by the terminal.
const (
	ButtonLeft   = 0
	ButtonMiddle = 1
	ButtonRight  = 2
	ButtonNone   = 3
)

// MouseEvent is one SGR mouse report. Col and Row are 1-based terminal cells.
type MouseEvent struct {
	Col, Row int
	Button   int
	Motion   bool // pointer moved (with or without a button held)
	Press    bool // button went down; false for release and plain motion
}

// Input represents the current frame's input state.
type Input struct {
	Quit    bool
	Closed  bool // the input source hit EOF
	Mouse   []MouseEvent
	Pressed []byte
}

// Parser decodes terminal bytes. It carries incomplete escape sequences
// between calls so a report split across reads is not lost.
type Parser struct {
	pending []byte
}

// Feed decodes buf together with any bytes left over from the previous call.
func (p *Parser) Feed(buf []byte) Input {
	var in Input
	if len(p.pending) > 0 {
		buf = append(p.pending, buf...)
		p.pending = nil
	}

	for i := 0; i < len(buf); i++ {
		b := buf[i]

		// CSI sequence: ESC [ ...
		if b == '\x1b' && i+1 < len(buf) && buf[i+1] == '[' {
			if i+2 >= len(buf) {
				p.keep(buf[i:])
				break
			}
			if buf[i+2] == '<' {
				ev, n, ok := parseSGRMouse(buf[i+3:])
				if n < 0 {
					p.keep(buf[i:])
					break
				}
				if ok {
					in.Mouse = append(in.Mouse, ev)
				}
				i += 2 + n
				continue
			}
			// Arrow keys and other short CSI sequences carry no meaning here.
			i += 2
			continue
		}
		if b == '\x1b' && i+1 == len(buf) {
			p.keep(buf[i:])
			break
		}

		in.Pressed = append(in.Pressed, b)
		switch b {
		case 'q', 'Q', '\x03':
			in.Quit = true
		}
	}
	return in
}

// keep stores an unterminated sequence for the next Feed.
func (p *Parser) keep(rest []byte) {
	if len(rest) > maxPending {
		return
	}
	p.pending = append([]byte(nil), rest...)
}

// parseSGRMouse parses "b;col;row" terminated by 'M' (press/motion) or 'm' (release).
// n is the number of bytes consumed, or -1 when the terminator has not arrived yet.
func parseSGRMouse(b []byte) (ev MouseEvent, n int, ok bool) {
	end := -1
	for i, c := range b {
		if c == 'M' || c == 'm' {
			end = i
			break
		}
		if (c < '0' || c > '9') && c != ';' {
			return MouseEvent{}, i, false
		}
	}
	if end < 0 {
		if len(b) >= maxPending {
			return MouseEvent{}, len(b), false
		}
		return MouseEvent{}, -1, false
	}

	fields := splitFields(b[:end])
	if len(fields) != 3 {
		return MouseEvent{}, end + 1, false
	}
	code, err1 := strconv.Atoi(fields[0])
	col, err2 := strconv.Atoi(fields[1])
	row, err3 := strconv.Atoi(fields[2])
	if err1 != nil || err2 != nil || err3 != nil {
		return MouseEvent{}, end + 1, false
	}
	if code&64 != 0 {
		// Wheel events are ignored.
		return MouseEvent{}, end + 1, false
	}

	ev = MouseEvent{
		Col:    col,
		Row:    row,
		Button: code & 3,
		Motion: code&32 != 0,
	}
	ev.Press = b[end] == 'M' && !ev.Motion && ev.Button != ButtonNone
	return ev, end + 1, true
}

func splitFields(b []byte) []string {
	var fields []string
	start := 0
	for i, c := range b {
		if c == ';' {
			fields = append(fields, string(b[start:i]))
			start = i + 1
		}
	}
	return append(fields, string(b[start:]))
}

// Stream delivers input bytes via a channel.
type Stream struct {
	ch     chan byte
	parser Parser
	closed bool
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

// ReadInput drains all available bytes from the stream (non-blocking) and decodes them.
func ReadInput(s *Stream) Input {
	var buf []byte

	// Drain all available bytes
	for !s.closed {
		select {
		case b, ok := <-s.ch:
			if !ok {
				s.closed = true
				break
			}
			buf = append(buf, b)
			continue
		default:
		}
		break
	}

	in := s.parser.Feed(buf)
	in.Closed = s.closed
	return in
}
