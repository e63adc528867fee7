// Package input turns raw terminal bytes into held-key state and game actions.
package input

import (
	"bufio"
	"time"
)

// DefaultHoldDuration is how long a key is considered held after its last
// byte. Terminals only report presses, so a held key is a key that keeps
// auto-repeating.
const DefaultHoldDuration = 100 * time.Millisecond

// Input represents the current frame's input state.
type Input struct {
	Quit    bool
	Left    bool
	Right   bool
	Up      bool
	Space   bool
	Enter   bool
	Escape  bool
	Pressed []byte
}

// keyState tracks the last time each key was pressed.
type keyState struct {
	quit   time.Time
	left   time.Time
	right  time.Time
	up     time.Time
	space  time.Time
	enter  time.Time
	escape time.Time
}

// Stream delivers input bytes via a channel and tracks key state for combinations.
type Stream struct {
	ch   chan byte
	hold time.Duration
	now  func() time.Time

	state keyState
}

// StreamOption configures a Stream.
type StreamOption func(*Stream)

// WithHoldDuration overrides DefaultHoldDuration.
func WithHoldDuration(d time.Duration) StreamOption {
	return func(s *Stream) {
		s.hold = d
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) StreamOption {
	return func(s *Stream) {
		s.now = now
	}
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
// The channel closes when r returns an error.
func StartStream(r *bufio.Reader, opts ...StreamOption) *Stream {
	s := NewStream(opts...)
	go func() {
		defer close(s.ch)
		for {
			b, err := r.ReadByte()
			if err != nil {
				return
			}
			s.ch <- b
		}
	}()
	return s
}

// NewStream creates a stream without a reader. Bytes are fed with Apply.
func NewStream(opts ...StreamOption) *Stream {
	s := &Stream{
		ch:   make(chan byte, 128),
		hold: DefaultHoldDuration,
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ReadInput drains all available bytes from the stream without blocking.
// The second result is false once the reader has been exhausted.
func (s *Stream) ReadInput() (Input, bool) {
	var buf []byte
	open := true
drain:
	for {
		select {
		case b, ok := <-s.ch:
			if !ok {
				open = false
				break drain
			}
			buf = append(buf, b)
		default:
			break drain
		}
	}
	return s.Apply(buf), open
}

// Apply parses buf, records key presses and returns the keys held now.
func (s *Stream) Apply(buf []byte) Input {
	now := s.now()
	for i := 0; i < len(buf); i++ {
		b := buf[i]

		// CSI arrow keys: ESC [ <code>
		if b == '\x1b' && i+2 < len(buf) && buf[i+1] == '[' {
			switch buf[i+2] {
			case 'A':
				s.state.up = now
				i += 2
				continue
			case 'C':
				s.state.right = now
				i += 2
				continue
			case 'D':
				s.state.left = now
				i += 2
				continue
			}
		}
		applyByteToState(&s.state, b, now)
	}

	held := func(t time.Time) bool {
		return !t.IsZero() && now.Sub(t) < s.hold
	}
	return Input{
		Quit:    held(s.state.quit),
		Left:    held(s.state.left),
		Right:   held(s.state.right),
		Up:      held(s.state.up),
		Space:   held(s.state.space),
		Enter:   held(s.state.enter),
		Escape:  held(s.state.escape),
		Pressed: buf,
	}
}

// applyByteToState updates the key state timestamps based on the pressed byte.
func applyByteToState(state *keyState, b byte, now time.Time) {
	switch b {
	case 'q', 'Q', '\x03':
		state.quit = now
	case 'a', 'A', 'j', 'J':
		state.left = now
	case 'd', 'D', 'l', 'L':
		state.right = now
	case 'w', 'W', 'i', 'I':
		state.up = now
	case ' ':
		state.space = now
	case '\n', '\r':
		state.enter = now
	case '\x1b':
		state.escape = now
	}
}
