package interaction

import (
	"os"

	"golang.org/x/term"
)

// KeyEvent represents a keyboard event
type KeyEvent struct {
	Key  rune
	Type KeyType
}

// KeyType represents the type of key pressed
type KeyType int

const (
	KeyChar KeyType = iota
	KeyEscape
)

// KeyboardReader reads keystrokes in raw mode. In the watch loop it is
// the stand-in for a scroll/visibility trigger: a keypress signals that
// the viewer wants the next batch.
type KeyboardReader struct {
	oldState *term.State
	input    chan KeyEvent
	stop     chan struct{}
}

// NewKeyboardReader switches stdin to raw mode and starts reading.
func NewKeyboardReader() (*KeyboardReader, error) {
	oldState, err := term.MakeRaw(int(os.Stdin.Fd()))
	if err != nil {
		return nil, err
	}

	kr := &KeyboardReader{
		oldState: oldState,
		input:    make(chan KeyEvent, 10),
		stop:     make(chan struct{}),
	}

	go kr.readInput()

	return kr, nil
}

func (kr *KeyboardReader) readInput() {
	buf := make([]byte, 3)

	for {
		select {
		case <-kr.stop:
			return
		default:
			n, err := os.Stdin.Read(buf)
			if err != nil || n == 0 {
				continue
			}

			event := parseInput(buf[:n])
			if event == nil {
				continue
			}

			select {
			case kr.input <- *event:
			case <-kr.stop:
				return
			}
		}
	}
}

// parseInput maps raw bytes to a key event
func parseInput(buf []byte) *KeyEvent {
	if len(buf) == 0 {
		return nil
	}

	if buf[0] == 27 {
		// Bare escape; ignore escape sequences (arrows etc.)
		if len(buf) == 1 {
			return &KeyEvent{Type: KeyEscape}
		}
		return nil
	}

	return &KeyEvent{Key: rune(buf[0]), Type: KeyChar}
}

// Events returns the channel of keyboard events
func (kr *KeyboardReader) Events() <-chan KeyEvent {
	return kr.input
}

// Close restores the terminal state and stops reading
func (kr *KeyboardReader) Close() error {
	close(kr.stop)
	return term.Restore(int(os.Stdin.Fd()), kr.oldState)
}
