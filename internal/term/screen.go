package term

import (
	"io"
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/charmbracelet/x/vt"
)

// screen is the emulator a pty's output is replayed into.
type screen struct {
	emu        *vt.SafeEmulator
	done       chan struct{}
	showCursor bool
}

// newScreen creates the emulator and drains its replies (DA1, DECRQM and
// similar) back to the child. The emulator's reply pipe blocks writes
// until someone reads it.
func newScreen(width, height int, replies io.Writer) *screen {
	emu := vt.NewSafeEmulator(width, height)
	done := make(chan struct{})

	go func() {
		buf := make([]byte, 1024)
		for {
			n, err := emu.Read(buf)
			if n > 0 {
				replies.Write(buf[:n]) //nolint:errcheck // child may be gone
			}
			if err != nil {
				return
			}
			select {
			case <-done:
				return
			default:
			}
		}
	}()

	return &screen{emu: emu, done: done}
}

func (s *screen) write(p []byte) (int, error) {
	return s.emu.Write(p)
}

func (s *screen) resize(width, height int) {
	s.emu.Resize(width, height)
}

func (s *screen) render() string {
	out := strings.ReplaceAll(s.emu.Render(), "\r\n", "\n")
	if !s.showCursor {
		return out
	}
	pos := s.emu.CursorPosition()
	return overlayCursor(out, pos.X, pos.Y)
}

func (s *screen) close() error {
	close(s.done)
	return s.emu.Close()
}

// overlayCursor draws a reverse-video cell at column cx of row cy.
func overlayCursor(s string, cx, cy int) string {
	lines := strings.Split(s, "\n")
	if cy < 0 || cy >= len(lines) || cx < 0 {
		return s
	}
	line := lines[cy]
	if w := ansi.StringWidth(line); w <= cx {
		line += strings.Repeat(" ", cx-w+1)
	}
	cell := ansi.Strip(ansi.Cut(line, cx, cx+1))
	if cell == "" {
		cell = " "
	}
	lines[cy] = ansi.Cut(line, 0, cx) + "\x1b[7m" + cell + "\x1b[27m" + ansi.Cut(line, cx+1, ansi.StringWidth(line))
	return strings.Join(lines, "\n")
}
