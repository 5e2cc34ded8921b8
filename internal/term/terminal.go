// Package term provides Terminal, a dockable that runs a program in a pty
// and renders it through a VT emulator. nvim panes additionally get an RPC
// connection for buffer titles, unsaved-change checks and colors.
package term

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/pfassina/dockyard/internal/logging"
	"github.com/pfassina/dockyard/internal/pane"
)

var errClosed = errors.New("terminal closed before start")

type startedMsg struct {
	t   *Terminal
	err error
}

type outputMsg struct {
	t    *Terminal
	data []byte
}

type connectedMsg struct {
	t   *Terminal
	rpc *RPC
	err error
}

// ExitedMsg reports that the terminal's process ended on its own.
type ExitedMsg struct {
	Term *Terminal
	Err  error
}

// BufferMsg reports the current nvim buffer of an nvim pane.
type BufferMsg struct {
	Term *Terminal
	Name string
}

// ColorsMsg carries the highlight colors read from an nvim pane.
type ColorsMsg struct {
	Term   *Terminal
	Colors map[string][2]string
	Err    error
}

// Target returns the terminal a message belongs to.
func Target(msg tea.Msg) (*Terminal, bool) {
	switch msg := msg.(type) {
	case startedMsg:
		return msg.t, true
	case outputMsg:
		return msg.t, true
	case connectedMsg:
		return msg.t, true
	case ExitedMsg:
		return msg.Term, true
	case BufferMsg:
		return msg.Term, true
	case ColorsMsg:
		return msg.Term, true
	}
	return nil, false
}

type Option func(*Terminal)

// WithSender sets where asynchronous nvim notifications are delivered,
// normally tea.Program.Send.
func WithSender(send func(tea.Msg)) Option {
	return func(t *Terminal) { t.send = send }
}

func WithLogger(l *log.Logger) Option {
	return func(t *Terminal) { t.logger = l }
}

// Terminal is a dockable running a program in a pty.
type Terminal struct {
	command string
	argv    []string
	dir     string
	nvim    bool
	send    func(tea.Msg)
	logger  *log.Logger

	mu      sync.Mutex
	width   int
	height  int
	proc    *process
	screen  *screen
	rpc     *RPC
	buffer  string
	started bool
	exited  bool
	closed  bool
	focused bool
	err     error
}

// New prepares a terminal for command, split on whitespace. Nothing runs
// until Start. A command whose program is nvim gets the RPC extras.
func New(command, dir string, opts ...Option) *Terminal {
	t := &Terminal{
		command: command,
		argv:    strings.Fields(command),
		dir:     dir,
		logger:  logging.Discard(),
	}
	if len(t.argv) > 0 && filepath.Base(t.argv[0]) == "nvim" {
		t.nvim = true
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func (t *Terminal) Title() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.nvim {
		if t.buffer != "" {
			return filepath.Base(t.buffer)
		}
		return "nvim"
	}
	if len(t.argv) == 0 {
		return "terminal"
	}
	return filepath.Base(t.argv[0])
}

func (t *Terminal) TitleIcon() string {
	if t.nvim {
		return "✎"
	}
	return "❯"
}

func (t *Terminal) TitleTooltip() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.nvim && t.buffer != "" {
		return t.buffer
	}
	return fmt.Sprintf("%s in %s", t.command, t.dir)
}

func (t *Terminal) Activated() {}

func (t *Terminal) Describe() pane.Spec {
	return pane.Spec{Kind: pane.KindTerminal, Arg: t.command, Title: t.Title()}
}

// Nvim reports whether this pane runs nvim.
func (t *Terminal) Nvim() bool { return t.nvim }

// SetFocused shows or hides the emulated cursor.
func (t *Terminal) SetFocused(focused bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.focused = focused
	if t.screen != nil {
		t.screen.showCursor = focused
	}
}

func (t *Terminal) size() (int, int) {
	w, h := t.width, t.height
	if w <= 0 || h <= 0 {
		return 80, 24
	}
	return w, h
}

func socketPath() string {
	return filepath.Join(os.TempDir(), fmt.Sprintf("dockyard-%d-%s.sock", os.Getpid(), uuid.NewString()[:8]))
}

// Start launches the process. Calling it again is a no-op.
func (t *Terminal) Start() tea.Cmd {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.started {
		return nil
	}
	t.started = true
	w, h := t.size()

	return func() tea.Msg {
		argv := t.argv
		socket := ""
		if t.nvim {
			socket = socketPath()
			argv = append(append([]string{}, argv...),
				"--listen", socket,
				"--cmd", "set laststatus=0 showtabline=0",
			)
		}
		p, err := startProcess(argv, t.dir, w, h, socket)
		if err != nil {
			return startedMsg{t: t, err: err}
		}

		t.mu.Lock()
		defer t.mu.Unlock()
		if t.closed {
			p.close() //nolint:errcheck // pane already gone
			return startedMsg{t: t, err: errClosed}
		}
		t.proc = p
		t.screen = newScreen(w, h, p.file)
		t.screen.showCursor = t.focused
		// A resize may have landed while the process was starting.
		if nw, nh := t.size(); nw != w || nh != h {
			p.resize(nw, nh) //nolint:errcheck // next resize retries
			t.screen.resize(nw, nh)
		}
		return startedMsg{t: t}
	}
}

func (t *Terminal) waitForOutput() tea.Msg {
	t.mu.Lock()
	p := t.proc
	t.mu.Unlock()
	buf := make([]byte, 32*1024)
	n, err := p.file.Read(buf)
	if err != nil {
		return ExitedMsg{Term: t, Err: err}
	}
	return outputMsg{t: t, data: buf[:n]}
}

func (t *Terminal) connect() tea.Cmd {
	socket := t.proc.socket
	return func() tea.Msg {
		rpc, err := ConnectRPC(socket, func(name string) {
			if t.send != nil {
				t.send(BufferMsg{Term: t, Name: name})
			}
		})
		return connectedMsg{t: t, rpc: rpc, err: err}
	}
}

// Colors reads the nvim pane's highlight colors.
func (t *Terminal) Colors() tea.Cmd {
	t.mu.Lock()
	rpc := t.rpc
	t.mu.Unlock()
	if rpc == nil {
		return nil
	}
	return func() tea.Msg {
		colors, err := rpc.ExtractColors()
		return ColorsMsg{Term: t, Colors: colors, Err: err}
	}
}

// Update handles the terminal's own messages and forwards keys to the
// child. Other messages are ignored.
func (t *Terminal) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case startedMsg:
		if msg.err != nil {
			t.mu.Lock()
			t.err = msg.err
			t.mu.Unlock()
			t.logger.Error("terminal start failed", "command", t.command, "err", msg.err)
			return nil
		}
		if t.nvim {
			return tea.Batch(t.waitForOutput, t.connect())
		}
		return t.waitForOutput

	case outputMsg:
		t.mu.Lock()
		closed := t.closed
		if !closed {
			t.screen.write(msg.data) //nolint:errcheck // emulator never fails writes
		}
		t.mu.Unlock()
		if closed {
			return nil
		}
		return t.waitForOutput

	case connectedMsg:
		if msg.err != nil {
			// The pane still works as a plain terminal.
			t.logger.Warn("nvim rpc unavailable", "err", msg.err)
			return nil
		}
		t.mu.Lock()
		if t.closed {
			t.mu.Unlock()
			msg.rpc.Close() //nolint:errcheck // pane already gone
			return nil
		}
		t.rpc = msg.rpc
		t.mu.Unlock()
		return t.Colors()

	case BufferMsg:
		t.mu.Lock()
		t.buffer = msg.Name
		t.mu.Unlock()

	case ExitedMsg:
		t.mu.Lock()
		t.exited = true
		t.mu.Unlock()

	case tea.KeyMsg:
		t.mu.Lock()
		p := t.proc
		t.mu.Unlock()
		if p == nil {
			return nil
		}
		if raw := keyBytes(msg); raw != nil {
			p.file.Write(raw) //nolint:errcheck // exit is reported by the reader
		}
	}
	return nil
}

func (t *Terminal) SetSize(width, height int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if width == t.width && height == t.height {
		return
	}
	t.width, t.height = width, height
	if t.proc != nil && width > 0 && height > 0 {
		t.proc.resize(width, height) //nolint:errcheck // next resize retries
		t.screen.resize(width, height)
	}
}

func (t *Terminal) View() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	switch {
	case t.err != nil:
		return fmt.Sprintf("terminal error: %v", t.err)
	case t.screen == nil:
		return "Starting " + t.command + "..."
	}
	return t.screen.render()
}

// Exited reports whether the child process has ended.
func (t *Terminal) Exited() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.exited
}

// MayAttemptClose is always true; a terminal can always be asked to close.
func (t *Terminal) MayAttemptClose() bool { return true }

// AttemptClose vetoes when nvim holds unsaved buffers.
func (t *Terminal) AttemptClose() bool {
	t.mu.Lock()
	rpc := t.rpc
	t.mu.Unlock()
	if rpc == nil {
		return true
	}
	modified, err := rpc.Modified()
	if err != nil {
		t.logger.Debug("modified check failed", "err", err)
		return true
	}
	return !modified
}

// Close stops the child and releases the pty. Safe to call more than once.
func (t *Terminal) Close() error {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return nil
	}
	t.closed = true
	rpc, scr, p := t.rpc, t.screen, t.proc
	t.rpc = nil
	t.mu.Unlock()

	if rpc != nil {
		rpc.Quit()
		rpc.Close() //nolint:errcheck // shutdown
	}
	if scr != nil {
		scr.close() //nolint:errcheck // shutdown
	}
	if p != nil {
		return p.close()
	}
	return nil
}
