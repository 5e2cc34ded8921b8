package app

import (
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/pfassina/dockyard/internal/config"
	"github.com/pfassina/dockyard/internal/dock"
	"github.com/pfassina/dockyard/internal/history"
	"github.com/pfassina/dockyard/internal/logging"
	"github.com/pfassina/dockyard/internal/markdown"
	"github.com/pfassina/dockyard/internal/pane"
	"github.com/pfassina/dockyard/internal/panel"
	"github.com/pfassina/dockyard/internal/session"
	"github.com/pfassina/dockyard/internal/term"
	"github.com/pfassina/dockyard/internal/theme"
)

// filesWidth is the initial width of the Files column.
const filesWidth = 30

// updater is implemented by dockables that take keyboard input.
type updater interface {
	Update(msg tea.Msg) tea.Cmd
}

type Option func(*App)

func WithLogger(l *log.Logger) Option {
	return func(a *App) {
		if l != nil {
			a.logger = l
		}
	}
}

// WithHistory journals closed panes so they can be reopened. The caller
// keeps ownership of db.
func WithHistory(db *history.DB) Option {
	return func(a *App) { a.history = db }
}

// WithStore persists UI preferences between runs.
func WithStore(s *session.Store) Option {
	return func(a *App) { a.store = s }
}

// WithTerminals enables or disables terminal panes.
func WithTerminals(enabled bool) Option {
	return func(a *App) { a.terminals = enabled }
}

// WithClock replaces time.Now for gesture debouncing.
func WithClock(now func() time.Time) Option {
	return func(a *App) {
		if now != nil {
			a.now = now
		}
	}
}

// App is the root Bubble Tea model: a dock of panes with a status bar and
// overlays on top.
type App struct {
	cfg       config.Config
	dock      *dock.Dock
	theme     *theme.Theme
	logger    *log.Logger
	status    panel.Status
	whichKey  panel.WhichKey
	picker    panel.Picker
	prompt    panel.Prompt
	factory   pane.Factory
	history   *history.DB
	store     *session.Store
	state     session.State
	actions   map[string]action
	terminals bool
	now       func() time.Time

	width  int
	height int
	layout Layout
	leader leaderState

	// pendingClose is the pane waiting on a force-close confirmation.
	pendingClose dock.Dockable
	// pending holds terminals created since the last update; they are
	// started once docked.
	pending []*term.Terminal

	events    chan tea.Msg
	done      chan struct{}
	closeOnce sync.Once
	watcher   *config.Watcher
}

// New builds the app with its initial arrangement: the shell (or the help
// pane when terminals are off) with a Files column to its left.
func New(cfg config.Config, opts ...Option) *App {
	a := &App{
		cfg:       cfg,
		logger:    logging.Discard(),
		terminals: true,
		now:       time.Now,
		actions:   newActions(),
		state:     session.Default(),
		events:    make(chan tea.Msg, 16),
		done:      make(chan struct{}),
	}
	for _, opt := range opts {
		opt(a)
	}

	th := a.resolveTheme(cfg.Theme)
	a.theme = &th

	if a.store != nil {
		state, err := a.store.Load()
		if err != nil {
			a.logger.Warn("load session state", "path", a.store.Path(), "err", err)
		}
		a.state = state
	}

	a.dock = dock.New(
		dock.WithLogger(a.logger),
		dock.WithTheme(a.theme),
		dock.WithDividerThickness(cfg.DividerThickness),
		dock.WithTabMinWidth(cfg.TabMinWidth),
		dock.WithDragThreshold(cfg.DragThreshold),
		dock.WithDragDelay(cfg.DragWait()),
		dock.WithClock(a.now),
	)
	a.status = panel.NewStatus(a.theme)
	a.whichKey = panel.NewWhichKey(a.theme)
	a.picker = panel.NewPicker(a.theme)
	a.prompt = panel.NewPrompt(a.theme)
	a.factory = pane.Factory{
		Theme:      a.theme,
		Parser:     markdown.NewParser(),
		ShowHidden: a.state.ShowHidden,
		Help:       a.helpLines,
	}
	if a.terminals {
		a.factory.Terminal = a.newTerminal
	}

	a.arrange()
	return a
}

func (a *App) resolveTheme(name string) theme.Theme {
	if th, ok := theme.Get(name); ok {
		return th
	}
	if name != theme.FromNeovim {
		a.logger.Warn("unknown theme, using default", "theme", name)
	}
	return theme.Default()
}

func (a *App) arrange() {
	main, err := a.factory.Open(pane.Spec{Kind: pane.KindTerminal, Arg: a.cfg.Shell})
	if err != nil {
		main = pane.NewText("Help", a.helpLines(), a.theme)
	}
	a.dock.DockRoot(main, dock.None)

	files := a.newFiles()
	a.dock.DockTo(files, main, dock.West)
	if c := a.dock.ContainerOf(files); c != nil && c.Parent() != nil {
		c.Parent().SetDividerOffset(filesWidth)
	}
	a.dock.Focus(a.dock.ContainerOf(main))
}

// newFiles opens the Files pane at the remembered directory, falling back
// to the start directory when that is gone.
func (a *App) newFiles() *pane.Files {
	dir := a.state.FilesDir
	if dir == "" {
		dir = a.cfg.StartDir
	}
	files := pane.NewFiles(dir, a.state.ShowHidden, a.theme)
	if err := files.Refresh(); err != nil && dir != a.cfg.StartDir {
		a.logger.Warn("files directory unavailable", "dir", dir, "err", err)
		files = pane.NewFiles(a.cfg.StartDir, a.state.ShowHidden, a.theme)
		files.Refresh() //nolint:errcheck // shown in the pane
	}
	return files
}

func (a *App) newTerminal(command string) (dock.Dockable, error) {
	if command == "" {
		command = a.cfg.Shell
	}
	dir := a.cfg.StartDir
	for _, d := range a.dock.Dockables() {
		if f, ok := d.(*pane.Files); ok {
			dir = f.Root()
			break
		}
	}
	t := term.New(command, dir, term.WithSender(a.post), term.WithLogger(a.logger))
	a.pending = append(a.pending, t)
	return t, nil
}

// post delivers a message from another goroutine to the update loop.
func (a *App) post(msg tea.Msg) {
	select {
	case a.events <- msg:
	case <-a.done:
	}
}

func (a *App) waitForEvent() tea.Msg {
	select {
	case msg := <-a.events:
		return eventMsg{msg: msg}
	case <-a.done:
		return nil
	}
}

// WatchConfig reloads path on change, starting each reload from base.
func (a *App) WatchConfig(path string, base config.Config) error {
	w, err := config.NewWatcher(path, base,
		func(cfg config.Config) { a.post(config.Changed{Config: cfg}) },
		func(err error) {
			if errors.Is(err, config.ErrWatcherStopped) {
				a.post(fatalErrorMsg{err: err})
				return
			}
			a.post(configErrorMsg{err: err})
		},
	)
	if err != nil {
		return fmt.Errorf("watch config: %w", err)
	}
	a.watcher = w
	go w.Start()
	return nil
}

func (a *App) Init() tea.Cmd {
	return tea.Batch(a.waitForEvent, a.startPending())
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmd := a.update(msg)
	cmd = tea.Batch(cmd, a.startPending())
	a.sync()
	return a, cmd
}

func (a *App) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.resize(msg.Width, msg.Height)
		return nil

	case tea.KeyMsg:
		return a.handleKey(msg)

	case tea.MouseMsg:
		return a.handleMouse(msg)

	case leaderTimeoutMsg:
		a.handleLeaderTimeout(msg.seq)
		return nil

	case eventMsg:
		return tea.Batch(a.update(msg.msg), a.waitForEvent)

	case config.Changed:
		return a.applyConfig(msg.Config)

	case configErrorMsg:
		a.logger.Error("config reload failed", "err", msg.err)
		a.status.SetError(fmt.Sprintf("config: %v", msg.err))
		return nil

	case fatalErrorMsg:
		a.logger.Error("fatal", "err", msg.err)
		return fatalCmd(msg.err)

	case pane.OpenDocMsg:
		return a.openDoc(msg)

	case pane.FilesChangedMsg:
		a.state.FilesDir = msg.Root
		a.state.ShowHidden = msg.ShowHidden
		a.factory.ShowHidden = msg.ShowHidden
		a.saveState()
		return nil

	case panel.PromptResultMsg:
		a.forceClose()
		return nil

	case panel.PromptCancelledMsg:
		a.pendingClose = nil
		return nil

	case panel.PickedMsg:
		switch v := msg.Item.Value.(type) {
		case dock.Dockable:
			a.focusDockable(v)
		case history.Entry:
			a.reopenEntry(v)
		}
		return nil

	case panel.PickerClosedMsg:
		return nil
	}

	if t, ok := term.Target(msg); ok {
		return a.updateTerminal(t, msg)
	}
	return nil
}

func (a *App) handleKey(msg tea.KeyMsg) tea.Cmd {
	var cmd tea.Cmd
	if a.prompt.Visible() {
		a.prompt, cmd = a.prompt.Update(msg)
		return cmd
	}
	if a.picker.Visible() {
		a.picker, cmd = a.picker.Update(msg)
		return cmd
	}
	if consumed, cmd := a.handleLeaderKey(msg.String()); consumed {
		return cmd
	}
	return a.forward(msg)
}

// forward hands msg to the visible pane of the focused container.
func (a *App) forward(msg tea.Msg) tea.Cmd {
	c := a.dock.ActiveContainer()
	if c == nil {
		return nil
	}
	if u, ok := c.Current().(updater); ok {
		return u.Update(msg)
	}
	return nil
}

func (a *App) updateTerminal(t *term.Terminal, msg tea.Msg) tea.Cmd {
	if a.dock.ContainerOf(t) == nil {
		// Closed while the message was in flight.
		t.Close() //nolint:errcheck // already out of the dock
		return nil
	}
	cmd := t.Update(msg)
	switch msg := msg.(type) {
	case term.ExitedMsg:
		a.logger.Info("terminal exited", "title", t.Title(), "err", msg.Err)
		if c := a.dock.ContainerOf(t); c != nil {
			c.Close(t)
		}
		a.closed(t)
	case term.BufferMsg:
		// The title changed, so the tab widths may too.
		a.dock.Revalidate()
	case term.ColorsMsg:
		a.applyColors(msg)
	}
	return cmd
}

func (a *App) applyColors(msg term.ColorsMsg) {
	if a.cfg.Theme != theme.FromNeovim {
		return
	}
	if msg.Err != nil {
		a.logger.Warn("read nvim colors", "err", msg.Err)
		return
	}
	*a.theme = theme.FromNeovimColors(msg.Colors, theme.Default())
	a.logger.Debug("theme from nvim", "colors", len(msg.Colors))
}

func (a *App) applyConfig(cfg config.Config) tea.Cmd {
	old := a.cfg
	a.cfg = cfg
	a.logger.Info("config reloaded")
	a.status.ClearError()

	a.dock.Configure(
		dock.WithDividerThickness(cfg.DividerThickness),
		dock.WithTabMinWidth(cfg.TabMinWidth),
		dock.WithDragThreshold(cfg.DragThreshold),
		dock.WithDragDelay(cfg.DragWait()),
	)
	if cfg.Theme == old.Theme {
		return nil
	}
	*a.theme = a.resolveTheme(cfg.Theme)
	if cfg.Theme != theme.FromNeovim {
		return nil
	}
	for _, d := range a.dock.Dockables() {
		if t, ok := d.(*term.Terminal); ok && t.Nvim() {
			return t.Colors()
		}
	}
	return nil
}

func (a *App) startPending() tea.Cmd {
	var cmds []tea.Cmd
	for _, t := range a.pending {
		if a.dock.ContainerOf(t) == nil {
			t.Close() //nolint:errcheck // never started
			continue
		}
		cmds = append(cmds, t.Start())
	}
	a.pending = nil
	return tea.Batch(cmds...)
}

func (a *App) resize(width, height int) {
	a.width, a.height = width, height
	a.layout = ComputeLayout(width, height, a.state.ShowStatus)
	a.dock.SetBounds(a.layout.Dock)
	a.whichKey.SetWidth(width)
	a.picker.SetSize(width, height)
	a.prompt.SetSize(width, height)
}

// sync pushes the dock state into the status bar and terminal cursors.
func (a *App) sync() {
	a.status.SetWidth(a.width)

	mode := panel.ModeNormal
	switch {
	case a.prompt.Visible() || a.picker.Visible():
		mode = panel.ModePrompt
	case a.leader.active:
		mode = panel.ModeLeader
	case a.dock.Drag().Active() || a.dock.Divider().Active():
		mode = panel.ModeDrag
	}
	a.status.SetMode(mode)

	var current dock.Dockable
	if c := a.dock.ActiveContainer(); c != nil {
		current = c.Current()
	}
	title := ""
	if current != nil {
		title = current.Title()
	}
	a.status.SetTitle(title)

	all := a.dock.Dockables()
	info := fmt.Sprintf("%d panes", len(all))
	if len(all) == 1 {
		info = "1 pane"
	}
	if a.dock.Maximized() != nil {
		info = "max · " + info
	}
	a.status.SetInfo(info)

	for _, d := range all {
		if t, ok := d.(*term.Terminal); ok {
			t.SetFocused(d == current)
		}
	}
	a.updateWhichKey()
}

func (a *App) saveState() {
	if a.store == nil {
		return
	}
	if err := a.store.Save(a.state); err != nil {
		a.logger.Error("save session state", "err", err)
	}
}

// Close saves the session and stops every pane. Safe to call more than once.
func (a *App) Close() {
	a.closeOnce.Do(func() {
		close(a.done)
		a.saveState()
		if a.watcher != nil {
			if err := a.watcher.Stop(); err != nil {
				a.logger.Error("stop config watcher", "err", err)
			}
		}
		for _, d := range a.dock.Dockables() {
			if c, ok := d.(io.Closer); ok {
				if err := c.Close(); err != nil {
					a.logger.Warn("close pane", "title", d.Title(), "err", err)
				}
			}
		}
	})
}
