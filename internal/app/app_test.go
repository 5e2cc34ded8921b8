package app

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"github.com/pfassina/dockyard/internal/config"
	"github.com/pfassina/dockyard/internal/dock"
	"github.com/pfassina/dockyard/internal/history"
	"github.com/pfassina/dockyard/internal/pane"
	"github.com/pfassina/dockyard/internal/panel"
	"github.com/pfassina/dockyard/internal/session"
)

// guarded is a pane that refuses to close while dirty.
type guarded struct{ dirty bool }

func (g *guarded) Title() string         { return "guarded" }
func (g *guarded) TitleIcon() string     { return "" }
func (g *guarded) TitleTooltip() string  { return "guarded pane" }
func (g *guarded) Activated()            {}
func (g *guarded) MayAttemptClose() bool { return true }
func (g *guarded) AttemptClose() bool    { return !g.dirty }

func testConfig(t *testing.T) config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.StartDir = t.TempDir()
	cfg.HistoryPath = ""
	return cfg
}

func newTestApp(t *testing.T, cfg config.Config, opts ...Option) *App {
	t.Helper()
	opts = append([]Option{WithTerminals(false)}, opts...)
	a := New(cfg, opts...)
	t.Cleanup(a.Close)
	a.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return a
}

func ctrlW() tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyCtrlW} }

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// leader presses the leader key and then key.
func leader(a *App, key string) tea.Cmd {
	a.Update(ctrlW())
	_, cmd := a.Update(runes(key))
	return cmd
}

func press(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
}

func motion(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft}
}

func release(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft}
}

func paneOf[T dock.Dockable](t *testing.T, a *App) T {
	t.Helper()
	for _, d := range a.dock.Dockables() {
		if p, ok := d.(T); ok {
			return p
		}
	}
	var zero T
	t.Fatalf("no %T in dock %s", zero, a.dock)
	return zero
}

// tabAt finds a column on the header of c that hits tab i.
func tabAt(t *testing.T, c *dock.Container, i int) int {
	t.Helper()
	b := c.Header().Bounds()
	for x := b.X; x < b.Right(); x++ {
		if hit := c.Header().HitTest(x, b.Y); hit.Kind == dock.HitTab && hit.Index == i {
			return x
		}
	}
	t.Fatalf("tab %d not on screen", i)
	return 0
}

func TestNewArrangement(t *testing.T) {
	a := newTestApp(t, testConfig(t))

	help := paneOf[*pane.Text](t, a)
	files := paneOf[*pane.Files](t, a)
	if got := a.current(); got != help {
		t.Errorf("focused = %v, want the help pane", got)
	}
	fb := a.dock.ContainerOf(files).Bounds()
	if fb.X != 0 || fb.W != filesWidth {
		t.Errorf("files bounds = %+v, want x=0 w=%d", fb, filesWidth)
	}
	if a.dock.Bounds().H != 29 {
		t.Errorf("dock height = %d, want 29 (status row)", a.dock.Bounds().H)
	}

	lines := strings.Split(a.View(), "\n")
	if len(lines) != 30 {
		t.Fatalf("view rows = %d, want 30", len(lines))
	}
	if status := ansi.Strip(lines[29]); !strings.Contains(status, "Help") || !strings.Contains(status, "2 panes") {
		t.Errorf("status = %q", status)
	}
}

func TestLeaderKeys(t *testing.T) {
	a := newTestApp(t, testConfig(t))

	a.Update(ctrlW())
	if !a.leader.active || a.status.Mode() != panel.ModeLeader {
		t.Fatal("leader not active after ctrl+w")
	}
	a.Update(ctrlW())
	if a.leader.active {
		t.Error("leader twice should pass through and end the sequence")
	}

	leader(a, "m")
	if a.dock.Maximized() == nil {
		t.Error("m should maximize")
	}
	leader(a, "m")
	if a.dock.Maximized() != nil {
		t.Error("second m should restore")
	}

	leader(a, "h")
	if _, ok := a.current().(*pane.Files); !ok {
		t.Errorf("h should focus the files pane, got %v", a.current())
	}
	leader(a, "l")
	if _, ok := a.current().(*pane.Text); !ok {
		t.Errorf("l should focus back, got %v", a.current())
	}

	leader(a, "v")
	if !strings.Contains(a.status.Error(), "disabled") {
		t.Errorf("split without terminals: error = %q", a.status.Error())
	}
	if n := len(a.dock.Dockables()); n != 2 {
		t.Errorf("panes = %d, want 2", n)
	}
}

func TestLeaderTimeoutShowsWhichKey(t *testing.T) {
	a := newTestApp(t, testConfig(t))
	a.Update(ctrlW())
	a.Update(leaderTimeoutMsg{seq: a.leader.seq - 1})
	if a.whichKey.Visible() {
		t.Error("stale timeout should be ignored")
	}
	a.Update(leaderTimeoutMsg{seq: a.leader.seq})
	if !a.whichKey.Visible() {
		t.Fatal("which-key should show after the timeout")
	}
	if !strings.Contains(ansi.Strip(a.View()), "Maximize") {
		t.Error("which-key popup not drawn")
	}
	a.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if a.leader.active || a.whichKey.Visible() {
		t.Error("esc should cancel the leader")
	}
}

func TestUnknownAction(t *testing.T) {
	cfg := testConfig(t)
	cfg.Keys = append(cfg.Keys, config.Keybind{Key: "z", Action: "bogus"})
	a := newTestApp(t, cfg)
	leader(a, "z")
	if !strings.Contains(a.status.Error(), `unknown action "bogus"`) {
		t.Errorf("error = %q", a.status.Error())
	}
}

func TestQuit(t *testing.T) {
	a := newTestApp(t, testConfig(t))
	cmd := leader(a, "q")
	if cmd == nil {
		t.Fatal("q returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
}

func TestCloseAndReopen(t *testing.T) {
	db, err := history.OpenMemory()
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()
	a := newTestApp(t, testConfig(t), WithHistory(db))

	leader(a, "h")
	leader(a, "x")
	if n := len(a.dock.Dockables()); n != 1 {
		t.Fatalf("panes after close = %d, want 1", n)
	}
	if a.dock.ContainerOf(paneOf[*pane.Text](t, a)).Bounds().W != 100 {
		t.Error("remaining pane should fill the dock")
	}

	leader(a, "u")
	files := paneOf[*pane.Files](t, a)
	if files.Root() != a.cfg.StartDir {
		t.Errorf("reopened root = %s, want %s", files.Root(), a.cfg.StartDir)
	}
	leader(a, "u")
	if a.status.Error() != "nothing to reopen" {
		t.Errorf("error = %q", a.status.Error())
	}
}

func TestPickRecent(t *testing.T) {
	db, err := history.OpenMemory()
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()
	a := newTestApp(t, testConfig(t), WithHistory(db))

	leader(a, "h")
	leader(a, "x")
	leader(a, "U")
	if !a.picker.Visible() {
		t.Fatal("recent picker should be open")
	}
	items := a.picker.Items()
	if len(items) != 1 {
		t.Fatalf("items = %d, want 1", len(items))
	}
	if e, ok := items[0].Value.(history.Entry); !ok || e.Kind != string(pane.KindFiles) {
		t.Fatalf("item value = %#v", items[0].Value)
	}

	_, cmd := a.Update(tea.KeyMsg{Type: tea.KeyEnter})
	a.Update(cmd())
	paneOf[*pane.Files](t, a)
	if got, _ := db.Recent(5); len(got) != 0 {
		t.Errorf("journal after reopen = %+v, want empty", got)
	}

	leader(a, "U")
	if a.picker.Visible() || a.status.Error() != "nothing to reopen" {
		t.Errorf("empty journal: visible=%v error=%q", a.picker.Visible(), a.status.Error())
	}
}

func TestCloseVetoAsksFirst(t *testing.T) {
	a := newTestApp(t, testConfig(t))
	g := &guarded{dirty: true}
	a.place(g, dock.None)

	leader(a, "x")
	if !a.prompt.Visible() || a.pendingClose != g {
		t.Fatal("vetoed close should ask for confirmation")
	}
	if a.status.Mode() != panel.ModePrompt {
		t.Errorf("mode = %s", a.status.Mode())
	}

	_, cmd := a.Update(tea.KeyMsg{Type: tea.KeyEsc})
	a.Update(cmd())
	if a.dock.ContainerOf(g) == nil || a.pendingClose != nil {
		t.Fatal("cancel should keep the pane")
	}

	leader(a, "x")
	_, cmd = a.Update(runes("y"))
	if a.prompt.Visible() {
		t.Error("y should hide the prompt")
	}
	a.Update(cmd())
	if a.dock.ContainerOf(g) != nil {
		t.Error("confirmed close should remove the pane")
	}
}

func TestMouseDragSplits(t *testing.T) {
	a := newTestApp(t, testConfig(t))
	help := paneOf[*pane.Text](t, a)
	files := paneOf[*pane.Files](t, a)
	hc := a.dock.ContainerOf(help)
	x := tabAt(t, hc, 0)

	a.Update(press(x, 0))
	if !a.dock.Drag().Armed() {
		t.Fatal("tab press should arm a drag")
	}
	a.Update(motion(x, 15))
	if !a.dock.Drag().Active() || a.status.Mode() != panel.ModeDrag {
		t.Fatal("moving past the threshold should start the drag")
	}
	a.Update(motion(5, 15))
	if a.dock.Drag().Preview().Empty() {
		t.Error("no drop preview over the files pane")
	}
	a.Update(release(5, 15))

	if a.dock.Drag().Active() {
		t.Error("drag still active after release")
	}
	if got := a.dock.ContainerOf(help).Bounds().X; got != 0 {
		t.Errorf("help x = %d, want 0 (docked west of files)", got)
	}
	if got := a.dock.ContainerOf(files).Bounds().X; got == 0 {
		t.Error("files should have moved right")
	}
}

func TestMouseClickIsNotADrag(t *testing.T) {
	a := newTestApp(t, testConfig(t))
	files := paneOf[*pane.Files](t, a)
	fc := a.dock.ContainerOf(files)
	x := tabAt(t, fc, 0)
	before := a.dock.String()

	a.Update(press(x, 0))
	a.Update(release(x, 0))
	if a.dock.Drag().Armed() || a.dock.Drag().Active() {
		t.Error("click left a drag behind")
	}
	if a.dock.String() != before {
		t.Errorf("click changed the tree: %s -> %s", before, a.dock.String())
	}
	if a.current() != files {
		t.Error("clicking a tab should focus it")
	}
}

func TestMouseDividerDrag(t *testing.T) {
	a := newTestApp(t, testConfig(t))
	files := paneOf[*pane.Files](t, a)

	a.Update(press(filesWidth, 10))
	if !a.dock.Divider().Pressed() {
		t.Fatal("press on the divider should start a resize")
	}
	a.Update(motion(filesWidth+10, 10))
	a.Update(release(filesWidth+10, 10))
	if w := a.dock.ContainerOf(files).Bounds().W; w != filesWidth+10 {
		t.Errorf("files width = %d, want %d", w, filesWidth+10)
	}
	if a.dock.Divider().Pressed() {
		t.Error("divider still pressed after release")
	}
}

func TestMouseHoverTooltip(t *testing.T) {
	a := newTestApp(t, testConfig(t))
	files := paneOf[*pane.Files](t, a)
	x := tabAt(t, a.dock.ContainerOf(files), 0)

	a.Update(tea.MouseMsg{X: x, Y: 0, Action: tea.MouseActionMotion})
	if a.status.Tooltip() != files.TitleTooltip() {
		t.Errorf("tooltip = %q, want %q", a.status.Tooltip(), files.TitleTooltip())
	}
	a.Update(tea.MouseMsg{X: x, Y: 10, Action: tea.MouseActionMotion})
	if a.status.Tooltip() != "" {
		t.Errorf("tooltip = %q off the header", a.status.Tooltip())
	}
}

func TestOpenDoc(t *testing.T) {
	cfg := testConfig(t)
	path := filepath.Join(cfg.StartDir, "readme.md")
	if err := os.WriteFile(path, []byte("# Read me\n\nhello\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	a := newTestApp(t, cfg)
	files := paneOf[*pane.Files](t, a)

	a.Update(pane.OpenDocMsg{Path: path, From: files})
	doc := paneOf[*pane.Doc](t, a)
	if a.current() != doc || doc.Title() != "Read me" {
		t.Fatalf("current = %v", a.current())
	}
	fb, db := a.dock.ContainerOf(files).Bounds(), a.dock.ContainerOf(doc).Bounds()
	if db.X <= fb.X {
		t.Errorf("doc %+v should open east of files %+v", db, fb)
	}

	a.Update(pane.OpenDocMsg{Path: path, From: files})
	if n := len(a.dock.Dockables()); n != 3 {
		t.Errorf("panes = %d, want 3 (no duplicate doc)", n)
	}
}

func TestFilesChangedSavesSession(t *testing.T) {
	store := session.NewStore(t.TempDir())
	a := newTestApp(t, testConfig(t), WithStore(store))
	dir := t.TempDir()

	a.Update(pane.FilesChangedMsg{Root: dir, ShowHidden: true})
	state, err := store.Load()
	if err != nil {
		t.Fatal(err)
	}
	if state.FilesDir != dir || !state.ShowHidden {
		t.Errorf("state = %+v", state)
	}

	b := newTestApp(t, testConfig(t), WithStore(store))
	if got := paneOf[*pane.Files](t, b).Root(); got != dir {
		t.Errorf("restored files root = %s, want %s", got, dir)
	}
}

func TestToggleStatus(t *testing.T) {
	a := newTestApp(t, testConfig(t))
	leader(a, "b")
	if a.dock.Bounds().H != 30 {
		t.Errorf("dock height = %d, want 30", a.dock.Bounds().H)
	}
	if rows := len(strings.Split(a.View(), "\n")); rows != 30 {
		t.Errorf("view rows = %d, want 30", rows)
	}
}

func TestConfigEventsReachUpdate(t *testing.T) {
	a := newTestApp(t, testConfig(t))
	cfg := a.cfg
	cfg.Theme = "gruvbox"
	cfg.DividerThickness = 0

	a.post(config.Changed{Config: cfg})
	a.Update(a.waitForEvent())
	if a.theme.Name != "gruvbox" {
		t.Errorf("theme = %s, want gruvbox", a.theme.Name)
	}
	if !a.dock.Root().DividerRect().Empty() {
		t.Error("zero thickness should hide the divider")
	}

	a.post(configErrorMsg{err: os.ErrPermission})
	a.Update(a.waitForEvent())
	if !strings.Contains(a.status.Error(), "config") {
		t.Errorf("error = %q", a.status.Error())
	}

	a.Close()
	if msg := a.waitForEvent(); msg != nil {
		t.Errorf("event after close = %#v", msg)
	}
}

func TestFatalErrorQuits(t *testing.T) {
	a := newTestApp(t, testConfig(t))
	if _, cmd := a.Update(fatalErrorMsg{err: config.ErrWatcherStopped}); cmd == nil {
		t.Fatal("a fatal error should return a quitting command")
	}
}

func TestOverlayCenter(t *testing.T) {
	base := strings.Repeat(".....\n", 4) + "....."
	got := overlayCenter(base, "ab\ncd", 5, 5)
	want := ".....\n.ab..\n.cd..\n.....\n....."
	if got != want {
		t.Errorf("overlayCenter =\n%s\nwant\n%s", got, want)
	}
}
