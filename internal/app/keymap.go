package app

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/pfassina/dockyard/internal/dock"
	"github.com/pfassina/dockyard/internal/panel"
)

// action is something a leader binding can run.
type action struct {
	Label string
	Run   func(a *App) tea.Cmd
}

// newActions maps the action names used in config keybinds to their code.
func newActions() map[string]action {
	return map[string]action{
		"split_south": {"Split terminal below", func(a *App) tea.Cmd { return a.splitTerminal(dock.South) }},
		"split_east":  {"Split terminal right", func(a *App) tea.Cmd { return a.splitTerminal(dock.East) }},
		"new_tab":     {"New terminal tab", func(a *App) tea.Cmd { return a.splitTerminal(dock.None) }},
		"close_tab":   {"Close tab", (*App).closeCurrent},
		"maximize":    {"Maximize / restore", (*App).toggleMaximize},
		"next_tab":    {"Next tab", func(a *App) tea.Cmd { return a.cycleTab(1) }},
		"prev_tab":    {"Previous tab", func(a *App) tea.Cmd { return a.cycleTab(-1) }},
		"focus_west":  {"Focus left", func(a *App) tea.Cmd { return a.focusNeighbor(dock.West) }},
		"focus_south": {"Focus down", func(a *App) tea.Cmd { return a.focusNeighbor(dock.South) }},
		"focus_north": {"Focus up", func(a *App) tea.Cmd { return a.focusNeighbor(dock.North) }},
		"focus_east":  {"Focus right", func(a *App) tea.Cmd { return a.focusNeighbor(dock.East) }},
		"move_west":   {"Move tab to left edge", func(a *App) tea.Cmd { return a.moveCurrent(dock.West) }},
		"move_south":  {"Move tab to bottom edge", func(a *App) tea.Cmd { return a.moveCurrent(dock.South) }},
		"move_north":  {"Move tab to top edge", func(a *App) tea.Cmd { return a.moveCurrent(dock.North) }},
		"move_east":   {"Move tab to right edge", func(a *App) tea.Cmd { return a.moveCurrent(dock.East) }},
		"pick_tab":    {"Pick tab", (*App).pickTab},
		"reopen":      {"Reopen closed pane", (*App).reopen},
		"recent":      {"Recently closed", (*App).pickRecent},
		"even_splits": {"Even splits", (*App).evenSplits},
		"files":       {"Files", (*App).openFiles},
		"help":        {"Help", (*App).openHelp},
		"status":      {"Toggle status bar", (*App).toggleStatus},
		"quit":        {"Quit", (*App).quit},
	}
}

// leaderState tracks a pending leader sequence.
type leaderState struct {
	active   bool
	seq      int
	showHelp bool
}

func (a *App) leaderTick() tea.Cmd {
	seq := a.leader.seq
	return tea.Tick(a.cfg.LeaderWait(), func(time.Time) tea.Msg {
		return leaderTimeoutMsg{seq: seq}
	})
}

// handleLeaderKey processes a key against the leader bindings.
// Returns true if the key was consumed by the leader system.
func (a *App) handleLeaderKey(key string) (consumed bool, cmd tea.Cmd) {
	if !a.leader.active {
		if key != a.cfg.LeaderKey {
			return false, nil
		}
		a.leader.active = true
		a.leader.showHelp = false
		a.leader.seq++
		return true, a.leaderTick()
	}

	a.cancelLeader()
	switch key {
	case a.cfg.LeaderKey:
		// Leader twice sends the leader key itself to the pane.
		return false, nil
	case "esc":
		return true, nil
	}
	for _, kb := range a.cfg.Keys {
		if kb.Key != key {
			continue
		}
		act, ok := a.actions[kb.Action]
		if !ok {
			a.status.SetError(fmt.Sprintf("unknown action %q bound to %s", kb.Action, key))
			return true, nil
		}
		a.logger.Debug("leader action", "key", key, "action", kb.Action)
		return true, act.Run(a)
	}
	return true, nil
}

func (a *App) handleLeaderTimeout(seq int) {
	if a.leader.active && seq == a.leader.seq {
		a.leader.showHelp = true
	}
}

func (a *App) cancelLeader() {
	a.leader.active = false
	a.leader.showHelp = false
}

func (a *App) updateWhichKey() {
	if !a.leader.showHelp {
		a.whichKey.Clear()
		return
	}
	var entries []panel.WhichKeyEntry
	for _, kb := range a.cfg.Keys {
		label := kb.Action
		if act, ok := a.actions[kb.Action]; ok {
			label = act.Label
		}
		entries = append(entries, panel.WhichKeyEntry{Key: kb.Key, Label: label})
	}
	a.whichKey.SetEntries(a.cfg.LeaderKey, entries)
}

// helpLines describes the bindings for the help pane.
func (a *App) helpLines() []string {
	lines := []string{
		"Mouse",
		"  drag a tab        move it; drop on a header to stack",
		"  drag a divider    resize",
		"  ×  □  »           close, maximize, hidden tabs",
		"",
		"Leader: " + a.cfg.LeaderKey + " (twice sends it to the pane)",
	}
	for _, kb := range a.cfg.Keys {
		label := kb.Action
		if act, ok := a.actions[kb.Action]; ok {
			label = act.Label
		}
		lines = append(lines, fmt.Sprintf("  %-6s %s", kb.Key, label))
	}
	return lines
}
