package app

import tea "github.com/charmbracelet/bubbletea"

// fatalErrorMsg is sent to the Bubble Tea program when a background subsystem
// encounters an unrecoverable error. The app should quit and show the error.
type fatalErrorMsg struct{ err error }

func fatalCmd(err error) tea.Cmd {
	return tea.Batch(tea.Printf("fatal: %v\n", err), tea.Quit)
}

// eventMsg wraps a message posted from outside the update loop (config
// watcher, nvim notifications).
type eventMsg struct{ msg tea.Msg }

// configErrorMsg reports a config file that failed to reload. The old
// settings stay in effect.
type configErrorMsg struct{ err error }

// leaderTimeoutMsg fires when the leader has been held without a follow-up
// key; seq ties it to one leader press.
type leaderTimeoutMsg struct{ seq int }
