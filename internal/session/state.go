package session

// State holds UI preferences that outlive a run. The dock arrangement
// itself is not persisted.
type State struct {
	ShowStatus bool   `json:"show_status"`
	ShowHidden bool   `json:"show_hidden"`
	FilesDir   string `json:"files_dir,omitempty"`
}

// Default returns the default session state.
func Default() State {
	return State{ShowStatus: true}
}
