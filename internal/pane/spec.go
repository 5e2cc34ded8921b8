// Package pane holds the dockables that ship with dockyard: static text,
// a directory browser and a markdown viewer. Terminals live in package term.
package pane

import (
	"errors"
	"fmt"

	"github.com/pfassina/dockyard/internal/dock"
	"github.com/pfassina/dockyard/internal/markdown"
	"github.com/pfassina/dockyard/internal/theme"
)

// Kind names a pane type in the closed-pane history.
type Kind string

const (
	KindText     Kind = "text"
	KindFiles    Kind = "files"
	KindDoc      Kind = "doc"
	KindTerminal Kind = "terminal"
)

// Spec is enough to rebuild a pane after it was closed.
type Spec struct {
	Kind  Kind
	Arg   string
	Title string
}

// Describer is implemented by panes that can be reopened.
type Describer interface {
	Describe() Spec
}

// ErrDisabled is returned when a pane kind is turned off for this session.
var ErrDisabled = errors.New("pane kind disabled")

// Factory builds panes from specs.
type Factory struct {
	Theme      *theme.Theme
	Parser     *markdown.Parser
	ShowHidden bool
	// Terminal starts a terminal pane; nil disables terminals.
	Terminal func(arg string) (dock.Dockable, error)
	// Help supplies the lines of the help pane.
	Help func() []string
}

// Open rebuilds the pane described by s.
func (f Factory) Open(s Spec) (dock.Dockable, error) {
	switch s.Kind {
	case KindText:
		var lines []string
		if f.Help != nil {
			lines = f.Help()
		}
		return NewText(s.Title, lines, f.Theme), nil
	case KindFiles:
		files := NewFiles(s.Arg, f.ShowHidden, f.Theme)
		if err := files.Refresh(); err != nil {
			return nil, err
		}
		return files, nil
	case KindDoc:
		return OpenDoc(s.Arg, f.Parser, f.Theme)
	case KindTerminal:
		if f.Terminal == nil {
			return nil, fmt.Errorf("terminal: %w", ErrDisabled)
		}
		return f.Terminal(s.Arg)
	}
	return nil, fmt.Errorf("unknown pane kind %q", s.Kind)
}
