package ssh

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	bts "github.com/charmbracelet/wish/bubbletea"

	"github.com/pfassina/dockyard/internal/app"
	"github.com/pfassina/dockyard/internal/config"
	"github.com/pfassina/dockyard/internal/history"
)

// NewHandler returns a Bubble Tea handler for SSH sessions. Terminal panes
// run on the server, so they are only offered when cfg.AllowShell is set.
// Closed panes are journaled in memory for the life of the session.
func NewHandler(cfg config.Config, logger *log.Logger) bts.Handler {
	return func(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
		sl := logger.With("user", sess.User(), "remote", sess.RemoteAddr().String())

		opts := []app.Option{
			app.WithLogger(sl),
			app.WithTerminals(cfg.AllowShell),
		}
		db, err := history.OpenMemory()
		if err != nil {
			sl.Warn("session history unavailable", "err", err)
		} else {
			opts = append(opts, app.WithHistory(db))
		}
		a := app.New(cfg, opts...)

		go func() {
			<-sess.Context().Done()
			a.Close()
			if db != nil {
				if err := db.Close(); err != nil {
					sl.Warn("close session history", "err", err)
				}
			}
			sl.Info("session ended")
		}()

		popts := append(bts.MakeOptions(sess), tea.WithAltScreen(), tea.WithMouseAllMotion())
		return a, popts
	}
}
