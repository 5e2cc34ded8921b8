// Package ssh serves dockyard over SSH with wish. Every session gets its
// own App and Dock.
package ssh

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	bts "github.com/charmbracelet/wish/bubbletea"
	"github.com/charmbracelet/wish/logging"
	"github.com/muesli/termenv"

	"github.com/pfassina/dockyard/internal/config"
	dlog "github.com/pfassina/dockyard/internal/logging"
)

// Server wraps a Wish SSH server.
type Server struct {
	server *ssh.Server
	cfg    config.Config
	logger *log.Logger
}

// New creates a new SSH server. The logger is taken from ctx.
func New(ctx context.Context, cfg config.Config) (*Server, error) {
	logger := dlog.FromContext(ctx)
	hostKeyPath := filepath.Join(config.StateDir(), "ssh_host_key")

	// Sessions share the global lipgloss renderer; assume a truecolor
	// client rather than probing the server's own stdout.
	lipgloss.SetColorProfile(termenv.TrueColor)

	s, err := wish.NewServer(
		wish.WithAddress(cfg.Listen),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithMiddleware(
			bts.Middleware(NewHandler(cfg, logger)),
			activeterm.Middleware(),
			logging.MiddlewareWithLogger(logger),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("create ssh server: %w", err)
	}

	return &Server{server: s, cfg: cfg, logger: logger}, nil
}

// ListenAndServe serves until ctx is done or the listener fails.
func (s *Server) ListenAndServe(ctx context.Context) error {
	errc := make(chan error, 1)
	go func() {
		s.logger.Info("ssh server listening", "addr", s.cfg.Listen, "shell", s.cfg.AllowShell)
		errc <- s.server.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	if err := s.Close(); err != nil {
		return err
	}
	if err := <-errc; err != nil && !errors.Is(err, ssh.ErrServerClosed) {
		return err
	}
	return ctx.Err()
}

// Close stops the SSH server.
func (s *Server) Close() error {
	return s.server.Close()
}
