package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/pfassina/dockyard/internal/app"
	"github.com/pfassina/dockyard/internal/config"
	"github.com/pfassina/dockyard/internal/history"
	"github.com/pfassina/dockyard/internal/logging"
	"github.com/pfassina/dockyard/internal/session"
	"github.com/pfassina/dockyard/internal/ssh"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			os.Exit(130)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// flags holds command-line overrides; zero values mean "not given".
type flags struct {
	configPath string
	verbose    bool
	theme      string
	leaderKey  string
	shell      string
	listen     string
	allowShell bool
}

func newRootCmd() *cobra.Command {
	var f flags

	root := &cobra.Command{
		Use:          "dockyard [dir]",
		Short:        "A tiling, tabbed terminal workspace",
		Long:         "dockyard splits the terminal into dockable panes: shells, nvim, a file browser and markdown documents. Drag tabs with the mouse to rearrange them.",
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, existed, err := loadConfig(cmd, f, args)
			if err != nil {
				return err
			}
			if !existed && len(args) == 0 {
				res, err := config.RunSetup(cfg)
				if err != nil {
					return fmt.Errorf("setup: %w", err)
				}
				if res.Cancelled {
					return nil
				}
				cfg.StartDir = res.StartDir
				if !cmd.Flags().Changed("shell") {
					cfg.Shell = res.Shell
				}
			}
			return runLocal(cmd.Context(), cfg, f.configPath)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&f.configPath, "config", config.ConfigPath(), "path to config.toml")
	pf.BoolVarP(&f.verbose, "verbose", "v", false, "enable debug logging")
	pf.StringVar(&f.theme, "theme", "", "color theme (catppuccin, nord, gruvbox, tokyo-night, nvim)")
	pf.StringVar(&f.leaderKey, "leader-key", "", "leader key (default ctrl+w)")
	pf.StringVar(&f.shell, "shell", "", "command run in new terminal panes")

	root.AddCommand(newServeCmd(&f))
	return root
}

func newServeCmd(f *flags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve [dir]",
		Short: "Serve dockyard over SSH",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := loadConfig(cmd, *f, args)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("listen") {
				cfg.Listen = f.listen
			}
			if cmd.Flags().Changed("allow-shell") {
				cfg.AllowShell = f.allowShell
			}
			return runServe(cmd.Context(), cfg, f.verbose)
		},
	}
	cmd.Flags().StringVar(&f.listen, "listen", "", "listen address (default :2222)")
	cmd.Flags().BoolVar(&f.allowShell, "allow-shell", false, "let remote sessions open terminal panes")
	return cmd
}

// loadConfig layers defaults, the config file and flags, in that order.
func loadConfig(cmd *cobra.Command, f flags, args []string) (config.Config, bool, error) {
	cfg := config.Default()
	existed, err := config.LoadPath(f.configPath, &cfg)
	if err != nil {
		return cfg, existed, fmt.Errorf("load config: %w", err)
	}

	fl := cmd.Flags()
	if fl.Changed("theme") {
		cfg.Theme = f.theme
	}
	if fl.Changed("leader-key") {
		cfg.LeaderKey = f.leaderKey
	}
	if fl.Changed("shell") {
		cfg.Shell = f.shell
	}
	cfg.Debug = f.verbose
	if len(args) == 1 {
		cfg.StartDir = config.ExpandHome(args[0])
	}
	if abs, err := filepath.Abs(cfg.StartDir); err == nil {
		cfg.StartDir = abs
	}
	if info, err := os.Stat(cfg.StartDir); err != nil || !info.IsDir() {
		return cfg, existed, fmt.Errorf("start directory %s is not a directory", cfg.StartDir)
	}
	return cfg, existed, nil
}

func runLocal(ctx context.Context, cfg config.Config, configPath string) error {
	logger, logFile, err := logging.OpenFile(config.StateDir(), logging.Level(cfg.Debug))
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	defer logFile.Close()
	logger.Info("starting", "dir", cfg.StartDir, "theme", cfg.Theme)

	// Ensure lipgloss/termenv uses truecolor so colors read from nvim
	// render accurately instead of being approximated to the 256-color palette.
	if err := os.Setenv("COLORTERM", "truecolor"); err != nil {
		return fmt.Errorf("set COLORTERM: %w", err)
	}

	opts := []app.Option{
		app.WithLogger(logger),
		app.WithStore(session.NewStore(config.StateDir())),
	}
	db, err := history.Open(cfg.HistoryPath)
	if err != nil {
		// Reopen is a convenience; run without it.
		logger.Warn("history unavailable", "path", cfg.HistoryPath, "err", err)
	} else {
		defer db.Close()
		opts = append(opts, app.WithHistory(db))
	}

	a := app.New(cfg, opts...)
	defer a.Close()

	// Reloads start from the defaults with the start directory pinned, so
	// keys deleted from the file fall back cleanly.
	base := config.Default()
	base.StartDir = cfg.StartDir
	if err := a.WatchConfig(configPath, base); err != nil {
		logger.Warn("config reload disabled", "err", err)
	}

	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithMouseAllMotion(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return ctx.Err()
		}
		return err
	}
	return nil
}

func runServe(ctx context.Context, cfg config.Config, verbose bool) error {
	logger := logging.New(os.Stderr, logging.Level(verbose))
	ctx = logging.WithLogger(ctx, logger)

	s, err := ssh.New(ctx, cfg)
	if err != nil {
		return err
	}
	err = s.ListenAndServe(ctx)
	if errors.Is(err, context.Canceled) {
		logger.Info("ssh server stopped")
		return nil
	}
	return err
}
