package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// fileConfig mirrors Config with pointer fields so we can distinguish
// "not set" from zero values when merging TOML.
type fileConfig struct {
	Theme            *string           `toml:"theme"`
	LeaderKey        *string           `toml:"leader_key"`
	LeaderTimeout    *int              `toml:"leader_timeout"`
	DividerThickness *int              `toml:"divider_thickness"`
	TabMinWidth      *int              `toml:"tab_min_width"`
	DragThreshold    *int              `toml:"drag_threshold"`
	DragDelay        *int              `toml:"drag_delay"`
	Shell            *string           `toml:"shell"`
	Listen           *string           `toml:"listen"`
	AllowShell       *bool             `toml:"allow_shell"`
	HistoryPath      *string           `toml:"history_path"`
	StartDir         *string           `toml:"start_dir"`
	Keys             map[string]string `toml:"keys"`
}

// ConfigDir returns the dockyard config directory, respecting XDG_CONFIG_HOME.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "dockyard")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "dockyard")
}

// ConfigPath returns the full path to config.toml.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// StateDir returns the directory for logs and history, respecting
// XDG_STATE_HOME.
func StateDir() string {
	if xdg := os.Getenv("XDG_STATE_HOME"); xdg != "" {
		return filepath.Join(xdg, "dockyard")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "state", "dockyard")
}

func DefaultHistoryPath() string {
	return filepath.Join(StateDir(), "history.db")
}

// LoadFile reads config.toml and merges non-nil fields into cfg.
// Returns true if the file existed, false otherwise.
func LoadFile(cfg *Config) (bool, error) {
	return LoadPath(ConfigPath(), cfg)
}

// LoadPath is LoadFile for an explicit path.
func LoadPath(path string, cfg *Config) (bool, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	var fc fileConfig
	if err := toml.Unmarshal(data, &fc); err != nil {
		return true, fmt.Errorf("parsing %s: %w", path, err)
	}
	fc.merge(cfg)
	return true, nil
}

func (fc fileConfig) merge(cfg *Config) {
	setString := func(dst *string, v *string) {
		if v != nil {
			*dst = *v
		}
	}
	setInt := func(dst *int, v *int) {
		if v != nil {
			*dst = *v
		}
	}

	setString(&cfg.Theme, fc.Theme)
	setString(&cfg.LeaderKey, fc.LeaderKey)
	setInt(&cfg.LeaderTimeout, fc.LeaderTimeout)
	setInt(&cfg.DividerThickness, fc.DividerThickness)
	setInt(&cfg.TabMinWidth, fc.TabMinWidth)
	setInt(&cfg.DragThreshold, fc.DragThreshold)
	setInt(&cfg.DragDelay, fc.DragDelay)
	setString(&cfg.Shell, fc.Shell)
	setString(&cfg.Listen, fc.Listen)
	if fc.AllowShell != nil {
		cfg.AllowShell = *fc.AllowShell
	}
	if fc.HistoryPath != nil {
		cfg.HistoryPath = ExpandHome(*fc.HistoryPath)
	}
	if fc.StartDir != nil {
		cfg.StartDir = ExpandHome(*fc.StartDir)
	}
	if len(fc.Keys) > 0 {
		cfg.Keys = MergeKeybinds(cfg.Keys, fc.Keys)
	}
}

// SaveFile writes a minimal config.toml holding the first-run answers.
func SaveFile(res SetupResult) error {
	dir := ConfigDir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	// Store with ~ for readability if under home dir.
	home, _ := os.UserHomeDir()
	display := res.StartDir
	if home != "" && strings.HasPrefix(display, home+string(os.PathSeparator)) {
		display = "~" + display[len(home):]
	}

	fc := fileConfig{StartDir: &display}
	if res.Shell != "" {
		fc.Shell = &res.Shell
	}
	f, err := os.Create(ConfigPath())
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(fc)
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, _ := os.UserHomeDir()
	if path == "~" {
		return home
	}
	return filepath.Join(home, path[2:])
}
