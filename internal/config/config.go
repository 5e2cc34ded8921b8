package config

import (
	"os"
	"time"
)

type Config struct {
	Theme            string
	LeaderKey        string
	LeaderTimeout    int // milliseconds
	DividerThickness int
	TabMinWidth      int
	DragThreshold    int
	DragDelay        int // milliseconds
	Shell            string
	Listen           string
	AllowShell       bool
	HistoryPath      string
	StartDir         string
	Debug            bool
	Keys             []Keybind
}

func Default() Config {
	shell := os.Getenv("SHELL")
	if shell == "" {
		shell = "/bin/sh"
	}
	wd, _ := os.Getwd()
	return Config{
		Theme:            "catppuccin",
		LeaderKey:        "ctrl+w",
		LeaderTimeout:    500,
		DividerThickness: 1,
		TabMinWidth:      6,
		DragThreshold:    2,
		DragDelay:        250,
		Shell:            shell,
		Listen:           ":2222",
		HistoryPath:      DefaultHistoryPath(),
		StartDir:         wd,
		Keys:             DefaultKeybinds(),
	}
}

// LeaderWait is LeaderTimeout as a duration.
func (c Config) LeaderWait() time.Duration {
	return time.Duration(c.LeaderTimeout) * time.Millisecond
}

// DragWait is DragDelay as a duration.
func (c Config) DragWait() time.Duration {
	return time.Duration(c.DragDelay) * time.Millisecond
}
