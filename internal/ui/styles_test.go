package ui

import (
	"testing"

	"github.com/charmbracelet/x/ansi"
)

func TestFit(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"abc", 5, "abc  "},
		{"abcdef", 4, "abc…"},
		{"abc", 3, "abc"},
		{"abc", 0, ""},
	}
	for _, tt := range tests {
		got := Fit(tt.in, tt.width)
		if got != tt.want {
			t.Errorf("Fit(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
		if tt.width > 0 && ansi.StringWidth(got) != tt.width {
			t.Errorf("Fit(%q, %d) width = %d", tt.in, tt.width, ansi.StringWidth(got))
		}
	}
}

func TestWindow(t *testing.T) {
	tests := []struct {
		name                      string
		offset, cursor, height, n int
		want                      int
	}{
		{"fits", 3, 5, 10, 8, 0},
		{"cursor above", 5, 2, 4, 20, 2},
		{"cursor below", 0, 7, 4, 20, 4},
		{"inside", 3, 4, 4, 20, 3},
		{"clamped to end", 18, 19, 4, 20, 16},
		{"no height", 4, 4, 0, 20, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Window(tt.offset, tt.cursor, tt.height, tt.n)
			if got != tt.want {
				t.Errorf("Window = %d, want %d", got, tt.want)
			}
		})
	}
}
