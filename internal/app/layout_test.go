package app

import (
	"testing"

	"github.com/pfassina/dockyard/internal/dock"
)

func TestComputeLayout(t *testing.T) {
	tests := []struct {
		name       string
		w, h       int
		showStatus bool
		want       Layout
	}{
		{"with status", 80, 24, true, Layout{Dock: dock.Rect{W: 80, H: 23}, StatusRow: 23}},
		{"without status", 80, 24, false, Layout{Dock: dock.Rect{W: 80, H: 24}, StatusRow: -1}},
		{"one row", 80, 1, true, Layout{Dock: dock.Rect{W: 80, H: 1}, StatusRow: -1}},
		{"zero size", 0, 0, true, Layout{Dock: dock.Rect{W: 1, H: 1}, StatusRow: -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ComputeLayout(tt.w, tt.h, tt.showStatus); got != tt.want {
				t.Errorf("ComputeLayout = %+v, want %+v", got, tt.want)
			}
		})
	}
}
