package config

import (
	"slices"
	"strings"
)

// Keybind maps a key pressed after the leader to an action name.
type Keybind struct {
	Key    string
	Action string
}

// DefaultKeybinds returns the default leader key bindings.
func DefaultKeybinds() []Keybind {
	return []Keybind{
		{Key: "s", Action: "split_south"},
		{Key: "v", Action: "split_east"},
		{Key: "t", Action: "new_tab"},
		{Key: "x", Action: "close_tab"},
		{Key: "m", Action: "maximize"},
		{Key: "n", Action: "next_tab"},
		{Key: "p", Action: "prev_tab"},
		{Key: "h", Action: "focus_west"},
		{Key: "j", Action: "focus_south"},
		{Key: "k", Action: "focus_north"},
		{Key: "l", Action: "focus_east"},
		{Key: "H", Action: "move_west"},
		{Key: "J", Action: "move_south"},
		{Key: "K", Action: "move_north"},
		{Key: "L", Action: "move_east"},
		{Key: "o", Action: "pick_tab"},
		{Key: "u", Action: "reopen"},
		{Key: "U", Action: "recent"},
		{Key: "=", Action: "even_splits"},
		{Key: "f", Action: "files"},
		{Key: "?", Action: "help"},
		{Key: "b", Action: "status"},
		{Key: "q", Action: "quit"},
	}
}

// MergeKeybinds applies overrides (key to action) on top of base. An empty
// action unbinds the key.
func MergeKeybinds(base []Keybind, overrides map[string]string) []Keybind {
	out := slices.Clone(base)
	for key, action := range overrides {
		i := slices.IndexFunc(out, func(k Keybind) bool { return k.Key == key })
		switch {
		case action == "" && i >= 0:
			out = slices.Delete(out, i, i+1)
		case action == "":
		case i >= 0:
			out[i].Action = action
		default:
			out = append(out, Keybind{Key: key, Action: action})
		}
	}
	slices.SortStableFunc(out, func(a, b Keybind) int {
		if d := rank(a.Key) - rank(b.Key); d != 0 {
			return d
		}
		return strings.Compare(a.Key, b.Key)
	})
	return out
}

func rank(key string) int {
	if i := slices.Index(keyOrder, key); i >= 0 {
		return i
	}
	return len(keyOrder)
}

// keyOrder keeps the which-key popup stable: defaults first, in their
// usual order, then additions.
var keyOrder = func() []string {
	var keys []string
	for _, k := range DefaultKeybinds() {
		keys = append(keys, k.Key)
	}
	return keys
}()
