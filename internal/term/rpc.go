package term

import (
	"errors"
	"fmt"
	"time"

	"github.com/neovim/go-client/nvim"
)

// RPC is the msgpack connection to an nvim pane's --listen socket.
type RPC struct {
	client   *nvim.Nvim
	onBuffer func(name string)
}

// ConnectRPC dials the socket, retrying while nvim is still starting, and
// subscribes to buffer changes.
func ConnectRPC(socket string, onBuffer func(name string)) (*RPC, error) {
	var client *nvim.Nvim
	var err error
	for range 50 {
		client, err = nvim.Dial(socket)
		if err == nil {
			break
		}
		time.Sleep(100 * time.Millisecond)
	}
	if err != nil {
		return nil, fmt.Errorf("connect to nvim socket: %w", err)
	}

	r := &RPC{client: client, onBuffer: onBuffer}
	if err := r.watchBuffers(); err != nil {
		return nil, errors.Join(fmt.Errorf("watch buffers: %w", err), client.Close())
	}
	return r, nil
}

func (r *RPC) watchBuffers() error {
	if err := r.client.RegisterHandler("dockyard:buffer", func(args ...any) {
		if len(args) < 1 || r.onBuffer == nil {
			return
		}
		if name, ok := args[0].(string); ok {
			r.onBuffer(name)
		}
	}); err != nil {
		return err
	}
	if err := r.client.Subscribe("dockyard:buffer"); err != nil {
		return err
	}

	lua := fmt.Sprintf(`
vim.api.nvim_create_augroup('DockyardBuffer', {clear=true})
vim.api.nvim_create_autocmd({'BufEnter', 'BufFilePost'}, {
  group = 'DockyardBuffer',
  callback = function()
    vim.rpcnotify(%d, 'dockyard:buffer', vim.api.nvim_buf_get_name(0))
  end,
})
`, r.client.ChannelID())
	return r.client.ExecLua(lua, nil)
}

// BufferName returns the full path of the current buffer, "" if unnamed.
func (r *RPC) BufferName() (string, error) {
	buf, err := r.client.CurrentBuffer()
	if err != nil {
		return "", err
	}
	return r.client.BufferName(buf)
}

// Modified reports whether any file buffer has unsaved changes.
func (r *RPC) Modified() (bool, error) {
	var modified bool
	err := r.client.ExecLua(`
for _, b in ipairs(vim.api.nvim_list_bufs()) do
  if vim.bo[b].modified and vim.bo[b].buftype == '' then
    return true
  end
end
return false
`, &modified)
	return modified, err
}

// ExtractColors queries highlight groups and returns group name → [fg, bg]
// hex strings. An empty string means the group leaves that attribute unset.
func (r *RPC) ExtractColors() (map[string][2]string, error) {
	groups := []string{
		"Normal", "Function", "Keyword", "Comment",
		"NonText", "LineNr", "WinSeparator",
		"StatusLine", "DiagnosticError",
		"String", "Visual", "WarningMsg",
	}

	result := make(map[string][2]string, len(groups))
	for _, g := range groups {
		var raw map[string]any
		if err := r.client.ExecLua(
			"return vim.api.nvim_get_hl(0, {name=..., link=false})",
			&raw, g,
		); err != nil {
			continue // group may not exist in this colorscheme
		}
		var pair [2]string
		if fg, ok := raw["fg"]; ok {
			pair[0] = intToHex(fg)
		}
		if bg, ok := raw["bg"]; ok {
			pair[1] = intToHex(bg)
		}
		if pair[0] != "" || pair[1] != "" {
			result[g] = pair
		}
	}
	if len(result) == 0 {
		return nil, errors.New("nvim reported no highlight colors")
	}
	return result, nil
}

func intToHex(v any) string {
	switch n := v.(type) {
	case int64:
		return fmt.Sprintf("#%06x", n)
	case uint64:
		return fmt.Sprintf("#%06x", n)
	case float64:
		return fmt.Sprintf("#%06x", int64(n))
	}
	return ""
}

// Quit discards every buffer and exits nvim.
func (r *RPC) Quit() {
	// Errors are expected: nvim may drop the connection mid-command.
	r.client.Command("qa!") //nolint:errcheck // shutdown
}

func (r *RPC) Close() error {
	return r.client.Close()
}
