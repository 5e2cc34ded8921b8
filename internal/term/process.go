package term

import (
	"errors"
	"fmt"
	"os"
	"os/exec"

	"github.com/creack/pty"
)

// process is a child running on the slave side of a pty.
type process struct {
	cmd    *exec.Cmd
	file   *os.File
	socket string
}

func startProcess(argv []string, dir string, width, height int, socket string) (*process, error) {
	if len(argv) == 0 {
		return nil, errors.New("start terminal: empty command")
	}
	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(), "TERM=xterm-256color")

	ptmx, err := pty.StartWithSize(cmd, &pty.Winsize{
		Rows: uint16(height),
		Cols: uint16(width),
	})
	if err != nil {
		return nil, fmt.Errorf("start %s: %w", argv[0], err)
	}
	return &process{cmd: cmd, file: ptmx, socket: socket}, nil
}

func (p *process) resize(width, height int) error {
	return pty.Setsize(p.file, &pty.Winsize{
		Rows: uint16(height),
		Cols: uint16(width),
	})
}

// close hangs up the pty and reaps the child.
func (p *process) close() error {
	p.file.Close()
	if p.cmd.ProcessState == nil {
		p.cmd.Process.Kill() //nolint:errcheck // may have exited already
	}
	err := p.cmd.Wait()
	if p.socket != "" {
		os.Remove(p.socket)
	}
	var exit *exec.ExitError
	if errors.As(err, &exit) {
		// Killed or non-zero exit after hangup is the normal way out.
		return nil
	}
	return err
}
