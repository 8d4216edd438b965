package app

import "os/exec"

// Composer prepares an external editing session for a shout and reads the
// result back. The TUI runs the returned command itself (tea.ExecProcess) so
// the terminal is released while the editor owns it.
type Composer interface {
	Cmd(content string) (*exec.Cmd, string, error)
	ReadContent(path string) (string, error)
}
