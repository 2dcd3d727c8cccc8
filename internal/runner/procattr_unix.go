//go:build !windows

package runner

import (
	"os/exec"
	"syscall"
)

func shell(command string) (string, []string) {
	return "sh", []string{"-c", command}
}

// setProcGroup runs the command in its own process group so cancellation
// reaches everything the shell started.
func setProcGroup(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	cmd.Cancel = func() error {
		return syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
	}
}

// sessionLeader undoes Setpgid for commands started under a pty. pty.Start
// calls setsid, which already gives the child its own group, and setpgid
// fails for a session leader.
func sessionLeader(cmd *exec.Cmd) {
	if cmd.SysProcAttr != nil {
		cmd.SysProcAttr.Setpgid = false
	}
}
