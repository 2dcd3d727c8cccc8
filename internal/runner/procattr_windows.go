//go:build windows

package runner

import "os/exec"

func shell(command string) (string, []string) {
	return "cmd", []string{"/C", command}
}

// setProcGroup is a no-op on Windows; process groups are managed differently.
func setProcGroup(_ *exec.Cmd) {}

func sessionLeader(_ *exec.Cmd) {}
