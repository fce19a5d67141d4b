//go:build !unix

package scanner

import "os/exec"

func setProcessGroup(cmd *exec.Cmd) {}

func exitStatus(err *exec.ExitError) int {
	return err.ExitCode()
}
