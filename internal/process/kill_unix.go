//go:build !windows

package process

import "syscall"

// KillProcessGroup sends SIGKILL to the process group led by pid. It
// reports false without signalling anything when pid cannot name a child
// group, since -0 and -1 would reach this process or every process.
func KillProcessGroup(pid int) bool {
	if pid <= 1 {
		return false
	}
	return syscall.Kill(-pid, syscall.SIGKILL) == nil
}
