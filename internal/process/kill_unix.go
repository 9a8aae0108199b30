//go:build !windows

package process

import "syscall"

// KillProcessGroup kills the browser process and every renderer it spawned
// by sending SIGKILL to its process group (negative PID). Non-positive PIDs
// are ignored: -0 would target the caller's own group.
func KillProcessGroup(pid int) {
	if pid <= 0 {
		return
	}
	// Best-effort; launcher.Kill() already signalled the leader.
	_ = syscall.Kill(-pid, syscall.SIGKILL)
}
