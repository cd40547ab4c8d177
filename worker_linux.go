//go:build linux

package reactor

import (
	"runtime"
	"unsafe"

	"golang.org/x/sys/unix"
)

// platformSpawnPinnedWorker locks the new goroutine to its own OS thread,
// pins that thread to core via sched_setaffinity, names it via
// prctl(PR_SET_NAME, ...), then runs fn. Pinning or naming failures are
// logged at warning level and do not prevent the worker from running —
// an unpinned reactor is degraded, not broken.
func platformSpawnPinnedWorker(core int, fn func()) {
	go func() {
		runtime.LockOSThread()

		var set unix.CPUSet
		set.Zero()
		set.Set(core)
		if err := unix.SchedSetaffinity(0, &set); err != nil {
			currentLogger().Warning().Str("reason", err.Error()).Log("reactor: sched_setaffinity failed")
		}

		namePtr := nameBytes(reactorThreadName(core))
		if err := unix.Prctl(unix.PR_SET_NAME, uintptr(unsafe.Pointer(namePtr)), 0, 0, 0); err != nil {
			currentLogger().Warning().Str("reason", err.Error()).Log("reactor: failed to set thread name")
		}

		fn()
	}()
}

// nameBytes converts a thread name to the null-terminated byte slice
// prctl(PR_SET_NAME) expects, truncating to the kernel's 15-byte (plus
// NUL) TASK_COMM_LEN limit.
func nameBytes(name string) *byte {
	const maxLen = 15
	b := []byte(name)
	if len(b) > maxLen {
		b = b[:maxLen]
	}
	b = append(b, 0)
	return &b[0]
}
