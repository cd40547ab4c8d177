package reactor

import "fmt"

// reactorThreadName formats the OS thread name assigned to a pinned
// worker, matching the original's "reactor %d" convention exactly
// (SPEC_FULL.md §4, "Thread naming").
func reactorThreadName(core int) string {
	return fmt.Sprintf("reactor %d", core)
}

// spawnPinnedWorker starts a goroutine that runs fn. On Linux the goroutine
// is first pinned to core and its OS thread named per reactorThreadName;
// on other platforms it is neither pinned nor named. It
// returns immediately; fn blocks for the worker's lifetime (it is the
// reactor's run loop). The pinning mechanism is platform-specific — see
// worker_linux.go and worker_other.go.
func spawnPinnedWorker(core int, fn func()) {
	platformSpawnPinnedWorker(core, fn)
}
