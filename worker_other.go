//go:build !linux

package reactor

// platformSpawnPinnedWorker runs fn in a plain goroutine on platforms
// without sched_setaffinity support. Core pinning is best-effort only on
// Linux (spec §3, "Platform support"); elsewhere a reactor simply runs
// unpinned.
func platformSpawnPinnedWorker(core int, fn func()) {
	go fn()
}
