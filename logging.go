package reactor

import (
	"fmt"
	"os"
	"sync"

	"github.com/joeycumines/go-utilpkg/logiface"
	"github.com/joeycumines/go-utilpkg/logiface/stumpy"
)

// logEvent and Logger alias the logiface/stumpy pairing used throughout the
// runtime, mirroring the structured-logging facade the teacher package
// declares as a dependency.
type (
	logEvent = stumpy.Event
	Logger   = logiface.Logger[*logEvent]
)

var globalLogger struct {
	sync.RWMutex
	logger *Logger
}

func init() {
	globalLogger.logger = newDefaultLogger()
}

func newDefaultLogger() *Logger {
	return stumpy.L.New(
		stumpy.L.WithStumpy(),
		stumpy.L.WithLevel(logiface.LevelInformational),
	)
}

// SetLogger installs the package-level structured logger used for
// per-core reactor start/stop, worker pinning warnings, and
// fatal-condition events, and taken by New as a runtime's logger when no
// WithLogger option is given. A nil logger restores the stumpy-backed
// default.
func SetLogger(l *Logger) {
	globalLogger.Lock()
	defer globalLogger.Unlock()
	if l == nil {
		l = newDefaultLogger()
	}
	globalLogger.logger = l
}

// currentLogger returns the active structured logger.
func currentLogger() *Logger {
	globalLogger.RLock()
	defer globalLogger.RUnlock()
	return globalLogger.logger
}

// logFatalAndExit is the default fatal hook: log at error level, print
// the reason to stderr, then terminate the process. Capacity-exhaustion and impossible
// ring-enqueue failures both route through here (see errors.go).
func logFatalAndExit(message string) {
	currentLogger().Err().Str("reason", message).Log("reactor: fatal condition, aborting")
	_, _ = fmt.Fprintln(os.Stderr, "reactor: fatal:", message)
	os.Exit(1)
}
