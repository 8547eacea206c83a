package wallapp

import (
	"log"
	"sync/atomic"

	playback "github.com/edward-ap/videowall/internal/playback"
)

var verboseLog atomic.Bool

// SetTraceLogEnabled toggles verbose/file logging for libVLC initialisation.
// Call this before creating the App so the engine init can see the flag.
func SetTraceLogEnabled(b bool) { playback.SetTraceLoggingEnabled(b) }

// SetVerboseLogging toggles per-event logging of pane and scanner activity.
func SetVerboseLogging(b bool) { verboseLog.Store(b) }

// tracef logs only when verbose logging is on.
func tracef(format string, args ...any) {
	if verboseLog.Load() {
		log.Printf(format, args...)
	}
}
