package playback

import "sync/atomic"

var traceLogEnabled atomic.Bool

// SetTraceLoggingEnabled enables or disables trace logging functionality globally based on the provided boolean flag.
func SetTraceLoggingEnabled(enabled bool) {
	traceLogEnabled.Store(enabled)
}
