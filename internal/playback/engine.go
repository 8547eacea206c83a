// Package playback wraps libVLC into one process-wide engine plus per-pane
// players whose C calls are serialised behind a single lock.
package playback

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	vlc "github.com/adrg/libvlc-go/v3"
)

// Engine owns the libVLC runtime. Exactly one Engine exists per process;
// every Pane it creates shares its lock so libVLC is never entered
// concurrently.
type Engine struct {
	// single lock guarding all C/libVLC invocations
	vlcMu sync.Mutex

	panes map[*Pane]struct{}
}

// NewEngine initializes libVLC. Call Release when the application exits.
func NewEngine() (*Engine, error) {
	// Provide plugin path via ENV (without --plugin-path)
	if exe, err := os.Executable(); err == nil {
		base := filepath.Dir(exe)
		plugins := filepath.Join(base, "plugins")
		if st, err := os.Stat(plugins); err == nil && st.IsDir() {
			// let libVLC 3 load plugins from this location
			_ = os.Setenv("VLC_PLUGIN_PATH", plugins)
		}
	}

	args := []string{
		"--no-xlib",
		"--no-color",
		"--quiet",
	}
	if traceLogEnabled.Load() {
		// Verbose/file logging only when explicitly enabled via CLI flag
		args = append(args,
			"--verbose=2",
			"--file-logging",
			"--log-verbose=2",
			"--logfile=vlc.log",
		)
	}
	if err := vlc.Init(args...); err != nil {
		return nil, fmt.Errorf("libvlc init failed: %w", err)
	}
	return &Engine{panes: map[*Pane]struct{}{}}, nil
}

// Release closes every remaining pane and frees the libVLC runtime.
func (e *Engine) Release() {
	for p := range e.panes {
		p.Close()
	}
	e.vlcMu.Lock()
	vlc.Release()
	e.vlcMu.Unlock()
}
