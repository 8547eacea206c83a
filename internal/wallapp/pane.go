package wallapp

import (
	"path/filepath"

	"github.com/edward-ap/videowall/internal/playback"
	"github.com/edward-ap/videowall/internal/player"
	"github.com/edward-ap/videowall/internal/ui"
)

// paneController ties one pane's state machine to its engine player and its
// on-screen cell. Engine callbacks arrive on worker threads and are
// re-dispatched onto the UI thread before they touch the state machine.
type paneController struct {
	app   *App
	state *player.State
	pane  *playback.Pane // nil when the engine failed to start
	view  *ui.PaneView
}

func (a *App) newPaneController(state *player.State, pane *playback.Pane) *paneController {
	pc := &paneController{app: a, state: state, pane: pane, view: ui.NewPaneView()}

	state.OnSourceChanged = func(path string) {
		pc.view.SetTitle(pc.titleFor(path))
		pc.view.Seek.SetMax(0)
	}
	state.OnInterfaceChanged = pc.view.SetOverlayShown

	pc.view.OnTapped = func() { a.takeControl(state) }
	pc.view.OnDoubleTapped = state.ToggleInterface
	pc.view.Seek.OnSeek = func(ms float64) {
		if pc.pane != nil {
			pc.pane.SetPosition(int64(ms))
		}
	}

	if pane != nil {
		pane.SetTimeCallback(func(ms int64) {
			ui.CallOnMain(func() { pc.timeChanged(ms) })
		})
		pane.SetEndCallback(func() {
			ui.CallOnMain(state.EndAction)
		})
	}

	if src := state.Source(); src != "" {
		pc.view.SetTitle(pc.titleFor(src))
	}
	pc.view.SetOverlayShown(state.InterfaceShown())
	return pc
}

// timeChanged runs on the UI thread for every engine time tick.
func (pc *paneController) timeChanged(ms int64) {
	pc.state.PositionChanged(ms)
	dur := int64(0)
	if pc.pane != nil {
		dur = pc.pane.Duration()
	}
	pc.view.SetClock(ui.FormatClock(ms, dur, pc.app.cfg.RemainingTime))
	pc.view.Seek.SetMax(float64(dur))
	pc.view.Seek.SetValue(float64(ms))
}

// titleFor prefers the library label over the raw path.
func (pc *paneController) titleFor(path string) string {
	if label, ok := pc.app.movies.LabelFor(path); ok {
		return label
	}
	return filepath.Base(path)
}

func (pc *paneController) close() {
	if pc.pane != nil {
		pc.pane.Close()
		pc.pane = nil
	}
}

// nullPlayback keeps pane state machines functional when libVLC could not be
// initialised: sources and layouts still work, nothing plays.
type nullPlayback struct{}

func (nullPlayback) Load(string) error { return nil }
func (nullPlayback) Play()             {}
func (nullPlayback) Pause()            {}
func (nullPlayback) Position() int64   { return 0 }
func (nullPlayback) SetPosition(int64) {}
func (nullPlayback) Duration() int64   { return 0 }
func (nullPlayback) SetRate(float64)   {}
func (nullPlayback) SetVolume(float64) {}
