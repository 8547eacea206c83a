// Package player implements the per-pane playback state machine: source
// selection, end-of-media policy, history browsing, and volume/speed
// bookkeeping. The actual engine sits behind the Playback interface, and the
// file index behind Index, so the machine itself never touches libVLC or the
// filesystem.
//
// A State has a single logical owner; every mutation must come from the same
// goroutine (the UI loop). Engine callbacks are expected to be re-dispatched
// onto that goroutine before they reach PositionChanged.
package player

import (
	"log"
	"math/rand"

	"github.com/edward-ap/videowall/internal/layout"
	"github.com/edward-ap/videowall/internal/volume"
)

const (
	// MinSpeed is the slowest allowed playback rate.
	MinSpeed = 0.1
	// MaxSpeed is the fastest allowed playback rate.
	MaxSpeed = 2.0
)

// Playback is the engine surface a pane drives. Load starts playback of a new
// source; positions and durations are in milliseconds.
type Playback interface {
	Load(path string) error
	Play()
	Pause()
	Position() int64
	SetPosition(ms int64)
	Duration() int64
	SetRate(rate float64)
	SetVolume(vol float64)
}

// Index is the content catalogue a pane browses: a sorted label list with
// label/path resolution both ways.
type Index interface {
	Labels() []string
	Resolve(label string) (string, bool)
	LabelFor(path string) (string, bool)
}

// State is the playback state machine for one pane.
type State struct {
	playback Playback
	index    Index

	source      string
	mode        Mode
	vol         float64
	unmuteVol   float64
	speed       float64
	paused      bool
	interfaceOn bool
	control     bool

	// one-shot resume offset, applied on the first position event after a
	// source change
	pendingSeek    int64
	hasPendingSeek bool

	history   []string
	atHistory int // -1 while live (not browsing)

	// randStep returns a step in [1, n]; swapped out in tests
	randStep func(n int) int

	// OnSourceChanged fires after the source switches, with the new path.
	OnSourceChanged func(path string)
	// OnInterfaceChanged fires when the per-pane interface visibility flips.
	OnInterfaceChanged func(shown bool)
}

// New creates a blank pane state driving the given engine and index.
func New(playback Playback, index Index) *State {
	return &State{
		playback:  playback,
		index:     index,
		speed:     1.0,
		atHistory: -1,
		randStep:  func(n int) int { return 1 + rand.Intn(n) },
	}
}

// Apply restores persisted pane settings, queueing the saved position (minus
// the pre-roll, floored at zero) as a one-shot seek for when playback starts.
func (s *State) Apply(spec *layout.PlayerSpec, defaultVolume float64, preRoll int64) {
	if spec == nil {
		spec = &layout.PlayerSpec{}
	}
	vol := defaultVolume
	if spec.Volume != nil {
		vol = *spec.Volume
	}
	speed := 1.0
	if spec.Speed != nil {
		speed = *spec.Speed
	}
	s.unmuteVol = volume.Clamp(vol)
	s.SetMode(ParseMode(spec.Mode))
	s.SetSpeed(speed)
	s.SetVolume(vol, true)
	if pos := spec.Position - preRoll; pos > 0 {
		s.pendingSeek = pos
		s.hasPendingSeek = true
	}
	s.control = spec.Control
	s.history = append([]string(nil), spec.History...)
	s.atHistory = -1
	if spec.AtHistory != nil {
		s.atHistory = *spec.AtHistory
	}
	if spec.Filename != nil {
		s.SetSource(*spec.Filename)
	}
}

// Snapshot captures the pane settings in persisted form. A muted pane writes
// its unmute volume so the saved layout does not come back silent.
func (s *State) Snapshot() *layout.PlayerSpec {
	vol := s.vol
	if vol == 0 {
		vol = s.unmuteVol
	}
	speed := s.speed
	spec := &layout.PlayerSpec{
		Type:     layout.TypePlayer,
		Speed:    &speed,
		Volume:   &vol,
		Position: s.playback.Position(),
		Mode:     s.mode.String(),
		Control:  s.control,
		History:  append([]string(nil), s.history...),
	}
	if s.source != "" {
		src := s.source
		spec.Filename = &src
	}
	if s.atHistory >= 0 {
		at := s.atHistory
		spec.AtHistory = &at
	}
	return spec
}

// SetSource switches the pane to a new file and starts playback. Empty paths
// and the current source are no-ops. A genuinely new file is appended to the
// history unless the pane is browsing it.
func (s *State) SetSource(path string) {
	if path == "" || path == s.source {
		return
	}
	s.source = path
	if s.atHistory < 0 && (len(s.history) == 0 || s.history[len(s.history)-1] != path) {
		s.history = append(s.history, path)
	}
	if err := s.playback.Load(path); err != nil {
		log.Printf("player: load %s: %v", path, err)
	}
	if s.OnSourceChanged != nil {
		s.OnSourceChanged(path)
	}
}

// Source returns the currently playing file, or "" for a blank pane.
func (s *State) Source() string { return s.source }

// SetMode selects the end-of-media policy.
func (s *State) SetMode(m Mode) { s.mode = m }

// Mode returns the current end-of-media policy.
func (s *State) Mode() Mode { return s.mode }

// SetVolume clamps and applies a volume. With rememberUnmute the value also
// becomes the level Unmute restores.
func (s *State) SetVolume(vol float64, rememberUnmute bool) {
	vol = volume.Clamp(vol)
	s.vol = vol
	if rememberUnmute {
		s.unmuteVol = vol
	}
	s.playback.SetVolume(vol)
}

// Mute silences the pane, keeping the unmute level.
func (s *State) Mute() { s.SetVolume(0, false) }

// Unmute restores the last remembered volume.
func (s *State) Unmute() { s.SetVolume(s.unmuteVol, false) }

// NudgeVolume bumps the volume by one slider step through the log curve.
func (s *State) NudgeVolume(louder bool) {
	pos := volume.ToSlider(s.vol)
	if louder {
		pos += volume.NudgeStep
		if pos > volume.SliderMax {
			pos = volume.SliderMax
		}
	} else {
		pos -= volume.NudgeStep
		if pos < volume.SliderMin {
			pos = volume.SliderMin
		}
	}
	s.SetVolume(volume.FromSlider(pos), true)
}

// Volume returns the current volume in [0.0, 1.0].
func (s *State) Volume() float64 { return s.vol }

// UnmuteVolume returns the level Unmute would restore.
func (s *State) UnmuteVolume() float64 { return s.unmuteVol }

// SetSpeed clamps and applies a playback rate.
func (s *State) SetSpeed(speed float64) {
	if speed < MinSpeed {
		speed = MinSpeed
	}
	if speed > MaxSpeed {
		speed = MaxSpeed
	}
	s.speed = speed
	s.playback.SetRate(speed)
}

// Speed returns the current playback rate.
func (s *State) Speed() float64 { return s.speed }

// Play resumes playback.
func (s *State) Play() {
	s.paused = false
	s.playback.Play()
}

// Pause suspends playback, keeping the position.
func (s *State) Pause() {
	s.paused = true
	s.playback.Pause()
}

// TogglePause flips between playing and paused.
func (s *State) TogglePause() {
	if s.paused {
		s.Play()
	} else {
		s.Pause()
	}
}

// Paused reports whether the pane was explicitly paused.
func (s *State) Paused() bool { return s.paused }

// Jog seeks by one interval, clamped to the media bounds.
func (s *State) Jog(forward bool, intervalMs int64) {
	var pos int64
	if forward {
		pos = s.playback.Position() + intervalMs
		if dur := s.playback.Duration(); pos > dur {
			pos = dur
		}
	} else {
		pos = s.playback.Position() - intervalMs
		if pos < 0 {
			pos = 0
		}
	}
	s.playback.SetPosition(pos)
}

// PositionChanged is the engine position callback. The first event after a
// restored source consumes the pending seek; after that, reaching the
// duration triggers the end-of-media action.
func (s *State) PositionChanged(pos int64) {
	if s.hasPendingSeek {
		target := s.pendingSeek
		s.hasPendingSeek = false
		s.pendingSeek = 0
		s.playback.SetPosition(target)
		return
	}
	if dur := s.playback.Duration(); dur > 0 && pos >= dur {
		s.EndAction()
	}
}

// EndAction runs the end-of-media policy: loop the source, keep walking a
// browsed history, or skip through the content index.
func (s *State) EndAction() {
	switch {
	case s.mode == ModeLoop:
		s.playback.SetPosition(0)
		s.playback.Play()
	case s.atHistory >= 0:
		s.MoveInHistory(true)
	case s.mode == ModeNext:
		s.Skip(1)
	default:
		s.SkipRandom()
	}
}

// Skip moves through the content index by direction entries, wrapping around.
func (s *State) Skip(direction int) {
	labels := s.index.Labels()
	count := len(labels)
	if count == 0 {
		log.Printf("player: skip with empty content index")
		return
	}
	idx := s.currentIndex(labels)
	next := labels[((idx+direction)%count+count)%count]
	path, ok := s.index.Resolve(next)
	if !ok {
		log.Printf("player: cannot resolve %q", next)
		return
	}
	s.SetSource(path)
}

// SkipRandom moves to a random different entry. With fewer than two entries
// there is nothing different to pick, so it degrades to a plain skip.
func (s *State) SkipRandom() {
	count := len(s.index.Labels())
	if count < 2 {
		s.Skip(1)
		return
	}
	s.Skip(s.randStep(count - 1))
}

// currentIndex locates the playing source in the label list; -1 when the
// source is unknown to the index, which makes the next wrap-around land on
// the first entry.
func (s *State) currentIndex(labels []string) int {
	label, ok := s.index.LabelFor(s.source)
	if !ok {
		if s.source != "" {
			log.Printf("player: source not in content folder: %s", s.source)
		}
		return -1
	}
	for i, l := range labels {
		if l == label {
			return i
		}
	}
	return -1
}

// MoveInHistory steps through the pane's source history. Moving forward past
// the second-to-last entry returns the pane to live (the most recent entry);
// moving backward from live starts browsing just before it.
func (s *State) MoveInHistory(forward bool) {
	if len(s.history) == 0 {
		return
	}
	if forward {
		if s.atHistory >= 0 && s.atHistory < len(s.history)-2 {
			s.atHistory++
		} else {
			s.atHistory = -1
		}
	} else {
		if s.atHistory < 0 {
			s.atHistory = len(s.history) - 2
		} else {
			s.atHistory--
		}
		if s.atHistory < 0 {
			s.atHistory = 0
		}
	}
	idx := s.atHistory
	if idx < 0 {
		idx = len(s.history) - 1
	}
	s.SetSource(s.history[idx])
}

// History returns a copy of the source history.
func (s *State) History() []string {
	return append([]string(nil), s.history...)
}

// AtHistory reports the browsed history index; browsing is false while the
// pane is live.
func (s *State) AtHistory() (index int, browsing bool) {
	if s.atHistory < 0 {
		return 0, false
	}
	return s.atHistory, true
}

// ToggleInterface flips the per-pane interface visibility flag.
func (s *State) ToggleInterface() {
	s.interfaceOn = !s.interfaceOn
	if s.OnInterfaceChanged != nil {
		s.OnInterfaceChanged(s.interfaceOn)
	}
}

// InterfaceShown reports whether the pane interface is visible.
func (s *State) InterfaceShown() bool { return s.interfaceOn }

// SetControl records whether this pane holds the global control flag. The
// at-most-one invariant is maintained by the control router, not here.
func (s *State) SetControl(has bool) { s.control = has }

// HasControl reports whether this pane receives global commands.
func (s *State) HasControl() bool { return s.control }
