package player

// Mode governs what a pane does when playback reaches the end of its source.
type Mode int

const (
	// ModeLoop restarts the current source from the beginning.
	ModeLoop Mode = iota
	// ModeNext advances to the next entry in the content index.
	ModeNext
	// ModeRandom jumps to a random different entry in the content index.
	ModeRandom
)

// ParseMode maps a persisted mode string to a Mode. Unknown or empty strings
// fall back to loop; specs written by older builds stay loadable.
func ParseMode(s string) Mode {
	switch s {
	case "next":
		return ModeNext
	case "random":
		return ModeRandom
	default:
		return ModeLoop
	}
}

// String returns the persisted form of the mode.
func (m Mode) String() string {
	switch m {
	case ModeNext:
		return "next"
	case ModeRandom:
		return "random"
	default:
		return "loop"
	}
}
