package wall

// ControlRouter holds the single pane eligible to receive global transport
// commands and forwards those commands to it. At most one pane holds control;
// granting it to a pane revokes the previous holder by construction, without
// searching the tree.
type ControlRouter struct {
	controlled  *Leaf
	jogInterval int64
}

// NewControlRouter creates a router using the given jog seek step in
// milliseconds.
func NewControlRouter(jogIntervalMs int64) *ControlRouter {
	return &ControlRouter{jogInterval: jogIntervalMs}
}

// Controlled returns the pane currently holding control, or nil.
func (r *ControlRouter) Controlled() *Leaf { return r.controlled }

// SetControl toggles control on a pane: the current holder loses it, and
// requesting control for the holder itself clears it entirely.
func (r *ControlRouter) SetControl(leaf *Leaf) {
	if r.controlled == leaf {
		if leaf != nil {
			leaf.State.SetControl(false)
		}
		r.controlled = nil
		return
	}
	if r.controlled != nil {
		r.controlled.State.SetControl(false)
	}
	r.controlled = leaf
	if leaf != nil {
		leaf.State.SetControl(true)
	}
}

// Release clears control if the pane holds it, e.g. when it closes.
func (r *ControlRouter) Release(leaf *Leaf) {
	if r.controlled == leaf {
		if leaf != nil {
			leaf.State.SetControl(false)
		}
		r.controlled = nil
	}
}

// Act runs the end-of-media action (direction 0) or skips through the content
// index (±1) on the controlled pane. No-op without a holder.
func (r *ControlRouter) Act(direction int) {
	if r.controlled == nil {
		return
	}
	if direction == 0 {
		r.controlled.State.EndAction()
		return
	}
	r.controlled.State.Skip(direction)
}

// Jog seeks the controlled pane by one jog interval.
func (r *ControlRouter) Jog(forward bool) {
	if r.controlled == nil {
		return
	}
	r.controlled.State.Jog(forward, r.jogInterval)
}

// VolumeNudge bumps the controlled pane's volume by one slider step.
func (r *ControlRouter) VolumeNudge(louder bool) {
	if r.controlled == nil {
		return
	}
	r.controlled.State.NudgeVolume(louder)
}

// HistoryMove walks the controlled pane's history.
func (r *ControlRouter) HistoryMove(forward bool) {
	if r.controlled == nil {
		return
	}
	r.controlled.State.MoveInHistory(forward)
}

// ToggleInterface flips the controlled pane's interface visibility.
func (r *ControlRouter) ToggleInterface() {
	if r.controlled == nil {
		return
	}
	r.controlled.State.ToggleInterface()
}
