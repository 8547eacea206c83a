// Package ui contains small fyne widgets and helpers shared across the app.
package ui

import (
	"fmt"

	"fyne.io/fyne/v2"
)

type runOnMainDriver interface {
	RunOnMain(func())
}

type callOnMainDriver interface {
	CallOnMain(func())
}

// CallOnMain dispatches f onto the UI thread if the current Fyne driver
// supports it; otherwise executes f inline (best-effort fallback).
func CallOnMain(f func()) {
	if f == nil {
		return
	}
	app := fyne.CurrentApp()
	if app == nil {
		f()
		return
	}
	drv := app.Driver()
	if drv == nil {
		f()
		return
	}
	if r, ok := drv.(runOnMainDriver); ok {
		r.RunOnMain(f)
		return
	}
	if c, ok := drv.(callOnMainDriver); ok {
		c.CallOnMain(f)
		return
	}
	f()
}

// FormatTime renders a millisecond offset as m:ss, or h:mm:ss past an hour.
// Negative values are treated as zero.
func FormatTime(ms int64) string {
	if ms < 0 {
		ms = 0
	}
	total := ms / 1000
	h := total / 3600
	m := (total % 3600) / 60
	s := total % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}

// FormatClock renders the pane clock line: elapsed against total, or time
// remaining when remaining is set and the duration is known.
func FormatClock(positionMs, durationMs int64, remaining bool) string {
	if durationMs <= 0 {
		return FormatTime(positionMs)
	}
	if remaining {
		return "-" + FormatTime(durationMs-positionMs) + " / " + FormatTime(durationMs)
	}
	return FormatTime(positionMs) + " / " + FormatTime(durationMs)
}

// clampFloat64 constrains v to the [min, max] interval.
func clampFloat64(v, min, max float64) float64 {
	if max <= min {
		return min
	}
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
