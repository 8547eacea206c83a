// Package volume maps the linear 0–100 volume slider onto the perceptual
// (logarithmic) playback volume used by the audio output.
package volume

import "math"

const (
	// SliderMin is the slider position that means hard mute.
	SliderMin = 0
	// SliderMax is the loudest slider position.
	SliderMax = 100
	// NudgeStep is how many slider units the louder/quieter commands move.
	NudgeStep = 5

	volumeMin = 0.01
	volumeMax = 1.0
)

// FromSlider maps slider 0–100 to a volume in 0.0–1.0 logarithmically.
//
// Slider 0 is 0.0 exactly (mute); positions 1–100 map log-linearly between
// 0.01 and 1.0. The gap between 0.0 and 0.01 is intentional: the first step
// up from silence must land at an audible level, and a linear tail would
// leave a "never quite mute" zone at the bottom of the slider.
func FromSlider(slider int) float64 {
	if slider <= SliderMin {
		return 0.0
	}
	if slider > SliderMax {
		slider = SliderMax
	}
	t := float64(slider-1) / float64(SliderMax-1)
	logMin := math.Log(volumeMin)
	logMax := math.Log(volumeMax)
	return math.Exp(logMin + t*(logMax-logMin))
}

// ToSlider is the inverse of FromSlider: any volume at or below zero maps to
// slider 0, everything else to the nearest slider position.
func ToSlider(vol float64) int {
	if vol <= 0.0 {
		return SliderMin
	}
	if vol > volumeMax {
		vol = volumeMax
	}
	logMin := math.Log(volumeMin)
	logMax := math.Log(volumeMax)
	t := (math.Log(vol) - logMin) / (logMax - logMin)
	return int(math.Round(1 + t*float64(SliderMax-1)))
}

// Clamp constrains a volume to the valid [0.0, 1.0] range.
func Clamp(vol float64) float64 {
	if vol < 0 {
		return 0
	}
	if vol > volumeMax {
		return volumeMax
	}
	return vol
}
