package volume

import (
	"math"
	"testing"
)

func TestMuteEndpoints(t *testing.T) {
	if v := FromSlider(0); v != 0.0 {
		t.Fatalf("FromSlider(0) = %v, want exactly 0.0", v)
	}
	if s := ToSlider(0.0); s != 0 {
		t.Fatalf("ToSlider(0.0) = %d, want 0", s)
	}
	if s := ToSlider(-0.5); s != 0 {
		t.Fatalf("ToSlider(-0.5) = %d, want 0", s)
	}
}

func TestSliderRoundTrip(t *testing.T) {
	for slider := 1; slider <= SliderMax; slider++ {
		got := ToSlider(FromSlider(slider))
		if diff := got - slider; diff < -1 || diff > 1 {
			t.Fatalf("ToSlider(FromSlider(%d)) = %d, want within 1", slider, got)
		}
	}
}

func TestCurveEndpoints(t *testing.T) {
	if v := FromSlider(1); math.Abs(v-0.01) > 1e-9 {
		t.Fatalf("FromSlider(1) = %v, want 0.01", v)
	}
	if v := FromSlider(SliderMax); math.Abs(v-1.0) > 1e-9 {
		t.Fatalf("FromSlider(%d) = %v, want 1.0", SliderMax, v)
	}
}

func TestCurveMonotonic(t *testing.T) {
	prev := FromSlider(0)
	for slider := 1; slider <= SliderMax; slider++ {
		v := FromSlider(slider)
		if v <= prev {
			t.Fatalf("FromSlider(%d) = %v not greater than FromSlider(%d) = %v", slider, v, slider-1, prev)
		}
		prev = v
	}
}

func TestOutOfRangeInputsClamped(t *testing.T) {
	if v := FromSlider(150); v != 1.0 {
		t.Fatalf("FromSlider(150) = %v, want 1.0", v)
	}
	if s := ToSlider(2.0); s != SliderMax {
		t.Fatalf("ToSlider(2.0) = %d, want %d", s, SliderMax)
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{-0.2, 0},
		{0, 0},
		{0.5, 0.5},
		{1, 1},
		{1.7, 1},
	}
	for _, tt := range tests {
		if got := Clamp(tt.in); got != tt.want {
			t.Fatalf("Clamp(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
