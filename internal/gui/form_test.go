package gui

import (
	"testing"

	"github.com/san-kum/bounce/internal/sim"
)

func TestStepAxis(t *testing.T) {
	tests := []struct {
		name string
		in   sim.Axis
		dir  int
		want sim.Axis
	}{
		{"random up", sim.RandomAxis(), 1, sim.Fixed(-sim.MaxSpeed)},
		{"random down", sim.RandomAxis(), -1, sim.Fixed(sim.MaxSpeed)},
		{"step up", sim.Fixed(3), 1, sim.Fixed(4)},
		{"step down through zero", sim.Fixed(1), -1, sim.Fixed(0)},
		{"past max", sim.Fixed(sim.MaxSpeed), 1, sim.RandomAxis()},
		{"past min", sim.Fixed(-sim.MaxSpeed), -1, sim.RandomAxis()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := stepAxis(tt.in, tt.dir); got != tt.want {
				t.Errorf("stepAxis(%v, %d) = %v, want %v", tt.in, tt.dir, got, tt.want)
			}
		})
	}
}

func TestFormAxisWraps(t *testing.T) {
	f := NewForm()
	f.Selected = 2

	var seen []string
	for range 2*sim.MaxSpeed + 2 {
		f.Adjust(1)
		seen = append(seen, f.Value(2))
	}
	if seen[0] != "-10" || seen[len(seen)-2] != "10" {
		t.Errorf("walk = %v, want -10 ... 10", seen)
	}
	if last := seen[len(seen)-1]; last != "random" {
		t.Errorf("expected wrap to random, got %s", last)
	}
	if !f.VY.IsRandom() {
		t.Error("vy changed while editing vx")
	}
}

func TestFormReset(t *testing.T) {
	f := NewForm()
	f.Selected = 0
	for range 30 {
		f.Adjust(1)
	}
	if f.Radius != sim.MaxRadius {
		t.Errorf("radius = %v, want clamp at %v", f.Radius, float64(sim.MaxRadius))
	}
	f.Next()
	f.Adjust(1)
	f.Next()
	f.Adjust(-1)
	if f.Color == sim.White || f.VX.IsRandom() {
		t.Fatalf("form not edited: %+v", f)
	}

	f.Reset()
	if f.Radius != 25 {
		t.Errorf("radius = %v, want 25", f.Radius)
	}
	if f.Color != sim.White {
		t.Errorf("color = %s, want white", f.Color.Hex())
	}
	if !f.VX.IsRandom() || !f.VY.IsRandom() {
		t.Error("vector should be random after reset")
	}
	if f.Selected != 2 {
		t.Errorf("selected = %d, want 2 kept", f.Selected)
	}

	f.Selected = 1
	f.Adjust(1)
	if f.Color != sim.Red {
		t.Errorf("palette should restart after reset, got %s", f.Color.Hex())
	}
}
