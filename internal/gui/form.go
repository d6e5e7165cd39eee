package gui

import (
	"fmt"

	"github.com/san-kum/bounce/internal/sim"
)

var formFields = []string{"radius", "color", "vx", "vy"}

var palette = []sim.Color{sim.White, sim.Red, sim.Green, sim.Blue, sim.Yellow, sim.Orange, sim.Purple, sim.Cyan, sim.Magenta, sim.Pink}

// Form holds the spawn parameters edited in the side panel. Position comes
// from the click, or is random when spawning from the keyboard.
type Form struct {
	Radius   float64
	Color    sim.Color
	VX, VY   sim.Axis
	Selected int

	colorIdx int
}

func NewForm() Form {
	var f Form
	f.Reset()
	return f
}

// Reset restores the defaults: radius 25, white, random vector.
func (f *Form) Reset() {
	d := sim.DefaultSpawnConfig()
	*f = Form{Radius: d.Radius, Color: d.Color, VX: d.VX, VY: d.VY, Selected: f.Selected}
}

func (f *Form) Next() { f.Selected = (f.Selected + 1) % len(formFields) }

func (f *Form) Prev() { f.Selected = (f.Selected + len(formFields) - 1) % len(formFields) }

func (f *Form) Adjust(dir int) {
	switch formFields[f.Selected] {
	case "radius":
		f.Radius = min(max(f.Radius+float64(dir)*5, sim.MinRadius), sim.MaxRadius)
	case "color":
		f.colorIdx = (f.colorIdx + dir + len(palette)) % len(palette)
		f.Color = palette[f.colorIdx]
	case "vx":
		f.VX = stepAxis(f.VX, dir)
	case "vy":
		f.VY = stepAxis(f.VY, dir)
	}
}

// stepAxis walks random, -10 ... 10, random.
func stepAxis(a sim.Axis, dir int) sim.Axis {
	if a.IsRandom() {
		if dir > 0 {
			return sim.Fixed(-sim.MaxSpeed)
		}
		return sim.Fixed(sim.MaxSpeed)
	}
	v := a.Value + dir
	if v > sim.MaxSpeed || v < -sim.MaxSpeed {
		return sim.RandomAxis()
	}
	return sim.Fixed(v)
}

func (f *Form) Value(i int) string {
	switch formFields[i] {
	case "radius":
		return fmt.Sprintf("%.0f", f.Radius)
	case "color":
		return f.Color.Hex()
	case "vx":
		return axisString(f.VX)
	case "vy":
		return axisString(f.VY)
	}
	return ""
}

func axisString(a sim.Axis) string {
	if a.IsRandom() {
		return "random"
	}
	return fmt.Sprint(a.Value)
}

func (f *Form) Config() sim.SpawnConfig {
	return sim.SpawnConfig{Radius: f.Radius, Color: f.Color, VX: f.VX, VY: f.VY}
}
