package config

import (
	"fmt"
	"slices"
)

type Preset struct {
	Description string
	Spheres     func() []SphereConfig
}

var Presets = map[string]Preset{
	"duo": {
		Description: "two spheres on a head-on course",
		Spheres: func() []SphereConfig {
			return []SphereConfig{
				{X: ptr(400), Y: ptr(540), Radius: 40, Color: "red", VX: fixed(6), VY: fixed(0)},
				{X: ptr(1520), Y: ptr(540), Radius: 40, Color: "blue", VX: fixed(-6), VY: fixed(0)},
			}
		},
	},
	"corner": {
		Description: "four spheres leaving the corners towards the centre",
		Spheres: func() []SphereConfig {
			return []SphereConfig{
				{X: ptr(80), Y: ptr(80), Radius: 50, Color: "yellow", VX: fixed(7), VY: fixed(4)},
				{X: ptr(1840), Y: ptr(80), Radius: 50, Color: "green", VX: fixed(-7), VY: fixed(4)},
				{X: ptr(80), Y: ptr(1000), Radius: 50, Color: "purple", VX: fixed(7), VY: fixed(-4)},
				{X: ptr(1840), Y: ptr(1000), Radius: 50, Color: "orange", VX: fixed(-7), VY: fixed(-4)},
			}
		},
	},
	"crowd": {
		Description: "forty random spheres in assorted colours",
		Spheres: func() []SphereConfig {
			colors := []string{"white", "red", "blue", "yellow", "cyan", "magenta", "orange", "pink"}
			out := make([]SphereConfig, 40)
			for i := range out {
				out[i] = SphereConfig{
					Radius: float64(15 + (i%4)*10),
					Color:  colors[i%len(colors)],
					VX:     random(),
					VY:     random(),
				}
			}
			return out
		},
	},
	"rain": {
		Description: "a row of small spheres falling from the top edge",
		Spheres: func() []SphereConfig {
			out := make([]SphereConfig, 24)
			for i := range out {
				out[i] = SphereConfig{
					X:      ptr(60 + float64(i)*80),
					Y:      ptr(0),
					Radius: 12,
					Color:  "cyan",
					VX:     fixed(0),
					VY:     random(),
				}
			}
			return out
		},
	},
}

// GetPreset returns the default config populated with the named preset.
func GetPreset(name string) (*Config, error) {
	p, ok := Presets[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPreset, name)
	}
	cfg := DefaultConfig()
	cfg.Spheres = p.Spheres()
	return cfg, nil
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func ptr(v float64) *float64 { return &v }

func fixed(v int) *Axis {
	a := Axis{Value: v}
	return &a
}

func random() *Axis {
	a := Axis{Random: true}
	return &a
}
