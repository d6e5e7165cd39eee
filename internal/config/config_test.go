package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/bounce/internal/sim"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Viewport.Width != 1920 || cfg.Viewport.Height != 1080 {
		t.Errorf("expected 1920x1080, got %gx%g", cfg.Viewport.Width, cfg.Viewport.Height)
	}
	if cfg.FPS <= 0 {
		t.Error("fps should be positive")
	}
	if cfg.Sound {
		t.Error("sound should start disabled")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.yaml")
	data := `
viewport: {width: 800, height: 600}
seed: 42
sound: true
spheres:
  - {x: 100, y: 100, radius: 25, color: red, vx: 5, vy: random}
  - {radius: 500, color: "#00ff00", vx: -40}
  - {}
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Seed != 42 || !cfg.Sound {
		t.Errorf("unexpected header: seed=%d sound=%v", cfg.Seed, cfg.Sound)
	}
	if cfg.FPS != DefaultFPS {
		t.Errorf("expected default fps to survive, got %d", cfg.FPS)
	}

	spawns, err := cfg.SpawnConfigs()
	if err != nil {
		t.Fatal(err)
	}
	if len(spawns) != 3 {
		t.Fatalf("expected 3 spawns, got %d", len(spawns))
	}

	first := spawns[0]
	if *first.X != 100 || *first.Y != 100 || first.Radius != 25 || first.Color != sim.Red {
		t.Errorf("first sphere: %+v", first)
	}
	if first.VX != sim.Fixed(5) || !first.VY.IsRandom() {
		t.Errorf("first vector: %+v %+v", first.VX, first.VY)
	}

	second := spawns[1]
	if second.X != nil || second.Radius != sim.MaxRadius || second.VX != sim.Fixed(-sim.MaxSpeed) {
		t.Errorf("second sphere not clamped: %+v", second)
	}
	if second.Color != (sim.Color{G: 255}) {
		t.Errorf("expected green, got %v", second.Color)
	}

	if spawns[2] != sim.DefaultSpawnConfig() {
		t.Errorf("empty sphere should use defaults, got %+v", spawns[2])
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
		want error
	}{
		{"bad axis", "spheres:\n  - {vx: fast}\n", ErrInvalidAxis},
		{"bad colour", "spheres:\n  - {color: nope}\n", sim.ErrInvalidColor},
		{"bad viewport", "viewport: {width: 0, height: 10}\n", sim.ErrInvalidBounds},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "bad.yaml")
			if err := os.WriteFile(path, []byte(tt.data), 0644); err != nil {
				t.Fatal(err)
			}
			_, err := Load(path)
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.yaml")
	cfg, err := GetPreset("duo")
	if err != nil {
		t.Fatal(err)
	}
	cfg.Spheres = append(cfg.Spheres, SphereConfig{VX: random()})

	if err := Save(path, cfg); err != nil {
		t.Fatal(err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}

	want, _ := cfg.SpawnConfigs()
	got, _ := loaded.SpawnConfigs()
	if len(got) != len(want) {
		t.Fatalf("expected %d spheres, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i].VX != want[i].VX || got[i].VY != want[i].VY || got[i].Color != want[i].Color {
			t.Errorf("sphere %d: expected %+v, got %+v", i, want[i], got[i])
		}
	}
}

func TestGetPreset(t *testing.T) {
	for _, name := range ListPresets() {
		cfg, err := GetPreset(name)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if len(cfg.Spheres) == 0 {
			t.Errorf("%s: no spheres", name)
		}
		if err := cfg.Validate(); err != nil {
			t.Errorf("%s: %v", name, err)
		}
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	_, err := GetPreset("nonexistent")
	if !errors.Is(err, ErrUnknownPreset) {
		t.Errorf("expected ErrUnknownPreset, got %v", err)
	}
}

func TestPresetsAreIndependent(t *testing.T) {
	a, _ := GetPreset("duo")
	b, _ := GetPreset("duo")
	*a.Spheres[0].X = 1

	if *b.Spheres[0].X == 1 {
		t.Error("presets share sphere state")
	}
}

func TestPopulate(t *testing.T) {
	cfg, _ := GetPreset("rain")
	cfg.Seed = 3
	s := sim.New(cfg.SimOptions()...)

	if err := cfg.Populate(s); err != nil {
		t.Fatal(err)
	}
	if err := s.Tick(cfg.Bounds()); err != nil {
		t.Fatal(err)
	}
	if got := s.Snapshot().Running(); got != len(cfg.Spheres) {
		t.Errorf("expected %d running, got %d", len(cfg.Spheres), got)
	}
}
