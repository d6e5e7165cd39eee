package storage

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/san-kum/bounce/internal/sim"
)

// Totals are the counters accumulated over every finished session. A value
// of -1 means the store could not be read.
type Totals struct {
	Spawned    int64 `json:"spawned"`
	WallHits   int64 `json:"wall_hits"`
	SphereHits int64 `json:"sphere_hits"`
}

func Unavailable() Totals {
	return Totals{Spawned: -1, WallHits: -1, SphereHits: -1}
}

func (t Totals) Available() bool {
	return t.Spawned >= 0 && t.WallHits >= 0 && t.SphereHits >= 0
}

// Add folds one session into the totals.
func (t Totals) Add(c sim.Counters) Totals {
	return Totals{
		Spawned:    t.Spawned + int64(c.Spawned),
		WallHits:   t.WallHits + int64(c.WallHits),
		SphereHits: t.SphereHits + int64(c.SphereHits),
	}
}

func (s *Store) totalsPath() string { return filepath.Join(s.baseDir, "totals.json") }

// LoadTotals reads the global counters. A store that has never been written
// holds zero totals.
func (s *Store) LoadTotals() (Totals, error) {
	data, err := os.ReadFile(s.totalsPath())
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Totals{}, nil
		}
		return Unavailable(), err
	}
	var t Totals
	if err := json.Unmarshal(data, &t); err != nil {
		return Unavailable(), err
	}
	return t, nil
}

// AddTotals adds a finished session to the global counters and returns the
// new totals. The file is replaced atomically.
func (s *Store) AddTotals(c sim.Counters) (Totals, error) {
	t, err := s.LoadTotals()
	if err != nil {
		return Unavailable(), err
	}
	t = t.Add(c)

	if err := os.MkdirAll(s.baseDir, 0755); err != nil {
		return Unavailable(), err
	}
	tmp, err := os.CreateTemp(s.baseDir, "totals-*.json")
	if err != nil {
		return Unavailable(), err
	}
	defer os.Remove(tmp.Name())

	enc := json.NewEncoder(tmp)
	enc.SetIndent("", "  ")
	if err := enc.Encode(t); err != nil {
		tmp.Close()
		return Unavailable(), err
	}
	if err := tmp.Close(); err != nil {
		return Unavailable(), err
	}
	if err := os.Rename(tmp.Name(), s.totalsPath()); err != nil {
		return Unavailable(), err
	}
	return t, nil
}
