package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"time"

	"github.com/san-kum/bounce/internal/sim"
)

var ErrRunNotFound = errors.New("storage: run not found")

// Store keeps recorded runs under <baseDir>/runs and the global counters in
// <baseDir>/totals.json.
type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.runsDir(), 0755)
}

func (s *Store) runsDir() string { return filepath.Join(s.baseDir, "runs") }

type RunMetadata struct {
	ID        string       `json:"id"`
	Name      string       `json:"name"`
	Timestamp time.Time    `json:"timestamp"`
	Seed      int64        `json:"seed"`
	Frames    int          `json:"frames"`
	Width     float64      `json:"width"`
	Height    float64      `json:"height"`
	Running   int          `json:"running"`
	Counters  sim.Counters `json:"counters"`
	Elapsed   float64      `json:"elapsed_seconds"`
}

// Sample is one row of a run's history.
type Sample struct {
	Frame   uint64 `json:"frame"`
	Running int    `json:"running"`
	sim.Counters
}

var historyHeader = []string{"frame", "running", "spawned", "wall_hits", "sphere_hits"}

// Recorder collects one sample per observed snapshot. Observe matches the
// observer signature of sim.Simulator.Run.
type Recorder struct {
	samples []Sample
}

func (r *Recorder) Observe(snap *sim.Snapshot) bool {
	r.samples = append(r.samples, Sample{Frame: snap.Frame, Running: snap.Running(), Counters: snap.Counters})
	return true
}

func (r *Recorder) Samples() []Sample { return r.samples }

func (s *Store) Save(meta RunMetadata, history []Sample) (string, error) {
	if meta.Timestamp.IsZero() {
		meta.Timestamp = time.Now()
	}
	if meta.Name == "" {
		meta.Name = "run"
	}
	meta.ID = fmt.Sprintf("%s_%d", meta.Name, meta.Timestamp.UnixNano())
	runDir := filepath.Join(s.runsDir(), meta.ID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	if err := writeJSON(filepath.Join(runDir, "metadata.json"), meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "history.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	if err := w.Write(historyHeader); err != nil {
		return "", err
	}
	for _, h := range history {
		row := []string{
			strconv.FormatUint(h.Frame, 10),
			strconv.Itoa(h.Running),
			strconv.FormatUint(h.Spawned, 10),
			strconv.FormatUint(h.WallHits, 10),
			strconv.FormatUint(h.SphereHits, 10),
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}

	return meta.ID, nil
}

// List returns every readable run, oldest first. Unreadable entries are
// skipped.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.runsDir())
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	slices.SortFunc(runs, func(a, b RunMetadata) int {
		return a.Timestamp.Compare(b.Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.runsDir(), runID, "metadata.json"))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}
	return &meta, nil
}

func (s *Store) LoadHistory(runID string) ([]Sample, error) {
	file, err := os.Open(filepath.Join(s.runsDir(), runID, "history.csv"))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = len(historyHeader)

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}
	if len(records) < 2 {
		return []Sample{}, nil
	}

	samples := make([]Sample, 0, len(records)-1)
	for _, rec := range records[1:] {
		var (
			h    Sample
			errs [5]error
		)
		h.Frame, errs[0] = strconv.ParseUint(rec[0], 10, 64)
		h.Running, errs[1] = strconv.Atoi(rec[1])
		h.Spawned, errs[2] = strconv.ParseUint(rec[2], 10, 64)
		h.WallHits, errs[3] = strconv.ParseUint(rec[3], 10, 64)
		h.SphereHits, errs[4] = strconv.ParseUint(rec[4], 10, 64)
		if err := errors.Join(errs[:]...); err != nil {
			return nil, fmt.Errorf("run %s: %w", runID, err)
		}
		samples = append(samples, h)
	}
	return samples, nil
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
