package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/san-kum/bounce/internal/audio"
	"github.com/san-kum/bounce/internal/config"
	"github.com/san-kum/bounce/internal/sim"
	"github.com/san-kum/bounce/internal/storage"
)

// newLogger builds the process logger. Frontends that own the terminal pass
// quiet=true so records only go to --log-file.
func newLogger(quiet bool) (*log.Logger, func(), error) {
	level, err := log.ParseLevel(logLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("log level %q: %w", logLevel, err)
	}

	var out io.Writer = os.Stderr
	closeFn := func() {}
	switch {
	case logFile != "":
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, nil, err
		}
		out, closeFn = f, func() { f.Close() }
	case quiet:
		out = io.Discard
	}

	logger := log.NewWithOptions(out, log.Options{
		Level:           level,
		ReportTimestamp: true,
		TimeFormat:      time.TimeOnly,
		Prefix:          "bounce",
	})
	return logger, closeFn, nil
}

// loadSession resolves the session config: preset, then file, then any
// explicitly changed flag.
func loadSession(cmd *cobra.Command) (*config.Config, string, error) {
	cfg := config.DefaultConfig()
	name := "session"

	if preset != "" {
		p, err := config.GetPreset(preset)
		if err != nil {
			return nil, "", fmt.Errorf("%w (available: %s)", err, strings.Join(config.ListPresets(), ", "))
		}
		cfg, name = p, preset
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, "", fmt.Errorf("failed to load config: %w", err)
		}
		if preset != "" && len(loaded.Spheres) == 0 {
			loaded.Spheres = cfg.Spheres
		}
		cfg = loaded
		name = strings.TrimSuffix(filepath.Base(configFile), filepath.Ext(configFile))
	}

	flags := cmd.Flags()
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("width") {
		cfg.Viewport.Width = width
	}
	if flags.Changed("height") {
		cfg.Viewport.Height = height
	}
	if flags.Changed("fps") {
		cfg.FPS = fps
	}
	if flags.Changed("sound") {
		cfg.Sound = sound
	}
	if cmd.Root().PersistentFlags().Changed("data") || cfg.DataDir == "" {
		cfg.DataDir = dataDir
	}
	for i := 0; i < spheres; i++ {
		cfg.Spheres = append(cfg.Spheres, config.SphereConfig{})
	}

	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", err
	}
	return cfg, name, nil
}

func newSimulator(cfg *config.Config, logger *log.Logger) (*sim.Simulator, error) {
	s := sim.New(append(cfg.SimOptions(), sim.WithLogger(logger))...)
	if err := cfg.Populate(s); err != nil {
		return nil, err
	}
	s.SetSoundEnabled(cfg.Sound)
	return s, nil
}

// attachAudio wires collision tones to s. A missing device leaves the
// session silent rather than failing it.
func attachAudio(s *sim.Simulator, logger *log.Logger) *audio.Player {
	player := audio.NewPlayer(logger)
	if err := player.Start(); err != nil {
		logger.Warn("continuing without sound", "err", err)
	}
	s.OnCollision(player.Handle)
	return player
}

// loadGlobal reads the global totals once per session.
func loadGlobal(st *storage.Store, logger *log.Logger) storage.Totals {
	t, err := st.LoadTotals()
	if err != nil {
		logger.Warn("global statistics unavailable", "err", err)
		return storage.Unavailable()
	}
	return t
}

// finishSession folds the session counters into the global totals.
func finishSession(st *storage.Store, c sim.Counters, logger *log.Logger) {
	t, err := st.AddTotals(c)
	if err != nil {
		logger.Error("could not update global statistics", "err", err)
		return
	}
	logger.Info("global statistics updated", "spawned", t.Spawned, "wall_hits", t.WallHits, "sphere_hits", t.SphereHits)
}
