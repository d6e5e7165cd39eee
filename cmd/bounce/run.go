package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/san-kum/bounce/internal/audio"
	"github.com/san-kum/bounce/internal/config"
	"github.com/san-kum/bounce/internal/gui"
	"github.com/san-kum/bounce/internal/sim"
	"github.com/san-kum/bounce/internal/storage"
	"github.com/san-kum/bounce/internal/viz"
)

func runHeadless(cmd *cobra.Command, args []string) error {
	logger, closeLog, err := newLogger(false)
	if err != nil {
		return err
	}
	defer closeLog()

	cfg, name, err := loadSession(cmd)
	if err != nil {
		return err
	}
	s, err := newSimulator(cfg, logger)
	if err != nil {
		return err
	}

	st := storage.New(cfg.DataDir)
	if err := st.Init(); err != nil {
		return fmt.Errorf("failed to init store: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger.Info("running", "session", name, "seed", cfg.Seed, "frames", frames, "spheres", len(cfg.Spheres))
	rec := &storage.Recorder{}
	start := time.Now()
	runErr := s.Run(ctx, cfg.Bounds(), frames, rec.Observe)
	elapsed := time.Since(start)
	if runErr != nil && ctx.Err() == nil {
		return runErr
	}

	snap := s.Snapshot()
	meta := storage.RunMetadata{
		Name:      name,
		Timestamp: start,
		Seed:      cfg.Seed,
		Frames:    int(snap.Frame),
		Width:     cfg.Viewport.Width,
		Height:    cfg.Viewport.Height,
		Running:   snap.Running(),
		Counters:  snap.Counters,
		Elapsed:   elapsed.Seconds(),
	}
	id, err := st.Save(meta, rec.Samples())
	if err != nil {
		return fmt.Errorf("failed to save run: %w", err)
	}
	finishSession(st, snap.Counters, logger)

	fmt.Printf("run %s: %d frames in %v\n", id, snap.Frame, elapsed.Round(time.Millisecond))
	fmt.Printf("  running:     %d\n", snap.Running())
	fmt.Printf("  spawned:     %d\n", snap.Counters.Spawned)
	fmt.Printf("  wall hits:   %d\n", snap.Counters.WallHits)
	fmt.Printf("  sphere hits: %d\n", snap.Counters.SphereHits)
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	logger, closeLog, err := newLogger(true)
	if err != nil {
		return err
	}
	defer closeLog()

	base, _, err := loadSession(cmd)
	if err != nil {
		return err
	}
	st := storage.New(base.DataDir)
	if err := st.Init(); err != nil {
		logger.Warn("store unavailable", "err", err)
	}
	global := loadGlobal(st, logger)

	var player *audio.Player
	defer func() {
		if player != nil {
			player.Stop()
		}
	}()

	launch := func(name string) (viz.Model, error) {
		if name != "" {
			preset = name
		}
		cfg, title, err := loadSession(cmd)
		if err != nil {
			return viz.Model{}, err
		}
		s, err := newSimulator(cfg, logger)
		if err != nil {
			return viz.Model{}, err
		}
		player = attachAudio(s, logger)
		return viz.NewModel(s, viz.Options{
			Title:     title,
			FPS:       cfg.FPS,
			Bounds:    cfg.Bounds(),
			InboxSize: cfg.InboxSize,
			Global:    global,
		}), nil
	}

	var final viz.Model
	if preset == "" && configFile == "" {
		info := make(map[string]string, len(config.Presets))
		for n, p := range config.Presets {
			info[n] = p.Description
		}
		m, err := viz.Run(viz.NewPicker(config.ListPresets(), info, launch))
		if err != nil {
			return err
		}
		live, ok := m.(viz.Picker).Live()
		if !ok {
			return nil
		}
		final = live
	} else {
		m, err := launch("")
		if err != nil {
			return err
		}
		out, err := viz.Run(m)
		if err != nil {
			return err
		}
		final = out.(viz.Model)
	}

	finishSession(st, final.Simulator().Snapshot().Counters, logger)
	return nil
}

func runGUI(cmd *cobra.Command, args []string) error {
	logger, closeLog, err := newLogger(false)
	if err != nil {
		return err
	}
	defer closeLog()

	cfg, name, err := loadSession(cmd)
	if err != nil {
		return err
	}
	s, err := newSimulator(cfg, logger)
	if err != nil {
		return err
	}
	player := attachAudio(s, logger)
	defer player.Stop()

	st := storage.New(cfg.DataDir)
	if err := st.Init(); err != nil {
		logger.Warn("store unavailable", "err", err)
	}

	app := gui.NewApp(s, gui.Options{
		Title:  "bounce - " + name,
		Width:  int32(cfg.Viewport.Width),
		Height: int32(cfg.Viewport.Height),
		FPS:    int32(cfg.FPS),
		Global: loadGlobal(st, logger),
		Logger: logger,
	})
	app.Run()

	finishSession(st, s.Snapshot().Counters, logger)
	return nil
}

func runBench(cmd *cobra.Command, args []string) error {
	logger, closeLog, err := newLogger(false)
	if err != nil {
		return err
	}
	defer closeLog()

	cfg, _, err := loadSession(cmd)
	if err != nil {
		return err
	}

	setup := func(s *sim.Simulator) error { return cfg.Populate(s) }
	ens := sim.NewEnsemble(setup, numRuns, cfg.Seed, sim.WithInboxSize(cfg.InboxSize), sim.WithLogger(logger))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger.Info("bench", "runs", numRuns, "frames", frames, "spheres", len(cfg.Spheres))
	start := time.Now()
	results, err := ens.Run(ctx, cfg.Bounds(), frames)
	if err != nil {
		return err
	}
	total := time.Since(start)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SEED\tFRAMES\tRUNNING\tWALL\tSPHERE\tFRAMES/S")
	var sum int
	for _, r := range results {
		rate := float64(r.Frames) / max(r.Elapsed.Seconds(), 1e-9)
		fmt.Fprintf(w, "%d\t%d\t%d\t%d\t%d\t%.0f\n", r.Seed, r.Frames, r.Running, r.Counters.WallHits, r.Counters.SphereHits, rate)
		sum += r.Frames
	}
	w.Flush()

	fmt.Printf("\n%d frames across %d runs in %v (%.0f frames/s)\n",
		sum, len(results), total.Round(time.Millisecond), float64(sum)/max(total.Seconds(), 1e-9))
	logger.Debug("bench done", "elapsed", total)
	return nil
}
