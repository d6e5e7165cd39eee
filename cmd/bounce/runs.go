package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/bounce/internal/analysis"
	"github.com/san-kum/bounce/internal/config"
	"github.com/san-kum/bounce/internal/storage"
)

func showStats(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	t, err := st.LoadTotals()
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
		t = storage.Unavailable()
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "GLOBAL\t")
	fmt.Fprintf(w, "  spheres\t%d\n", t.Spawned)
	fmt.Fprintf(w, "  wall hits\t%d\n", t.WallHits)
	fmt.Fprintf(w, "  sphere hits\t%d\n", t.SphereHits)

	runs, err := st.List()
	if err == nil && len(runs) > 0 {
		last := runs[len(runs)-1]
		fmt.Fprintf(w, "LAST RUN\t%s\n", last.ID)
		fmt.Fprintf(w, "  frames\t%d\n", last.Frames)
		fmt.Fprintf(w, "  running\t%d\n", last.Running)
		fmt.Fprintf(w, "  spheres\t%d\n", last.Counters.Spawned)
		fmt.Fprintf(w, "  wall hits\t%d\n", last.Counters.WallHits)
		fmt.Fprintf(w, "  sphere hits\t%d\n", last.Counters.SphereHits)
	}
	return w.Flush()
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tSEED\tFRAMES\tSPHERES\tWALL\tSPHERE\tTIME")
	for _, r := range runs {
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%d\t%d\t%d\t%s\n",
			r.ID, r.Name, r.Seed, r.Frames, r.Counters.Spawned,
			r.Counters.WallHits, r.Counters.SphereHits, r.Timestamp.Format("2006-01-02 15:04"))
	}
	return w.Flush()
}

func loadSeries(runID string) (*storage.RunMetadata, []float64, []float64, []float64, error) {
	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	history, err := st.LoadHistory(runID)
	if err != nil {
		return nil, nil, nil, nil, err
	}

	wallCum := make([]uint64, len(history))
	sphereCum := make([]uint64, len(history))
	running := make([]float64, len(history))
	for i, h := range history {
		wallCum[i] = h.WallHits
		sphereCum[i] = h.SphereHits
		running[i] = float64(h.Running)
	}
	return meta, analysis.Deltas(wallCum), analysis.Deltas(sphereCum), running, nil
}

func plotRun(cmd *cobra.Command, args []string) error {
	meta, wall, sphere, running, err := loadSeries(args[0])
	if err != nil {
		return err
	}
	if len(running) == 0 {
		return fmt.Errorf("run %s has no history", meta.ID)
	}

	fmt.Printf("run %s (%s, seed %d)\n\n", meta.ID, meta.Name, meta.Seed)
	if len(wall) > 0 {
		fmt.Println(asciigraph.PlotMany([][]float64{wall, sphere},
			asciigraph.Height(12), asciigraph.Width(70),
			asciigraph.Caption("wall and sphere hits per frame")))
		fmt.Println()
	}
	fmt.Println(asciigraph.Plot(running, asciigraph.Height(6), asciigraph.Width(70), asciigraph.Caption("running spheres")))
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	meta, wall, sphere, _, err := loadSeries(args[0])
	if err != nil {
		return err
	}
	sum := analysis.Summarize(wall, sphere)

	fmt.Printf("run %s (%s)\n\n", meta.ID, meta.Name)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "\tWALL\tSPHERE")
	fmt.Fprintf(w, "mean/frame\t%.3f\t%.3f\n", sum.MeanWall, sum.MeanSphere)
	fmt.Fprintf(w, "peak/frame\t%.0f\t%.0f\n", sum.PeakWall, sum.PeakSphere)
	fmt.Fprintf(w, "period (frames)\t%.1f\t%.1f\n", sum.WallPeriod, sum.SpherePeriod)
	w.Flush()

	if spec := analysis.PowerSpectrum(sphere); len(spec) > 2 {
		fmt.Println()
		fmt.Println(asciigraph.Plot(spec[1:], asciigraph.Height(8), asciigraph.Width(70), asciigraph.Caption("sphere hit power spectrum")))
	}
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	data, err := st.Export(args[0])
	if err != nil {
		return err
	}
	if outPath == "" {
		return storage.WriteJSON(os.Stdout, data)
	}
	if err := storage.ExportJSON(outPath, data); err != nil {
		return err
	}
	fmt.Printf("exported %s to %s\n", args[0], outPath)
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tSPHERES\tDESCRIPTION")
	for _, name := range config.ListPresets() {
		p := config.Presets[name]
		fmt.Fprintf(w, "%s\t%d\t%s\n", name, len(p.Spheres()), p.Description)
	}
	return w.Flush()
}
