package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/algoviz/internal/config"
	"github.com/san-kum/algoviz/internal/engine"
	"github.com/san-kum/algoviz/internal/export"
	"github.com/san-kum/algoviz/internal/metrics"
	"github.com/san-kum/algoviz/internal/model"
	"github.com/san-kum/algoviz/internal/render"
	"github.com/san-kum/algoviz/internal/run"
	"github.com/san-kum/algoviz/internal/store"
	"github.com/san-kum/algoviz/internal/timing"
)

func runHeadless(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if len(args) == 1 {
		cfg.Algorithm = args[0]
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	logger, closer, err := newLogger(cfg, os.Stderr)
	if err != nil {
		return err
	}
	defer closer.Close()

	var clock timing.Clock = timing.WallClock()
	if instant {
		clock = timing.NewInstantClock()
	}
	timer := timing.New(clock)
	timer.SetSpeed(cfg.Speed)

	tracker := metrics.NewTracker()
	renderers := []render.Renderer{tracker}
	var frames *render.PNGRenderer
	if framesDir != "" {
		frames, err = render.NewPNGRenderer(framesDir, int(cfg.Layout.Width), int(cfg.Layout.Height))
		if err != nil {
			return err
		}
		defer frames.Close()
		renderers = append(renderers, frames)
	}

	out := cmd.OutOrStdout()
	rng, usedSeed := newRand(cfg.Seed)
	ctrl, err := run.New(run.Options{
		Algorithm: cfg.Algorithm,
		Size:      cfg.Size,
		Username:  cfg.Username,
		Layout:    cfg.Layout,
		Timer:     timer,
		Renderer:  render.Multi(renderers...),
		Notifier: run.NotifierFunc(func(msg string) {
			if !quiet {
				fmt.Fprintln(out, msg)
			}
		}),
		Logger: logger,
		Rand:   rng,
	})
	if err != nil {
		return err
	}

	values, msg, err := initialValues(cfg, rng)
	if err != nil {
		return err
	}
	if values != nil && !engine.IsGraph(cfg.Algorithm) {
		err = ctrl.SetValues(values, msg)
	} else {
		err = ctrl.Generate()
	}
	if err != nil {
		return err
	}
	input := ctrl.Snapshot().Values
	tracker.Reset()

	var steps *store.StepLog
	if record {
		steps = store.NewStepLog(clock)
		ctrl.AddObserver(steps)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	started := clock.Now()
	runErr := ctrl.Start(ctx)
	elapsed := clock.Now().Sub(started)
	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		return runErr
	}

	final := ctrl.Snapshot()
	var measured map[string]float64
	if tracker.Frames() > 0 {
		measured = tracker.Values()
	}
	printSummary(out, final, elapsed, metrics.CountInversions(input), measured)

	if frames != nil {
		if err := frames.Err(); err != nil {
			return fmt.Errorf("write frames: %w", err)
		}
		fmt.Fprintf(out, "frames: %d written to %s\n", frames.Frames(), framesDir)
	}
	if svgPath != "" {
		if err := export.WriteSVG(svgPath, ctrl.Scene()); err != nil {
			return err
		}
		fmt.Fprintf(out, "svg: %s\n", svgPath)
	}
	if steps != nil {
		st := store.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		runID, err := st.Save(store.RunMetadata{
			Algorithm: final.Algorithm,
			Seed:      usedSeed,
			Speed:     final.Speed,
			Size:      final.Size,
			Input:     input,
			Output:    final.Values,
			Counts:    final.Counts,
			Metrics:   measured,
			ElapsedMS: elapsed.Milliseconds(),
			Message:   final.Message,
		}, steps.Steps())
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "run id: %s\n", runID)
	}
	return runErr
}

func printSummary(out io.Writer, st run.State, elapsed time.Duration, inversions int, measured map[string]float64) {
	fmt.Fprintf(out, "\n%s finished in %v\n", st.Algorithm, elapsed.Round(time.Millisecond))
	c := st.Counts
	if engine.IsGraph(st.Algorithm) {
		fmt.Fprintf(out, "  nodes: %d  edges: %d  visits: %d  traversed: %d\n", st.Nodes, st.Edges, c.Visits, c.Edges)
		return
	}
	fmt.Fprintf(out, "  compares: %d  swaps: %d  writes: %d\n", c.Compares, c.Swaps, c.Writes)
	if measured != nil {
		fmt.Fprintf(out, "  inversions: %d -> %.0f  sortedness: %.0f%%  churn: %.2f\n",
			inversions, measured["inversions"], measured["sortedness"]*100, measured["churn"])
	}
	if len(st.Values) > 1 {
		fmt.Fprintln(out)
		fmt.Fprintln(out, asciigraph.Plot(toFloats(st.Values),
			asciigraph.Height(8),
			asciigraph.Width(60),
			asciigraph.Caption("final array"),
		))
	}
}

func toFloats(values []int) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = float64(v)
	}
	return out
}

// benchAlgorithms runs each algorithm on a virtual clock at several sizes
// and reports step counts and the animation time a viewer would sit through.
func benchAlgorithms(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	names := engine.Names()
	if len(args) == 1 {
		if _, err := engine.Lookup(args[0]); err != nil {
			return err
		}
		names = args
	}

	sizes := []int{model.MinSize, 10, 20, model.MaxSize}
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ALGORITHM\tSIZE\tINVERSIONS\tCOMPARES\tSWAPS\tWRITES\tVISITS\tEDGES\tANIMATION")

	for _, name := range names {
		for _, n := range sizes {
			rng, _ := newRand(cfg.Seed)
			clock := timing.NewInstantClock()
			timer := timing.New(clock)
			timer.SetSpeed(cfg.Speed)

			e := engine.New(timer, render.Discard)
			stats := &engine.Stats{}
			e.AddObserver(stats)

			var ws engine.Workspace
			inversions := 0
			if engine.IsGraph(name) {
				ws.Graph = model.GenerateGraph(n, cfg.Layout, rng)
			} else {
				values := config.GetPreset("reversed").Build(n, rng)
				ws.Bars = model.NewBars(values, cfg.Layout)
				inversions = metrics.CountInversions(values)
			}
			if err := e.Run(context.Background(), name, ws); err != nil {
				return err
			}

			c := stats.Counts()
			fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%d\t%d\t%d\t%d\t%v\n",
				name, n, inversions, c.Compares, c.Swaps, c.Writes, c.Visits, c.Edges,
				clock.Elapsed().Round(time.Millisecond))
		}
	}
	return w.Flush()
}
