package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/algoviz/internal/store"
)

// stepBuckets is the number of time slices plotted for step activity.
const stepBuckets = 60

func listRuns(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "no runs found")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tALGORITHM\tTIME\tSIZE\tSPEED\tELAPSED\tSTEPS")
	for _, run := range runs {
		c := run.Counts
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%.1fx\t%dms\t%d\n",
			run.ID,
			run.Algorithm,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Size,
			run.Speed,
			run.ElapsedMS,
			c.Compares+c.Swaps+c.Writes+c.Visits+c.Edges,
		)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	steps, err := st.LoadSteps(args[0])
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "%s  %s  seed %d\n\n", meta.ID, meta.Algorithm, meta.Seed)

	if len(meta.Input) > 1 && len(meta.Output) == len(meta.Input) {
		fmt.Fprintln(out, asciigraph.PlotMany([][]float64{toFloats(meta.Input), toFloats(meta.Output)},
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.SeriesColors(asciigraph.Red, asciigraph.Green),
			asciigraph.Caption("input (red) vs output (green)"),
		))
		fmt.Fprintln(out)
	}

	if len(steps) < 2 {
		fmt.Fprintln(out, "not enough steps to plot")
		return nil
	}

	// Cumulative steps over time shows where the run spent its animation.
	total := steps[len(steps)-1].At
	series := make([]float64, stepBuckets)
	for _, s := range steps {
		b := stepBuckets - 1
		if total > 0 {
			b = min(stepBuckets-1, int(int64(s.At)*stepBuckets/int64(total)))
		}
		series[b]++
	}
	for i := 1; i < len(series); i++ {
		series[i] += series[i-1]
	}
	fmt.Fprintln(out, asciigraph.Plot(series,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("cumulative steps over %v", total)),
	))
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	steps, err := st.LoadSteps(args[0])
	if err != nil {
		return err
	}

	path, _ := cmd.Flags().GetString("output")
	if path == "" {
		return store.WriteJSON(cmd.OutOrStdout(), *meta, steps)
	}
	if err := store.ExportJSON(path, *meta, steps); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "exported to %s\n", path)
	return nil
}
