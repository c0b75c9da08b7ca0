package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"schelling/internal/render"
	"schelling/internal/sweep"
)

func newPlotCmd(c *cli) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "plot <e> <q>",
		Short: "Sweep the threshold p and chart the final mean satisfaction",
		Long: `Runs one board per threshold (and trial) with e empty cells and group A
share q, prints the mean satisfaction reached at each p and writes a PNG
line chart. Pass --out "" to skip the chart.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.prepare(cmd); err != nil {
				return err
			}
			if err := c.applyPopulation(args[0], args[1]); err != nil {
				return err
			}
			if err := c.cfg.Validate(); err != nil {
				return err
			}

			sc := c.cfg.SweepConfig()
			c.logger.Info("sweep started",
				"thresholds", len(sc.Thresholds()),
				"trials", sc.Trials,
				"workers", sc.Workers,
			)
			report, err := sweep.Run(cmd.Context(), c.cfg.Board, sc, c.logger)
			if err != nil {
				return err
			}
			curve := report.Curve()
			c.logger.Info("sweep finished", "boards", len(report.Results), "elapsed", report.Elapsed)

			tw := tabwriter.NewWriter(c.out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "p\tmean_satisfaction\tmean_steps\tearly_stops")
			for _, pt := range curve {
				fmt.Fprintf(tw, "%.2f\t%.4f\t%.0f\t%d/%d\n", pt.Threshold, pt.MeanSatisfaction, pt.MeanSteps, pt.EarlyStops, pt.Trials)
			}
			if err := tw.Flush(); err != nil {
				return err
			}

			if out == "" {
				return nil
			}
			return writeChart(out, curve)
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "schelling.png", "output PNG path for the chart")
	c.cfg.BindSweep(cmd.Flags())
	return cmd
}

func writeChart(path string, curve []sweep.CurvePoint) error {
	points := make([]render.Point, len(curve))
	for i, pt := range curve {
		points[i] = render.Point{X: pt.Threshold, Y: pt.MeanSatisfaction}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating chart: %w", err)
	}
	if err := render.EncodeLineChart(f, points, render.DefaultChartOptions()); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing chart: %w", err)
	}
	return nil
}
