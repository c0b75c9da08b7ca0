package main

import (
	"encoding/json"
	"fmt"
	"image/png"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"schelling/internal/render"
	"schelling/internal/sims/schelling"
)

type runOutput struct {
	RunID            string  `json:"run_id"`
	Size             int     `json:"size"`
	Empty            int     `json:"e"`
	Share            float64 `json:"q"`
	Threshold        float64 `json:"p"`
	Seed             int64   `json:"seed"`
	Steps            int     `json:"steps"`
	Moves            int     `json:"moves"`
	Skipped          int     `json:"skipped"`
	Satisfied        int     `json:"satisfied"`
	NoDestination    int     `json:"no_destination"`
	StoppedEarly     bool    `json:"stopped_early"`
	MeanSatisfaction float64 `json:"mean_satisfaction"`
}

func newRunCmd(c *cli) *cobra.Command {
	var (
		out     string
		jsonOut bool
	)
	cmd := &cobra.Command{
		Use:   "run <e> <q> <p>",
		Short: "Run one board headless and print a summary",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.prepare(cmd); err != nil {
				return err
			}
			if err := c.applyPopulation(args[0], args[1]); err != nil {
				return err
			}
			if err := c.applyThreshold(args[2]); err != nil {
				return err
			}
			c.cfg.Board.RecordHistory = false
			if err := c.cfg.Validate(); err != nil {
				return err
			}

			runID := uuid.New()
			board, err := schelling.New(c.cfg.Board)
			if err != nil {
				return err
			}
			summary := board.Simulate(c.cfg.MaxSteps)
			c.logger.Info("run finished",
				"run_id", runID.String(),
				"steps", summary.Steps,
				"moves", summary.Moves,
				"stopped_early", summary.StoppedEarly,
				"mean_satisfaction", summary.MeanSatisfaction,
			)

			if out != "" {
				if err := writeFrame(out, board, c.cfg.Animation.Scale); err != nil {
					return err
				}
			}

			res := runOutput{
				RunID:            runID.String(),
				Size:             c.cfg.Board.Size,
				Empty:            c.cfg.Board.Empty,
				Share:            c.cfg.Board.Share,
				Threshold:        c.cfg.Board.Threshold,
				Seed:             c.cfg.Board.Seed,
				Steps:            summary.Steps,
				Moves:            summary.Moves,
				Skipped:          summary.Skipped,
				Satisfied:        summary.Satisfied,
				NoDestination:    summary.NoDestination,
				StoppedEarly:     summary.StoppedEarly,
				MeanSatisfaction: summary.MeanSatisfaction,
			}
			if jsonOut {
				enc := json.NewEncoder(c.out)
				enc.SetIndent("", "  ")
				return enc.Encode(res)
			}
			fmt.Fprintf(c.out, "run_id: %s\n", res.RunID)
			fmt.Fprintf(c.out, "steps: %d (moved %d, satisfied %d, skipped %d, no destination %d)\n",
				res.Steps, res.Moves, res.Satisfied, res.Skipped, res.NoDestination)
			fmt.Fprintf(c.out, "stopped early: %v\n", res.StoppedEarly)
			fmt.Fprintf(c.out, "mean_satisfaction: %.4f\n", res.MeanSatisfaction)
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "optional PNG path for the final grid")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "print the summary as JSON")
	cmd.Flags().IntVar(&c.cfg.Animation.Scale, "scale", c.cfg.Animation.Scale, "pixels per cell in the PNG")
	return cmd
}

func writeFrame(path string, board *schelling.Board, scale int) error {
	img, err := render.FrameImage(board.Cells(), board.Size(), board.Palette(), scale)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating image: %w", err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encoding image: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing image: %w", err)
	}
	return nil
}
