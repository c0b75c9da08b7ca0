package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"schelling/internal/app"
	"schelling/internal/render"
	"schelling/internal/sims/schelling"
)

func newAnimateCmd(c *cli) *cobra.Command {
	var (
		out    string
		window bool
	)
	cmd := &cobra.Command{
		Use:   "animate <e> <q> <p>",
		Short: "Run one board and export its history as an animated GIF",
		Long: `Runs a single board with e empty cells, group A share q and threshold p,
then writes the subsampled relocation history as an animated GIF. With
--window (requires the ebiten build tag) the history is played back in a
window instead.`,
		Args: cobra.ExactArgs(3),
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
			c.cfg.Board.RecordHistory = true
			if err := c.cfg.Validate(); err != nil {
				return err
			}

			board, err := schelling.New(c.cfg.Board)
			if err != nil {
				return err
			}
			session := app.NewSession(board, c.cfg.MaxSteps, c.cfg.Animation.Frames)
			rec, summary := session.Record(c.cfg.Board.Seed)
			c.logger.Info("run finished",
				"steps", summary.Steps,
				"moves", summary.Moves,
				"stopped_early", summary.StoppedEarly,
				"mean_satisfaction", summary.MeanSatisfaction,
				"history", len(board.History()),
			)

			if window {
				title := fmt.Sprintf("%s e=%d q=%v p=%v", board.Name(), c.cfg.Board.Empty, c.cfg.Board.Share, c.cfg.Board.Threshold)
				return app.Run(session, rec, c.cfg.Viewer, c.cfg.Animation.Scale, title)
			}

			f, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("creating animation: %w", err)
			}
			if err := render.EncodeGIF(f, rec.Frames, rec.Size, rec.Palette, c.cfg.GIFOptions()); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("closing animation: %w", err)
			}
			c.logger.Info("animation written", "path", out, "frames", len(rec.Frames))
			fmt.Fprintf(c.out, "wrote %d frames to %s\n", len(rec.Frames), out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "schelling.gif", "output GIF path")
	cmd.Flags().BoolVar(&window, "window", false, "play the history in a window instead of writing a GIF")
	c.cfg.BindAnimation(cmd.Flags())
	c.cfg.Viewer.Bind(cmd.Flags())
	return cmd
}
