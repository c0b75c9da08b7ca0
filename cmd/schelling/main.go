package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strconv"

	"github.com/spf13/cobra"

	"schelling/internal/config"
	"schelling/internal/logging"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Stdout, os.Stderr, os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run builds the command tree and executes it against args.
func run(ctx context.Context, outW, errW io.Writer, args []string) error {
	root := newRootCmd(outW, errW)
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

// cli carries the state shared by every subcommand of one invocation.
type cli struct {
	cfg        *config.File
	configPath string
	out        io.Writer
	errW       io.Writer
	logger     *slog.Logger
}

func newRootCmd(outW, errW io.Writer) *cobra.Command {
	c := &cli{cfg: config.Default(), out: outW, errW: errW}

	rootCmd := &cobra.Command{
		Use:   "schelling",
		Short: "Schelling segregation model simulator",
		Long: `schelling simulates Schelling's model of spatial segregation: two groups
on a square grid, where occupants whose share of like (or empty) neighbours
falls below the threshold p move to the nearest acceptable vacancy.

Modes:
  animate <e> <q> <p>   run one board and export the relocation history
  plot <e> <q>          sweep p and chart the final mean satisfaction
  run <e> <q> <p>       run one board and print a summary`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.SetOut(outW)
	rootCmd.SetErr(errW)

	rootCmd.PersistentFlags().StringVar(&c.configPath, "config", "", "YAML configuration file")
	c.cfg.BindCommon(rootCmd.PersistentFlags())

	rootCmd.AddCommand(
		newAnimateCmd(c),
		newPlotCmd(c),
		newRunCmd(c),
	)
	return rootCmd
}

// prepare resolves the configuration for cmd and builds the logger.
func (c *cli) prepare(cmd *cobra.Command) error {
	if err := c.cfg.Resolve(c.configPath, cmd.Flags()); err != nil {
		return err
	}
	logger, err := logging.NewLogger(c.cfg.Logging.Level, c.cfg.Logging.Format, c.errW)
	if err != nil {
		return err
	}
	c.logger = logger
	return nil
}

// applyPopulation parses the e and q positional arguments onto the board config.
func (c *cli) applyPopulation(e, q string) error {
	empty, err := strconv.Atoi(e)
	if err != nil {
		return fmt.Errorf("invalid empty count %q: %w", e, err)
	}
	share, err := strconv.ParseFloat(q, 64)
	if err != nil {
		return fmt.Errorf("invalid share %q: %w", q, err)
	}
	c.cfg.Board.Empty = empty
	c.cfg.Board.Share = share
	return nil
}

// applyThreshold parses the p positional argument onto the board config.
func (c *cli) applyThreshold(p string) error {
	threshold, err := strconv.ParseFloat(p, 64)
	if err != nil {
		return fmt.Errorf("invalid threshold %q: %w", p, err)
	}
	c.cfg.Board.Threshold = threshold
	return nil
}
