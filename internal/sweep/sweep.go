// Package sweep runs independent Schelling boards across a range of
// thresholds and aggregates their mean satisfaction into a curve.
package sweep

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"runtime"
	"sort"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"schelling/internal/logging"
	"schelling/internal/sims/schelling"
)

// Config describes the thresholds to sweep and how to run them.
type Config struct {
	From  float64 `yaml:"from"`
	To    float64 `yaml:"to"`
	Step  float64 `yaml:"step"`
	// Trials is the number of boards simulated per threshold.
	Trials int `yaml:"trials"`
	// Workers bounds concurrent boards; zero uses runtime.NumCPU.
	Workers  int `yaml:"workers"`
	MaxSteps int `yaml:"-"`
}

// DefaultConfig sweeps p = 0.1, 0.2, ..., 0.9 with one board each.
func DefaultConfig() Config {
	return Config{
		From:     0.1,
		To:       0.9,
		Step:     0.1,
		Trials:   1,
		Workers:  0,
		MaxSteps: schelling.DefaultMaxSteps,
	}
}

// Validate checks the sweep range and run settings.
func (c Config) Validate() error {
	if c.Step <= 0 || math.IsNaN(c.Step) {
		return fmt.Errorf("sweep step must be positive, got %v", c.Step)
	}
	if c.From <= 0 || c.From > 1 {
		return fmt.Errorf("sweep start must be within (0,1], got %v", c.From)
	}
	if c.To < c.From || c.To > 1 {
		return fmt.Errorf("sweep end must be within [%v,1], got %v", c.From, c.To)
	}
	if c.Trials <= 0 {
		return fmt.Errorf("sweep trials must be positive, got %d", c.Trials)
	}
	if c.Workers < 0 {
		return fmt.Errorf("sweep workers must be non-negative, got %d", c.Workers)
	}
	if c.MaxSteps < 0 {
		return fmt.Errorf("max steps must be non-negative, got %d", c.MaxSteps)
	}
	return nil
}

// Thresholds lists the p values covered by the sweep, rounded to six decimals
// so accumulated float error does not leak into reports.
func (c Config) Thresholds() []float64 {
	if c.Step <= 0 || c.To < c.From {
		return nil
	}
	n := int(math.Floor((c.To-c.From)/c.Step+1e-9)) + 1
	out := make([]float64, n)
	for i := range out {
		out[i] = math.Round((c.From+float64(i)*c.Step)*1e6) / 1e6
	}
	return out
}

// Result is the outcome of one board.
type Result struct {
	RunID     uuid.UUID
	Threshold float64
	Trial     int
	Seed      int64
	Summary   schelling.Summary
}

// Report collects every board of a sweep, ordered by threshold then trial.
type Report struct {
	Results []Result
	Elapsed time.Duration
}

// CurvePoint aggregates the trials of one threshold.
type CurvePoint struct {
	Threshold        float64
	MeanSatisfaction float64
	Trials           int
	MeanSteps        float64
	EarlyStops       int
}

// Curve averages results per threshold in ascending order.
func (r Report) Curve() []CurvePoint {
	byP := map[float64]*CurvePoint{}
	for _, res := range r.Results {
		pt, ok := byP[res.Threshold]
		if !ok {
			pt = &CurvePoint{Threshold: res.Threshold}
			byP[res.Threshold] = pt
		}
		pt.Trials++
		pt.MeanSatisfaction += res.Summary.MeanSatisfaction
		pt.MeanSteps += float64(res.Summary.Steps)
		if res.Summary.StoppedEarly {
			pt.EarlyStops++
		}
	}
	out := make([]CurvePoint, 0, len(byP))
	for _, pt := range byP {
		pt.MeanSatisfaction /= float64(pt.Trials)
		pt.MeanSteps /= float64(pt.Trials)
		out = append(out, *pt)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Threshold < out[j].Threshold })
	return out
}

type job struct {
	threshold float64
	trial     int
	seed      int64
}

// Run simulates one board per threshold and trial. Trial k of every threshold
// starts from the same placement (seed base.Seed+k), so differences along the
// curve come from p alone. Boards share no state and run on up to
// cfg.Workers goroutines.
func Run(ctx context.Context, base schelling.Config, cfg Config, logger *slog.Logger) (Report, error) {
	if err := cfg.Validate(); err != nil {
		return Report{}, err
	}
	if logger == nil {
		logger = logging.Discard()
	}
	workers := cfg.Workers
	if workers == 0 {
		workers = runtime.NumCPU()
	}

	var jobs []job
	for _, p := range cfg.Thresholds() {
		for t := 0; t < cfg.Trials; t++ {
			jobs = append(jobs, job{threshold: p, trial: t, seed: base.Seed + int64(t)})
		}
	}

	start := time.Now()
	results := make([]Result, len(jobs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, j := range jobs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			boardCfg := base
			boardCfg.Threshold = j.threshold
			boardCfg.Seed = j.seed
			boardCfg.RecordHistory = false
			board, err := schelling.New(boardCfg)
			if err != nil {
				return fmt.Errorf("threshold %v: %w", j.threshold, err)
			}
			summary := board.Simulate(cfg.MaxSteps)
			res := Result{
				RunID:     uuid.New(),
				Threshold: j.threshold,
				Trial:     j.trial,
				Seed:      j.seed,
				Summary:   summary,
			}
			results[i] = res
			logger.Debug("board finished",
				"run_id", res.RunID.String(),
				"p", j.threshold,
				"trial", j.trial,
				"steps", summary.Steps,
				"moves", summary.Moves,
				"stopped_early", summary.StoppedEarly,
				"mean_satisfaction", summary.MeanSatisfaction,
			)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Report{}, err
	}
	return Report{Results: results, Elapsed: time.Since(start)}, nil
}
