package schelling

// Outcome classifies what a single step did.
type Outcome uint8

const (
	// Skipped means the sampled cell was empty; nothing was attempted.
	Skipped Outcome = iota
	// Satisfied means the sampled occupant already met the threshold.
	Satisfied
	// Moved means the sampled occupant relocated.
	Moved
	// NoDestination means a relocation was attempted but no empty cell existed.
	NoDestination
)

func (o Outcome) String() string {
	switch o {
	case Skipped:
		return "skipped"
	case Satisfied:
		return "satisfied"
	case Moved:
		return "moved"
	case NoDestination:
		return "no-destination"
	default:
		return "unknown"
	}
}

// StepResult reports the outcome of a step together with the cells involved.
// From and To are zero for Skipped and equal for Satisfied and NoDestination.
type StepResult struct {
	Outcome Outcome
	From    Coord
	To      Coord
}

// Summary aggregates the outcomes of a run.
type Summary struct {
	Steps         int
	Moves         int
	Skipped       int
	Satisfied     int
	NoDestination int
	// StoppedEarly is set when the no-change limit ended the run.
	StoppedEarly     bool
	MeanSatisfaction float64
}

// Step samples one cell uniformly from the whole grid and relocates it when
// its occupant is dissatisfied. Every attempted relocation appends a snapshot
// to the history when recording is enabled.
func (b *Board) Step() StepResult {
	c := Coord{X: b.rng.IntN(b.size), Y: b.rng.IntN(b.size)}
	if b.At(c) == Empty {
		return StepResult{Outcome: Skipped}
	}
	g := b.occupant(c)
	if satisfactionOf(b.grid.Cells(), b.size, c.X, c.Y, g) >= b.cfg.Threshold {
		return StepResult{Outcome: Satisfied, From: c, To: c}
	}
	res, err := b.Relocate(c)
	if err != nil {
		panic(err)
	}
	if b.cfg.RecordHistory {
		b.history = append(b.history, b.grid.Snapshot())
	}
	return res
}

// Simulate runs up to maxSteps steps, stopping as soon as NoChangeLimit
// consecutive steps make no progress. Skipped steps neither extend nor reset
// the streak.
func (b *Board) Simulate(maxSteps int) Summary {
	var s Summary
	streak := 0
	for s.Steps < maxSteps {
		res := b.Step()
		s.Steps++
		switch res.Outcome {
		case Skipped:
			s.Skipped++
		case Moved:
			s.Moves++
			streak = 0
		case Satisfied:
			s.Satisfied++
			streak++
		case NoDestination:
			s.NoDestination++
			streak++
		}
		if streak >= b.cfg.NoChangeLimit {
			s.StoppedEarly = true
			break
		}
	}
	s.MeanSatisfaction = b.MeanSatisfaction()
	return s
}

// Run simulates up to maxSteps steps and returns the resulting mean satisfaction.
func (b *Board) Run(maxSteps int) float64 {
	return b.Simulate(maxSteps).MeanSatisfaction
}
