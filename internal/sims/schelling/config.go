package schelling

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

var (
	// ErrInvalidParameters reports a configuration whose population cannot be realized.
	ErrInvalidParameters = errors.New("schelling: invalid parameters")
	// ErrInvalidGroup reports a label that is neither GroupA nor GroupB where a group is required.
	ErrInvalidGroup = errors.New("schelling: invalid group")
	// ErrEmptyCell reports an occupant-only operation requested on an empty cell.
	ErrEmptyCell = errors.New("schelling: cell is empty")
	// ErrOutOfBounds reports a coordinate outside the grid.
	ErrOutOfBounds = errors.New("schelling: coordinate out of bounds")
)

const (
	// DefaultMaxSteps bounds a run when the caller has no preference.
	DefaultMaxSteps = 20000
	// DefaultNoChangeLimit is the consecutive no-progress streak that ends a run early.
	DefaultNoChangeLimit = 1000
)

// Config holds the immutable parameters of a board.
type Config struct {
	// Size is the side length of the square grid.
	Size int `yaml:"size"`
	// Empty is the number of cells left vacant (e).
	Empty int `yaml:"empty"`
	// Share is the fraction of occupied cells that belong to GroupA (q).
	Share float64 `yaml:"share"`
	// Threshold is the minimum satisfaction an occupant tolerates (p).
	Threshold float64 `yaml:"threshold"`

	// Seed drives the initial placement and every random step.
	Seed int64 `yaml:"seed"`
	// NoChangeLimit is the streak of steps without a move that ends a run.
	NoChangeLimit int `yaml:"no_change_limit"`
	// RecordHistory enables the snapshot log consumed by animations.
	RecordHistory bool `yaml:"record_history"`
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		Size:          50,
		Empty:         250,
		Share:         0.5,
		Threshold:     0.5,
		Seed:          1337,
		NoChangeLimit: DefaultNoChangeLimit,
		RecordHistory: true,
	}
}

// Validate checks that the population described by the config can be placed.
func (c Config) Validate() error {
	if c.Size <= 0 {
		return fmt.Errorf("%w: size must be positive, got %d", ErrInvalidParameters, c.Size)
	}
	total := c.Size * c.Size
	if c.Empty < 0 {
		return fmt.Errorf("%w: empty count must be non-negative, got %d", ErrInvalidParameters, c.Empty)
	}
	if c.Empty > total {
		return fmt.Errorf("%w: empty count %d exceeds %d cells", ErrInvalidParameters, c.Empty, total)
	}
	if math.IsNaN(c.Share) || c.Share < 0 || c.Share > 1 {
		return fmt.Errorf("%w: share must be within [0,1], got %v", ErrInvalidParameters, c.Share)
	}
	if math.IsNaN(c.Threshold) || c.Threshold <= 0 || c.Threshold > 1 {
		return fmt.Errorf("%w: threshold must be within (0,1], got %v", ErrInvalidParameters, c.Threshold)
	}
	if c.NoChangeLimit <= 0 {
		return fmt.Errorf("%w: no-change limit must be positive, got %d", ErrInvalidParameters, c.NoChangeLimit)
	}
	return nil
}

// Population returns how many cells each group receives at placement time.
func (c Config) Population() (groupA, groupB int) {
	occupied := c.Size*c.Size - c.Empty
	if occupied <= 0 {
		return 0, 0
	}
	groupA = int(math.Round(float64(occupied) * c.Share))
	if groupA > occupied {
		groupA = occupied
	}
	return groupA, occupied - groupA
}

// Apply returns a copy of c with the given key/value overrides parsed onto it.
// Keys are size, e, q, p, seed, no_change_limit and record_history. Range
// checks are left to Validate.
func (c Config) Apply(values map[string]string) (Config, error) {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		v := strings.TrimSpace(values[k])
		var err error
		switch k {
		case "size":
			c.Size, err = strconv.Atoi(v)
		case "e":
			c.Empty, err = strconv.Atoi(v)
		case "q":
			c.Share, err = strconv.ParseFloat(v, 64)
		case "p":
			c.Threshold, err = strconv.ParseFloat(v, 64)
		case "seed":
			c.Seed, err = strconv.ParseInt(v, 10, 64)
		case "no_change_limit":
			c.NoChangeLimit, err = strconv.Atoi(v)
		case "record_history":
			c.RecordHistory, err = strconv.ParseBool(v)
		default:
			return c, fmt.Errorf("unknown board key %q (valid: size, e, q, p, seed, no_change_limit, record_history)", k)
		}
		if err != nil {
			return c, fmt.Errorf("board key %q: %w", k, err)
		}
	}
	return c, nil
}
