package utils

import (
	"encoding/json"
	"flag"
	"math"
	"os"
	"time"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/gridlife/model"
	"github.com/sheikhrachel/gridlife/round"
)

// Config holds the configuration for a run
type Config struct {
	MinX int `json:"min_x"`
	MinY int `json:"min_y"`
	MaxX int `json:"max_x"`
	MaxY int `json:"max_y"`

	IntervalSeconds       float64 `json:"interval_seconds"`
	StartingAliveFraction float64 `json:"starting_alive_fraction"`
	SeedStrategy          string  `json:"seed_strategy"`
	RandomSeed            int64   `json:"random_seed"`
	Workers               int     `json:"workers"`

	FrameRate           time.Duration `json:"frame_rate"`
	AutoRestart         bool          `json:"auto_restart"`
	StagnationThreshold int           `json:"stagnation_threshold"`
	MaxRounds           int           `json:"max_rounds"`
	Headless            bool          `json:"headless"`
	LogFile             string        `json:"log_file"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		MinX:                  0,
		MinY:                  0,
		MaxX:                  39,
		MaxY:                  24,
		IntervalSeconds:       0.2,
		StartingAliveFraction: 0.1,
		SeedStrategy:          model.SeedStrategyUniform,
		Workers:               0, // one per CPU
		FrameRate:             16 * time.Millisecond,
		AutoRestart:           true,
		StagnationThreshold:   5,
		MaxRounds:             0,
	}
}

// LoadConfig loads configuration from JSON file
func LoadConfig(filename string) (Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(filename)
	if err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to read file: %+v", filename)
	}

	if err = json.Unmarshal(data, &config); err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to unmarshal data from file: %+v", filename)
	}

	return config, nil
}

// Bind attaches overridable fields to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.IntVar(&c.MinX, "min-x", c.MinX, "lowest column")
	fs.IntVar(&c.MinY, "min-y", c.MinY, "lowest row")
	fs.IntVar(&c.MaxX, "max-x", c.MaxX, "highest column")
	fs.IntVar(&c.MaxY, "max-y", c.MaxY, "highest row")
	fs.Float64Var(&c.IntervalSeconds, "interval", c.IntervalSeconds, "seconds per round")
	fs.Float64Var(&c.StartingAliveFraction, "alive", c.StartingAliveFraction, "fraction of cells alive at round start")
	fs.StringVar(&c.SeedStrategy, "seed-strategy", c.SeedStrategy, "uniform or scan")
	fs.Int64Var(&c.RandomSeed, "seed", c.RandomSeed, "random seed, 0 for time based")
	fs.IntVar(&c.Workers, "workers", c.Workers, "row bands per generation, 0 for one per CPU")
	fs.DurationVar(&c.FrameRate, "frame", c.FrameRate, "frame period of the driver loop")
	fs.BoolVar(&c.AutoRestart, "auto-restart", c.AutoRestart, "start a new round on extinction or stagnation")
	fs.IntVar(&c.StagnationThreshold, "stagnation", c.StagnationThreshold, "stagnant rounds before a restart")
	fs.IntVar(&c.MaxRounds, "max-rounds", c.MaxRounds, "stop after this many rounds, 0 for no limit")
	fs.BoolVar(&c.Headless, "headless", c.Headless, "print status lines instead of drawing the grid")
	fs.StringVar(&c.LogFile, "log", c.LogFile, "log file for terminal mode")
}

// Bounds returns the configured grid extent.
func (c Config) Bounds() model.Bounds {
	return model.Bounds{
		Min: model.Position{X: c.MinX, Y: c.MinY},
		Max: model.Position{X: c.MaxX, Y: c.MaxY},
	}
}

// Validate rejects values the simulation cannot start with.
func (c Config) Validate() error {
	if !c.Bounds().Valid() {
		return errors.Wrapf(model.ErrConfiguration, "[Validate] min (%d,%d) exceeds max (%d,%d)", c.MinX, c.MinY, c.MaxX, c.MaxY)
	}
	if math.IsNaN(c.IntervalSeconds) || c.IntervalSeconds < 0 || c.IntervalSeconds > round.MaxInterval {
		return errors.Wrapf(model.ErrConfiguration, "[Validate] interval_seconds %v outside [0,%d]", c.IntervalSeconds, round.MaxInterval)
	}
	if math.IsNaN(c.StartingAliveFraction) || c.StartingAliveFraction < 0 || c.StartingAliveFraction > 1 {
		return errors.Wrapf(model.ErrConfiguration, "[Validate] starting_alive_fraction %v outside [0,1]", c.StartingAliveFraction)
	}
	if _, err := model.SeederByName(c.SeedStrategy); err != nil {
		return errors.Wrap(err, "[Validate] bad seed_strategy")
	}
	if c.Workers < 0 {
		return errors.Wrapf(model.ErrConfiguration, "[Validate] workers %d is negative", c.Workers)
	}
	if c.FrameRate <= 0 {
		return errors.Wrapf(model.ErrConfiguration, "[Validate] frame_rate %v must be positive", c.FrameRate)
	}
	return nil
}

// SchedulerConfig returns the values the round scheduler reads.
func (c Config) SchedulerConfig() round.Config {
	return round.Config{
		Interval:      c.IntervalSeconds,
		AliveFraction: c.StartingAliveFraction,
	}
}

// BoardOptions returns the board construction options for c.
func (c Config) BoardOptions() ([]model.Option, error) {
	seeder, err := model.SeederByName(c.SeedStrategy)
	if err != nil {
		return nil, errors.Wrap(err, "[BoardOptions] bad seed_strategy")
	}
	opts := []model.Option{
		model.WithSeeder(seeder),
		model.WithRNG(model.NewRNG(c.RandomSeed)),
	}
	if c.Workers > 0 {
		opts = append(opts, model.WithWorkers(c.Workers))
	}
	return opts, nil
}
