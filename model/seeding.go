package model

import "github.com/pkg/errors"

const (
	// DefaultScanThreshold is the draw a dead cell must exceed to be picked
	// during a scan pass, giving roughly 5% acceptance per cell per pass.
	DefaultScanThreshold = 0.95

	// DefaultMaxScanPasses caps scan passes before the remainder is drawn
	// uniformly.
	DefaultMaxScanPasses = 10000

	SeedStrategyUniform = "uniform"
	SeedStrategyScan    = "scan"
)

// Seeder marks exactly target cells alive. Every cell is dead on entry and
// 0 <= target <= len(cells) is guaranteed by the board.
type Seeder interface {
	Seed(cells []Cell, target int, rng *RNG)
}

// UniformSeeder picks target distinct cells uniformly at random with a
// partial Fisher-Yates shuffle.
type UniformSeeder struct{}

func (UniformSeeder) Seed(cells []Cell, target int, rng *RNG) {
	pickDead(cells, target, rng)
}

// ScanSeeder reproduces the pass-based selection: cells are visited in
// storage order and each dead cell flips alive when a uniform draw exceeds
// Threshold, repeating passes until target is reached. Cells early in the
// order are favoured. After MaxPasses the remaining picks are uniform so a
// full-board target always terminates.
type ScanSeeder struct {
	Threshold float64
	MaxPasses int
}

func (s ScanSeeder) Seed(cells []Cell, target int, rng *RNG) {
	threshold := s.Threshold
	if threshold <= 0 || threshold >= 1 {
		threshold = DefaultScanThreshold
	}
	maxPasses := s.MaxPasses
	if maxPasses <= 0 {
		maxPasses = DefaultMaxScanPasses
	}

	alive := 0
	for pass := 0; alive < target; pass++ {
		if pass >= maxPasses {
			pickDead(cells, target-alive, rng)
			return
		}
		for i := range cells {
			if alive >= target {
				break
			}
			if !cells[i].alive && rng.Float64() > threshold {
				cells[i].alive = true
				alive++
			}
		}
	}
}

// pickDead flips k currently dead cells alive, chosen uniformly.
func pickDead(cells []Cell, k int, rng *RNG) {
	dead := make([]int, 0, len(cells))
	for i := range cells {
		if !cells[i].alive {
			dead = append(dead, i)
		}
	}
	k = min(k, len(dead))
	for i := 0; i < k; i++ {
		j := i + rng.IntN(len(dead)-i)
		dead[i], dead[j] = dead[j], dead[i]
		cells[dead[i]].alive = true
	}
}

// SeederByName resolves a configured seed strategy.
func SeederByName(name string) (Seeder, error) {
	switch name {
	case "", SeedStrategyUniform:
		return UniformSeeder{}, nil
	case SeedStrategyScan:
		return ScanSeeder{}, nil
	default:
		return nil, errors.Wrapf(ErrConfiguration, "[SeederByName] unknown seed strategy: %q", name)
	}
}
