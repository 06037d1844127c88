package model

import (
	"crypto/md5"
	"fmt"
	"iter"
	"math"
	"runtime"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/sheikhrachel/gridlife/rules"
)

// historySize is how many recent grid digests are kept for cycle detection.
const historySize = 5

// Board is a bounded, non-wrapping Game of Life grid. It owns two
// same-shaped cell buffers; active selects the one holding the current
// generation and the other is written during Advance.
type Board struct {
	bounds Bounds
	grids  [2][]Cell
	active int

	aliveCount int
	deadCount  int

	workers int
	rng     *RNG
	seeder  Seeder

	history []string // digests of recent generations
}

// Option configures a Board at construction.
type Option func(*Board)

// WithWorkers sets how many row bands Advance processes concurrently.
func WithWorkers(n int) Option {
	return func(b *Board) { b.workers = n }
}

// WithRNG sets the random source used for seeding.
func WithRNG(rng *RNG) Option {
	return func(b *Board) { b.rng = rng }
}

// WithSeeder sets the seeding strategy.
func WithSeeder(s Seeder) Option {
	return func(b *Board) { b.seeder = s }
}

// NewBoard allocates both buffers with one dead cell per position in bounds.
func NewBoard(bounds Bounds, opts ...Option) (*Board, error) {
	if !bounds.Valid() {
		return nil, errors.Wrapf(ErrConfiguration, "[NewBoard] min %v exceeds max %v", bounds.Min, bounds.Max)
	}

	b := &Board{
		bounds:  bounds,
		workers: runtime.NumCPU(),
		seeder:  UniformSeeder{},
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.workers < 1 {
		b.workers = 1
	}
	if b.rng == nil {
		b.rng = NewRNG(0)
	}
	if b.seeder == nil {
		b.seeder = UniformSeeder{}
	}

	n := bounds.Width() * bounds.Height()
	for i := range b.grids {
		cells := make([]Cell, n)
		for y := bounds.Min.Y; y <= bounds.Max.Y; y++ {
			for x := bounds.Min.X; x <= bounds.Max.X; x++ {
				p := Position{X: x, Y: y}
				cells[bounds.index(p)] = Cell{pos: p}
			}
		}
		b.grids[i] = cells
	}
	b.deadCount = n

	return b, nil
}

func (b *Board) current() []Cell { return b.grids[b.active] }

func (b *Board) scratch() []Cell { return b.grids[1-b.active] }

// Bounds returns the board's inclusive extent.
func (b *Board) Bounds() Bounds { return b.bounds }

// Len returns the total number of cells.
func (b *Board) Len() int { return len(b.current()) }

// AliveCount returns the number of alive cells in the current generation.
func (b *Board) AliveCount() int { return b.aliveCount }

// DeadCount returns the number of dead cells in the current generation.
func (b *Board) DeadCount() int { return b.deadCount }

// CellInRange reports whether p lies within the board bounds, edges included.
func (b *Board) CellInRange(p Position) bool {
	return b.bounds.Contains(p)
}

// Cell returns the current cell at p.
func (b *Board) Cell(p Position) (Cell, bool) {
	if !b.bounds.Contains(p) {
		return Cell{}, false
	}
	return b.current()[b.bounds.index(p)], true
}

// Alive reports whether the cell at p is alive. Positions outside the board
// are dead.
func (b *Board) Alive(p Position) bool {
	c, ok := b.Cell(p)
	return ok && c.alive
}

// Cells yields every cell of the current generation in row-major order,
// starting at Bounds().Min.
func (b *Board) Cells() iter.Seq[Cell] {
	return func(yield func(Cell) bool) {
		for _, c := range b.current() {
			if !yield(c) {
				return
			}
		}
	}
}

// SetAlive sets a single cell's state in the current generation.
func (b *Board) SetAlive(p Position, alive bool) error {
	if !b.bounds.Contains(p) {
		return errors.Wrapf(ErrOutOfRange, "[SetAlive] %v not within %v..%v", p, b.bounds.Min, b.bounds.Max)
	}
	c := &b.current()[b.bounds.index(p)]
	if c.alive == alive {
		return nil
	}
	c.alive = alive
	if alive {
		b.aliveCount++
		b.deadCount--
	} else {
		b.aliveCount--
		b.deadCount++
	}
	return nil
}

// Seed kills every cell and then brings floor(Len()*fraction) of them to
// life using the configured Seeder. The board is untouched on error.
func (b *Board) Seed(fraction float64) error {
	if math.IsNaN(fraction) || fraction < 0 || fraction > 1 {
		return errors.Wrapf(ErrInvariantViolation, "[Seed] alive fraction %v outside [0,1]", fraction)
	}
	return b.SeedCount(int(math.Floor(float64(b.Len()) * fraction)))
}

// SeedCount is Seed with an explicit number of alive cells.
func (b *Board) SeedCount(target int) error {
	if target < 0 || target > b.Len() {
		return errors.Wrapf(ErrInvariantViolation, "[SeedCount] target %d outside [0,%d]", target, b.Len())
	}

	cells := b.current()
	for i := range cells {
		cells[i].alive = false
	}
	b.seeder.Seed(cells, target, b.rng)
	b.recount()
	b.history = nil

	return nil
}

// CountAliveNeighbors counts alive cells among the eight positions around p.
// Positions outside the board count as dead.
func (b *Board) CountAliveNeighbors(p Position) int {
	return b.countIn(b.current(), p)
}

func (b *Board) countIn(cells []Cell, p Position) int {
	count := 0
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			n := p.Add(dx, dy)
			if b.bounds.Contains(n) && cells[b.bounds.index(n)].alive {
				count++
			}
		}
	}
	return count
}

// Advance computes the next generation from the current one into the
// scratch buffer, then swaps the buffers and recounts. Rows are split into
// bands that run concurrently; each band only reads the current buffer and
// only writes its own rows of the scratch buffer.
func (b *Board) Advance() {
	var (
		prev   = b.current()
		next   = b.scratch()
		width  = b.bounds.Width()
		height = b.bounds.Height()
		bands  = min(b.workers, height)
	)

	sweep := func(startRow, endRow int) {
		for row := startRow; row < endRow; row++ {
			for col := range width {
				idx := row*width + col
				next[idx].alive = rules.Apply(prev[idx].alive, b.countIn(prev, prev[idx].pos))
			}
		}
	}

	if bands <= 1 {
		sweep(0, height)
	} else {
		var (
			eg          errgroup.Group
			rowsPerBand = (height + bands - 1) / bands // Ceiling division
		)
		for i := range bands {
			var (
				startRow = i * rowsPerBand
				endRow   = min(startRow+rowsPerBand, height)
			)
			if startRow >= height {
				break
			}
			eg.Go(func() error {
				sweep(startRow, endRow)
				return nil
			})
		}
		// Bands never fail; Wait only joins them.
		_ = eg.Wait()
	}

	b.active = 1 - b.active
	b.recount()
}

func (b *Board) recount() {
	alive := 0
	for _, c := range b.current() {
		if c.alive {
			alive++
		}
	}
	b.aliveCount = alive
	b.deadCount = b.Len() - alive
}

// Hash returns an MD5 digest of the current generation.
func (b *Board) Hash() string {
	cells := b.current()
	buf := make([]byte, len(cells))
	for i, c := range cells {
		if c.alive {
			buf[i] = 1
		}
	}
	return fmt.Sprintf("%x", md5.Sum(buf))
}

// UpdateHistory records the current generation's digest, keeping the most
// recent few.
func (b *Board) UpdateHistory() {
	b.history = append(b.history, b.Hash())
	if len(b.history) > historySize {
		b.history = b.history[1:]
	}
}

// IsStagnant reports whether the most recently recorded generation repeats
// one of the three before it (a still life or an oscillator of period <= 3).
func (b *Board) IsStagnant() bool {
	n := len(b.history)
	if n < 2 {
		return false
	}
	latest := b.history[n-1]
	for period := 1; period <= 3 && n-1-period >= 0; period++ {
		if b.history[n-1-period] == latest {
			return true
		}
	}
	return false
}
