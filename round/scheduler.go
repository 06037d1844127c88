package round

import (
	"io"
	"log"
	"math"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/gridlife/model"
)

// MaxInterval is the longest accepted round interval, in seconds.
const MaxInterval = 120

// Summary is the round-complete notification payload.
type Summary struct {
	Alive int
	Dead  int
	Round int
}

// Observer receives round summaries. A returned error is logged and does not
// stop delivery to later observers.
type Observer func(Summary) error

// Board is the part of model.Board the scheduler drives.
type Board interface {
	Seed(fraction float64) error
	Advance()
	AliveCount() int
	DeadCount() int
}

var _ Board = (*model.Board)(nil)

// Config holds the values a scheduler reads at construction.
type Config struct {
	Interval      float64 // seconds between generations
	AliveFraction float64 // share of cells alive after Start
}

// Scheduler turns externally supplied time deltas into board generations.
// It is Idle until Start and is not safe for concurrent use.
type Scheduler struct {
	board     Board
	cfg       Config
	logger    *log.Logger
	observers []Observer

	elapsed float64
	running bool
	round   int
}

// SchedulerOption configures a Scheduler.
type SchedulerOption func(*Scheduler)

// WithLogger sets where observer failures are reported.
func WithLogger(l *log.Logger) SchedulerOption {
	return func(s *Scheduler) { s.logger = l }
}

// NewScheduler validates cfg and returns an Idle scheduler for board.
func NewScheduler(board Board, cfg Config, opts ...SchedulerOption) (*Scheduler, error) {
	if board == nil {
		return nil, errors.Wrap(model.ErrConfiguration, "[NewScheduler] nil board")
	}
	if math.IsNaN(cfg.Interval) || cfg.Interval < 0 || cfg.Interval > MaxInterval {
		return nil, errors.Wrapf(model.ErrConfiguration, "[NewScheduler] interval %v outside [0,%d]", cfg.Interval, MaxInterval)
	}
	if math.IsNaN(cfg.AliveFraction) || cfg.AliveFraction < 0 || cfg.AliveFraction > 1 {
		return nil, errors.Wrapf(model.ErrConfiguration, "[NewScheduler] alive fraction %v outside [0,1]", cfg.AliveFraction)
	}

	s := &Scheduler{board: board, cfg: cfg}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = log.New(io.Discard, "", 0)
	}
	return s, nil
}

// Subscribe appends an observer. Observers are called in registration order.
func (s *Scheduler) Subscribe(o Observer) {
	if o == nil {
		return
	}
	s.observers = append(s.observers, o)
}

// Running reports whether ticks currently advance the board.
func (s *Scheduler) Running() bool { return s.running }

// Round returns the number of generations since the last Start.
func (s *Scheduler) Round() int { return s.round }

// Elapsed returns the accumulated time not yet spent on a generation.
func (s *Scheduler) Elapsed() float64 { return s.elapsed }

// Interval returns the configured seconds per generation.
func (s *Scheduler) Interval() float64 { return s.cfg.Interval }

// Start reseeds the board, resets the round and accumulator, and emits a
// round zero summary of the fresh board.
func (s *Scheduler) Start() error {
	if err := s.board.Seed(s.cfg.AliveFraction); err != nil {
		return errors.Wrap(err, "[Start] failed to seed board")
	}
	s.elapsed = 0
	s.round = 0
	s.running = true
	s.emit()
	return nil
}

// Stop makes further ticks no-ops until the next Start.
func (s *Scheduler) Stop() {
	s.running = false
}

// Tick adds delta seconds to the accumulator and advances at most one
// generation once the accumulator exceeds the interval. Overshoot is kept
// for the next round. With a zero interval every tick advances.
func (s *Scheduler) Tick(delta float64) {
	if !s.running {
		return
	}
	if math.IsNaN(delta) || delta < 0 {
		delta = 0
	}

	s.elapsed += delta
	if s.cfg.Interval <= 0 {
		s.elapsed = 0
	} else if s.elapsed > s.cfg.Interval {
		s.elapsed -= s.cfg.Interval
	} else {
		return
	}

	s.board.Advance()
	s.round++
	s.emit()
}

func (s *Scheduler) emit() {
	summary := Summary{
		Alive: s.board.AliveCount(),
		Dead:  s.board.DeadCount(),
		Round: s.round,
	}
	for i, o := range s.observers {
		if err := s.notify(o, summary); err != nil {
			s.logger.Printf("round %d: observer %d failed: %v", summary.Round, i, err)
		}
	}
}

func (s *Scheduler) notify(o Observer, summary Summary) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("panic: %v", r)
		}
	}()
	return o(summary)
}
