package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/gridlife/model"
	"github.com/sheikhrachel/gridlife/round"
	"github.com/sheikhrachel/gridlife/utils"
)

// game bundles the simulation with the driver-side bookkeeping.
type game struct {
	board     *model.Board
	scheduler *round.Scheduler
	stats     *utils.Stats
	logger    *log.Logger

	stagnantCount int
	last          round.Summary
}

// initializeGame sets up the board, scheduler and the observers every mode
// shares. The scheduler is left Idle.
func initializeGame(config utils.Config, logger *log.Logger) (*game, error) {
	opts, err := config.BoardOptions()
	if err != nil {
		return nil, err
	}
	board, err := model.NewBoard(config.Bounds(), opts...)
	if err != nil {
		return nil, errors.Wrap(err, "[initializeGame] failed to build board")
	}
	scheduler, err := round.NewScheduler(board, config.SchedulerConfig(), round.WithLogger(logger))
	if err != nil {
		return nil, errors.Wrap(err, "[initializeGame] failed to build scheduler")
	}

	g := &game{
		board:     board,
		scheduler: scheduler,
		stats:     utils.NewStats(),
		logger:    logger,
	}
	scheduler.Subscribe(g.trackRound)
	scheduler.Subscribe(g.stats.Observe)
	return g, nil
}

// trackRound keeps the latest summary and the stagnation streak.
func (g *game) trackRound(sum round.Summary) error {
	g.last = sum
	g.board.UpdateHistory()
	if sum.Round > 0 && g.board.IsStagnant() {
		g.stagnantCount++
	} else {
		g.stagnantCount = 0
	}
	return nil
}

// newLogger opens the log destination. Terminal mode must not write to the
// screen, so without a log file its output is discarded.
func newLogger(config utils.Config) (*log.Logger, io.Closer, error) {
	if config.LogFile != "" {
		f, err := os.OpenFile(config.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, errors.Wrapf(err, "[newLogger] failed to open log file: %+v", config.LogFile)
		}
		return log.New(f, "gridlife: ", log.LstdFlags), f, nil
	}
	if config.Headless {
		return log.New(os.Stderr, "gridlife: ", log.LstdFlags), io.NopCloser(nil), nil
	}
	return log.New(io.Discard, "", 0), io.NopCloser(nil), nil
}

// displayGameInfo shows the initial game information
func displayGameInfo(out io.Writer, config utils.Config, board *model.Board) {
	bounds := board.Bounds()
	fmt.Fprintf(out, "Grid: %v..%v (%dx%d) | Interval: %.2fs | Alive fraction: %.2f | Seeding: %s\n",
		bounds.Min, bounds.Max, bounds.Width(), bounds.Height(),
		config.IntervalSeconds, config.StartingAliveFraction, config.SeedStrategy)
	fmt.Fprintln(out, "Press Ctrl+C to exit gracefully")
	fmt.Fprintln(out)
}

// roundStatusPrinter returns an observer printing one status line per round.
func roundStatusPrinter(out io.Writer, g *game) round.Observer {
	return func(sum round.Summary) error {
		density := float64(sum.Alive) / float64(sum.Alive+sum.Dead) * 100
		status := "Active"
		switch {
		case sum.Alive == 0:
			status = "Extinct"
		case g.stagnantCount > 0:
			status = fmt.Sprintf("Stagnant (%d)", g.stagnantCount)
		}
		_, err := fmt.Fprintf(out, "Round: %d | Alive: %d | Dead: %d | Density: %.1f%% | Status: %s | Avg Pop: %.1f\n",
			sum.Round, sum.Alive, sum.Dead, density, status, g.stats.AveragePopulation)
		return err
	}
}

// checkRestartConditions determines if a new round should start
func checkRestartConditions(sum round.Summary, stagnantCount int, config utils.Config) (bool, string) {
	if sum.Round == 0 {
		return false, ""
	}
	if sum.Alive == 0 {
		return true, "extinction"
	}
	if config.StagnationThreshold > 0 && stagnantCount >= config.StagnationThreshold {
		return true, "stagnation detected"
	}
	return false, ""
}

// afterTick restarts the run when needed and reports whether the driver
// should stop.
func (g *game) afterTick(config utils.Config) (bool, error) {
	if config.MaxRounds > 0 && g.stats.TotalRounds >= config.MaxRounds {
		return true, nil
	}
	if !config.AutoRestart || !g.scheduler.Running() {
		return false, nil
	}
	if restart, reason := checkRestartConditions(g.last, g.stagnantCount, config); restart {
		g.logger.Printf("restarting after round %d: %s", g.last.Round, reason)
		if err := g.scheduler.Start(); err != nil {
			return true, err
		}
	}
	return false, nil
}

// frameClock turns wall-clock frames into scheduler deltas.
type frameClock struct {
	last time.Time
}

func (c *frameClock) delta(now time.Time) float64 {
	if c.last.IsZero() {
		c.last = now
	}
	d := now.Sub(c.last)
	c.last = now
	return d.Seconds()
}
