package utils

import (
	"time"

	"github.com/sheikhrachel/gridlife/round"
)

// Stats for performance monitoring
type Stats struct {
	RoundsPerSecond   float64
	AveragePopulation float64
	PeakPopulation    int
	TotalRounds       int
	Restarts          int
	StartTime         time.Time

	lastRound time.Time
	now       func() time.Time
}

func NewStats() *Stats {
	now := time.Now()
	return &Stats{StartTime: now, lastRound: now, now: time.Now}
}

// Observe records a round summary. It is meant to be subscribed to a
// round.Scheduler.
func (s *Stats) Observe(sum round.Summary) error {
	now := s.now()
	if sum.Round == 0 {
		s.Restarts++
	} else {
		s.Update(sum.Alive, now.Sub(s.lastRound))
	}
	s.lastRound = now
	return nil
}

func (s *Stats) Update(population int, duration time.Duration) {
	s.TotalRounds++
	if duration > 0 {
		s.RoundsPerSecond = 1.0 / duration.Seconds()
	}
	s.PeakPopulation = max(s.PeakPopulation, population)

	// Simple moving average for population
	if s.AveragePopulation == 0 {
		s.AveragePopulation = float64(population)
	} else {
		s.AveragePopulation = (s.AveragePopulation * 0.9) + (float64(population) * 0.1)
	}
}
