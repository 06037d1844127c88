package model

import "github.com/pkg/errors"

var (
	// ErrConfiguration reports malformed construction parameters such as
	// inverted bounds. It is fatal for the simulation.
	ErrConfiguration = errors.New("configuration error")

	// ErrInvariantViolation reports a seeding request that cannot be met,
	// e.g. a fraction outside [0,1] or a target above the cell count.
	ErrInvariantViolation = errors.New("invariant violation")

	// ErrOutOfRange reports a position outside the board bounds.
	ErrOutOfRange = errors.New("position out of range")
)
