package model

import "fmt"

// Position is an integer grid coordinate.
type Position struct {
	X, Y int
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Add returns p offset by (dx, dy).
func (p Position) Add(dx, dy int) Position {
	return Position{X: p.X + dx, Y: p.Y + dy}
}

// Bounds is an inclusive rectangle of positions.
type Bounds struct {
	Min Position
	Max Position
}

// Valid reports whether Min does not exceed Max on either axis.
func (b Bounds) Valid() bool {
	return b.Min.X <= b.Max.X && b.Min.Y <= b.Max.Y
}

// Width returns the number of columns.
func (b Bounds) Width() int { return b.Max.X - b.Min.X + 1 }

// Height returns the number of rows.
func (b Bounds) Height() int { return b.Max.Y - b.Min.Y + 1 }

// Contains reports whether p lies within b, edges included.
func (b Bounds) Contains(p Position) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Y >= b.Min.Y && p.Y <= b.Max.Y
}

// index maps an in-bounds position to its row-major slot.
func (b Bounds) index(p Position) int {
	return (p.Y-b.Min.Y)*b.Width() + (p.X - b.Min.X)
}

// Cell is a single grid position's state. Its position never changes once
// the board is built.
type Cell struct {
	pos   Position
	alive bool
}

// Position returns the cell's coordinate.
func (c Cell) Position() Position { return c.pos }

// Alive reports whether the cell is alive.
func (c Cell) Alive() bool { return c.alive }
