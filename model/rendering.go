package model

import (
	"io"
	"strings"

	"github.com/pkg/errors"
)

const (
	gridPosBlock = "██"
	gridPosEmpty = "  "
)

// TextRenderer writes a board as text, one line per row with Max.Y on top.
type TextRenderer struct {
	Alive string
	Dead  string
}

// NewTextRenderer returns a renderer using block glyphs.
func NewTextRenderer() TextRenderer {
	return TextRenderer{Alive: gridPosBlock, Dead: gridPosEmpty}
}

// Display renders the board's current generation to w.
func (r TextRenderer) Display(w io.Writer, b *Board) error {
	bounds := b.Bounds()

	var sb strings.Builder
	for y := bounds.Max.Y; y >= bounds.Min.Y; y-- {
		for x := bounds.Min.X; x <= bounds.Max.X; x++ {
			if b.Alive(Position{X: x, Y: y}) {
				sb.WriteString(r.Alive)
			} else {
				sb.WriteString(r.Dead)
			}
		}
		sb.WriteByte('\n')
	}

	if _, err := io.WriteString(w, sb.String()); err != nil {
		return errors.Wrap(err, "[Display] failed to write board")
	}
	return nil
}
