package render

import (
	"github.com/gdamore/tcell/v2"

	"github.com/sheikhrachel/gridlife/model"
)

// Probe maps terminal coordinates back to grid positions. It is a debugging
// aid and never touches board state.
type Probe struct {
	bounds model.Bounds
}

// NewProbe returns a probe for a grid drawn by Screen with the given bounds.
func NewProbe(bounds model.Bounds) Probe {
	return Probe{bounds: bounds}
}

// Tile returns the grid position under screen cell (sx, sy), and false when
// the point is outside the drawn grid.
func (p Probe) Tile(sx, sy int) (model.Position, bool) {
	if sx < 0 || sy < 0 {
		return model.Position{}, false
	}
	pos := model.Position{
		X: p.bounds.Min.X + sx/cellWidth,
		Y: p.bounds.Max.Y - sy,
	}
	return pos, p.bounds.Contains(pos)
}

// Click reports the tile under a primary-button mouse event.
func (p Probe) Click(ev tcell.Event) (screenX, screenY int, tile model.Position, ok bool) {
	mev, isMouse := ev.(*tcell.EventMouse)
	if !isMouse || mev.Buttons()&tcell.Button1 == 0 {
		return 0, 0, model.Position{}, false
	}
	screenX, screenY = mev.Position()
	tile, ok = p.Tile(screenX, screenY)
	return screenX, screenY, tile, ok
}
