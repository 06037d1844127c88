package render

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/pkg/errors"

	"github.com/sheikhrachel/gridlife/model"
	"github.com/sheikhrachel/gridlife/round"
)

// cellWidth is how many terminal columns one grid cell takes.
const cellWidth = 2

var (
	aliveStyle  = tcell.StyleDefault.Background(tcell.ColorGreen)
	deadStyle   = tcell.StyleDefault.Background(tcell.ColorWhite)
	statusStyle = tcell.StyleDefault
)

// CellSource is the read-only view of the board the renderer needs.
type CellSource interface {
	Bounds() model.Bounds
	Alive(p model.Position) bool
}

// Screen draws the board and a status line onto a tcell screen each time a
// round completes.
type Screen struct {
	screen tcell.Screen
	board  CellSource
}

// NewScreen returns a renderer for board on screen.
func NewScreen(screen tcell.Screen, board CellSource) *Screen {
	return &Screen{screen: screen, board: board}
}

// Observe redraws the grid and the alive/dead/round labels.
func (s *Screen) Observe(sum round.Summary) error {
	if s.screen == nil {
		return errors.New("[Observe] no screen")
	}

	bounds := s.board.Bounds()
	for row, y := 0, bounds.Max.Y; y >= bounds.Min.Y; row, y = row+1, y-1 {
		for col, x := 0, bounds.Min.X; x <= bounds.Max.X; col, x = col+1, x+1 {
			style := deadStyle
			if s.board.Alive(model.Position{X: x, Y: y}) {
				style = aliveStyle
			}
			for i := range cellWidth {
				s.screen.SetContent(col*cellWidth+i, row, ' ', nil, style)
			}
		}
	}

	s.drawStatus(StatusLine(bounds), sum)
	s.screen.Show()
	return nil
}

func (s *Screen) drawStatus(row int, sum round.Summary) {
	line := fmt.Sprintf("Alive: %d | Dead: %d | Round: %d", sum.Alive, sum.Dead, sum.Round)
	width, _ := s.screen.Size()
	for col := range max(width, len(line)) {
		r := ' '
		if col < len(line) {
			r = rune(line[col])
		}
		s.screen.SetContent(col, row, r, nil, statusStyle)
	}
}

// StatusLine returns the row the status line is drawn on for bounds.
func StatusLine(bounds model.Bounds) int {
	return bounds.Height() + 1
}
