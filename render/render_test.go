package render

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/sheikhrachel/gridlife/model"
	"github.com/sheikhrachel/gridlife/round"
)

func newSimScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	sim := tcell.NewSimulationScreen("")
	if err := sim.Init(); err != nil {
		t.Fatalf("init simulation screen: %v", err)
	}
	sim.SetSize(w, h)
	t.Cleanup(sim.Fini)
	return sim
}

func background(sim tcell.SimulationScreen, x, y int) tcell.Color {
	_, _, style, _ := sim.GetContent(x, y)
	_, bg, _ := style.Decompose()
	return bg
}

func rowText(sim tcell.SimulationScreen, y, width int) string {
	var sb strings.Builder
	for x := range width {
		r, _, _, _ := sim.GetContent(x, y)
		sb.WriteRune(r)
	}
	return sb.String()
}

func TestScreenObserveDrawsGridAndStatus(t *testing.T) {
	board, err := model.NewBoard(model.Bounds{Min: model.Position{X: 5, Y: 5}, Max: model.Position{X: 7, Y: 6}})
	if err != nil {
		t.Fatal(err)
	}
	// Top-left on screen is (Min.X, Max.Y).
	if err := board.SetAlive(model.Position{X: 5, Y: 6}, true); err != nil {
		t.Fatal(err)
	}
	if err := board.SetAlive(model.Position{X: 7, Y: 5}, true); err != nil {
		t.Fatal(err)
	}

	sim := newSimScreen(t, 40, 6)
	r := NewScreen(sim, board)
	if err := r.Observe(round.Summary{Alive: 2, Dead: 4, Round: 3}); err != nil {
		t.Fatal(err)
	}

	cases := []struct {
		x, y int
		want tcell.Color
	}{
		{0, 0, tcell.ColorGreen},
		{1, 0, tcell.ColorGreen},
		{2, 0, tcell.ColorWhite},
		{4, 1, tcell.ColorGreen},
		{5, 1, tcell.ColorGreen},
		{0, 1, tcell.ColorWhite},
	}
	for _, c := range cases {
		if got := background(sim, c.x, c.y); got != c.want {
			t.Fatalf("cell (%d,%d) background = %v, want %v", c.x, c.y, got, c.want)
		}
	}

	status := rowText(sim, StatusLine(board.Bounds()), 40)
	if !strings.HasPrefix(status, "Alive: 2 | Dead: 4 | Round: 3") {
		t.Fatalf("status line = %q", status)
	}
}

func TestScreenObserveWithoutScreen(t *testing.T) {
	board, err := model.NewBoard(model.Bounds{})
	if err != nil {
		t.Fatal(err)
	}
	if err := NewScreen(nil, board).Observe(round.Summary{}); err == nil {
		t.Fatal("expected an error without a screen")
	}
}

func TestProbeTile(t *testing.T) {
	p := NewProbe(model.Bounds{Min: model.Position{X: -2, Y: 0}, Max: model.Position{X: 1, Y: 3}})
	tests := []struct {
		sx, sy int
		want   model.Position
		ok     bool
	}{
		{0, 0, model.Position{X: -2, Y: 3}, true},
		{1, 0, model.Position{X: -2, Y: 3}, true},
		{7, 3, model.Position{X: 1, Y: 0}, true},
		{8, 0, model.Position{X: 2, Y: 3}, false},
		{0, 4, model.Position{X: -2, Y: -1}, false},
		{-1, 0, model.Position{}, false},
	}
	for _, tt := range tests {
		got, ok := p.Tile(tt.sx, tt.sy)
		if ok != tt.ok || got != tt.want {
			t.Fatalf("Tile(%d,%d) = %v,%v want %v,%v", tt.sx, tt.sy, got, ok, tt.want, tt.ok)
		}
	}
}

func TestProbeClick(t *testing.T) {
	p := NewProbe(model.Bounds{Max: model.Position{X: 4, Y: 4}})

	sx, sy, tile, ok := p.Click(tcell.NewEventMouse(3, 1, tcell.Button1, tcell.ModNone))
	if !ok || sx != 3 || sy != 1 || tile != (model.Position{X: 1, Y: 3}) {
		t.Fatalf("Click = %d,%d %v %v", sx, sy, tile, ok)
	}
	if _, _, _, ok := p.Click(tcell.NewEventMouse(3, 1, tcell.ButtonNone, tcell.ModNone)); ok {
		t.Fatal("motion without a button reported a click")
	}
	if _, _, _, ok := p.Click(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone)); ok {
		t.Fatal("key event reported a click")
	}
}
