package ui

import (
	"strings"
	"testing"
	"time"

	"snake-arcade/game"
	"snake-arcade/game/entity"
	"snake-arcade/game/types"
	"snake-arcade/leaderboard"

	"github.com/gdamore/tcell/v2"
	rl "github.com/gen2brain/raylib-go/raylib"
)

func testSnapshot() game.Snapshot {
	return game.Snapshot{
		RunID: "run",
		State: game.Running,
		Grid:  types.DefaultGrid(),
		Box:   types.Box,
		Segments: []entity.Segment{
			{Point: types.Point{X: 5, Y: 5}, Color: types.Hue(120)},
			{Point: types.Point{X: 4, Y: 5}, Color: types.White},
		},
		Heading:    types.RIGHT,
		Food:       entity.Food{Point: types.Point{X: 9, Y: 2}, Color: types.Hue(240)},
		Score:      3,
		SpeedLevel: 5,
		Interval:   250 * time.Millisecond,
		Leaderboard: []leaderboard.Entry{
			{Score: 12, Date: "1/2/2024"},
			{Score: 3, Date: "1/3/2024"},
		},
	}
}

func TestComputeLayoutDefaultWindow(t *testing.T) {
	l := computeLayout(WindowWidth, WindowHeight, types.DefaultGrid())
	if l.cellSize != types.Box {
		t.Errorf("expected cell size %d at the default window, got %d", types.Box, l.cellSize)
	}
	if l.boardWidth != types.CanvasWidth || l.boardHeight != types.CanvasHeight {
		t.Errorf("unexpected board size %dx%d", l.boardWidth, l.boardHeight)
	}
	if l.statsX <= l.offsetX+l.boardWidth {
		t.Error("stats panel overlaps the board")
	}
}

func TestBoardPointScales(t *testing.T) {
	l := computeLayout(2*types.CanvasWidth+2*borderPadding+statsPanelWidth, 2*types.CanvasHeight+2*borderPadding, types.DefaultGrid())
	if l.cellSize != 2*types.Box {
		t.Fatalf("expected doubled cells, got %d", l.cellSize)
	}
	x, y, ok := l.boardPoint(float32(l.offsetX+100), float32(l.offsetY+60))
	if !ok || x != 50 || y != 30 {
		t.Errorf("expected (50,30), got (%v,%v) ok=%v", x, y, ok)
	}
	if _, _, ok := l.boardPoint(0, 0); ok {
		t.Error("the window corner is outside the board")
	}
}

func TestKeyEvent(t *testing.T) {
	ev, ok := KeyEvent(rl.KeyLeft)
	if !ok || ev.Action != game.ActionTurn || ev.Direction != types.LEFT {
		t.Errorf("left arrow mapped to %+v", ev)
	}
	ev, ok = KeyEvent(rl.KeyZero)
	if !ok || ev.Action != game.ActionSpeedSet || ev.Level != 10 {
		t.Errorf("0 should select level 10, got %+v", ev)
	}
	if _, ok := KeyEvent(rl.KeyF12); ok {
		t.Error("F12 should not be mapped")
	}
}

func newSimScreen(t *testing.T) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("init simulation screen: %v", err)
	}
	screen.SetSize(80, 24)
	t.Cleanup(screen.Fini)
	return screen
}

func rowText(screen tcell.Screen, y, from, to int) string {
	var sb strings.Builder
	for x := from; x < to; x++ {
		r, _, _, _ := screen.GetContent(x, y)
		sb.WriteRune(r)
	}
	return sb.String()
}

func TestTerminalRendererPaintsCells(t *testing.T) {
	screen := newSimScreen(t)
	tr := NewTerminalRenderer(screen, types.DefaultGrid())
	snap := testSnapshot()
	tr.Draw(snap)

	hx, hy := tr.CellOrigin(snap.Segments[0].Point)
	if _, _, style, _ := screen.GetContent(hx, hy); style != SegmentStyle(types.Hue(120)) {
		t.Error("head cell should use the head color")
	}
	tx, ty := tr.CellOrigin(snap.Segments[1].Point)
	if _, _, style, _ := screen.GetContent(tx+1, ty); style != SegmentStyle(types.White) {
		t.Error("tail cell should be white")
	}
	fx, fy := tr.CellOrigin(snap.Food.Point)
	r, _, style, _ := screen.GetContent(fx, fy)
	if r != '[' || style != FoodStyle(types.Hue(240)) {
		t.Errorf("food cell drawn as %q", r)
	}
}

func TestTerminalRendererPanel(t *testing.T) {
	screen := newSimScreen(t)
	tr := NewTerminalRenderer(screen, types.DefaultGrid())
	tr.Draw(testSnapshot())

	panelX := 1 + types.DefaultGrid().Width*cellColumns + 3
	if got := rowText(screen, 1, panelX, panelX+9); got != "Score: 3 " {
		t.Errorf("score line %q", got)
	}
	if got := rowText(screen, 2, panelX, panelX+9); got != "Best:  12" {
		t.Errorf("best line %q", got)
	}
	if got := rowText(screen, 7, panelX, panelX+20); !strings.Contains(got, "12  1/2/2024") {
		t.Errorf("leaderboard line %q", got)
	}
}

func TestTerminalRendererGameOver(t *testing.T) {
	screen := newSimScreen(t)
	tr := NewTerminalRenderer(screen, types.DefaultGrid())
	snap := testSnapshot()
	snap.State = game.Terminated
	snap.GameOver = &game.GameOver{Score: 3, Rank: 2}
	tr.Draw(snap)

	mid := 1 + types.DefaultGrid().Height/2
	if got := rowText(screen, mid-1, 1, 1+types.DefaultGrid().Width*cellColumns); !strings.Contains(got, "GAME OVER") {
		t.Errorf("modal missing, row reads %q", got)
	}
	if got := rowText(screen, mid, 1, 41); !strings.Contains(got, "rank #2") {
		t.Errorf("rank missing, row reads %q", got)
	}
}

func TestTerminalEvents(t *testing.T) {
	screen := newSimScreen(t)
	tr := NewTerminalRenderer(screen, types.DefaultGrid())

	tests := []struct {
		name string
		ev   tcell.Event
		want game.Event
	}{
		{"arrow", tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone), game.Turn(types.UP)},
		{"wasd", tcell.NewEventKey(tcell.KeyRune, 'd', tcell.ModNone), game.Turn(types.RIGHT)},
		{"level", tcell.NewEventKey(tcell.KeyRune, '7', tcell.ModNone), game.SpeedLevel(7)},
		{"faster", tcell.NewEventKey(tcell.KeyRune, '+', tcell.ModNone), game.Simple(game.ActionSpeedUp)},
		{"enter", tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), game.Simple(game.ActionConfirm)},
		{"quit", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), game.Simple(game.ActionQuit)},
		// column 21 row 4 is cell (10,3), centre pixel (210,70)
		{"click", tcell.NewEventMouse(21, 4, tcell.Button1, tcell.ModNone), game.Point(210, 70)},
		{"click outside", tcell.NewEventMouse(70, 4, tcell.Button1, tcell.ModNone), game.Simple(game.ActionConfirm)},
	}
	for _, tt := range tests {
		got, ok := tr.TerminalEvent(tt.ev)
		if !ok || got != tt.want {
			t.Errorf("%s: got %+v ok=%v, want %+v", tt.name, got, ok, tt.want)
		}
	}

	if _, ok := tr.TerminalEvent(tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone)); ok {
		t.Error("unmapped rune should be ignored")
	}
}
