package ui

import (
	"fmt"

	"snake-arcade/game"
	"snake-arcade/game/types"

	"github.com/gdamore/tcell/v2"
)

// Each board cell takes two terminal columns so cells look square.
const cellColumns = 2

var (
	termBoard  = tcell.StyleDefault.Background(tcell.NewRGBColor(17, 17, 17))
	termBorder = tcell.StyleDefault.Foreground(tcell.ColorGray)
	termText   = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	termDim    = tcell.StyleDefault.Foreground(tcell.ColorSilver)
	termGold   = tcell.StyleDefault.Foreground(tcell.ColorGold)
	termRed    = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
)

func toTerminal(c types.Color) tcell.Color {
	r, g, b := c.RGB()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

// SegmentStyle is the style of a snake cell of color c.
func SegmentStyle(c types.Color) tcell.Style {
	return tcell.StyleDefault.Background(toTerminal(c)).Foreground(tcell.ColorBlack)
}

// FoodStyle is the style of the food cell of color c.
func FoodStyle(c types.Color) tcell.Style {
	return tcell.StyleDefault.Background(toTerminal(c)).Foreground(tcell.ColorGold)
}

// TerminalRenderer draws snapshots on a tcell screen.
type TerminalRenderer struct {
	screen  tcell.Screen
	grid    types.Grid
	offsetX int
	offsetY int
}

func NewTerminalRenderer(screen tcell.Screen, grid types.Grid) *TerminalRenderer {
	return &TerminalRenderer{
		screen:  screen,
		grid:    grid,
		offsetX: 1,
		offsetY: 1,
	}
}

func (t *TerminalRenderer) Draw(s game.Snapshot) {
	t.screen.Clear()
	t.drawBoard(s)
	t.drawPanel(s)
	if s.GameOver != nil {
		t.drawGameOver(s.GameOver)
	}
	t.screen.Show()
}

// CellOrigin returns the terminal column and row of the left half of cell p.
func (t *TerminalRenderer) CellOrigin(p types.Point) (int, int) {
	return t.offsetX + p.X*cellColumns, t.offsetY + p.Y
}

// BoardPoint converts a terminal position into board pixels at the centre
// of the cell under it.
func (t *TerminalRenderer) BoardPoint(x, y int) (float32, float32, bool) {
	col := (x - t.offsetX) / cellColumns
	row := y - t.offsetY
	if x < t.offsetX || !t.grid.Contains(types.Point{X: col, Y: row}) {
		return 0, 0, false
	}
	half := float32(types.Box) / 2
	return float32(col*types.Box) + half, float32(row*types.Box) + half, true
}

func (t *TerminalRenderer) drawBoard(s game.Snapshot) {
	width := t.grid.Width * cellColumns
	left, top := t.offsetX-1, t.offsetY-1
	right, bottom := t.offsetX+width, t.offsetY+t.grid.Height

	for x := left + 1; x < right; x++ {
		t.screen.SetContent(x, top, '─', nil, termBorder)
		t.screen.SetContent(x, bottom, '─', nil, termBorder)
	}
	for y := top + 1; y < bottom; y++ {
		t.screen.SetContent(left, y, '│', nil, termBorder)
		t.screen.SetContent(right, y, '│', nil, termBorder)
	}
	t.screen.SetContent(left, top, '┌', nil, termBorder)
	t.screen.SetContent(right, top, '┐', nil, termBorder)
	t.screen.SetContent(left, bottom, '└', nil, termBorder)
	t.screen.SetContent(right, bottom, '┘', nil, termBorder)

	for y := 0; y < t.grid.Height; y++ {
		for x := 0; x < width; x++ {
			t.screen.SetContent(t.offsetX+x, t.offsetY+y, ' ', nil, termBoard)
		}
	}

	fx, fy := t.CellOrigin(s.Food.Point)
	food := FoodStyle(s.Food.Color)
	t.screen.SetContent(fx, fy, '[', nil, food)
	t.screen.SetContent(fx+1, fy, ']', nil, food)

	for i, seg := range s.Segments {
		x, y := t.CellOrigin(seg.Point)
		style := SegmentStyle(seg.Color)
		mark := ' '
		if i == 0 {
			mark = '▪'
		}
		t.screen.SetContent(x, y, mark, nil, style)
		t.screen.SetContent(x+1, y, mark, nil, style)
	}

	if s.State == game.Idle && s.GameOver == nil {
		t.drawCentered("arrows or click to start", bottom-2, termDim.Background(tcell.NewRGBColor(17, 17, 17)))
	}
}

func (t *TerminalRenderer) drawPanel(s game.Snapshot) {
	x := t.offsetX + t.grid.Width*cellColumns + 3
	y := t.offsetY

	t.drawText(x, y, termText.Bold(true), fmt.Sprintf("Score: %d", s.Score))
	y++
	t.drawText(x, y, termText, fmt.Sprintf("Best:  %d", s.Best()))
	y++
	t.drawText(x, y, termText, fmt.Sprintf("Speed: %d (%dms)", s.SpeedLevel, s.Interval.Milliseconds()))
	y++
	t.drawText(x, y, termDim, fmt.Sprintf("Runs:  %d  avg %.1f", s.Session.RunsPlayed, s.Session.AverageScore))
	y += 2

	t.drawText(x, y, termGold, "High Scores")
	y++
	if len(s.Leaderboard) == 0 {
		t.drawText(x, y, termDim, "no scores yet")
	}
	for i, e := range s.Leaderboard {
		if i >= leaderboardRows {
			break
		}
		t.drawText(x, y, termText, fmt.Sprintf("%2d. %3d  %s", i+1, e.Score, e.Date))
		y++
	}

	t.drawText(x, t.offsetY+t.grid.Height-1, termDim, "1-0 speed  r reset  q quit")
}

func (t *TerminalRenderer) drawGameOver(over *game.GameOver) {
	mid := t.offsetY + t.grid.Height/2
	box := tcell.StyleDefault.Background(tcell.ColorDarkSlateGray)

	width := t.grid.Width * cellColumns
	for y := mid - 2; y <= mid+2; y++ {
		for x := 4; x < width-4; x++ {
			t.screen.SetContent(t.offsetX+x, y, ' ', nil, box)
		}
	}
	t.drawCentered("GAME OVER", mid-1, termRed.Background(tcell.ColorDarkSlateGray))
	line := fmt.Sprintf("score %d", over.Score)
	if over.Rank > 0 {
		line += fmt.Sprintf("  rank #%d", over.Rank)
	}
	t.drawCentered(line, mid, termText.Background(tcell.ColorDarkSlateGray))
	t.drawCentered("enter to continue", mid+1, termDim.Background(tcell.ColorDarkSlateGray))
}

func (t *TerminalRenderer) drawCentered(text string, y int, style tcell.Style) {
	width := t.grid.Width * cellColumns
	x := t.offsetX + (width-len([]rune(text)))/2
	t.drawText(x, y, style, text)
}

func (t *TerminalRenderer) drawText(x, y int, style tcell.Style, text string) {
	for i, r := range []rune(text) {
		t.screen.SetContent(x+i, y, r, nil, style)
	}
}

// TerminalEvent translates a tcell event into a game event.
func (t *TerminalRenderer) TerminalEvent(ev tcell.Event) (game.Event, bool) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return keyEvent(ev)
	case *tcell.EventMouse:
		if ev.Buttons()&tcell.Button1 == 0 {
			return game.Event{}, false
		}
		mx, my := ev.Position()
		if x, y, ok := t.BoardPoint(mx, my); ok {
			return game.Point(x, y), true
		}
		return game.Simple(game.ActionConfirm), true
	case *tcell.EventResize:
		t.screen.Sync()
	}
	return game.Event{}, false
}

func keyEvent(ev *tcell.EventKey) (game.Event, bool) {
	switch ev.Key() {
	case tcell.KeyUp:
		return game.Turn(types.UP), true
	case tcell.KeyDown:
		return game.Turn(types.DOWN), true
	case tcell.KeyLeft:
		return game.Turn(types.LEFT), true
	case tcell.KeyRight:
		return game.Turn(types.RIGHT), true
	case tcell.KeyEnter:
		return game.Simple(game.ActionConfirm), true
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return game.Simple(game.ActionQuit), true
	case tcell.KeyRune:
		return runeEvent(ev.Rune())
	}
	return game.Event{}, false
}

func runeEvent(r rune) (game.Event, bool) {
	switch r {
	case 'w', 'W':
		return game.Turn(types.UP), true
	case 's', 'S':
		return game.Turn(types.DOWN), true
	case 'a', 'A':
		return game.Turn(types.LEFT), true
	case 'd', 'D':
		return game.Turn(types.RIGHT), true
	case ' ':
		return game.Simple(game.ActionConfirm), true
	case 'r', 'R':
		return game.Simple(game.ActionReset), true
	case 'q', 'Q':
		return game.Simple(game.ActionQuit), true
	case '+', '=':
		return game.Simple(game.ActionSpeedUp), true
	case '-', '_':
		return game.Simple(game.ActionSpeedDown), true
	case '0':
		return game.SpeedLevel(10), true
	}
	if r >= '1' && r <= '9' {
		return game.SpeedLevel(int(r - '0')), true
	}
	return game.Event{}, false
}
