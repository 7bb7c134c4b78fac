package ui

import (
	"fmt"

	"snake-arcade/game"
	"snake-arcade/game/types"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	borderPadding   = 10
	statsPanelWidth = 220
	leaderboardRows = 10
)

// WindowWidth and WindowHeight size the window so the board shows at one
// pixel per board pixel next to the stats panel.
const (
	WindowWidth  = types.CanvasWidth + 2*borderPadding + statsPanelWidth
	WindowHeight = types.CanvasHeight + 2*borderPadding
)

var (
	boardBackground = rl.Color{R: 17, G: 17, B: 17, A: 255}
	panelBackground = rl.DarkGray
	foodBorder      = rl.Color{R: 255, G: 215, B: 0, A: 255}
	modalShade      = rl.Color{R: 0, G: 0, B: 0, A: 180}
)

// layout places the board and the stats panel inside a window. The board is
// scaled to the largest whole cell size that fits.
type layout struct {
	cellSize     int32
	offsetX      int32
	offsetY      int32
	boardWidth   int32
	boardHeight  int32
	screenWidth  int32
	screenHeight int32
	statsX       int32
}

func computeLayout(screenWidth, screenHeight int32, grid types.Grid) layout {
	availableWidth := screenWidth - statsPanelWidth - borderPadding*2
	availableHeight := screenHeight - borderPadding*2

	cellW := availableWidth / int32(grid.Width)
	cellH := availableHeight / int32(grid.Height)
	cell := min(cellW, cellH)
	if cell < 1 {
		cell = 1
	}

	l := layout{
		cellSize:     cell,
		boardWidth:   cell * int32(grid.Width),
		boardHeight:  cell * int32(grid.Height),
		screenWidth:  screenWidth,
		screenHeight: screenHeight,
	}
	l.offsetX = borderPadding
	l.offsetY = (screenHeight - l.boardHeight) / 2
	l.statsX = l.offsetX + l.boardWidth + borderPadding
	return l
}

// boardPoint converts a window position into board pixels, where one cell is
// types.Box wide. ok is false outside the board.
func (l layout) boardPoint(x, y float32) (bx, by float32, ok bool) {
	lx := x - float32(l.offsetX)
	ly := y - float32(l.offsetY)
	if lx < 0 || ly < 0 || lx >= float32(l.boardWidth) || ly >= float32(l.boardHeight) {
		return 0, 0, false
	}
	scale := float32(types.Box) / float32(l.cellSize)
	return lx * scale, ly * scale, true
}

func (l layout) cellOrigin(p types.Point) (int32, int32) {
	return l.offsetX + int32(p.X)*l.cellSize, l.offsetY + int32(p.Y)*l.cellSize
}

func toRaylib(c types.Color) rl.Color {
	r, g, b := c.RGB()
	return rl.Color{R: r, G: g, B: b, A: 255}
}

// Renderer draws snapshots into the raylib window. It must be used from the
// goroutine that created the window.
type Renderer struct {
	layout layout
	grid   types.Grid
}

func NewRenderer(grid types.Grid) *Renderer {
	r := &Renderer{grid: grid}
	r.UpdateDimensions()
	return r
}

func (r *Renderer) UpdateDimensions() {
	r.layout = computeLayout(int32(rl.GetScreenWidth()), int32(rl.GetScreenHeight()), r.grid)
}

// BoardPoint maps the mouse position into board pixels.
func (r *Renderer) BoardPoint(pos rl.Vector2) (float32, float32, bool) {
	return r.layout.boardPoint(pos.X, pos.Y)
}

func (r *Renderer) Draw(s game.Snapshot) {
	rl.BeginDrawing()
	rl.ClearBackground(rl.Black)

	r.drawBoard(s)
	r.drawStatsPanel(s)
	if s.GameOver != nil {
		r.drawGameOver(s.GameOver)
	}

	rl.EndDrawing()
}

func (r *Renderer) drawBoard(s game.Snapshot) {
	l := r.layout
	rl.DrawRectangle(l.offsetX-1, l.offsetY-1, l.boardWidth+2, l.boardHeight+2, rl.Gray)
	rl.DrawRectangle(l.offsetX, l.offsetY, l.boardWidth, l.boardHeight, boardBackground)

	for _, seg := range s.Segments {
		x, y := l.cellOrigin(seg.Point)
		rl.DrawRectangle(x, y, l.cellSize, l.cellSize, toRaylib(seg.Color))
		rl.DrawRectangleLines(x, y, l.cellSize, l.cellSize, rl.Black)
	}

	fx, fy := l.cellOrigin(s.Food.Point)
	rl.DrawRectangle(fx, fy, l.cellSize, l.cellSize, toRaylib(s.Food.Color))
	rl.DrawRectangleLines(fx, fy, l.cellSize, l.cellSize, foodBorder)

	if s.State == game.Idle && s.GameOver == nil {
		drawCentered("Arrow keys or click to start", l.offsetX, l.offsetY+l.boardHeight-30, l.boardWidth, 16, rl.LightGray)
	}
}

func (r *Renderer) drawStatsPanel(s game.Snapshot) {
	l := r.layout
	fontSize := int32(18)
	lineHeight := int32(22)
	x := l.statsX
	y := int32(borderPadding)

	rl.DrawRectangle(x-5, 0, l.screenWidth-x+5, l.screenHeight, panelBackground)

	rl.DrawText(fmt.Sprintf("Score: %d", s.Score), x, y, fontSize+4, rl.White)
	y += lineHeight + 6
	rl.DrawText(fmt.Sprintf("Best: %d", s.Best()), x, y, fontSize, rl.White)
	y += lineHeight
	rl.DrawText(fmt.Sprintf("Speed: %d (%dms)", s.SpeedLevel, s.Interval.Milliseconds()), x, y, fontSize, rl.White)
	y += lineHeight
	rl.DrawText(fmt.Sprintf("Runs: %d  Avg: %.1f", s.Session.RunsPlayed, s.Session.AverageScore), x, y, fontSize-2, rl.LightGray)
	y += lineHeight + lineHeight/2

	rl.DrawText("High Scores", x, y, fontSize, rl.Gold)
	y += lineHeight
	if len(s.Leaderboard) == 0 {
		rl.DrawText("no scores yet", x+5, y, fontSize-2, rl.LightGray)
	}
	for i, e := range s.Leaderboard {
		if i >= leaderboardRows {
			break
		}
		rl.DrawText(fmt.Sprintf("%2d. %3d  %s", i+1, e.Score, e.Date), x+5, y, fontSize-2, rl.White)
		y += lineHeight - 2
	}

	help := l.screenHeight - lineHeight*2
	rl.DrawText("1-0 speed  R reset", x, help, fontSize-4, rl.LightGray)
}

func (r *Renderer) drawGameOver(over *game.GameOver) {
	l := r.layout
	w := l.boardWidth * 3 / 4
	h := int32(130)
	x := l.offsetX + (l.boardWidth-w)/2
	y := l.offsetY + (l.boardHeight-h)/2

	rl.DrawRectangle(l.offsetX, l.offsetY, l.boardWidth, l.boardHeight, modalShade)
	rl.DrawRectangle(x, y, w, h, rl.DarkGray)
	rl.DrawRectangleLines(x, y, w, h, rl.White)

	drawCentered("Game Over", x, y+15, w, 30, rl.Red)
	drawCentered(fmt.Sprintf("Score: %d", over.Score), x, y+55, w, 20, rl.White)
	if over.Rank > 0 {
		drawCentered(fmt.Sprintf("Rank #%d", over.Rank), x, y+78, w, 16, rl.Gold)
	}
	drawCentered("Enter or click to continue", x, y+h-24, w, 14, rl.LightGray)
}

func drawCentered(text string, x, y, width, fontSize int32, color rl.Color) {
	textWidth := rl.MeasureText(text, fontSize)
	rl.DrawText(text, x+(width-textWidth)/2, y, fontSize, color)
}
