package types

// Board geometry. The drawing surface is fixed; cells are Box pixels wide.
const (
	Box          = 20
	CanvasWidth  = 400
	CanvasHeight = 400

	// Starting head cell of every run.
	StartX = 10
	StartY = 10
)

// Point is a cell on the grid, in cell units.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Add returns p moved by the vector v.
func (p Point) Add(v Point) Point {
	return Point{X: p.X + v.X, Y: p.Y + v.Y}
}

// Pixel returns the top-left pixel of the cell.
func (p Point) Pixel() (int, int) {
	return p.X * Box, p.Y * Box
}

// Grid represents the game grid dimensions
type Grid struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// DefaultGrid is the grid covered by the fixed canvas.
func DefaultGrid() Grid {
	return Grid{Width: CanvasWidth / Box, Height: CanvasHeight / Box}
}

// Contains reports whether p lies inside [0,Width) x [0,Height).
func (g Grid) Contains(p Point) bool {
	return p.X >= 0 && p.X < g.Width && p.Y >= 0 && p.Y < g.Height
}

// Cells returns the number of cells on the grid.
func (g Grid) Cells() int {
	return g.Width * g.Height
}

// Start returns the starting head cell, clamped into the grid.
func (g Grid) Start() Point {
	p := Point{X: StartX, Y: StartY}
	if p.X >= g.Width {
		p.X = g.Width / 2
	}
	if p.Y >= g.Height {
		p.Y = g.Height / 2
	}
	return p
}
