package entity

import "snake-arcade/game/types"

// Segment is one body cell of the snake with its own color.
type Segment struct {
	types.Point
	Color types.Color `json:"color"`
}

// Snake body is ordered head first.
type Snake struct {
	Body    []Segment
	Heading types.Direction
	Pending types.Direction
	// Tint is the color given to each new head that does not eat.
	Tint types.Color
}

func NewSnake(start types.Point, tint types.Color) *Snake {
	return &Snake{
		Body:    []Segment{{Point: start, Color: tint}},
		Heading: types.NONE,
		Pending: types.NONE,
		Tint:    tint,
	}
}

func (s *Snake) Head() Segment {
	return s.Body[0]
}

func (s *Snake) Len() int {
	return len(s.Body)
}

// SetDirection buffers a heading request for the next tick. The last accepted
// request before a tick wins. A reversal onto the body is rejected once the
// snake is longer than one segment.
func (s *Snake) SetDirection(d types.Direction) bool {
	if !d.Valid() {
		return false
	}
	if s.Len() > 1 && d == s.Heading.Opposite() {
		return false
	}
	s.Pending = d
	return true
}

// NextHeading is the heading the next tick will use.
func (s *Snake) NextHeading() types.Direction {
	if s.Pending != types.NONE {
		return s.Pending
	}
	return s.Heading
}

// ApplyPending consumes the buffered request.
func (s *Snake) ApplyPending() types.Direction {
	s.Heading = s.NextHeading()
	s.Pending = types.NONE
	return s.Heading
}

// Occupies reports whether any segment sits on p.
func (s *Snake) Occupies(p types.Point) bool {
	for _, seg := range s.Body {
		if seg.Point == p {
			return true
		}
	}
	return false
}

// Move prepends a new head.
func (s *Snake) Move(head Segment) {
	s.Body = append(s.Body, Segment{})
	copy(s.Body[1:], s.Body)
	s.Body[0] = head
}

func (s *Snake) RemoveTail() {
	if len(s.Body) > 1 {
		s.Body = s.Body[:len(s.Body)-1]
	}
}

// Points returns the occupied cells, head first.
func (s *Snake) Points() []types.Point {
	points := make([]types.Point, len(s.Body))
	for i, seg := range s.Body {
		points[i] = seg.Point
	}
	return points
}

// Clone returns a deep copy for read-only consumers.
func (s *Snake) Clone() *Snake {
	c := *s
	c.Body = append([]Segment(nil), s.Body...)
	return &c
}
