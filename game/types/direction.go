package types

import "fmt"

// Direction is a cardinal heading. NONE means the snake has not started moving.
type Direction int

const (
	NONE Direction = iota
	UP
	RIGHT
	DOWN
	LEFT
)

var directionNames = [...]string{"NONE", "UP", "RIGHT", "DOWN", "LEFT"}

// ToPoint returns the one-cell movement vector for d.
func (d Direction) ToPoint() Point {
	switch d {
	case UP:
		return Point{X: 0, Y: -1}
	case RIGHT:
		return Point{X: 1, Y: 0}
	case DOWN:
		return Point{X: 0, Y: 1}
	case LEFT:
		return Point{X: -1, Y: 0}
	default:
		return Point{}
	}
}

// Opposite returns the 180-degree reverse of d. NONE has no opposite.
func (d Direction) Opposite() Direction {
	switch d {
	case UP:
		return DOWN
	case RIGHT:
		return LEFT
	case DOWN:
		return UP
	case LEFT:
		return RIGHT
	default:
		return NONE
	}
}

// Valid reports whether d is one of the four headings.
func (d Direction) Valid() bool {
	return d >= UP && d <= LEFT
}

func (d Direction) String() string {
	if d < NONE || int(d) >= len(directionNames) {
		return fmt.Sprintf("Direction(%d)", int(d))
	}
	return directionNames[d]
}

func (d Direction) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Direction) UnmarshalText(b []byte) error {
	parsed, err := ParseDirection(string(b))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// ParseDirection accepts the names produced by String.
func ParseDirection(s string) (Direction, error) {
	for i, name := range directionNames {
		if name == s {
			return Direction(i), nil
		}
	}
	return NONE, fmt.Errorf("unknown direction %q", s)
}
