package entity

import "snake-arcade/game/types"

// Food is the single edible item of a run. Its color is given to the snake that eats it.
type Food struct {
	types.Point
	Color types.Color `json:"color"`
}
