package game

import "snake-arcade/game/types"

type Action int

const (
	ActionNone Action = iota
	ActionTurn
	ActionPoint
	ActionSpeedUp
	ActionSpeedDown
	ActionSpeedSet
	ActionConfirm
	ActionReset
	ActionQuit
)

// Event is an input intent produced by a frontend.
type Event struct {
	Action    Action
	Direction types.Direction
	// Pointer position in board pixels, for ActionPoint.
	X, Y float32
	// Speed level, for ActionSpeedSet.
	Level int
}

func Turn(d types.Direction) Event { return Event{Action: ActionTurn, Direction: d} }
func Point(x, y float32) Event { return Event{Action: ActionPoint, X: x, Y: y} }
func SpeedLevel(level int) Event { return Event{Action: ActionSpeedSet, Level: level} }
func Simple(action Action) Event { return Event{Action: action} }

// PointerDirection picks the heading from the head cell toward a pointer at
// (x, y) board pixels. The axis with the larger offset wins; on a tie the
// vertical axis wins. A pointer exactly on the head returns NONE.
func PointerDirection(head types.Point, x, y float32) types.Direction {
	hx, hy := head.Pixel()
	dx := x - float32(hx)
	dy := y - float32(hy)

	if abs(dx) > abs(dy) {
		if dx > 0 {
			return types.RIGHT
		}
		return types.LEFT
	}
	switch {
	case dy > 0:
		return types.DOWN
	case dy < 0:
		return types.UP
	default:
		return types.NONE
	}
}

func abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
