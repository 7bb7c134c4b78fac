package ui

import (
	"snake-arcade/game"
	"snake-arcade/game/types"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// windowKeys maps raylib key codes to game events.
var windowKeys = map[int32]game.Event{
	rl.KeyUp:         game.Turn(types.UP),
	rl.KeyDown:       game.Turn(types.DOWN),
	rl.KeyLeft:       game.Turn(types.LEFT),
	rl.KeyRight:      game.Turn(types.RIGHT),
	rl.KeyW:          game.Turn(types.UP),
	rl.KeyS:          game.Turn(types.DOWN),
	rl.KeyA:          game.Turn(types.LEFT),
	rl.KeyD:          game.Turn(types.RIGHT),
	rl.KeyEnter:      game.Simple(game.ActionConfirm),
	rl.KeySpace:      game.Simple(game.ActionConfirm),
	rl.KeyR:          game.Simple(game.ActionReset),
	rl.KeyQ:          game.Simple(game.ActionQuit),
	rl.KeyEqual:      game.Simple(game.ActionSpeedUp),
	rl.KeyKpAdd:      game.Simple(game.ActionSpeedUp),
	rl.KeyMinus:      game.Simple(game.ActionSpeedDown),
	rl.KeyKpSubtract: game.Simple(game.ActionSpeedDown),
	rl.KeyOne:        game.SpeedLevel(1),
	rl.KeyTwo:        game.SpeedLevel(2),
	rl.KeyThree:      game.SpeedLevel(3),
	rl.KeyFour:       game.SpeedLevel(4),
	rl.KeyFive:       game.SpeedLevel(5),
	rl.KeySix:        game.SpeedLevel(6),
	rl.KeySeven:      game.SpeedLevel(7),
	rl.KeyEight:      game.SpeedLevel(8),
	rl.KeyNine:       game.SpeedLevel(9),
	rl.KeyZero:       game.SpeedLevel(10),
}

// KeyEvent translates a raylib key code.
func KeyEvent(key int32) (game.Event, bool) {
	ev, ok := windowKeys[key]
	return ev, ok
}

// PollWindow collects the events raised since the previous frame.
func (r *Renderer) PollWindow() []game.Event {
	if rl.IsWindowResized() {
		r.UpdateDimensions()
	}

	var events []game.Event
	for key := rl.GetKeyPressed(); key != 0; key = rl.GetKeyPressed() {
		if ev, ok := KeyEvent(key); ok {
			events = append(events, ev)
		}
	}

	if rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		if x, y, ok := r.BoardPoint(rl.GetMousePosition()); ok {
			events = append(events, game.Point(x, y))
		} else {
			events = append(events, game.Simple(game.ActionConfirm))
		}
	}
	return events
}
