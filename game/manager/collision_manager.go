package manager

import (
	"snake-arcade/game/entity"
	"snake-arcade/game/types"
)

type CollisionType int

const (
	NoCollision CollisionType = iota
	WallCollision
	SelfCollision
)

func (c CollisionType) String() string {
	switch c {
	case WallCollision:
		return "wall"
	case SelfCollision:
		return "self"
	default:
		return "none"
	}
}

type CollisionManager struct {
	grid types.Grid
}

func NewCollisionManager(grid types.Grid) *CollisionManager {
	return &CollisionManager{
		grid: grid,
	}
}

// CheckCollision tests a prospective head against the walls and against the
// body as it will be after the move. The tail is excluded unless the snake grows.
func (cm *CollisionManager) CheckCollision(pos types.Point, snake *entity.Snake, grows bool) CollisionType {
	if cm.isWallCollision(pos) {
		return WallCollision
	}

	body := snake.Body
	if !grows && len(body) > 0 {
		body = body[:len(body)-1]
	}
	for _, seg := range body {
		if seg.Point == pos {
			return SelfCollision
		}
	}

	return NoCollision
}

// isWallCollision checks if a position collides with walls
func (cm *CollisionManager) isWallCollision(pos types.Point) bool {
	return !cm.grid.Contains(pos)
}

// ValidateSpawnPosition reports whether food may be placed at pos.
func (cm *CollisionManager) ValidateSpawnPosition(pos types.Point, snake *entity.Snake) bool {
	if cm.isWallCollision(pos) {
		return false
	}
	return snake == nil || !snake.Occupies(pos)
}
