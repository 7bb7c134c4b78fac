package manager

import (
	"log/slog"

	"snake-arcade/game/entity"
	"snake-arcade/game/types"

	"golang.org/x/exp/rand"
)

// MaxSpawnAttempts bounds the random draws before the spawner falls back to
// enumerating free cells.
const MaxSpawnAttempts = 64

type FoodManager struct {
	grid         types.Grid
	rng          *rand.Rand
	collisionMgr *CollisionManager
	maxAttempts  int
	log          *slog.Logger
}

func NewFoodManager(grid types.Grid, collisionMgr *CollisionManager, seed uint64, logger *slog.Logger) *FoodManager {
	if logger == nil {
		logger = slog.Default()
	}
	return &FoodManager{
		grid:         grid,
		rng:          rand.New(rand.NewSource(seed)),
		collisionMgr: collisionMgr,
		maxAttempts:  MaxSpawnAttempts,
		log:          logger,
	}
}

// Spawn places food on a cell not occupied by the snake, with a random hue.
// It always returns; on a full board the food overlaps the snake.
func (fm *FoodManager) Spawn(snake *entity.Snake) entity.Food {
	return entity.Food{
		Point: fm.GenerateFood(snake),
		Color: types.Hue(fm.rng.Float64() * 360),
	}
}

func (fm *FoodManager) GenerateFood(snake *entity.Snake) types.Point {
	for i := 0; i < fm.maxAttempts; i++ {
		food := fm.randomCell()
		if fm.collisionMgr.ValidateSpawnPosition(food, snake) {
			return food
		}
	}

	free := fm.freeCells(snake)
	if len(free) > 0 {
		return free[fm.rng.Intn(len(free))]
	}

	food := fm.randomCell()
	fm.log.Warn("no free cell for food, overlapping snake", "cell", food)
	return food
}

func (fm *FoodManager) randomCell() types.Point {
	return types.Point{
		X: fm.rng.Intn(fm.grid.Width),
		Y: fm.rng.Intn(fm.grid.Height),
	}
}

func (fm *FoodManager) freeCells(snake *entity.Snake) []types.Point {
	free := make([]types.Point, 0, fm.grid.Cells())
	for y := 0; y < fm.grid.Height; y++ {
		for x := 0; x < fm.grid.Width; x++ {
			p := types.Point{X: x, Y: y}
			if fm.collisionMgr.ValidateSpawnPosition(p, snake) {
				free = append(free, p)
			}
		}
	}
	return free
}
