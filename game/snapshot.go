package game

import (
	"time"

	"snake-arcade/game/entity"
	"snake-arcade/game/manager"
	"snake-arcade/game/types"
	"snake-arcade/leaderboard"
)

// GameOver is the notice shown until the player acknowledges a finished run.
type GameOver struct {
	Score     int                   `json:"score"`
	Rank      int                   `json:"rank"`
	Collision manager.CollisionType `json:"-"`
	Cause     string                `json:"cause"`
}

// Snapshot is a read-only view of the game for projectors. It shares no
// memory with the live run.
type Snapshot struct {
	RunID       string               `json:"runId"`
	State       State                `json:"state"`
	Grid        types.Grid           `json:"grid"`
	Box         int                  `json:"box"`
	Segments    []entity.Segment     `json:"segments"`
	Heading     types.Direction      `json:"heading"`
	Food        entity.Food          `json:"food"`
	Score       int                  `json:"score"`
	Tick        uint64               `json:"tick"`
	SpeedLevel  int                  `json:"speedLevel"`
	Interval    time.Duration        `json:"intervalNs"`
	Leaderboard []leaderboard.Entry  `json:"leaderboard"`
	GameOver    *GameOver            `json:"gameOver,omitempty"`
	Session     manager.SessionStats `json:"session"`
}

// Head returns the head segment.
func (s Snapshot) Head() entity.Segment {
	return s.Segments[0]
}

// Best is the top leaderboard score.
func (s Snapshot) Best() int {
	if len(s.Leaderboard) == 0 {
		return 0
	}
	return s.Leaderboard[0].Score
}

// Projector draws snapshots. Draw is called once per frame.
type Projector interface {
	Draw(s Snapshot)
}

// Observer is told about run events as they happen.
type Observer interface {
	FoodEaten(score int)
	RunEnded(score int, board []leaderboard.Entry)
}
