package game

import (
	"fmt"
	"time"

	"snake-arcade/game/entity"
	"snake-arcade/game/manager"
	"snake-arcade/game/types"

	"github.com/google/uuid"
)

type State int

const (
	Idle State = iota
	Running
	Terminated
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Terminated:
		return "terminated"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Outcome describes what one tick did.
type Outcome int

const (
	Stalled Outcome = iota
	Moved
	Ate
	Collided
)

// Spawner places food for a run.
type Spawner interface {
	Spawn(snake *entity.Snake) entity.Food
}

// Run is one life of the snake, from the first move to the collision.
type Run struct {
	ID        string
	Snake     *entity.Snake
	Food      entity.Food
	Score     int
	State     State
	Collision manager.CollisionType
	StartTime time.Time
	EndTime   time.Time
	Ticks     uint64

	collisions *manager.CollisionManager
	spawner    Spawner
	now        func() time.Time
}

func newRun(grid types.Grid, collisions *manager.CollisionManager, spawner Spawner, now func() time.Time) *Run {
	r := &Run{
		ID:         uuid.New().String(),
		Snake:      entity.NewSnake(grid.Start(), types.White),
		State:      Idle,
		collisions: collisions,
		spawner:    spawner,
		now:        now,
	}
	r.Food = spawner.Spawn(r.Snake)
	return r
}

// SetDirection buffers a heading. The first accepted heading starts the run.
func (r *Run) SetDirection(d types.Direction) bool {
	if r.State == Terminated {
		return false
	}
	if !r.Snake.SetDirection(d) {
		return false
	}
	if r.State == Idle {
		r.State = Running
		r.StartTime = r.now()
	}
	return true
}

// Advance moves the snake one cell. A collision terminates the run and leaves
// the body untouched.
func (r *Run) Advance() Outcome {
	if r.State != Running || r.Snake.NextHeading() == types.NONE {
		return Stalled
	}

	heading := r.Snake.ApplyPending()
	head := r.Snake.Head().Add(heading.ToPoint())
	ate := head == r.Food.Point
	r.Ticks++

	if c := r.collisions.CheckCollision(head, r.Snake, ate); c != manager.NoCollision {
		if ate {
			r.Score++
		}
		r.Collision = c
		r.State = Terminated
		r.EndTime = r.now()
		return Collided
	}

	if ate {
		r.Score++
		r.Snake.Tint = r.Food.Color
		r.Snake.Move(entity.Segment{Point: head, Color: r.Food.Color})
		r.Food = r.spawner.Spawn(r.Snake)
		return Ate
	}

	r.Snake.Move(entity.Segment{Point: head, Color: r.Snake.Tint})
	r.Snake.RemoveTail()
	return Moved
}

// Duration is the time spent running so far.
func (r *Run) Duration() time.Duration {
	switch r.State {
	case Running:
		return r.now().Sub(r.StartTime)
	case Terminated:
		return r.EndTime.Sub(r.StartTime)
	default:
		return 0
	}
}
