package game

import (
	"log/slog"
	"time"

	"snake-arcade/game/entity"
	"snake-arcade/game/manager"
	"snake-arcade/game/types"
	"snake-arcade/leaderboard"
)

// Scoreboard ranks finished runs.
type Scoreboard interface {
	RecordScore(score int) []leaderboard.Entry
	Entries() []leaderboard.Entry
	Rank(score int) int
}

type Options struct {
	Grid       types.Grid
	SpeedLevel int
	Seed       uint64
	Board      Scoreboard
	Logger     *slog.Logger
	// Now defaults to time.Now.
	Now func() time.Time
}

// Game owns the current run and everything that outlives it: the speed
// setting, the leaderboard and the session statistics. It is driven from a
// single goroutine, the frame loop.
type Game struct {
	grid       types.Grid
	run        *Run
	collisions *manager.CollisionManager
	food       *manager.FoodManager
	ticks      *manager.TickManager
	stats      *manager.StateManager
	board      Scoreboard
	gameOver   *GameOver

	projectors []Projector
	observers  []Observer

	now func() time.Time
	log *slog.Logger
}

func NewGame(opts Options) *Game {
	if opts.Grid.Width <= 0 || opts.Grid.Height <= 0 {
		opts.Grid = types.DefaultGrid()
	}
	if opts.SpeedLevel == 0 {
		opts.SpeedLevel = manager.DefaultLevel
	}
	if opts.Seed == 0 {
		opts.Seed = uint64(time.Now().UnixNano())
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	collisions := manager.NewCollisionManager(opts.Grid)
	g := &Game{
		grid:       opts.Grid,
		collisions: collisions,
		food:       manager.NewFoodManager(opts.Grid, collisions, opts.Seed, opts.Logger),
		ticks:      manager.NewTickManager(opts.SpeedLevel),
		stats:      manager.NewStateManager(),
		board:      opts.Board,
		now:        opts.Now,
		log:        opts.Logger,
	}
	g.Reset()
	return g
}

// AddProjector registers a surface drawn every frame.
func (g *Game) AddProjector(p Projector) {
	g.projectors = append(g.projectors, p)
}

func (g *Game) AddObserver(o Observer) {
	g.observers = append(g.observers, o)
}

// Run returns the live run. Callers must not retain it across Reset.
func (g *Game) Run() *Run {
	return g.run
}

// Reset discards the current run and starts a new idle one. An unfinished
// run is not recorded.
func (g *Game) Reset() {
	g.run = newRun(g.grid, g.collisions, g.food, g.now)
	g.gameOver = nil
	g.ticks.Reset()
	g.log.Debug("new run", "run", g.run.ID, "food", g.run.Food.Point)
}

// SetDirection forwards a heading request to the run. Input is ignored while
// a game-over notice waits for acknowledgment.
func (g *Game) SetDirection(d types.Direction) bool {
	if g.gameOver != nil {
		return false
	}
	ok := g.run.SetDirection(d)
	if !ok {
		g.log.Debug("direction rejected", "run", g.run.ID, "requested", d, "heading", g.run.Snake.Heading)
	}
	return ok
}

// PointTo steers toward a pointer position given in board pixels.
func (g *Game) PointTo(x, y float32) bool {
	d := PointerDirection(g.run.Snake.Head().Point, x, y)
	if d == types.NONE {
		return false
	}
	return g.SetDirection(d)
}

func (g *Game) SetSpeed(level int) int {
	level = g.ticks.SetLevel(level)
	g.log.Debug("speed changed", "level", level, "interval", g.ticks.Interval())
	return level
}

func (g *Game) Speed() int {
	return g.ticks.Level()
}

// Acknowledge dismisses the game-over notice and starts a new run.
func (g *Game) Acknowledge() bool {
	if g.gameOver == nil {
		return false
	}
	g.Reset()
	return true
}

// Handle applies an input event. It reports whether the player asked to quit.
func (g *Game) Handle(ev Event) bool {
	switch ev.Action {
	case ActionTurn:
		g.SetDirection(ev.Direction)
	case ActionPoint:
		if g.gameOver != nil {
			g.Acknowledge()
			break
		}
		g.PointTo(ev.X, ev.Y)
	case ActionSpeedUp:
		g.SetSpeed(g.ticks.Level() + 1)
	case ActionSpeedDown:
		g.SetSpeed(g.ticks.Level() - 1)
	case ActionSpeedSet:
		g.SetSpeed(ev.Level)
	case ActionConfirm:
		g.Acknowledge()
	case ActionReset:
		g.Reset()
	case ActionQuit:
		return true
	}
	return false
}

// Tick advances the run by one step and handles its consequences.
func (g *Game) Tick() Outcome {
	outcome := g.run.Advance()
	switch outcome {
	case Ate:
		g.log.Debug("food eaten", "run", g.run.ID, "score", g.run.Score, "food", g.run.Food.Point)
		for _, o := range g.observers {
			o.FoodEaten(g.run.Score)
		}
	case Collided:
		g.finish()
	}
	return outcome
}

func (g *Game) finish() {
	r := g.run
	g.stats.RecordRun(r.Score, r.StartTime, r.EndTime)

	var board []leaderboard.Entry
	rank := 0
	if g.board != nil {
		board = g.board.RecordScore(r.Score)
		rank = g.board.Rank(r.Score)
	}
	g.gameOver = &GameOver{
		Score:     r.Score,
		Rank:      rank,
		Collision: r.Collision,
		Cause:     r.Collision.String(),
	}
	g.log.Info("run ended",
		"run", r.ID,
		"score", r.Score,
		"cause", r.Collision,
		"rank", rank,
		"duration", r.Duration().Round(time.Millisecond),
	)

	for _, o := range g.observers {
		o.RunEnded(r.Score, board)
	}
}

// Frame is called once per rendered frame with the time since the previous
// one. It fires at most one tick and then draws every projector.
func (g *Game) Frame(elapsed time.Duration) {
	if g.ticks.Frame(elapsed) {
		g.Tick()
	}
	if len(g.projectors) == 0 {
		return
	}
	snap := g.Snapshot()
	for _, p := range g.projectors {
		p.Draw(snap)
	}
}

// Snapshot copies the observable state.
func (g *Game) Snapshot() Snapshot {
	r := g.run
	snap := Snapshot{
		RunID:      r.ID,
		State:      r.State,
		Grid:       g.grid,
		Box:        types.Box,
		Segments:   append([]entity.Segment(nil), r.Snake.Body...),
		Heading:    r.Snake.Heading,
		Food:       r.Food,
		Score:      r.Score,
		Tick:       r.Ticks,
		SpeedLevel: g.ticks.Level(),
		Interval:   g.ticks.Interval(),
		Session:    g.stats.Stats(),
	}
	if g.board != nil {
		snap.Leaderboard = g.board.Entries()
	}
	if g.gameOver != nil {
		over := *g.gameOver
		snap.GameOver = &over
	}
	return snap
}
