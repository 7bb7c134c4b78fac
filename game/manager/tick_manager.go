package manager

import "time"

// Speed levels accepted by the tick scheduler.
const (
	MinLevel     = 1
	MaxLevel     = 10
	DefaultLevel = 5
)

// IntervalForLevel maps a speed level to the time between ticks:
// 410ms at level 1 down to 50ms at level 10.
func IntervalForLevel(level int) time.Duration {
	return time.Duration(450-40*ClampLevel(level)) * time.Millisecond
}

func ClampLevel(level int) int {
	if level < MinLevel {
		return MinLevel
	}
	if level > MaxLevel {
		return MaxLevel
	}
	return level
}

// TickManager turns per-frame elapsed time into simulation ticks.
// At most one tick fires per frame, and the accumulator restarts from zero
// after each tick, so a slow frame never produces a burst.
type TickManager struct {
	level       int
	interval    time.Duration
	accumulated time.Duration
	ticks       uint64
}

func NewTickManager(level int) *TickManager {
	tm := &TickManager{}
	tm.SetLevel(level)
	return tm
}

// SetLevel changes the interval immediately. The accumulated time is kept.
func (tm *TickManager) SetLevel(level int) int {
	tm.level = ClampLevel(level)
	tm.interval = IntervalForLevel(tm.level)
	return tm.level
}

func (tm *TickManager) Level() int {
	return tm.level
}

func (tm *TickManager) Interval() time.Duration {
	return tm.interval
}

// Ticks counts the ticks fired so far.
func (tm *TickManager) Ticks() uint64 {
	return tm.ticks
}

// Frame adds the elapsed frame time and reports whether a tick is due.
func (tm *TickManager) Frame(elapsed time.Duration) bool {
	if elapsed > 0 {
		tm.accumulated += elapsed
	}
	if tm.accumulated > tm.interval {
		tm.accumulated = 0
		tm.ticks++
		return true
	}
	return false
}

// Reset drops any accumulated time.
func (tm *TickManager) Reset() {
	tm.accumulated = 0
}
