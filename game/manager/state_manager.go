package manager

import (
	"sync"
	"time"
)

// SessionStats summarizes the runs finished since the process started.
type SessionStats struct {
	RunsPlayed      int           `json:"runsPlayed"`
	BestScore       int           `json:"bestScore"`
	LastScore       int           `json:"lastScore"`
	AverageScore    float64       `json:"averageScore"`
	AverageDuration time.Duration `json:"averageDuration"`
}

// StateManager keeps per-session run statistics. Persistent rankings live in
// the leaderboard; these numbers are discarded on exit.
type StateManager struct {
	mu            sync.RWMutex
	runs          int
	best          int
	last          int
	totalScore    int
	totalDuration time.Duration
}

func NewStateManager() *StateManager {
	return &StateManager{}
}

// RecordRun adds a finished run.
func (sm *StateManager) RecordRun(score int, startTime, endTime time.Time) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	sm.runs++
	sm.last = score
	sm.totalScore += score
	if score > sm.best {
		sm.best = score
	}
	if d := endTime.Sub(startTime); d > 0 {
		sm.totalDuration += d
	}
}

func (sm *StateManager) Stats() SessionStats {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	stats := SessionStats{
		RunsPlayed: sm.runs,
		BestScore:  sm.best,
		LastScore:  sm.last,
	}
	if sm.runs > 0 {
		stats.AverageScore = float64(sm.totalScore) / float64(sm.runs)
		stats.AverageDuration = sm.totalDuration / time.Duration(sm.runs)
	}
	return stats
}
