// Package leaderboard ranks finished runs and persists the top scores.
package leaderboard

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"snake-arcade/storage"

	"golang.org/x/exp/slices"
)

const (
	// Key is the storage slot holding the serialized board.
	Key        = "snakeHighScores"
	MaxEntries = 50
	// DateLayout renders the local calendar date as month/day/year.
	DateLayout = "1/2/2006"

	writeTimeout = 2 * time.Second
)

type Entry struct {
	Score int    `json:"score"`
	Date  string `json:"date"`
}

// Board holds the ranked entries, highest score first, ties in insertion order.
type Board struct {
	mu      sync.RWMutex
	kv      storage.KV
	entries []Entry
	now     func() time.Time
	log     *slog.Logger
}

type Option func(*Board)

// WithClock replaces time.Now for dating entries.
func WithClock(now func() time.Time) Option {
	return func(b *Board) { b.now = now }
}

func NewBoard(kv storage.KV, logger *slog.Logger, opts ...Option) *Board {
	if logger == nil {
		logger = slog.Default()
	}
	b := &Board{
		kv:      kv,
		entries: []Entry{},
		now:     time.Now,
		log:     logger,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Load replaces the in-memory board with the persisted one. A missing or
// unreadable slot yields an empty board.
func (b *Board) Load(ctx context.Context) []Entry {
	entries := b.read(ctx)

	b.mu.Lock()
	b.entries = entries
	b.mu.Unlock()

	return b.Entries()
}

func (b *Board) read(ctx context.Context) []Entry {
	raw, ok, err := b.kv.Get(ctx, Key)
	if err != nil {
		b.log.Warn("leaderboard unreadable, starting empty", "error", err)
		return []Entry{}
	}
	if !ok {
		return []Entry{}
	}

	var stored []Entry
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		b.log.Warn("leaderboard malformed, starting empty", "error", err)
		return []Entry{}
	}

	entries := make([]Entry, 0, len(stored))
	for _, e := range stored {
		if e.Score < 0 {
			continue
		}
		entries = append(entries, e)
	}
	return rank(entries)
}

// RecordScore adds score dated today, keeps the best MaxEntries and persists
// the result before returning it. A failed write is logged and the in-memory
// board is still updated.
func (b *Board) RecordScore(score int) []Entry {
	if score < 0 {
		score = 0
	}

	b.mu.Lock()
	b.entries = rank(append(b.entries, Entry{Score: score, Date: b.now().Format(DateLayout)}))
	snapshot := slices.Clone(b.entries)
	b.mu.Unlock()

	b.persist(snapshot)
	return snapshot
}

func (b *Board) persist(entries []Entry) {
	data, err := json.Marshal(entries)
	if err != nil {
		b.log.Error("encode leaderboard", "error", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()
	if err := b.kv.Set(ctx, Key, string(data)); err != nil {
		b.log.Error("save leaderboard", "error", err)
	}
}

// Entries returns a copy of the ranked board.
func (b *Board) Entries() []Entry {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return slices.Clone(b.entries)
}

// Best is the top score, or 0 on an empty board.
func (b *Board) Best() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if len(b.entries) == 0 {
		return 0
	}
	return b.entries[0].Score
}

// Rank returns the 1-based position a score of this value holds on the
// current board, or 0 when it did not make the cut.
func (b *Board) Rank(score int) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for i := len(b.entries) - 1; i >= 0; i-- {
		if b.entries[i].Score == score {
			return i + 1
		}
	}
	return 0
}

func rank(entries []Entry) []Entry {
	slices.SortStableFunc(entries, func(a, b Entry) int {
		return b.Score - a.Score
	})
	if len(entries) > MaxEntries {
		entries = entries[:MaxEntries]
	}
	return entries
}
