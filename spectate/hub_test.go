package spectate

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"snake-arcade/game"
	"snake-arcade/game/entity"
	"snake-arcade/game/types"
	"snake-arcade/leaderboard"

	"github.com/gorilla/websocket"
)

type staticRanking []leaderboard.Entry

func (r staticRanking) Entries() []leaderboard.Entry { return r }

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func snapshot(tick uint64, score int) game.Snapshot {
	return game.Snapshot{
		RunID:      "run-1",
		State:      game.Running,
		Grid:       types.DefaultGrid(),
		Box:        types.Box,
		Segments:   []entity.Segment{{Point: types.Point{X: 3, Y: 4}, Color: types.Hue(90)}},
		Heading:    types.RIGHT,
		Food:       entity.Food{Point: types.Point{X: 8, Y: 8}, Color: types.Hue(180)},
		Score:      score,
		Tick:       tick,
		SpeedLevel: 5,
	}
}

// wireSnapshot mirrors the JSON a watcher receives.
type wireSnapshot struct {
	RunID    string `json:"runId"`
	State    string `json:"state"`
	Score    int    `json:"score"`
	Tick     uint64 `json:"tick"`
	Heading  string `json:"heading"`
	Segments []struct {
		X     int    `json:"x"`
		Y     int    `json:"y"`
		Color string `json:"color"`
	} `json:"segments"`
}

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readSnapshot(t *testing.T, conn *websocket.Conn) wireSnapshot {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var ws wireSnapshot
	if err := json.Unmarshal(data, &ws); err != nil {
		t.Fatalf("decode %s: %v", data, err)
	}
	return ws
}

func TestWatcherReceivesLatestOnConnect(t *testing.T) {
	hub := NewHub(nil, quietLogger())
	srv := httptest.NewServer(hub.Handler())
	defer srv.Close()

	hub.Draw(snapshot(7, 2))
	conn := dial(t, srv)

	got := readSnapshot(t, conn)
	if got.RunID != "run-1" || got.Tick != 7 || got.Score != 2 {
		t.Errorf("unexpected snapshot %+v", got)
	}
	if got.State != "running" || got.Heading != "RIGHT" {
		t.Errorf("unexpected text fields %+v", got)
	}
	if len(got.Segments) != 1 || got.Segments[0].X != 3 || got.Segments[0].Color != "hsl(90, 100%, 50%)" {
		t.Errorf("unexpected segments %+v", got.Segments)
	}
}

func TestWatcherReceivesNewFramesOnly(t *testing.T) {
	hub := NewHub(nil, quietLogger())
	srv := httptest.NewServer(hub.Handler())
	defer srv.Close()

	hub.Draw(snapshot(1, 0))
	conn := dial(t, srv)
	readSnapshot(t, conn)

	hub.Draw(snapshot(1, 0)) // same frame, not re-sent
	hub.Draw(snapshot(2, 1))

	got := readSnapshot(t, conn)
	if got.Tick != 2 || got.Score != 1 {
		t.Errorf("expected the tick 2 frame next, got %+v", got)
	}
}

func TestSnapshotEndpoint(t *testing.T) {
	hub := NewHub(nil, quietLogger())
	srv := httptest.NewServer(hub.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/snapshot")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("expected 503 before the first frame, got %d", resp.StatusCode)
	}

	hub.Draw(snapshot(3, 1))
	resp, err = http.Get(srv.URL + "/snapshot")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	var ws wireSnapshot
	if err := json.NewDecoder(resp.Body).Decode(&ws); err != nil {
		t.Fatal(err)
	}
	if ws.Tick != 3 {
		t.Errorf("unexpected snapshot %+v", ws)
	}
}

func TestLeaderboardEndpoint(t *testing.T) {
	ranking := staticRanking{{Score: 9, Date: "2/3/2024"}, {Score: 4, Date: "2/4/2024"}}
	hub := NewHub(ranking, quietLogger())
	srv := httptest.NewServer(hub.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/leaderboard")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	var entries []leaderboard.Entry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 || entries[0] != ranking[0] {
		t.Errorf("unexpected entries %v", entries)
	}
}

func TestCloseDisconnectsWatchers(t *testing.T) {
	hub := NewHub(nil, quietLogger())
	srv := httptest.NewServer(hub.Handler())
	defer srv.Close()

	conn := dial(t, srv)
	deadline := time.Now().Add(2 * time.Second)
	for hub.Clients() == 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if hub.Clients() != 1 {
		t.Fatalf("expected one watcher, got %d", hub.Clients())
	}

	hub.Close()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	if _, _, err := conn.ReadMessage(); !websocket.IsCloseError(err, websocket.CloseNormalClosure) {
		t.Errorf("expected a normal close, got %v", err)
	}
	if hub.Clients() != 0 {
		t.Errorf("watchers left after close: %d", hub.Clients())
	}
}
