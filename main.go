package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"snake-arcade/config"
	"snake-arcade/game"
	"snake-arcade/game/types"
	"snake-arcade/leaderboard"
	"snake-arcade/sound"
	"snake-arcade/spectate"
	"snake-arcade/storage"
	"snake-arcade/ui"

	"github.com/gdamore/tcell/v2"
	rl "github.com/gen2brain/raylib-go/raylib"
)

func main() {
	cfg, err := config.Parse(os.Args[0], os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if err := run(cfg); err != nil {
		fmt.Fprintln(os.Stderr, "snake:", err)
		os.Exit(1)
	}
}

func run(cfg config.Config) error {
	logger, closeLog, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer closeLog()
	slog.SetDefault(logger)

	kv, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer kv.Close()

	board := leaderboard.NewBoard(kv, logger)
	loaded := board.Load(context.Background())
	logger.Info("leaderboard loaded", "store", cfg.Store, "entries", len(loaded))

	g := game.NewGame(game.Options{
		Grid:       types.DefaultGrid(),
		SpeedLevel: cfg.Speed,
		Seed:       cfg.Seed,
		Board:      board,
		Logger:     logger,
	})

	if !cfg.Mute {
		sm := sound.NewSoundManager()
		if err := sm.Initialize(); err != nil {
			logger.Warn("sound disabled", "error", err)
		} else {
			defer sm.Cleanup()
		}
		g.AddObserver(sm)
	}

	if cfg.Watch != "" {
		hub := spectate.NewHub(board, logger)
		srv := spectate.NewServer(cfg.Watch, hub, logger)
		if err := srv.Start(); err != nil {
			logger.Warn("spectator feed disabled", "addr", cfg.Watch, "error", err)
		} else {
			g.AddProjector(hub)
			defer srv.Shutdown(2 * time.Second)
		}
	}

	switch cfg.Backend {
	case config.BackendTerminal:
		return runTerminal(cfg, g, logger)
	default:
		return runWindow(cfg, g, logger)
	}
}

// newLogger picks the log destination: the -log file when given, otherwise
// stderr for the window and nowhere for the terminal, which owns the tty.
func newLogger(cfg config.Config) (*slog.Logger, func(), error) {
	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}

	var out io.Writer = os.Stderr
	closer := func() {}
	switch {
	case cfg.LogFile != "":
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		out = f
		closer = func() { f.Close() }
	case cfg.Backend == config.BackendTerminal:
		out = io.Discard
	}

	logger := slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: level}))
	return logger, closer, nil
}

func openStore(cfg config.Config) (storage.KV, error) {
	switch cfg.Store {
	case config.StoreSQLite:
		kv, err := storage.OpenSQLite(cfg.DatabasePath())
		if err != nil {
			return nil, fmt.Errorf("open sqlite store: %w", err)
		}
		return kv, nil
	case config.StoreMemory:
		return storage.NewMemKV(), nil
	default:
		kv, err := storage.NewFileKV(cfg.DataDir)
		if err != nil {
			return nil, fmt.Errorf("open file store: %w", err)
		}
		return kv, nil
	}
}

func runWindow(cfg config.Config, g *game.Game, logger *slog.Logger) error {
	rl.SetTraceLogLevel(rl.LogWarning)
	rl.InitWindow(ui.WindowWidth, ui.WindowHeight, "Snake")
	rl.SetWindowState(rl.FlagWindowResizable)
	defer rl.CloseWindow()

	rl.SetTargetFPS(int32(cfg.FPS))

	renderer := ui.NewRenderer(types.DefaultGrid())
	g.AddProjector(renderer)
	logger.Info("window opened", "speed", g.Speed())

	for !rl.WindowShouldClose() {
		for _, ev := range renderer.PollWindow() {
			if g.Handle(ev) {
				return nil
			}
		}
		g.Frame(time.Duration(rl.GetFrameTime() * float32(time.Second)))
	}
	return nil
}

func runTerminal(cfg config.Config, g *game.Game, logger *slog.Logger) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()
	screen.EnableMouse()
	screen.HideCursor()

	renderer := ui.NewTerminalRenderer(screen, types.DefaultGrid())
	g.AddProjector(renderer)

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	frame := time.NewTicker(time.Second / time.Duration(cfg.FPS))
	defer frame.Stop()
	last := time.Now()
	logger.Info("terminal opened", "speed", g.Speed())

	for {
		select {
		case ev := <-events:
			if ge, ok := renderer.TerminalEvent(ev); ok && g.Handle(ge) {
				return nil
			}
		case now := <-frame.C:
			g.Frame(now.Sub(last))
			last = now
		}
	}
}
