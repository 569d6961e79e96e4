package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/Cameron-Kurotori/pessimist/logging"
	"github.com/Cameron-Kurotori/pessimist/search"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// players builds the participants from a comma separated list of kinds: "engine",
// "cautious" or an http(s) URL of a running battlesnake server.
func players(list string, logger log.Logger, cfg search.Config) ([]Player, error) {
	var out []Player
	for i, kind := range strings.Split(list, ",") {
		kind = strings.TrimSpace(kind)
		var c BattlesnakeClient
		label := kind
		switch {
		case kind == "engine":
			c = newEngine(logger, cfg)
		case kind == "cautious":
			c = cautious{}
		case strings.HasPrefix(kind, "http://") || strings.HasPrefix(kind, "https://"):
			c = NewClient(kind, nil)
			label = "http"
		default:
			return nil, fmt.Errorf("unknown player %q", kind)
		}
		out = append(out, Player{
			Name:   fmt.Sprintf("my-snake-%d-%s", i, label),
			Client: RecordLatency(c),
		})
	}
	return out, nil
}

func main() {
	port := os.Getenv("PORT")
	if len(port) == 0 {
		port = "8080"
	}

	playerList := flag.String("players", fmt.Sprintf("http://0.0.0.0:%s,cautious,cautious,cautious", port), "comma separated players: engine, cautious or a server URL")
	width := flag.Int("width", 11, "board width")
	height := flag.Int("height", 11, "board height")
	maxTurns := flag.Int("max-turns", 1000, "stop the game after this many turns, 0 for no limit")
	budget := flag.Duration("budget", 100*time.Millisecond, "search budget of in-process engine players")
	timeout := flag.Duration("timeout", 500*time.Millisecond, "game timeout sent to the snakes")
	seed := flag.Int64("seed", time.Now().UnixNano(), "seed for snake placement and food")
	tui := flag.Bool("tui", false, "show the live board instead of logging")
	flag.Parse()

	logger := logging.GlobalLogger()
	if *tui {
		// the terminal belongs to the board view
		logger = log.NewNopLogger()
	}

	ps, err := players(*playerList, logger, search.Config{Budget: *budget})
	if err != nil {
		_ = level.Error(logger).Log("msg", "invalid players", "err", err)
		os.Exit(2)
	}
	for _, p := range ps {
		info, err := p.Client.Info(context.Background())
		if err != nil {
			_ = level.Warn(logger).Log("msg", "info request failed", "name", p.Name, "err", err)
			continue
		}
		_ = level.Info(logger).Log("msg", "player ready", "name", p.Name, "author", info.Author, "version", info.Version)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sim := simulator{
		logger: logger,
		settings: Settings{
			Width:    *width,
			Height:   *height,
			MaxTurns: *maxTurns,
			Food:     DefaultFoodSettings,
			Timeout:  *timeout,
		},
		rng: rand.New(rand.NewSource(*seed)),
	}

	var result Result
	if *tui {
		result, err = runTUI(ctx, sim, ps)
	} else {
		sim.onTurn = func(f Frame) {
			_ = level.Debug(logger).Log("msg", "turn", "turn", f.Turn, "alive", f.Alive, "board", f.Board)
		}
		result, err = sim.Simulate(ctx, ps)
	}
	if err != nil {
		_ = level.Error(logger).Log("msg", "simulation failed", "err", err)
		os.Exit(1)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(result)
}

// runTUI plays the game in the background and shows each frame until the user quits.
func runTUI(ctx context.Context, sim simulator, ps []Player) (Result, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	updates := make(chan tea.Msg)
	send := func(msg tea.Msg) {
		select {
		case updates <- msg:
		case <-ctx.Done():
		}
	}
	sim.onTurn = func(f Frame) { send(f) }

	done := make(chan gameOver, 1)
	go func() {
		result, err := sim.Simulate(ctx, ps)
		over := gameOver{result: result, err: err}
		done <- over
		send(over)
	}()

	p := tea.NewProgram(initialModel(updates), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		return Result{}, err
	}
	cancel()
	over := <-done
	if errors.Is(over.err, context.Canceled) {
		// quitting early keeps what was played so far
		return over.result, nil
	}
	return over.result, over.err
}
