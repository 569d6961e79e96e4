package main

import (
	"context"
	"sync"
	"time"

	"github.com/Cameron-Kurotori/pessimist/geom"
	"github.com/Cameron-Kurotori/pessimist/sdk"
	"github.com/Cameron-Kurotori/pessimist/search"
	"github.com/go-kit/log"
)

// engine runs the search in process instead of over HTTP.
type engine struct {
	logger log.Logger
	cfg    search.Config
}

func newEngine(logger log.Logger, cfg search.Config) BattlesnakeClient {
	return &engine{logger: logger, cfg: cfg}
}

func (e *engine) Info(context.Context) (sdk.BattlesnakeInfoResponse, error) {
	return sdk.BattlesnakeInfoResponse{APIVersion: "1", Author: "in-process", Version: "pessimist"}, nil
}

func (e *engine) Start(context.Context, sdk.GameState) error { return nil }
func (e *engine) End(context.Context, sdk.GameState) error   { return nil }

func (e *engine) Move(ctx context.Context, state sdk.GameState) (sdk.BattlesnakeMoveResponse, error) {
	b, hazards, err := state.ToBoard()
	if err != nil {
		return sdk.BattlesnakeMoveResponse{}, err
	}
	d := search.Decide(ctx, state.Logger(e.logger), b, hazards, e.cfg)
	return sdk.BattlesnakeMoveResponse{Move: sdk.MoveOf(d.Move), Shout: d.Shout}, nil
}

// cautious looks a single turn ahead and takes the legal move that dies in the fewest
// joint outcomes. Ties go to the earlier direction.
type cautious struct{}

func (cautious) Info(context.Context) (sdk.BattlesnakeInfoResponse, error) {
	return sdk.BattlesnakeInfoResponse{APIVersion: "1", Author: "cautious"}, nil
}

func (cautious) Start(context.Context, sdk.GameState) error { return nil }
func (cautious) End(context.Context, sdk.GameState) error   { return nil }

func (cautious) Move(_ context.Context, state sdk.GameState) (sdk.BattlesnakeMoveResponse, error) {
	b, hazards, err := state.ToBoard()
	if err != nil {
		return sdk.BattlesnakeMoveResponse{}, err
	}
	best := b.Snakes[0].DefaultMove()
	bestRatio := 2.0
	for _, dir := range b.LegalMoves(0, 1) {
		deaths, total := search.Deaths(b, dir, hazards)
		ratio := 0.0
		if total > 0 {
			ratio = float64(deaths) / float64(total)
		}
		if ratio < bestRatio {
			best, bestRatio = dir, ratio
		}
	}
	return sdk.BattlesnakeMoveResponse{Move: sdk.MoveOf(best)}, nil
}

// latencyRecorder wraps a client and keeps the time each move request took.
type latencyRecorder struct {
	BattlesnakeClient
	mu    sync.Mutex
	moves int
	total time.Duration
}

func RecordLatency(client BattlesnakeClient) *latencyRecorder {
	return &latencyRecorder{
		BattlesnakeClient: client,
	}
}

func (l *latencyRecorder) Move(ctx context.Context, state sdk.GameState) (sdk.BattlesnakeMoveResponse, error) {
	start := time.Now()
	move, err := l.BattlesnakeClient.Move(ctx, state)
	l.mu.Lock()
	l.moves++
	l.total += time.Since(start)
	l.mu.Unlock()
	return move, err
}

// Average is the mean move latency, zero before the first move.
func (l *latencyRecorder) Average() time.Duration {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.moves == 0 {
		return 0
	}
	return l.total / time.Duration(l.moves)
}

// parseMove maps a response to a direction, falling back to fallback when the move is
// missing or unknown.
func parseMove(resp sdk.BattlesnakeMoveResponse, fallback geom.Direction) geom.Direction {
	dir, err := resp.Move.Direction()
	if err != nil {
		return fallback
	}
	return dir
}
