package main

import (
	"context"
	"time"

	"github.com/Cameron-Kurotori/pessimist/geom"
	"github.com/Cameron-Kurotori/pessimist/recorder"
	"github.com/Cameron-Kurotori/pessimist/sdk"
	"github.com/Cameron-Kurotori/pessimist/search"
	"github.com/Cameron-Kurotori/pessimist/stats"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

type server struct {
	logger  log.Logger
	cfg     config
	session *stats.Session
	// recorder is nil unless -record-dir is set.
	recorder *recorder.Writer
	now      func() time.Time
}

func newServer(logger log.Logger, cfg config, rec *recorder.Writer) *server {
	return &server{
		logger:   logger,
		cfg:      cfg,
		session:  stats.New(cfg.GameTimeout),
		recorder: rec,
		now:      time.Now,
	}
}

// This function is called when you register your Battlesnake on play.battlesnake.com
// It controls your Battlesnake appearance and author permissions.
func (s *server) info() sdk.BattlesnakeInfoResponse {
	_ = level.Debug(s.logger).Log("msg", "INFO")
	return sdk.BattlesnakeInfoResponse{
		APIVersion: "1",
		Author:     "cameron-kurotori",
		Color:      "#0f3d17",
		Head:       "tiger-king",
		Tail:       "tiger-tail",
		Version:    "pessimist",
	}
}

// start registers the game with the session; stale games are dropped on the way.
func (s *server) start(state sdk.GameState) {
	logger := state.Logger(s.logger)
	if collected := s.session.Collect(s.now()); collected > 0 {
		_ = level.Info(logger).Log("msg", "dropped stale games", "count", collected)
	}
	s.session.Start(state.Game.ID, s.now())
	_ = level.Debug(logger).Log("msg", "START", "timeout_ms", state.Game.Timeout, "ruleset", state.Game.Ruleset.Name)
}

func (s *server) end(state sdk.GameState) {
	logger := state.Logger(s.logger)
	won := len(state.Board.Snakes) == 1 && state.Board.Snakes[0].ID == state.You.ID
	s.session.End(state.Game.ID, won)
	_ = level.Info(logger).Log("msg", "END", "won", won, "session", s.session.Summary().String())
}

// move never fails: a snapshot that cannot be converted is answered with the direction
// the snake is facing.
func (s *server) move(ctx context.Context, state sdk.GameState) sdk.BattlesnakeMoveResponse {
	logger := state.Logger(s.logger)
	s.session.Update(state.Game.ID, state.Turn)

	b, hazards, err := state.ToBoard()
	if err != nil {
		dir := fallbackMove(state.You)
		_ = level.Error(logger).Log("msg", "invalid game state, using fallback move", "err", err, "move", dir)
		return sdk.BattlesnakeMoveResponse{Move: sdk.MoveOf(dir)}
	}

	budget := s.cfg.budget(state.Game.TimeoutDuration())
	decision := search.Decide(ctx, logger, b, hazards, search.Config{
		Budget:  budget,
		Workers: s.cfg.Workers,
	})

	_ = level.Info(logger).Log(
		"msg", "making move",
		"move", decision.Move,
		"score", decision.Score,
		"depth", decision.Depth,
		"explored", decision.Explored,
		"budget_ms", budget.Milliseconds(),
		"took_ms", decision.Elapsed.Milliseconds(),
	)

	if s.recorder != nil {
		me := b.Snakes[0]
		err := s.recorder.Record(recorder.TurnRow{
			GameID:    state.Game.ID,
			SnakeID:   me.ID,
			Turn:      int32(state.Turn),
			Move:      decision.Move.String(),
			Score:     decision.Score,
			Depth:     int32(decision.Depth),
			Explored:  int64(decision.Explored),
			ElapsedMs: decision.Elapsed.Milliseconds(),
			Width:     int32(b.Width()),
			Height:    int32(b.Height()),
			Snakes:    int32(len(b.Snakes)),
			Health:    int32(me.Health),
			Length:    int32(me.Len()),
		})
		if err != nil {
			_ = level.Warn(logger).Log("msg", "failed to record turn", "err", err)
		}
	}

	return sdk.BattlesnakeMoveResponse{
		Move:  sdk.MoveOf(decision.Move),
		Shout: decision.Shout,
	}
}

// fallbackMove keeps going the way the wire snake faces, up when that is unknown.
func fallbackMove(you sdk.Battlesnake) geom.Direction {
	if len(you.Body) < 2 {
		return geom.DefaultDirection
	}
	if dir, ok := you.Body[1].DirectionTo(you.Body[0]); ok {
		return dir
	}
	return geom.DefaultDirection
}
