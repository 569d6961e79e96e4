package main

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/Cameron-Kurotori/pessimist/board"
	"github.com/Cameron-Kurotori/pessimist/geom"
	"github.com/Cameron-Kurotori/pessimist/sdk"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// FoodSettings follows the standard ruleset knobs: food is topped up to MinimumFood
// every turn, and one extra item spawns with SpawnChance percent probability.
type FoodSettings struct {
	MinimumFood int
	SpawnChance int
}

var DefaultFoodSettings = FoodSettings{MinimumFood: 1, SpawnChance: 15}

type Settings struct {
	Width    int
	Height   int
	MaxTurns int
	Food     FoodSettings
	// Timeout is sent to the snakes as the game timeout.
	Timeout time.Duration
}

// Death is one eliminated snake.
type Death struct {
	Snake string `json:"snake"`
	Name  string `json:"name"`
	Turn  int    `json:"turn"`
	Cause string `json:"cause"`
}

type Result struct {
	GameID string `json:"game_id"`
	Turns  int    `json:"turns"`
	// Winner is empty for draws and for games cut off at MaxTurns.
	Winner  string  `json:"winner,omitempty"`
	Deaths  []Death `json:"deaths"`
	Players []Stats `json:"players"`
}

type Stats struct {
	Snake       string  `json:"snake"`
	Name        string  `json:"name"`
	AvgMoveMs   float64 `json:"avg_move_ms"`
	FinalLength int     `json:"final_length"`
}

// Frame is the board after a turn.
type Frame struct {
	Turn  int
	Alive int
	Board string
}

type Player struct {
	Name   string
	Client BattlesnakeClient
}

type simulator struct {
	logger   log.Logger
	settings Settings
	rng      *rand.Rand
	// onTurn, when set, sees every frame including the initial one.
	onTurn func(Frame)
}

func newNonCollidingSnakeHead(rng *rand.Rand, width, height, padding int, heads []geom.Point) geom.Point {
	for attempt := 0; ; attempt++ {
		c := geom.Point{X: rng.Intn(width), Y: rng.Intn(height)}
		// small boards cannot always honour the padding
		if attempt > 0 && attempt%100 == 0 && padding > 1 {
			padding--
		}
		free := true
		for _, head := range heads {
			if head.Manhattan(c) < padding {
				free = false
				break
			}
		}
		if free {
			return c
		}
	}
}

func initSnakes(rng *rand.Rand, count, width, height int) []board.Snake {
	padding := 5
	snakes := make([]board.Snake, 0, count)
	heads := make([]geom.Point, 0, count)
	for i := 0; i < count; i++ {
		head := newNonCollidingSnakeHead(rng, width, height, padding, heads)
		heads = append(heads, head)
		snake, err := board.NewSnake(uuid.NewString(), board.MaxHealth, []geom.Point{head, head, head})
		if err != nil {
			// three stacked segments are never empty
			panic(err)
		}
		snakes = append(snakes, snake)
	}
	return snakes
}

// spawnFood tops food up to the minimum, then rolls for one extra item. Food never lands
// on a snake or on other food.
func spawnFood(b *board.Board, rng *rand.Rand, settings FoodSettings) {
	occupied := geom.NewPointSet(b.Food...)
	for _, s := range b.Snakes {
		for _, p := range s.Body.Points() {
			occupied.Add(p)
		}
	}

	spawn := func() bool {
		free := make([]geom.Point, 0, b.Width()*b.Height()-occupied.Len())
		for y := 0; y < b.Height(); y++ {
			for x := 0; x < b.Width(); x++ {
				p := geom.Point{X: x, Y: y}
				if !occupied.Contains(p) {
					free = append(free, p)
				}
			}
		}
		if len(free) == 0 {
			return false
		}
		p := free[rng.Intn(len(free))]
		b.Food = append(b.Food, p)
		occupied.Add(p)
		return true
	}

	for len(b.Food) < settings.MinimumFood {
		if !spawn() {
			break
		}
	}
	if settings.SpawnChance > 0 && rng.Intn(100) < settings.SpawnChance {
		spawn()
	}
}

// Simulate plays one game between players until at most one snake is left (none for a
// solo game) or MaxTurns is reached.
func (s simulator) Simulate(ctx context.Context, players []Player) (Result, error) {
	if len(players) == 0 {
		return Result{}, fmt.Errorf("no players")
	}
	game := sdk.Game{
		ID:      uuid.New().String(),
		Ruleset: sdk.Ruleset{Name: "standard", Version: "pessimist-simulator"},
		Timeout: int32(s.settings.Timeout.Milliseconds()),
		Source:  "simulator",
	}
	logger := log.With(s.logger, "game_id", game.ID)

	b := board.New(s.settings.Width, s.settings.Height, initSnakes(s.rng, len(players), s.settings.Width, s.settings.Height), nil)
	var hazards geom.PointSet
	spawnFood(b, s.rng, s.settings.Food)

	byID := map[string]Player{}
	last := map[string]board.Snake{}
	order := make([]string, 0, len(b.Snakes))
	for i, snake := range b.Snakes {
		byID[snake.ID] = players[i]
		order = append(order, snake.ID)
		last[snake.ID] = snake.Clone()
		_ = level.Info(logger).Log("msg", "initialized snake", "index", i, "snake_id", snake.ID, "name", players[i].Name)
	}

	for i := range b.Snakes {
		state := s.state(game, 0, b, hazards, i, players[i].Name)
		if err := players[i].Client.Start(ctx, state); err != nil {
			_ = level.Warn(logger).Log("msg", "start failed", "name", players[i].Name, "err", err)
		}
	}
	s.frame(0, b)

	result := Result{GameID: game.ID}
	solo := len(players) == 1
	turn := 0
	for len(b.Snakes) > 1 || (solo && len(b.Snakes) == 1) {
		if s.settings.MaxTurns > 0 && turn >= s.settings.MaxTurns {
			_ = level.Info(logger).Log("msg", "turn limit reached", "turn", turn)
			break
		}
		if err := ctx.Err(); err != nil {
			result.Turns = turn
			return result, err
		}
		_ = level.Debug(logger).Log("msg", "snakes left", "count", len(b.Snakes), "turn", turn)

		moves := make([]geom.Direction, len(b.Snakes))
		g, gctx := errgroup.WithContext(ctx)
		for i, snake := range b.Snakes {
			i, snake := i, snake
			player := byID[snake.ID]
			state := s.state(game, turn, b, hazards, i, player.Name)
			g.Go(func() error {
				resp, err := player.Client.Move(gctx, state)
				if err != nil {
					_ = level.Warn(logger).Log("msg", "error obtaining move", "name", player.Name, "err", err)
				}
				moves[i] = parseMove(resp, snake.DefaultMove())
				return nil
			})
		}
		// move errors fall back to the default move, only a cancelled game ends here
		if err := g.Wait(); err != nil {
			result.Turns = turn
			return result, err
		}

		ids := make([]string, len(b.Snakes))
		for i, snake := range b.Snakes {
			ids[i] = snake.ID
		}
		dead := b.Advance(moves, hazards)
		turn++
		for i, id := range ids {
			cause, ok := dead[i]
			if !ok {
				continue
			}
			_ = level.Info(logger).Log("msg", "snake died", "name", byID[id].Name, "cause", cause, "turn", turn)
			result.Deaths = append(result.Deaths, Death{Snake: id, Name: byID[id].Name, Turn: turn, Cause: cause.String()})
		}
		for _, snake := range b.Snakes {
			last[snake.ID] = snake.Clone()
		}
		spawnFood(b, s.rng, s.settings.Food)
		s.frame(turn, b)
	}

	result.Turns = turn
	if !solo && len(b.Snakes) == 1 {
		result.Winner = b.Snakes[0].ID
	}

	final := sdk.NewGameState(game, turn, b, hazards, -1)
	for _, id := range order {
		player := byID[id]
		state := final
		state.You = sdk.NewBattlesnake(last[id])
		state.You.Name = player.Name
		if err := player.Client.End(ctx, state); err != nil {
			_ = level.Warn(logger).Log("msg", "end failed", "name", player.Name, "err", err)
		}
	}
	for _, id := range order {
		player := byID[id]
		stats := Stats{Snake: id, Name: player.Name, FinalLength: last[id].Len()}
		if l, ok := player.Client.(*latencyRecorder); ok {
			stats.AvgMoveMs = float64(l.Average().Microseconds()) / 1000
		}
		result.Players = append(result.Players, stats)
	}
	_ = level.Info(logger).Log("msg", "DONE", "turns", turn, "winner", result.Winner)
	return result, nil
}

// state is the snapshot Snakes[you] is asked to move on.
func (s simulator) state(game sdk.Game, turn int, b *board.Board, hazards geom.PointSet, you int, name string) sdk.GameState {
	state := sdk.NewGameState(game, turn, b, hazards, you)
	state.You.Name = name
	return state
}

func (s simulator) frame(turn int, b *board.Board) {
	if s.onTurn == nil {
		return
	}
	s.onTurn(Frame{Turn: turn, Alive: len(b.Snakes), Board: b.String()})
}
