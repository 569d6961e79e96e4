package sdk

import (
	"errors"
	"fmt"
	"time"

	"github.com/Cameron-Kurotori/pessimist/board"
	"github.com/Cameron-Kurotori/pessimist/geom"
	"github.com/go-kit/log"
)

var ErrYouMissing = errors.New("you are not among the board snakes")

type GameState struct {
	Game  Game        `json:"game"`
	Turn  int         `json:"turn"`
	Board Board       `json:"board"`
	You   Battlesnake `json:"you"`
}

func (state GameState) Logger(logger log.Logger) log.Logger {
	return log.With(logger, "game_id", state.Game.ID, "snake_id", state.You.ID, "alive_snakes", len(state.Board.Snakes), "turn", state.Turn)
}

// ToBoard converts the snapshot into a simulation board with You at index 0, followed by
// the other snakes in snapshot order. Hazards are returned separately since they never
// change during a turn.
func (state GameState) ToBoard() (*board.Board, geom.PointSet, error) {
	snakes := make([]board.Snake, 0, len(state.Board.Snakes))
	found := false
	for _, s := range state.Board.Snakes {
		if s.ID != state.You.ID {
			continue
		}
		snake, err := s.Snake()
		if err != nil {
			return nil, nil, err
		}
		snakes = append(snakes, snake)
		found = true
		break
	}
	if !found {
		return nil, nil, fmt.Errorf("snake %q: %w", state.You.ID, ErrYouMissing)
	}
	for _, s := range state.Board.Snakes {
		if s.ID == state.You.ID {
			continue
		}
		snake, err := s.Snake()
		if err != nil {
			return nil, nil, err
		}
		snakes = append(snakes, snake)
	}

	b := board.New(state.Board.Width, state.Board.Height, snakes, state.Board.Food)
	return b, geom.NewPointSet(state.Board.Hazards...), nil
}

// NewGameState builds the snapshot a snake would receive for b, with Snakes[you] as You.
func NewGameState(game Game, turn int, b *board.Board, hazards geom.PointSet, you int) GameState {
	state := GameState{
		Game: game,
		Turn: turn,
		Board: Board{
			Width:   b.Width(),
			Height:  b.Height(),
			Food:    append([]Coord{}, b.Food...),
			Snakes:  make([]Battlesnake, len(b.Snakes)),
			Hazards: make([]Coord, 0, hazards.Len()),
		},
	}
	for p := range hazards {
		state.Board.Hazards = append(state.Board.Hazards, p)
	}
	for i, s := range b.Snakes {
		state.Board.Snakes[i] = NewBattlesnake(s)
	}
	if you >= 0 && you < len(b.Snakes) {
		state.You = state.Board.Snakes[you]
	}
	return state
}

type Game struct {
	ID      string  `json:"id"`
	Ruleset Ruleset `json:"ruleset"`
	Timeout int32   `json:"timeout"`
	Source  string  `json:"source,omitempty"`
}

// TimeoutDuration is the per-move timeout, zero when the engine did not send one.
func (g Game) TimeoutDuration() time.Duration {
	return time.Duration(g.Timeout) * time.Millisecond
}

type Ruleset struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

type Board struct {
	Height int           `json:"height"`
	Width  int           `json:"width"`
	Food   []Coord       `json:"food"`
	Snakes []Battlesnake `json:"snakes"`

	// Used in non-standard game modes
	Hazards []Coord `json:"hazards"`
}

type Battlesnake struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Health  int32   `json:"health"`
	Body    []Coord `json:"body"`
	Head    Coord   `json:"head"`
	Length  int32   `json:"length"`
	Latency string  `json:"latency"`

	// Used in non-standard game modes
	Shout string `json:"shout"`
	Squad string `json:"squad"`
}

// Snake validates the wire snake. Body is authoritative, Head and Length are ignored.
func (snake Battlesnake) Snake() (board.Snake, error) {
	return board.NewSnake(snake.ID, int(snake.Health), snake.Body)
}

func NewBattlesnake(s board.Snake) Battlesnake {
	body := s.Body.Points()
	return Battlesnake{
		ID:     s.ID,
		Name:   s.ID,
		Health: int32(s.Health),
		Body:   body,
		Head:   s.Head(),
		Length: int32(len(body)),
	}
}

// Coord is the wire form of a board coordinate.
type Coord = geom.Point

// Response Structs

type BattlesnakeInfoResponse struct {
	APIVersion string `json:"apiversion"`
	Author     string `json:"author"`
	Color      string `json:"color"`
	Head       string `json:"head"`
	Tail       string `json:"tail"`
	Version    string `json:"version,omitempty"`
}

type BattlesnakeMove string

const (
	BattlesnakeMove_Up    BattlesnakeMove = "up"
	BattlesnakeMove_Down  BattlesnakeMove = "down"
	BattlesnakeMove_Left  BattlesnakeMove = "left"
	BattlesnakeMove_Right BattlesnakeMove = "right"
)

func MoveOf(dir geom.Direction) BattlesnakeMove {
	return BattlesnakeMove(dir.String())
}

// Direction parses the move, case-insensitively.
func (m BattlesnakeMove) Direction() (geom.Direction, error) {
	return geom.ParseDirection(string(m))
}

type BattlesnakeMoveResponse struct {
	Move  BattlesnakeMove `json:"move"`
	Shout string          `json:"shout,omitempty"`
}
