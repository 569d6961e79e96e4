package geom

import (
	"fmt"
	"strings"
)

// Direction is one of the four cardinal moves. It doubles as a unit offset.
type Direction uint8

const (
	Right Direction = iota
	Left
	Up
	Down
)

// DefaultDirection is used whenever no better move is known.
const DefaultDirection = Up

// AllDirections lists every direction in Index order.
var AllDirections = [4]Direction{Right, Left, Up, Down}

var directionOffsets = [4]Point{
	Right: {1, 0},
	Left:  {-1, 0},
	Up:    {0, 1},
	Down:  {0, -1},
}

var directionNames = [4]string{
	Right: "right",
	Left:  "left",
	Up:    "up",
	Down:  "down",
}

// Index is a stable 0..3 slot number for the direction.
func (d Direction) Index() int {
	return int(d)
}

// Offset is the unit vector of the direction.
func (d Direction) Offset() Point {
	if int(d) >= len(directionOffsets) {
		return Point{}
	}
	return directionOffsets[d]
}

// Reverse reverses the direction: up <-> down, left <-> right
func (d Direction) Reverse() Direction {
	switch d {
	case Right:
		return Left
	case Left:
		return Right
	case Up:
		return Down
	default:
		return Up
	}
}

func (d Direction) String() string {
	if int(d) >= len(directionNames) {
		return fmt.Sprintf("direction(%d)", uint8(d))
	}
	return directionNames[d]
}

func (d Direction) MarshalText() ([]byte, error) {
	if int(d) >= len(directionNames) {
		return nil, fmt.Errorf("invalid direction %d", uint8(d))
	}
	return []byte(directionNames[d]), nil
}

func (d *Direction) UnmarshalText(text []byte) error {
	parsed, err := ParseDirection(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// ParseDirection accepts the lowercase wire names, case-insensitively.
func ParseDirection(s string) (Direction, error) {
	for i, name := range directionNames {
		if strings.EqualFold(s, name) {
			return Direction(i), nil
		}
	}
	return DefaultDirection, fmt.Errorf("unknown direction %q", s)
}

// DirectionOf converts a unit offset back into a direction.
func DirectionOf(offset Point) (Direction, bool) {
	for i, o := range directionOffsets {
		if o == offset {
			return Direction(i), true
		}
	}
	return DefaultDirection, false
}
