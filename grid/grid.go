package grid

import (
	"fmt"
	"strings"

	"github.com/Cameron-Kurotori/pessimist/board"
	"github.com/Cameron-Kurotori/pessimist/geom"
)

type Kind uint8

const (
	Empty Kind = iota
	Food
	Hazard
	Snake
	CollisionRisk
	OutOfBounds
)

// Kinds lists every variant, in declaration order.
var Kinds = []Kind{Empty, Food, Hazard, Snake, CollisionRisk, OutOfBounds}

func (k Kind) String() string {
	switch k {
	case Empty:
		return "empty"
	case Food:
		return "food"
	case Hazard:
		return "hazard"
	case Snake:
		return "snake"
	case CollisionRisk:
		return "collision-risk"
	case OutOfBounds:
		return "out-of-bounds"
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// Cell is the content of one board position.
//
// Snake is the owning board index and Vacates the number of turns until the segment has
// moved off the cell; both are only meaningful for Kind == Snake. Weight counts the
// opponent heads threatening a CollisionRisk cell, and Hazard marks a CollisionRisk cell
// laid over a hazard.
type Cell struct {
	Kind    Kind
	Snake   int
	Weight  int
	Vacates int
	Hazard  bool
}

// Hazardous reports whether entering the cell costs hazard damage.
func (c Cell) Hazardous() bool {
	return c.Kind == Hazard || (c.Kind == CollisionRisk && c.Hazard)
}

// Accessible reports whether a head may move onto the cell at all.
func (c Cell) Accessible() bool {
	switch c.Kind {
	case Empty, Food, Hazard, CollisionRisk:
		return true
	case Snake, OutOfBounds:
		return false
	}
	return false
}

// Considerable reports whether the cell counts as room to move into.
func (c Cell) Considerable() bool {
	switch c.Kind {
	case Empty, Food, Hazard:
		return true
	case Snake, CollisionRisk, OutOfBounds:
		return false
	}
	return false
}

func (c Cell) Glyph() rune {
	switch c.Kind {
	case Empty:
		return '◦'
	case Food:
		return '⚕'
	case Hazard:
		return 'H'
	case Snake:
		return rune('0' + c.Snake%10)
	case CollisionRisk:
		return '!'
	case OutOfBounds:
		return 'X'
	}
	return '?'
}

// Grid is a dense row-major projection of a board.
type Grid struct {
	width, height int
	cells         []Cell
}

func New(width, height int) *Grid {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Grid{
		width:  width,
		height: height,
		cells:  make([]Cell, width*height),
	}
}

// Build projects b from the point of view of Snakes[self]. Hazards are laid first, then
// food, then bodies. Tails that move off next turn are left free, stacked tails are not.
// Cells next to the head of an opponent at least as long as self become CollisionRisk.
func Build(b *board.Board, hazards geom.PointSet, self int) *Grid {
	g := New(b.Width(), b.Height())
	for p := range hazards {
		g.Set(p, Cell{Kind: Hazard})
	}
	for _, f := range b.Food {
		g.Set(f, Cell{Kind: Food})
	}

	for i, s := range b.Snakes {
		size := s.Len()
		// tail first so a stacked segment keeps the index closest to the head
		for idx := size - 1; idx >= 0; idx-- {
			p := s.Body.At(idx)
			if idx > 0 && idx == size-1 && s.Body.At(idx-1) != p {
				continue
			}
			g.Set(p, Cell{Kind: Snake, Snake: i, Vacates: size - idx})
		}
	}

	if self < 0 || self >= len(b.Snakes) {
		return g
	}
	selfLen := b.Snakes[self].Len()
	for i, s := range b.Snakes {
		if i == self || s.Len() < selfLen {
			continue
		}
		for _, n := range s.Head().Neighbours() {
			c := g.At(n)
			switch c.Kind {
			case Empty, Food, Hazard:
				g.Set(n, Cell{Kind: CollisionRisk, Weight: 1, Hazard: c.Kind == Hazard})
			case CollisionRisk:
				c.Weight++
				g.Set(n, c)
			case Snake, OutOfBounds:
			}
		}
	}
	return g
}

func (g *Grid) Width() int {
	return g.width
}

func (g *Grid) Height() int {
	return g.height
}

func (g *Grid) InBounds(p geom.Point) bool {
	return p.X >= 0 && p.Y >= 0 && p.X < g.width && p.Y < g.height
}

// Index maps p to its row-major offset.
func (g *Grid) Index(p geom.Point) (int, bool) {
	if !g.InBounds(p) {
		return 0, false
	}
	return p.Y*g.width + p.X, true
}

// Point is the inverse of Index.
func (g *Grid) Point(i int) geom.Point {
	return geom.Point{X: i % g.width, Y: i / g.width}
}

// At never fails: positions outside the grid are OutOfBounds.
func (g *Grid) At(p geom.Point) Cell {
	i, ok := g.Index(p)
	if !ok {
		return Cell{Kind: OutOfBounds}
	}
	return g.cells[i]
}

// Set ignores positions outside the grid.
func (g *Grid) Set(p geom.Point, c Cell) {
	if i, ok := g.Index(p); ok {
		g.cells[i] = c
	}
}

// Count returns the number of cells satisfying keep.
func (g *Grid) Count(keep func(Cell) bool) int {
	n := 0
	for _, c := range g.cells {
		if keep(c) {
			n++
		}
	}
	return n
}

func (g *Grid) String() string {
	var sb strings.Builder
	for y := g.height - 1; y >= 0; y-- {
		for x := 0; x < g.width; x++ {
			sb.WriteRune(g.cells[y*g.width+x].Glyph())
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
