package board

import (
	"github.com/Cameron-Kurotori/pessimist/geom"
)

// CauseOfDeath explains why a snake was removed during Advance.
type CauseOfDeath uint8

const (
	HeadToHead CauseOfDeath = iota
	OtherCollision
	SelfCollision
	OutOfBounds
	OutOfHealth
)

func (c CauseOfDeath) String() string {
	switch c {
	case HeadToHead:
		return "head-collision"
	case OtherCollision:
		return "snake-collision"
	case SelfCollision:
		return "self-collision"
	case OutOfBounds:
		return "wall-collision"
	case OutOfHealth:
		return "starvation"
	default:
		return "unknown"
	}
}

// Board is owned by a single search branch. Snakes[0] is always the deciding snake
// until it is eliminated.
type Board struct {
	Snakes []Snake
	Food   []geom.Point
	// Bounds is the largest valid coordinate, the smallest is (0,0).
	Bounds geom.Point
}

func New(width, height int, snakes []Snake, food []geom.Point) *Board {
	b := &Board{
		Snakes: make([]Snake, len(snakes)),
		Food:   make([]geom.Point, len(food)),
		Bounds: geom.Point{X: width - 1, Y: height - 1},
	}
	for i, s := range snakes {
		b.Snakes[i] = s.Clone()
	}
	copy(b.Food, food)
	return b
}

// Clone performs a deep copy of snakes and food.
func (b *Board) Clone() *Board {
	return New(b.Width(), b.Height(), b.Snakes, b.Food)
}

func (b *Board) Width() int {
	return b.Bounds.X + 1
}

func (b *Board) Height() int {
	return b.Bounds.Y + 1
}

func (b *Board) InBounds(p geom.Point) bool {
	return p.X >= 0 && p.Y >= 0 && p.X <= b.Bounds.X && p.Y <= b.Bounds.Y
}

func (b *Board) foodIndex(p geom.Point) int {
	for i, f := range b.Food {
		if f == p {
			return i
		}
	}
	return -1
}

// Advance moves every snake one tick. moves[i] is the move of Snakes[i]; snakes without an
// entry take their default move. Deaths are resolved on the post-move board before anything
// is removed, then dead snakes and eaten food are dropped together.
func (b *Board) Advance(moves []geom.Direction, hazards geom.PointSet) map[int]CauseOfDeath {
	eaten := make(map[int]bool)

	for i := range b.Snakes {
		snake := &b.Snakes[i]
		dir := snake.DefaultMove()
		if i < len(moves) {
			dir = moves[i]
		}
		snake.Advance(dir)
		// a food item feeds only the first snake to reach it
		if f := b.foodIndex(snake.Head()); f >= 0 && !eaten[f] {
			eaten[f] = true
			snake.Feed()
		}
		if hazards.Contains(snake.Head()) {
			snake.Damage(HazardDamage)
		}
	}

	dead := make(map[int]CauseOfDeath)
	for i := range b.Snakes {
		if cause, ok := b.Death(i); ok {
			dead[i] = cause
		}
	}

	if len(eaten) > 0 {
		remaining := b.Food[:0]
		for i, f := range b.Food {
			if !eaten[i] {
				remaining = append(remaining, f)
			}
		}
		b.Food = remaining
	}

	if len(dead) > 0 {
		alive := b.Snakes[:0]
		for i, s := range b.Snakes {
			if _, ok := dead[i]; !ok {
				alive = append(alive, s)
			}
		}
		b.Snakes = alive
	}

	return dead
}

// Death reports whether Snakes[i] is dead on the current board, without mutating it.
func (b *Board) Death(i int) (CauseOfDeath, bool) {
	snake := b.Snakes[i]
	head := snake.Head()
	if !snake.Alive() {
		return OutOfHealth, true
	}
	if !b.InBounds(head) {
		return OutOfBounds, true
	}
	for j, other := range b.Snakes {
		if i == j {
			if snake.Body.IndexFrom(head, 1) > 0 {
				return SelfCollision, true
			}
			continue
		}
		col := other.CollisionIndex(head)
		if col < 0 {
			continue
		}
		if col > 0 {
			return OtherCollision, true
		}
		if snake.Len() <= other.Len() {
			return HeadToHead, true
		}
	}
	return 0, false
}

// LegalMoves lists the in-bounds moves of Snakes[i] that do not run into a body, except
// for segments within margin of their owner's tail, which will have moved on by then.
// There is always at least one move: the default one.
func (b *Board) LegalMoves(i int, margin int) []geom.Direction {
	moves := b.PrunedMoves(b.Snakes[i].Head(), margin)
	if len(moves) == 0 {
		moves = append(moves, b.Snakes[i].DefaultMove())
	}
	return moves
}

// PrunedMoves is LegalMoves for an arbitrary cell, without the fallback.
func (b *Board) PrunedMoves(from geom.Point, margin int) []geom.Direction {
	moves := make([]geom.Direction, 0, 4)
	for _, dir := range geom.AllDirections {
		next := from.Add(dir)
		if !b.InBounds(next) {
			continue
		}
		if b.blocked(next, margin) {
			continue
		}
		moves = append(moves, dir)
	}
	return moves
}

func (b *Board) blocked(p geom.Point, margin int) bool {
	for _, snake := range b.Snakes {
		size := snake.Len()
		if p.Manhattan(snake.Head()) > size {
			continue
		}
		col := snake.CollisionIndex(p)
		if col < 0 {
			continue
		}
		if size < margin || col < size-margin {
			return true
		}
	}
	return false
}

// AllMoves returns the legal moves of every snake, in board order.
func (b *Board) AllMoves() [][]geom.Direction {
	all := make([][]geom.Direction, len(b.Snakes))
	for i := range b.Snakes {
		all[i] = b.LegalMoves(i, 1)
	}
	return all
}

func (b *Board) TotalLength() int {
	total := 0
	for _, s := range b.Snakes {
		total += s.Len()
	}
	return total
}
