package heuristic

import (
	"github.com/Cameron-Kurotori/pessimist/board"
	"github.com/Cameron-Kurotori/pessimist/geom"
	"github.com/Cameron-Kurotori/pessimist/grid"
)

const (
	unclaimed = -1
	contested = -2
)

// Territory is what one snake reaches strictly before every other snake.
type Territory struct {
	// Cells excludes hazards, they can be crossed but are not worth holding.
	Cells int
	// Food is the closest food inside the territory, valid when HasFood is set.
	Food         geom.Point
	FoodDistance int
	HasFood      bool
}

// Territories runs a breadth first flood from every head at once. A cell belongs to the
// snake that reaches it first; cells reached by two snakes on the same step belong to
// nobody and stop the flood.
func Territories(g *grid.Grid, b *board.Board) []Territory {
	size := g.Width() * g.Height()
	owner := make([]int, size)
	dist := make([]int, size)
	for i := range owner {
		owner[i] = unclaimed
	}

	queue := make([]int, 0, size)
	for i, s := range b.Snakes {
		idx, ok := g.Index(s.Head())
		if !ok {
			continue
		}
		owner[idx] = i
		queue = append(queue, idx)
	}

	for len(queue) > 0 {
		curr := queue[0]
		queue = queue[1:]
		o := owner[curr]
		if o == contested {
			continue
		}
		for _, n := range g.Point(curr).Neighbours() {
			if !g.At(n).Accessible() {
				continue
			}
			idx, _ := g.Index(n)
			switch {
			case owner[idx] == unclaimed:
				owner[idx] = o
				dist[idx] = dist[curr] + 1
				queue = append(queue, idx)
			case owner[idx] >= 0 && owner[idx] != o && dist[idx] == dist[curr]+1:
				owner[idx] = contested
			}
		}
	}

	out := make([]Territory, len(b.Snakes))
	for idx, o := range owner {
		if o < 0 {
			continue
		}
		cell := g.At(g.Point(idx))
		if cell.Kind == grid.Snake || cell.Hazardous() {
			continue
		}
		out[o].Cells++
	}
	for _, f := range b.Food {
		idx, ok := g.Index(f)
		if !ok || owner[idx] < 0 {
			continue
		}
		t := &out[owner[idx]]
		if !t.HasFood || dist[idx] < t.FoodDistance {
			t.Food = f
			t.FoodDistance = dist[idx]
			t.HasFood = true
		}
	}
	return out
}
