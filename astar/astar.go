package astar

import (
	"container/heap"

	"github.com/Cameron-Kurotori/pessimist/board"
	"github.com/Cameron-Kurotori/pessimist/geom"
	"github.com/Cameron-Kurotori/pessimist/grid"
)

// Options tune ShortestPath. A zero HeuristicWeight turns the search into Dijkstra.
type Options struct {
	HeuristicWeight int
	ThroughHazards  bool
}

// DefaultOptions is what the heuristic uses to rate food.
var DefaultOptions = Options{HeuristicWeight: 1, ThroughHazards: true}

type Result struct {
	Cost int
	// Path excludes the start, index 0 is the first step.
	Path geom.Path
}

// DistanceField returns, per grid index, the manhattan distance to goal plus a hazard
// penalty and, on collision risk cells, the evaluating snake's remaining health.
func DistanceField(g *grid.Grid, goal geom.Point, health int) []int {
	field := make([]int, g.Width()*g.Height())
	for i := range field {
		p := g.Point(i)
		d := p.Manhattan(goal)
		cell := g.At(p)
		if cell.Hazardous() {
			d += board.HazardDamage
		}
		if cell.Kind == grid.CollisionRisk {
			d += health
		}
		field[i] = d
	}
	return field
}

type node struct {
	p      geom.Point
	g      int
	turn   int
	parent int
}

type entry struct {
	node int
	f    int
}

type openSet []entry

func (h openSet) Len() int           { return len(h) }
func (h openSet) Less(i, j int) bool { return h[i].f < h[j].f }
func (h openSet) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *openSet) Push(x any)        { *h = append(*h, x.(entry)) }
func (h *openSet) Pop() any          { n := len(*h) - 1; x := (*h)[n]; *h = (*h)[:n]; return x }

// ShortestPath finds the cheapest path from start to goal. Steps cost 1, or 1 plus the
// hazard damage when entering a hazard. A body segment may be crossed once it has
// vacated, i.e. when its Vacates is not after the turn the path arrives on it.
func ShortestPath(start, goal geom.Point, g *grid.Grid, field []int, opts Options) (Result, bool) {
	if start == goal {
		return Result{Path: geom.NewPath()}, true
	}
	if !g.InBounds(goal) || len(field) != g.Width()*g.Height() {
		return Result{}, false
	}

	nodes := []node{{p: start, parent: -1}}
	best := map[geom.Point]int{start: 0}
	open := &openSet{{node: 0, f: opts.HeuristicWeight * at(g, field, start)}}
	heap.Init(open)

	for open.Len() > 0 {
		parent := heap.Pop(open).(entry).node
		curr := nodes[parent]
		if curr.p == goal {
			return reconstruct(nodes, curr), true
		}
		if curr.g > best[curr.p] {
			continue
		}
		for _, next := range curr.p.Neighbours() {
			cell := g.At(next)
			if !passable(cell, curr.turn+1, opts) && !(next == goal && cell.Accessible()) {
				continue
			}
			cost := curr.g + 1
			if cell.Hazardous() {
				cost += board.HazardDamage
			}
			if old, ok := best[next]; ok && cost >= old {
				continue
			}
			best[next] = cost
			nodes = append(nodes, node{p: next, g: cost, turn: curr.turn + 1, parent: parent})
			heap.Push(open, entry{node: len(nodes) - 1, f: cost + opts.HeuristicWeight*at(g, field, next)})
		}
	}
	return Result{}, false
}

// Find builds the distance field for goal and runs ShortestPath.
func Find(g *grid.Grid, start, goal geom.Point, health int, opts Options) (Result, bool) {
	return ShortestPath(start, goal, g, DistanceField(g, goal, health), opts)
}

func passable(c grid.Cell, arrival int, opts Options) bool {
	switch c.Kind {
	case grid.Empty, grid.Food:
		return true
	case grid.CollisionRisk:
		return !c.Hazard || opts.ThroughHazards
	case grid.Hazard:
		return opts.ThroughHazards
	case grid.Snake:
		return c.Vacates <= arrival
	case grid.OutOfBounds:
		return false
	}
	return false
}

func at(g *grid.Grid, field []int, p geom.Point) int {
	i, ok := g.Index(p)
	if !ok {
		return 0
	}
	return field[i]
}

func reconstruct(nodes []node, goal node) Result {
	var rev []geom.Point
	for n := goal; n.parent >= 0; n = nodes[n.parent] {
		rev = append(rev, n.p)
	}
	points := make([]geom.Point, len(rev))
	for i, p := range rev {
		points[len(rev)-1-i] = p
	}
	return Result{Cost: goal.g, Path: geom.NewPath(points...)}
}
