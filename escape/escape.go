package escape

import (
	"github.com/Cameron-Kurotori/pessimist/board"
	"github.com/Cameron-Kurotori/pessimist/geom"
	"github.com/Cameron-Kurotori/pessimist/grid"
)

// MaxSteps caps the number of cells pushed by one search. Hitting it counts as no escape
// and sets Truncated.
const MaxSteps = 1 << 16

type Result struct {
	Found bool
	// Path excludes the start.
	Path geom.Path
	// Cost is 1 per step, or the hazard damage for hazard cells.
	Cost int
	// Truncated is set when MaxSteps ran out before the search finished.
	Truncated bool
}

type frame struct {
	p    geom.Point
	next int
	need int
	cost int
}

// Search looks for a simple path from start, through Empty, Food and Hazard cells, that
// covers at least minCells cells. Food raises the requirement by one, the cell eaten
// on it is paid back by the growth. It returns on the first path found.
func Search(start geom.Point, g *grid.Grid, minCells int) Result {
	if minCells <= 0 {
		return Result{Found: true, Path: geom.NewPath()}
	}
	if room(start, g, nil) < minCells {
		return Result{}
	}

	onPath := make([]bool, g.Width()*g.Height())
	mark := func(p geom.Point, v bool) {
		if i, ok := g.Index(p); ok {
			onPath[i] = v
		}
	}
	visited := func(p geom.Point) bool {
		i, ok := g.Index(p)
		return ok && onPath[i]
	}

	stack := []frame{{p: start, need: minCells}}
	mark(start, true)
	steps := 0

	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		if top.next >= len(geom.AllDirections) {
			mark(top.p, false)
			stack = stack[:len(stack)-1]
			continue
		}
		n := top.p.Add(geom.AllDirections[top.next])
		top.next++

		cell := g.At(n)
		if !cell.Considerable() || visited(n) {
			continue
		}
		need := top.need
		if cell.Kind == grid.Food {
			need++
		}
		cost := 1
		if cell.Hazardous() {
			cost = board.HazardDamage
		}
		if need-1 <= 0 {
			return found(stack, frame{p: n, cost: cost})
		}
		steps++
		if steps > MaxSteps {
			return Result{Truncated: true}
		}
		mark(n, true)
		// the rest of the path has to fit in what the path so far leaves reachable
		if room(n, g, onPath) < need-1 {
			mark(n, false)
			continue
		}
		stack = append(stack, frame{p: n, need: need - 1, cost: cost})
	}
	return Result{}
}

// HasEscape reports whether Search finds a path.
func HasEscape(start geom.Point, g *grid.Grid, minCells int) bool {
	return Search(start, g, minCells).Found
}

func found(stack []frame, last frame) Result {
	points := make([]geom.Point, 0, len(stack))
	cost := 0
	for _, f := range stack[1:] {
		points = append(points, f.p)
		cost += f.cost
	}
	points = append(points, last.p)
	cost += last.cost
	return Result{
		Found: true,
		Path:  geom.NewPath(points...),
		Cost:  cost,
	}
}

// room counts the non-food cells reachable from start without crossing a blocked cell.
// No simple path can satisfy a requirement larger than that.
func room(start geom.Point, g *grid.Grid, blocked []bool) int {
	seen := make([]bool, g.Width()*g.Height())
	copy(seen, blocked)
	if i, ok := g.Index(start); ok {
		seen[i] = true
	}
	queue := []geom.Point{start}
	count := 0
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		for _, n := range p.Neighbours() {
			i, ok := g.Index(n)
			if !ok || seen[i] {
				continue
			}
			cell := g.At(n)
			if !cell.Considerable() {
				continue
			}
			seen[i] = true
			if cell.Kind != grid.Food {
				count++
			}
			queue = append(queue, n)
		}
	}
	return count
}
