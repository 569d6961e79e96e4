package astar

import (
	"testing"

	"github.com/Cameron-Kurotori/pessimist/board"
	"github.com/Cameron-Kurotori/pessimist/geom"
	"github.com/Cameron-Kurotori/pessimist/grid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSameCell(t *testing.T) {
	g := grid.New(11, 11)
	for _, p := range []geom.Point{{X: 0, Y: 0}, {X: 5, Y: 5}, {X: 10, Y: 3}} {
		res, ok := Find(g, p, p, 100, DefaultOptions)
		require.True(t, ok)
		assert.Equal(t, 0, res.Cost)
		assert.True(t, res.Path.Empty())
	}
}

func TestCorridor(t *testing.T) {
	g := grid.New(6, 1)
	start, goal := geom.Point{X: 0, Y: 0}, geom.Point{X: 5, Y: 0}
	g.Set(goal, grid.Cell{Kind: grid.Food})

	res, ok := Find(g, start, goal, 50, DefaultOptions)
	require.True(t, ok)
	assert.Equal(t, 5, res.Cost)
	require.Equal(t, 5, res.Path.Len())
	assert.Equal(t, geom.Point{X: 1, Y: 0}, res.Path.Head())
	assert.Equal(t, goal, res.Path.Tail())
}

func TestOpenBoardOptimal(t *testing.T) {
	testCases := []struct {
		name   string
		weight int
	}{
		{"dijkstra", 0},
		{"astar", 1},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			g := grid.New(11, 11)
			res, ok := Find(g, geom.Point{X: 0, Y: 0}, geom.Point{X: 7, Y: 9}, 100, Options{HeuristicWeight: tc.weight})
			require.True(t, ok)
			assert.Equal(t, 16, res.Cost)
			assert.Equal(t, 16, res.Path.Len())
		})
	}
}

func TestHazards(t *testing.T) {
	start, goal := geom.Point{X: 0, Y: 0}, geom.Point{X: 2, Y: 0}

	t.Run("straight-through", func(t *testing.T) {
		g := grid.New(3, 1)
		g.Set(geom.Point{X: 1, Y: 0}, grid.Cell{Kind: grid.Hazard})

		res, ok := Find(g, start, goal, 100, DefaultOptions)
		require.True(t, ok)
		assert.Equal(t, 2+board.HazardDamage, res.Cost)

		_, ok = Find(g, start, goal, 100, Options{HeuristicWeight: 1})
		assert.False(t, ok)
	})

	t.Run("detour", func(t *testing.T) {
		g := grid.New(3, 2)
		g.Set(geom.Point{X: 1, Y: 0}, grid.Cell{Kind: grid.Hazard})
		for _, opts := range []Options{DefaultOptions, {HeuristicWeight: 1}} {
			res, ok := Find(g, start, goal, 100, opts)
			require.True(t, ok)
			assert.Equal(t, 4, res.Cost)
			assert.Equal(t, geom.Point{X: 0, Y: 1}, res.Path.Head())
		}
	})

	t.Run("hazard-goal", func(t *testing.T) {
		g := grid.New(3, 1)
		g.Set(goal, grid.Cell{Kind: grid.Hazard})
		res, ok := Find(g, start, goal, 100, Options{HeuristicWeight: 1})
		require.True(t, ok)
		assert.Equal(t, 2+board.HazardDamage, res.Cost)
	})
}

func TestVacatingSegments(t *testing.T) {
	start, goal := geom.Point{X: 0, Y: 0}, geom.Point{X: 2, Y: 0}
	testCases := []struct {
		name    string
		vacates int
		ok      bool
	}{
		{"moves-off-in-time", 1, true},
		{"still-there", 2, false},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			g := grid.New(3, 1)
			g.Set(geom.Point{X: 1, Y: 0}, grid.Cell{Kind: grid.Snake, Snake: 1, Vacates: tc.vacates})
			res, ok := Find(g, start, goal, 100, DefaultOptions)
			assert.Equal(t, tc.ok, ok)
			if tc.ok {
				assert.Equal(t, 2, res.Cost)
			}
		})
	}
}

func TestNoPath(t *testing.T) {
	g := grid.New(5, 5)
	goal := geom.Point{X: 4, Y: 4}
	g.Set(geom.Point{X: 3, Y: 4}, grid.Cell{Kind: grid.Snake, Vacates: 10})
	g.Set(geom.Point{X: 4, Y: 3}, grid.Cell{Kind: grid.Snake, Vacates: 10})

	_, ok := Find(g, geom.Point{X: 0, Y: 0}, goal, 100, DefaultOptions)
	assert.False(t, ok)

	_, ok = Find(g, geom.Point{X: 0, Y: 0}, geom.Point{X: 9, Y: 9}, 100, DefaultOptions)
	assert.False(t, ok)
}

func TestDistanceField(t *testing.T) {
	g := grid.New(3, 3)
	goal := geom.Point{X: 0, Y: 0}
	g.Set(geom.Point{X: 1, Y: 0}, grid.Cell{Kind: grid.Hazard})
	g.Set(geom.Point{X: 0, Y: 1}, grid.Cell{Kind: grid.CollisionRisk, Weight: 1})

	field := DistanceField(g, goal, 42)
	require.Len(t, field, 9)
	idx := func(p geom.Point) int {
		i, ok := g.Index(p)
		require.True(t, ok)
		return i
	}
	assert.Equal(t, 0, field[idx(goal)])
	assert.Equal(t, 1+board.HazardDamage, field[idx(geom.Point{X: 1, Y: 0})])
	assert.Equal(t, 1+42, field[idx(geom.Point{X: 0, Y: 1})])
	assert.Equal(t, 4, field[idx(geom.Point{X: 2, Y: 2})])
}

func TestRiskCellsAvoidedWhenHealthy(t *testing.T) {
	// two equal-length routes, one of them past a collision risk cell
	g := grid.New(3, 2)
	g.Set(geom.Point{X: 1, Y: 0}, grid.Cell{Kind: grid.CollisionRisk, Weight: 1})
	res, ok := Find(g, geom.Point{X: 0, Y: 0}, geom.Point{X: 2, Y: 1}, 100, DefaultOptions)
	require.True(t, ok)
	assert.Equal(t, 3, res.Cost)
	assert.Equal(t, geom.Point{X: 0, Y: 1}, res.Path.Head())
}

func TestRiskOverHazard(t *testing.T) {
	g := grid.New(3, 1)
	start, goal := geom.Point{X: 0, Y: 0}, geom.Point{X: 2, Y: 0}
	g.Set(geom.Point{X: 1, Y: 0}, grid.Cell{Kind: grid.CollisionRisk, Weight: 1, Hazard: true})

	field := DistanceField(g, goal, 100)
	assert.Equal(t, 1+board.HazardDamage+100, field[1])

	res, ok := Find(g, start, goal, 100, DefaultOptions)
	require.True(t, ok)
	assert.Equal(t, 2+board.HazardDamage, res.Cost)

	_, ok = Find(g, start, goal, 100, Options{HeuristicWeight: 1})
	assert.False(t, ok)
}
