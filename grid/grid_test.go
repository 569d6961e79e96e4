package grid

import (
	"testing"

	"github.com/Cameron-Kurotori/pessimist/board"
	"github.com/Cameron-Kurotori/pessimist/geom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func snake(t *testing.T, id string, coords ...int) board.Snake {
	t.Helper()
	body := make([]geom.Point, 0, len(coords)/2)
	for i := 0; i+1 < len(coords); i += 2 {
		body = append(body, geom.Point{X: coords[i], Y: coords[i+1]})
	}
	s, err := board.NewSnake(id, 100, body)
	require.NoError(t, err)
	return s
}

func TestPredicatesExhaustive(t *testing.T) {
	testCases := []struct {
		kind         Kind
		accessible   bool
		considerable bool
	}{
		{Empty, true, true},
		{Food, true, true},
		{Hazard, true, true},
		{Snake, false, false},
		{CollisionRisk, true, false},
		{OutOfBounds, false, false},
	}
	require.Len(t, testCases, len(Kinds))
	for _, tc := range testCases {
		t.Run(tc.kind.String(), func(t *testing.T) {
			c := Cell{Kind: tc.kind}
			assert.Equal(t, tc.accessible, c.Accessible())
			assert.Equal(t, tc.considerable, c.Considerable())
			assert.NotEqual(t, '?', c.Glyph())
		})
	}
	assert.False(t, Cell{Kind: Kind(200)}.Accessible())
	assert.False(t, Cell{Kind: Kind(200)}.Considerable())
}

func TestAtOutOfBounds(t *testing.T) {
	g := New(3, 2)
	assert.Equal(t, Empty, g.At(geom.Point{X: 2, Y: 1}).Kind)
	for _, p := range []geom.Point{{X: -1, Y: 0}, {X: 3, Y: 0}, {X: 0, Y: 2}, {X: 0, Y: -1}} {
		assert.Equal(t, OutOfBounds, g.At(p).Kind, p.String())
	}

	g.Set(geom.Point{X: 5, Y: 5}, Cell{Kind: Food})
	assert.Equal(t, 0, g.Count(func(c Cell) bool { return c.Kind == Food }))
}

func TestIndexRoundTrip(t *testing.T) {
	g := New(4, 3)
	for y := 0; y < 3; y++ {
		for x := 0; x < 4; x++ {
			p := geom.Point{X: x, Y: y}
			i, ok := g.Index(p)
			require.True(t, ok)
			assert.Equal(t, p, g.Point(i))
		}
	}
}

func TestBuild(t *testing.T) {
	me := snake(t, "me", 2, 2, 2, 1, 2, 0)
	big := snake(t, "big", 5, 2, 5, 1, 5, 0, 6, 0)
	small := snake(t, "small", 8, 8, 8, 9)
	b := board.New(11, 11, []board.Snake{me, big, small}, []geom.Point{{X: 0, Y: 0}, {X: 10, Y: 10}})
	hazards := geom.NewPointSet(geom.Point{X: 10, Y: 10}, geom.Point{X: 9, Y: 10})

	g := Build(b, hazards, 0)

	assert.Equal(t, Food, g.At(geom.Point{X: 0, Y: 0}).Kind)
	assert.Equal(t, Food, g.At(geom.Point{X: 10, Y: 10}).Kind)
	assert.Equal(t, Hazard, g.At(geom.Point{X: 9, Y: 10}).Kind)

	head := g.At(geom.Point{X: 2, Y: 2})
	assert.Equal(t, Cell{Kind: Snake, Snake: 0, Vacates: 3}, head)
	assert.Equal(t, Cell{Kind: Snake, Snake: 0, Vacates: 2}, g.At(geom.Point{X: 2, Y: 1}))
	// tails move on next turn
	assert.Equal(t, Empty, g.At(geom.Point{X: 2, Y: 0}).Kind)
	assert.Equal(t, Empty, g.At(geom.Point{X: 6, Y: 0}).Kind)
	assert.Equal(t, Cell{Kind: Snake, Snake: 1, Vacates: 2}, g.At(geom.Point{X: 5, Y: 0}))

	// the longer opponent threatens the cells around its head, the shorter one does not
	for _, p := range []geom.Point{{X: 4, Y: 2}, {X: 6, Y: 2}, {X: 5, Y: 3}} {
		c := g.At(p)
		assert.Equal(t, CollisionRisk, c.Kind, p.String())
		assert.Equal(t, 1, c.Weight)
	}
	assert.Equal(t, Snake, g.At(geom.Point{X: 5, Y: 1}).Kind)
	for _, p := range []geom.Point{{X: 7, Y: 8}, {X: 9, Y: 8}, {X: 8, Y: 7}} {
		assert.Equal(t, Empty, g.At(p).Kind, p.String())
	}
}

func TestBuildStackedTail(t *testing.T) {
	me := snake(t, "me", 2, 2, 2, 1, 2, 1)
	b := board.New(5, 5, []board.Snake{me}, nil)
	g := Build(b, nil, 0)

	c := g.At(geom.Point{X: 2, Y: 1})
	assert.Equal(t, Snake, c.Kind)
	assert.Equal(t, 2, c.Vacates)
}

func TestBuildCollisionRiskWeight(t *testing.T) {
	me := snake(t, "me", 0, 0, 0, 1)
	a := snake(t, "a", 4, 4, 4, 5, 4, 6)
	c := snake(t, "c", 6, 4, 6, 5, 6, 6)
	b := board.New(11, 11, []board.Snake{me, a, c}, []geom.Point{{X: 4, Y: 3}})
	g := Build(b, geom.NewPointSet(geom.Point{X: 5, Y: 4}, geom.Point{X: 6, Y: 3}), 0)

	shared := g.At(geom.Point{X: 5, Y: 4})
	assert.Equal(t, CollisionRisk, shared.Kind)
	assert.Equal(t, 2, shared.Weight)
	assert.True(t, shared.Hazard)
	assert.True(t, shared.Hazardous())

	plain := g.At(geom.Point{X: 3, Y: 4})
	assert.Equal(t, 1, plain.Weight)
	assert.False(t, plain.Hazardous())

	// risk laid over a hazard keeps costing hazard damage, over food it does not
	assert.True(t, g.At(geom.Point{X: 6, Y: 3}).Hazardous())
	food := g.At(geom.Point{X: 4, Y: 3})
	assert.Equal(t, CollisionRisk, food.Kind)
	assert.False(t, food.Hazardous())
	assert.True(t, Cell{Kind: Hazard}.Hazardous())
	assert.False(t, Cell{Kind: Empty, Hazard: true}.Hazardous())
}

func TestString(t *testing.T) {
	me := snake(t, "me", 1, 0, 0, 0)
	b := board.New(2, 2, []board.Snake{me}, []geom.Point{{X: 0, Y: 1}})
	g := Build(b, geom.NewPointSet(geom.Point{X: 1, Y: 1}), 0)
	assert.Equal(t, "⚕H\n◦0\n", g.String())
}
