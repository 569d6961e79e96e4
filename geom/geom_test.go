package geom

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirections(t *testing.T) {
	p := Point{10, 10}
	assert.Equal(t, Point{11, 10}, p.Add(Right))
	assert.Equal(t, Point{9, 10}, p.Add(Left))
	assert.Equal(t, Point{10, 11}, p.Add(Up))
	assert.Equal(t, Point{10, 9}, p.Add(Down))

	for _, dir := range AllDirections {
		got, ok := p.DirectionTo(p.Add(dir))
		assert.True(t, ok)
		assert.Equal(t, dir, got)
		assert.Equal(t, p, p.Add(dir).Add(dir.Reverse()))
	}

	_, ok := p.DirectionTo(Point{15, 15})
	assert.False(t, ok)
}

func TestDirectionIndexStable(t *testing.T) {
	for i, dir := range AllDirections {
		assert.Equal(t, i, dir.Index())
	}
	assert.Equal(t, Up, DefaultDirection)
}

func TestDirectionText(t *testing.T) {
	type move struct {
		Move Direction `json:"move"`
	}
	out, err := json.Marshal(move{Move: Left})
	require.NoError(t, err)
	assert.JSONEq(t, `{"move":"left"}`, string(out))

	var in move
	require.NoError(t, json.Unmarshal([]byte(`{"move":"DOWN"}`), &in))
	assert.Equal(t, Down, in.Move)

	assert.Error(t, json.Unmarshal([]byte(`{"move":"sideways"}`), &in))
}

func TestManhattan(t *testing.T) {
	origin := Point{7, 3}
	assert.Equal(t, 0, origin.Manhattan(origin))
	assert.Equal(t, 10, origin.Manhattan(Point{0, 0}))
	assert.Equal(t, 10, Point{0, 0}.Manhattan(origin))
	assert.Equal(t, 32, Point{-13, 19}.Manhattan(Point{0, 0}))
}

func TestPathRoundTrip(t *testing.T) {
	points := []Point{{5, 5}, {5, 4}, {5, 3}, {4, 3}}
	path := NewPath(points...)
	require.Equal(t, len(points), path.Len())
	for i, p := range points {
		assert.Equal(t, p, path.At(i))
	}
	assert.Equal(t, points, path.Points())
	assert.Equal(t, 2, path.Index(Point{5, 3}))
	assert.Equal(t, -1, path.Index(Point{0, 0}))

	// mutating the source must not leak into the path
	points[0] = Point{0, 0}
	assert.Equal(t, Point{5, 5}, path.Head())
}

func TestPathSlideFront(t *testing.T) {
	path := NewPath(Point{5, 5}, Point{5, 4}, Point{5, 3})
	path.SlideFront(Up)
	assert.Equal(t, 3, path.Len())
	assert.Equal(t, []Point{{5, 6}, {5, 5}, {5, 4}}, path.Points())
}

func TestPathExtendBack(t *testing.T) {
	path := NewPath(Point{5, 5}, Point{5, 4})
	path.ExtendBack()
	assert.Equal(t, 3, path.Len())
	assert.Equal(t, Point{5, 4}, path.Tail())
	assert.Equal(t, Point{5, 4}, path.At(1))
}

func TestPathExtendFront(t *testing.T) {
	path := NewPath(Point{1, 1})
	path.ExtendFront(Point{-1, 0})
	path.ExtendFront(Point{0, -1})
	assert.Equal(t, Point{0, 0}, path.Head())
	assert.Equal(t, Point{1, 1}, path.Tail())
	assert.Equal(t, Point{0, 1}, path.At(1))

	path = NewPath(Point{5, 1})
	path.ExtendFrontDir(Right)
	path.ExtendFrontDir(Up)
	path.ExtendFrontDir(Left)
	path.ExtendFrontDir(Down)
	assert.Equal(t, []Point{{5, 1}, {5, 2}, {6, 2}, {6, 1}, {5, 1}}, path.Points())

	var empty Path
	empty.ExtendFront(Point{1, 0})
	empty.ExtendBack()
	empty.SlideFront(Up)
	assert.True(t, empty.Empty())
}

func TestPointSet(t *testing.T) {
	var nilSet PointSet
	assert.False(t, nilSet.Contains(Point{}))

	set := NewPointSet(Point{1, 2}, Point{1, 2}, Point{3, 4})
	assert.Equal(t, 2, set.Len())
	assert.True(t, set.Contains(Point{3, 4}))
	set.Add(Point{0, 0})
	assert.True(t, set.Contains(Point{0, 0}))
}
