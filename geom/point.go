package geom

import (
	"fmt"
)

// Point is a board coordinate. (0,0) is the bottom-left cell.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Add gets the point one step away in direction dir
func (p Point) Add(dir Direction) Point {
	o := dir.Offset()
	return Point{p.X + o.X, p.Y + o.Y}
}

// Offset gets the sum of the individual axis of this point and another: {x1 + x2, y1 + y2}
func (p Point) Offset(other Point) Point {
	return Point{p.X + other.X, p.Y + other.Y}
}

// Sub gets the difference of the individual axis: {x1 - x2, y1 - y2}
func (p Point) Sub(other Point) Point {
	return Point{p.X - other.X, p.Y - other.Y}
}

// Manhattan calculates the manhattan distance: |x2 - x1| + |y2 - y1|
func (p Point) Manhattan(other Point) int {
	return abs(p.X-other.X) + abs(p.Y-other.Y)
}

// Neighbours returns the four adjacent points in AllDirections order.
func (p Point) Neighbours() [4]Point {
	var out [4]Point
	for i, dir := range AllDirections {
		out[i] = p.Add(dir)
	}
	return out
}

// DirectionTo returns the direction leading from p to an adjacent point.
func (p Point) DirectionTo(neighbour Point) (Direction, bool) {
	return DirectionOf(neighbour.Sub(p))
}

func (p Point) String() string {
	return fmt.Sprintf("{%d, %d}", p.X, p.Y)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// PointSet is an unordered set of points, used for hazards.
type PointSet map[Point]struct{}

func NewPointSet(points ...Point) PointSet {
	set := make(PointSet, len(points))
	for _, p := range points {
		set[p] = struct{}{}
	}
	return set
}

func (s PointSet) Add(p Point) {
	s[p] = struct{}{}
}

// Contains is safe on a nil set.
func (s PointSet) Contains(p Point) bool {
	_, ok := s[p]
	return ok
}

func (s PointSet) Len() int {
	return len(s)
}
