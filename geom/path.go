package geom

// Path is an ordered sequence of points, head first.
type Path struct {
	nodes []Point
}

// NewPath copies points into a new path.
func NewPath(points ...Point) Path {
	nodes := make([]Point, len(points))
	copy(nodes, points)
	return Path{nodes: nodes}
}

func (p Path) Len() int {
	return len(p.nodes)
}

func (p Path) Empty() bool {
	return len(p.nodes) == 0
}

// Head panics on an empty path.
func (p Path) Head() Point {
	return p.nodes[0]
}

// Tail panics on an empty path.
func (p Path) Tail() Point {
	return p.nodes[len(p.nodes)-1]
}

// At panics when i is out of range.
func (p Path) At(i int) Point {
	return p.nodes[i]
}

// Get is At without the panic.
func (p Path) Get(i int) (Point, bool) {
	if i < 0 || i >= len(p.nodes) {
		return Point{}, false
	}
	return p.nodes[i], true
}

// Index returns the index of the first node equal to pt, or -1.
func (p Path) Index(pt Point) int {
	return p.IndexFrom(pt, 0)
}

// IndexFrom is Index ignoring the nodes before start.
func (p Path) IndexFrom(pt Point, start int) int {
	for i := start; i < len(p.nodes); i++ {
		if p.nodes[i] == pt {
			return i
		}
	}
	return -1
}

// Points returns a copy of the nodes.
func (p Path) Points() []Point {
	out := make([]Point, len(p.nodes))
	copy(out, p.nodes)
	return out
}

func (p Path) Clone() Path {
	return NewPath(p.nodes...)
}

// ExtendFront grows the path in front with head + offset. Empty paths are left untouched.
func (p *Path) ExtendFront(offset Point) {
	if len(p.nodes) == 0 {
		return
	}
	head := p.nodes[0].Offset(offset)
	p.nodes = append(p.nodes, Point{})
	copy(p.nodes[1:], p.nodes[:len(p.nodes)-1])
	p.nodes[0] = head
}

func (p *Path) ExtendFrontDir(dir Direction) {
	p.ExtendFront(dir.Offset())
}

// ExtendBack duplicates the last node, so the path grows by exactly one.
func (p *Path) ExtendBack() {
	if len(p.nodes) == 0 {
		return
	}
	p.nodes = append(p.nodes, p.nodes[len(p.nodes)-1])
}

// SlideFront pushes a new head in direction dir and drops the last node.
func (p *Path) SlideFront(dir Direction) {
	if len(p.nodes) == 0 {
		return
	}
	head := p.nodes[0].Add(dir)
	copy(p.nodes[1:], p.nodes[:len(p.nodes)-1])
	p.nodes[0] = head
}
