package search

import (
	"container/heap"

	"github.com/Cameron-Kurotori/pessimist/board"
	"github.com/Cameron-Kurotori/pessimist/geom"
)

// state is one node of the search. root is the first move of Snakes[0] that led here,
// nil only for the starting board.
type state struct {
	board *board.Board
	root  *geom.Direction
	depth int
	score float64
	seq   int
}

func (s *state) lethal() bool {
	return s.score < 0
}

// frontier is a max-heap on score: Pop returns the highest scoring state. Equal scores
// pop in insertion order.
type frontier []*state

func (f frontier) Len() int { return len(f) }
func (f frontier) Less(i, j int) bool {
	if f[i].score != f[j].score {
		return f[i].score > f[j].score
	}
	return f[i].seq < f[j].seq
}
func (f frontier) Swap(i, j int) { f[i], f[j] = f[j], f[i] }
func (f *frontier) Push(x any)   { *f = append(*f, x.(*state)) }
func (f *frontier) Pop() any {
	old := *f
	n := len(old) - 1
	x := old[n]
	old[n] = nil
	*f = old[:n]
	return x
}

type queue struct {
	states frontier
	pushed int
}

func (q *queue) push(s *state) {
	s.seq = q.pushed
	q.pushed++
	heap.Push(&q.states, s)
}

func (q *queue) pop() *state {
	return heap.Pop(&q.states).(*state)
}

func (q *queue) len() int {
	return q.states.Len()
}
