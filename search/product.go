package search

import (
	"github.com/Cameron-Kurotori/pessimist/board"
	"github.com/Cameron-Kurotori/pessimist/geom"
)

// Product enumerates every joint move, one direction per snake in board order. A snake
// without candidates yields no joint moves at all.
func Product(moves [][]geom.Direction) [][]geom.Direction {
	cProduct := [][]geom.Direction{{}}
	for _, candidates := range moves {
		next := make([][]geom.Direction, 0, len(cProduct)*len(candidates))
		for _, prefix := range cProduct {
			for _, dir := range candidates {
				joint := make([]geom.Direction, len(prefix), len(prefix)+1)
				copy(joint, prefix)
				next = append(next, append(joint, dir))
			}
		}
		cProduct = next
	}
	return cProduct
}

// Deaths plays dir for Snakes[0] against every legal reply of the other snakes and
// returns how many of those joint moves kill it, out of how many were tried.
func Deaths(b *board.Board, dir geom.Direction, hazards geom.PointSet) (deathStates int, totalStates int) {
	if len(b.Snakes) == 0 {
		return 0, 0
	}
	moves := b.AllMoves()
	moves[0] = []geom.Direction{dir}
	for _, joint := range Product(moves) {
		next := b.Clone()
		if _, dead := next.Advance(joint, hazards)[0]; dead {
			deathStates++
		}
		totalStates++
	}
	return deathStates, totalStates
}
