package heuristic

import (
	"fmt"
	"math"

	"github.com/Cameron-Kurotori/pessimist/astar"
	"github.com/Cameron-Kurotori/pessimist/board"
	"github.com/Cameron-Kurotori/pessimist/escape"
	"github.com/Cameron-Kurotori/pessimist/geom"
	"github.com/Cameron-Kurotori/pessimist/grid"
)

const (
	// SoloScore is returned once every opponent is gone.
	SoloScore = 2.0
	// TrappedFactor is applied when the head cannot reach as many cells as the body is long.
	TrappedFactor = 0.05
	// foodDensity scales the food factor when no food is owned.
	foodDensity = 0.15
	// headToHeadRange is the manhattan distance under which a longer head is a threat.
	headToHeadRange = 2
)

// Breakdown holds the factors of a board evaluation, each within [0,1].
type Breakdown struct {
	Solo       bool
	Area       float64
	Food       float64
	HeadToHead float64
	Length     float64
	Health     float64
	Proximity  float64
	Escape     float64
}

// Total multiplies the factors so any single bad one drags the score down.
func (b Breakdown) Total() float64 {
	if b.Solo {
		return SoloScore
	}
	return b.Area * b.Food * b.HeadToHead * b.Length * b.Health * b.Proximity * b.Escape
}

func (b Breakdown) String() string {
	if b.Solo {
		return fmt.Sprintf("solo=%.1f", SoloScore)
	}
	return fmt.Sprintf("area=%.4f food=%.4f h2h=%.4f len=%.4f hp=%.4f prox=%.4f escape=%.2f total=%.6f",
		b.Area, b.Food, b.HeadToHead, b.Length, b.Health, b.Proximity, b.Escape, b.Total())
}

// Score is Evaluate(...).Total().
func Score(b *board.Board, self int, hazards geom.PointSet) float64 {
	return Evaluate(b, self, hazards).Total()
}

// Evaluate rates b from the point of view of Snakes[self].
func Evaluate(b *board.Board, self int, hazards geom.PointSet) Breakdown {
	if self < 0 || self >= len(b.Snakes) {
		return Breakdown{}
	}
	n := len(b.Snakes)
	if n == 1 {
		return Breakdown{Solo: true}
	}

	me := b.Snakes[self]
	head := me.Head()
	g := grid.Build(b, hazards, self)
	territories := Territories(g, b)

	totalArea := 0
	for _, t := range territories {
		totalArea += t.Cells
	}
	if totalArea < 1 {
		totalArea = 1
	}

	return Breakdown{
		Area:       float64(territories[self].Cells) / float64(totalArea),
		Food:       foodFactor(g, me, territories[self], n, totalArea),
		HeadToHead: headToHeadFactor(b, self),
		Length:     lengthFactor(b, self),
		Health:     float64(me.Health) / board.MaxHealth,
		Proximity:  proximityFactor(b, self),
		Escape:     escapeFactor(g, head, me.Len()),
	}
}

func foodFactor(g *grid.Grid, me board.Snake, t Territory, n, totalArea int) float64 {
	hp := float64(me.Health)
	if me.Health <= 0 {
		return 0
	}
	if t.HasFood {
		if res, ok := astar.Find(g, me.Head(), t.Food, me.Health, astar.DefaultOptions); ok {
			return math.Max(0, (hp-float64(res.Cost))/hp)
		}
	}
	return math.Min(1, foodDensity*hp*float64(n)/float64(totalArea))
}

// headToHeadFactor is the share of opponents that are shorter or out of reach.
func headToHeadFactor(b *board.Board, self int) float64 {
	me := b.Snakes[self]
	safe := 0
	for i, other := range b.Snakes {
		if i == self {
			continue
		}
		if other.Len() < me.Len() || me.Head().Manhattan(other.Head()) > headToHeadRange {
			safe++
		}
	}
	return float64(safe) / float64(len(b.Snakes)-1)
}

func lengthFactor(b *board.Board, self int) float64 {
	ratio := float64(b.Snakes[self].Len()) / float64(b.TotalLength())
	return ratio * ratio
}

// proximityFactor grows with the distance to opponents at least as long as self and
// shrinks with the distance to shorter ones. Both sums start at one so that a board
// without any shorter (or longer) opponent still scores above zero.
func proximityFactor(b *board.Board, self int) float64 {
	me := b.Snakes[self]
	bigger, smaller := 1.0, 1.0
	for i, other := range b.Snakes {
		if i == self {
			continue
		}
		d := float64(me.Head().Manhattan(other.Head()))
		if other.Len() < me.Len() {
			smaller += d
		} else {
			bigger += d
		}
	}
	share := bigger / (bigger + smaller)
	return share * share
}

func escapeFactor(g *grid.Grid, head geom.Point, length int) float64 {
	if escape.HasEscape(head, g, length) {
		return 1
	}
	return TrappedFactor
}
