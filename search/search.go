package search

import (
	"context"
	"fmt"
	"math"
	"runtime"
	"sync"
	"time"

	"github.com/Cameron-Kurotori/pessimist/board"
	"github.com/Cameron-Kurotori/pessimist/geom"
	"github.com/Cameron-Kurotori/pessimist/heuristic"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"golang.org/x/sync/errgroup"
)

// Scores of branches where Snakes[0] died. All of them sort below any survivable branch.
const (
	CollisionScore   = -1.0
	HeadToHeadScore  = -2.0
	OutOfHealthScore = -3.0
)

func deathScore(cause board.CauseOfDeath) float64 {
	switch cause {
	case board.HeadToHead:
		return HeadToHeadScore
	case board.OutOfHealth:
		return OutOfHealthScore
	default:
		return CollisionScore
	}
}

type Config struct {
	// Budget is checked once per expansion, an expansion in flight always completes.
	Budget  time.Duration
	Workers int
}

// Outcome counts the joint moves tried for one move of Snakes[0] and how many killed it.
type Outcome struct {
	Deaths int
	Total  int
}

type Decision struct {
	Move  geom.Direction
	Score float64
	Depth int
	// Explored counts simulated joint moves, Expansions the states they came from.
	Explored   int
	Expansions int
	Elapsed    time.Duration
	Shout      string
	// Root holds the outcomes of the first ply, indexed by Direction.Index.
	Root [4]Outcome
}

// slot keeps the worst survivable branch for one move of Snakes[0], or the worst
// lethal one while nothing survived.
type slot struct {
	mu      sync.Mutex
	best    *state
	outcome Outcome
}

func (s *slot) offer(child *state) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.outcome.Total++
	if child.lethal() {
		s.outcome.Deaths++
	}
	switch {
	case s.best == nil:
		s.best = child
	case child.lethal():
		if s.best.lethal() && child.score < s.best.score {
			s.best = child
		}
	case s.best.lethal() || child.score < s.best.score:
		s.best = child
	}
}

// Decide searches joint moves best first until the budget runs out or ctx is done, and
// returns the first move of the last state taken off the frontier. A branch scores the
// minimum heuristic seen along its path. Decide never fails: without anything better it
// returns the default move of Snakes[0].
func Decide(ctx context.Context, logger log.Logger, b *board.Board, hazards geom.PointSet, cfg Config) Decision {
	start := time.Now()
	if logger == nil {
		logger = log.NewNopLogger()
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	decision := Decision{Move: geom.DefaultDirection}
	if b == nil || len(b.Snakes) == 0 {
		decision.Elapsed = time.Since(start)
		return decision
	}
	decision.Move = b.Snakes[0].DefaultMove()

	q := &queue{}
	q.push(&state{board: b.Clone(), score: 1})
	survived := false
	for q.len() > 0 {
		curr := q.pop()
		if curr.root != nil && (!curr.lethal() || !survived) {
			decision.Move = *curr.root
			decision.Score = curr.score
			decision.Depth = curr.depth
			survived = survived || !curr.lethal()
		}

		if time.Since(start) >= cfg.Budget {
			level.Debug(logger).Log("msg", "time budget ran out", "explored", decision.Explored, "depth", curr.depth)
			break
		}
		if err := ctx.Err(); err != nil {
			level.Debug(logger).Log("msg", "search cancelled", "err", err, "explored", decision.Explored)
			break
		}
		if curr.lethal() {
			continue
		}

		slots := expand(curr, hazards, workers)
		decision.Expansions++
		for i := range slots {
			s := &slots[i]
			decision.Explored += s.outcome.Total
			if curr.depth == 0 {
				decision.Root[i] = s.outcome
			}
			if s.best != nil {
				q.push(s.best)
			}
		}
	}

	decision.Elapsed = time.Since(start)
	decision.Shout = fmt.Sprintf("depth %d, %d boards", decision.Depth, decision.Explored)
	level.Debug(logger).Log(
		"msg", "decided",
		"move", decision.Move,
		"score", decision.Score,
		"depth", decision.Depth,
		"explored", decision.Explored,
		"expansions", decision.Expansions,
		"elapsed_ms", decision.Elapsed.Milliseconds(),
	)
	return decision
}

// expand simulates every joint move from parent on a bounded pool and reduces the
// results into one slot per move of Snakes[0].
func expand(parent *state, hazards geom.PointSet, workers int) *[4]slot {
	slots := new([4]slot)
	var g errgroup.Group
	g.SetLimit(workers)
	for _, joint := range Product(parent.board.AllMoves()) {
		joint := joint
		g.Go(func() error {
			slots[joint[0].Index()].offer(advance(parent, joint, hazards))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		// advance has no failure path
		panic(err)
	}
	return slots
}

func advance(parent *state, joint []geom.Direction, hazards geom.PointSet) *state {
	next := parent.board.Clone()
	dead := next.Advance(joint, hazards)
	root := parent.root
	if root == nil {
		dir := joint[0]
		root = &dir
	}
	child := &state{board: next, root: root, depth: parent.depth + 1}
	if cause, ok := dead[0]; ok {
		child.score = deathScore(cause)
		return child
	}
	child.score = math.Min(parent.score, heuristic.Score(next, 0, hazards))
	return child
}
