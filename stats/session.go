package stats

import (
	"fmt"
	"sync"
	"time"
)

type running struct {
	turns   int
	started time.Time
}

// Session tracks the games played by one server process. It is safe for concurrent use.
type Session struct {
	mu      sync.Mutex
	timeout time.Duration

	games      int
	wins       int
	totalTurns int
	running    map[string]running
}

// New creates a session whose running games are dropped as losses once they are older
// than timeout. A zero timeout keeps them forever.
func New(timeout time.Duration) *Session {
	return &Session{
		timeout: timeout,
		running: map[string]running{},
	}
}

func (s *Session) Start(id string, now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.running[id] = running{started: now}
}

// Update records the latest turn seen for a running game. Unknown games are ignored.
func (s *Session) Update(id string, turn int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if g, ok := s.running[id]; ok {
		g.turns = turn
		s.running[id] = g
	}
}

// End moves a running game into the totals and reports whether it was running.
func (s *Session) End(id string, won bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.end(id, won)
}

func (s *Session) end(id string, won bool) bool {
	g, ok := s.running[id]
	if !ok {
		return false
	}
	delete(s.running, id)
	s.games++
	s.totalTurns += g.turns
	if won {
		s.wins++
	}
	return true
}

// Collect ends, as losses, the games started more than timeout before now. It returns
// how many were collected.
func (s *Session) Collect(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.timeout <= 0 {
		return 0
	}
	var stale []string
	for id, g := range s.running {
		if now.Sub(g.started) > s.timeout {
			stale = append(stale, id)
		}
	}
	for _, id := range stale {
		s.end(id, false)
	}
	return len(stale)
}

type Summary struct {
	Games        int     `json:"games"`
	Wins         int     `json:"wins"`
	WinRatio     float64 `json:"win_ratio"`
	AverageTurns int     `json:"average_turns"`
	Running      int     `json:"running"`
}

func (s *Session) Summary() Summary {
	s.mu.Lock()
	defer s.mu.Unlock()
	games := s.games
	if games == 0 {
		games = 1
	}
	return Summary{
		Games:        s.games,
		Wins:         s.wins,
		WinRatio:     float64(s.wins) / float64(games),
		AverageTurns: s.totalTurns / games,
		Running:      len(s.running),
	}
}

func (s Summary) String() string {
	return fmt.Sprintf("Games %d, Wins %d, Win ratio %.2f%%, Average Turns %d. In progress %d games.",
		s.Games, s.Wins, s.WinRatio*100, s.AverageTurns, s.Running)
}
