package board

import (
	"errors"
	"fmt"

	"github.com/Cameron-Kurotori/pessimist/geom"
)

const (
	MaxHealth = 100
	// HazardDamage is taken on top of the regular 1 per turn when ending a turn in a hazard.
	HazardDamage = 15
)

var (
	ErrEmptyBody     = errors.New("snake has no body")
	ErrInvalidHealth = errors.New("snake health out of range")
)

type Snake struct {
	ID     string
	Health int
	Body   geom.Path
}

// NewSnake validates the snapshot of a snake. Empty bodies are never defaulted.
func NewSnake(id string, health int, body []geom.Point) (Snake, error) {
	if len(body) == 0 {
		return Snake{}, fmt.Errorf("snake %q: %w", id, ErrEmptyBody)
	}
	if health < 0 || health > MaxHealth {
		return Snake{}, fmt.Errorf("snake %q health=%d: %w", id, health, ErrInvalidHealth)
	}
	return Snake{
		ID:     id,
		Health: health,
		Body:   geom.NewPath(body...),
	}, nil
}

func (s Snake) Head() geom.Point {
	return s.Body.Head()
}

func (s Snake) Neck() (geom.Point, bool) {
	return s.Body.Get(1)
}

func (s Snake) Len() int {
	return s.Body.Len()
}

// DefaultMove keeps going the way the snake is facing (head - neck), or up without a neck.
func (s Snake) DefaultMove() geom.Direction {
	neck, ok := s.Neck()
	if !ok {
		return geom.DefaultDirection
	}
	dir, ok := neck.DirectionTo(s.Head())
	if !ok {
		// stacked start-of-game body
		return geom.DefaultDirection
	}
	return dir
}

// Advance slides the body forward and burns one health.
func (s *Snake) Advance(dir geom.Direction) {
	s.Body.SlideFront(dir)
	s.Damage(1)
}

// Feed refills health and grows the snake by duplicating its tail.
func (s *Snake) Feed() {
	s.Health = MaxHealth
	s.Body.ExtendBack()
}

// Damage reduces health, never below zero.
func (s *Snake) Damage(cost int) {
	s.Health -= cost
	if s.Health < 0 {
		s.Health = 0
	}
}

func (s Snake) Alive() bool {
	return s.Health > 0
}

// CollisionIndex is the body index of the first segment on p, or -1.
func (s Snake) CollisionIndex(p geom.Point) int {
	return s.Body.Index(p)
}

func (s Snake) Clone() Snake {
	s.Body = s.Body.Clone()
	return s
}
