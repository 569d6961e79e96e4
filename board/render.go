package board

import (
	"fmt"
	"strings"

	"github.com/Cameron-Kurotori/pessimist/geom"
)

var snakeGlyphs = []rune{'■', '⌀', '●', '⍟', '◘', '☺', '□', '☻'}

const (
	emptyGlyph  = '◦'
	foodGlyph   = '⚕'
	hazardGlyph = '░'
	otherGlyph  = 'S'
)

// Render draws the board top row first, one glyph per cell, followed by a legend line
// per snake. Heads are drawn in upper case letters A, B, ... matching the legend.
func (b *Board) Render(hazards geom.PointSet) string {
	w, h := b.Width(), b.Height()
	if w <= 0 || h <= 0 {
		return ""
	}
	cells := make([]rune, w*h)
	for i := range cells {
		cells[i] = emptyGlyph
	}
	set := func(p geom.Point, r rune) {
		if b.InBounds(p) {
			cells[p.Y*w+p.X] = r
		}
	}
	for p := range hazards {
		set(p, hazardGlyph)
	}
	for _, f := range b.Food {
		set(f, foodGlyph)
	}
	for i, s := range b.Snakes {
		glyph := otherGlyph
		if i < len(snakeGlyphs) {
			glyph = snakeGlyphs[i]
		}
		for _, p := range s.Body.Points() {
			set(p, glyph)
		}
		set(s.Head(), rune('A'+i%26))
	}

	var sb strings.Builder
	for i, s := range b.Snakes {
		fmt.Fprintf(&sb, "[ %3d | %c ] %s len=%d\n", s.Health, rune('A'+i%26), s.ID, s.Len())
	}
	for y := h - 1; y >= 0; y-- {
		sb.WriteString(string(cells[y*w : (y+1)*w]))
		sb.WriteByte('\n')
	}
	return sb.String()
}

func (b *Board) String() string {
	return b.Render(nil)
}
