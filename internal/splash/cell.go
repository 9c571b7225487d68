package splash

import (
	"math"
	"math/rand"

	"glitchsplash/internal/render"
)

// Cell is one glyph of the target art materializing out of noise. It runs
// through three states: a delay of pure chaos, a convergence countdown with
// decelerating glyph flicker, and finally a lock at its resolved appearance.
type Cell struct {
	Row, Col int

	FinalGlyph rune
	FinalColor string

	Delay      int // ticks of chaos before convergence starts
	TicksLeft  int
	TotalTicks int

	Glyph    rune // current display glyph, churned every tick while unresolved
	charTick int  // ticks since the last glyph swap
}

// newCell lays out one art cell with timing drawn from the scene ranges.
func newCell(row, col int, glyph rune, color string, timing Timing, rng *rand.Rand) *Cell {
	total := randRange(rng, timing.SettleMin, timing.SettleMax)
	return &Cell{
		Row:        row,
		Col:        col,
		FinalGlyph: glyph,
		FinalColor: color,
		Delay:      randRange(rng, timing.DelayMin, timing.DelayMax),
		TicksLeft:  total,
		TotalTicks: total,
		Glyph:      PoolHeavy.Pick(rng),
	}
}

// Progress reports convergence in [0, 1]. A non-positive total counts as
// already converged.
func (c *Cell) Progress() float64 {
	if c.TotalTicks <= 0 {
		return 1.0
	}
	return 1.0 - float64(c.TicksLeft)/float64(c.TotalTicks)
}

// Tick advances the cell one step and reports whether it just converged.
// A converged cell must be locked by the caller and never ticked again.
func (c *Cell) Tick(rng *rand.Rand) bool {
	if c.Delay > 0 {
		c.Delay--
		c.Glyph = PoolHeavy.Pick(rng)
		return false
	}

	c.TicksLeft--
	c.charTick++
	p := c.Progress()

	if p >= 0.95 {
		// Snap to the final glyph just before completion so the last
		// visible tick never flickers.
		c.Glyph = c.FinalGlyph
	} else {
		// Glyph swaps slow down as the cell stabilizes.
		changeEvery := 1
		switch {
		case p < 0.3:
			changeEvery = 1
		case p < 0.6:
			changeEvery = 2
		case p < 0.8:
			changeEvery = 3
		default:
			changeEvery = 5
		}
		if c.charTick >= changeEvery {
			c.charTick = 0
			if rng.Float64() < p*0.85 {
				c.Glyph = c.FinalGlyph
			} else {
				c.Glyph = PoolHeavy.Pick(rng)
			}
		}
	}

	return c.TicksLeft <= 0
}

// DisplayColor resolves the cell's on-screen color for this tick. Delayed
// cells show the shared ambient glitch color; converging cells ease from
// ambient toward their final color, with the hue arriving later than the
// glyph (progress^1.5 keeps color chaotic longer, then accelerates).
func (c *Cell) DisplayColor(ambient string) string {
	if c.Delay > 0 {
		return ambient
	}
	return render.Lerp(ambient, c.FinalColor, math.Pow(c.Progress(), 1.5))
}

// LockedCell is the immutable record of a converged cell.
type LockedCell struct {
	Glyph rune
	Color string
}

// Locked returns the cell's final, immutable appearance.
func (c *Cell) Locked() LockedCell {
	return LockedCell{Glyph: c.FinalGlyph, Color: c.FinalColor}
}
