package splash

import "math/rand"

// Pool is a tier of noise glyphs used while a position is unresolved.
type Pool []rune

// Glyph tiers, heaviest to sparsest. Dissipating noise walks down the
// tiers so static appears to cool off before it vanishes. None of the
// pools contain a blank: an unresolved position is always visibly lit.
var (
	PoolHeavy  = Pool([]rune("▓▒░╬╫╪┼╳※▪◆▄▀█@#$%&"))
	PoolMedium = Pool([]rune("▒░╪┼▪*+=%~"))
	PoolSparse = Pool([]rune("·∙:'`.,"))
)

// Pick returns a uniformly random glyph from the pool.
func (p Pool) Pick(rng *rand.Rand) rune {
	if len(p) == 0 {
		return ' '
	}
	return p[rng.Intn(len(p))]
}

// PoolFor selects the glyph tier for a remaining-life fraction in [0, 1].
func PoolFor(fade float64) Pool {
	switch {
	case fade > 0.66:
		return PoolHeavy
	case fade > 0.33:
		return PoolMedium
	default:
		return PoolSparse
	}
}

// randRange draws an integer from the inclusive range [min, max].
// An inverted or zero-width range acts as the fixed value min.
func randRange(rng *rand.Rand, min, max int) int {
	if max <= min {
		return min
	}
	return min + rng.Intn(max-min+1)
}
