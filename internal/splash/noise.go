package splash

import (
	"math"
	"math/rand"

	"glitchsplash/internal/render"
)

// Particle is one glyph of ambient background static. Unlike art cells,
// particles never resolve to anything: they fade through the glyph tiers
// and are discarded when their life runs out.
type Particle struct {
	Row, Col  int
	Life      int
	TotalLife int
	Glyph     rune
}

// Fade reports remaining life as a fraction in [0, 1].
func (p *Particle) Fade() float64 {
	if p.TotalLife <= 0 {
		return 0
	}
	f := float64(p.Life) / float64(p.TotalLife)
	if f < 0 {
		return 0
	}
	return f
}

// Tick burns one tick of life, re-rolls the glyph from the current fade
// tier, and reports whether the particle has expired.
func (p *Particle) Tick(rng *rand.Rand) bool {
	p.Life--
	if p.Life <= 0 {
		return true
	}
	p.Glyph = PoolFor(p.Fade()).Pick(rng)
	return false
}

// DisplayColor eases the particle from the background color toward the
// ambient glitch color as a function of remaining life. sharp switches to
// sqrt(fade) easing: the particle stays vivid, then drops off steeply.
func (p *Particle) DisplayColor(background, ambient string, sharp bool) string {
	t := p.Fade()
	if sharp {
		t = math.Sqrt(t)
	}
	return render.Lerp(background, ambient, t)
}

// spawnNoise seeds the scene's particle field: count is the viewport area
// scaled by the fill fraction, positions are random cells that never overlap
// art. Placement retries a bounded number of times per particle so a
// viewport saturated with art degrades to less noise instead of spinning.
func spawnNoise(spec SceneSpec, w, h int, art map[Pos]struct{}, rng *rand.Rand) []*Particle {
	if w <= 0 || h <= 0 || spec.NoiseFill <= 0 {
		return nil
	}
	count := int(float64(w*h) * spec.NoiseFill)
	particles := make([]*Particle, 0, count)
	for i := 0; i < count; i++ {
		var pos Pos
		found := false
		for attempt := 0; attempt < 10; attempt++ {
			pos = Pos{Row: rng.Intn(h), Col: rng.Intn(w)}
			if _, onArt := art[pos]; !onArt {
				found = true
				break
			}
		}
		if !found {
			continue
		}
		life := randRange(rng, spec.NoiseLifeMin, spec.NoiseLifeMax)
		particles = append(particles, &Particle{
			Row:       pos.Row,
			Col:       pos.Col,
			Life:      life,
			TotalLife: life,
			Glyph:     PoolHeavy.Pick(rng),
		})
	}
	return particles
}
