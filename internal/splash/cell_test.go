package splash

import (
	"math/rand"
	"testing"
)

func testRNG() *rand.Rand {
	return rand.New(rand.NewSource(1))
}

func TestRandRange(t *testing.T) {
	rng := testRNG()
	for i := 0; i < 100; i++ {
		v := randRange(rng, 3, 7)
		if v < 3 || v > 7 {
			t.Fatalf("randRange(3,7) = %d out of range", v)
		}
	}
	// Degenerate ranges act as fixed values instead of failing.
	if v := randRange(rng, 5, 5); v != 5 {
		t.Fatalf("zero-width range: got %d, want 5", v)
	}
	if v := randRange(rng, 9, 2); v != 9 {
		t.Fatalf("inverted range: got %d, want min 9", v)
	}
}

func TestPoolForTiers(t *testing.T) {
	if got := PoolFor(0.9); &got[0] != &PoolHeavy[0] {
		t.Fatal("high fade should pick the heavy pool")
	}
	if got := PoolFor(0.5); &got[0] != &PoolMedium[0] {
		t.Fatal("mid fade should pick the medium pool")
	}
	if got := PoolFor(0.1); &got[0] != &PoolSparse[0] {
		t.Fatal("low fade should pick the sparse pool")
	}
}

func TestCellProgressMonotonic(t *testing.T) {
	rng := testRNG()
	c := &Cell{FinalGlyph: '█', FinalColor: "#f5c518", TicksLeft: 30, TotalTicks: 30}
	prev := c.Progress()
	for i := 0; i < 30; i++ {
		locked := c.Tick(rng)
		p := c.Progress()
		if p < prev {
			t.Fatalf("progress regressed: %f -> %f at tick %d", prev, p, i)
		}
		prev = p
		if locked {
			if p != 1.0 {
				t.Fatalf("locked with progress %f, want exactly 1.0", p)
			}
			return
		}
	}
	t.Fatal("cell never converged within its total ticks")
}

func TestCellDelayBurnsFirst(t *testing.T) {
	rng := testRNG()
	c := &Cell{FinalGlyph: '█', FinalColor: "#f5c518", Delay: 4, TicksLeft: 10, TotalTicks: 10}
	for i := 0; i < 4; i++ {
		if c.Tick(rng) {
			t.Fatal("cell locked during delay")
		}
		if c.TicksLeft != 10 {
			t.Fatal("convergence started before delay ran out")
		}
	}
	if c.Delay != 0 {
		t.Fatalf("delay not exhausted: %d", c.Delay)
	}
	// Delayed cells show the shared ambient color, not their own blend.
	c2 := &Cell{FinalColor: "#f5c518", Delay: 1, TicksLeft: 5, TotalTicks: 5}
	if got := c2.DisplayColor("#1a3a5c"); got != "#1a3a5c" {
		t.Fatalf("delayed cell color = %s, want ambient", got)
	}
}

func TestCellSnapNearCompletion(t *testing.T) {
	rng := testRNG()
	c := &Cell{FinalGlyph: '█', FinalColor: "#f5c518", TicksLeft: 100, TotalTicks: 100}
	for !c.Tick(rng) {
		if c.Progress() >= 0.95 && c.Glyph != c.FinalGlyph {
			t.Fatalf("glyph not snapped at progress %f", c.Progress())
		}
	}
	if c.Glyph != c.FinalGlyph {
		t.Fatal("locked cell must display its final glyph")
	}
}

// A cell with no delay and a two-tick settle: halfway after one tick,
// locked at its final glyph after two.
func TestCellTwoTickScenario(t *testing.T) {
	rng := testRNG()
	c := &Cell{Row: 1, Col: 1, FinalGlyph: '█', FinalColor: "#f5c518", TicksLeft: 2, TotalTicks: 2, Glyph: '▓'}

	if locked := c.Tick(rng); locked {
		t.Fatal("locked after one of two ticks")
	}
	if c.Progress() != 0.5 {
		t.Fatalf("progress after tick 1 = %f, want 0.5", c.Progress())
	}
	if c.Glyph == ' ' || c.Glyph == 0 {
		t.Fatal("mid-flight glyph must never be blank")
	}

	if locked := c.Tick(rng); !locked {
		t.Fatal("not locked after two ticks")
	}
	if c.Progress() != 1.0 {
		t.Fatalf("progress at lock = %f, want 1.0", c.Progress())
	}
	if c.Glyph != '█' {
		t.Fatalf("glyph at lock = %q, want final", c.Glyph)
	}
}

func TestCellZeroTotalCountsAsConverged(t *testing.T) {
	c := &Cell{TotalTicks: 0}
	if c.Progress() != 1.0 {
		t.Fatalf("zero-total progress = %f, want 1.0", c.Progress())
	}
}

func TestCellColorConvergence(t *testing.T) {
	rng := testRNG()
	c := &Cell{FinalGlyph: '█', FinalColor: "#f5c518", TicksLeft: 20, TotalTicks: 20}
	for !c.Tick(rng) {
	}
	if got := c.DisplayColor("#1a3a5c"); got != "#f5c518" {
		t.Fatalf("color at full progress = %s, want final", got)
	}
}

func TestDeterministicWithFixedSeed(t *testing.T) {
	run := func() []rune {
		rng := rand.New(rand.NewSource(99))
		c := &Cell{FinalGlyph: '█', FinalColor: "#f5c518", Delay: 3, TicksLeft: 25, TotalTicks: 25}
		var glyphs []rune
		for !c.Tick(rng) {
			glyphs = append(glyphs, c.Glyph)
		}
		return glyphs
	}
	a, b := run(), run()
	if len(a) != len(b) {
		t.Fatalf("lengths differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("glyph sequence diverged at tick %d", i)
		}
	}
}
