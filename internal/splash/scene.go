package splash

import (
	"math/rand"
	"time"

	"github.com/mattn/go-runewidth"

	"glitchsplash/internal/render"
)

// Pos is a (row, col) grid position.
type Pos struct {
	Row, Col int
}

// Art describes the target picture: its lines, the color cells resolve to,
// and an optional per-cell override for multi-colored art. Blank runes in
// Lines are not art; the background stays visible through them.
type Art struct {
	Lines    []string
	Color    string
	ColorFor func(row, col int, glyph rune) string // nil → Color for every cell
}

// Timing holds the inclusive per-cell randomization ranges. Drawing each
// cell's delay and settle independently staggers convergence so the art
// materializes unevenly instead of in lockstep.
type Timing struct {
	DelayMin, DelayMax   int
	SettleMin, SettleMax int
}

// SceneSpec is a declarative scene preset: art descriptor, timing ranges,
// palette, noise field tuning, and phase budgets. New scenes are new spec
// values, not new code paths.
type SceneSpec struct {
	Name string

	Art    Art
	Timing Timing

	Background string
	Ambient    render.Palette // glitch color cycle indexed by the animation clock

	Prompt      string // overlay shown while holding; empty for none
	PromptColor string

	NoiseFill      float64 // fraction of the viewport seeded as particles
	NoiseLifeMin   int
	NoiseLifeMax   int
	NoiseSharpFade bool // sqrt easing: vivid until late, then a steep drop

	FloodTicks   int // noise-only intro; 0 skips the phase entirely
	HoldTicks    int // settled display before auto-finish
	TickInterval time.Duration
}

// Phase is one stage of the scene choreography. A phase exits either when
// its Done predicate reports true or, with a nil predicate, after Budget
// ticks; a phase with neither exits on its first tick. Phases advance
// strictly forward and are never re-entered.
type Phase struct {
	Name   string
	Budget int
	Done   func(*Scene) bool
	Enter  func(*Scene)
	Update func(*Scene)
}

const (
	phaseFlood  = "flood"
	phaseReveal = "reveal"
	phaseHold   = "hold"
)

// Scene owns every animation entity for one splash run. It is mutated only
// by Tick and the key handlers, and renders to a fresh frame each tick.
type Scene struct {
	spec SceneSpec
	rng  *rand.Rand
	w, h int

	phases    []Phase
	phaseIdx  int
	clock     int // monotonic animation clock, never reset
	phaseTick int // reset at every phase transition

	cells     map[Pos]*Cell
	locked    map[Pos]LockedCell
	artPos    map[Pos]struct{}
	particles []*Particle

	artTop    int
	artHeight int

	done bool
}

// NewScene lays out the art centered in a width×height viewport, seeds the
// noise field, and builds the phase table. The caller supplies the RNG so a
// fixed seed replays the identical animation.
func NewScene(spec SceneSpec, width, height int, rng *rand.Rand) *Scene {
	s := &Scene{
		spec:   spec,
		rng:    rng,
		w:      width,
		h:      height,
		cells:  make(map[Pos]*Cell),
		locked: make(map[Pos]LockedCell),
		artPos: make(map[Pos]struct{}),
	}

	s.layoutArt()
	s.particles = spawnNoise(spec, width, height, s.artPos, rng)

	if spec.FloodTicks > 0 {
		s.phases = append(s.phases, Phase{
			Name:   phaseFlood,
			Budget: spec.FloodTicks,
			Update: (*Scene).tickNoise,
		})
	}
	s.phases = append(s.phases,
		Phase{
			Name:   phaseReveal,
			Done:   (*Scene).revealDone,
			Update: (*Scene).tickReveal,
		},
		Phase{
			Name:   phaseHold,
			Budget: spec.HoldTicks,
			Enter:  (*Scene).dropNoise,
		},
	)
	return s
}

// layoutArt centers the art in the viewport and creates one cell per
// non-blank glyph. Art larger than the viewport is clamped to the top-left;
// off-grid cells are still animated and simply never drawn.
func (s *Scene) layoutArt() {
	artH := len(s.spec.Art.Lines)
	artW := 0
	for _, line := range s.spec.Art.Lines {
		if n := len([]rune(line)); n > artW {
			artW = n
		}
	}
	offR := (s.h - artH) / 2
	if offR < 0 {
		offR = 0
	}
	offC := (s.w - artW) / 2
	if offC < 0 {
		offC = 0
	}
	s.artTop = offR
	s.artHeight = artH

	for r, line := range s.spec.Art.Lines {
		for c, glyph := range []rune(line) {
			if glyph == ' ' {
				continue
			}
			color := s.spec.Art.Color
			if s.spec.Art.ColorFor != nil {
				color = s.spec.Art.ColorFor(r, c, glyph)
			}
			pos := Pos{Row: r + offR, Col: c + offC}
			s.cells[pos] = newCell(pos.Row, pos.Col, glyph, color, s.spec.Timing, s.rng)
			s.artPos[pos] = struct{}{}
		}
	}
}

// Tick advances the scene by one step: bump the clocks, run the current
// phase's update, then check its exit condition.
func (s *Scene) Tick() {
	if s.done {
		return
	}
	s.clock++
	s.phaseTick++

	ph := &s.phases[s.phaseIdx]
	if ph.Update != nil {
		ph.Update(s)
	}
	if s.done {
		return
	}

	exit := false
	switch {
	case ph.Done != nil:
		exit = ph.Done(s)
	case ph.Budget > 0:
		exit = s.phaseTick >= ph.Budget
	default:
		// No predicate and no budget: the phase has no way to end on
		// its own, so it ends at once. Forward progress is guaranteed
		// even for a zero hold budget.
		exit = true
	}
	if exit {
		s.advance()
	}
}

// advance moves to the next phase, or finishes after the last one.
func (s *Scene) advance() {
	s.phaseIdx++
	s.phaseTick = 0
	if s.phaseIdx >= len(s.phases) {
		s.phaseIdx = len(s.phases) - 1
		s.Finish()
		return
	}
	if enter := s.phases[s.phaseIdx].Enter; enter != nil {
		enter(s)
	}
}

// jumpTo fast-forwards to the named phase. Only forward jumps exist; if the
// phase isn't ahead of us the scene finishes instead.
func (s *Scene) jumpTo(name string) {
	for i := s.phaseIdx; i < len(s.phases); i++ {
		if s.phases[i].Name == name {
			s.phaseIdx = i
			s.phaseTick = 0
			if enter := s.phases[i].Enter; enter != nil {
				enter(s)
			}
			return
		}
	}
	s.Finish()
}

// tickReveal advances noise and every in-flight cell, locking the ones that
// converged this tick.
func (s *Scene) tickReveal() {
	s.tickNoise()

	var lockedNow []Pos
	for pos, c := range s.cells {
		if c.Tick(s.rng) {
			lockedNow = append(lockedNow, pos)
		}
	}
	for _, pos := range lockedNow {
		s.locked[pos] = s.cells[pos].Locked()
		delete(s.cells, pos)
	}

	// Noise never outlasts art: the moment the last cell locks, any
	// surviving particles are dropped so the held frame is clean.
	if len(s.cells) == 0 {
		s.particles = nil
	}
}

func (s *Scene) revealDone() bool {
	return len(s.cells) == 0 && len(s.particles) == 0
}

// tickNoise ages the particle field, discarding expired particles in place.
func (s *Scene) tickNoise() {
	alive := s.particles[:0]
	for _, p := range s.particles {
		if !p.Tick(s.rng) {
			alive = append(alive, p)
		}
	}
	s.particles = alive
}

func (s *Scene) dropNoise() {
	s.particles = nil
}

// HandleKey implements the skip semantics: any key during hold finishes the
// scene, any key earlier fast-forwards the animation to its settled state.
func (s *Scene) HandleKey() {
	if s.done {
		return
	}
	if s.Holding() {
		s.Finish()
		return
	}
	s.Skip()
}

// Skip force-completes every in-flight cell at its final appearance, drops
// all noise, and jumps straight to the hold phase.
func (s *Scene) Skip() {
	if s.done || s.Holding() {
		return
	}
	for pos, c := range s.cells {
		s.locked[pos] = c.Locked()
	}
	s.cells = make(map[Pos]*Cell)
	s.particles = nil
	s.jumpTo(phaseHold)
}

// Finish terminates the scene and clears every animation collection. It is
// idempotent: a tick racing a keypress can call it twice harmlessly.
func (s *Scene) Finish() {
	if s.done {
		return
	}
	s.done = true
	s.cells = make(map[Pos]*Cell)
	s.locked = make(map[Pos]LockedCell)
	s.particles = nil
}

// Done reports whether the scene has finished.
func (s *Scene) Done() bool { return s.done }

// Holding reports whether the scene is in its settled pre-dismiss phase.
func (s *Scene) Holding() bool {
	return !s.done && s.phases[s.phaseIdx].Name == phaseHold
}

// Phase returns the current phase name.
func (s *Scene) Phase() string { return s.phases[s.phaseIdx].Name }

// Clock returns the monotonic animation clock.
func (s *Scene) Clock() int { return s.clock }

// Render composes the current state into a frame: background, then noise,
// then locked art, then in-flight art, then the hold prompt. A finished
// scene renders the clean terminating frame.
func (s *Scene) Render() *render.Frame {
	f := render.NewFrame(s.w, s.h, s.spec.Background)
	if s.done {
		return f
	}

	ambient := s.spec.Ambient.At(s.clock)

	// During the flood intro the static brightens from black to full.
	brightness := 1.0
	if ph := s.phases[s.phaseIdx]; ph.Name == phaseFlood && ph.Budget > 0 {
		brightness = float64(s.phaseTick) / float64(ph.Budget)
	}

	for _, p := range s.particles {
		local := s.spec.Ambient.At(s.clock + p.Row + p.Col)
		color := p.DisplayColor(s.spec.Background, local, s.spec.NoiseSharpFade)
		f.Set(p.Row, p.Col, p.Glyph, render.Shade(color, brightness))
	}

	for pos, lc := range s.locked {
		f.Set(pos.Row, pos.Col, lc.Glyph, lc.Color)
	}

	for pos, c := range s.cells {
		f.Set(pos.Row, pos.Col, c.Glyph, c.DisplayColor(ambient))
	}

	if s.Holding() && s.spec.Prompt != "" {
		row := s.artTop + s.artHeight + 2
		col := (s.w - runewidth.StringWidth(s.spec.Prompt)) / 2
		if col < 0 {
			col = 0
		}
		f.SetText(row, col, s.spec.Prompt, s.spec.PromptColor)
	}

	return f
}
