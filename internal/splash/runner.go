package splash

import (
	"math/rand"
	"time"

	"github.com/gdamore/tcell/v2"
)

// Runner drives one scene on a tcell screen: it owns the tick source,
// forwards key presses to the scene, and signals completion exactly once.
// The host owns the screen itself and tears it down after Run returns.
type Runner struct {
	screen tcell.Screen
	spec   SceneSpec
	seed   int64
	skip   bool
	done   func()

	scene    *Scene
	finished bool
}

// NewRunner creates a runner for the given screen and scene preset. seed
// fixes the animation's random sequence (0 means derive from the clock);
// skip bypasses the animation entirely. done may be nil; when set it is
// invoked exactly once, after the terminating frame has been painted.
func NewRunner(screen tcell.Screen, spec SceneSpec, seed int64, skip bool, done func()) *Runner {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Runner{
		screen: screen,
		spec:   spec,
		seed:   seed,
		skip:   skip,
		done:   done,
	}
}

// Run blocks until the splash completes or is dismissed. With skip set it
// renders nothing and signals completion immediately.
func (r *Runner) Run() {
	if r.skip {
		r.finish()
		return
	}

	w, h := r.screen.Size()
	r.scene = NewScene(r.spec, w, h, rand.New(rand.NewSource(r.seed)))

	// Async input reader, same shape as a game session loop: PollEvent
	// returns nil once the screen is finalized, closing the channel. The
	// send also selects against quit so a client flooding input after the
	// splash completes can't wedge the reader on a full channel.
	events := make(chan tcell.Event, 16)
	quit := make(chan struct{})
	defer close(quit)
	go func() {
		for {
			ev := r.screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			select {
			case events <- ev:
			case <-quit:
				return
			}
		}
	}()

	interval := r.spec.TickInterval
	if interval <= 0 {
		interval = 60 * time.Millisecond
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for !r.scene.Done() {
		select {
		case <-ticker.C:
			r.scene.Tick()
			if r.scene.Done() {
				break
			}
			r.scene.Render().Draw(r.screen)
			r.screen.Show()
		case ev, ok := <-events:
			if !ok {
				// Screen torn down under us; stop without a final frame.
				r.scene.Finish()
				r.finished = true
				return
			}
			switch ev.(type) {
			case *tcell.EventResize:
				r.screen.Sync()
			case *tcell.EventKey:
				r.scene.HandleKey()
				if !r.scene.Done() {
					r.scene.Render().Draw(r.screen)
					r.screen.Show()
				}
			}
		}
	}

	r.finish()
}

// finish paints the clean terminating frame and signals completion. It is
// idempotent: the second and later calls are no-ops.
func (r *Runner) finish() {
	if r.finished {
		return
	}
	r.finished = true

	if r.scene != nil {
		r.scene.Finish()
		// One blank frame overwrites any residual glyphs before the host
		// takes the terminal back.
		r.scene.Render().Draw(r.screen)
		r.screen.Show()
	}

	if r.done != nil {
		r.done()
	}
}
