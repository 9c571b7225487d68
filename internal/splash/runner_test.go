package splash

import (
	"runtime"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
)

func newSimScreen(t *testing.T, w, h int) tcell.Screen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	screen.SetSize(w, h)
	if err := screen.Init(); err != nil {
		t.Fatalf("init sim screen: %v", err)
	}
	return screen
}

func TestRunnerSkipFlagSignalsWithoutFrames(t *testing.T) {
	screen := newSimScreen(t, 20, 10)
	defer screen.Fini()

	completions := 0
	r := NewRunner(screen, tinySpec(), 7, true, func() { completions++ })

	done := make(chan struct{})
	go func() {
		r.Run()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("skip run did not return promptly")
	}
	if completions != 1 {
		t.Fatalf("completions = %d, want 1", completions)
	}
	if r.scene != nil {
		t.Fatal("skip run should never build a scene")
	}
}

func TestRunnerCompletesWithoutInput(t *testing.T) {
	screen := newSimScreen(t, 20, 10)
	defer screen.Fini()

	completions := 0
	r := NewRunner(screen, tinySpec(), 7, false, func() { completions++ })

	done := make(chan struct{})
	go func() {
		r.Run()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("runner did not auto-complete")
	}
	if completions != 1 {
		t.Fatalf("completions = %d, want 1", completions)
	}

	// The terminating frame is blank: no residual glyphs anywhere.
	screen.Show()
	w, h := screen.Size()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if mainc, _, _, _ := screen.GetContent(x, y); mainc != ' ' {
				t.Fatalf("residual glyph %q at (%d,%d)", mainc, x, y)
			}
		}
	}
}

func TestRunnerKeypressDismisses(t *testing.T) {
	spec := tinySpec()
	spec.HoldTicks = 10_000 // would hold forever without input
	screen := newSimScreen(t, 20, 10)
	defer screen.Fini()

	completions := 0
	r := NewRunner(screen, spec, 7, false, func() { completions++ })

	done := make(chan struct{})
	go func() {
		r.Run()
		close(done)
	}()

	// First key skips to hold, second dismisses.
	sim := screen.(tcell.SimulationScreen)
	time.Sleep(20 * time.Millisecond)
	sim.InjectKey(tcell.KeyRune, ' ', tcell.ModNone)
	time.Sleep(20 * time.Millisecond)
	sim.InjectKey(tcell.KeyRune, ' ', tcell.ModNone)

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("runner did not dismiss on keypress")
	}
	if completions != 1 {
		t.Fatalf("completions = %d, want 1", completions)
	}
}

func TestRunnerEventFloodDoesNotLeakReader(t *testing.T) {
	spec := tinySpec()
	spec.HoldTicks = 10_000
	screen := newSimScreen(t, 20, 10)

	baseline := runtime.NumGoroutine()
	r := NewRunner(screen, spec, 7, false, nil)

	done := make(chan struct{})
	go func() {
		r.Run()
		close(done)
	}()

	// Two keys end the splash; the rest pile up behind the 16-slot
	// event channel after Run has stopped draining it. Inject from a
	// goroutine: once nothing drains the sim screen's internal queue,
	// InjectKey blocks until Fini, which runs after the splash ends.
	sim := screen.(tcell.SimulationScreen)
	time.Sleep(20 * time.Millisecond)
	go func() {
		for i := 0; i < 40; i++ {
			sim.InjectKey(tcell.KeyRune, ' ', tcell.ModNone)
		}
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("runner did not dismiss under event flood")
	}

	// Once the screen goes away the reader must exit instead of blocking
	// forever on its send.
	screen.Fini()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if runtime.NumGoroutine() <= baseline {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("event reader leaked: %d goroutines, baseline %d", runtime.NumGoroutine(), baseline)
}

func TestRunnerFinishIdempotent(t *testing.T) {
	screen := newSimScreen(t, 20, 10)
	defer screen.Fini()

	completions := 0
	r := NewRunner(screen, tinySpec(), 7, false, func() { completions++ })
	r.finish()
	r.finish()
	if completions != 1 {
		t.Fatalf("completions = %d, want 1", completions)
	}
}
