package ssh

import (
	"sync"

	"github.com/gdamore/tcell/v2"
	gossh "github.com/gliderlabs/ssh"
)

// ViewerTty adapts a gliderlabs/ssh session into a tcell.Tty so each
// connected client gets its own screen to watch the splash on. Key bytes
// come from the session's stdin, frames go out on its stdout.
type ViewerTty struct {
	session gossh.Session
	winCh   <-chan gossh.Window

	mu     sync.Mutex
	window gossh.Window
	resize func()
}

// NewViewerTty wraps an SSH session as a tcell Tty. pty carries the initial
// window size; winCh delivers resize events for the life of the session.
func NewViewerTty(s gossh.Session, pty gossh.Pty, winCh <-chan gossh.Window) *ViewerTty {
	t := &ViewerTty{
		session: s,
		window:  pty.Window,
		winCh:   winCh,
	}
	go t.drainResizes()
	return t
}

// drainResizes consumes window-change events for the session's lifetime,
// updating the cached size and poking tcell's resize callback.
func (t *ViewerTty) drainResizes() {
	for win := range t.winCh {
		t.mu.Lock()
		t.window = win
		cb := t.resize
		t.mu.Unlock()
		if cb != nil {
			cb()
		}
	}
}

func (t *ViewerTty) Read(b []byte) (int, error)  { return t.session.Read(b) }
func (t *ViewerTty) Write(b []byte) (int, error) { return t.session.Write(b) }

// Close closes the underlying SSH channel.
func (t *ViewerTty) Close() error { return t.session.Close() }

// Start, Stop, and Drain are no-ops: the SSH channel is already open and is
// owned by the server's session handler.
func (t *ViewerTty) Start() error { return nil }
func (t *ViewerTty) Stop() error  { return nil }
func (t *ViewerTty) Drain() error { return nil }

// WindowSize reports the client terminal's current dimensions.
func (t *ViewerTty) WindowSize() (tcell.WindowSize, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return tcell.WindowSize{Width: t.window.Width, Height: t.window.Height}, nil
}

// NotifyResize registers tcell's resize callback.
func (t *ViewerTty) NotifyResize(cb func()) {
	t.mu.Lock()
	t.resize = cb
	t.mu.Unlock()
}
