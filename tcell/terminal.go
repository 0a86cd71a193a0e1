package platentcell

import (
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/pkg/errors"

	"github.com/mvickers/platen"
)

// Options configures terminal creation
type Options struct {
	Dark     bool          // Render for a dark background (default: light)
	Interval time.Duration // Frame interval (default: 16ms)
	Title    string        // Terminal title (default: unchanged)
}

// Scheduler queues a single callback on a timer goroutine. Ticks are
// chained one at a time by the frame pump, so callbacks never overlap.
type Scheduler struct {
	Interval time.Duration
}

func (s Scheduler) Schedule(fn func()) {
	interval := s.Interval
	if interval <= 0 {
		interval = 16 * time.Millisecond
	}
	time.AfterFunc(interval, fn)
}

// Terminal bundles a surface, environment, backend and frame pump on
// top of a tcell screen.
type Terminal struct {
	screen  tcell.Screen
	surface *Surface
	env     *Environment
	backend *platen.Backend
	term    *platen.Terminal
	pump    *platen.Pump
	stop    chan struct{}
}

// New creates a terminal over an initialized screen that repeatedly
// renders via the given callback. Nothing is drawn until Start.
func New(screen tcell.Screen, opts Options, render func(*platen.Frame)) (*Terminal, error) {
	if render == nil {
		return nil, errors.New("platentcell: nil render callback")
	}

	surface, err := NewSurface(screen)
	if err != nil {
		return nil, err
	}
	env := NewEnvironment(screen, opts.Dark)
	if opts.Title != "" {
		env.SetTitle(opts.Title)
	}

	backend, err := platen.NewBackend(surface, env)
	if err != nil {
		return nil, err
	}
	term, err := platen.NewTerminal(backend)
	if err != nil {
		return nil, err
	}

	return &Terminal{
		screen:  screen,
		surface: surface,
		env:     env,
		backend: backend,
		term:    term,
		pump:    platen.NewPump(term, Scheduler{Interval: opts.Interval}, render),
		stop:    make(chan struct{}),
	}, nil
}

// Start begins the frame loop and the event loop feeding key handlers.
func (t *Terminal) Start() {
	go t.eventLoop()
	t.pump.Start()
}

// Stop halts the frame loop and the event loop. The screen itself is
// left for the caller to finalize.
func (t *Terminal) Stop() {
	t.pump.Stop()
	close(t.stop)
	// Wake PollEvent so the loop observes the stop.
	t.screen.PostEvent(tcell.NewEventInterrupt(nil))
}

// Err reports the render error that halted the pump, if any.
func (t *Terminal) Err() error {
	return t.pump.Err()
}

// OnKey registers a keyboard handler fed by the event loop.
func (t *Terminal) OnKey(fn func(key string)) error {
	return t.backend.OnKey(fn)
}

// Backend exposes the underlying render backend.
func (t *Terminal) Backend() *platen.Backend {
	return t.backend
}

func (t *Terminal) eventLoop() {
	for {
		select {
		case <-t.stop:
			return
		default:
		}

		ev := t.screen.PollEvent()
		if ev == nil {
			return
		}
		switch ev := ev.(type) {
		case *tcell.EventKey:
			if key := keyName(ev); key != "" {
				if fn := t.surface.onKey; fn != nil {
					fn(key)
				}
			}
		case *tcell.EventResize:
			t.screen.Sync()
		}
	}
}

// keyName translates a tcell key event into a key name. Printable
// runes map to their text, special keys to names like "Enter" and
// "ArrowLeft". Unhandled keys return "".
func keyName(ev *tcell.EventKey) string {
	switch ev.Key() {
	case tcell.KeyEnter:
		return "Enter"
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return "Backspace"
	case tcell.KeyTab, tcell.KeyBacktab:
		return "Tab"
	case tcell.KeyEscape:
		return "Escape"
	case tcell.KeyUp:
		return "ArrowUp"
	case tcell.KeyDown:
		return "ArrowDown"
	case tcell.KeyLeft:
		return "ArrowLeft"
	case tcell.KeyRight:
		return "ArrowRight"
	case tcell.KeyHome:
		return "Home"
	case tcell.KeyEnd:
		return "End"
	case tcell.KeyDelete:
		return "Delete"
	case tcell.KeyPgUp:
		return "PageUp"
	case tcell.KeyPgDn:
		return "PageDown"
	case tcell.KeyRune:
		return string(ev.Rune())
	}
	return ""
}
