package platenqt

import (
	"github.com/mappu/miqt/qt"
	"github.com/pkg/errors"

	"github.com/mvickers/platen"
)

// Options configures terminal creation
type Options struct {
	DarkMode *bool  // Force dark or light rendering (default: follow palette)
	Interval int    // Frame interval in milliseconds (default: 16)
	Title    string // Window title (default: unchanged)
}

// Terminal bundles a surface, environment, backend and frame pump into
// a single Qt widget.
type Terminal struct {
	surface *Surface
	env     *Environment
	backend *platen.Backend
	term    *platen.Terminal
	pump    *platen.Pump
}

// New creates a terminal inside win that repeatedly renders via the
// given callback. Grid dimensions are fixed here from win's geometry,
// so size the window before calling; the pump stays idle until Start.
// Place Widget() into the window afterwards.
func New(win *qt.QWidget, opts Options, render func(*platen.Frame)) (*Terminal, error) {
	if win == nil {
		return nil, errors.New("platenqt: nil window")
	}
	if render == nil {
		return nil, errors.New("platenqt: nil render callback")
	}

	surface := NewSurface()
	env := NewEnvironment(win, opts.DarkMode)
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

	sched := NewScheduler(surface.Widget(), opts.Interval)
	return &Terminal{
		surface: surface,
		env:     env,
		backend: backend,
		term:    term,
		pump:    platen.NewPump(term, sched, render),
	}, nil
}

// Widget returns the root widget holding the rendered rows.
func (t *Terminal) Widget() *qt.QWidget {
	return t.surface.Widget()
}

// Start begins the frame loop on the Qt main loop.
func (t *Terminal) Start() {
	t.pump.Start()
}

// Stop halts the frame loop. Any already queued tick becomes a no-op.
func (t *Terminal) Stop() {
	t.pump.Stop()
}

// Err reports the render error that halted the pump, if any.
func (t *Terminal) Err() error {
	return t.pump.Err()
}

// OnKey registers a keyboard handler on the root widget.
func (t *Terminal) OnKey(fn func(key string)) error {
	return t.backend.OnKey(fn)
}

// Backend exposes the underlying render backend.
func (t *Terminal) Backend() *platen.Backend {
	return t.backend
}
