package platengtk

import (
	"github.com/gotk3/gotk3/gtk"
	"github.com/pkg/errors"

	"github.com/mvickers/platen"
)

// Options configures terminal creation
type Options struct {
	DarkMode *bool  // Force dark or light rendering (default: follow GTK theme)
	Interval uint   // Frame interval in milliseconds (default: 16)
	Title    string // Window title (default: unchanged)
}

// Terminal bundles a surface, environment, backend and frame pump into
// a single GTK widget.
type Terminal struct {
	surface *Surface
	env     *Environment
	backend *platen.Backend
	term    *platen.Terminal
	pump    *platen.Pump
}

// New creates a terminal inside win that repeatedly renders via the
// given callback. The pump stays idle until Start is called.
func New(win *gtk.Window, opts Options, render func(*platen.Frame)) (*Terminal, error) {
	if win == nil {
		return nil, errors.New("platengtk: nil window")
	}
	if render == nil {
		return nil, errors.New("platengtk: nil render callback")
	}

	surface, err := NewSurface(win)
	if err != nil {
		return nil, err
	}
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

	return &Terminal{
		surface: surface,
		env:     env,
		backend: backend,
		term:    term,
		pump:    platen.NewPump(term, Scheduler{Interval: opts.Interval}, render),
	}, nil
}

// Box returns the container widget holding the rendered rows. Pack it
// into the window before starting the pump.
func (t *Terminal) Box() *gtk.Box {
	return t.surface.Box()
}

// Start begins the frame loop on the GLib main loop.
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

// OnKey registers a keyboard handler on the underlying window.
func (t *Terminal) OnKey(fn func(key string)) error {
	return t.backend.OnKey(fn)
}

// Backend exposes the underlying render backend.
func (t *Terminal) Backend() *platen.Backend {
	return t.backend
}
