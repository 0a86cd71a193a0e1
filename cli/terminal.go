package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/term"

	"github.com/mvickers/platen"
)

// Options configures terminal creation
type Options struct {
	Dark     bool          // Render for a dark background (default: light)
	Interval time.Duration // Frame interval (default: 16ms)
	Title    string        // Host terminal title via OSC 0 (default: unchanged)
}

// Terminal bundles a surface, environment, backend and frame pump
// running inside the host ANSI terminal.
type Terminal struct {
	surface *Surface
	env     *Environment
	backend *platen.Backend
	term    *platen.Terminal
	pump    *platen.Pump
	input   *InputHandler

	oldState *term.State
}

// New creates a terminal that repeatedly renders via the given
// callback. Stdout must be a terminal. Nothing is drawn until Start.
func New(opts Options, render func(*platen.Frame)) (*Terminal, error) {
	if render == nil {
		return nil, errors.New("cli: nil render callback")
	}
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return nil, errors.New("cli: stdout is not a terminal")
	}

	surface := NewSurface(os.Stdout)
	env := NewEnvironment(opts.Dark)
	if opts.Title != "" {
		env.SetTitle(opts.Title)
	}

	backend, err := platen.NewBackend(surface, env)
	if err != nil {
		return nil, err
	}
	t, err := platen.NewTerminal(backend)
	if err != nil {
		return nil, err
	}

	return &Terminal{
		surface: surface,
		env:     env,
		backend: backend,
		term:    t,
		pump:    platen.NewPump(t, Scheduler{Interval: opts.Interval}, render),
		input:   NewInputHandler(surface),
	}, nil
}

// Start enters raw mode, switches to the alternate screen, starts the
// input loop and begins the frame loop.
func (t *Terminal) Start() error {
	oldState, err := term.MakeRaw(int(os.Stdin.Fd()))
	if err != nil {
		return errors.Wrap(err, "cli: enter raw mode")
	}
	t.oldState = oldState

	// Alternate screen, hidden cursor, clean slate.
	fmt.Print("\033[?1049h\033[?25l\033[2J\033[H")

	go t.input.InputLoop()
	t.pump.Start()
	return nil
}

// Stop halts the frame loop, stops the input loop and restores the
// host terminal state.
func (t *Terminal) Stop() error {
	t.pump.Stop()
	t.input.Stop()

	fmt.Print("\033[0m\033[?25h\033[?1049l")

	if t.oldState != nil {
		if err := term.Restore(int(os.Stdin.Fd()), t.oldState); err != nil {
			return errors.Wrap(err, "cli: restore terminal")
		}
		t.oldState = nil
	}
	return nil
}

// Err reports the render error that halted the pump, if any.
func (t *Terminal) Err() error {
	return t.pump.Err()
}

// OnKey registers a keyboard handler fed by the input loop.
func (t *Terminal) OnKey(fn func(key string)) error {
	return t.backend.OnKey(fn)
}

// SetTitle sets the host terminal window title.
func (t *Terminal) SetTitle(title string) {
	t.env.SetTitle(title)
}

// Backend exposes the underlying render backend.
func (t *Terminal) Backend() *platen.Backend {
	return t.backend
}
