package cli

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"golang.org/x/term"

	"github.com/mvickers/platen"
)

// Assumed cell footprint of the host terminal. The backend divides
// window pixels back down by the same ratios, so the grid always
// matches the host's column and row count exactly.
const (
	hostCellWidthPx  = 10
	hostCellHeightPx = 20
)

// Environment reports host terminal metrics. The screen size is
// unknowable from inside a terminal, so ScreenSize always errors and
// sizing falls through to the window branch.
type Environment struct {
	dark bool
	out  io.Writer
}

// NewEnvironment creates an environment. dark selects the rendering
// mode, since terminals expose no reliable theme signal.
func NewEnvironment(dark bool) *Environment {
	return &Environment{dark: dark, out: os.Stdout}
}

func (e *Environment) Mode() platen.Mode {
	return platen.Mode{Dark: e.dark}
}

func (e *Environment) WindowSize() (int, int, error) {
	cols, rows, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return 0, 0, errors.Wrap(err, "cli: terminal size")
	}
	return cols * hostCellWidthPx, rows * hostCellHeightPx, nil
}

func (e *Environment) ScreenSize() (int, int, error) {
	return 0, 0, errors.New("cli: screen size unknown")
}

// SetTitle sets the host terminal window title via OSC 0.
func (e *Environment) SetTitle(title string) {
	io.WriteString(e.out, "\033]0;"+title+"\a")
}
