// Package platengtk renders platen grids as a GTK3 widget tree using
// gotk3: one vertical box of row boxes, one pango-markup label per
// cell, and anchor labels for hyperlink spans.
package platengtk

import (
	"fmt"
	"html"
	"strings"

	"github.com/gotk3/gotk3/gdk"
	"github.com/gotk3/gotk3/gtk"
	"github.com/pkg/errors"

	"github.com/mvickers/platen"
)

// Surface is a platen.Surface backed by GTK widgets. All methods must
// run on the GTK main thread, which is where the frame pump's ticks
// land when driven by the Scheduler in this package.
type Surface struct {
	box *gtk.Box
	win *gtk.Window
}

// NewSurface creates the root container. The window is used for key
// event subscription and stays under the caller's control; add the
// surface's Box to it (or any other container) before showing.
func NewSurface(win *gtk.Window) (*Surface, error) {
	if win == nil {
		return nil, errors.New("platengtk: nil window")
	}
	box, err := gtk.BoxNew(gtk.ORIENTATION_VERTICAL, 0)
	if err != nil {
		return nil, errors.Wrap(err, "platengtk: create root box")
	}
	return &Surface{box: box, win: win}, nil
}

var (
	_ platen.Surface  = (*Surface)(nil)
	_ platen.KeyInput = (*Surface)(nil)
)

// Box returns the root container holding the rendered grid.
func (s *Surface) Box() *gtk.Box {
	return s.box
}

func (s *Surface) CreateRow() (platen.Row, error) {
	box, err := gtk.BoxNew(gtk.ORIENTATION_HORIZONTAL, 0)
	if err != nil {
		return nil, errors.Wrap(err, "platengtk: create row box")
	}
	return &rowNode{box: box}, nil
}

func (s *Surface) CreateLeaf(glyph string, style platen.Style) (platen.Leaf, error) {
	label, err := gtk.LabelNew("")
	if err != nil {
		return nil, errors.Wrap(err, "platengtk: create label")
	}
	leaf := &leafNode{label: label, glyph: glyph, style: style}
	leaf.refresh()
	return leaf, nil
}

func (s *Surface) CreateAnchor() (platen.Anchor, error) {
	label, err := gtk.LabelNew("")
	if err != nil {
		return nil, errors.Wrap(err, "platengtk: create anchor label")
	}
	return &anchorNode{label: label}, nil
}

func (s *Surface) AppendRow(row platen.Row) error {
	rn, ok := row.(*rowNode)
	if !ok {
		return errors.Errorf("platengtk: foreign row %T", row)
	}
	s.box.PackStart(rn.box, false, false, 0)
	rn.box.ShowAll()
	return nil
}

// OnKey subscribes to key-down events on the surface's window for the
// life of the session.
func (s *Surface) OnKey(handler func(key string)) {
	s.win.Connect("key-press-event", func(win *gtk.Window, ev *gdk.Event) bool {
		key := gdk.EventKeyNewFromEvent(ev)
		if name := keyName(key.KeyVal()); name != "" {
			handler(name)
		}
		return false
	})
}

type rowNode struct {
	box *gtk.Box
}

func (r *rowNode) Append(child platen.Node) error {
	switch c := child.(type) {
	case *leafNode:
		r.box.PackStart(c.label, false, false, 0)
	case *anchorNode:
		r.box.PackStart(c.label, false, false, 0)
	default:
		return errors.Errorf("platengtk: foreign node %T", child)
	}
	return nil
}

type leafNode struct {
	label *gtk.Label
	glyph string
	style platen.Style
}

func (l *leafNode) SetGlyph(glyph string) error {
	l.glyph = glyph
	l.refresh()
	return nil
}

func (l *leafNode) SetStyle(style platen.Style) error {
	l.style = style
	l.refresh()
	return nil
}

func (l *leafNode) refresh() {
	l.label.SetMarkup(spanMarkup(l.glyph, l.style, ""))
}

// anchorNode renders a hyperlink span as a single rich label: pango
// markup carries the <a> element, so per-span children collapse into
// the anchor's text. Anchors are static after the initial build; the
// engine never rewrites them.
type anchorNode struct {
	label  *gtk.Label
	target string
	text   strings.Builder
	style  platen.Style
}

func (a *anchorNode) Append(leaf platen.Leaf) error {
	ln, ok := leaf.(*leafNode)
	if !ok {
		return errors.Errorf("platengtk: foreign leaf %T", leaf)
	}
	a.text.WriteString(ln.glyph)
	a.refresh()
	return nil
}

func (a *anchorNode) SetTarget(target string) error {
	a.target = target
	a.refresh()
	return nil
}

func (a *anchorNode) SetStyle(style platen.Style) error {
	a.style = style
	a.refresh()
	return nil
}

func (a *anchorNode) refresh() {
	a.label.SetMarkup(spanMarkup(a.text.String(), a.style, a.target))
}

// spanMarkup renders one cell (or span) as pango markup. A non-empty
// target wraps the content in an <a> element.
func spanMarkup(text string, style platen.Style, target string) string {
	var attrs strings.Builder
	fmt.Fprintf(&attrs, `font_family="monospace" foreground="%s"`, style.Foreground.Hex())
	if style.Background != nil {
		fmt.Fprintf(&attrs, ` background="%s"`, style.Background.Hex())
	}
	if style.Modifiers.Has(platen.ModBold) {
		attrs.WriteString(` weight="bold"`)
	}
	if style.Modifiers.Has(platen.ModItalic) {
		attrs.WriteString(` style="italic"`)
	}
	if style.Modifiers.Has(platen.ModUnderline) {
		attrs.WriteString(` underline="single"`)
	}
	if style.Modifiers.Has(platen.ModCrossedOut) {
		attrs.WriteString(` strikethrough="true"`)
	}

	if text == "" {
		text = " "
	}
	content := html.EscapeString(text)
	if target != "" {
		content = fmt.Sprintf(`<a href="%s">%s</a>`, html.EscapeString(target), content)
	}
	return "<span " + attrs.String() + ">" + content + "</span>"
}

// keyName maps a GDK keyval to the textual key identifier handlers
// receive. Unmapped keyvals (modifiers, function keys) produce "".
func keyName(keyval uint) string {
	switch keyval {
	case gdk.KEY_Return, gdk.KEY_KP_Enter:
		return "Enter"
	case gdk.KEY_Escape:
		return "Escape"
	case gdk.KEY_BackSpace:
		return "Backspace"
	case gdk.KEY_Tab, gdk.KEY_ISO_Left_Tab:
		return "Tab"
	case gdk.KEY_Left, gdk.KEY_KP_Left:
		return "ArrowLeft"
	case gdk.KEY_Right, gdk.KEY_KP_Right:
		return "ArrowRight"
	case gdk.KEY_Up, gdk.KEY_KP_Up:
		return "ArrowUp"
	case gdk.KEY_Down, gdk.KEY_KP_Down:
		return "ArrowDown"
	case gdk.KEY_Home, gdk.KEY_KP_Home:
		return "Home"
	case gdk.KEY_End, gdk.KEY_KP_End:
		return "End"
	case gdk.KEY_Delete, gdk.KEY_KP_Delete:
		return "Delete"
	}
	if r := gdk.KeyvalToUnicode(keyval); r > 0 {
		return string(rune(r))
	}
	return ""
}
