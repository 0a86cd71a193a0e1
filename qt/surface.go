// Package platenqt renders platen grids as a Qt widget tree using
// miqt: a vertical layout of row layouts, one QLabel per cell, and
// rich-text anchor labels for hyperlink spans.
package platenqt

import (
	"fmt"
	"html"
	"strings"

	"github.com/mappu/miqt/qt"
	"github.com/pkg/errors"

	"github.com/mvickers/platen"
)

// Surface is a platen.Surface backed by Qt widgets. All methods must
// run on the Qt main thread, which is where the frame pump's ticks
// land when driven by the Scheduler in this package.
type Surface struct {
	root  *qt.QWidget
	vbox  *qt.QVBoxLayout
	onKey func(key string)
}

// NewSurface creates an empty surface. The root widget can be placed
// anywhere in a Qt layout, typically via QMainWindow.SetCentralWidget.
func NewSurface() *Surface {
	root := qt.NewQWidget2()
	vbox := qt.NewQVBoxLayout2(root)
	vbox.SetContentsMargins(0, 0, 0, 0)
	vbox.SetSpacing(0)

	s := &Surface{root: root, vbox: vbox}

	root.SetFocusPolicy(qt.StrongFocus)
	root.OnKeyPressEvent(func(super func(event *qt.QKeyEvent), event *qt.QKeyEvent) {
		if s.onKey == nil {
			super(event)
			return
		}
		key := keyName(event)
		if key == "" {
			super(event)
			return
		}
		event.Accept()
		s.onKey(key)
	})

	return s
}

var (
	_ platen.Surface  = (*Surface)(nil)
	_ platen.KeyInput = (*Surface)(nil)
)

// Widget returns the root widget holding the rendered rows.
func (s *Surface) Widget() *qt.QWidget {
	return s.root
}

func (s *Surface) CreateRow() (platen.Row, error) {
	w := qt.NewQWidget2()
	hbox := qt.NewQHBoxLayout2(w)
	hbox.SetContentsMargins(0, 0, 0, 0)
	hbox.SetSpacing(0)
	return &rowNode{widget: w, hbox: hbox}, nil
}

func (s *Surface) CreateLeaf(glyph string, style platen.Style) (platen.Leaf, error) {
	l := &leafNode{label: qt.NewQLabel2(), glyph: glyph, style: style}
	l.refresh()
	return l, nil
}

func (s *Surface) CreateAnchor() (platen.Anchor, error) {
	label := qt.NewQLabel2()
	label.SetTextFormat(qt.RichText)
	label.SetOpenExternalLinks(true)
	return &anchorNode{label: label}, nil
}

func (s *Surface) AppendRow(row platen.Row) error {
	r, ok := row.(*rowNode)
	if !ok {
		return errors.New("platenqt: foreign row node")
	}
	s.vbox.AddWidget(r.widget)
	return nil
}

// OnKey registers a keyboard handler on the root widget.
func (s *Surface) OnKey(fn func(key string)) {
	s.onKey = fn
}

type rowNode struct {
	widget *qt.QWidget
	hbox   *qt.QHBoxLayout
}

func (r *rowNode) Append(node platen.Node) error {
	switch n := node.(type) {
	case *leafNode:
		r.hbox.AddWidget(n.label.QWidget)
	case *anchorNode:
		r.hbox.AddWidget(n.label.QWidget)
	default:
		return errors.New("platenqt: foreign node")
	}
	return nil
}

type leafNode struct {
	label *qt.QLabel
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
	glyph := l.glyph
	if glyph == "" {
		glyph = " "
	}
	l.label.SetText(glyph)
	l.label.SetStyleSheet(styleSheet(l.style))
}

// anchorNode renders a whole hyperlink span as one rich-text label.
// Leaves appended to it contribute their glyphs to the link text and
// are never placed in a layout themselves.
type anchorNode struct {
	label  *qt.QLabel
	text   strings.Builder
	target string
	style  platen.Style
}

func (a *anchorNode) SetStyle(style platen.Style) error {
	a.style = style
	a.refresh()
	return nil
}

func (a *anchorNode) SetTarget(target string) error {
	a.target = target
	a.refresh()
	return nil
}

func (a *anchorNode) Append(leaf platen.Leaf) error {
	l, ok := leaf.(*leafNode)
	if !ok {
		return errors.New("platenqt: foreign leaf node")
	}
	a.text.WriteString(l.glyph)
	a.refresh()
	return nil
}

func (a *anchorNode) refresh() {
	text := a.text.String()
	if text == "" {
		text = " "
	}
	a.label.SetStyleSheet(styleSheet(a.style))
	a.label.SetText(fmt.Sprintf(`<a href="%s" style="color: inherit;">%s</a>`,
		html.EscapeString(a.target), html.EscapeString(text)))
}

// styleSheet converts a resolved style into a Qt stylesheet fragment.
func styleSheet(style platen.Style) string {
	var b strings.Builder
	b.WriteString("font-family: monospace; ")
	fmt.Fprintf(&b, "color: rgb(%d, %d, %d); ",
		style.Foreground.R, style.Foreground.G, style.Foreground.B)
	if style.Background != nil {
		fmt.Fprintf(&b, "background-color: rgb(%d, %d, %d); ",
			style.Background.R, style.Background.G, style.Background.B)
	} else {
		b.WriteString("background-color: transparent; ")
	}
	if style.Modifiers.Has(platen.ModBold) {
		b.WriteString("font-weight: bold; ")
	}
	if style.Modifiers.Has(platen.ModItalic) {
		b.WriteString("font-style: italic; ")
	}
	if style.Modifiers.Has(platen.ModUnderline) {
		b.WriteString("text-decoration: underline; ")
	} else if style.Modifiers.Has(platen.ModCrossedOut) {
		b.WriteString("text-decoration: line-through; ")
	}
	return strings.TrimRight(b.String(), " ")
}

// keyName translates a Qt key event into a key name. Printable keys
// map to their text, special keys to names like "Enter" and
// "ArrowLeft". Unhandled keys return "".
func keyName(event *qt.QKeyEvent) string {
	switch qt.Key(event.Key()) {
	case qt.Key_Return, qt.Key_Enter:
		return "Enter"
	case qt.Key_Backspace:
		return "Backspace"
	case qt.Key_Tab, qt.Key_Backtab:
		return "Tab"
	case qt.Key_Escape:
		return "Escape"
	case qt.Key_Up:
		return "ArrowUp"
	case qt.Key_Down:
		return "ArrowDown"
	case qt.Key_Left:
		return "ArrowLeft"
	case qt.Key_Right:
		return "ArrowRight"
	case qt.Key_Home:
		return "Home"
	case qt.Key_End:
		return "End"
	case qt.Key_Delete:
		return "Delete"
	}
	text := event.Text()
	if len(text) == 1 && text[0] >= 0x20 && text[0] != 0x7f {
		return text
	}
	if len(text) > 1 {
		return text
	}
	return ""
}
