package platen

import "github.com/pkg/errors"

// ErrUnsupported is returned by backend operations that this engine
// deliberately does not implement (cursor positioning, window size
// queries). Callers are not expected to invoke them; a caller that
// does gets a loud failure instead of a silent wrong answer.
var ErrUnsupported = errors.New("platen: operation not supported")

// Node is a handle to one element of the persistent surface tree.
type Node interface {
	// SetStyle replaces the node's style attribute.
	SetStyle(style Style) error
}

// Leaf is a single-cell node. Leaves are created during the initial
// surface build and mutated in place by the differential renderer.
type Leaf interface {
	Node

	// SetGlyph replaces the node's textual content.
	SetGlyph(glyph string) error
}

// Anchor is a container grouping one hyperlink span: a run of
// consecutive same-row hyperlink cells. Its target is the
// concatenation of the spanned glyphs. Anchors are static after the
// initial build; the differential renderer never touches them.
type Anchor interface {
	Node

	// SetTarget sets the link target.
	SetTarget(target string) error

	// Append adds a spanned cell's leaf as a child of the anchor.
	Append(leaf Leaf) error
}

// Row is a block-level container holding one grid row's leaves and
// anchors in column order.
type Row interface {
	// Append adds a leaf or anchor as the row's next child.
	Append(child Node) error
}

// Surface provides the persistent-surface primitives the render engine
// builds on. Implementations own one root container; rows appended via
// AppendRow become its children in order. All methods are called on
// the host's single UI thread.
type Surface interface {
	// CreateRow creates a detached row container.
	CreateRow() (Row, error)

	// CreateLeaf creates a detached leaf with the given content and style.
	CreateLeaf(glyph string, style Style) (Leaf, error)

	// CreateAnchor creates a detached anchor container.
	CreateAnchor() (Anchor, error)

	// AppendRow attaches a row to the root container.
	AppendRow(row Row) error
}

// KeyInput is an optional surface capability: registration of a
// callback invoked with the textual key identifier of each key-down
// event the host delivers. Registration is fire-and-forget; there is
// no unregistration.
type KeyInput interface {
	OnKey(handler func(key string))
}

// Committer is an optional surface capability for hosts that batch
// mutations. When implemented, the backend invokes Commit at the end
// of every flush, after all node mutations of that tick.
type Committer interface {
	Commit() error
}
