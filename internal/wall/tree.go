// Package wall implements the pane layout tree: leaves each playing one
// source, splits dividing an axis among an ordered run of children. The tree
// is the single owner of every pane; a flat index keyed by pane ID maps each
// leaf to its current parent and slot so structural operations never walk
// upward through the tree.
//
// Like the player state machine, the tree has a single logical owner
// goroutine; structural mutations are never concurrent.
package wall

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"

	"github.com/edward-ap/videowall/internal/layout"
	"github.com/edward-ap/videowall/internal/player"
)

var (
	// ErrInvalidState reports an operation that would leave the tree in an
	// observable invalid shape, such as a split with no children.
	ErrInvalidState = errors.New("invalid wall state")
	// ErrStructural reports tree corruption: a pane that should have a parent
	// split but cannot be located.
	ErrStructural = errors.New("wall structure corrupted")
)

// Orientation is the axis a split divides.
type Orientation int

const (
	// Horizontal lays children out left to right.
	Horizontal Orientation = iota
	// Vertical lays children out top to bottom.
	Vertical
)

// ParseOrientation maps a persisted orientation string; anything that does
// not start with "h" is vertical, matching the permissive persisted format.
func ParseOrientation(s string) Orientation {
	if s == "" || strings.HasPrefix(strings.ToLower(s), "h") {
		return Horizontal
	}
	return Vertical
}

// String returns the persisted form of the orientation.
func (o Orientation) String() string {
	if o == Horizontal {
		return "horizontal"
	}
	return "vertical"
}

// Node is either a *Leaf or a *Split.
type Node interface {
	node()
}

// Leaf is a pane playing exactly one source.
type Leaf struct {
	ID    uuid.UUID
	State *player.State
}

func (*Leaf) node() {}

// Split divides its axis among an ordered run of children; Sizes holds one
// extent per child, in child order.
type Split struct {
	Orientation Orientation
	Children    []Node
	Sizes       []int
}

func (*Split) node() {}

// position is one entry in the flat leaf index: where the leaf sits and the
// extent of the box it occupies.
type position struct {
	parent *Split
	index  int
	width  int
	height int
}

// NewLeafFunc builds the pane state for a new leaf. A nil spec means a blank
// pane.
type NewLeafFunc func(spec *layout.PlayerSpec) *player.State

// Tree owns the pane layout. The root is always a split, so every leaf has a
// locatable parent.
type Tree struct {
	root    *Split
	width   int
	height  int
	newLeaf NewLeafFunc
	index   map[uuid.UUID]position
}

// New creates an empty tree over a width×height wall. Load or Reset must run
// before any other operation.
func New(width, height int, newLeaf NewLeafFunc) *Tree {
	return &Tree{
		width:   width,
		height:  height,
		newLeaf: newLeaf,
		index:   map[uuid.UUID]position{},
	}
}

// EvenSizes distributes length across count cells: every cell gets the same
// floor share and the final cell absorbs the rounding remainder, so the total
// is never lost or duplicated.
func EvenSizes(count, length int) []int {
	if count <= 0 {
		return nil
	}
	cell := length / count
	sizes := make([]int, count)
	for i := range sizes {
		sizes[i] = cell
	}
	sizes[count-1] = length - cell*(count-1)
	return sizes
}

// Load builds the tree from a persisted spec. A nil node, or a bare player
// node, is wrapped in a single-child horizontal split so the root is always a
// split. Fails with layout.ErrInvalidSpec wrapped errors on malformed specs.
func (t *Tree) Load(spec *layout.Node) error {
	wrapped := normalizeRoot(spec)
	root, err := t.buildWall(wrapped, t.width, t.height)
	if err != nil {
		return err
	}
	t.root = root
	t.reindex()
	return nil
}

// normalizeRoot wraps non-wall specs so the builder always starts from a wall.
func normalizeRoot(spec *layout.Node) *layout.WallSpec {
	if spec == nil || (spec.Player == nil && spec.Wall == nil) {
		return &layout.WallSpec{Type: layout.TypeWall}
	}
	if spec.Wall != nil {
		return spec.Wall
	}
	return &layout.WallSpec{
		Type:  layout.TypeWall,
		Items: []layout.Node{*spec},
	}
}

// buildWall constructs a split (and its subtree) inside a w×h box.
func (t *Tree) buildWall(spec *layout.WallSpec, w, h int) (*Split, error) {
	orient := ParseOrientation(spec.Orientation)
	items := spec.Items
	if len(items) == 0 {
		items = []layout.Node{layout.BlankPlayer()}
	}
	length := w
	if orient == Vertical {
		length = h
	}
	sizes := spec.Sizes
	if len(sizes) < len(items) {
		sizes = EvenSizes(len(items), length)
	} else {
		sizes = append([]int(nil), sizes[:len(items)]...)
	}

	sp := &Split{Orientation: orient, Sizes: sizes}
	for i, item := range items {
		cw, ch := w, h
		if orient == Horizontal {
			cw = sizes[i]
		} else {
			ch = sizes[i]
		}
		switch {
		case item.Player != nil:
			sp.Children = append(sp.Children, t.makeLeaf(item.Player))
		case item.Wall != nil:
			child, err := t.buildWall(item.Wall, cw, ch)
			if err != nil {
				return nil, err
			}
			sp.Children = append(sp.Children, child)
		default:
			return nil, fmt.Errorf("%w: empty node", layout.ErrInvalidSpec)
		}
	}
	return sp, nil
}

func (t *Tree) makeLeaf(spec *layout.PlayerSpec) *Leaf {
	return &Leaf{ID: uuid.New(), State: t.newLeaf(spec)}
}

// Root returns the root split for rendering.
func (t *Tree) Root() *Split { return t.root }

// Find returns the leaf with the given ID, if it is still in the tree.
func (t *Tree) Find(id uuid.UUID) (*Leaf, bool) {
	pos, ok := t.index[id]
	if !ok {
		return nil, false
	}
	leaf, ok := pos.parent.Children[pos.index].(*Leaf)
	return leaf, ok
}

// Leaves returns every live leaf in tree order.
func (t *Tree) Leaves() []*Leaf {
	var out []*Leaf
	t.ForEachLeaf(func(l *Leaf) { out = append(out, l) })
	return out
}

// ForEachLeaf visits every leaf in tree order.
func (t *Tree) ForEachLeaf(fn func(*Leaf)) {
	if t.root == nil {
		return
	}
	walkLeaves(t.root, fn)
}

func walkLeaves(n Node, fn func(*Leaf)) {
	switch v := n.(type) {
	case *Leaf:
		fn(v)
	case *Split:
		for _, child := range v.Children {
			walkLeaves(child, fn)
		}
	}
}

// Split divides the leaf's pane. Splitting along the parent's axis appends a
// blank sibling and re-spreads the parent's sizes evenly; splitting across it
// replaces the leaf with a two-child split occupying the same size slot, so
// the siblings are unaffected. A leaf without a locatable parent is logged
// and ignored.
func (t *Tree) Split(id uuid.UUID, orient Orientation) {
	pos, ok := t.index[id]
	if !ok || pos.parent == nil {
		log.Printf("wall: split: pane %s has no parent", id)
		return
	}
	parent := pos.parent
	if parent.Orientation == orient {
		total := 0
		for _, s := range parent.Sizes {
			total += s
		}
		parent.Children = append(parent.Children, t.makeLeaf(nil))
		parent.Sizes = EvenSizes(len(parent.Children), total)
	} else {
		length := pos.width
		if orient == Vertical {
			length = pos.height
		}
		nested := &Split{
			Orientation: orient,
			Children:    []Node{parent.Children[pos.index], t.makeLeaf(nil)},
			Sizes:       EvenSizes(2, length),
		}
		parent.Children[pos.index] = nested
	}
	t.reindex()
}

// Close removes the leaf and its size slot from its parent in lockstep. The
// last child of a split cannot be closed: an empty split must never become
// observable.
func (t *Tree) Close(id uuid.UUID) error {
	pos, ok := t.index[id]
	if !ok || pos.parent == nil {
		return fmt.Errorf("%w: pane %s has no parent", ErrStructural, id)
	}
	parent := pos.parent
	if len(parent.Children) <= 1 {
		return fmt.Errorf("%w: closing the last pane of a split", ErrInvalidState)
	}
	i := pos.index
	parent.Children = append(parent.Children[:i], parent.Children[i+1:]...)
	parent.Sizes = append(parent.Sizes[:i], parent.Sizes[i+1:]...)
	t.reindex()
	return nil
}

// Resize records a new wall extent; box extents feed even distribution when
// panes are split later.
func (t *Tree) Resize(width, height int) {
	t.width = width
	t.height = height
	t.reindex()
}

// Spec captures the whole tree in persisted form, sizes in child order.
func (t *Tree) Spec() *layout.Node {
	if t.root == nil {
		return nil
	}
	n := specOf(t.root)
	return &n
}

func specOf(n Node) layout.Node {
	switch v := n.(type) {
	case *Leaf:
		return layout.Node{Player: v.State.Snapshot()}
	case *Split:
		w := &layout.WallSpec{
			Type:        layout.TypeWall,
			Orientation: v.Orientation.String(),
			Sizes:       append([]int(nil), v.Sizes...),
		}
		for _, child := range v.Children {
			w.Items = append(w.Items, specOf(child))
		}
		return layout.Node{Wall: w}
	}
	return layout.Node{}
}

// reindex rebuilds the flat leaf index after a structural mutation, carrying
// box extents down from the root.
func (t *Tree) reindex() {
	t.index = map[uuid.UUID]position{}
	if t.root == nil {
		return
	}
	t.walk(t.root, t.width, t.height)
}

func (t *Tree) walk(sp *Split, w, h int) {
	for i, child := range sp.Children {
		cw, ch := w, h
		if i < len(sp.Sizes) {
			if sp.Orientation == Horizontal {
				cw = sp.Sizes[i]
			} else {
				ch = sp.Sizes[i]
			}
		}
		switch v := child.(type) {
		case *Leaf:
			t.index[v.ID] = position{parent: sp, index: i, width: cw, height: ch}
		case *Split:
			t.walk(v, cw, ch)
		}
	}
}

// locate returns the parent split and slot of a leaf.
func (t *Tree) locate(id uuid.UUID) (position, bool) {
	pos, ok := t.index[id]
	return pos, ok
}
