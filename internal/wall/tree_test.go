package wall

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/edward-ap/videowall/internal/layout"
	"github.com/edward-ap/videowall/internal/player"
)

// stubPlayback satisfies player.Playback with inert media 60s long.
type stubPlayback struct {
	position int64
}

func (s *stubPlayback) Load(string) error { s.position = 0; return nil }
func (s *stubPlayback) Play() {}
func (s *stubPlayback) Pause() {}
func (s *stubPlayback) Position() int64 { return s.position }
func (s *stubPlayback) SetPosition(ms int64) { s.position = ms }
func (s *stubPlayback) Duration() int64 { return 60000 }
func (s *stubPlayback) SetRate(float64) {}
func (s *stubPlayback) SetVolume(float64) {}

type stubIndex struct{}

func (stubIndex) Labels() []string { return nil }
func (stubIndex) Resolve(string) (string, bool) { return "", false }
func (stubIndex) LabelFor(string) (string, bool) { return "", false }

func newTestTree(t *testing.T, width, height int, spec *layout.Node) *Tree {
	t.Helper()
	tree := New(width, height, func(spec *layout.PlayerSpec) *player.State {
		s := player.New(&stubPlayback{}, stubIndex{})
		s.Apply(spec, 1.0, 0)
		return s
	})
	if err := tree.Load(spec); err != nil {
		t.Fatalf("Load: %v", err)
	}
	return tree
}

func playerNode(filename string) layout.Node {
	p := &layout.PlayerSpec{Type: layout.TypePlayer}
	if filename != "" {
		p.Filename = &filename
	}
	return layout.Node{Player: p}
}

func leafBySource(t *testing.T, tree *Tree, source string) *Leaf {
	t.Helper()
	for _, l := range tree.Leaves() {
		if l.State.Source() == source {
			return l
		}
	}
	t.Fatalf("no leaf playing %q", source)
	return nil
}

func TestEvenSizes(t *testing.T) {
	tests := []struct {
		count, length int
		want          []int
	}{
		{1, 100, []int{100}},
		{2, 100, []int{50, 50}},
		{3, 100, []int{33, 33, 34}},
		{3, 99, []int{33, 33, 33}},
		{4, 2, []int{0, 0, 0, 2}},
	}
	for _, tt := range tests {
		got := EvenSizes(tt.count, tt.length)
		if len(got) != len(tt.want) {
			t.Fatalf("EvenSizes(%d, %d) = %v", tt.count, tt.length, got)
		}
		sum := 0
		for i, v := range got {
			sum += v
			if v != tt.want[i] {
				t.Errorf("EvenSizes(%d, %d) = %v, want %v", tt.count, tt.length, got, tt.want)
				break
			}
		}
		if sum != tt.length {
			t.Errorf("EvenSizes(%d, %d) sums to %d", tt.count, tt.length, sum)
		}
	}
	if got := EvenSizes(0, 100); got != nil {
		t.Errorf("EvenSizes(0, 100) = %v, want nil", got)
	}
}

func TestLoadDistributesMissingSizes(t *testing.T) {
	spec := &layout.Node{Wall: &layout.WallSpec{
		Type:  layout.TypeWall,
		Items: []layout.Node{playerNode("/a"), playerNode("/b"), playerNode("/c")},
	}}
	tree := newTestTree(t, 1000, 700, spec)
	root := tree.Root()
	if len(root.Children) != 3 {
		t.Fatalf("children = %d", len(root.Children))
	}
	want := []int{333, 333, 334}
	for i, s := range root.Sizes {
		if s != want[i] {
			t.Fatalf("sizes = %v, want %v", root.Sizes, want)
		}
	}
}

func TestLoadEmptySpecMakesBlankPane(t *testing.T) {
	tree := newTestTree(t, 800, 600, nil)
	leaves := tree.Leaves()
	if len(leaves) != 1 {
		t.Fatalf("leaves = %d, want 1", len(leaves))
	}
	if src := leaves[0].State.Source(); src != "" {
		t.Fatalf("blank pane playing %q", src)
	}
	if tree.Root().Sizes[0] != 800 {
		t.Fatalf("sizes = %v, want [800]", tree.Root().Sizes)
	}
}

func TestLoadWrapsBarePlayerSpec(t *testing.T) {
	spec := playerNode("/solo")
	tree := newTestTree(t, 800, 600, &spec)
	if len(tree.Root().Children) != 1 {
		t.Fatalf("root children = %d, want 1", len(tree.Root().Children))
	}
	leaf := leafBySource(t, tree, "/solo")
	// The wrapped leaf has a locatable parent, so it can be split.
	tree.Split(leaf.ID, tree.Root().Orientation)
	if len(tree.Root().Children) != 2 {
		t.Fatalf("split after wrap: children = %d, want 2", len(tree.Root().Children))
	}
}

func TestSplitSameOrientationAppends(t *testing.T) {
	spec := &layout.Node{Wall: &layout.WallSpec{
		Type:        layout.TypeWall,
		Orientation: "horizontal",
		Items:       []layout.Node{playerNode("/a"), playerNode("/b")},
		Sizes:       []int{600, 400},
	}}
	tree := newTestTree(t, 1000, 700, spec)
	tree.Split(leafBySource(t, tree, "/a").ID, Horizontal)

	root := tree.Root()
	if len(root.Children) != 3 || len(root.Sizes) != 3 {
		t.Fatalf("children/sizes = %d/%d, want 3/3", len(root.Children), len(root.Sizes))
	}
	// Existing children keep their relative order; the blank lands at the end.
	sources := []string{}
	tree.ForEachLeaf(func(l *Leaf) { sources = append(sources, l.State.Source()) })
	if sources[0] != "/a" || sources[1] != "/b" || sources[2] != "" {
		t.Fatalf("leaf order = %v", sources)
	}
	sum := 0
	for _, s := range root.Sizes {
		sum += s
	}
	if sum != 1000 {
		t.Fatalf("sizes = %v, want total 1000 preserved", root.Sizes)
	}
}

func TestSplitDifferentOrientationReplacesSlot(t *testing.T) {
	spec := &layout.Node{Wall: &layout.WallSpec{
		Type:        layout.TypeWall,
		Orientation: "horizontal",
		Items:       []layout.Node{playerNode("/a"), playerNode("/b")},
		Sizes:       []int{600, 400},
	}}
	tree := newTestTree(t, 1000, 700, spec)
	tree.Split(leafBySource(t, tree, "/b").ID, Vertical)

	root := tree.Root()
	if len(root.Children) != 2 {
		t.Fatalf("sibling count changed: %d", len(root.Children))
	}
	if root.Sizes[0] != 600 || root.Sizes[1] != 400 {
		t.Fatalf("slot sizes changed: %v", root.Sizes)
	}
	nested, ok := root.Children[1].(*Split)
	if !ok {
		t.Fatal("slot 1 should now hold a split")
	}
	if nested.Orientation != Vertical {
		t.Fatalf("nested orientation = %v", nested.Orientation)
	}
	if len(nested.Children) != 2 {
		t.Fatalf("nested children = %d, want 2", len(nested.Children))
	}
	if first, ok := nested.Children[0].(*Leaf); !ok || first.State.Source() != "/b" {
		t.Fatal("original pane should be the nested split's first child")
	}
	// Nested sizes divide the pane's cross extent (the 700 wall height).
	if nested.Sizes[0]+nested.Sizes[1] != 700 {
		t.Fatalf("nested sizes = %v, want total 700", nested.Sizes)
	}
}

func TestSplitRootlessLeafIsNoop(t *testing.T) {
	tree := newTestTree(t, 800, 600, nil)
	before := len(tree.Leaves())
	tree.Split(uuid.New(), Horizontal)
	if len(tree.Leaves()) != before {
		t.Fatal("split on unknown pane mutated the tree")
	}
}

func TestClose(t *testing.T) {
	spec := &layout.Node{Wall: &layout.WallSpec{
		Type:  layout.TypeWall,
		Items: []layout.Node{playerNode("/a"), playerNode("/b"), playerNode("/c")},
		Sizes: []int{100, 200, 300},
	}}
	tree := newTestTree(t, 600, 400, spec)
	if err := tree.Close(leafBySource(t, tree, "/b").ID); err != nil {
		t.Fatalf("Close: %v", err)
	}
	root := tree.Root()
	if len(root.Children) != 2 || len(root.Sizes) != 2 {
		t.Fatalf("children/sizes = %d/%d after close", len(root.Children), len(root.Sizes))
	}
	if root.Sizes[0] != 100 || root.Sizes[1] != 300 {
		t.Fatalf("sizes = %v, want [100 300]", root.Sizes)
	}
}

func TestCloseLastPaneRejected(t *testing.T) {
	tree := newTestTree(t, 800, 600, nil)
	leaf := tree.Leaves()[0]
	err := tree.Close(leaf.ID)
	if !errors.Is(err, ErrInvalidState) {
		t.Fatalf("error = %v, want ErrInvalidState", err)
	}
	if len(tree.Leaves()) != 1 {
		t.Fatal("rejected close still mutated the tree")
	}
}

func TestCloseUnknownPane(t *testing.T) {
	tree := newTestTree(t, 800, 600, nil)
	if err := tree.Close(uuid.New()); !errors.Is(err, ErrStructural) {
		t.Fatalf("error = %v, want ErrStructural", err)
	}
}

func TestSpecRoundTrip(t *testing.T) {
	spec := &layout.Node{Wall: &layout.WallSpec{
		Type:        layout.TypeWall,
		Orientation: "horizontal",
		Items: []layout.Node{
			playerNode("/a"),
			{Wall: &layout.WallSpec{
				Type:        layout.TypeWall,
				Orientation: "vertical",
				Items:       []layout.Node{playerNode("/b"), playerNode("/c")},
				Sizes:       []int{250, 350},
			}},
		},
		Sizes: []int{640, 640},
	}}
	tree := newTestTree(t, 1280, 600, spec)
	out1, err := json.Marshal(tree.Spec())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	tree2 := newTestTree(t, 1280, 600, tree.Spec())
	out2, err := json.Marshal(tree2.Spec())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(out1) != string(out2) {
		t.Fatalf("round trip changed the spec:\n%s\n%s", out1, out2)
	}
}

func TestSpecDiffersOnlyInSplitSlot(t *testing.T) {
	spec := &layout.Node{Wall: &layout.WallSpec{
		Type:        layout.TypeWall,
		Orientation: "horizontal",
		Items:       []layout.Node{playerNode("/a"), playerNode("/b")},
		Sizes:       []int{600, 400},
	}}
	tree := newTestTree(t, 1000, 700, spec)
	before := tree.Spec().Wall
	beforeA, _ := json.Marshal(before.Items[0])

	tree.Split(leafBySource(t, tree, "/b").ID, Vertical)
	after := tree.Spec().Wall

	afterA, _ := json.Marshal(after.Items[0])
	if string(beforeA) != string(afterA) {
		t.Fatal("untouched sibling changed")
	}
	if len(after.Sizes) != 2 || after.Sizes[1] != 400 {
		t.Fatalf("sizes = %v, want slot 1 still 400", after.Sizes)
	}
	if after.Items[1].Wall == nil {
		t.Fatal("slot 1 should now be a nested wall spec")
	}
}
