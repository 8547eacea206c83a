package wallapp

import (
	"encoding/json"
	"testing"

	"github.com/edward-ap/videowall/internal/content"
	"github.com/edward-ap/videowall/internal/layout"
	"github.com/edward-ap/videowall/internal/player"
	"github.com/edward-ap/videowall/internal/wall"
)

func TestDemoSpecLoads(t *testing.T) {
	movies := content.NewLibrary(t.TempDir(), content.MovieExtensions)
	tree := wall.New(1280, 720, func(spec *layout.PlayerSpec) *player.State {
		s := player.New(nullPlayback{}, movies)
		s.Apply(spec, 1.0, 0)
		return s
	})
	if err := tree.Load(DemoSpec()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	leaves := tree.Leaves()
	if len(leaves) != 3 {
		t.Fatalf("leaves = %d, want 3", len(leaves))
	}
	modes := map[player.Mode]int{}
	for _, l := range leaves {
		modes[l.State.Mode()]++
	}
	if modes[player.ModeLoop] != 1 || modes[player.ModeNext] != 1 || modes[player.ModeRandom] != 1 {
		t.Fatalf("modes = %v, want one of each", modes)
	}
}

func TestDemoSpecSurvivesPersistence(t *testing.T) {
	b, err := json.Marshal(DemoSpec())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	node := &layout.Node{}
	if err := json.Unmarshal(b, node); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if node.Wall == nil || len(node.Wall.Items) != 2 {
		t.Fatalf("round trip lost the wall shape: %s", b)
	}
}

func TestGeometryBlobRoundTrip(t *testing.T) {
	geo := windowGeometry{Width: 1600, Height: 900}
	b, err := json.Marshal(geo)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	blob := layout.EncodeBlob(b)
	raw, err := layout.DecodeBlob(blob)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	got := windowGeometry{}
	if err := json.Unmarshal(raw, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got != geo {
		t.Fatalf("round trip = %+v, want %+v", got, geo)
	}
}
