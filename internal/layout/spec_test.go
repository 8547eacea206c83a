package layout

import (
	"bytes"
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"
)

const sampleSpec = `{
  "type": "VideoWall",
  "orientation": "horizontal",
  "items": [
    {
      "type": "Player",
      "filename": "/movies/a.mp4",
      "speed": 1.5,
      "volume": 0.25,
      "position": 30000,
      "mode": "next",
      "control": true,
      "history": ["/movies/a.mp4"],
      "at_history": null
    },
    {
      "type": "VideoWall",
      "orientation": "vertical",
      "items": [
        {
          "type": "Player",
          "filename": null,
          "position": 0,
          "control": false,
          "history": [],
          "at_history": 0
        }
      ],
      "sizes": [360]
    }
  ],
  "sizes": [640, 640]
}`

func TestUnmarshalSpec(t *testing.T) {
	var n Node
	if err := json.Unmarshal([]byte(sampleSpec), &n); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if n.Wall == nil {
		t.Fatal("expected a wall node")
	}
	if n.Wall.Orientation != "horizontal" {
		t.Errorf("orientation = %q", n.Wall.Orientation)
	}
	if len(n.Wall.Items) != 2 || len(n.Wall.Sizes) != 2 {
		t.Fatalf("items/sizes = %d/%d, want 2/2", len(n.Wall.Items), len(n.Wall.Sizes))
	}
	p := n.Wall.Items[0].Player
	if p == nil {
		t.Fatal("first item should be a player")
	}
	if p.Filename == nil || *p.Filename != "/movies/a.mp4" {
		t.Errorf("filename = %v", p.Filename)
	}
	if p.Speed == nil || *p.Speed != 1.5 {
		t.Errorf("speed = %v", p.Speed)
	}
	if !p.Control {
		t.Error("control should be true")
	}
	if p.AtHistory != nil {
		t.Errorf("at_history = %v, want nil", p.AtHistory)
	}
	nested := n.Wall.Items[1].Wall
	if nested == nil {
		t.Fatal("second item should be a nested wall")
	}
	inner := nested.Items[0].Player
	if inner == nil || inner.Filename != nil {
		t.Fatalf("inner player = %+v", inner)
	}
	if inner.AtHistory == nil || *inner.AtHistory != 0 {
		t.Errorf("inner at_history = %v, want 0", inner.AtHistory)
	}
}

func TestSpecRoundTrip(t *testing.T) {
	var n Node
	if err := json.Unmarshal([]byte(sampleSpec), &n); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	out, err := json.Marshal(n)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var again Node
	if err := json.Unmarshal(out, &again); err != nil {
		t.Fatalf("unmarshal round trip: %v", err)
	}
	out2, err := json.Marshal(again)
	if err != nil {
		t.Fatalf("marshal round trip: %v", err)
	}
	if !bytes.Equal(out, out2) {
		t.Fatalf("round trip changed the document:\n%s\n%s", out, out2)
	}
}

func TestUnmarshalMalformedSpec(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"missing type", `{"orientation": "horizontal"}`},
		{"unknown type", `{"type": "Billboard"}`},
		{"not an object", `[1, 2, 3]`},
		{"bad nested item", `{"type": "VideoWall", "items": [{"volume": 1}], "sizes": [10]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var n Node
			err := json.Unmarshal([]byte(tt.in), &n)
			if !errors.Is(err, ErrInvalidSpec) {
				t.Fatalf("error = %v, want ErrInvalidSpec", err)
			}
		})
	}
}

func TestUnknownModeIsPreserved(t *testing.T) {
	// Unknown mode strings are not rejected here; the player falls back to
	// loop when it parses them.
	in := `{"type": "Player", "filename": null, "position": 0, "mode": "shuffle", "control": false, "history": [], "at_history": null}`
	var n Node
	if err := json.Unmarshal([]byte(in), &n); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if n.Player.Mode != "shuffle" {
		t.Errorf("mode = %q, want shuffle carried through", n.Player.Mode)
	}
}

func TestDocumentReadMissingFile(t *testing.T) {
	doc, err := Read(filepath.Join(t.TempDir(), "nope.json"))
	if err != nil {
		t.Fatalf("Read of missing file: %v", err)
	}
	if doc.Spec != nil || doc.Geometry != "" || doc.File != "" {
		t.Fatalf("missing file should read as empty document, got %+v", doc)
	}
}

func TestDocumentRoundTrip(t *testing.T) {
	var n Node
	if err := json.Unmarshal([]byte(sampleSpec), &n); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	doc := &Document{
		Geometry: EncodeBlob([]byte{0x01, 0x02, 0xff}),
		State:    EncodeBlob([]byte("window-state")),
		Spec:     &n,
		File:     "/layouts/main.json",
	}
	path := filepath.Join(t.TempDir(), "sub", "layout.json")
	if err := doc.Write(path); err != nil {
		t.Fatalf("Write: %v", err)
	}
	got, err := Read(path)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if got.File != doc.File {
		t.Errorf("file = %q, want %q", got.File, doc.File)
	}
	geo, err := DecodeBlob(got.Geometry)
	if err != nil {
		t.Fatalf("DecodeBlob: %v", err)
	}
	if !bytes.Equal(geo, []byte{0x01, 0x02, 0xff}) {
		t.Errorf("geometry blob = %v", geo)
	}
	want, _ := json.Marshal(doc.Spec)
	have, _ := json.Marshal(got.Spec)
	if !bytes.Equal(want, have) {
		t.Fatalf("spec changed across write/read:\n%s\n%s", want, have)
	}
}

func TestDecodeBlobEmpty(t *testing.T) {
	b, err := DecodeBlob("")
	if err != nil || b != nil {
		t.Fatalf("DecodeBlob(\"\") = %v, %v, want nil, nil", b, err)
	}
}
