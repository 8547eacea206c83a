// Package layout defines the persisted layout format: a recursive spec of
// player panes and nested walls, wrapped in a document that also carries
// opaque window-state blobs.
package layout

import (
	"encoding/json"
	"errors"
	"fmt"
)

const (
	// TypePlayer tags a spec node describing a single pane.
	TypePlayer = "Player"
	// TypeWall tags a spec node describing a row or column of child nodes.
	TypeWall = "VideoWall"
)

// ErrInvalidSpec reports a malformed spec node: a payload that is not an
// object, or one whose type tag is missing or unknown.
var ErrInvalidSpec = errors.New("invalid layout spec")

// PlayerSpec is the persisted form of one pane. Optional fields are pointers
// so that keys absent from hand-written specs fall back to their defaults
// when the pane is restored.
type PlayerSpec struct {
	Type      string   `json:"type"`
	Filename  *string  `json:"filename"`
	Speed     *float64 `json:"speed,omitempty"`
	Volume    *float64 `json:"volume,omitempty"`
	Position  int64    `json:"position"`
	Mode      string   `json:"mode,omitempty"`
	Control   bool     `json:"control"`
	History   []string `json:"history"`
	AtHistory *int     `json:"at_history"`
}

// WallSpec is the persisted form of a split: an ordered run of child nodes
// along one axis, with one size per child.
type WallSpec struct {
	Type        string `json:"type"`
	Orientation string `json:"orientation,omitempty"`
	Items       []Node `json:"items"`
	Sizes       []int  `json:"sizes"`
}

// Node is one element of a layout spec: exactly one of Player or Wall is set.
type Node struct {
	Player *PlayerSpec
	Wall   *WallSpec
}

// BlankPlayer returns the spec for an empty pane, used when a split creates a
// new cell or a wall spec has no items.
func BlankPlayer() Node {
	return Node{Player: &PlayerSpec{Type: TypePlayer}}
}

// UnmarshalJSON decodes a tagged spec node, failing with ErrInvalidSpec when
// the payload is not an object or carries a missing/unknown type tag.
func (n *Node) UnmarshalJSON(data []byte) error {
	var probe struct {
		Type *string `json:"type"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return fmt.Errorf("%w: not an object: %v", ErrInvalidSpec, err)
	}
	if probe.Type == nil {
		return fmt.Errorf("%w: missing type tag", ErrInvalidSpec)
	}
	switch *probe.Type {
	case TypePlayer:
		p := &PlayerSpec{}
		if err := json.Unmarshal(data, p); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidSpec, err)
		}
		n.Player, n.Wall = p, nil
	case TypeWall:
		w := &WallSpec{}
		if err := json.Unmarshal(data, w); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidSpec, err)
		}
		n.Player, n.Wall = nil, w
	default:
		return fmt.Errorf("%w: unknown type %q", ErrInvalidSpec, *probe.Type)
	}
	return nil
}

// MarshalJSON encodes the node under its type tag.
func (n Node) MarshalJSON() ([]byte, error) {
	switch {
	case n.Player != nil && n.Wall != nil:
		return nil, fmt.Errorf("%w: node is both player and wall", ErrInvalidSpec)
	case n.Player != nil:
		p := *n.Player
		p.Type = TypePlayer
		if p.History == nil {
			p.History = []string{}
		}
		return json.Marshal(p)
	case n.Wall != nil:
		w := *n.Wall
		w.Type = TypeWall
		if w.Items == nil {
			w.Items = []Node{}
		}
		if w.Sizes == nil {
			w.Sizes = []int{}
		}
		return json.Marshal(w)
	default:
		return nil, fmt.Errorf("%w: empty node", ErrInvalidSpec)
	}
}
