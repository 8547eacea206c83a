package wallapp

import (
	"github.com/edward-ap/videowall/internal/layout"
)

// DemoSpec returns a small three-pane wall used by the File menu to show the
// layout machinery without any saved document: one large pane next to a
// vertical pair, every pane blank until content is assigned.
func DemoSpec() *layout.Node {
	return &layout.Node{Wall: &layout.WallSpec{
		Type:        layout.TypeWall,
		Orientation: "horizontal",
		Items: []layout.Node{
			{Player: &layout.PlayerSpec{Type: layout.TypePlayer, Mode: "loop"}},
			{Wall: &layout.WallSpec{
				Type:        layout.TypeWall,
				Orientation: "vertical",
				Items: []layout.Node{
					{Player: &layout.PlayerSpec{Type: layout.TypePlayer, Mode: "next"}},
					{Player: &layout.PlayerSpec{Type: layout.TypePlayer, Mode: "random"}},
				},
			}},
		},
	}}
}
