// cmd/layoutpeek/main.go
//
// layoutpeek prints the pane tree of a saved layout file, a quick way to
// inspect what a wall will look like without starting the app.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/edward-ap/videowall/internal/layout"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("usage: layoutpeek <layout.json>")
		return
	}
	doc, err := layout.Read(os.Args[1])
	if err != nil {
		fmt.Println("read:", err)
		os.Exit(1)
	}

	if b, err := layout.DecodeBlob(doc.Geometry); err == nil && len(b) > 0 {
		geo := map[string]any{}
		if json.Unmarshal(b, &geo) == nil {
			fmt.Printf("geometry: %v\n", geo)
		}
	}
	if doc.File != "" {
		fmt.Println("file:", doc.File)
	}
	if doc.Spec == nil {
		fmt.Println("empty layout")
		return
	}
	printNode(doc.Spec, 0)
}

func printNode(n *layout.Node, depth int) {
	indent := strings.Repeat("  ", depth)
	switch {
	case n.Wall != nil:
		orient := n.Wall.Orientation
		if orient == "" {
			orient = "horizontal"
		}
		fmt.Printf("%swall %s sizes=%v\n", indent, orient, n.Wall.Sizes)
		for i := range n.Wall.Items {
			printNode(&n.Wall.Items[i], depth+1)
		}
	case n.Player != nil:
		fmt.Printf("%spane %s\n", indent, describePane(n.Player))
	default:
		fmt.Printf("%s(empty node)\n", indent)
	}
}

func describePane(p *layout.PlayerSpec) string {
	parts := []string{}
	if p.Filename != nil {
		parts = append(parts, *p.Filename)
	} else {
		parts = append(parts, "(blank)")
	}
	if p.Mode != "" {
		parts = append(parts, "mode="+p.Mode)
	}
	if p.Position > 0 {
		parts = append(parts, fmt.Sprintf("pos=%dms", p.Position))
	}
	if p.Volume != nil {
		parts = append(parts, fmt.Sprintf("vol=%.2f", *p.Volume))
	}
	if p.Control {
		parts = append(parts, "control")
	}
	if len(p.History) > 0 {
		parts = append(parts, fmt.Sprintf("history=%d", len(p.History)))
	}
	return strings.Join(parts, " ")
}
