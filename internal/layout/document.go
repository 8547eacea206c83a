package layout

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Document is the on-disk layout file: the pane spec plus opaque blobs with
// the window geometry and state, and optionally the path of the layout that
// was open when the document was written.
type Document struct {
	Geometry string `json:"geometry,omitempty"`
	State    string `json:"state,omitempty"`
	Spec     *Node  `json:"spec,omitempty"`
	File     string `json:"file,omitempty"`
}

// EncodeBlob wraps raw window-state bytes for storage in a Document. The
// bytes are opaque to this package.
func EncodeBlob(b []byte) string {
	if len(b) == 0 {
		return ""
	}
	return base64.StdEncoding.EncodeToString(b)
}

// DecodeBlob unwraps a blob previously produced by EncodeBlob.
func DecodeBlob(s string) ([]byte, error) {
	if s == "" {
		return nil, nil
	}
	return base64.StdEncoding.DecodeString(s)
}

// Read loads a layout document from disk. A missing file is not an error: it
// reads as an empty document so the caller falls back to a blank layout.
func Read(path string) (*Document, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Document{}, nil
		}
		return nil, err
	}
	doc := &Document{}
	if err := json.Unmarshal(b, doc); err != nil {
		return nil, fmt.Errorf("layout %s: %w", path, err)
	}
	return doc, nil
}

// Write persists the document, creating the parent directory as needed.
func (d *Document) Write(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	b, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}
