package canvas

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
)

// DefaultIndent is the indentation the viewer itself uses.
const DefaultIndent = "\t"

// SaveOptions controls how a document is written.
type SaveOptions struct {
	// Indent is the per-level indentation. Empty means DefaultIndent.
	Indent string
	// Mode is the file permission. Zero means 0644.
	Mode os.FileMode
}

// Decode parses a canvas document.
func Decode(data []byte) (*Document, error) {
	doc := New()
	if err := json.Unmarshal(data, doc); err != nil {
		return nil, fmt.Errorf("failed to decode canvas: %w", err)
	}
	return doc, nil
}

// Load reads and parses the canvas at path.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read canvas %s: %w", path, err)
	}
	doc, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// Encode renders doc as indented JSON with a trailing newline. Non-ASCII
// text and markdown characters are written as-is.
func Encode(doc *Document, indent string) ([]byte, error) {
	if indent == "" {
		indent = DefaultIndent
	}
	compact, err := marshalNoEscape(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to encode canvas: %w", err)
	}
	var out bytes.Buffer
	if err := json.Indent(&out, compact, "", indent); err != nil {
		return nil, fmt.Errorf("failed to indent canvas: %w", err)
	}
	out.WriteByte('\n')
	return out.Bytes(), nil
}

// Save writes doc to path.
func Save(path string, doc *Document, opts SaveOptions) error {
	data, err := Encode(doc, opts.Indent)
	if err != nil {
		return err
	}
	mode := opts.Mode
	if mode == 0 {
		mode = 0o644
	}
	if err := os.WriteFile(path, data, mode); err != nil {
		return fmt.Errorf("failed to write canvas %s: %w", path, err)
	}
	// WriteFile keeps the mode of an existing file.
	if err := os.Chmod(path, mode); err != nil {
		return fmt.Errorf("failed to set permissions on %s: %w", path, err)
	}
	return nil
}
