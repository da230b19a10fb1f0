package canvas

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
)

// Node types understood by the viewer.
const (
	TypeText  = "text"
	TypeFile  = "file"
	TypeLink  = "link"
	TypeGroup = "group"
)

// Sides an edge can attach to.
const (
	SideTop    = "top"
	SideRight  = "right"
	SideBottom = "bottom"
	SideLeft   = "left"
)

// Document is a canvas file: nodes, edges and any other top-level property.
type Document struct {
	Nodes []*Node
	Edges []*Edge
	// Extra holds top-level properties other than nodes and edges.
	Extra map[string]json.RawMessage
}

// Node is a positioned box on the canvas.
type Node struct {
	ID     string  `validate:"required"`
	Type   string  `validate:"required,oneof=text file link group"`
	X      float64
	Y      float64
	Width  float64 `validate:"gt=0"`
	Height float64 `validate:"gt=0"`
	Text   string
	File   string
	URL    string
	Label  string
	Color  string `validate:"omitempty,canvascolor"`
	Extra  map[string]json.RawMessage
}

// Edge connects two nodes.
type Edge struct {
	ID       string `validate:"required"`
	FromNode string `validate:"required"`
	FromSide string `validate:"omitempty,oneof=top right bottom left"`
	ToNode   string `validate:"required"`
	ToSide   string `validate:"omitempty,oneof=top right bottom left"`
	Color    string `validate:"omitempty,canvascolor"`
	Label    string
	Extra    map[string]json.RawMessage
}

// New returns an empty document.
func New() *Document {
	return &Document{
		Nodes: []*Node{},
		Edges: []*Edge{},
	}
}

// NodeByID returns the node with the given id.
func (d *Document) NodeByID(id string) (*Node, bool) {
	for _, n := range d.Nodes {
		if n != nil && n.ID == id {
			return n, true
		}
	}
	return nil, false
}

// AddNodes appends nodes to the document.
func (d *Document) AddNodes(nodes ...*Node) {
	d.Nodes = append(d.Nodes, nodes...)
}

// defaultMetadata is what the viewer writes for a fresh canvas.
var defaultMetadata = json.RawMessage(`{"version":"1.0-1.0","frontmatter":{}}`)

// EnsureMetadata adds the viewer's default metadata block when the
// document has none. It reports whether the block was added.
func (d *Document) EnsureMetadata() bool {
	if _, ok := d.Extra["metadata"]; ok {
		return false
	}
	if d.Extra == nil {
		d.Extra = make(map[string]json.RawMessage)
	}
	d.Extra["metadata"] = defaultMetadata
	return true
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Document) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	d.Nodes = []*Node{}
	d.Edges = []*Edge{}
	if v, ok := raw["nodes"]; ok {
		if err := json.Unmarshal(v, &d.Nodes); err != nil {
			return fmt.Errorf("nodes: %w", err)
		}
		delete(raw, "nodes")
	}
	if v, ok := raw["edges"]; ok {
		if err := json.Unmarshal(v, &d.Edges); err != nil {
			return fmt.Errorf("edges: %w", err)
		}
		delete(raw, "edges")
	}
	if d.Nodes == nil {
		d.Nodes = []*Node{}
	}
	if d.Edges == nil {
		d.Edges = []*Edge{}
	}
	d.Extra = nil
	if len(raw) > 0 {
		d.Extra = raw
	}
	return nil
}

// MarshalJSON implements json.Marshaler.
func (d *Document) MarshalJSON() ([]byte, error) {
	nodes := d.Nodes
	if nodes == nil {
		nodes = []*Node{}
	}
	edges := d.Edges
	if edges == nil {
		edges = []*Edge{}
	}
	w := newObjectWriter()
	w.field("nodes", nodes)
	w.field("edges", edges)
	w.extras(d.Extra)
	return w.close()
}

// UnmarshalJSON implements json.Unmarshaler.
func (n *Node) UnmarshalJSON(data []byte) error {
	raw, err := decodeObject(data)
	if err != nil {
		return err
	}
	*n = Node{}
	if err := takeAll(raw,
		take("id", &n.ID),
		take("type", &n.Type),
		take("x", &n.X),
		take("y", &n.Y),
		take("width", &n.Width),
		take("height", &n.Height),
		take("text", &n.Text),
		take("file", &n.File),
		take("url", &n.URL),
		take("label", &n.Label),
		take("color", &n.Color),
	); err != nil {
		return fmt.Errorf("node %q: %w", n.ID, err)
	}
	if len(raw) > 0 {
		n.Extra = raw
	}
	return nil
}

// MarshalJSON implements json.Marshaler.
func (n *Node) MarshalJSON() ([]byte, error) {
	w := newObjectWriter()
	w.field("id", n.ID)
	w.field("type", n.Type)
	w.required(n.Type == TypeText, "text", n.Text)
	w.required(n.Type == TypeFile, "file", n.File)
	w.required(n.Type == TypeLink, "url", n.URL)
	w.optional("label", n.Label)
	w.extras(n.Extra)
	w.field("x", n.X)
	w.field("y", n.Y)
	w.field("width", n.Width)
	w.field("height", n.Height)
	w.optional("color", n.Color)
	return w.close()
}

// UnmarshalJSON implements json.Unmarshaler.
func (e *Edge) UnmarshalJSON(data []byte) error {
	raw, err := decodeObject(data)
	if err != nil {
		return err
	}
	*e = Edge{}
	if err := takeAll(raw,
		take("id", &e.ID),
		take("fromNode", &e.FromNode),
		take("fromSide", &e.FromSide),
		take("toNode", &e.ToNode),
		take("toSide", &e.ToSide),
		take("color", &e.Color),
		take("label", &e.Label),
	); err != nil {
		return fmt.Errorf("edge %q: %w", e.ID, err)
	}
	if len(raw) > 0 {
		e.Extra = raw
	}
	return nil
}

// MarshalJSON implements json.Marshaler.
func (e *Edge) MarshalJSON() ([]byte, error) {
	w := newObjectWriter()
	w.field("id", e.ID)
	w.field("fromNode", e.FromNode)
	w.optional("fromSide", e.FromSide)
	w.field("toNode", e.ToNode)
	w.optional("toSide", e.ToSide)
	w.optional("color", e.Color)
	w.optional("label", e.Label)
	w.extras(e.Extra)
	return w.close()
}

func decodeObject(data []byte) (map[string]json.RawMessage, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	if raw == nil {
		raw = make(map[string]json.RawMessage)
	}
	return raw, nil
}

type taker func(raw map[string]json.RawMessage) error

// take decodes key into dst and removes it from raw. A JSON null leaves dst
// at its zero value.
func take(key string, dst any) taker {
	return func(raw map[string]json.RawMessage) error {
		v, ok := raw[key]
		if !ok {
			return nil
		}
		delete(raw, key)
		if bytes.Equal(bytes.TrimSpace(v), []byte("null")) {
			return nil
		}
		if err := json.Unmarshal(v, dst); err != nil {
			return fmt.Errorf("field %q: %w", key, err)
		}
		return nil
	}
}

func takeAll(raw map[string]json.RawMessage, takers ...taker) error {
	for _, t := range takers {
		if err := t(raw); err != nil {
			return err
		}
	}
	return nil
}

// objectWriter emits a JSON object with a fixed key order and without
// HTML escaping.
type objectWriter struct {
	buf   bytes.Buffer
	count int
	err   error
}

func newObjectWriter() *objectWriter {
	w := &objectWriter{}
	w.buf.WriteByte('{')
	return w
}

func (w *objectWriter) field(key string, v any) {
	if w.err != nil {
		return
	}
	val, err := marshalNoEscape(v)
	if err != nil {
		w.err = fmt.Errorf("field %q: %w", key, err)
		return
	}
	w.raw(key, val)
}

func (w *objectWriter) optional(key, v string) {
	if v == "" {
		return
	}
	w.field(key, v)
}

// required writes key even when empty if the node type demands it.
func (w *objectWriter) required(demanded bool, key, v string) {
	if demanded {
		w.field(key, v)
		return
	}
	w.optional(key, v)
}

func (w *objectWriter) raw(key string, val []byte) {
	if w.count > 0 {
		w.buf.WriteByte(',')
	}
	k, _ := marshalNoEscape(key)
	w.buf.Write(k)
	w.buf.WriteByte(':')
	w.buf.Write(val)
	w.count++
}

func (w *objectWriter) extras(extra map[string]json.RawMessage) {
	if w.err != nil || len(extra) == 0 {
		return
	}
	keys := make([]string, 0, len(extra))
	for k := range extra {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		var compact bytes.Buffer
		if err := json.Compact(&compact, extra[k]); err != nil {
			w.err = fmt.Errorf("field %q: %w", k, err)
			return
		}
		w.raw(k, compact.Bytes())
	}
}

func (w *objectWriter) close() ([]byte, error) {
	if w.err != nil {
		return nil, w.err
	}
	w.buf.WriteByte('}')
	return w.buf.Bytes(), nil
}

// marshalNoEscape encodes v without escaping <, > and & so markdown in node
// text stays readable in the file.
func marshalNoEscape(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
