package canvas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validDoc() *Document {
	doc := New()
	doc.AddNodes(
		&Node{ID: "a", Type: TypeText, Width: 280, Height: 100, Color: "1"},
		&Node{ID: "b", Type: TypeText, Width: 280, Height: 100, Color: "#4A90E2"},
	)
	doc.Edges = append(doc.Edges, &Edge{ID: "e", FromNode: "a", FromSide: SideTop, ToNode: "b", ToSide: SideBottom, Color: "2"})
	return doc
}

func TestValidate(t *testing.T) {
	testCases := []struct {
		name    string
		mutate  func(d *Document)
		wantErr string
	}{
		{name: "valid", mutate: func(d *Document) {}},
		{name: "missing id", mutate: func(d *Document) { d.Nodes[0].ID = ""; d.Edges = nil }, wantErr: "ID"},
		{name: "duplicate id", mutate: func(d *Document) { d.Nodes[1].ID = "a"; d.Edges = nil }, wantErr: `duplicate id "a"`},
		{name: "bad type", mutate: func(d *Document) { d.Nodes[0].Type = "shape" }, wantErr: "oneof"},
		{name: "zero width", mutate: func(d *Document) { d.Nodes[0].Width = 0 }, wantErr: "Width"},
		{name: "bad color", mutate: func(d *Document) { d.Nodes[0].Color = "blue" }, wantErr: "canvascolor"},
		{name: "bad side", mutate: func(d *Document) { d.Edges[0].FromSide = "middle" }, wantErr: "FromSide"},
		{name: "dangling edge", mutate: func(d *Document) { d.Edges[0].ToNode = "zzz" }, wantErr: `unknown node "zzz"`},
		{name: "null node", mutate: func(d *Document) { d.Nodes = append(d.Nodes, nil) }, wantErr: "is null"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			doc := validDoc()
			tc.mutate(doc)

			err := Validate(doc)

			if tc.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestColors(t *testing.T) {
	assert.True(t, IsPresetColor("6"))
	assert.False(t, IsPresetColor("7"))
	assert.True(t, IsColor("#fff"))
	assert.True(t, IsColor("#A1B2C3"))
	assert.False(t, IsColor("#A1B2C"))

	assert.Equal(t, "3", CompatColor("3"))
	assert.Equal(t, "1", CompatColor("#E74C3C"))
	assert.Equal(t, "", CompatColor(""))
}

func TestNewID(t *testing.T) {
	id := NewID()
	assert.Regexp(t, `^[0-9a-f]{16}$`, id)
	assert.NotEqual(t, id, NewID())
	assert.Regexp(t, `^[0-9a-f]{8}$`, ShortID())
}
