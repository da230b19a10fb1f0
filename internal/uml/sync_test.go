package uml

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/classcanvas/internal/canvas"
	"github.com/vk/classcanvas/internal/config"
)

func existingDoc() *canvas.Document {
	doc := canvas.New()
	doc.AddNodes(
		&canvas.Node{ID: "n1", Type: canvas.TypeText, Text: "# Engine.cpp/h\n\nold", X: 800, Y: 120, Width: 260, Height: 60},
		&canvas.Node{ID: "n2", Type: canvas.TypeText, Text: "**Core Systems**", X: 800, Y: 0, Width: 300, Height: 80},
		&canvas.Node{ID: "n3", Type: canvas.TypeFile, File: "notes.md", X: 0, Y: 0, Width: 100, Height: 100},
	)
	return doc
}

func TestSync(t *testing.T) {
	// --- Arrange ---
	p := testProject()
	c, err := NewCatalog(p)
	require.NoError(t, err)
	doc := existingDoc()
	doc.Edges = []*canvas.Edge{{ID: "old", FromNode: "n1", ToNode: "n2"}}

	// --- Act ---
	stats := Sync(context.Background(), doc, c, p)

	// --- Assert ---
	assert.Equal(t, Stats{Added: 7}, stats)
	require.Len(t, doc.Nodes, 10)
	assert.Empty(t, doc.Edges)
	assert.Contains(t, doc.Extra, "metadata")

	engine, ok := doc.NodeByID("n1")
	require.True(t, ok)
	assert.Equal(t, 800.0, engine.X)
	assert.Equal(t, "# Engine.cpp/h\n\nold", engine.Text)

	idx := canvas.IndexClasses(doc)
	testCases := []struct {
		class  string
		x, y   float64
		width  float64
		height float64
		text   string
	}{
		{class: "Clock", x: 220, y: -1000, width: 260, height: 60, text: "Clock"},
		{class: "ModuleRegistry", x: -120, y: -920, width: 260, height: 60, text: "ModuleRegistry"},
		{class: "ofApp", x: -900, y: -700, width: 260, height: 60, text: "ofApp"},
		{class: "ofBaseApp", x: -900, y: -800, width: 300, height: 200, text: "*ofBaseApp*\n(abstract)"},
		{class: "Module", x: 0, y: 0, width: 300, height: 200, text: "*Module*\n(abstract)"},
		{class: "Sequencer", x: 0, y: 100, width: 260, height: 60, text: "Sequencer"},
		{class: "Sampler", x: 0, y: 0, width: 260, height: 60, text: "Sampler"},
	}
	for _, tc := range testCases {
		t.Run(tc.class, func(t *testing.T) {
			n, ok := idx.ByName[tc.class]
			require.True(t, ok)
			assert.Len(t, n.ID, 16)
			assert.Equal(t, tc.x, n.X)
			assert.Equal(t, tc.y, n.Y)
			assert.Equal(t, tc.width, n.Width)
			assert.Equal(t, tc.height, n.Height)
			assert.Equal(t, tc.text, n.Text)
			assert.Contains(t, n.Extra, "styleAttributes")
		})
	}

	require.NoError(t, canvas.Validate(doc))
}

func TestSync_IsIdempotent(t *testing.T) {
	p := testProject()
	c, err := NewCatalog(p)
	require.NoError(t, err)
	doc := existingDoc()

	Sync(context.Background(), doc, c, p)
	stats := Sync(context.Background(), doc, c, p)

	assert.Equal(t, 0, stats.Added)
	assert.Len(t, doc.Nodes, 10)
}

func TestSync_EdgePolicies(t *testing.T) {
	testCases := []struct {
		policy  config.EdgePolicy
		wantLen int
	}{
		{policy: config.EdgesKeep, wantLen: 1},
		{policy: config.EdgesClear, wantLen: 0},
		{policy: config.EdgesKey, wantLen: 4},
		{policy: config.EdgesAll, wantLen: 6},
	}
	for _, tc := range testCases {
		t.Run(string(tc.policy), func(t *testing.T) {
			// --- Arrange ---
			p := testProject()
			p.Sync.Edges = tc.policy
			c, err := NewCatalog(p)
			require.NoError(t, err)
			doc := existingDoc()
			doc.Edges = []*canvas.Edge{{ID: "old", FromNode: "n1", ToNode: "n2"}}

			// --- Act ---
			stats := Sync(context.Background(), doc, c, p)

			// --- Assert ---
			assert.Equal(t, tc.wantLen, stats.Edges)
			require.Len(t, doc.Edges, tc.wantLen)
			if tc.policy == config.EdgesKey || tc.policy == config.EdgesAll {
				assert.Equal(t, "edge-0", doc.Edges[0].ID)
			}
		})
	}
}
