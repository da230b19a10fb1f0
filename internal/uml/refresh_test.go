package uml

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/classcanvas/internal/canvas"
	"github.com/vk/classcanvas/internal/header"
)

func refreshScanner() *fakeScanner {
	return &fakeScanner{results: map[string]header.Result{
		"Clock": {
			Header:         "/src/core/Clock.h",
			Implementation: "/src/core/Clock.cpp",
			Methods:        []string{"start", "stop"},
		},
		"Engine": {
			Header:      "/src/core/Engine.h",
			Description: "Runs everything",
			Methods:     []string{},
		},
		"TriggerEvent": {
			Header:  "/src/core/Events.h",
			Methods: []string{"step"},
		},
	}}
}

func TestRefresh(t *testing.T) {
	// --- Arrange ---
	p := testProject()
	doc := canvas.New()
	doc.AddNodes(
		&canvas.Node{ID: "clock", Type: canvas.TypeText, Text: "Clock", Width: 1, Height: 1},
		&canvas.Node{ID: "engine", Type: canvas.TypeText, Text: "# Engine.cpp/h\n\nold text", Width: 1, Height: 1},
		&canvas.Node{ID: "module", Type: canvas.TypeText, Text: "*Module*\n(abstract)", Width: 1, Height: 1},
		&canvas.Node{ID: "header", Type: canvas.TypeText, Text: "**Modules**", Width: 1, Height: 1},
		&canvas.Node{ID: "note", Type: canvas.TypeText, Text: "Not a class!", Width: 1, Height: 1},
		&canvas.Node{ID: "file", Type: canvas.TypeFile, File: "Clock.md", Width: 1, Height: 1},
	)
	s := refreshScanner()

	// --- Act ---
	stats := Refresh(context.Background(), doc, s, p)

	// --- Assert ---
	assert.Equal(t, Stats{Updated: 3, NotFound: 1, Skipped: 1}, stats)
	assert.Equal(t, []string{"Clock", "Engine", "Module"}, s.calls)

	want := map[string]string{
		"clock":  "# Clock.cpp/h\n\n*Central timing*\n\n- `start()`\n- `stop()`",
		"engine": "# Engine.h\n\n*Runs everything*\n",
		"module": "# Module.h\n\n*Base of all modules*\n",
		"header": "**Modules**",
		"note":   "Not a class!",
	}
	for id, text := range want {
		n, ok := doc.NodeByID(id)
		require.True(t, ok)
		assert.Equal(t, text, n.Text, id)
	}

	t.Run("second run changes nothing", func(t *testing.T) {
		again := Refresh(context.Background(), doc, refreshScanner(), p)
		assert.Equal(t, Stats{Unchanged: 3, NotFound: 1, Skipped: 1}, again)
	})
}

func TestDescribe(t *testing.T) {
	p := testProject()
	s := refreshScanner()

	t.Run("struct kind comes from class override", func(t *testing.T) {
		text, res := Describe(context.Background(), s, "TriggerEvent", p, NewDescriptions(p))

		assert.Equal(t, header.KindStruct, s.kinds["TriggerEvent"])
		assert.True(t, res.Found())
		assert.Equal(t, NodeText{Name: "TriggerEvent", Description: "Event data", Methods: []string{"step"}}, text)
	})

	t.Run("missing header has no implementation", func(t *testing.T) {
		s.results["Ghost"] = header.Result{Implementation: "/src/Ghost.cpp"}

		text, res := Describe(context.Background(), s, "Ghost", p, NewDescriptions(p))

		assert.Equal(t, header.KindClass, s.kinds["Ghost"])
		assert.False(t, res.Found())
		assert.False(t, text.HasImpl)
		assert.Empty(t, text.Methods)
	})
}
