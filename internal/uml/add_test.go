package uml

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/classcanvas/internal/canvas"
	"github.com/vk/classcanvas/internal/config"
	"github.com/vk/classcanvas/internal/ctxlog"
	"github.com/vk/classcanvas/internal/header"
)

func shellGroup(p *config.Project) *config.Group {
	g := &config.Group{
		Name:     "shell",
		Anchor:   "ofApp",
		DefaultX: -500,
		DefaultY: -50,
		Members: []*config.Member{
			{Name: "ofApp"},
			{Name: "KeyboardHandler", Methods: []string{"handleKey", "reset"}},
			{Name: "Clock"},
			{Name: "UIManager", Description: "Draws UI", Abstract: true},
		},
	}
	p.Groups[g.Name] = g
	p.ApplyDefaults()
	return g
}

func shellScanner() *fakeScanner {
	return &fakeScanner{results: map[string]header.Result{
		"KeyboardHandler": {
			Header:  "/src/shell/KeyboardHandler.h",
			Methods: []string{"handleKeyPressed", "update", "isShift"},
		},
	}}
}

func TestAddGroup(t *testing.T) {
	// --- Arrange ---
	p := testProject()
	g := shellGroup(p)
	doc := canvas.New()
	doc.AddNodes(
		&canvas.Node{ID: "app", Type: canvas.TypeText, Text: "ofApp", X: 100, Y: 200, Width: 280, Height: 100},
		&canvas.Node{ID: "clock", Type: canvas.TypeText, Text: "Clock", X: 900, Y: 200, Width: 280, Height: 100},
	)
	s := shellScanner()

	// --- Act ---
	stats, err := AddGroup(context.Background(), doc, g, s, p)

	// --- Assert ---
	require.NoError(t, err)
	assert.Equal(t, Stats{Added: 2}, stats)
	assert.Equal(t, []string{"KeyboardHandler", "UIManager"}, s.calls)
	require.Len(t, doc.Nodes, 4)

	idx := canvas.IndexClasses(doc)
	kb := idx.ByName["KeyboardHandler"]
	require.NotNil(t, kb)
	assert.Equal(t, 100.0, kb.X)
	assert.Equal(t, 600.0, kb.Y)
	assert.Equal(t, 280.0, kb.Width)
	assert.Equal(t, "# KeyboardHandler.h\n\n**Key Methods:**\n- `handleKeyPressed()`\n- `update()`\n- `isShift()`", kb.Text)

	ui := idx.ByName["UIManager"]
	require.NotNil(t, ui)
	assert.Equal(t, 100.0, ui.X)
	assert.Equal(t, 750.0, ui.Y)
	assert.Equal(t, 320.0, ui.Width)
	assert.Equal(t, 140.0, ui.Height)
	assert.Equal(t, "# UIManager.h\n\n*Draws UI*\n", ui.Text)

	t.Run("second run adds nothing", func(t *testing.T) {
		again, err := AddGroup(context.Background(), doc, g, shellScanner(), p)
		require.NoError(t, err)
		assert.Equal(t, 0, again.Added)
	})
}

func TestAddGroup_WithoutAnchorUsesDefaultPosition(t *testing.T) {
	p := testProject()
	g := shellGroup(p)
	doc := canvas.New()

	stats, err := AddGroup(context.Background(), doc, g, &fakeScanner{}, p)

	require.NoError(t, err)
	assert.Equal(t, 3, stats.Added)
	idx := canvas.IndexClasses(doc)
	assert.False(t, idx.Has("ofApp"))
	kb := idx.ByName["KeyboardHandler"]
	require.NotNil(t, kb)
	assert.Equal(t, -500.0, kb.X)
	assert.Equal(t, 350.0, kb.Y)
	assert.Equal(t, "# KeyboardHandler.h\n\n**Key Methods:**\n- `handleKey()`\n- `reset()`", kb.Text)
	assert.Equal(t, "# Clock.h\n\n*Central timing*\n", idx.ByName["Clock"].Text)
}

func TestAddGroup_NoMembers(t *testing.T) {
	p := testProject()

	_, err := AddGroup(context.Background(), canvas.New(), &config.Group{Name: "empty"}, &fakeScanner{}, p)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "has no members")
}

func TestAddGroup_KeepsLifecycleMethodsWithoutExclusions(t *testing.T) {
	// --- Arrange ---
	root := t.TempDir()
	src := `class EditorShell : public Shell {
public:
    void setup() override;
    void update() override;
    void draw() override;
    void exit();
    bool handleKeyPress(int key);
    void setDrawGUICallback(int cb);
};
`
	require.NoError(t, os.MkdirAll(filepath.Join(root, "shell"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "shell", "EditorShell.h"), []byte(src), 0o644))

	s, err := header.NewScanner(
		&header.Locator{Root: root, Subdirs: []string{"shell"}},
		header.ScannerOptions{Exclude: header.NewExclude()},
	)
	require.NoError(t, err)

	p := testProject()
	g := &config.Group{Name: "shell", Members: []*config.Member{{Name: "EditorShell"}}}
	p.Groups[g.Name] = g
	p.ApplyDefaults()
	doc := canvas.New()
	var logs bytes.Buffer
	ctx := ctxlog.WithLogger(context.Background(), slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug})))

	// --- Act ---
	stats, err := AddGroup(ctx, doc, g, s, p)

	// --- Assert ---
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Added)
	node := canvas.IndexClasses(doc).ByName["EditorShell"]
	require.NotNil(t, node)
	want := "# EditorShell.h\n\n**Key Methods:**\n" +
		"- `setup()`\n- `update()`\n- `draw()`\n- `handleKeyPress()`\n- `setDrawGUICallback()`\n- `exit()`"
	assert.Equal(t, want, node.Text)
	assert.Contains(t, logs.String(), `msg="Scanned header." group=shell class=EditorShell`)
}
