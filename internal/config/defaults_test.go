package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_AppliesDefaults(t *testing.T) {
	p := New()

	assert.Equal(t, DefaultCanvasPath, p.Canvas.Path)
	assert.Equal(t, []string{".h", ".hpp"}, p.Source.HeaderExts)
	assert.Equal(t, []string{".cpp"}, p.Source.ImplExts)
	assert.Contains(t, p.Source.Subdirs, "shell")
	assert.Equal(t, "body", p.Methods.Extractor)
	assert.Contains(t, p.Methods.Exclude, "getName")
	assert.Equal(t, 8, p.Methods.Limit)
	assert.Equal(t, 6, p.Methods.Priority)
	assert.Equal(t, StylePlain, p.Methods.Style)
	assert.Equal(t, Size{Width: 280, Height: 100}, p.Generate.ClassSize)
	assert.Equal(t, Size{Width: 300, Height: 120}, p.Generate.AbstractSize)
	assert.Equal(t, Size{Width: 300, Height: 80}, p.Generate.HeaderSize)
	assert.Equal(t, 150.0, p.Generate.Spacing)
	assert.Equal(t, 120.0, p.Generate.HeaderGap)
	assert.Equal(t, Size{Width: 260, Height: 60}, p.Sync.ClassSize)
	assert.Equal(t, Size{Width: 300, Height: 200}, p.Sync.AbstractSize)
	assert.Equal(t, EdgesClear, p.Sync.Edges)
	assert.Equal(t, DefaultNotifyEvent, p.Notify.Event)
	assert.Equal(t, 5*time.Second, p.Notify.Timeout)
	assert.False(t, p.Notify.Enabled())
	require.NoError(t, p.Validate())
}

func TestApplyDefaults_LayersAndGroups(t *testing.T) {
	// --- Arrange ---
	p := &Project{
		Layers: []*Layer{
			{Name: "cells", Sync: Placement{Strategy: StrategyStackRight}},
			{Name: "core", Label: "Core Systems", Sync: Placement{Strategy: StrategyGrid, ColumnWidth: 340}},
			{Name: "misc"},
		},
		Groups: map[string]*Group{
			"shell": {Anchor: "Shell", Members: []*Member{{Name: "EditorShell"}}},
		},
	}

	// --- Act ---
	p.ApplyDefaults()

	// --- Assert ---
	assert.Equal(t, "cells", p.Layers[0].Label)
	assert.Equal(t, 300.0, p.Layers[0].Sync.Step)
	assert.Equal(t, "Core Systems", p.Layers[1].Label)
	assert.Equal(t, 340.0, p.Layers[1].Sync.ColumnWidth)
	assert.Equal(t, 80.0, p.Layers[1].Sync.RowHeight)
	assert.Equal(t, 2, p.Layers[1].Sync.Columns)
	assert.Equal(t, StrategyStackDown, p.Layers[2].Sync.Strategy)
	assert.Equal(t, 100.0, p.Layers[2].Sync.Step)

	g := p.Groups["shell"]
	assert.Equal(t, 400.0, g.Offset)
	assert.Equal(t, 150.0, g.Spacing)
	assert.Equal(t, Size{Width: 320, Height: 140}, g.AbstractSize)
	assert.Equal(t, StyleHeading, g.Style)
	require.NoError(t, p.Validate())
}

func TestValidate(t *testing.T) {
	testCases := []struct {
		name    string
		mutate  func(p *Project)
		wantErr string
	}{
		{
			name:    "unknown strategy",
			mutate:  func(p *Project) { p.Layers[0].Sync.Strategy = "spiral" },
			wantErr: "unknown placement strategy 'spiral'",
		},
		{
			name: "class in two layers",
			mutate: func(p *Project) {
				p.Layers = append(p.Layers, &Layer{Name: "other", Classes: []string{"Clock"}, Sync: Placement{Strategy: StrategyFixed, Columns: 1}})
			},
			wantErr: "class 'Clock' is listed in layers 'core' and 'other'",
		},
		{
			name:    "bad edge policy",
			mutate:  func(p *Project) { p.Sync.Edges = "some" },
			wantErr: "unknown edge policy 'some'",
		},
		{
			name:    "bad style",
			mutate:  func(p *Project) { p.Methods.Style = "fancy" },
			wantErr: "unknown text style 'fancy'",
		},
		{
			name:    "bad extractor",
			mutate:  func(p *Project) { p.Methods.Extractor = "ast" },
			wantErr: "unknown extractor 'ast'",
		},
		{
			name:    "priority above limit",
			mutate:  func(p *Project) { p.Methods.Priority = 10 },
			wantErr: "priority (10) exceeds limit (8)",
		},
		{
			name:    "empty group",
			mutate:  func(p *Project) { p.Groups["empty"] = &Group{Style: StylePlain} },
			wantErr: "group 'empty' has no members",
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p := New()
			p.Layers = []*Layer{{Name: "core", Classes: []string{"Clock"}}}
			p.ApplyDefaults()
			tc.mutate(p)

			err := p.Validate()

			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestProjectLookups(t *testing.T) {
	p := New()
	p.Layers = []*Layer{{Name: "core"}}
	p.Classes["Port"] = &Class{Name: "Port", Struct: true}

	l, ok := p.Layer("core")
	require.True(t, ok)
	assert.Equal(t, "core", l.Name)
	_, ok = p.Layer("nope")
	assert.False(t, ok)

	assert.True(t, p.Class("Port").Struct)
	assert.Equal(t, "Clock", p.Class("Clock").Name)
	assert.False(t, p.Class("Clock").Abstract)
}
