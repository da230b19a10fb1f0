package uml

import (
	"context"

	"github.com/vk/classcanvas/internal/config"
	"github.com/vk/classcanvas/internal/header"
)

// testProject is a small project with three layers and a few relations.
func testProject() *config.Project {
	p := &config.Project{
		Layers: []*config.Layer{
			{
				Name: "application", Label: "Application Layer", Color: "#95A5A6",
				X: 0, Y: 0, Classes: []string{"ofApp", "ofBaseApp"},
				Sync: config.Placement{X: -900, Y: -700, Strategy: config.StrategyStackUp},
			},
			{
				Name: "core", Label: "Core Systems", Color: "4",
				X: 800, Y: 0, Classes: []string{"Engine", "Clock", "ModuleRegistry"},
				Sync: config.Placement{X: -120, Y: -1000, Strategy: config.StrategyGrid, ColumnWidth: 340},
			},
			{
				Name: "modules", Label: "Modules",
				X: 1600, Y: 0, Classes: []string{"Module", "Sequencer"},
			},
		},
		Classes: map[string]*config.Class{
			"ofBaseApp":    {Name: "ofBaseApp", Abstract: true},
			"Module":       {Name: "Module", Abstract: true, Description: "Base of all modules"},
			"TriggerEvent": {Name: "TriggerEvent", Struct: true, Description: "Event data"},
			"Clock":        {Name: "Clock", Description: "Central timing"},
		},
		Relations: config.Relations{
			Inheritance: map[string]string{
				"ofApp":     "ofBaseApp",
				"Sequencer": "Module",
				"Sampler":   "Module",
				"Clock":     "ofxSoundOutput",
			},
			Composition:    map[string][]string{"ofApp": {"Clock", "Engine", "Missing"}},
			Association:    map[string][]string{"ModuleRegistry": {"Module", "ModuleRegistry"}, "Module": {"Sequencer"}},
			KeyComposition: map[string][]string{"ofApp": {"ModuleRegistry"}},
		},
	}
	p.ApplyDefaults()
	return p
}

// fakeScanner returns canned results keyed by class name.
type fakeScanner struct {
	results map[string]header.Result
	calls   []string
	kinds   map[string]header.Kind
}

func (f *fakeScanner) Scan(_ context.Context, class string, kind header.Kind) header.Result {
	f.calls = append(f.calls, class)
	if f.kinds == nil {
		f.kinds = make(map[string]header.Kind)
	}
	f.kinds[class] = kind
	if r, ok := f.results[class]; ok {
		r.Class = class
		return r
	}
	return header.Result{Class: class, Methods: []string{}}
}
