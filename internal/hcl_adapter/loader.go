package hcl_adapter

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/vk/classcanvas/internal/config"
	"github.com/vk/classcanvas/internal/ctxlog"
	"github.com/vk/classcanvas/internal/header"
)

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct {
	// EnvFiles are .env files read before evaluation. Relative paths are
	// taken from the working directory; a .env next to the project file is
	// always tried as well.
	EnvFiles []string
}

// NewLoader creates a new HCL project loader that reads ./.env.
func NewLoader() *Loader {
	return &Loader{EnvFiles: []string{".env"}}
}

var _ config.Loader = (*Loader)(nil)

// Load parses the project file at path, evaluates it, and returns the
// translated project with defaults applied and validated. Relative canvas and
// source paths are resolved against the directory of the project file.
func (l *Loader) Load(ctx context.Context, path string) (*config.Project, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path", path)

	envFiles := append([]string(nil), l.EnvFiles...)
	envFiles = append(envFiles, filepath.Join(filepath.Dir(path), ".env"))
	env, err := loadEnv(dedupe(envFiles))
	if err != nil {
		return nil, err
	}
	evalCtx := newEvalContext(env)

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", path, diags)
	}

	var root fileRoot
	diags = gohcl.DecodeBody(file.Body, evalCtx, &root)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL file %s: %w", path, diags)
	}

	project, err := translate(&root)
	if err != nil {
		return nil, fmt.Errorf("in %s: %w", path, err)
	}
	project.ApplyDefaults()
	base := filepath.Dir(path)
	project.Canvas.Path = resolvePath(base, project.Canvas.Path)
	project.Source.Root = resolvePath(base, project.Source.Root)
	if project.Source.Root == "" {
		project.Source.Root = base
	}

	if err := project.Validate(); err != nil {
		return nil, fmt.Errorf("in %s: %w", path, err)
	}

	logger.Debug("HCL loading complete.",
		"layers", len(project.Layers),
		"class_overrides", len(project.Classes),
		"groups", len(project.Groups),
	)
	return project, nil
}

// translate converts the decoded HCL structures into the project model.
func translate(root *fileRoot) (*config.Project, error) {
	p := &config.Project{
		Canvas:  config.Canvas{CompatColors: true, Validate: true},
		Classes: make(map[string]*config.Class),
		Groups:  make(map[string]*config.Group),
	}

	if c := root.Canvas; c != nil {
		p.Canvas.Path = c.Path
		p.Canvas.Indent = c.Indent
		if c.CompatColors != nil {
			p.Canvas.CompatColors = *c.CompatColors
		}
		if c.Validate != nil {
			p.Canvas.Validate = *c.Validate
		}
	}

	if s := root.Source; s != nil {
		p.Source = config.Source{
			Root:       s.Root,
			Subdirs:    s.Subdirs,
			HeaderExts: s.Extensions,
			ImplExts:   s.Impl,
		}
	}

	layerNames := make(map[string]bool)
	for _, lb := range root.Layers {
		if layerNames[lb.Name] {
			return nil, fmt.Errorf("layer '%s' is defined more than once", lb.Name)
		}
		layerNames[lb.Name] = true
		layer := &config.Layer{
			Name:    lb.Name,
			Label:   lb.Label,
			Color:   lb.Color,
			X:       lb.X,
			Y:       lb.Y,
			Classes: lb.Classes,
		}
		if pb := lb.Sync; pb != nil {
			layer.Sync = config.Placement{
				X:           pb.X,
				Y:           pb.Y,
				Strategy:    config.Strategy(pb.Strategy),
				Columns:     pb.Columns,
				ColumnWidth: pb.ColumnWidth,
				RowHeight:   pb.RowHeight,
				Step:        pb.Step,
			}
		}
		p.Layers = append(p.Layers, layer)
	}

	for _, cb := range root.Classes {
		if _, dup := p.Classes[cb.Name]; dup {
			return nil, fmt.Errorf("class '%s' is defined more than once", cb.Name)
		}
		var isStruct bool
		switch cb.Kind {
		case "", "class":
		case "struct":
			isStruct = true
		default:
			return nil, fmt.Errorf("class '%s': kind must be \"class\" or \"struct\", got '%s'", cb.Name, cb.Kind)
		}
		p.Classes[cb.Name] = &config.Class{
			Name:        cb.Name,
			File:        cb.File,
			Struct:      isStruct,
			Abstract:    cb.Abstract,
			Description: cb.Description,
		}
	}

	if r := root.Relations; r != nil {
		p.Relations = config.Relations{
			Inheritance:    r.Inheritance,
			Composition:    r.Composition,
			Association:    r.Association,
			KeyComposition: r.KeyComposition,
			KeyAssociation: r.KeyAssociation,
		}
	}

	if m := root.Methods; m != nil {
		p.Methods = config.Methods{
			Extractor: m.Extractor,
			Limit:     m.Limit,
			Priority:  m.Priority,
			Style:     config.TextStyle(m.Style),
			CacheSize: m.CacheSize,
		}
		if m.Lookback != nil {
			p.Methods.Lookback = *m.Lookback
			if p.Methods.Lookback <= 0 {
				p.Methods.Lookback = config.UnboundedLookback
			}
		}
		switch {
		case m.NoDefaultExclude:
			p.Methods.Exclude = append([]string{}, m.Exclude...)
		case len(m.Exclude) > 0:
			p.Methods.Exclude = append(append([]string(nil), header.DefaultExclude...), m.Exclude...)
		}
	}

	if g := root.Generate; g != nil {
		p.Generate = config.Generate{
			ClassSize:     config.Size{Width: g.ClassWidth, Height: g.ClassHeight},
			AbstractSize:  config.Size{Width: g.AbstractWidth, Height: g.AbstractHeight},
			HeaderSize:    config.Size{Width: g.HeaderWidth, Height: g.HeaderHeight},
			Spacing:       g.Spacing,
			HeaderGap:     g.HeaderGap,
			FallbackLayer: g.FallbackLayer,
			Edges:         g.Edges,
			Groups:        g.Groups,
			GroupPadding:  g.GroupPadding,
		}
	}

	if s := root.Sync; s != nil {
		p.Sync = config.Sync{
			ClassSize:    config.Size{Width: s.ClassWidth, Height: s.ClassHeight},
			AbstractSize: config.Size{Width: s.AbstractWidth, Height: s.AbstractHeight},
			Edges:        config.EdgePolicy(s.Edges),
		}
	}

	for _, gb := range root.Groups {
		if _, dup := p.Groups[gb.Name]; dup {
			return nil, fmt.Errorf("group '%s' is defined more than once", gb.Name)
		}
		group := &config.Group{
			Name:         gb.Name,
			Anchor:       gb.Anchor,
			DefaultX:     gb.DefaultX,
			DefaultY:     gb.DefaultY,
			Offset:       gb.Offset,
			Spacing:      gb.Spacing,
			ClassSize:    config.Size{Width: gb.ClassWidth, Height: gb.ClassHeight},
			AbstractSize: config.Size{Width: gb.AbstractWidth, Height: gb.AbstractHeight},
			Style:        config.TextStyle(gb.Style),
			Exclude:      gb.Exclude,
		}
		members := make(map[string]bool)
		for _, mb := range gb.Members {
			if members[mb.Name] {
				return nil, fmt.Errorf("group '%s': member '%s' is defined more than once", gb.Name, mb.Name)
			}
			members[mb.Name] = true
			group.Members = append(group.Members, &config.Member{
				Name:        mb.Name,
				File:        mb.File,
				Description: mb.Description,
				Abstract:    mb.Abstract,
				Methods:     mb.Methods,
			})
		}
		p.Groups[gb.Name] = group
	}

	if n := root.Notify; n != nil {
		p.Notify = config.Notify{
			URL:       n.URL,
			Namespace: n.Namespace,
			Event:     n.Event,
		}
		if n.Timeout != "" {
			d, err := time.ParseDuration(n.Timeout)
			if err != nil {
				return nil, fmt.Errorf("notify: invalid timeout '%s': %w", n.Timeout, err)
			}
			p.Notify.Timeout = d
		}
	}

	return p, nil
}

// resolvePath expands a leading ~ and makes relative paths relative to base.
func resolvePath(base, p string) string {
	if p == "" {
		return p
	}
	if p == "~" || strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			p = filepath.Join(home, strings.TrimPrefix(p, "~"))
		}
	}
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(base, p)
}

func dedupe(paths []string) []string {
	seen := make(map[string]bool, len(paths))
	out := paths[:0]
	for _, p := range paths {
		key := filepath.Clean(p)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, p)
	}
	return out
}
