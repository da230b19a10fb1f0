package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/vk/classcanvas/internal/header"
)

// Defaults for values a project file may leave out.
const (
	DefaultCanvasPath    = "diagram.canvas"
	DefaultFallbackLayer = "utilities"
	DefaultMethodLimit   = 8
	DefaultPriority      = 6
	DefaultGroupOffset   = 400
	DefaultGroupSpacing  = 150
	DefaultNotifyEvent   = "canvas:updated"
	DefaultNotifyTimeout = 5 * time.Second

	// UnboundedLookback searches the whole text before a declaration.
	UnboundedLookback = -1
)

// New returns a Project with every default applied and no layers.
func New() *Project {
	p := &Project{
		Classes: make(map[string]*Class),
		Groups:  make(map[string]*Group),
	}
	p.ApplyDefaults()
	return p
}

// ApplyDefaults fills zero values with defaults. It is safe to call more
// than once.
func (p *Project) ApplyDefaults() {
	if p.Canvas.Path == "" {
		p.Canvas.Path = DefaultCanvasPath
	}
	if len(p.Source.Subdirs) == 0 {
		p.Source.Subdirs = append([]string(nil), header.DefaultSubdirs...)
	}
	if len(p.Source.HeaderExts) == 0 {
		p.Source.HeaderExts = append([]string(nil), header.DefaultHeaderExts...)
	}
	if len(p.Source.ImplExts) == 0 {
		p.Source.ImplExts = append([]string(nil), header.DefaultImplementation...)
	}
	if p.Classes == nil {
		p.Classes = make(map[string]*Class)
	}
	if p.Groups == nil {
		p.Groups = make(map[string]*Group)
	}

	m := &p.Methods
	if m.Extractor == "" {
		m.Extractor = string(header.ExtractBody)
	}
	if m.Exclude == nil {
		m.Exclude = append([]string(nil), header.DefaultExclude...)
	}
	if m.Lookback == 0 {
		m.Lookback = header.DefaultLookback
	}
	if m.Limit == 0 {
		m.Limit = DefaultMethodLimit
	}
	if m.Priority == 0 {
		m.Priority = DefaultPriority
	}
	if m.Style == "" {
		m.Style = StylePlain
	}

	g := &p.Generate
	defaultSize(&g.ClassSize, 280, 100)
	defaultSize(&g.AbstractSize, 300, 120)
	defaultSize(&g.HeaderSize, 300, 80)
	if g.Spacing == 0 {
		g.Spacing = 150
	}
	if g.HeaderGap == 0 {
		g.HeaderGap = 120
	}
	if g.FallbackLayer == "" {
		g.FallbackLayer = DefaultFallbackLayer
	}
	if g.GroupPadding == 0 {
		g.GroupPadding = 50
	}

	s := &p.Sync
	defaultSize(&s.ClassSize, 260, 60)
	defaultSize(&s.AbstractSize, 300, 200)
	if s.Edges == "" {
		s.Edges = EdgesClear
	}

	for _, l := range p.Layers {
		if l.Label == "" {
			l.Label = l.Name
		}
		pl := &l.Sync
		if pl.Strategy == "" {
			pl.Strategy = StrategyStackDown
		}
		if pl.Columns == 0 {
			pl.Columns = 2
		}
		if pl.ColumnWidth == 0 {
			pl.ColumnWidth = 280
		}
		if pl.RowHeight == 0 {
			pl.RowHeight = 80
		}
		if pl.Step == 0 {
			pl.Step = 100
			if pl.Strategy == StrategyStackRight {
				pl.Step = 300
			}
		}
	}

	for _, grp := range p.Groups {
		if grp.Offset == 0 {
			grp.Offset = DefaultGroupOffset
		}
		if grp.Spacing == 0 {
			grp.Spacing = DefaultGroupSpacing
		}
		defaultSize(&grp.ClassSize, 280, 100)
		defaultSize(&grp.AbstractSize, 320, 140)
		if grp.Style == "" {
			grp.Style = StyleHeading
		}
	}

	if p.Notify.Event == "" {
		p.Notify.Event = DefaultNotifyEvent
	}
	if p.Notify.Namespace == "" {
		p.Notify.Namespace = "/"
	}
	if p.Notify.Timeout == 0 {
		p.Notify.Timeout = DefaultNotifyTimeout
	}
}

func defaultSize(s *Size, w, h float64) {
	if s.Width == 0 {
		s.Width = w
	}
	if s.Height == 0 {
		s.Height = h
	}
}

// Validate reports every inconsistency in the project at once.
func (p *Project) Validate() error {
	var errs []error
	seen := make(map[string]string)
	for _, l := range p.Layers {
		if !l.Sync.Strategy.Valid() {
			errs = append(errs, fmt.Errorf("layer '%s': unknown placement strategy '%s'", l.Name, l.Sync.Strategy))
		}
		if l.Sync.Columns < 1 {
			errs = append(errs, fmt.Errorf("layer '%s': columns must be at least 1", l.Name))
		}
		for _, c := range l.Classes {
			if prev, ok := seen[c]; ok && prev != l.Name {
				errs = append(errs, fmt.Errorf("class '%s' is listed in layers '%s' and '%s'", c, prev, l.Name))
				continue
			}
			seen[c] = l.Name
		}
	}
	if !p.Sync.Edges.Valid() {
		errs = append(errs, fmt.Errorf("sync: unknown edge policy '%s'", p.Sync.Edges))
	}
	if !p.Methods.Style.Valid() {
		errs = append(errs, fmt.Errorf("methods: unknown text style '%s'", p.Methods.Style))
	}
	if !header.Extractor(p.Methods.Extractor).Valid() {
		errs = append(errs, fmt.Errorf("methods: unknown extractor '%s'", p.Methods.Extractor))
	}
	if p.Methods.Priority > p.Methods.Limit {
		errs = append(errs, fmt.Errorf("methods: priority (%d) exceeds limit (%d)", p.Methods.Priority, p.Methods.Limit))
	}
	for name, g := range p.Groups {
		if !g.Style.Valid() {
			errs = append(errs, fmt.Errorf("group '%s': unknown text style '%s'", name, g.Style))
		}
		if len(g.Members) == 0 {
			errs = append(errs, fmt.Errorf("group '%s' has no members", name))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid project: %w", errors.Join(errs...))
	}
	return nil
}
