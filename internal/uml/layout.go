package uml

import (
	"encoding/json"

	"github.com/vk/classcanvas/internal/canvas"
	"github.com/vk/classcanvas/internal/config"
)

// Placed is a class with its position and size on the canvas.
type Placed struct {
	Class         *Class
	X, Y          float64
	Width, Height float64
}

// Layout stacks each layer's classes below the layer header, abstract
// classes first and then by name, spaced evenly.
func Layout(c *Catalog, p *config.Project) []Placed {
	g := p.Generate
	var out []Placed
	for _, layerName := range c.Layers(p) {
		var x, y float64
		if l, ok := p.Layer(layerName); ok {
			x, y = l.X, l.Y
		}
		for i, cls := range c.Sorted(layerName) {
			size := g.ClassSize
			if cls.Abstract {
				size = g.AbstractSize
			}
			out = append(out, Placed{
				Class:  cls,
				X:      x,
				Y:      y + g.HeaderGap + float64(i)*g.Spacing,
				Width:  size.Width,
				Height: size.Height,
			})
		}
	}
	return out
}

// Place returns where the index-th node added to a layer goes.
func Place(pl config.Placement, index int) (x, y float64) {
	i := float64(index)
	switch pl.Strategy {
	case config.StrategyGrid:
		cols := pl.Columns
		if cols < 1 {
			cols = 1
		}
		col := float64(index % cols)
		row := float64(index / cols)
		return pl.X + col*pl.ColumnWidth, pl.Y + row*pl.RowHeight
	case config.StrategyStackUp:
		return pl.X, pl.Y - i*pl.Step
	case config.StrategyStackRight:
		return pl.X + i*pl.Step, pl.Y
	case config.StrategyFixed:
		return pl.X, pl.Y
	default:
		return pl.X, pl.Y + i*pl.Step
	}
}

// DisplayText is the minimal text of a class node before it is refreshed
// from its header.
func DisplayText(name string, abstract bool) string {
	if abstract {
		return "*" + name + "*\n(abstract)"
	}
	return name
}

// color returns c in the form the project asks for.
func color(p *config.Project, c string) string {
	if p.Canvas.CompatColors {
		return canvas.CompatColor(c)
	}
	return c
}

// Stats summarizes what a command changed.
type Stats struct {
	Added     int `yaml:"added" json:"added"`
	Updated   int `yaml:"updated" json:"updated"`
	Unchanged int `yaml:"unchanged" json:"unchanged"`
	NotFound  int `yaml:"not_found" json:"not_found"`
	Skipped   int `yaml:"skipped" json:"skipped"`
	Edges     int `yaml:"edges" json:"edges"`
}

// Generate builds a fresh diagram: a header node per layer, a node per
// class, and optionally relationship edges and a group around each layer.
func Generate(c *Catalog, p *config.Project) (*canvas.Document, Stats) {
	doc := canvas.New()
	var stats Stats

	for _, l := range p.Layers {
		doc.AddNodes(&canvas.Node{
			ID:     "header-" + l.Name,
			Type:   canvas.TypeText,
			X:      l.X,
			Y:      l.Y,
			Width:  p.Generate.HeaderSize.Width,
			Height: p.Generate.HeaderSize.Height,
			Text:   headerText(l),
			Color:  color(p, layerColor(l)),
		})
	}

	placed := Layout(c, p)
	ids := make(map[string]string, len(placed))
	for _, pc := range placed {
		id := "class-" + canvas.ShortID()
		ids[pc.Class.Name] = id
		var col string
		if l, ok := p.Layer(pc.Class.Layer); ok {
			col = color(p, layerColor(l))
		} else {
			col = color(p, "1")
		}
		doc.AddNodes(&canvas.Node{
			ID:     id,
			Type:   canvas.TypeText,
			X:      pc.X,
			Y:      pc.Y,
			Width:  pc.Width,
			Height: pc.Height,
			Text:   DisplayText(pc.Class.Name, pc.Class.Abstract),
			Color:  col,
		})
		stats.Added++
	}

	if p.Generate.Edges {
		doc.Edges = Edges(p.Relations, ids, KindNamer)
		stats.Edges = len(doc.Edges)
	}
	if p.Generate.Groups {
		doc.AddNodes(Groups(placed, p)...)
	}
	return doc, stats
}

func headerText(l *config.Layer) string {
	return "**" + l.Label + "**"
}

func layerColor(l *config.Layer) string {
	if l.Color == "" {
		return "1"
	}
	return l.Color
}

// Groups returns a group node framing the classes of each layer. Group
// frames carry the layer color as configured, compat mode included.
func Groups(placed []Placed, p *config.Project) []*canvas.Node {
	type bounds struct {
		minX, maxX, minY, maxY float64
	}
	order := []string{}
	byLayer := make(map[string]*bounds)
	for _, pc := range placed {
		b, ok := byLayer[pc.Class.Layer]
		if !ok {
			b = &bounds{minX: pc.X, maxX: pc.X, minY: pc.Y, maxY: pc.Y}
			byLayer[pc.Class.Layer] = b
			order = append(order, pc.Class.Layer)
		}
		b.minX = min(b.minX, pc.X)
		b.maxX = max(b.maxX, pc.X)
		b.minY = min(b.minY, pc.Y)
		b.maxY = max(b.maxY, pc.Y)
	}

	pad := p.Generate.GroupPadding
	size := p.Generate.ClassSize
	var out []*canvas.Node
	for _, name := range order {
		b := byLayer[name]
		label, col, top := name, "1", b.minY-pad
		if l, ok := p.Layer(name); ok {
			label, col = l.Label, layerColor(l)
			top = l.Y + p.Generate.HeaderGap - pad
		}
		minX := b.minX - pad
		maxX := b.maxX + size.Width + pad
		minY := b.minY - pad
		maxY := b.maxY + size.Height + pad
		out = append(out, &canvas.Node{
			ID:     "group-" + name,
			Type:   canvas.TypeGroup,
			X:      minX,
			Y:      top,
			Width:  maxX - minX,
			Height: maxY - minY + pad,
			Label:  label,
			Color:  col,
		})
	}
	return out
}

// emptyStyle is the styleAttributes value the viewer writes for new nodes.
var emptyStyle = json.RawMessage(`{}`)

func newTextNode(text string, x, y float64, size config.Size) *canvas.Node {
	return &canvas.Node{
		ID:     canvas.NewID(),
		Type:   canvas.TypeText,
		Text:   text,
		X:      x,
		Y:      y,
		Width:  size.Width,
		Height: size.Height,
		Extra:  map[string]json.RawMessage{"styleAttributes": emptyStyle},
	}
}
