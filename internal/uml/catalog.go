package uml

import (
	"fmt"
	"sort"

	"github.com/vk/classcanvas/internal/config"
	"github.com/vk/classcanvas/internal/hierarchy"
)

// Class is one class of the diagram.
type Class struct {
	Name     string
	Layer    string
	Abstract bool
	Struct   bool
	// Parent is the declared base class. It may name a class outside the
	// catalog, such as a framework type.
	Parent   string
	Children []string
}

// Catalog is the set of classes a project describes: every class a layer
// lists plus every derived class named by an inheritance relation.
type Catalog struct {
	classes map[string]*Class
	// members holds each layer's classes in declaration order.
	members map[string][]string
	graph   *hierarchy.Graph
}

// NewCatalog builds the catalog of p. It fails when the inheritance
// relations contain a cycle or a class derives from itself.
func NewCatalog(p *config.Project) (*Catalog, error) {
	c := &Catalog{
		classes: make(map[string]*Class),
		members: make(map[string][]string),
		graph:   hierarchy.New(),
	}

	for _, l := range p.Layers {
		for _, name := range l.Classes {
			c.add(p, name, l.Name)
		}
	}
	derived := sortedKeys(p.Relations.Inheritance)
	for _, child := range derived {
		if _, ok := c.classes[child]; !ok {
			c.add(p, child, p.Generate.FallbackLayer)
		}
	}

	for _, child := range derived {
		parent := p.Relations.Inheritance[child]
		if parent == "" {
			continue
		}
		c.classes[child].Parent = parent
		if !c.graph.Has(parent) {
			continue
		}
		if err := c.graph.AddEdge(parent, child); err != nil {
			return nil, fmt.Errorf("invalid inheritance '%s' -> '%s': %w", child, parent, err)
		}
	}
	if err := c.graph.DetectCycles(); err != nil {
		return nil, err
	}
	for name, cls := range c.classes {
		children, _ := c.graph.Children(name)
		cls.Children = children
	}
	return c, nil
}

func (c *Catalog) add(p *config.Project, name, layer string) {
	if _, ok := c.classes[name]; ok {
		return
	}
	override := p.Class(name)
	c.classes[name] = &Class{
		Name:     name,
		Layer:    layer,
		Abstract: override.Abstract,
		Struct:   override.Struct,
	}
	c.members[layer] = append(c.members[layer], name)
	c.graph.AddNode(name)
}

// Get returns the class with the given name.
func (c *Catalog) Get(name string) (*Class, bool) {
	cls, ok := c.classes[name]
	return cls, ok
}

// Len returns the number of classes.
func (c *Catalog) Len() int {
	return len(c.classes)
}

// Names returns every class name, sorted.
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.classes))
	for n := range c.classes {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Members returns the classes of layer in declaration order. Derived classes
// no layer lists come last, sorted.
func (c *Catalog) Members(layer string) []*Class {
	names := c.members[layer]
	out := make([]*Class, 0, len(names))
	for _, n := range names {
		out = append(out, c.classes[n])
	}
	return out
}

// Sorted returns the classes of layer with abstract classes first, then by
// name.
func (c *Catalog) Sorted(layer string) []*Class {
	out := c.Members(layer)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Abstract != out[j].Abstract {
			return out[i].Abstract
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// Layers returns the names of layers that hold at least one class, in the
// order of p's layers followed by the fallback layer when it is not declared.
func (c *Catalog) Layers(p *config.Project) []string {
	var out []string
	declared := make(map[string]bool)
	for _, l := range p.Layers {
		declared[l.Name] = true
		if len(c.members[l.Name]) > 0 {
			out = append(out, l.Name)
		}
	}
	fb := p.Generate.FallbackLayer
	if !declared[fb] && len(c.members[fb]) > 0 {
		out = append(out, fb)
	}
	return out
}

// Depth returns how many ancestors of name are in the catalog.
func (c *Catalog) Depth(name string) int {
	d, err := c.graph.Depth(name)
	if err != nil {
		return 0
	}
	return d
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
