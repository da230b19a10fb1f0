// Package hierarchy models the inheritance relationships between classes as
// a directed graph. An edge runs from a base class to each class derived
// from it, so a well-formed hierarchy is acyclic.
package hierarchy

import (
	"fmt"
	"sort"
)

// Graph is a directed graph of class names.
type Graph struct {
	nodes map[string]*node
}

// node is a single class. It is un-exported to enforce interaction with the
// graph via class names.
type node struct {
	name string
	// parents holds the classes this class derives from.
	parents map[string]*node
	// children holds the classes derived from this class.
	children map[string]*node
}

// New creates and returns an initialized, empty Graph.
func New() *Graph {
	return &Graph{
		nodes: make(map[string]*node),
	}
}

// AddNode adds a class to the graph. Adding an existing class is a no-op.
func (g *Graph) AddNode(name string) {
	if _, ok := g.nodes[name]; ok {
		return
	}
	g.nodes[name] = &node{
		name:     name,
		parents:  make(map[string]*node),
		children: make(map[string]*node),
	}
}

// Has reports whether the class is part of the graph.
func (g *Graph) Has(name string) bool {
	_, ok := g.nodes[name]
	return ok
}

// AddEdge records that child derives from parent. Both classes must already
// exist and a class cannot derive from itself.
func (g *Graph) AddEdge(parent, child string) error {
	if parent == child {
		return fmt.Errorf("class cannot derive from itself: %s", parent)
	}

	p, ok := g.nodes[parent]
	if !ok {
		return fmt.Errorf("base class not found: %s", parent)
	}
	c, ok := g.nodes[child]
	if !ok {
		return fmt.Errorf("derived class not found: %s", child)
	}

	p.children[child] = c
	c.parents[parent] = p
	return nil
}

// Parents returns the sorted names of the classes name derives from.
func (g *Graph) Parents(name string) ([]string, error) {
	n, ok := g.nodes[name]
	if !ok {
		return nil, fmt.Errorf("class not found: %s", name)
	}
	return sortedKeys(n.parents), nil
}

// Children returns the sorted names of the classes derived from name.
func (g *Graph) Children(name string) ([]string, error) {
	n, ok := g.nodes[name]
	if !ok {
		return nil, fmt.Errorf("class not found: %s", name)
	}
	return sortedKeys(n.children), nil
}

// Names returns every class in the graph, sorted.
func (g *Graph) Names() []string {
	return sortedKeys(g.nodes)
}

// Depth returns the length of the longest chain of base classes above name.
// A class without parents has depth 0. The graph must be acyclic.
func (g *Graph) Depth(name string) (int, error) {
	n, ok := g.nodes[name]
	if !ok {
		return 0, fmt.Errorf("class not found: %s", name)
	}
	memo := make(map[string]int)
	var depth func(n *node) int
	depth = func(n *node) int {
		if d, ok := memo[n.name]; ok {
			return d
		}
		best := 0
		for _, p := range n.parents {
			if d := depth(p) + 1; d > best {
				best = d
			}
		}
		memo[n.name] = best
		return best
	}
	return depth(n), nil
}

// DetectCycles checks the graph for cycles and returns an error naming the
// first class found on one. Classes are visited in name order so the result
// is stable.
func (g *Graph) DetectCycles() error {
	// permanent: fully visited, not on a cycle.
	// temporary: on the current recursion stack.
	permanent := make(map[string]bool)
	temporary := make(map[string]bool)

	var visit func(n *node) error
	visit = func(n *node) error {
		if permanent[n.name] {
			return nil
		}
		if temporary[n.name] {
			return fmt.Errorf("inheritance cycle detected involving class '%s'", n.name)
		}

		temporary[n.name] = true
		for _, name := range sortedKeys(n.children) {
			if err := visit(n.children[name]); err != nil {
				return err
			}
		}
		delete(temporary, n.name)
		permanent[n.name] = true
		return nil
	}

	for _, name := range g.Names() {
		if err := visit(g.nodes[name]); err != nil {
			return err
		}
	}
	return nil
}

func sortedKeys(m map[string]*node) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
