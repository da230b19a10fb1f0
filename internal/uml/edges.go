package uml

import (
	"fmt"

	"github.com/vk/classcanvas/internal/canvas"
	"github.com/vk/classcanvas/internal/config"
)

// EdgeKind is the relationship an edge draws.
type EdgeKind string

const (
	Inheritance EdgeKind = "inherit"
	Composition EdgeKind = "comp"
	Association EdgeKind = "assoc"
)

// Edge colors.
const (
	inheritanceColor = "2"
	compositionColor = "3"
	associationColor = "4"
)

// EdgeNamer returns the id of the n-th edge, counting across all kinds.
type EdgeNamer func(kind EdgeKind, n int) string

// KindNamer names edges after their kind: inherit-0, comp-1, assoc-2.
func KindNamer(kind EdgeKind, n int) string {
	return fmt.Sprintf("%s-%d", kind, n)
}

// SequentialNamer names every edge prefix-n regardless of kind.
func SequentialNamer(prefix string) EdgeNamer {
	return func(_ EdgeKind, n int) string {
		return fmt.Sprintf("%s-%d", prefix, n)
	}
}

// Edges draws the relations between classes that have a node in ids
// (class name to node id). Inheritance runs from the child's top to the
// parent's bottom; composition and association run right to left. An
// association is skipped for a class and itself and for pairs already joined
// by inheritance. Output order is stable: by kind, then source class name,
// then target in declaration order.
func Edges(rel config.Relations, ids map[string]string, name EdgeNamer) []*canvas.Edge {
	edges := []*canvas.Edge{}
	add := func(kind EdgeKind, from, to, fromSide, toSide, color string) {
		edges = append(edges, &canvas.Edge{
			ID:       name(kind, len(edges)),
			FromNode: from,
			FromSide: fromSide,
			ToNode:   to,
			ToSide:   toSide,
			Color:    color,
		})
	}

	for _, child := range sortedKeys(rel.Inheritance) {
		parent := rel.Inheritance[child]
		childID, ok1 := ids[child]
		parentID, ok2 := ids[parent]
		if parent == "" || !ok1 || !ok2 {
			continue
		}
		add(Inheritance, childID, parentID, canvas.SideTop, canvas.SideBottom, inheritanceColor)
	}

	for _, from := range sortedKeys(rel.Composition) {
		fromID, ok := ids[from]
		if !ok {
			continue
		}
		for _, to := range rel.Composition[from] {
			if toID, ok := ids[to]; ok {
				add(Composition, fromID, toID, canvas.SideRight, canvas.SideLeft, compositionColor)
			}
		}
	}

	for _, from := range sortedKeys(rel.Association) {
		fromID, ok := ids[from]
		if !ok {
			continue
		}
		for _, to := range rel.Association[from] {
			toID, ok := ids[to]
			if !ok || fromID == toID {
				continue
			}
			if rel.Inheritance[to] == from || rel.Inheritance[from] == to {
				continue
			}
			add(Association, fromID, toID, canvas.SideRight, canvas.SideLeft, associationColor)
		}
	}
	return edges
}

// KeyRelations returns the inheritance relations together with the key
// composition and association subsets.
func KeyRelations(rel config.Relations) config.Relations {
	return config.Relations{
		Inheritance: rel.Inheritance,
		Composition: rel.KeyComposition,
		Association: rel.KeyAssociation,
	}
}
