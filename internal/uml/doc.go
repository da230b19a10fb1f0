// Package uml turns a project's classes, layers and relations into canvas
// nodes and edges: the layout of a fresh diagram, placement of classes added
// to an existing one, relationship edges, method ranking, and node text.
package uml
