// Package canvas reads, validates and writes JSON Canvas documents, the
// node/edge files rendered by the Obsidian canvas viewer.
//
// The viewer and its plugins attach properties this package does not model
// (styleAttributes, metadata, edge ends and so on). Every such property is
// kept verbatim on load and written back on save, so patching a canvas never
// loses data the tool does not understand.
package canvas
