package uml

import (
	"context"

	"github.com/vk/classcanvas/internal/canvas"
	"github.com/vk/classcanvas/internal/config"
	"github.com/vk/classcanvas/internal/ctxlog"
)

// Sync adds a node for every catalog class missing from doc, placed by its
// layer's strategy, then applies the project's edge policy and makes sure
// the document carries viewer metadata. Existing nodes are never moved or
// removed.
func Sync(ctx context.Context, doc *canvas.Document, c *Catalog, p *config.Project) Stats {
	logger := ctxlog.FromContext(ctx)
	var stats Stats

	idx := canvas.IndexClasses(doc)
	for id, text := range idx.Malformed {
		logger.Debug("Node text does not name a class.", "node", id, "text", text)
	}

	counts := make(map[string]int)
	for name := range idx.ByName {
		if cls, ok := c.Get(name); ok {
			counts[cls.Layer]++
		}
	}

	for _, layerName := range c.Layers(p) {
		var pl config.Placement
		if l, ok := p.Layer(layerName); ok {
			pl = l.Sync
		} else {
			pl = config.Placement{Strategy: config.StrategyStackDown, Step: 100}
		}
		for _, cls := range c.Members(layerName) {
			if idx.Has(cls.Name) {
				continue
			}
			x, y := Place(pl, counts[layerName])
			counts[layerName]++

			size := p.Sync.ClassSize
			if cls.Abstract {
				size = p.Sync.AbstractSize
			}
			node := newTextNode(DisplayText(cls.Name, cls.Abstract), x, y, size)
			doc.AddNodes(node)
			idx.ByName[cls.Name] = node
			stats.Added++
			logger.Info("Added missing class.", "class", cls.Name, "layer", layerName, "x", x, "y", y)
		}
	}

	switch p.Sync.Edges {
	case config.EdgesClear:
		doc.Edges = []*canvas.Edge{}
	case config.EdgesKey:
		doc.Edges = Edges(KeyRelations(p.Relations), nodeIDs(idx), SequentialNamer("edge"))
	case config.EdgesAll:
		doc.Edges = Edges(p.Relations, nodeIDs(idx), SequentialNamer("edge"))
	}
	stats.Edges = len(doc.Edges)

	if doc.EnsureMetadata() {
		logger.Debug("Added default canvas metadata.")
	}
	return stats
}

func nodeIDs(idx *canvas.ClassIndex) map[string]string {
	ids := make(map[string]string, len(idx.ByName))
	for name, n := range idx.ByName {
		ids[name] = n.ID
	}
	return ids
}
