package uml

import (
	"context"
	"fmt"

	"github.com/vk/classcanvas/internal/canvas"
	"github.com/vk/classcanvas/internal/config"
	"github.com/vk/classcanvas/internal/ctxlog"
	"github.com/vk/classcanvas/internal/header"
)

// AddGroup adds the members of g that are missing from doc, stacked below
// the node of g's anchor class. Without an anchor node the group's default
// position is used. The anchor class itself is never added.
func AddGroup(ctx context.Context, doc *canvas.Document, g *config.Group, s Scanner, p *config.Project) (Stats, error) {
	ctx, logger := ctxlog.With(ctx, "group", g.Name)
	if len(g.Members) == 0 {
		return Stats{}, fmt.Errorf("group '%s' has no members", g.Name)
	}
	var stats Stats

	idx := canvas.IndexClasses(doc)
	x, y := g.DefaultX, g.DefaultY
	if anchor, ok := idx.ByName[g.Anchor]; ok && g.Anchor != "" {
		x, y = anchor.X, anchor.Y
		logger.Debug("Found anchor node.", "anchor", g.Anchor, "x", x, "y", y)
	} else {
		logger.Warn("Anchor node not found, using default position.", "anchor", g.Anchor, "x", x, "y", y)
	}

	d := NewDescriptions(p)
	for _, m := range g.Members {
		if m.Name == g.Anchor || idx.Has(m.Name) {
			continue
		}
		kind := header.KindClass
		if p.Class(m.Name).Struct {
			kind = header.KindStruct
		}
		res := s.Scan(ctx, m.Name, kind)

		desc := m.Description
		if desc == "" {
			desc = res.Description
		}
		if desc == "" {
			desc = d.Fallback(m.Name)
		}
		t := NodeText{
			Name:        m.Name,
			HasImpl:     res.HasImplementation(),
			Description: desc,
			Methods:     RankShellMethods(res.Methods, m.Methods, p.Methods.Priority, p.Methods.Limit),
		}

		size := g.ClassSize
		if m.Abstract {
			size = g.AbstractSize
		}
		ny := y + g.Offset + float64(stats.Added)*g.Spacing
		node := newTextNode(FormatText(t, g.Style), x, ny, size)
		doc.AddNodes(node)
		idx.ByName[m.Name] = node
		stats.Added++
		logger.Info("Added group member.", "class", m.Name, "x", x, "y", ny, "methods", len(t.Methods))
	}
	return stats, nil
}
