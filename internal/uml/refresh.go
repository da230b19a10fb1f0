package uml

import (
	"context"

	"github.com/vk/classcanvas/internal/canvas"
	"github.com/vk/classcanvas/internal/config"
	"github.com/vk/classcanvas/internal/ctxlog"
	"github.com/vk/classcanvas/internal/header"
)

// Scanner extracts what a header says about a class.
type Scanner interface {
	Scan(ctx context.Context, class string, kind header.Kind) header.Result
}

// Describe scans class and returns its node text content. Methods are
// ranked for display and the description falls back to the configured one.
func Describe(ctx context.Context, s Scanner, class string, p *config.Project, d Descriptions) (NodeText, header.Result) {
	kind := header.KindClass
	if p.Class(class).Struct {
		kind = header.KindStruct
	}
	res := s.Scan(ctx, class, kind)

	t := NodeText{
		Name:        class,
		HasImpl:     res.HasImplementation(),
		Description: res.Description,
	}
	if !res.Found() {
		t.HasImpl = false
	}
	if t.Description == "" {
		t.Description = d.Fallback(class)
	}
	t.Methods = RankMethods(res.Methods, p.Methods.Priority, p.Methods.Limit)
	return t, res
}

// Refresh rewrites the text of every class node in doc from its header:
// title with file extensions, description and key methods. Nodes whose text
// does not name a class are logged and left alone.
func Refresh(ctx context.Context, doc *canvas.Document, s Scanner, p *config.Project) Stats {
	logger := ctxlog.FromContext(ctx)
	d := NewDescriptions(p)
	headers := layerHeaders(p)
	var stats Stats

	for _, n := range doc.Nodes {
		if n == nil || n.Type != canvas.TypeText || headers[n.Text] {
			continue
		}
		name, ok := canvas.ClassName(n.Text)
		if !ok {
			logger.Warn("Could not extract class name from node.", "node", n.ID, "text", preview(n.Text))
			stats.Skipped++
			continue
		}

		t, res := Describe(ctx, s, name, p, d)
		if !res.Found() {
			logger.Warn("Header file not found, using fallback description.", "class", name)
			stats.NotFound++
		}

		text := FormatText(t, p.Methods.Style)
		if text == n.Text {
			stats.Unchanged++
			continue
		}
		n.Text = text
		stats.Updated++
		logger.Debug("Refreshed class node.", "class", name, "methods_found", len(res.Methods), "methods_shown", len(t.Methods))
	}
	return stats
}

// layerHeaders returns the texts of the header nodes Generate writes. A
// single-word label would otherwise read as an emphasized class name.
func layerHeaders(p *config.Project) map[string]bool {
	out := make(map[string]bool, len(p.Layers))
	for _, l := range p.Layers {
		out[headerText(l)] = true
	}
	return out
}

func preview(s string) string {
	r := []rune(s)
	if len(r) > 50 {
		return string(r[:50]) + "..."
	}
	return s
}
