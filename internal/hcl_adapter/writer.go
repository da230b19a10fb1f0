package hcl_adapter

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/vk/classcanvas/internal/config"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"
)

var _ config.Encoder = (*Loader)(nil)

// Encode renders the canvas, source, layer, class and relation settings of
// p as an HCL project file. Paths below dir are written relative to it so
// the file can move with the tree. Settings left at their defaults are
// omitted.
func (l *Loader) Encode(p *config.Project, dir string) ([]byte, error) {
	f := hclwrite.NewEmptyFile()
	body := f.Body()

	canvas := body.AppendNewBlock("canvas", nil).Body()
	canvas.SetAttributeValue("path", cty.StringVal(relTo(dir, p.Canvas.Path)))

	body.AppendNewline()
	source := body.AppendNewBlock("source", nil).Body()
	source.SetAttributeValue("root", cty.StringVal(relTo(dir, p.Source.Root)))
	if err := setList(source, "subdirs", p.Source.Subdirs); err != nil {
		return nil, err
	}
	if err := setList(source, "extensions", p.Source.HeaderExts); err != nil {
		return nil, err
	}

	for _, layer := range p.Layers {
		body.AppendNewline()
		lb := body.AppendNewBlock("layer", []string{layer.Name}).Body()
		if layer.Label != "" && layer.Label != layer.Name {
			lb.SetAttributeValue("label", cty.StringVal(layer.Label))
		}
		if layer.Color != "" {
			lb.SetAttributeValue("color", cty.StringVal(layer.Color))
		}
		lb.SetAttributeValue("x", cty.NumberFloatVal(layer.X))
		lb.SetAttributeValue("y", cty.NumberFloatVal(layer.Y))
		if err := setList(lb, "classes", layer.Classes); err != nil {
			return nil, err
		}
	}

	names := make([]string, 0, len(p.Classes))
	for name := range p.Classes {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		c := p.Classes[name]
		body.AppendNewline()
		cb := body.AppendNewBlock("class", []string{name}).Body()
		if c.File != "" {
			cb.SetAttributeValue("file", cty.StringVal(c.File))
		}
		if c.Struct {
			cb.SetAttributeValue("kind", cty.StringVal("struct"))
		}
		if c.Abstract {
			cb.SetAttributeValue("abstract", cty.True)
		}
		if c.Description != "" {
			cb.SetAttributeValue("description", cty.StringVal(c.Description))
		}
	}

	rel := p.Relations
	if len(rel.Inheritance)+len(rel.Composition)+len(rel.Association) > 0 {
		body.AppendNewline()
		rb := body.AppendNewBlock("relations", nil).Body()
		if err := setValue(rb, "inheritance", rel.Inheritance, cty.Map(cty.String)); err != nil {
			return nil, err
		}
		if err := setValue(rb, "composition", rel.Composition, cty.Map(cty.List(cty.String))); err != nil {
			return nil, err
		}
		if err := setValue(rb, "association", rel.Association, cty.Map(cty.List(cty.String))); err != nil {
			return nil, err
		}
	}

	return hclwrite.Format(f.Bytes()), nil
}

func setList(body *hclwrite.Body, name string, values []string) error {
	if len(values) == 0 {
		return nil
	}
	return setValue(body, name, values, cty.List(cty.String))
}

// setValue converts v to ty and sets it as attribute name. Empty maps are
// left out.
func setValue[V any](body *hclwrite.Body, name string, v V, ty cty.Type) error {
	val, err := gocty.ToCtyValue(v, ty)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", name, err)
	}
	if val.IsNull() || val.LengthInt() == 0 {
		return nil
	}
	body.SetAttributeValue(name, val)
	return nil
}

func relTo(dir, path string) string {
	if dir == "" || !filepath.IsAbs(path) {
		return filepath.ToSlash(path)
	}
	rel, err := filepath.Rel(dir, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return path
	}
	return filepath.ToSlash(rel)
}
