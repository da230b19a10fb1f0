package uml

import (
	"strings"

	"github.com/vk/classcanvas/internal/config"
)

// NodeText is the content of a class node.
type NodeText struct {
	Name        string
	HasImpl     bool
	Description string
	Methods     []string
}

// Title is "# Name.cpp/h" when the class has an implementation file and
// "# Name.h" otherwise.
func (t NodeText) Title() string {
	if t.HasImpl {
		return "# " + t.Name + ".cpp/h"
	}
	return "# " + t.Name + ".h"
}

// FormatText renders t as markdown in the given style.
func FormatText(t NodeText, style config.TextStyle) string {
	lines := []string{t.Title(), ""}

	if style == config.StyleHeading {
		switch {
		case t.Description != "":
			lines = append(lines, "*"+t.Description+"*", "")
		case len(t.Methods) == 0:
			lines = append(lines, "*(Class definition found)*", "")
		}
		switch {
		case len(t.Methods) > 0:
			lines = append(lines, "**Key Methods:**")
			lines = append(lines, methodLines(t.Methods)...)
		case t.Description == "":
			lines = append(lines, "*(No public methods found)*")
		}
		return strings.Join(lines, "\n")
	}

	if t.Description != "" {
		lines = append(lines, "*"+t.Description+"*")
	}
	lines = append(lines, "")
	lines = append(lines, methodLines(t.Methods)...)
	return strings.Join(lines, "\n")
}

func methodLines(methods []string) []string {
	out := make([]string, 0, len(methods))
	for _, m := range methods {
		out = append(out, "- `"+m+"()`")
	}
	return out
}

// Descriptions maps class names to the text used when a header has no doc
// comment.
type Descriptions map[string]string

// NewDescriptions collects the configured descriptions of p: class
// overrides first, then group members that do not override them.
func NewDescriptions(p *config.Project) Descriptions {
	d := make(Descriptions)
	for name, c := range p.Classes {
		if c.Description != "" {
			d[name] = c.Description
		}
	}
	for _, name := range sortedKeys(p.Groups) {
		for _, m := range p.Groups[name].Members {
			if _, ok := d[m.Name]; !ok && m.Description != "" {
				d[m.Name] = m.Description
			}
		}
	}
	return d
}

// Fallback returns the configured description of name, or "".
func (d Descriptions) Fallback(name string) string {
	return d[name]
}
