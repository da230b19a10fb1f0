package app

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"

	"github.com/vk/classcanvas/internal/ctxlog"
	"github.com/vk/classcanvas/internal/fsutil"
	"github.com/vk/classcanvas/internal/header"
	"github.com/vk/classcanvas/internal/uml"
	"gopkg.in/yaml.v3"
)

type inspectEntry struct {
	Layer      string        `yaml:"layer,omitempty"`
	Group      string        `yaml:"group,omitempty"`
	Result     header.Result `yaml:",inline"`
	Kind       header.Kind   `yaml:"kind"`
	KeyMethods []string      `yaml:"key_methods"`
}

type inspectReport struct {
	Root    string         `yaml:"root"`
	Classes []inspectEntry `yaml:"classes"`
	// Missing lists classes whose header was not found.
	Missing []string `yaml:"missing,omitempty"`
	// Unlisted lists headers under the source root that no class or group
	// member refers to.
	Unlisted []string `yaml:"unlisted,omitempty"`
}

// Inspect prints a YAML report of what the scanner finds for every class of
// the catalog and every group member. The canvas is not touched.
func (a *App) Inspect(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)
	c, err := uml.NewCatalog(a.project)
	if err != nil {
		return err
	}
	d := uml.NewDescriptions(a.project)
	report := inspectReport{Root: a.project.Source.Root, Classes: []inspectEntry{}}
	seenHeaders := make(map[string]bool)

	add := func(entry inspectEntry) {
		if entry.Result.Found() {
			seenHeaders[entry.Result.Header] = true
		} else {
			report.Missing = append(report.Missing, entry.Result.Class)
		}
		report.Classes = append(report.Classes, entry)
	}

	for _, name := range c.Names() {
		cls, _ := c.Get(name)
		text, res := uml.Describe(ctx, a.scanner, name, a.project, d)
		res.Description = text.Description
		add(inspectEntry{Layer: cls.Layer, Result: res, Kind: kindOf(cls.Struct), KeyMethods: text.Methods})
	}

	groups := make([]string, 0, len(a.project.Groups))
	for name := range a.project.Groups {
		groups = append(groups, name)
	}
	sort.Strings(groups)
	for _, gname := range groups {
		for _, m := range a.project.Groups[gname].Members {
			if _, ok := c.Get(m.Name); ok {
				continue
			}
			kind := kindOf(a.project.Class(m.Name).Struct)
			res := a.scanner.Scan(ctx, m.Name, kind)
			if res.Description == "" {
				res.Description = m.Description
			}
			key := uml.RankShellMethods(res.Methods, m.Methods, a.project.Methods.Priority, a.project.Methods.Limit)
			add(inspectEntry{Group: gname, Result: res, Kind: kind, KeyMethods: key})
		}
	}

	report.Unlisted = a.unlistedHeaders(ctx, seenHeaders)
	logger.Info("Inspected classes.", "classes", len(report.Classes), "missing", len(report.Missing), "unlisted", len(report.Unlisted))

	enc := yaml.NewEncoder(a.outW)
	enc.SetIndent(2)
	if err := enc.Encode(report); err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	return enc.Close()
}

func (a *App) unlistedHeaders(ctx context.Context, seen map[string]bool) []string {
	root := a.project.Source.Root
	files, err := fsutil.FindFilesByExtensions(root, a.project.Source.HeaderExts)
	if err != nil {
		ctxlog.FromContext(ctx).Warn("Could not list headers.", "root", root, "error", err)
		return nil
	}
	var out []string
	for _, f := range files {
		if seen[f] {
			continue
		}
		rel, err := filepath.Rel(root, f)
		if err != nil {
			rel = f
		}
		out = append(out, filepath.ToSlash(rel))
	}
	return out
}

func kindOf(isStruct bool) header.Kind {
	if isStruct {
		return header.KindStruct
	}
	return header.KindClass
}

