package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/vk/classcanvas/internal/config"
	"github.com/vk/classcanvas/internal/ctxlog"
	"github.com/vk/classcanvas/internal/fsutil"
	"github.com/vk/classcanvas/internal/header"
)

// rootLayer holds classes whose header sits directly in the source root.
const rootLayer = "main"

// layerSpacing is the horizontal distance between scaffolded layers.
const layerSpacing = 800

// Init scans every header under the source root and writes a starter
// project file: one layer per top-level directory holding every class and
// struct defined there, struct overrides, file overrides for headers the
// locator would not find by name, and the first base class of each class as
// its inheritance relation. An existing project file is never overwritten.
func (a *App) Init(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)
	path := a.config.ConfigPath

	enc, ok := a.loader.(config.Encoder)
	if !ok {
		return errors.New("the project format cannot be written")
	}
	if !a.config.DryRun {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("project file %s already exists", path)
		}
	}

	p, err := a.scaffold(ctx)
	if err != nil {
		return err
	}
	dir, err := filepath.Abs(filepath.Dir(path))
	if err != nil {
		return fmt.Errorf("failed to resolve project directory: %w", err)
	}
	data, err := enc.Encode(p, dir)
	if err != nil {
		return fmt.Errorf("failed to encode project: %w", err)
	}

	if a.config.DryRun {
		if _, err := a.outW.Write(data); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write project file %s: %w", path, err)
	}
	logger.Info("Project file written.", "path", path, "layers", len(p.Layers), "inheritance", len(p.Relations.Inheritance))
	return nil
}

func (a *App) scaffold(ctx context.Context) (*config.Project, error) {
	logger := ctxlog.FromContext(ctx)
	src := a.project.Source
	files, err := fsutil.FindFilesByExtensions(src.Root, src.HeaderExts)
	if err != nil {
		return nil, fmt.Errorf("failed to list headers under %s: %w", src.Root, err)
	}

	p := config.New()
	p.Canvas.Path = a.project.Canvas.Path
	p.Source.Root = src.Root
	p.Source.HeaderExts = src.HeaderExts
	p.Relations.Inheritance = make(map[string]string)

	members := make(map[string][]string)
	seen := make(map[string]string)
	for _, f := range files {
		data, err := os.ReadFile(f)
		if err != nil {
			logger.Warn("Could not read header.", "path", f, "error", err)
			continue
		}
		rel, err := filepath.Rel(src.Root, f)
		if err != nil {
			continue
		}
		rel = filepath.ToSlash(rel)
		layer, nested := layerOf(rel)
		base := strings.TrimSuffix(filepath.Base(rel), filepath.Ext(rel))

		for _, d := range header.Declarations(string(data)) {
			if prev, ok := seen[d.Name]; ok {
				logger.Debug("Class defined in more than one header, keeping the first.", "class", d.Name, "kept", prev, "ignored", rel)
				continue
			}
			seen[d.Name] = rel
			members[layer] = append(members[layer], d.Name)

			override := &config.Class{Name: d.Name, Struct: d.Kind == header.KindStruct}
			if nested || base != d.Name {
				override.File = rel
			}
			if override.Struct || override.File != "" {
				p.Classes[d.Name] = override
			}
			if len(d.Bases) > 0 {
				p.Relations.Inheritance[d.Name] = d.Bases[0]
			}
		}
	}

	layers := make([]string, 0, len(members))
	for name := range members {
		if name != rootLayer {
			layers = append(layers, name)
		}
	}
	sort.Strings(layers)
	p.Source.Subdirs = append([]string(nil), layers...)
	if _, ok := members[rootLayer]; ok {
		layers = append([]string{rootLayer}, layers...)
	}
	for i, name := range layers {
		classes := members[name]
		sort.Strings(classes)
		p.Layers = append(p.Layers, &config.Layer{
			Name:    name,
			X:       float64(i * layerSpacing),
			Classes: classes,
		})
	}

	logger.Info("Scanned source tree.", "root", src.Root, "headers", len(files), "classes", len(seen), "layers", len(p.Layers))
	return p, nil
}

// layerOf returns the top-level directory of a header path relative to the
// source root, and whether the header sits deeper than that directory.
func layerOf(rel string) (string, bool) {
	parts := strings.Split(rel, "/")
	switch len(parts) {
	case 1:
		return rootLayer, false
	case 2:
		return parts[0], false
	default:
		return parts[0], true
	}
}
