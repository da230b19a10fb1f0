package app

import (
	"context"
	"fmt"

	"github.com/vk/classcanvas/internal/canvas"
	"github.com/vk/classcanvas/internal/ctxlog"
	"github.com/vk/classcanvas/internal/header"
	"github.com/vk/classcanvas/internal/notify"
	"github.com/vk/classcanvas/internal/uml"
)

// Run executes the configured command.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger.With("command", a.config.Command))
	a.ctx = ctx
	logger := ctxlog.FromContext(ctx)
	logger.Debug("App.Run method started.")
	defer logger.Debug("App.Run method finished.")

	switch a.config.Command {
	case CommandInit:
		return a.Init(ctx)
	case CommandGenerate:
		return a.Generate(ctx)
	case CommandSync:
		return a.Sync(ctx)
	case CommandRefresh:
		_, err := a.Refresh(ctx)
		return err
	case CommandAdd:
		return a.Add(ctx, a.config.Group)
	case CommandInspect:
		return a.Inspect(ctx)
	case CommandWatch:
		return a.Watch(ctx)
	default:
		return fmt.Errorf("unknown command '%s'", a.config.Command)
	}
}

// Generate writes a fresh diagram of the whole catalog.
func (a *App) Generate(ctx context.Context) error {
	c, err := uml.NewCatalog(a.project)
	if err != nil {
		return err
	}
	doc, stats := uml.Generate(c, a.project)
	ctxlog.FromContext(ctx).Info("Generated diagram.", "classes", stats.Added, "edges", stats.Edges, "layers", len(c.Layers(a.project)))
	return a.write(ctx, CommandGenerate, doc, stats)
}

// Sync adds nodes for classes missing from the existing canvas.
func (a *App) Sync(ctx context.Context) error {
	doc, err := a.load(ctx)
	if err != nil {
		return err
	}
	c, err := uml.NewCatalog(a.project)
	if err != nil {
		return err
	}
	stats := uml.Sync(ctx, doc, c, a.project)
	ctxlog.FromContext(ctx).Info("Synchronized canvas.", "added", stats.Added, "edges", stats.Edges, "policy", a.project.Sync.Edges)
	return a.write(ctx, CommandSync, doc, stats)
}

// Refresh rewrites class node text from the headers. The canvas is only
// written when a node changed.
func (a *App) Refresh(ctx context.Context) (uml.Stats, error) {
	logger := ctxlog.FromContext(ctx)
	doc, err := a.load(ctx)
	if err != nil {
		return uml.Stats{}, err
	}
	stats := uml.Refresh(ctx, doc, a.scanner, a.project)
	logger.Info("Refreshed class nodes.", "updated", stats.Updated, "unchanged", stats.Unchanged, "not_found", stats.NotFound, "skipped", stats.Skipped)
	if stats.Updated == 0 && !a.config.DryRun {
		logger.Info("Canvas is up to date.", "path", a.project.Canvas.Path)
		return stats, nil
	}
	return stats, a.write(ctx, CommandRefresh, doc, stats)
}

// Add adds the members of the named group below its anchor.
func (a *App) Add(ctx context.Context, group string) error {
	g, ok := a.project.Groups[group]
	if !ok {
		return fmt.Errorf("unknown group '%s'", group)
	}
	doc, err := a.load(ctx)
	if err != nil {
		return err
	}
	// Group members keep lifecycle methods like setup and draw unless the
	// group excludes them.
	scanner, err := newScanner(a.project, header.NewExclude(g.Exclude...))
	if err != nil {
		return err
	}
	stats, err := uml.AddGroup(ctx, doc, g, scanner, a.project)
	if err != nil {
		return err
	}
	logger := ctxlog.FromContext(ctx)
	if stats.Added == 0 {
		logger.Info("Every group member is already on the canvas.", "group", group)
		if !a.config.DryRun {
			return nil
		}
	}
	logger.Info("Added group members.", "group", group, "added", stats.Added)
	return a.write(ctx, CommandAdd, doc, stats)
}

func (a *App) load(ctx context.Context) (*canvas.Document, error) {
	doc, err := canvas.Load(a.project.Canvas.Path)
	if err != nil {
		return nil, err
	}
	ctxlog.FromContext(ctx).Debug("Loaded canvas.", "path", a.project.Canvas.Path, "nodes", len(doc.Nodes), "edges", len(doc.Edges))
	return doc, nil
}

// write validates doc and saves it, or prints it on a dry run. A successful
// save is announced through the notifier; notification failures are only
// logged.
func (a *App) write(ctx context.Context, command string, doc *canvas.Document, stats uml.Stats) error {
	logger := ctxlog.FromContext(ctx)
	path := a.project.Canvas.Path

	if a.project.Canvas.Validate {
		if err := canvas.Validate(doc); err != nil {
			return fmt.Errorf("refusing to write %s: %w", path, err)
		}
	}

	if a.config.DryRun {
		data, err := canvas.Encode(doc, a.project.Canvas.Indent)
		if err != nil {
			return err
		}
		if _, err := a.outW.Write(data); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		logger.Info("Dry run, canvas not written.", "path", path)
		return nil
	}

	if err := canvas.Save(path, doc, canvas.SaveOptions{Indent: a.project.Canvas.Indent}); err != nil {
		return err
	}
	logger.Info("Canvas written.", "path", path, "nodes", len(doc.Nodes), "edges", len(doc.Edges))

	err := a.notifier.Notify(ctx, notify.Event{
		Path:    path,
		Command: command,
		Nodes:   len(doc.Nodes),
		Edges:   len(doc.Edges),
		Added:   stats.Added,
		Updated: stats.Updated,
	})
	if err != nil {
		logger.Warn("Failed to send canvas update notification.", "error", err)
	}
	return nil
}
