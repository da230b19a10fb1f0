package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"sort"

	"github.com/vk/classcanvas/internal/config"
	"github.com/vk/classcanvas/internal/ctxlog"
	"github.com/vk/classcanvas/internal/header"
	"github.com/vk/classcanvas/internal/notify"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	ctx      context.Context
	outW     io.Writer
	logger   *slog.Logger
	config   *Config
	loader   config.Loader
	project  *config.Project
	scanner  *header.Scanner
	notifier *notify.Notifier

	httpServer *http.Server
	status     *watchStatus
}

// NewApp is the constructor for the main application. Logs go to logW;
// documents and reports go to outW. The project file is loaded through
// loader and the overrides of appConfig are applied on top of it. The init
// command starts from an empty project rooted next to the project file
// instead, since that file does not exist yet.
func NewApp(outW, logW io.Writer, appConfig *Config, loader config.Loader) (*App, error) {
	logger := newLogger(appConfig.LogLevel, appConfig.LogFormat, logW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	var project *config.Project
	if appConfig.Command == CommandInit {
		dir, err := filepath.Abs(filepath.Dir(appConfig.ConfigPath))
		if err != nil {
			return nil, fmt.Errorf("failed to resolve project directory: %w", err)
		}
		project = config.New()
		project.Source.Root = dir
	} else {
		var err error
		project, err = loader.Load(ctx, appConfig.ConfigPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load configuration: %w", err)
		}
		logger.Debug("Project loaded.", "path", appConfig.ConfigPath, "layers", len(project.Layers), "groups", len(project.Groups))
	}

	if err := applyOverrides(project, appConfig); err != nil {
		return nil, err
	}

	scanner, err := newScanner(project, header.NewExclude(project.Methods.Exclude...))
	if err != nil {
		return nil, err
	}
	logger.Debug("Header scanner ready.", "root", project.Source.Root, "extractor", project.Methods.Extractor)

	return &App{
		ctx:      ctx,
		outW:     outW,
		logger:   logger,
		config:   appConfig,
		loader:   loader,
		project:  project,
		scanner:  scanner,
		notifier: notify.New(project.Notify),
		status:   &watchStatus{},
	}, nil
}

// Project returns the loaded project. This is primarily for testing.
func (a *App) Project() *config.Project {
	return a.project
}

func applyOverrides(p *config.Project, c *Config) error {
	if c.CanvasPath != "" {
		abs, err := filepath.Abs(c.CanvasPath)
		if err != nil {
			return fmt.Errorf("failed to resolve canvas path %s: %w", c.CanvasPath, err)
		}
		p.Canvas.Path = abs
	}
	if c.SourceRoot != "" {
		abs, err := filepath.Abs(c.SourceRoot)
		if err != nil {
			return fmt.Errorf("failed to resolve source root %s: %w", c.SourceRoot, err)
		}
		p.Source.Root = abs
	}
	if c.NotifyURL != "" {
		p.Notify.URL = c.NotifyURL
	}
	return nil
}

// newScanner builds the header scanner described by the project, leaving
// the exclude names out of method lists. Class overrides and group members
// that name a file are resolved through it.
func newScanner(p *config.Project, exclude header.Exclude) (*header.Scanner, error) {
	files := make(map[string]string)
	for name, c := range p.Classes {
		if c.File != "" {
			files[name] = c.File
		}
	}
	groups := make([]string, 0, len(p.Groups))
	for name := range p.Groups {
		groups = append(groups, name)
	}
	sort.Strings(groups)
	for _, name := range groups {
		for _, m := range p.Groups[name].Members {
			if _, ok := files[m.Name]; !ok && m.File != "" {
				files[m.Name] = m.File
			}
		}
	}

	locator := &header.Locator{
		Root:       p.Source.Root,
		Subdirs:    p.Source.Subdirs,
		HeaderExts: p.Source.HeaderExts,
		ImplExts:   p.Source.ImplExts,
		Files:      files,
	}
	lookback := p.Methods.Lookback
	if lookback < 0 {
		lookback = 0
	}
	s, err := header.NewScanner(locator, header.ScannerOptions{
		Extractor: header.Extractor(p.Methods.Extractor),
		Exclude:   exclude,
		Lookback:  lookback,
		CacheSize: p.Methods.CacheSize,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header scanner: %w", err)
	}
	return s, nil
}
