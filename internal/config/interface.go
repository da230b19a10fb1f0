package config

import "context"

// Loader is the interface for a format-specific project loader.
type Loader interface {
	// Load reads the project file at path and translates it into the
	// format-agnostic model, with defaults applied.
	Load(ctx context.Context, path string) (*Project, error)
}

// Encoder is the interface for a format-specific project writer. Loaders
// that can also write their format implement it.
type Encoder interface {
	// Encode renders p as a project file that will be stored in dir.
	Encode(p *Project, dir string) ([]byte, error)
}
