package app

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Commands understood by Run.
const (
	CommandGenerate = "generate"
	CommandSync     = "sync"
	CommandRefresh  = "refresh"
	CommandAdd      = "add"
	CommandInspect  = "inspect"
	CommandWatch    = "watch"
	CommandInit     = "init"
)

// Commands lists every command in the order usage shows them.
var Commands = []string{CommandInit, CommandGenerate, CommandSync, CommandRefresh, CommandAdd, CommandInspect, CommandWatch}

// DefaultDebounce is how long watch waits for header changes to settle.
const DefaultDebounce = 100 * time.Millisecond

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	Command    string
	ConfigPath string // hcl project file

	// Overrides of project settings. Empty leaves the project value.
	CanvasPath string
	SourceRoot string
	NotifyURL  string

	Group  string // for add
	DryRun bool

	LogFormat       string
	LogLevel        string
	Debounce        time.Duration
	HealthcheckPort int
}

// NewConfig validates cfg and fills in defaults.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.ConfigPath == "" {
		return nil, errors.New("ConfigPath is a required configuration field and cannot be empty")
	}
	if !validCommand(cfg.Command) {
		return nil, fmt.Errorf("unknown command '%s': must be one of %s", cfg.Command, strings.Join(Commands, ", "))
	}
	if cfg.Command == CommandAdd && cfg.Group == "" {
		return nil, errors.New("the add command needs a group (-group)")
	}
	if cfg.Debounce <= 0 {
		cfg.Debounce = DefaultDebounce
	}
	return &cfg, nil
}

func validCommand(c string) bool {
	for _, known := range Commands {
		if c == known {
			return true
		}
	}
	return false
}
