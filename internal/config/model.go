package config

import "time"

// Project is the unified representation of a project file.
type Project struct {
	Canvas    Canvas
	Source    Source
	Layers    []*Layer
	Classes   map[string]*Class
	Relations Relations
	Methods   Methods
	Generate  Generate
	Sync      Sync
	Groups    map[string]*Group
	Notify    Notify
}

// Canvas describes the output document.
type Canvas struct {
	Path string
	// CompatColors writes every non-preset color as "1".
	CompatColors bool
	// Indent is used when writing; empty means a tab.
	Indent string
	// Validate checks the document before it is written.
	Validate bool
}

// Source describes the C++ tree that is scanned.
type Source struct {
	Root       string
	Subdirs    []string
	HeaderExts []string
	ImplExts   []string
}

// Strategy is how sync places new nodes inside a layer.
type Strategy string

const (
	StrategyGrid       Strategy = "grid"
	StrategyStackDown  Strategy = "stack_down"
	StrategyStackUp    Strategy = "stack_up"
	StrategyStackRight Strategy = "stack_right"
	StrategyFixed      Strategy = "fixed"
)

// Valid reports whether s is a known strategy.
func (s Strategy) Valid() bool {
	switch s {
	case StrategyGrid, StrategyStackDown, StrategyStackUp, StrategyStackRight, StrategyFixed:
		return true
	}
	return false
}

// Layer is an architectural bucket of classes drawn as one column.
type Layer struct {
	Name  string
	Label string
	Color string
	// X and Y position the layer header when generating.
	X, Y    float64
	Classes []string
	Sync    Placement
}

// Placement positions nodes that sync adds to a layer.
type Placement struct {
	X, Y        float64
	Strategy    Strategy
	Columns     int
	ColumnWidth float64
	RowHeight   float64
	// Step is the distance between stacked nodes.
	Step float64
}

// Class carries per-class overrides.
type Class struct {
	Name string
	// File is a header base relative to the source root, used when the class
	// is not declared in a file of its own name.
	File        string
	Struct      bool
	Abstract    bool
	Description string
}

// Relations are the class relationships drawn as edges.
type Relations struct {
	// Inheritance maps a child to its parent.
	Inheritance map[string]string
	Composition map[string][]string
	Association map[string][]string
	// KeyComposition and KeyAssociation are the subsets sync draws under
	// the "key" edge policy.
	KeyComposition map[string][]string
	KeyAssociation map[string][]string
}

// TextStyle selects how a class node's text is laid out.
type TextStyle string

const (
	// StylePlain lists methods directly under the description.
	StylePlain TextStyle = "plain"
	// StyleHeading puts methods under a "Key Methods" heading and fills in
	// placeholders when nothing was found.
	StyleHeading TextStyle = "heading"
)

// Valid reports whether s is a known style.
func (s TextStyle) Valid() bool {
	return s == StylePlain || s == StyleHeading
}

// Methods configures header scanning and method selection.
type Methods struct {
	Extractor string
	Exclude   []string
	// Lookback bounds the doc comment search in bytes. Zero takes the
	// default; UnboundedLookback searches the whole file.
	Lookback int
	// Limit is the most methods shown per node.
	Limit int
	// Priority is the most high-priority methods shown before the rest.
	Priority int
	Style    TextStyle
	// CacheSize is the number of parsed headers kept in memory.
	CacheSize int
}

// Size is a node width and height.
type Size struct {
	Width, Height float64
}

// Generate configures the generate command.
type Generate struct {
	ClassSize    Size
	AbstractSize Size
	HeaderSize   Size
	Spacing      float64
	// HeaderGap is the distance from a layer header to its first class.
	HeaderGap float64
	// FallbackLayer receives classes no layer lists.
	FallbackLayer string
	Edges         bool
	Groups        bool
	GroupPadding  float64
}

// EdgePolicy is what sync does with the existing edges.
type EdgePolicy string

const (
	EdgesKeep  EdgePolicy = "keep"
	EdgesClear EdgePolicy = "clear"
	EdgesKey   EdgePolicy = "key"
	EdgesAll   EdgePolicy = "all"
)

// Valid reports whether p is a known policy.
func (p EdgePolicy) Valid() bool {
	switch p {
	case EdgesKeep, EdgesClear, EdgesKey, EdgesAll:
		return true
	}
	return false
}

// Sync configures the sync command.
type Sync struct {
	ClassSize    Size
	AbstractSize Size
	Edges        EdgePolicy
}

// Group is a set of classes the add command places below an anchor node.
type Group struct {
	Name string
	// Anchor is the class whose node the group hangs from.
	Anchor string
	// DefaultX and DefaultY are used when the anchor is not on the canvas.
	DefaultX, DefaultY float64
	Offset             float64
	Spacing            float64
	ClassSize          Size
	AbstractSize       Size
	Style              TextStyle
	// Exclude lists method names left out of member nodes. Unlike
	// Methods.Exclude it is empty by default.
	Exclude []string
	Members []*Member
}

// Member is one class of a group.
type Member struct {
	Name        string
	File        string
	Description string
	Abstract    bool
	// Methods are shown when the header yields none.
	Methods []string
}

// Notify configures the change notification sent after a write.
type Notify struct {
	URL       string
	Namespace string
	Event     string
	Timeout   time.Duration
}

// Enabled reports whether notifications are configured.
func (n Notify) Enabled() bool {
	return n.URL != ""
}

// Layer returns the layer with the given name.
func (p *Project) Layer(name string) (*Layer, bool) {
	for _, l := range p.Layers {
		if l.Name == name {
			return l, true
		}
	}
	return nil, false
}

// Class returns the overrides for name, or an empty Class.
func (p *Project) Class(name string) *Class {
	if c, ok := p.Classes[name]; ok {
		return c
	}
	return &Class{Name: name}
}
