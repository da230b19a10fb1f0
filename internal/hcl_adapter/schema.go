package hcl_adapter

// fileRoot decodes every top-level block of a project file. Unknown blocks
// and attributes are errors.
type fileRoot struct {
	Canvas    *CanvasBlock    `hcl:"canvas,block"`
	Source    *SourceBlock    `hcl:"source,block"`
	Layers    []*LayerBlock   `hcl:"layer,block"`
	Classes   []*ClassBlock   `hcl:"class,block"`
	Relations *RelationsBlock `hcl:"relations,block"`
	Methods   *MethodsBlock   `hcl:"methods,block"`
	Generate  *GenerateBlock  `hcl:"generate,block"`
	Sync      *SyncBlock      `hcl:"sync,block"`
	Groups    []*GroupBlock   `hcl:"group,block"`
	Notify    *NotifyBlock    `hcl:"notify,block"`
}

// CanvasBlock is the `canvas` block.
type CanvasBlock struct {
	Path         string `hcl:"path,optional"`
	CompatColors *bool  `hcl:"compat_colors,optional"`
	Indent       string `hcl:"indent,optional"`
	Validate     *bool  `hcl:"validate,optional"`
}

// SourceBlock is the `source` block.
type SourceBlock struct {
	Root       string   `hcl:"root"`
	Subdirs    []string `hcl:"subdirs,optional"`
	Extensions []string `hcl:"extensions,optional"`
	Impl       []string `hcl:"implementation_extensions,optional"`
}

// LayerBlock is a `layer "<name>"` block.
type LayerBlock struct {
	Name    string          `hcl:"name,label"`
	Label   string          `hcl:"label,optional"`
	Color   string          `hcl:"color,optional"`
	X       float64         `hcl:"x,optional"`
	Y       float64         `hcl:"y,optional"`
	Classes []string        `hcl:"classes,optional"`
	Sync    *PlacementBlock `hcl:"sync,block"`
}

// PlacementBlock is the `sync` block nested in a layer.
type PlacementBlock struct {
	X           float64 `hcl:"x,optional"`
	Y           float64 `hcl:"y,optional"`
	Strategy    string  `hcl:"strategy,optional"`
	Columns     int     `hcl:"columns,optional"`
	ColumnWidth float64 `hcl:"column_width,optional"`
	RowHeight   float64 `hcl:"row_height,optional"`
	Step        float64 `hcl:"step,optional"`
}

// ClassBlock is a `class "<name>"` override block.
type ClassBlock struct {
	Name        string `hcl:"name,label"`
	File        string `hcl:"file,optional"`
	Kind        string `hcl:"kind,optional"`
	Abstract    bool   `hcl:"abstract,optional"`
	Description string `hcl:"description,optional"`
}

// RelationsBlock is the `relations` block.
type RelationsBlock struct {
	Inheritance    map[string]string   `hcl:"inheritance,optional"`
	Composition    map[string][]string `hcl:"composition,optional"`
	Association    map[string][]string `hcl:"association,optional"`
	KeyComposition map[string][]string `hcl:"key_composition,optional"`
	KeyAssociation map[string][]string `hcl:"key_association,optional"`
}

// MethodsBlock is the `methods` block.
type MethodsBlock struct {
	Extractor        string   `hcl:"extractor,optional"`
	Exclude          []string `hcl:"exclude,optional"`
	NoDefaultExclude bool     `hcl:"no_default_exclude,optional"`
	Lookback         *int     `hcl:"lookback,optional"`
	Limit            int      `hcl:"limit,optional"`
	Priority         int      `hcl:"priority,optional"`
	Style            string   `hcl:"style,optional"`
	CacheSize        int      `hcl:"cache_size,optional"`
}

// GenerateBlock is the `generate` block.
type GenerateBlock struct {
	ClassWidth     float64 `hcl:"class_width,optional"`
	ClassHeight    float64 `hcl:"class_height,optional"`
	AbstractWidth  float64 `hcl:"abstract_width,optional"`
	AbstractHeight float64 `hcl:"abstract_height,optional"`
	HeaderWidth    float64 `hcl:"header_width,optional"`
	HeaderHeight   float64 `hcl:"header_node_height,optional"`
	Spacing        float64 `hcl:"spacing,optional"`
	HeaderGap      float64 `hcl:"header_gap,optional"`
	FallbackLayer  string  `hcl:"fallback_layer,optional"`
	Edges          bool    `hcl:"edges,optional"`
	Groups         bool    `hcl:"groups,optional"`
	GroupPadding   float64 `hcl:"group_padding,optional"`
}

// SyncBlock is the top-level `sync` block.
type SyncBlock struct {
	ClassWidth     float64 `hcl:"class_width,optional"`
	ClassHeight    float64 `hcl:"class_height,optional"`
	AbstractWidth  float64 `hcl:"abstract_width,optional"`
	AbstractHeight float64 `hcl:"abstract_height,optional"`
	Edges          string  `hcl:"edges,optional"`
}

// GroupBlock is a `group "<name>"` block.
type GroupBlock struct {
	Name           string         `hcl:"name,label"`
	Anchor         string         `hcl:"anchor,optional"`
	DefaultX       float64        `hcl:"default_x,optional"`
	DefaultY       float64        `hcl:"default_y,optional"`
	Offset         float64        `hcl:"offset,optional"`
	Spacing        float64        `hcl:"spacing,optional"`
	ClassWidth     float64        `hcl:"class_width,optional"`
	ClassHeight    float64        `hcl:"class_height,optional"`
	AbstractWidth  float64        `hcl:"abstract_width,optional"`
	AbstractHeight float64        `hcl:"abstract_height,optional"`
	Style          string         `hcl:"style,optional"`
	Exclude        []string       `hcl:"exclude,optional"`
	Members        []*MemberBlock `hcl:"member,block"`
}

// MemberBlock is a `member "<class>"` block nested in a group.
type MemberBlock struct {
	Name        string   `hcl:"name,label"`
	File        string   `hcl:"file,optional"`
	Description string   `hcl:"description,optional"`
	Abstract    bool     `hcl:"abstract,optional"`
	Methods     []string `hcl:"methods,optional"`
}

// NotifyBlock is the `notify` block.
type NotifyBlock struct {
	URL       string `hcl:"url"`
	Namespace string `hcl:"namespace,optional"`
	Event     string `hcl:"event,optional"`
	Timeout   string `hcl:"timeout,optional"`
}
