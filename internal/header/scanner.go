package header

import (
	"context"
	"fmt"
	"os"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/vk/classcanvas/internal/ctxlog"
)

// DefaultCacheSize is the number of parsed headers kept in memory.
const DefaultCacheSize = 256

// Kind is the C++ aggregate keyword a class was declared with.
type Kind string

const (
	KindClass  Kind = "class"
	KindStruct Kind = "struct"
)

// Result is what the scanner learned about one class.
type Result struct {
	Class          string   `yaml:"class"`
	Header         string   `yaml:"header,omitempty"`
	Implementation string   `yaml:"implementation,omitempty"`
	Description    string   `yaml:"description,omitempty"`
	Methods        []string `yaml:"methods"`
}

// Found reports whether a header was located for the class.
func (r Result) Found() bool {
	return r.Header != ""
}

// HasImplementation reports whether an implementation file was located.
func (r Result) HasImplementation() bool {
	return r.Implementation != ""
}

// ScannerOptions configures a Scanner.
type ScannerOptions struct {
	Extractor Extractor
	Exclude   Exclude
	// Lookback bounds the doc comment search, see Description.
	Lookback  int
	CacheSize int
}

// Scanner locates and scans headers. Parsed files are cached by path and
// invalidated when their modification time or size changes, so a long
// running watch only re-reads what was edited.
type Scanner struct {
	locator *Locator
	opts    ScannerOptions
	cache   *lru.Cache[string, *parsedFile]
}

type parsedFile struct {
	modTime time.Time
	size    int64
	src     string

	lines []string
	body  []string
}

// NewScanner returns a Scanner resolving files through locator.
func NewScanner(locator *Locator, opts ScannerOptions) (*Scanner, error) {
	if opts.Extractor == "" {
		opts.Extractor = ExtractBody
	}
	if !opts.Extractor.Valid() {
		return nil, fmt.Errorf("unknown method extractor %q", opts.Extractor)
	}
	if opts.Exclude == nil {
		opts.Exclude = NewExclude(DefaultExclude...)
	}
	if opts.CacheSize <= 0 {
		opts.CacheSize = DefaultCacheSize
	}
	cache, err := lru.New[string, *parsedFile](opts.CacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create header cache: %w", err)
	}
	return &Scanner{locator: locator, opts: opts, cache: cache}, nil
}

// Locator returns the scanner's file locator.
func (s *Scanner) Locator() *Locator {
	return s.locator
}

// Scan locates class and extracts its description and public methods.
// Missing or unreadable headers produce a Result with no methods; the
// condition is logged at debug level and is not an error.
func (s *Scanner) Scan(ctx context.Context, class string, kind Kind) Result {
	logger := ctxlog.FromContext(ctx).With("class", class)
	res := Result{Class: class, Methods: []string{}}

	if impl, ok := s.locator.Implementation(class); ok {
		res.Implementation = impl
	}
	path, ok := s.locator.Header(class)
	if !ok {
		logger.Debug("Header file not found.")
		return res
	}
	res.Header = path

	pf, err := s.load(path)
	if err != nil {
		logger.Debug("Could not read header.", "path", path, "error", err)
		return res
	}

	res.Description = Description(pf.src, class, s.opts.Lookback)
	if kind == KindStruct {
		res.Methods = StructMembers(pf.src, class, s.opts.Exclude)
	} else {
		res.Methods = s.classMethods(pf)
	}
	logger.Debug("Scanned header.", "path", path, "methods", len(res.Methods))
	return res
}

// Methods returns the public methods of the header at path using the
// configured extractor.
func (s *Scanner) Methods(path string) ([]string, error) {
	pf, err := s.load(path)
	if err != nil {
		return nil, err
	}
	return s.classMethods(pf), nil
}

func (s *Scanner) classMethods(pf *parsedFile) []string {
	if s.opts.Extractor == ExtractLines {
		if pf.lines == nil {
			pf.lines = PublicMethods(pf.src, s.opts.Exclude)
		}
		return pf.lines
	}
	if pf.body == nil {
		pf.body = ClassBodyMethods(pf.src, s.opts.Exclude)
	}
	return pf.body
}

func (s *Scanner) load(path string) (*parsedFile, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if pf, ok := s.cache.Get(path); ok && pf.modTime.Equal(info.ModTime()) && pf.size == info.Size() {
		return pf, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	pf := &parsedFile{modTime: info.ModTime(), size: info.Size(), src: string(data)}
	s.cache.Add(path, pf)
	return pf, nil
}

// Forget drops any cached parse of path.
func (s *Scanner) Forget(path string) {
	s.cache.Remove(path)
}

// Cached reports how many headers are currently cached.
func (s *Scanner) Cached() int {
	return s.cache.Len()
}
