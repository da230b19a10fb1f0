package header

import (
	"path/filepath"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/vk/classcanvas/internal/fsutil"
)

// Default search settings for a C++ source tree.
var (
	DefaultSubdirs        = []string{"core", "modules", "gui", "utils", "data", "input", "shell"}
	DefaultHeaderExts     = []string{".h", ".hpp"}
	DefaultImplementation = []string{".cpp"}
)

// Locator resolves class names to files under a source root.
type Locator struct {
	Root string
	// Subdirs are searched, in order, after the root itself.
	Subdirs []string
	// HeaderExts are the header extensions to try, in order.
	HeaderExts []string
	// ImplExts are the implementation extensions to try, in order.
	ImplExts []string
	// Files maps a class to a file base relative to Root when the class does
	// not live in a file of its own name. The base may include a
	// subdirectory and may carry an extension.
	Files map[string]string
}

// NewLocator returns a Locator for root with the default search settings.
func NewLocator(root string) *Locator {
	return &Locator{
		Root:       root,
		Subdirs:    DefaultSubdirs,
		HeaderExts: DefaultHeaderExts,
		ImplExts:   DefaultImplementation,
	}
}

// Header returns the header declaring class.
func (l *Locator) Header(class string) (string, bool) {
	return l.find(class, l.headerExts(), true)
}

// Implementation returns the implementation file for class.
func (l *Locator) Implementation(class string) (string, bool) {
	exts := l.ImplExts
	if len(exts) == 0 {
		exts = DefaultImplementation
	}
	return l.find(class, exts, false)
}

func (l *Locator) headerExts() []string {
	if len(l.HeaderExts) == 0 {
		return DefaultHeaderExts
	}
	return l.HeaderExts
}

// find walks the candidates in order: the explicit file base, the root, each
// subdirectory, then lower-case and lower-first spellings in subdirectories.
func (l *Locator) find(class string, exts []string, variants bool) (string, bool) {
	if base, ok := l.Files[class]; ok {
		if p, ok := l.override(base, exts); ok {
			return p, true
		}
	}
	if p, ok := l.first(class, exts, true); ok {
		return p, true
	}
	if !variants {
		return "", false
	}
	for _, v := range nameVariants(class) {
		if p, ok := l.first(v, exts, false); ok {
			return p, true
		}
	}
	return "", false
}

func (l *Locator) override(base string, exts []string) (string, bool) {
	base = filepath.FromSlash(base)
	if ext := filepath.Ext(base); ext != "" && l.knownExt(ext) {
		base = strings.TrimSuffix(base, ext)
	}
	if strings.ContainsRune(base, filepath.Separator) {
		return l.try(filepath.Join(l.Root, base), exts)
	}
	return l.first(base, exts, true)
}

// first looks for base with each extension at the root (when withRoot is
// set) and then in each subdirectory.
func (l *Locator) first(base string, exts []string, withRoot bool) (string, bool) {
	if withRoot {
		if p, ok := l.try(filepath.Join(l.Root, base), exts); ok {
			return p, true
		}
	}
	for _, dir := range l.Subdirs {
		if p, ok := l.try(filepath.Join(l.Root, dir, base), exts); ok {
			return p, true
		}
	}
	return "", false
}

func (l *Locator) try(stem string, exts []string) (string, bool) {
	for _, ext := range exts {
		if p := stem + ext; fsutil.FileExists(p) {
			return p, true
		}
	}
	return "", false
}

func (l *Locator) knownExt(ext string) bool {
	for _, e := range l.headerExts() {
		if strings.EqualFold(e, ext) {
			return true
		}
	}
	impl := l.ImplExts
	if len(impl) == 0 {
		impl = DefaultImplementation
	}
	for _, e := range impl {
		if strings.EqualFold(e, ext) {
			return true
		}
	}
	return false
}

func nameVariants(class string) []string {
	var out []string
	if lower := strings.ToLower(class); lower != class {
		out = append(out, lower)
	}
	r, size := utf8.DecodeRuneInString(class)
	if r != utf8.RuneError && unicode.IsUpper(r) {
		if v := string(unicode.ToLower(r)) + class[size:]; v != strings.ToLower(class) {
			out = append(out, v)
		}
	}
	return out
}
