package canvas

import (
	"regexp"
	"strings"
)

var (
	titlePattern    = regexp.MustCompile(`#\s*(\w+)\.(?:cpp/h|h)`)
	emphasisPattern = regexp.MustCompile(`\*(\w+)\*`)
	identPattern    = regexp.MustCompile(`^[A-Za-z_]\w*$`)
	firstLineTrim   = strings.NewReplacer(" (abstract)", "", ".cpp/h", "", ".h", "", ".cpp", "", "#", "")
)

// ClassName recovers the class a node describes from its text. It reports
// false when nothing usable was found or the result is not a C++
// identifier, which happens for layer headers and free-form notes.
func ClassName(text string) (string, bool) {
	name := rawClassName(text)
	if name == "" || !identPattern.MatchString(name) {
		return name, false
	}
	return name, true
}

func rawClassName(text string) string {
	if m := titlePattern.FindStringSubmatch(text); m != nil {
		return m[1]
	}
	if m := emphasisPattern.FindStringSubmatch(text); m != nil {
		return m[1]
	}
	first, _, _ := strings.Cut(text, "\n")
	return strings.TrimSpace(firstLineTrim.Replace(first))
}

// ClassIndex maps class names to the text nodes that describe them.
// Malformed names are returned separately, keyed by node id, so callers can
// report them.
type ClassIndex struct {
	ByName    map[string]*Node
	Malformed map[string]string
}

// IndexClasses builds a ClassIndex for the text nodes of doc. When two
// nodes name the same class the first one wins.
func IndexClasses(doc *Document) *ClassIndex {
	idx := &ClassIndex{
		ByName:    make(map[string]*Node),
		Malformed: make(map[string]string),
	}
	for _, n := range doc.Nodes {
		if n == nil || n.Type != TypeText {
			continue
		}
		name, ok := ClassName(n.Text)
		if !ok {
			idx.Malformed[n.ID] = name
			continue
		}
		if _, seen := idx.ByName[name]; !seen {
			idx.ByName[name] = n
		}
	}
	return idx
}

// Has reports whether the class already has a node.
func (c *ClassIndex) Has(name string) bool {
	_, ok := c.ByName[name]
	return ok
}
