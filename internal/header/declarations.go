package header

import (
	"regexp"
	"strings"
	"unicode"
)

// Declaration is a class or struct definition found in a header.
type Declaration struct {
	Name string
	Kind Kind
	// Bases are the direct base classes in declaration order, without
	// access specifiers, namespaces or template arguments.
	Bases []string
}

var (
	declHead    = regexp.MustCompile(`\b(class|struct)\s+(\w+)(?:\s+final)?\s*(?::\s*([^{;]*))?\{`)
	baseQualify = regexp.MustCompile(`\b(?:public|protected|private|virtual)\b`)
)

// Declarations returns every class and struct defined in src, in source
// order. Forward declarations, enum classes and template parameters are not
// definitions and are skipped. A name defined twice is reported once.
func Declarations(src string) []Declaration {
	clean := StripComments(src, true)
	var out []Declaration
	seen := make(map[string]bool)
	for _, m := range declHead.FindAllStringSubmatchIndex(clean, -1) {
		if enumBefore(clean, m[0]) {
			continue
		}
		name := clean[m[4]:m[5]]
		if seen[name] {
			continue
		}
		seen[name] = true

		d := Declaration{Name: name, Kind: Kind(clean[m[2]:m[3]])}
		if m[6] >= 0 {
			d.Bases = parseBases(clean[m[6]:m[7]])
		}
		out = append(out, d)
	}
	return out
}

// enumBefore reports whether the keyword ending just before offset i is
// `enum`. Only the whitespace and the keyword are inspected.
func enumBefore(src string, i int) bool {
	prefix := strings.TrimRightFunc(src[:i], unicode.IsSpace)
	if len(prefix) == len(src[:i]) || !strings.HasSuffix(prefix, "enum") {
		return false
	}
	rest := prefix[:len(prefix)-len("enum")]
	if rest == "" {
		return true
	}
	c := rest[len(rest)-1]
	return !(c == '_' || c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z')
}

// parseBases splits a base clause such as
// "public ofBaseApp, private juce::Timer<int>" into plain names.
func parseBases(clause string) []string {
	var bases []string
	for _, part := range splitTopLevel(clause) {
		part = baseQualify.ReplaceAllString(part, "")
		part = stripTemplateArgs(part)
		part = strings.TrimSpace(part)
		if i := strings.LastIndex(part, "::"); i >= 0 {
			part = part[i+2:]
		}
		if isIdentifier(part) {
			bases = append(bases, part)
		}
	}
	return bases
}

// splitTopLevel splits s on commas outside angle brackets.
func splitTopLevel(s string) []string {
	var parts []string
	depth, start := 0, 0
	for i, r := range s {
		switch r {
		case '<':
			depth++
		case '>':
			if depth > 0 {
				depth--
			}
		case ',':
			if depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	return append(parts, s[start:])
}

func stripTemplateArgs(s string) string {
	var b strings.Builder
	depth := 0
	for _, r := range s {
		switch {
		case r == '<':
			depth++
		case r == '>' && depth > 0:
			depth--
		case depth == 0:
			b.WriteRune(r)
		}
	}
	return b.String()
}

var identRE = regexp.MustCompile(`^[A-Za-z_]\w*$`)

func isIdentifier(s string) bool {
	return identRE.MatchString(s)
}
