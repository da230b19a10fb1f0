package header

import (
	"regexp"
	"strings"
)

// DefaultLookback bounds how far before a class declaration the doc comment
// may start. Larger windows start picking up comments of earlier classes.
const DefaultLookback = 500

const (
	maxDescription = 120
	cutDescription = 117
)

var (
	docBlock     = regexp.MustCompile(`(?s)/\*\*\s*(.*?)\s*\*/`)
	asterisks    = regexp.MustCompile(`\*+`)
	whitespaceRE = regexp.MustCompile(`\s+`)
)

// Description returns the one-line summary from the last `/** ... */` block
// that precedes `class name` or `struct name` in src, looking back at most
// lookback bytes (0 means the whole file). A leading "Name - " or "Name" is
// dropped. Results longer than 120 characters are cut to 117 plus "...".
// It returns "" when there is no declaration or no doc block.
func Description(src, name string, lookback int) string {
	decl := regexp.MustCompile(`\b(?:class|struct)\s+` + regexp.QuoteMeta(name) + `\b`)
	loc := decl.FindStringIndex(src)
	if loc == nil {
		return ""
	}
	start := 0
	if lookback > 0 && loc[0] > lookback {
		start = loc[0] - lookback
	}
	blocks := docBlock.FindAllStringSubmatch(src[start:loc[0]], -1)
	if len(blocks) == 0 {
		return ""
	}
	first := firstLine(blocks[len(blocks)-1][1])
	if first == "" {
		return ""
	}

	var desc string
	switch {
	case strings.Contains(first, " - "):
		_, desc, _ = strings.Cut(first, " - ")
	case strings.HasPrefix(first, name):
		desc = strings.Trim(first[len(name):], " -")
	default:
		desc = first
	}
	desc = asterisks.ReplaceAllString(desc, "")
	desc = strings.TrimSpace(whitespaceRE.ReplaceAllString(desc, " "))
	return truncate(desc)
}

// firstLine returns the first line of a doc block with content, without the
// leading asterisks of javadoc-style continuation lines.
func firstLine(block string) string {
	for _, line := range strings.Split(block, "\n") {
		line = strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(line), "*"))
		if line != "" {
			return line
		}
	}
	return ""
}

func truncate(s string) string {
	r := []rune(s)
	if len(r) <= maxDescription {
		return s
	}
	return string(r[:cutDescription]) + "..."
}
