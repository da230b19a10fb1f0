// Package header harvests class names, public methods and doc comments from
// C++ headers. It is a line and brace-depth text scanner, not a parser:
// templates, macros and declarations split across lines are best effort, and
// anything it cannot make sense of yields an empty result.
package header

import "regexp"

var (
	lineComment  = regexp.MustCompile(`(?m)//.*$`)
	blockComment = regexp.MustCompile(`(?s)/\*.*?\*/`)
	stringLit    = regexp.MustCompile(`"[^"]*"`)
	charLit      = regexp.MustCompile(`'[^']*'`)
)

// StripComments removes line and block comments from src. When literals is
// true, string and character literals are also emptied so braces and
// parentheses inside them do not confuse the scanners.
func StripComments(src string, literals bool) string {
	out := lineComment.ReplaceAllString(src, "")
	out = blockComment.ReplaceAllString(out, "")
	if literals {
		out = stringLit.ReplaceAllString(out, `""`)
		out = charLit.ReplaceAllString(out, `''`)
	}
	return out
}

// body returns the text between the first '{' at or after pos and its
// matching '}'. If a ';' comes before any '{' (a forward declaration) or the
// braces never balance, it reports false.
func body(src string, pos int) (string, bool) {
	open := -1
	for i := pos; i < len(src); i++ {
		if src[i] == ';' {
			return "", false
		}
		if src[i] == '{' {
			open = i
			break
		}
	}
	if open < 0 {
		return "", false
	}
	depth := 1
	for i := open + 1; i < len(src); i++ {
		switch src[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return src[open+1 : i], true
			}
		}
	}
	return "", false
}
