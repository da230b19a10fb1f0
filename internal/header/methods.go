package header

import (
	"regexp"
	"strings"
)

// DefaultExclude lists accessor and lifecycle names that say nothing about
// how a class interacts with others.
var DefaultExclude = []string{
	"getType", "getName", "getInstanceName", "setInstanceName",
	"toJson", "fromJson", "serialize", "deserialize",
	"setup", "update", "draw", "audioOut", "videoOut",
	"getWidth", "getHeight", "setWidth", "setHeight",
	"getX", "getY", "setX", "setY", "getPosition", "setPosition",
	"getColor", "setColor", "isVisible", "setVisible",
	"getParent", "setParent", "getChildren", "addChild", "removeChild",
}

// Exclude is a set of method names to leave out of results.
type Exclude map[string]bool

// NewExclude builds an Exclude set from names.
func NewExclude(names ...string) Exclude {
	e := make(Exclude, len(names))
	for _, n := range names {
		e[n] = true
	}
	return e
}

// Extractor selects which public method scanner is used for classes.
type Extractor string

const (
	// ExtractLines scans line by line, tracking brace depth and access
	// sections across every class in the file.
	ExtractLines Extractor = "lines"
	// ExtractBody takes the brace-matched body of the first class in the file
	// and scans its public sections, typed declarations first.
	ExtractBody Extractor = "body"
)

// Valid reports whether e names a known extractor.
func (e Extractor) Valid() bool {
	return e == ExtractLines || e == ExtractBody
}

var (
	classStart   = regexp.MustCompile(`\bclass\s+(\w+)`)
	publicLabel  = regexp.MustCompile(`\bpublic\s*:`)
	privateLabel = regexp.MustCompile(`\b(?:private|protected)\s*:`)

	methodDecl = regexp.MustCompile(`\b(\w+)\s*\([^)]*\)\s*(?:const\s*)?(?:override\s*)?(?:=\s*0\s*)?[;{]`)
	typedDecl  = regexp.MustCompile(`\b(?:bool|void|int|float|std::\w+(?:\s*<\s*[^>]+\s*>)?)\s+(\w+)\s*\([^)]*\)\s*(?:const\s*)?(?:override\s*)?(?:=\s*0\s*)?[;{]`)
	structDecl = regexp.MustCompile(`(\w+)\s*\([^)]*\)\s*(?:const\s*)?(?:=\s*0\s*)?[;{]`)

	classHead = regexp.MustCompile(`\bclass\s+(\w+)(?:\s+final)?\s*(?::[^{;]*)?\{`)
)

// notMethods are words the declaration patterns can capture that are never
// method names.
var notMethods = map[string]bool{
	"operator": true, "bool": true, "void": true, "int": true, "float": true,
	"string": true, "std": true, "if": true, "for": true, "while": true,
	"switch": true, "return": true, "sizeof": true, "catch": true,
}

type collector struct {
	exclude Exclude
	seen    map[string]bool
	names   []string
}

func newCollector(exclude Exclude) *collector {
	return &collector{exclude: exclude, seen: make(map[string]bool)}
}

func (c *collector) add(name, owner string) {
	if name == "" || name == owner || notMethods[name] || c.exclude[name] || c.seen[name] {
		return
	}
	c.seen[name] = true
	c.names = append(c.names, name)
}

func (c *collector) result() []string {
	if c.names == nil {
		return []string{}
	}
	return c.names
}

// PublicMethods returns the public method names of every class in src, in
// order of first appearance. A line containing `class Name` and an opening
// brace starts a class; a line holding only `class Name` followed by a line
// with the brace also does. Constructors, destructors and excluded names are
// skipped. At most one declaration per line is recognised.
func PublicMethods(src string, exclude Exclude) []string {
	c := newCollector(exclude)
	clean := StripComments(src, true)

	var (
		inClass  bool
		inPublic bool
		depth    int
		owner    string
		pending  string
	)
	for _, line := range strings.Split(clean, "\n") {
		if m := classStart.FindStringSubmatch(line); m != nil {
			if strings.Contains(line, "{") {
				inClass, inPublic, owner, pending = true, false, m[1], ""
				depth = strings.Count(line, "{") - strings.Count(line, "}")
				continue
			}
			if !strings.Contains(line, ";") && strings.HasPrefix(strings.TrimSpace(line), "class ") {
				pending = m[1]
				continue
			}
		}
		if pending != "" {
			name := pending
			pending = ""
			if strings.Contains(line, "{") {
				inClass, inPublic, owner = true, false, name
				depth = strings.Count(line, "{") - strings.Count(line, "}")
				continue
			}
		}
		if !inClass {
			continue
		}

		depth += strings.Count(line, "{") - strings.Count(line, "}")
		if depth <= 0 {
			inClass = false
			continue
		}
		if publicLabel.MatchString(line) {
			inPublic = true
			continue
		}
		if privateLabel.MatchString(line) {
			inPublic = false
			continue
		}
		if !inPublic {
			continue
		}
		if m := methodDecl.FindStringSubmatch(line); m != nil {
			c.add(m[1], owner)
		}
	}
	return c.result()
}

// ClassBodyMethods returns the public method names of the first class in
// src. Declarations with a plain return type are collected first, then any
// remaining call-shaped declaration in the public sections.
func ClassBodyMethods(src string, exclude Exclude) []string {
	c := newCollector(exclude)
	clean := StripComments(src, true)

	loc := classHead.FindStringSubmatchIndex(clean)
	if loc == nil {
		return c.result()
	}
	owner := clean[loc[2]:loc[3]]
	classBody, ok := body(clean, loc[1]-1)
	if !ok {
		return c.result()
	}

	for _, section := range publicSections(classBody) {
		for _, m := range typedDecl.FindAllStringSubmatch(section, -1) {
			c.add(m[1], owner)
		}
		for _, m := range methodDecl.FindAllStringSubmatch(section, -1) {
			c.add(m[1], owner)
		}
	}
	return c.result()
}

// publicSections splits a class body into the spans that follow each
// `public:` label up to the next private or protected label.
func publicSections(classBody string) []string {
	var sections []string
	for _, loc := range publicLabel.FindAllStringIndex(classBody, -1) {
		rest := classBody[loc[1]:]
		if end := privateLabel.FindStringIndex(rest); end != nil {
			rest = rest[:end[0]]
		}
		sections = append(sections, rest)
	}
	return sections
}

// StructMembers returns the method names declared in `struct name`. All
// struct members are public.
func StructMembers(src, name string, exclude Exclude) []string {
	c := newCollector(exclude)
	clean := StripComments(src, true)

	head := regexp.MustCompile(`\bstruct\s+` + regexp.QuoteMeta(name) + `\b`)
	for _, loc := range head.FindAllStringIndex(clean, -1) {
		structBody, ok := body(clean, loc[1])
		if !ok {
			continue
		}
		for _, m := range structDecl.FindAllStringSubmatch(structBody, -1) {
			c.add(m[1], name)
		}
		break
	}
	return c.result()
}
