package canvas

import (
	"errors"
	"fmt"
	"regexp"
	"sync"

	"github.com/go-playground/validator/v10"
)

var hexColor = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// IsPresetColor reports whether c is one of the viewer's numbered colors.
func IsPresetColor(c string) bool {
	return len(c) == 1 && c[0] >= '1' && c[0] <= '6'
}

// IsColor reports whether c is a preset or a hex color.
func IsColor(c string) bool {
	return IsPresetColor(c) || hexColor.MatchString(c)
}

// CompatColor returns c unchanged when it is a preset, otherwise the first
// preset. Older viewers only render numbered colors.
func CompatColor(c string) string {
	if c == "" || IsPresetColor(c) {
		return c
	}
	return "1"
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func structValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
		_ = validate.RegisterValidation("canvascolor", func(fl validator.FieldLevel) bool {
			return IsColor(fl.Field().String())
		})
	})
	return validate
}

// Validate checks that doc is well formed: every node and edge passes its
// field rules, ids are unique, and every edge references existing nodes.
// All problems are reported together.
func Validate(doc *Document) error {
	v := structValidator()
	var errs []error
	ids := make(map[string]bool, len(doc.Nodes)+len(doc.Edges))

	for i, n := range doc.Nodes {
		if n == nil {
			errs = append(errs, fmt.Errorf("node #%d is null", i))
			continue
		}
		if err := v.Struct(n); err != nil {
			errs = append(errs, fieldErrors(fmt.Sprintf("node %q", n.ID), err)...)
		}
		if n.ID != "" {
			if ids[n.ID] {
				errs = append(errs, fmt.Errorf("duplicate id %q", n.ID))
			}
			ids[n.ID] = true
		}
	}
	nodes := make(map[string]bool, len(doc.Nodes))
	for _, n := range doc.Nodes {
		if n != nil {
			nodes[n.ID] = true
		}
	}
	for i, e := range doc.Edges {
		if e == nil {
			errs = append(errs, fmt.Errorf("edge #%d is null", i))
			continue
		}
		if err := v.Struct(e); err != nil {
			errs = append(errs, fieldErrors(fmt.Sprintf("edge %q", e.ID), err)...)
		}
		if e.ID != "" {
			if ids[e.ID] {
				errs = append(errs, fmt.Errorf("duplicate id %q", e.ID))
			}
			ids[e.ID] = true
		}
		if e.FromNode != "" && !nodes[e.FromNode] {
			errs = append(errs, fmt.Errorf("edge %q references unknown node %q", e.ID, e.FromNode))
		}
		if e.ToNode != "" && !nodes[e.ToNode] {
			errs = append(errs, fmt.Errorf("edge %q references unknown node %q", e.ID, e.ToNode))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid canvas: %w", errors.Join(errs...))
	}
	return nil
}

func fieldErrors(subject string, err error) []error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []error{fmt.Errorf("%s: %w", subject, err)}
	}
	out := make([]error, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, fmt.Errorf("%s: field %s failed rule %q (value %v)", subject, fe.Field(), fe.Tag(), fe.Value()))
	}
	return out
}
