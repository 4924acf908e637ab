package spec

import "fmt"

// Validate checks the spec's local invariants. It runs before any
// transport so malformed specs never reach the oracle.
//
// A spec is invalid when:
//   - constraints.maxWidth or constraints.maxHeight is negative
//   - any style.width or style.height anywhere in the tree is negative
//   - the assertions list is empty (a zero-assertion run would report
//     passed+failed+skipped == 0, which is indistinguishable from
//     nothing having been checked)
func (s *TestSpec) Validate() error {
	if s.Constraints.MaxWidth != nil && *s.Constraints.MaxWidth < 0 {
		return &InvalidSpecError{
			Field:   "constraints.maxWidth",
			Message: fmt.Sprintf("must be non-negative, got %v", *s.Constraints.MaxWidth),
		}
	}
	if s.Constraints.MaxHeight != nil && *s.Constraints.MaxHeight < 0 {
		return &InvalidSpecError{
			Field:   "constraints.maxHeight",
			Message: fmt.Sprintf("must be non-negative, got %v", *s.Constraints.MaxHeight),
		}
	}

	if err := validateLayout(&s.Layout, "layout"); err != nil {
		return err
	}

	if len(s.Assertions) == 0 {
		return &InvalidSpecError{
			Field:   "assertions",
			Message: "at least one assertion is required",
		}
	}

	return nil
}

// validateLayout walks the tree checking style sizes. The path parameter
// tracks the document location for error reporting.
func validateLayout(l *Layout, path string) error {
	if l.Style.Width != nil && *l.Style.Width < 0 {
		return &InvalidSpecError{
			Field:   path + ".style.width",
			Message: fmt.Sprintf("must be non-negative, got %v", *l.Style.Width),
		}
	}
	if l.Style.Height != nil && *l.Style.Height < 0 {
		return &InvalidSpecError{
			Field:   path + ".style.height",
			Message: fmt.Sprintf("must be non-negative, got %v", *l.Style.Height),
		}
	}
	for i := range l.Children {
		childPath := fmt.Sprintf("%s.children[%d]", path, i)
		if err := validateLayout(&l.Children[i], childPath); err != nil {
			return err
		}
	}
	return nil
}
