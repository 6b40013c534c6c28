package category

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidCategoryFormat means a fully-qualified name has more than the
// two levels the analysis pipeline supports.
var ErrInvalidCategoryFormat = errors.New("invalid category format")

// IsValid reports whether a fully-qualified name has at most two levels
// (zero or one separator).
func IsValid(name string) bool {
	return strings.Count(name, Separator) <= 1
}

// Split decomposes a fully-qualified name into (category, subcategory).
// The subcategory is empty when the name has a single level. Names with
// two or more separators fail with ErrInvalidCategoryFormat; the caller
// re-checks this at the point of use even when the input came from
// Resolve, as a boundary contract.
func Split(name string) (string, string, error) {
	if !IsValid(name) {
		return "", "", fmt.Errorf("%w: %q has more than two levels", ErrInvalidCategoryFormat, name)
	}
	cat, sub, _ := strings.Cut(name, Separator)
	return cat, sub, nil
}
