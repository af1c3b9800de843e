package entities

import (
	"slices"
	"strings"

	"golang.org/x/text/cases"
)

// NormalizeName folds a name for case-insensitive comparison. Underscores
// count as spaces so "First_Aid" and "first aid" compare equal.
func NormalizeName(name string) string {
	name = strings.ReplaceAll(strings.TrimSpace(name), "_", " ")
	return cases.Fold().String(name)
}

// Canonicalize returns the single name in names that contains candidate as a
// case-insensitive substring.
//
// It fails with a *NameResolutionError when nothing matches (ErrNoMatch) or
// when more than one name matches (ErrAmbiguousMatch, listing every match in
// sorted order). Ambiguity is never resolved by picking one.
func Canonicalize(candidate string, names []string) (string, error) {
	fold := cases.Fold()
	needle := fold.String(strings.TrimSpace(candidate))

	var matches []string
	for _, name := range names {
		if strings.Contains(fold.String(name), needle) {
			matches = append(matches, name)
		}
	}
	slices.Sort(matches)

	if len(matches) != 1 {
		return "", &NameResolutionError{Candidate: candidate, Matches: matches}
	}
	return matches[0], nil
}

// NormalizeCategory folds a dictionary category name. Unlike NormalizeName it
// keeps underscores.
func NormalizeCategory(category string) string {
	return cases.Fold().String(strings.TrimSpace(category))
}
