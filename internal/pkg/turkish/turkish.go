// Package turkish centralizes locale-aware string handling for address
// names. Byte-order sort misplaces Ç, İ, Ş and friends; everything
// user-visible must go through the collator instead.
package turkish

import (
	"sort"

	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// NewCollator returns a collator for native Turkish alphabetical order.
// Collators are not safe for concurrent use, so callers create one per
// sort instead of sharing a package-level instance.
func NewCollator() *collate.Collator {
	return collate.New(language.Turkish)
}

// SortByName orders items in place by Turkish collation of their name.
func SortByName[T any](items []T, name func(T) string) {
	col := NewCollator()
	sort.SliceStable(items, func(i, j int) bool {
		return col.CompareString(name(items[i]), name(items[j])) < 0
	})
}

// EqualFold reports case-insensitive equality under Turkish casing rules,
// so "izmir" matches "İZMİR" and "ISPARTA" matches "Isparta".
func EqualFold(a, b string) bool {
	return Fold(a) == Fold(b)
}

// Fold returns a caseless form suitable for substring matching. Casers
// carry transform state, so one is created per call.
func Fold(s string) string {
	return cases.Lower(language.Turkish).String(s)
}
