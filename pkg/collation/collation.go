// Package collation provides the locale-aware string ordering used to sort
// and group index entries.
package collation

import (
	"fmt"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Collator compares two strings in collation order. Compare returns a
// negative number, zero or a positive number.
type Collator interface {
	Compare(a, b string) int
}

// LocaleCollator is a Collator for one locale. It is not safe for
// concurrent use.
type LocaleCollator struct {
	tag      language.Tag
	collator *collate.Collator
}

// New creates a collator for a locale such as "en", "en-US" or "en_US".
func New(locale string) (*LocaleCollator, error) {
	tag, err := ParseLocale(locale)
	if err != nil {
		return nil, err
	}
	return &LocaleCollator{
		tag:      tag,
		collator: collate.New(tag),
	}, nil
}

// ParseLocale parses a locale identifier, accepting both "-" and "_" as the
// region separator.
func ParseLocale(locale string) (language.Tag, error) {
	locale = strings.TrimSpace(locale)
	if locale == "" {
		return language.Und, fmt.Errorf("locale is empty")
	}
	tag, err := language.Parse(strings.ReplaceAll(locale, "_", "-"))
	if err != nil {
		return language.Und, fmt.Errorf("invalid locale %q: %w", locale, err)
	}
	return tag, nil
}

// Tag returns the collator's language tag.
func (c *LocaleCollator) Tag() language.Tag {
	return c.tag
}

// Compare compares a and b and returns -1, 0 or 1.
func (c *LocaleCollator) Compare(a, b string) int {
	return c.collator.CompareString(a, b)
}

// Func adapts an ordinary comparison function to a Collator.
type Func func(a, b string) int

// Compare calls f(a, b).
func (f Func) Compare(a, b string) int {
	return f(a, b)
}

// Binary orders strings by their bytes.
var Binary Collator = Func(strings.Compare)
