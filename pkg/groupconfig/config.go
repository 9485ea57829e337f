// Package groupconfig defines the ordered group definitions that index
// entries are partitioned into, and loads them from YAML, TOML or the
// legacy XML index configuration format.
package groupconfig

import (
	"errors"
	"fmt"
	"strings"

	"github.com/coolbeans/bookindex/pkg/collation"
)

// SpecialsKey is the key of the group that collects entries no other group
// claims.
const SpecialsKey = "Specials"

var (
	// ErrInvalidFormat is returned when a configuration document is
	// structurally wrong.
	ErrInvalidFormat = errors.New("invalid configuration format")
	// ErrUnknownFormat is returned for an unsupported file type.
	ErrUnknownFormat = errors.New("unknown configuration format")
)

// CharRange is the open interval (Start, End) in collation order.
type CharRange struct {
	Start string `yaml:"start" toml:"start" json:"start"`
	End   string `yaml:"end" toml:"end" json:"end"`
}

// Contains reports whether value collates strictly between Start and End.
func (r CharRange) Contains(value string, c collation.Collator) bool {
	return c.Compare(value, r.Start) > 0 && c.Compare(value, r.End) < 0
}

// Definition is one configured group.
type Definition struct {
	Key     string      `yaml:"key" toml:"key" json:"key"`
	Label   string      `yaml:"label" toml:"label" json:"label"`
	Members []string    `yaml:"members" toml:"members" json:"members,omitempty"`
	Ranges  []CharRange `yaml:"ranges" toml:"ranges" json:"ranges,omitempty"`
}

// Matches reports whether value belongs to the group's members: it starts
// with a member, is a prefix of a member, or falls in one of the ranges.
// An empty value never matches.
func (d Definition) Matches(value string, c collation.Collator) bool {
	if value == "" {
		return false
	}
	for _, member := range d.Members {
		if strings.HasPrefix(value, member) || strings.HasPrefix(member, value) {
			return true
		}
	}
	for _, r := range d.Ranges {
		if r.Contains(value, c) {
			return true
		}
	}
	return false
}

// HasMemberPrefix reports whether value starts with one of the members.
func (d Definition) HasMemberPrefix(value string) bool {
	for _, member := range d.Members {
		if strings.HasPrefix(value, member) {
			return true
		}
	}
	return false
}

// Extends reports whether every member of d strictly extends some member
// of parent, making d a more specific group nested under parent. A
// definition without members extends nothing.
func (d Definition) Extends(parent Definition) bool {
	if len(d.Members) == 0 || len(parent.Members) == 0 {
		return false
	}
	for _, member := range d.Members {
		if !extendsAny(member, parent.Members) {
			return false
		}
	}
	return true
}

func extendsAny(member string, prefixes []string) bool {
	for _, prefix := range prefixes {
		if member != prefix && strings.HasPrefix(member, prefix) {
			return true
		}
	}
	return false
}

// IsSpecials reports whether d is the catch-all group.
func (d Definition) IsSpecials() bool {
	return d.Key == SpecialsKey
}

// Configuration is an ordered list of group definitions. Order decides
// claim priority and the alphabetic windows of member-less groups.
type Configuration struct {
	Groups []Definition `yaml:"groups" toml:"groups" json:"groups"`
}

// Validate checks the definitions and fills in missing labels.
func (c *Configuration) Validate() error {
	if len(c.Groups) == 0 {
		return fmt.Errorf("%w: no groups defined", ErrInvalidFormat)
	}
	for i := range c.Groups {
		d := &c.Groups[i]
		if strings.TrimSpace(d.Key) == "" {
			return fmt.Errorf("%w: group %d has an empty key", ErrInvalidFormat, i+1)
		}
		if d.Label == "" {
			d.Label = d.Key
		}
		for j, r := range d.Ranges {
			if r.Start == "" || r.End == "" {
				return fmt.Errorf("%w: group %q range %d needs both start and end", ErrInvalidFormat, d.Key, j+1)
			}
		}
	}
	return nil
}

// Specials returns the index of the catch-all group, or -1.
func (c *Configuration) Specials() int {
	for i, d := range c.Groups {
		if d.IsSpecials() {
			return i
		}
	}
	return -1
}
