package entry

import (
	"slices"

	"github.com/coolbeans/bookindex/pkg/collation"
)

// Compare orders two entries by sort key (falling back to value) using the
// collator. The result is always -1, 0 or 1.
func Compare(c collation.Collator, a, b *Entry) int {
	result := c.Compare(a.SortKeyOrValue(), b.SortKeyOrValue())
	switch {
	case result < 0:
		return -1
	case result > 0:
		return 1
	default:
		return 0
	}
}

// Sort stably sorts ids in place by Compare.
func (s *Store) Sort(ids []ID, c collation.Collator) {
	slices.SortStableFunc(ids, func(a, b ID) int {
		return Compare(c, s.Get(a), s.Get(b))
	})
}

// Sorted returns a sorted copy of ids.
func (s *Store) Sorted(ids []ID, c collation.Collator) []ID {
	sorted := slices.Clone(ids)
	s.Sort(sorted, c)
	return sorted
}
