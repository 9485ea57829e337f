package entry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coolbeans/bookindex/pkg/collation"
)

func TestCompare(t *testing.T) {
	c, err := collation.New("en")
	require.NoError(t, err)
	s := NewStore()

	a := s.Get(s.New("b", "", "b", nil))
	b := s.Get(s.New("a", "", "a", nil))
	assert.Equal(t, 1, Compare(c, a, b))
	assert.Equal(t, 0, Compare(c, a, a))
	assert.Equal(t, -1, Compare(c, b, a))

	withSort := s.Get(s.New("a", "c", "a", nil))
	assert.Equal(t, 1, Compare(c, withSort, a), "sort key takes precedence over value")
	assert.Equal(t, -1, Compare(c, a, withSort))
}

func TestCompareClampsResult(t *testing.T) {
	wide := collation.Func(func(a, b string) int { return (len(a) - len(b)) * 10 })
	s := NewStore()
	short := s.Get(s.New("a", "", "a", nil))
	long := s.Get(s.New("aaa", "", "aaa", nil))

	assert.Equal(t, -1, Compare(wide, short, long))
	assert.Equal(t, 1, Compare(wide, long, short))
}

func TestCompareTotalOrder(t *testing.T) {
	c, err := collation.New("en")
	require.NoError(t, err)
	s := NewStore()

	values := []string{"apple", "Apple", "banana", "Ábaco", "zebra", "10", "2", "é", "e", "apple"}
	var entries []*Entry
	for _, v := range values {
		entries = append(entries, s.Get(s.New(v, "", v, nil)))
	}
	entries = append(entries, s.Get(s.New("x", "apple", "x", nil)))

	for _, x := range entries {
		assert.Equal(t, 0, Compare(c, x, x))
		for _, y := range entries {
			assert.Equal(t, -Compare(c, y, x), Compare(c, x, y), "antisymmetry %q %q", x.Value, y.Value)
			for _, z := range entries {
				if Compare(c, x, y) <= 0 && Compare(c, y, z) <= 0 {
					assert.LessOrEqual(t, Compare(c, x, z), 0, "transitivity %q %q %q", x.Value, y.Value, z.Value)
				}
			}
		}
	}
}

func TestSortIsStable(t *testing.T) {
	s := NewStore()
	first := s.New("Same", "k", "Same", nil)
	second := s.New("Other", "k", "Other", nil)
	early := s.New("Alpha", "", "Alpha", nil)

	sorted := s.Sorted([]ID{first, second, early}, collation.Binary)
	assert.Equal(t, []ID{early, first, second}, sorted)
}
