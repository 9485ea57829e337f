package index

import "github.com/coolbeans/bookindex/pkg/entry"

// Collector folds top-level entries with the same value into one.
type Collector struct {
	store *entry.Store
	byKey map[string]entry.ID
	order []entry.ID
}

// NewCollector creates an empty collector over store.
func NewCollector(store *entry.Store) *Collector {
	return &Collector{store: store, byKey: make(map[string]entry.ID)}
}

// Add records id, merging it into an earlier entry with the same value.
// It returns the entry that now represents the value.
func (c *Collector) Add(id entry.ID) entry.ID {
	value := c.store.Get(id).Value
	if existing, ok := c.byKey[value]; ok {
		return c.store.MergeInto(existing, id)
	}
	c.byKey[value] = id
	c.order = append(c.order, id)
	return id
}

// Entries returns the distinct entries in first-seen order.
func (c *Collector) Entries() []entry.ID {
	return append([]entry.ID(nil), c.order...)
}

// Len returns the number of distinct entries.
func (c *Collector) Len() int {
	return len(c.order)
}
