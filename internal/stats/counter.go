package stats

import (
	"sort"

	"passat/internal/model"
)

// Counter is a frequency table from key to occurrence count.
// Counts only ever grow.
type Counter map[string]int

// NewCounter returns an empty Counter.
func NewCounter() Counter {
	return make(Counter)
}

// Inc increments the count for key by one.
func (c Counter) Inc(key string) {
	c[key]++
}

// Add increments the count for key by n.
func (c Counter) Add(key string, n int) {
	c[key] += n
}

// Merge folds every count of other into c.
func (c Counter) Merge(other Counter) {
	for k, n := range other {
		c[k] += n
	}
}

// Get returns the count for key, zero when absent.
func (c Counter) Get(key string) int {
	return c[key]
}

// Total returns the sum of all counts.
func (c Counter) Total() int {
	total := 0
	for _, n := range c {
		total += n
	}
	return total
}

// MostCommon returns the n highest-count entries in descending count order.
// Ties break by ascending key so snapshots are deterministic. n <= 0 returns
// all entries.
func (c Counter) MostCommon(n int) []model.CounterEntry {
	entries := c.Entries()
	if n > 0 && len(entries) > n {
		entries = entries[:n]
	}
	return entries
}

// Entries returns all entries sorted by descending count, ties by key.
func (c Counter) Entries() []model.CounterEntry {
	entries := make([]model.CounterEntry, 0, len(c))
	for k, v := range c {
		entries = append(entries, model.CounterEntry{Key: k, Count: v})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			return entries[i].Count > entries[j].Count
		}
		return entries[i].Key < entries[j].Key
	})
	return entries
}
