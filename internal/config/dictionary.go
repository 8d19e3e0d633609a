package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrDictionaryNotFound is returned when the category dictionary file does
// not exist. Callers decide whether that is fatal: a missing default
// dictionary just disables fuzzy categorization, a missing user-specified
// one is an error.
var ErrDictionaryNotFound = errors.New("category dictionary not found")

// Dictionary is the category dictionary: a mapping from category name to
// base words, plus the inverted word-to-categories index. A word may belong
// to multiple categories.
//
// A Dictionary is loaded once at startup and immutable thereafter, so it is
// safe for concurrent readers.
type Dictionary struct {
	categories map[string][]string
	words      []string
	index      map[string][]string
}

// LoadDictionary reads a category dictionary from a YAML (.yaml/.yml) or
// JSON (.json) file. The document maps category names to sequences of base
// words:
//
//	names: [maria, david, laura]
//	seasons: [summer, winter]
//
// The classic categories.json format is accepted unchanged via the .json
// extension.
func LoadDictionary(path string) (*Dictionary, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided dictionary path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrDictionaryNotFound, path)
		}
		return nil, err
	}

	var categories map[string][]string
	if strings.EqualFold(filepath.Ext(path), ".json") {
		err = json.Unmarshal(data, &categories)
	} else {
		err = yaml.Unmarshal(data, &categories)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse dictionary %s: %w", path, err)
	}

	return NewDictionary(categories), nil
}

// NewDictionary builds a Dictionary from an in-memory category mapping.
// The mapping is copied; later mutation of the argument does not affect the
// returned Dictionary.
func NewDictionary(categories map[string][]string) *Dictionary {
	d := &Dictionary{
		categories: make(map[string][]string, len(categories)),
		index:      make(map[string][]string),
	}

	for cat, words := range categories {
		d.categories[cat] = append([]string(nil), words...)
		for _, w := range words {
			if !contains(d.index[w], cat) {
				d.index[w] = append(d.index[w], cat)
			}
		}
	}

	d.words = make([]string, 0, len(d.index))
	for w := range d.index {
		d.words = append(d.words, w)
	}
	sort.Strings(d.words)
	for _, cats := range d.index {
		sort.Strings(cats)
	}
	return d
}

// Words returns the deduplicated base-word set in sorted order.
// The returned slice is shared and must not be modified.
func (d *Dictionary) Words() []string {
	return d.words
}

// Categories returns the sorted category names a base word belongs to,
// or nil for unknown words.
func (d *Dictionary) Categories(word string) []string {
	return d.index[word]
}

// Index returns the full inverted word-to-categories index.
// The returned map is shared and must not be modified.
func (d *Dictionary) Index() map[string][]string {
	return d.index
}

// CategoryNames returns all category names in sorted order.
func (d *Dictionary) CategoryNames() []string {
	names := make([]string, 0, len(d.categories))
	for c := range d.categories {
		names = append(names, c)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of distinct base words.
func (d *Dictionary) Len() int {
	return len(d.words)
}

func contains(s []string, v string) bool {
	for _, e := range s {
		if e == v {
			return true
		}
	}
	return false
}
