package catalog

import (
	"errors"
	"fmt"
	"slices"
)

// ErrEmptyCatalog is returned when a catalog is constructed with no words.
var ErrEmptyCatalog = errors.New("catalog: no words")

// Catalog is the loaded word set plus the active format catalog, with
// precomputed lookup indices. It is immutable after construction.
type Catalog struct {
	words      []Word
	byID       map[string]*Word
	formats    []Format
	formatByID map[string]*Format
}

// New builds a catalog over the given words and the active formats.
func New(words []Word) (*Catalog, error) {
	return NewWithFormats(words, ActiveFormats())
}

// NewWithFormats builds a catalog with an explicit format list.
// Deprecated format IDs are filtered out of scheduling.
func NewWithFormats(words []Word, formats []Format) (*Catalog, error) {
	if len(words) == 0 {
		return nil, ErrEmptyCatalog
	}
	if err := validateWords(words); err != nil {
		return nil, err
	}

	c := &Catalog{
		words:      slices.Clone(words),
		byID:       make(map[string]*Word, len(words)),
		formatByID: make(map[string]*Format),
	}
	for i := range c.words {
		c.byID[c.words[i].ID] = &c.words[i]
	}
	for _, f := range formats {
		if IsDeprecatedFormat(f.ID) {
			continue
		}
		c.formats = append(c.formats, f)
	}
	for i := range c.formats {
		c.formatByID[c.formats[i].ID] = &c.formats[i]
	}
	return c, nil
}

// Word returns a word by ID, or an error if not found.
func (c *Catalog) Word(id string) (Word, error) {
	w, ok := c.byID[id]
	if !ok {
		return Word{}, fmt.Errorf("word not found: %q", id)
	}
	return *w, nil
}

// Format returns an active format by ID, or an error if not found.
func (c *Catalog) Format(id string) (Format, error) {
	f, ok := c.formatByID[id]
	if !ok {
		return Format{}, fmt.Errorf("format not found: %q", id)
	}
	return *f, nil
}

// Words returns all words in catalog order.
func (c *Catalog) Words() []Word {
	return slices.Clone(c.words)
}

// Formats returns the active formats in catalog order.
func (c *Catalog) Formats() []Format {
	return slices.Clone(c.formats)
}

// Len returns the number of words in the catalog.
func (c *Catalog) Len() int {
	return len(c.words)
}

// SupportedPairs enumerates every (word, format) pair the catalog can
// schedule: active formats only, and the word must satisfy the format's
// requirement set. Order is word-major, matching catalog order.
func (c *Catalog) SupportedPairs() []Pair {
	var pairs []Pair
	for _, w := range c.words {
		for _, f := range c.formats {
			if w.Supports(f) {
				pairs = append(pairs, Pair{WordID: w.ID, FormatID: f.ID})
			}
		}
	}
	return pairs
}

// SupportsPair reports whether the pair is currently schedulable.
func (c *Catalog) SupportsPair(p Pair) bool {
	w, ok := c.byID[p.WordID]
	if !ok {
		return false
	}
	f, ok := c.formatByID[p.FormatID]
	if !ok {
		return false
	}
	return w.Supports(*f)
}
