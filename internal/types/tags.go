package types

import (
	"iter"
	"slices"
	"strings"
)

// Tags represents format-agnostic audio metadata.
//
// Tags provides a unified view of metadata across ID3v2 and Vorbis comments.
// Format-specific tags are mapped to standard fields where possible.
//
// Every decoded field is also kept under its format-specific key (an ID3v2.3
// frame ID such as "TIT2", or an upper-cased Vorbis comment name such as
// "TITLE"). Use All() or Get() for those.
type Tags struct {
	raw         map[string][]string
	Title       string
	Artist      string
	Album       string
	AlbumArtist string
	Date        string
	Copyright   string
	Publisher   string
	Encoder     string
	Lyrics      string
	Artists     []string
	Composers   []string
	Genres      []string
	Comments    []string
	TrackNumber int
	TrackTotal  int
	DiscNumber  int
	DiscTotal   int
	Year        int
}

// All returns an iterator over all raw tags.
//
// The iterator yields key-value pairs where values are string slices
// (as tags can have multiple values).
//
//	for key, values := range file.Tags.All() {
//		fmt.Printf("%s: %v\n", key, values)
//	}
//
// The returned iterator is read-only. Do not modify the returned slices.
func (t *Tags) All() iter.Seq2[string, []string] {
	return func(yield func(string, []string) bool) {
		for key, values := range t.raw {
			if !yield(key, values) {
				return
			}
		}
	}
}

// Keys returns the raw tag keys in sorted order.
func (t *Tags) Keys() []string {
	keys := make([]string, 0, len(t.raw))
	for k := range t.raw {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Get retrieves all values for a tag key.
//
// Returns nil if the key doesn't exist.
func (t *Tags) Get(key string) []string {
	return slices.Clone(t.raw[key])
}

// GetFirst retrieves the first value for a tag key, or "" if there is none.
func (t *Tags) GetFirst(key string) string {
	values := t.raw[key]
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

// GetBest tries multiple tag keys and returns the first non-empty value.
//
//	artist := tags.GetBest("ARTIST", "TPE1")
func (t *Tags) GetBest(candidates ...string) string {
	for _, key := range candidates {
		if value := t.GetFirst(key); value != "" {
			return value
		}
	}
	return ""
}

// Set replaces the values stored under key. An empty values list removes the key.
func (t *Tags) Set(key string, values ...string) {
	if len(values) == 0 {
		delete(t.raw, key)
		return
	}
	if t.raw == nil {
		t.raw = make(map[string][]string)
	}
	t.raw[key] = slices.Clone(values)
}

// Add appends a value under key.
func (t *Tags) Add(key, value string) {
	if t.raw == nil {
		t.raw = make(map[string][]string)
	}
	t.raw[key] = append(t.raw[key], value)
}

// Len returns the number of raw tag keys.
func (t *Tags) Len() int {
	return len(t.raw)
}

// Filter returns an iterator over raw tags whose key matches predicate.
func (t *Tags) Filter(predicate func(string) bool) iter.Seq2[string, []string] {
	return func(yield func(string, []string) bool) {
		for key, values := range t.raw {
			if !predicate(key) {
				continue
			}
			if !yield(key, values) {
				return
			}
		}
	}
}

// IsEmpty reports whether no metadata was decoded.
func (t *Tags) IsEmpty() bool {
	return len(t.raw) == 0 && t.Title == "" && t.Artist == "" && t.Album == "" &&
		len(t.Genres) == 0 && len(t.Comments) == 0 && t.TrackNumber == 0
}

// Clone creates a deep copy of the Tags.
func (t *Tags) Clone() *Tags {
	c := *t
	c.Artists = slices.Clone(t.Artists)
	c.Composers = slices.Clone(t.Composers)
	c.Genres = slices.Clone(t.Genres)
	c.Comments = slices.Clone(t.Comments)
	if t.raw != nil {
		c.raw = make(map[string][]string, len(t.raw))
		for k, v := range t.raw {
			c.raw[k] = slices.Clone(v)
		}
	}
	return &c
}

// AppendUnique appends value to list unless an equal value (ignoring case) is
// already present.
func AppendUnique(list []string, value string) []string {
	for _, existing := range list {
		if strings.EqualFold(existing, value) {
			return list
		}
	}
	return append(list, value)
}
