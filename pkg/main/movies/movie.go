// Package movies holds the merged per-movie records built from the IMDb
// plain-text lists, keyed by the "Title (Year)" identity, and the compound
// filter applied to them.
package movies

import (
	"sort"
	"strconv"
	"strings"
)

// MovieRecord accumulates the attributes contributed by the list parsers.
// Title and Year come from the genre list only; records first seen in another
// list keep them empty.
type MovieRecord struct {
	Title    string   `json:"title"`
	Year     int      `json:"year"`
	Genres   []string `json:"genres"`
	Keywords []string `json:"keywords"`
	Votes    int      `json:"votes"`
	Rating   float32  `json:"rating"`
	Plot     string   `json:"plot"`
}

// BuildID composes the identity key "<title> (<year>)". No trimming or
// normalisation is applied.
func BuildID(title, year string) string {
	var b strings.Builder
	b.Grow(len(title) + len(year) + 3)
	b.WriteString(title)
	b.WriteString(" (")
	b.WriteString(year)
	b.WriteByte(')')
	return b.String()
}

// SplitName extracts the raw title and year from a line or name that starts
// with "<title> (<year>". The title is everything before the first '(' after
// offset 0 minus the separating space, the year is the (at most) four bytes
// after it. A leading '(' belongs to the title, as in "(500) Days of Summer".
// ok is false when there is no such '('.
func SplitName(name string) (title, year string, ok bool) {
	if name == "" {
		return "", "", false
	}
	pos := strings.IndexByte(name[1:], '(') + 1
	if pos < 1 {
		return "", "", false
	}
	end := min(pos+5, len(name))
	return name[:pos-1], name[pos+1 : end], true
}

// ParseYear converts a year field, 0 when it is not a number.
func ParseYear(year string) int {
	getint, err := strconv.Atoi(year)
	if err != nil {
		return 0
	}
	return getint
}

// Registry maps identity keys to merged records. Records are created lazily
// on first reference and never removed. A Registry is not safe for concurrent
// use; the importer hands it to one parser at a time.
type Registry struct {
	entries map[string]*MovieRecord
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]*MovieRecord)}
}

// Entry returns the record for id, creating an empty one if needed.
func (r *Registry) Entry(id string) *MovieRecord {
	if rec, ok := r.entries[id]; ok {
		return rec
	}
	rec := &MovieRecord{}
	r.entries[id] = rec
	return rec
}

// Get returns the record for id without creating it.
func (r *Registry) Get(id string) (*MovieRecord, bool) {
	rec, ok := r.entries[id]
	return rec, ok
}

// Len returns the number of records.
func (r *Registry) Len() int {
	return len(r.entries)
}

// IDs returns all identity keys in byte order.
func (r *Registry) IDs() []string {
	ids := make([]string, 0, len(r.entries))
	for id := range r.entries {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Range calls fn for every record in unspecified order until fn returns false.
func (r *Registry) Range(fn func(id string, rec *MovieRecord) bool) {
	for id, rec := range r.entries {
		if !fn(id, rec) {
			return
		}
	}
}

func (r *Registry) put(id string, rec *MovieRecord) {
	r.entries[id] = rec
}
