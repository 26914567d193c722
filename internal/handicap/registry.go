package handicap

import (
	"fmt"
	"os"
	"sort"

	"github.com/pelletier/go-toml/v2"
)

// Registry holds the tees a match can be played from, keyed by Tee.Key.
type Registry struct {
	tees map[string]Tee
}

// NewRegistry builds a registry from the given tees. Every tee is validated and
// keys must be unique.
func NewRegistry(tees ...Tee) (*Registry, error) {
	r := &Registry{tees: make(map[string]Tee, len(tees))}
	for _, t := range tees {
		if err := t.Validate(); err != nil {
			return nil, err
		}
		if _, dup := r.tees[t.Key]; dup {
			return nil, fmt.Errorf("%w: duplicate tee key %q", ErrInvalidTee, t.Key)
		}
		r.tees[t.Key] = t
	}
	return r, nil
}

// DefaultRegistry returns the two built-in tees.
func DefaultRegistry() *Registry {
	r, err := NewRegistry(Yellow(), Red())
	if err != nil {
		// The built-in tables are static data; failing here is a programming error.
		panic(err)
	}
	return r
}

// Tee looks up a tee by key.
func (r *Registry) Tee(key string) (Tee, bool) {
	t, ok := r.tees[key]
	return t, ok
}

// Keys returns the registered tee keys in sorted order.
func (r *Registry) Keys() []string {
	keys := make([]string, 0, len(r.tees))
	for k := range r.tees {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// teeFile is the on-disk shape of a tee tables file:
//
//	[[tees]]
//	key = "yellow"
//	course_rating = 71.4
//	slope = 131
//	par = 72
//	bands = [{ from = -3.6, to = -3.4, course_handicap = -5 }, ...]
type teeFile struct {
	Tees []Tee `toml:"tees"`
}

// LoadTees reads tee tables from a TOML file. Tees in the file replace built-in
// tees with the same key; the other built-in tees stay available.
func LoadTees(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading tee tables %s: %w", path, err)
	}

	var file teeFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing tee tables %s: %w", path, err)
	}

	merged := map[string]Tee{}
	for _, t := range []Tee{Yellow(), Red()} {
		merged[t.Key] = t
	}
	seen := map[string]bool{}
	for _, t := range file.Tees {
		if seen[t.Key] {
			return nil, fmt.Errorf("%w: duplicate tee key %q in %s", ErrInvalidTee, t.Key, path)
		}
		seen[t.Key] = true
		merged[t.Key] = t
	}

	tees := make([]Tee, 0, len(merged))
	for _, t := range merged {
		tees = append(tees, t)
	}
	return NewRegistry(tees...)
}
