package selection

import (
	"sort"

	json "github.com/goccy/go-json"

	"github.com/littlemaker/configurador/internal/catalog"
)

// Set is an unordered set of catalog item ids.
type Set map[string]struct{}

// Of builds a set from ids.
func Of(ids ...string) Set {
	s := make(Set, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

func (s Set) Has(id string) bool {
	_, ok := s[id]
	return ok
}

func (s Set) Add(id string)    { s[id] = struct{}{} }
func (s Set) Remove(id string) { delete(s, id) }
func (s Set) Len() int         { return len(s) }

// Clone returns an independent copy; a nil set clones to an empty one.
func (s Set) Clone() Set {
	out := make(Set, len(s))
	for id := range s {
		out[id] = struct{}{}
	}
	return out
}

// IDs returns the ids in lexical order.
func (s Set) IDs() []string {
	ids := make([]string, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Equal reports whether both sets hold the same ids.
func (s Set) Equal(o Set) bool {
	if len(s) != len(o) {
		return false
	}
	for id := range s {
		if !o.Has(id) {
			return false
		}
	}
	return true
}

// Items resolves the selected ids against c, skipping unknown ids.
func (s Set) Items(c catalog.Catalog) []catalog.Item {
	var out []catalog.Item
	for _, id := range s.IDs() {
		if it, ok := c.Item(id); ok {
			out = append(out, it)
		}
	}
	return out
}

func (s Set) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.IDs())
}

func (s *Set) UnmarshalJSON(b []byte) error {
	var ids []string
	if err := json.Unmarshal(b, &ids); err != nil {
		return err
	}
	*s = Of(ids...)
	return nil
}

// Normalize drops ids that are not in the catalog.
func Normalize(s Set, c catalog.Catalog) Set {
	out := make(Set, len(s))
	for id := range s {
		if c.Has(id) {
			out.Add(id)
		}
	}
	return out
}
