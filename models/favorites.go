package models

import (
	"encoding/json"
	"sort"
)

// FavoriteSet is an immutable set of favorite event identifiers.
// The zero value is an empty set.
type FavoriteSet struct {
	ids map[string]struct{}
}

func NewFavoriteSet(ids ...string) FavoriteSet {
	m := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		m[id] = struct{}{}
	}
	return FavoriteSet{ids: m}
}

func (s FavoriteSet) Contains(id string) bool {
	_, ok := s.ids[id]
	return ok
}

func (s FavoriteSet) Len() int {
	return len(s.ids)
}

// With returns a set that also contains id.
func (s FavoriteSet) With(id string) FavoriteSet {
	out := s.clone()
	out.ids[id] = struct{}{}
	return out
}

// Without returns a set that does not contain id.
func (s FavoriteSet) Without(id string) FavoriteSet {
	out := s.clone()
	delete(out.ids, id)
	return out
}

// Toggle adds id when absent and removes it when present.
func (s FavoriteSet) Toggle(id string) FavoriteSet {
	if s.Contains(id) {
		return s.Without(id)
	}
	return s.With(id)
}

// IDs returns the members in lexical order.
func (s FavoriteSet) IDs() []string {
	ids := make([]string, 0, len(s.ids))
	for id := range s.ids {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (s FavoriteSet) Equal(other FavoriteSet) bool {
	if s.Len() != other.Len() {
		return false
	}
	for id := range s.ids {
		if !other.Contains(id) {
			return false
		}
	}
	return true
}

func (s FavoriteSet) clone() FavoriteSet {
	m := make(map[string]struct{}, len(s.ids)+1)
	for id := range s.ids {
		m[id] = struct{}{}
	}
	return FavoriteSet{ids: m}
}

type favoriteSetJSON struct {
	FavoriteEventsUUIDs []string `json:"favorite_events_uuids"`
}

func (s FavoriteSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(favoriteSetJSON{FavoriteEventsUUIDs: s.IDs()})
}

func (s *FavoriteSet) UnmarshalJSON(data []byte) error {
	var aux favoriteSetJSON
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*s = NewFavoriteSet(aux.FavoriteEventsUUIDs...)
	return nil
}
