// Package query holds the pure event query engine: filtering, selection,
// favorites membership, ticket replacement and demo coordinate jitter.
package query

import (
	"strings"

	"eventize/models"
)

// FilterEvents narrows events by search term, then by favorites, keeping the
// input order. The result is always a fresh slice.
func FilterEvents(events []models.Event, request models.FilterRequest, favorites models.FavoriteSet) []models.Event {
	term := request.NormalizedSearchTerm()

	out := make([]models.Event, 0, len(events))
	for _, e := range events {
		if term != "" && !matchesSearchTerm(e, term) {
			continue
		}
		if request.FavoritesOnly && !favorites.Contains(e.EventUUID) {
			continue
		}
		out = append(out, e)
	}
	return out
}

// matchesSearchTerm expects term to be lower-cased already.
func matchesSearchTerm(e models.Event, term string) bool {
	c := e.Content
	if containsFold(c.Title, term) {
		return true
	}
	if c.Subtitle != nil && containsFold(*c.Subtitle, term) {
		return true
	}
	if c.Info != nil && containsFold(*c.Info, term) {
		return true
	}
	for _, b := range c.ExtraBottomInfo {
		if containsFold(b.Text, term) {
			return true
		}
	}
	return false
}

func containsFold(s, lowerTerm string) bool {
	return strings.Contains(strings.ToLower(s), lowerTerm)
}

// DuplicateIDs returns identifiers that occur more than once, in order of
// their second occurrence.
func DuplicateIDs(events []models.Event) []string {
	seen := make(map[string]int, len(events))
	var dups []string
	for _, e := range events {
		seen[e.EventUUID]++
		if seen[e.EventUUID] == 2 {
			dups = append(dups, e.EventUUID)
		}
	}
	return dups
}
