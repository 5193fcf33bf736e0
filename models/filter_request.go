package models

import "strings"

// FilterRequest describes how the full event collection is narrowed down.
// Build it with NewFilterRequest; it is never modified afterwards.
type FilterRequest struct {
	Reference     *Coordinate
	SearchTerm    string
	FavoritesOnly bool
}

type FilterOption func(*FilterRequest)

func WithReference(c Coordinate) FilterOption {
	return func(r *FilterRequest) { r.Reference = &c }
}

func WithSearchTerm(term string) FilterOption {
	return func(r *FilterRequest) { r.SearchTerm = term }
}

func WithFavoritesOnly(on bool) FilterOption {
	return func(r *FilterRequest) { r.FavoritesOnly = on }
}

func NewFilterRequest(opts ...FilterOption) FilterRequest {
	var r FilterRequest
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// NormalizedSearchTerm returns the trimmed, lower-cased term; "" means no search.
func (r FilterRequest) NormalizedSearchTerm() string {
	return strings.ToLower(strings.TrimSpace(r.SearchTerm))
}
