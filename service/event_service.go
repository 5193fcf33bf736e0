package services

import (
	"context"
	"fmt"
	"log"
	"sync"

	"eventize/api/eventize"
	"eventize/dispatch"
	"eventize/location"
	"eventize/models"
	"eventize/query"
)

// FavoritesStore persists the favorite set as a whole value.
type FavoritesStore interface {
	GetFavorites() (models.FavoriteSet, error)
	SetFavorites(set models.FavoriteSet) error
}

// NearbyEventsCache answers geo queries over previously refreshed events.
type NearbyEventsCache interface {
	GetNearbyEvents(lat, lon, radiusKm float64) ([]models.Event, error)
}

// EventWithDetails pairs an event with its detail payload.
type EventWithDetails struct {
	Event   models.Event         `json:"event"`
	Details *models.EventDetails `json:"details"`
}

type EventService struct {
	eventizeApi  eventize.EventizeAPI
	favorites    FavoritesStore
	nearbyCache  NearbyEventsCache
	locations    location.Provider
	queue        *dispatch.MainQueue
	jitterMeters float64

	placementMu sync.Mutex
	rnd         query.RandomSource
	// Synthesized coordinates by event_uuid, reused on every later fetch.
	placements map[string]models.Coordinate

	favoritesMu sync.Mutex

	mu         sync.RWMutex
	events     []models.Event
	selected   *models.Event
	generation uint64
}

// NewEventService wires the service. locations may be nil; a zero
// jitterMeters disables coordinate enrichment.
func NewEventService(
	eventizeApi eventize.EventizeAPI,
	favorites FavoritesStore,
	nearbyCache NearbyEventsCache,
	locations location.Provider,
	queue *dispatch.MainQueue,
	rnd query.RandomSource,
	jitterMeters float64) *EventService {

	return &EventService{
		eventizeApi:  eventizeApi,
		favorites:    favorites,
		nearbyCache:  nearbyCache,
		locations:    locations,
		queue:        queue,
		rnd:          rnd,
		jitterMeters: jitterMeters,
		placements:   make(map[string]models.Coordinate),
	}
}

// FetchEvents reloads the full collection and returns the filtered view of it.
func (s *EventService) FetchEvents(ctx context.Context, request models.FilterRequest) ([]models.Event, error) {
	gen := s.nextGeneration()
	events, err := s.loadEvents(ctx, request)
	if err != nil {
		return nil, err
	}
	if !s.commit(gen, events) {
		log.Printf("[EventService] Events response %d superseded, not storing", gen)
	}
	return s.filter(events, request)
}

// FetchEventsAsync fetches in the background and delivers on the main queue.
// A completion whose request was superseded by a newer fetch is dropped.
func (s *EventService) FetchEventsAsync(ctx context.Context, request models.FilterRequest, completion func([]models.Event, error)) {
	gen := s.nextGeneration()
	go func() {
		events, err := s.loadEvents(ctx, request)
		if qerr := s.queue.Async(func() {
			if err != nil {
				if s.isStale(gen) {
					log.Printf("[EventService] Dropping stale events failure %d: %v", gen, err)
					return
				}
				completion(nil, err)
				return
			}
			if !s.commit(gen, events) {
				log.Printf("[EventService] Dropping stale events response %d", gen)
				return
			}
			filtered, ferr := s.filter(events, request)
			completion(filtered, ferr)
		}); qerr != nil {
			log.Printf("[EventService] Could not deliver events response: %v", qerr)
		}
	}()
}

// FilterEvents filters the stored collection with the current favorites.
func (s *EventService) FilterEvents(request models.FilterRequest) ([]models.Event, error) {
	return s.filter(s.snapshot(), request)
}

// GetEventsNearby reads the refreshed geo cache.
func (s *EventService) GetEventsNearby(lat, lon, radiusKm float64) ([]models.Event, error) {
	return s.nearbyCache.GetNearbyEvents(lat, lon, radiusKm)
}

// SelectEventAt selects the event at index in the filtered view for request.
func (s *EventService) SelectEventAt(request models.FilterRequest, index int) (models.Event, bool, error) {
	filtered, err := s.FilterEvents(request)
	if err != nil {
		return models.Event{}, false, err
	}
	e, ok := query.SelectEventAt(filtered, index)
	s.setSelected(e, ok)
	return e, ok, nil
}

func (s *EventService) SelectEvent(eventUUID string) (models.Event, bool) {
	e, ok := query.SelectEventByID(s.snapshot(), eventUUID)
	s.setSelected(e, ok)
	return e, ok
}

func (s *EventService) SelectEventByCoordinate(c models.Coordinate) (models.Event, bool) {
	e, ok := query.SelectEventByCoordinate(s.snapshot(), c)
	s.setSelected(e, ok)
	return e, ok
}

func (s *EventService) Selected() (models.Event, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.selected == nil {
		return models.Event{}, false
	}
	return *s.selected, true
}

// EventWithDetails looks the event up in the stored collection and fetches its details.
func (s *EventService) EventWithDetails(ctx context.Context, eventUUID string) (*EventWithDetails, error) {
	e, ok := query.SelectEventByID(s.snapshot(), eventUUID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrEventNotFound, eventUUID)
	}
	details, err := s.eventizeApi.GetEventDetails(ctx, eventUUID)
	if err != nil {
		log.Printf("[EventService] Error fetching details for %s: %v", eventUUID, err)
		return nil, NewEventFetchError(err)
	}
	return &EventWithDetails{Event: e, Details: details}, nil
}

func (s *EventService) Favorites() (models.FavoriteSet, error) {
	return s.favorites.GetFavorites()
}

func (s *EventService) IsFavorite(eventUUID string) (bool, error) {
	set, err := s.favorites.GetFavorites()
	if err != nil {
		return false, err
	}
	return query.IsFavorite(eventUUID, set), nil
}

func (s *EventService) AddFavorite(eventUUID string) (models.FavoriteSet, error) {
	return s.updateFavorites(func(set models.FavoriteSet) models.FavoriteSet {
		return query.AddFavorite(eventUUID, set)
	})
}

func (s *EventService) RemoveFavorite(eventUUID string) (models.FavoriteSet, error) {
	return s.updateFavorites(func(set models.FavoriteSet) models.FavoriteSet {
		return query.RemoveFavorite(eventUUID, set)
	})
}

func (s *EventService) ToggleFavorite(eventUUID string) (models.FavoriteSet, error) {
	return s.updateFavorites(func(set models.FavoriteSet) models.FavoriteSet {
		return query.ToggleFavorite(eventUUID, set)
	})
}

func (s *EventService) updateFavorites(update func(models.FavoriteSet) models.FavoriteSet) (models.FavoriteSet, error) {
	s.favoritesMu.Lock()
	defer s.favoritesMu.Unlock()

	current, err := s.favorites.GetFavorites()
	if err != nil {
		return models.FavoriteSet{}, err
	}
	next := update(current)
	if next.Equal(current) {
		return current, nil
	}
	if err := s.favorites.SetFavorites(next); err != nil {
		return models.FavoriteSet{}, err
	}
	return next, nil
}

func (s *EventService) loadEvents(ctx context.Context, request models.FilterRequest) ([]models.Event, error) {
	events, err := s.eventizeApi.GetEvents(ctx)
	if err != nil {
		log.Printf("[EventService] Error fetching events: %v", err)
		return nil, NewEventFetchError(err)
	}
	if dups := query.DuplicateIDs(events); len(dups) > 0 {
		log.Printf("[EventService] Duplicate event ids, first occurrence wins: %v", dups)
	}
	if s.jitterMeters <= 0 || s.rnd == nil {
		return events, nil
	}

	reference := request.Reference
	if reference == nil && s.locations != nil {
		if c, ok := s.locations.CurrentCoordinate(); ok {
			reference = &c
		}
	}
	return s.placeEvents(events, reference), nil
}

// placeEvents synthesizes a coordinate once per unplaced event and reuses it
// afterwards, so pins stay put across fetches.
func (s *EventService) placeEvents(events []models.Event, reference *models.Coordinate) []models.Event {
	s.placementMu.Lock()
	defer s.placementMu.Unlock()

	reused := make([]models.Event, len(events))
	for i, e := range events {
		reused[i] = e
		if _, ok := e.Content.Coordinate(); ok {
			continue
		}
		if c, ok := s.placements[e.EventUUID]; ok {
			reused[i] = e.WithCoordinate(c)
		}
	}

	placed := query.EnrichCoordinates(reused, reference, s.jitterMeters, s.rnd)
	for i, e := range placed {
		if _, had := reused[i].Content.Coordinate(); had {
			continue
		}
		if _, seen := s.placements[e.EventUUID]; seen {
			continue
		}
		if c, ok := e.Content.Coordinate(); ok {
			s.placements[e.EventUUID] = c
		}
	}
	return placed
}

func (s *EventService) filter(events []models.Event, request models.FilterRequest) ([]models.Event, error) {
	favorites, err := s.favorites.GetFavorites()
	if err != nil {
		log.Printf("[EventService] Error reading favorites: %v", err)
		return nil, err
	}
	return query.FilterEvents(events, request, favorites), nil
}

func (s *EventService) nextGeneration() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation++
	return s.generation
}

func (s *EventService) isStale(gen uint64) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return gen != s.generation
}

// commit stores events only if gen is still the newest request.
func (s *EventService) commit(gen uint64, events []models.Event) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.generation {
		return false
	}
	s.events = events
	return true
}

func (s *EventService) snapshot() []models.Event {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.events
}

func (s *EventService) setSelected(e models.Event, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !ok {
		s.selected = nil
		return
	}
	s.selected = &e
}
