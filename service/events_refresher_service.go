package services

import (
	"context"
	"log"
	"time"

	"eventize/api/eventize"
	"eventize/config"
	"eventize/models"
)

// EventsGeoCache is the geo index the refresher writes to.
type EventsGeoCache interface {
	UpsertEvent(e models.Event) error
	ListCachedEventIDs() ([]string, error)
	DeleteEvent(eventUUID string) error
}

// EventsRefresherService periodically copies placed events into the geo cache.
type EventsRefresherService struct {
	eventsCache EventsGeoCache
	eventizeApi eventize.EventizeAPI
	maxRetries  int
	retryWait   time.Duration
}

func NewEventsRefresherService(eventsCache EventsGeoCache, eventizeApi eventize.EventizeAPI) *EventsRefresherService {
	return &EventsRefresherService{
		eventsCache: eventsCache,
		eventizeApi: eventizeApi,
		maxRetries:  config.EVENTS_REFRESH_MAX_RETRIES,
		retryWait:   time.Duration(config.EVENTS_REFRESH_RETRY_WAIT_SECONDS) * time.Second,
	}
}

// StartPeriodicJob launches the background loop at the given interval until ctx is done.
func (er *EventsRefresherService) StartPeriodicJob(ctx context.Context, interval time.Duration) {
	go er.startPeriodicJob(ctx, interval)
}

func (er *EventsRefresherService) startPeriodicJob(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("[EventsRefresherService] Stopping periodic job.")
			return
		case <-ticker.C:
			log.Println("[EventsRefresherService] Running periodic events refresher job.")
			if _, err := er.RefreshEventsData(ctx); err != nil {
				log.Printf("[EventsRefresherService] RefreshEventsData returned error: %v", err)
			} else {
				log.Println("[EventsRefresherService] RefreshEventsData completed successfully.")
			}
		}
	}
}

// RefreshEventsData fetches events, upserts those with a coordinate and
// prunes cached events that were not placed in this run. It reports the number
// of events upserted.
func (er *EventsRefresherService) RefreshEventsData(ctx context.Context) (int, error) {
	events, err := er.fetchWithRetries(ctx)
	if err != nil {
		return 0, err
	}

	seen := make(map[string]struct{}, len(events))
	placed := make(map[string]struct{}, len(events))
	upserted := 0
	for _, e := range events {
		if _, dup := seen[e.EventUUID]; dup {
			log.Printf("[EventsRefresherService] Skipping duplicate event ID=%s", e.EventUUID)
			continue
		}
		seen[e.EventUUID] = struct{}{}

		if _, ok := e.Content.Coordinate(); !ok {
			continue
		}
		if err := er.eventsCache.UpsertEvent(e); err != nil {
			log.Printf("[EventsRefresherService] Upsert failed for %s: %v", e.EventUUID, err)
			continue
		}
		placed[e.EventUUID] = struct{}{}
		upserted++
	}
	log.Printf("[EventsRefresherService] Upserted %d of %d events", upserted, len(events))

	er.pruneStale(placed)
	return upserted, nil
}

func (er *EventsRefresherService) fetchWithRetries(ctx context.Context) ([]models.Event, error) {
	var lastErr error
	for attempt := 1; attempt <= er.maxRetries; attempt++ {
		events, err := er.eventizeApi.GetEvents(ctx)
		if err == nil {
			return events, nil
		}
		lastErr = NewEventFetchError(err)
		log.Printf("[EventsRefresherService] Fetch failed (attempt %d/%d): %v", attempt, er.maxRetries, err)
		if attempt == er.maxRetries {
			break
		}

		wait := er.retryWait * time.Duration(attempt)
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(wait):
		}
	}
	return nil, lastErr
}

func (er *EventsRefresherService) pruneStale(current map[string]struct{}) {
	ids, err := er.eventsCache.ListCachedEventIDs()
	if err != nil {
		log.Printf("[EventsRefresherService] Could not list cached events: %v", err)
		return
	}
	for _, id := range ids {
		if _, ok := current[id]; ok {
			continue
		}
		if err := er.eventsCache.DeleteEvent(id); err != nil {
			log.Printf("[EventsRefresherService] Failed to delete stale event %s: %v", id, err)
			continue
		}
		log.Printf("[EventsRefresherService] Removed stale event %s", id)
	}
}
