package redis

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	"eventize/db"
	"eventize/models"
)

const EVENTS_GEO_KEY_V1 = "events_geo_v1"
const EVENTS_GEO_MEMBER_FORMAT_V1 = "events_geo_member_v1:%s"

// ErrEventWithoutCoordinate is returned when upserting an event that cannot be placed on the geo index.
var ErrEventWithoutCoordinate = errors.New("event has no coordinate")

// RedisEventDAO caches events in a Redis geo index.
type RedisEventDAO struct {
	client db.RedisClient
}

func NewRedisEventDAO(client db.RedisClient) *RedisEventDAO {
	return &RedisEventDAO{client: client}
}

// UpsertEvent stores the event as a geolocation with the event's JSON data.
func (dao *RedisEventDAO) UpsertEvent(e models.Event) error {
	c, ok := e.Content.Coordinate()
	if !ok {
		return fmt.Errorf("%w: %s", ErrEventWithoutCoordinate, e.EventUUID)
	}
	ctx := dao.client.GetContext()
	memberKey := fmt.Sprintf(EVENTS_GEO_MEMBER_FORMAT_V1, e.EventUUID)
	return dao.client.AddLocationWithJSON(ctx, EVENTS_GEO_KEY_V1, memberKey, c.Latitude, c.Longitude, e)
}

// GetNearbyEvents returns cached events within radiusKm, nearest first.
func (dao *RedisEventDAO) GetNearbyEvents(lat, lon, radiusKm float64) ([]models.Event, error) {
	eventsJSON, err := dao.client.GetLocationsWithinRadius(EVENTS_GEO_KEY_V1, lat, lon, radiusKm)
	if err != nil {
		return nil, fmt.Errorf("[RedisEventDAO] failed to get events: %w", err)
	}

	events := make([]models.Event, 0, len(eventsJSON))
	for _, raw := range eventsJSON {
		var e models.Event
		if err := json.Unmarshal([]byte(raw), &e); err != nil {
			log.Printf("[RedisEventDAO] Skipping malformed cached event: %v", err)
			continue
		}
		events = append(events, e)
	}
	return events, nil
}

// ListCachedEventIDs returns the ids of every event stored in the geo index.
func (dao *RedisEventDAO) ListCachedEventIDs() ([]string, error) {
	keys, err := dao.client.Keys(fmt.Sprintf(EVENTS_GEO_MEMBER_FORMAT_V1, "*"))
	if err != nil {
		return nil, fmt.Errorf("failed to list event geo keys: %w", err)
	}
	prefix := fmt.Sprintf(EVENTS_GEO_MEMBER_FORMAT_V1, "")
	ids := make([]string, 0, len(keys))
	for _, k := range keys {
		ids = append(ids, strings.TrimPrefix(k, prefix))
	}
	return ids, nil
}

func (dao *RedisEventDAO) DeleteEvent(eventUUID string) error {
	key := fmt.Sprintf(EVENTS_GEO_MEMBER_FORMAT_V1, eventUUID)
	if err := dao.client.Del(key); err != nil {
		return fmt.Errorf("failed to delete event key %s: %w", key, err)
	}
	if err := dao.client.DelGeoMember(EVENTS_GEO_KEY_V1, key); err != nil {
		return fmt.Errorf("failed to remove %s from %s: %w", key, EVENTS_GEO_KEY_V1, err)
	}
	return nil
}
