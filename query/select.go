package query

import "eventize/models"

// SelectEventAt never panics: out-of-range indexes yield false.
func SelectEventAt(events []models.Event, index int) (models.Event, bool) {
	if index < 0 || index >= len(events) {
		return models.Event{}, false
	}
	return events[index], true
}

// SelectEventByID returns the first event with the identifier.
func SelectEventByID(events []models.Event, id string) (models.Event, bool) {
	for _, e := range events {
		if e.EventUUID == id {
			return e, true
		}
	}
	return models.Event{}, false
}

// SelectEventByCoordinate returns the first event placed exactly at c, the
// way a tapped map pin resolves back to its event.
func SelectEventByCoordinate(events []models.Event, c models.Coordinate) (models.Event, bool) {
	for _, e := range events {
		if ec, ok := e.Content.Coordinate(); ok && ec.Equal(c) {
			return e, true
		}
	}
	return models.Event{}, false
}
