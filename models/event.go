package models

import "encoding/json"

// BottomInfo is one "extra info" tag shown under an event.
type BottomInfo struct {
	ImageURL *string `json:"image_url"`
	Text     string  `json:"text"`
}

func (b *BottomInfo) UnmarshalJSON(data []byte) error {
	if err := requireKeys(data, "text"); err != nil {
		return err
	}
	type alias BottomInfo
	return json.Unmarshal(data, (*alias)(b))
}

// EventContent is the display block of an event.
type EventContent struct {
	ImageURL        *string      `json:"image_url"`
	Title           string       `json:"title"`
	Subtitle        *string      `json:"subtitle"`
	Price           *float64     `json:"price"`
	Info            *string      `json:"info"`
	ExtraBottomInfo []BottomInfo `json:"extra_bottom_info"`
	Latitude        *float64     `json:"latitude,omitempty"`
	Longitude       *float64     `json:"longitude,omitempty"`
}

func (c *EventContent) UnmarshalJSON(data []byte) error {
	if err := requireKeys(data, "title"); err != nil {
		return err
	}
	type alias EventContent
	if err := json.Unmarshal(data, (*alias)(c)); err != nil {
		return err
	}
	if c.Title == "" {
		return &DataCorruptedError{Field: "title", Reason: "must not be empty"}
	}
	if c.Price != nil && *c.Price < 0 {
		return &DataCorruptedError{Field: "price", Reason: "must not be negative"}
	}
	return nil
}

// Coordinate returns the event position; it is only present when both
// latitude and longitude are.
func (c EventContent) Coordinate() (Coordinate, bool) {
	if c.Latitude == nil || c.Longitude == nil {
		return Coordinate{}, false
	}
	return Coordinate{Latitude: *c.Latitude, Longitude: *c.Longitude}, true
}

// Event is a discoverable item decoded from the events endpoint.
type Event struct {
	EventUUID string       `json:"event_uuid"`
	Content   EventContent `json:"content"`
}

func (e *Event) UnmarshalJSON(data []byte) error {
	if err := requireKeys(data, "event_uuid", "content"); err != nil {
		return err
	}
	type alias Event
	return json.Unmarshal(data, (*alias)(e))
}

// WithCoordinate returns a copy of the event positioned at c.
func (e Event) WithCoordinate(c Coordinate) Event {
	lat, lon := c.Latitude, c.Longitude
	e.Content.Latitude = &lat
	e.Content.Longitude = &lon
	return e
}

// EventDetails is the payload of the event detail endpoint.
type EventDetails struct {
	Description *string `json:"description"`
}
