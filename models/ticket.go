package models

import (
	"encoding/json"
	"time"
)

// Ticket is a purchased entry to an event. EventUUID identifies the ticket.
type Ticket struct {
	Date        time.Time `json:"date"`
	IsValid     bool      `json:"is_valid"`
	EventUUID   string    `json:"event_uuid"`
	Quantity    *int      `json:"quantity,omitempty"`
	Title       string    `json:"title"`
	Description *string   `json:"description,omitempty"`
	ImageURL    *string   `json:"image_url,omitempty"`
}

func (t *Ticket) UnmarshalJSON(data []byte) error {
	if err := requireKeys(data, "date", "is_valid", "event_uuid", "title"); err != nil {
		return err
	}
	type alias Ticket
	if err := json.Unmarshal(data, (*alias)(t)); err != nil {
		return err
	}
	if t.Quantity != nil && *t.Quantity < 1 {
		return &DataCorruptedError{Field: "quantity", Reason: "must be positive"}
	}
	return nil
}

// QuantityOrDefault returns the ticket quantity, 1 when the backend omitted it.
func (t Ticket) QuantityOrDefault() int {
	if t.Quantity == nil {
		return 1
	}
	return *t.Quantity
}

// Invalidated returns a copy of the ticket marked as used.
func (t Ticket) Invalidated() Ticket {
	t.IsValid = false
	return t
}
