package eventize

import (
	"context"
	"log"

	"eventize/api"
	"eventize/models"
	"eventize/resources"
)

const mockClientCaller = "EventizeApiClientMock"

// EventizeApiClientMock serves the embedded JSON fixtures through the same
// decode path the live client uses.
type EventizeApiClientMock struct {
	EventsJSON       []byte
	TicketsJSON      []byte
	EventDetailsJSON []byte
}

// NewEventizeApiClientMock creates a new instance of EventizeApiClientMock
func NewEventizeApiClientMock() *EventizeApiClientMock {
	return &EventizeApiClientMock{
		EventsJSON:       resources.EventsJSON,
		TicketsJSON:      resources.TicketsJSON,
		EventDetailsJSON: resources.EventDetailsJSON,
	}
}

func (c *EventizeApiClientMock) GetEvents(ctx context.Context) ([]models.Event, error) {
	return api.DecodeBytes[[]models.Event](c.EventsJSON, mockClientCaller)
}

func (c *EventizeApiClientMock) GetEventDetails(ctx context.Context, eventUUID string) (*models.EventDetails, error) {
	details, err := api.DecodeBytes[models.EventDetails](c.EventDetailsJSON, mockClientCaller)
	if err != nil {
		return nil, err
	}
	return &details, nil
}

func (c *EventizeApiClientMock) GetTickets(ctx context.Context) ([]models.Ticket, error) {
	return api.DecodeBytes[[]models.Ticket](c.TicketsJSON, mockClientCaller)
}

// ValidateTicket marks the ticket as used without a backend round trip.
func (c *EventizeApiClientMock) ValidateTicket(ctx context.Context, ticket models.Ticket) (*models.Ticket, error) {
	log.Printf("[%s] Validating ticket for event_uuid=%s", mockClientCaller, ticket.EventUUID)
	validated := ticket.Invalidated()
	return &validated, nil
}
