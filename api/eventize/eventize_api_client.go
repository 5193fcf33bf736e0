package eventize

import (
	"context"
	"fmt"

	"eventize/api"
	"eventize/models"
)

const apiClientCaller = "EventizeApiClient"

// EventizeApiClient talks to the live backend through the shared HTTPClient.
type EventizeApiClient struct {
	*api.HTTPClient
}

// NewEventizeApiClient creates a new instance of EventizeApiClient
func NewEventizeApiClient(httpClient *api.HTTPClient) *EventizeApiClient {
	return &EventizeApiClient{
		HTTPClient: httpClient,
	}
}

// GetEvents retrieves the full event collection.
func (c *EventizeApiClient) GetEvents(ctx context.Context) ([]models.Event, error) {
	u, err := c.Endpoint(EVENTS_PATH, nil)
	if err != nil {
		return nil, err
	}
	return api.FetchDecoded[[]models.Event](ctx, c.HTTPClient, u, apiClientCaller)
}

// GetEventDetails retrieves the detail block of a single event.
func (c *EventizeApiClient) GetEventDetails(ctx context.Context, eventUUID string) (*models.EventDetails, error) {
	u, err := c.Endpoint(fmt.Sprintf(EVENT_PATH_FORMAT, eventUUID), nil)
	if err != nil {
		return nil, err
	}
	details, err := api.FetchDecoded[models.EventDetails](ctx, c.HTTPClient, u, apiClientCaller)
	if err != nil {
		return nil, err
	}
	return &details, nil
}

// GetTickets retrieves the user's tickets.
func (c *EventizeApiClient) GetTickets(ctx context.Context) ([]models.Ticket, error) {
	u, err := c.Endpoint(TICKETS_PATH, nil)
	if err != nil {
		return nil, err
	}
	return api.FetchDecoded[[]models.Ticket](ctx, c.HTTPClient, u, apiClientCaller)
}

// ValidateTicket checks the ticket in and returns the backend's updated copy.
func (c *EventizeApiClient) ValidateTicket(ctx context.Context, ticket models.Ticket) (*models.Ticket, error) {
	u, err := c.Endpoint(fmt.Sprintf(VALIDATE_TICKET_PATH_FORMAT, ticket.EventUUID), nil)
	if err != nil {
		return nil, err
	}
	validated, err := api.FetchDecoded[models.Ticket](ctx, c.HTTPClient, u, apiClientCaller)
	if err != nil {
		return nil, err
	}
	return &validated, nil
}
