package eventize

import (
	"context"

	"eventize/models"
)

// EventizeAPI defines the interface for interacting with the Eventize backend
type EventizeAPI interface {
	GetEvents(ctx context.Context) ([]models.Event, error)
	GetEventDetails(ctx context.Context, eventUUID string) (*models.EventDetails, error)
	GetTickets(ctx context.Context) ([]models.Ticket, error)
	ValidateTicket(ctx context.Context, ticket models.Ticket) (*models.Ticket, error)
}

const (
	EVENTS_PATH                 = "/events"
	EVENT_PATH_FORMAT           = "/events/%s"
	TICKETS_PATH                = "/tickets"
	VALIDATE_TICKET_PATH_FORMAT = "/tickets/validar/%s"
)
