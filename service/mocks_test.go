package services

import (
	"context"
	"errors"

	"eventize/models"

	"github.com/stretchr/testify/mock"
)

// MockEventizeAPI is a mock of eventize.EventizeAPI
type MockEventizeAPI struct {
	mock.Mock
}

func (m *MockEventizeAPI) GetEvents(ctx context.Context) ([]models.Event, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Event), args.Error(1)
}

func (m *MockEventizeAPI) GetEventDetails(ctx context.Context, eventUUID string) (*models.EventDetails, error) {
	args := m.Called(ctx, eventUUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.EventDetails), args.Error(1)
}

func (m *MockEventizeAPI) GetTickets(ctx context.Context) ([]models.Ticket, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Ticket), args.Error(1)
}

func (m *MockEventizeAPI) ValidateTicket(ctx context.Context, ticket models.Ticket) (*models.Ticket, error) {
	args := m.Called(ctx, ticket)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Ticket), args.Error(1)
}

// memoryFavorites is an in-process FavoritesStore.
type memoryFavorites struct {
	set    models.FavoriteSet
	err    error
	writes int
}

func (m *memoryFavorites) GetFavorites() (models.FavoriteSet, error) {
	if m.err != nil {
		return models.FavoriteSet{}, m.err
	}
	return m.set, nil
}

func (m *memoryFavorites) SetFavorites(set models.FavoriteSet) error {
	if m.err != nil {
		return m.err
	}
	m.writes++
	m.set = set
	return nil
}

var errStore = errors.New("store unavailable")

func strPtr(s string) *string { return &s }

func event(id, title string) models.Event {
	return models.Event{EventUUID: id, Content: models.EventContent{Title: title}}
}

func eventIDs(events []models.Event) []string {
	ids := make([]string, 0, len(events))
	for _, e := range events {
		ids = append(ids, e.EventUUID)
	}
	return ids
}
