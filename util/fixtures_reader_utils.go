package util

import (
	"fmt"
	"os"

	"eventize/api"
	"eventize/api/eventize"
	"eventize/config"
	"eventize/models"
)

const fixturesCaller = "FixturesReader"

// NewEventizeApiClientMockFromResources builds the fixture client from the
// resources directory on disk instead of the embedded copies. Every file is
// validated up front.
func NewEventizeApiClientMockFromResources() (*eventize.EventizeApiClientMock, error) {
	_, events, err := readFixture[[]models.Event](config.GetResourcePath(config.EVENTS_RESOURCE))
	if err != nil {
		return nil, err
	}
	_, tickets, err := readFixture[[]models.Ticket](config.GetResourcePath(config.TICKETS_RESOURCE))
	if err != nil {
		return nil, err
	}
	_, details, err := readFixture[models.EventDetails](config.GetResourcePath(config.EVENT_DETAILS_RESOURCE))
	if err != nil {
		return nil, err
	}

	return &eventize.EventizeApiClientMock{
		EventsJSON:       events,
		TicketsJSON:      tickets,
		EventDetailsJSON: details,
	}, nil
}

// readFixture decodes filePath as T and also returns its raw bytes.
func readFixture[T any](filePath string) (T, []byte, error) {
	var zero T
	data, err := readFile(filePath)
	if err != nil {
		return zero, nil, err
	}
	decoded, err := api.DecodeBytes[T](data, fixturesCaller)
	if err != nil {
		return zero, nil, fmt.Errorf("invalid fixture %q: %w", filePath, err)
	}
	return decoded, data, nil
}

func readFile(filePath string) ([]byte, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %q: %w", filePath, err)
	}
	return data, nil
}
