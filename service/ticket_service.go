package services

import (
	"context"
	"fmt"
	"log"
	"sync"

	"eventize/api/eventize"
	"eventize/dispatch"
	"eventize/models"
	"eventize/query"
)

type TicketService struct {
	eventizeApi eventize.EventizeAPI
	queue       *dispatch.MainQueue

	mu      sync.RWMutex
	tickets []models.Ticket

	// Held across check, backend call and commit for one event_uuid.
	validationLocks sync.Map
}

func NewTicketService(eventizeApi eventize.EventizeAPI, queue *dispatch.MainQueue) *TicketService {
	return &TicketService{
		eventizeApi: eventizeApi,
		queue:       queue,
	}
}

// FetchTickets replaces the stored ticket list with the backend's.
func (s *TicketService) FetchTickets(ctx context.Context) ([]models.Ticket, error) {
	tickets, err := s.eventizeApi.GetTickets(ctx)
	if err != nil {
		log.Printf("[TicketService] Error fetching tickets: %v", err)
		return nil, NewEventFetchError(err)
	}

	s.mu.Lock()
	s.tickets = tickets
	s.mu.Unlock()
	return s.Tickets(), nil
}

// Tickets returns a copy of the stored list.
func (s *TicketService) Tickets() []models.Ticket {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Ticket, len(s.tickets))
	copy(out, s.tickets)
	return out
}

// ValidateTicket consumes a valid ticket. Invalid is terminal.
func (s *TicketService) ValidateTicket(ctx context.Context, eventUUID string) (models.Ticket, error) {
	lock := s.validationLock(eventUUID)
	lock.Lock()
	defer lock.Unlock()

	s.mu.RLock()
	ticket, ok := query.FindTicket(s.tickets, eventUUID)
	s.mu.RUnlock()
	if !ok {
		return models.Ticket{}, fmt.Errorf("%w: %s", ErrTicketNotFound, eventUUID)
	}
	if !ticket.IsValid {
		return models.Ticket{}, fmt.Errorf("%w: %s", ErrTicketAlreadyInvalid, eventUUID)
	}

	updated, err := s.eventizeApi.ValidateTicket(ctx, ticket)
	if err != nil {
		log.Printf("[TicketService] Error validating ticket %s: %v", eventUUID, err)
		return models.Ticket{}, NewEventFetchError(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	replaced, ok := query.ReplaceTicket(s.tickets, *updated)
	if !ok {
		log.Printf("[TicketService] Ticket %s disappeared during validation", eventUUID)
		return *updated, nil
	}
	s.tickets = replaced
	log.Printf("[TicketService] Validated ticket %s", eventUUID)
	return *updated, nil
}

func (s *TicketService) validationLock(eventUUID string) *sync.Mutex {
	lock, _ := s.validationLocks.LoadOrStore(eventUUID, &sync.Mutex{})
	return lock.(*sync.Mutex)
}

// FetchTicketsAsync delivers the result on the main queue.
func (s *TicketService) FetchTicketsAsync(ctx context.Context, completion func([]models.Ticket, error)) {
	go func() {
		tickets, err := s.FetchTickets(ctx)
		s.deliver(func() { completion(tickets, err) })
	}()
}

// ValidateTicketAsync delivers the result on the main queue.
func (s *TicketService) ValidateTicketAsync(ctx context.Context, eventUUID string, completion func(models.Ticket, error)) {
	go func() {
		ticket, err := s.ValidateTicket(ctx, eventUUID)
		s.deliver(func() { completion(ticket, err) })
	}()
}

func (s *TicketService) deliver(fn func()) {
	if err := s.queue.Async(fn); err != nil {
		log.Printf("[TicketService] Could not deliver result: %v", err)
	}
}
