package handlers

import (
	"net/http"

	services "eventize/service"

	"github.com/gorilla/mux"
)

type TicketHandler struct {
	ticketService *services.TicketService
}

func NewTicketHandler(ticketService *services.TicketService) *TicketHandler {
	return &TicketHandler{ticketService: ticketService}
}

// ListTickets handles GET /v1/tickets
func (h *TicketHandler) ListTickets(w http.ResponseWriter, r *http.Request) {
	tickets, err := h.ticketService.FetchTickets(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tickets)
}

// ValidateTicket handles POST /v1/tickets/{id}/validate
func (h *TicketHandler) ValidateTicket(w http.ResponseWriter, r *http.Request) {
	if len(h.ticketService.Tickets()) == 0 {
		if _, err := h.ticketService.FetchTickets(r.Context()); err != nil {
			writeServiceError(w, err)
			return
		}
	}

	ticket, err := h.ticketService.ValidateTicket(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ticket)
}
