package server

import (
	"net/http"

	"github.com/gorilla/mux"
)

type EventHandler interface {
	ListEvents(w http.ResponseWriter, r *http.Request)
	GetEventsNearby(w http.ResponseWriter, r *http.Request)
	GetEventAt(w http.ResponseWriter, r *http.Request)
	GetEvent(w http.ResponseWriter, r *http.Request)
	GetEventImage(w http.ResponseWriter, r *http.Request)
	Ping(w http.ResponseWriter, r *http.Request)
}

type FavoritesHandler interface {
	ListFavorites(w http.ResponseWriter, r *http.Request)
	AddFavorite(w http.ResponseWriter, r *http.Request)
	RemoveFavorite(w http.ResponseWriter, r *http.Request)
	ToggleFavorite(w http.ResponseWriter, r *http.Request)
}

type TicketHandler interface {
	ListTickets(w http.ResponseWriter, r *http.Request)
	ValidateTicket(w http.ResponseWriter, r *http.Request)
}

type LocationHandler interface {
	GetLocation(w http.ResponseWriter, r *http.Request)
	SetLocation(w http.ResponseWriter, r *http.Request)
	ReportFix(w http.ResponseWriter, r *http.Request)
	RequestLocation(w http.ResponseWriter, r *http.Request)
}

type Router struct {
	eventHandler     EventHandler
	favoritesHandler FavoritesHandler
	ticketHandler    TicketHandler
	locationHandler  LocationHandler
	router           *mux.Router
}

// NewRouter creates a router with the app's routes.
func NewRouter(
	eventHandler EventHandler,
	favoritesHandler FavoritesHandler,
	ticketHandler TicketHandler,
	locationHandler LocationHandler,
	router *mux.Router) *Router {
	return &Router{
		eventHandler:     eventHandler,
		favoritesHandler: favoritesHandler,
		ticketHandler:    ticketHandler,
		locationHandler:  locationHandler,
		router:           router,
	}
}

func (r *Router) RegisterRoutes() {
	r.router.HandleFunc("/ping", r.eventHandler.Ping).Methods("GET")

	// expects ?q={search term}&favorites={bool}&lat={float}&lon={float}, all optional
	r.router.HandleFunc("/v1/events", r.eventHandler.ListEvents).Methods("GET")
	// expects ?lat={latitude(float)}&lon={longitude(float)}&radius={km(float), optional}
	r.router.HandleFunc("/v1/events/nearby", r.eventHandler.GetEventsNearby).Methods("GET")
	r.router.HandleFunc("/v1/events/index/{index}", r.eventHandler.GetEventAt).Methods("GET")
	r.router.HandleFunc("/v1/events/{id}", r.eventHandler.GetEvent).Methods("GET")
	// expects ?width={max width in px(int), optional}
	r.router.HandleFunc("/v1/events/{id}/image", r.eventHandler.GetEventImage).Methods("GET")

	r.router.HandleFunc("/v1/favorites", r.favoritesHandler.ListFavorites).Methods("GET")
	r.router.HandleFunc("/v1/favorites/{id}", r.favoritesHandler.AddFavorite).Methods("PUT")
	r.router.HandleFunc("/v1/favorites/{id}", r.favoritesHandler.RemoveFavorite).Methods("DELETE")
	r.router.HandleFunc("/v1/favorites/{id}/toggle", r.favoritesHandler.ToggleFavorite).Methods("POST")

	r.router.HandleFunc("/v1/tickets", r.ticketHandler.ListTickets).Methods("GET")
	r.router.HandleFunc("/v1/tickets/{id}/validate", r.ticketHandler.ValidateTicket).Methods("POST")

	r.router.HandleFunc("/v1/location", r.locationHandler.GetLocation).Methods("GET")
	r.router.HandleFunc("/v1/location", r.locationHandler.SetLocation).Methods("PUT")
	r.router.HandleFunc("/v1/location/fix", r.locationHandler.ReportFix).Methods("POST")
	r.router.HandleFunc("/v1/location/request", r.locationHandler.RequestLocation).Methods("POST")
}
