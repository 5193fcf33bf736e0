package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"eventize/config"
	"eventize/models"
	services "eventize/service"

	"github.com/disintegration/imaging"
	"github.com/gorilla/mux"
)

const WIDTH_QUERY_ARG = "width"

type EventHandler struct {
	eventService *services.EventService
	imageService *services.ImageService
}

func NewEventHandler(eventService *services.EventService, imageService *services.ImageService) *EventHandler {
	return &EventHandler{eventService: eventService, imageService: imageService}
}

// ListEvents handles GET /v1/events?q=&favorites=&lat=&lon=
func (h *EventHandler) ListEvents(w http.ResponseWriter, r *http.Request) {
	request, ok := parseFilterRequest(w, r)
	if !ok {
		return
	}

	events, err := h.eventService.FetchEvents(r.Context(), request)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, events)
}

// GetEventsNearby handles GET /v1/events/nearby?lat=&lon=&radius=
func (h *EventHandler) GetEventsNearby(w http.ResponseWriter, r *http.Request) {
	vals := r.URL.Query()
	lat, err := parseArgFloat64(vals, LAT_QUERY_ARG)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid argument "+LAT_QUERY_ARG)
		return
	}
	lon, err := parseArgFloat64(vals, LON_QUERY_ARG)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid argument "+LON_QUERY_ARG)
		return
	}
	radius := config.NEARBY_EVENTS_DEFAULT_RADIUS_KM
	if vals.Get(RADIUS_QUERY_ARG) != "" {
		if radius, err = parseArgFloat64(vals, RADIUS_QUERY_ARG); err != nil || radius <= 0 {
			writeError(w, http.StatusBadRequest, "Invalid argument "+RADIUS_QUERY_ARG)
			return
		}
	}

	events, err := h.eventService.GetEventsNearby(lat, lon, radius)
	if err != nil {
		log.Println("Error loading nearby events:", err)
		writeServiceError(w, err)
		return
	}
	if events == nil {
		events = []models.Event{}
	}
	writeJSON(w, http.StatusOK, events)
}

// GetEventAt handles GET /v1/events/index/{index}. It selects from the
// filtered view described by the same query args as ListEvents.
func (h *EventHandler) GetEventAt(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(mux.Vars(r)["index"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid argument index")
		return
	}
	request, ok := parseFilterRequest(w, r)
	if !ok {
		return
	}
	if err := h.ensureLoaded(r); err != nil {
		writeServiceError(w, err)
		return
	}

	e, found, err := h.eventService.SelectEventAt(request, index)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if !found {
		writeError(w, http.StatusNotFound, "No event at index "+strconv.Itoa(index))
		return
	}
	writeJSON(w, http.StatusOK, e)
}

// GetEvent handles GET /v1/events/{id}
func (h *EventHandler) GetEvent(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := h.ensureLoaded(r); err != nil {
		writeServiceError(w, err)
		return
	}
	h.eventService.SelectEvent(id)

	withDetails, err := h.eventService.EventWithDetails(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, withDetails)
}

// GetEventImage handles GET /v1/events/{id}/image?width={int, optional} and
// answers with a JPEG.
func (h *EventHandler) GetEventImage(w http.ResponseWriter, r *http.Request) {
	width := 0
	if raw := r.URL.Query().Get(WIDTH_QUERY_ARG); raw != "" {
		var err error
		if width, err = strconv.Atoi(raw); err != nil || width < 0 {
			writeError(w, http.StatusBadRequest, "Invalid argument "+WIDTH_QUERY_ARG)
			return
		}
	}
	if err := h.ensureLoaded(r); err != nil {
		writeServiceError(w, err)
		return
	}
	id := mux.Vars(r)["id"]
	e, ok := h.eventService.SelectEvent(id)
	if !ok {
		writeError(w, http.StatusNotFound, "event not found: "+id)
		return
	}

	img, err := h.imageService.EventImage(r.Context(), e, width)
	if errors.Is(err, services.ErrEventHasNoImage) {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "image/jpeg")
	w.WriteHeader(http.StatusOK)
	if err := imaging.Encode(w, img, imaging.JPEG); err != nil {
		log.Println("Error encoding image:", err)
	}
}

// ensureLoaded fetches the collection once if nothing has been stored yet.
func (h *EventHandler) ensureLoaded(r *http.Request) error {
	all, err := h.eventService.FilterEvents(models.NewFilterRequest())
	if err != nil || len(all) > 0 {
		return err
	}
	_, err = h.eventService.FetchEvents(r.Context(), models.NewFilterRequest())
	return err
}

// Ping handles GET /ping
func (h *EventHandler) Ping(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "pong"})
}

func parseFilterRequest(w http.ResponseWriter, r *http.Request) (models.FilterRequest, bool) {
	vals := r.URL.Query()
	opts := []models.FilterOption{models.WithSearchTerm(vals.Get(SEARCH_QUERY_ARG))}

	if raw := vals.Get(FAVORITES_QUERY_ARG); raw != "" {
		favoritesOnly, err := strconv.ParseBool(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid argument "+FAVORITES_QUERY_ARG)
			return models.FilterRequest{}, false
		}
		opts = append(opts, models.WithFavoritesOnly(favoritesOnly))
	}

	lat, lon, present, err := parseOptionalCoordinate(vals)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return models.FilterRequest{}, false
	}
	if present {
		opts = append(opts, models.WithReference(models.Coordinate{Latitude: lat, Longitude: lon}))
	}
	return models.NewFilterRequest(opts...), true
}
