package handlers

import (
	"net/http"

	"eventize/models"
	services "eventize/service"

	"github.com/gorilla/mux"
)

type FavoritesHandler struct {
	eventService *services.EventService
}

func NewFavoritesHandler(eventService *services.EventService) *FavoritesHandler {
	return &FavoritesHandler{eventService: eventService}
}

// ListFavorites handles GET /v1/favorites
func (h *FavoritesHandler) ListFavorites(w http.ResponseWriter, r *http.Request) {
	set, err := h.eventService.Favorites()
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, set)
}

// AddFavorite handles PUT /v1/favorites/{id}
func (h *FavoritesHandler) AddFavorite(w http.ResponseWriter, r *http.Request) {
	h.update(w, r, h.eventService.AddFavorite)
}

// RemoveFavorite handles DELETE /v1/favorites/{id}
func (h *FavoritesHandler) RemoveFavorite(w http.ResponseWriter, r *http.Request) {
	h.update(w, r, h.eventService.RemoveFavorite)
}

// ToggleFavorite handles POST /v1/favorites/{id}/toggle
func (h *FavoritesHandler) ToggleFavorite(w http.ResponseWriter, r *http.Request) {
	h.update(w, r, h.eventService.ToggleFavorite)
}

func (h *FavoritesHandler) update(w http.ResponseWriter, r *http.Request, op func(string) (models.FavoriteSet, error)) {
	set, err := op(mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, set)
}
