package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"eventize/location"
	"eventize/models"
)

// LocationSource is a location.Provider that also accepts device fixes.
type LocationSource interface {
	location.Provider
	HandleFix(ctx context.Context, c models.Coordinate) (bool, error)
}

// LocationResponse describes the current reference location.
type LocationResponse struct {
	Coordinate  models.Coordinate   `json:"coordinate"`
	Geolocation *models.GeoLocation `json:"geolocation,omitempty"`
	Manual      bool                `json:"manual"`
}

type LocationHandler struct {
	locations LocationSource
}

func NewLocationHandler(locations LocationSource) *LocationHandler {
	return &LocationHandler{locations: locations}
}

// GetLocation handles GET /v1/location
func (h *LocationHandler) GetLocation(w http.ResponseWriter, r *http.Request) {
	h.writeCurrent(w)
}

// SetLocation handles PUT /v1/location with a {"latitude","longitude"} body.
func (h *LocationHandler) SetLocation(w http.ResponseWriter, r *http.Request) {
	c, ok := decodeCoordinate(w, r)
	if !ok {
		return
	}
	if err := h.locations.SetUserLocation(r.Context(), c); err != nil {
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	h.writeCurrent(w)
}

// ReportFix handles POST /v1/location/fix. Fixes inside the distance filter
// or while a manual location is set are accepted but not applied.
func (h *LocationHandler) ReportFix(w http.ResponseWriter, r *http.Request) {
	c, ok := decodeCoordinate(w, r)
	if !ok {
		return
	}
	applied, err := h.locations.HandleFix(r.Context(), c)
	if err != nil {
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"applied": applied})
}

// RequestLocation handles POST /v1/location/request: drops the manual
// location and replays the cached device fix.
func (h *LocationHandler) RequestLocation(w http.ResponseWriter, r *http.Request) {
	if err := h.locations.RequestLocation(r.Context()); err != nil {
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	h.writeCurrent(w)
}

func (h *LocationHandler) writeCurrent(w http.ResponseWriter) {
	c, ok := h.locations.CurrentCoordinate()
	if !ok {
		writeError(w, http.StatusNotFound, "location unknown")
		return
	}
	resp := LocationResponse{Coordinate: c, Manual: h.locations.HasManualLocation()}
	if geo, ok := h.locations.CurrentGeolocation(); ok {
		resp.Geolocation = &geo
	}
	writeJSON(w, http.StatusOK, resp)
}

func decodeCoordinate(w http.ResponseWriter, r *http.Request) (models.Coordinate, bool) {
	var c models.Coordinate
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid coordinate body")
		return models.Coordinate{}, false
	}
	if c.Latitude < -90 || c.Latitude > 90 || c.Longitude < -180 || c.Longitude > 180 {
		writeError(w, http.StatusBadRequest, "Coordinate out of range")
		return models.Coordinate{}, false
	}
	return c, true
}
