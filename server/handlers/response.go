package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"net/url"
	"strconv"

	services "eventize/service"
)

const (
	LAT_QUERY_ARG       = "lat"
	LON_QUERY_ARG       = "lon"
	RADIUS_QUERY_ARG    = "radius"
	SEARCH_QUERY_ARG    = "q"
	FAVORITES_QUERY_ARG = "favorites"
)

// ErrorResponse is the JSON body of every non-2xx answer.
type ErrorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Println("Error encoding response:", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{Error: message})
}

// writeServiceError maps service failures onto HTTP statuses. Upstream
// fetch failures are 502 and carry the failure kind.
func writeServiceError(w http.ResponseWriter, err error) {
	var fetchErr *services.EventFetchError
	switch {
	case errors.As(err, &fetchErr):
		writeJSON(w, http.StatusBadGateway, ErrorResponse{Error: err.Error(), Kind: fetchErr.Kind.String()})
	case errors.Is(err, services.ErrEventNotFound), errors.Is(err, services.ErrTicketNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrTicketAlreadyInvalid):
		writeError(w, http.StatusConflict, err.Error())
	default:
		log.Println("Internal error:", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
	}
}

func parseArgFloat64(vals url.Values, name string) (float64, error) {
	s := vals.Get(name)
	return strconv.ParseFloat(s, 64)
}

// parseOptionalCoordinate reads lat/lon. Both or neither must be present.
func parseOptionalCoordinate(vals url.Values) (lat, lon float64, present bool, err error) {
	if vals.Get(LAT_QUERY_ARG) == "" && vals.Get(LON_QUERY_ARG) == "" {
		return 0, 0, false, nil
	}
	if lat, err = parseArgFloat64(vals, LAT_QUERY_ARG); err != nil {
		return 0, 0, false, errors.New("Invalid argument " + LAT_QUERY_ARG)
	}
	if lon, err = parseArgFloat64(vals, LON_QUERY_ARG); err != nil {
		return 0, 0, false, errors.New("Invalid argument " + LON_QUERY_ARG)
	}
	return lat, lon, true, nil
}
