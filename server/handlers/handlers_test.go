package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"image"
	"image/jpeg"
	"image/png"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"eventize/api"
	"eventize/api/eventize"
	"eventize/dao/redis"
	"eventize/db"
	"eventize/dispatch"
	"eventize/location"
	"eventize/models"
	"eventize/server"
	services "eventize/service"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testApp struct {
	router   *mux.Router
	eventDao *redis.RedisEventDAO
	prefs    *redis.RedisPreferencesDAO
}

func newTestApp(t *testing.T, eventizeApi eventize.EventizeAPI) *testApp {
	t.Helper()
	redisClient := db.NewMockRedisClient(context.Background())
	prefs := redis.NewRedisPreferencesDAO(redisClient)
	eventDao := redis.NewRedisEventDAO(redisClient)
	queue := dispatch.NewMainQueue()
	t.Cleanup(queue.Close)
	manager := location.NewManager(prefs, location.StaticGeocoder{Location: models.GeoLocation{City: "São Paulo"}}, 500)

	eventService := services.NewEventService(eventizeApi, prefs, eventDao, manager, queue, nil, 0)
	ticketService := services.NewTicketService(eventizeApi, queue)
	imageService := services.NewImageService(api.NewHTTPClient("http://localhost"))

	muxRouter := mux.NewRouter()
	server.NewRouter(
		NewEventHandler(eventService, imageService),
		NewFavoritesHandler(eventService),
		NewTicketHandler(ticketService),
		NewLocationHandler(manager),
		muxRouter,
	).RegisterRoutes()

	return &testApp{router: muxRouter, eventDao: eventDao, prefs: prefs}
}

func (a *testApp) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rr := httptest.NewRecorder()
	a.router.ServeHTTP(rr, req)
	return rr
}

func decodeEventIDs(t *testing.T, rr *httptest.ResponseRecorder) []string {
	t.Helper()
	var events []models.Event
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &events))
	ids := []string{}
	for _, e := range events {
		ids = append(ids, e.EventUUID)
	}
	return ids
}

type failingAPI struct {
	err error
}

func (f failingAPI) GetEvents(ctx context.Context) ([]models.Event, error) { return nil, f.err }
func (f failingAPI) GetEventDetails(ctx context.Context, id string) (*models.EventDetails, error) {
	return nil, f.err
}
func (f failingAPI) GetTickets(ctx context.Context) ([]models.Ticket, error) { return nil, f.err }
func (f failingAPI) ValidateTicket(ctx context.Context, t models.Ticket) (*models.Ticket, error) {
	return nil, f.err
}

// fixedEventsAPI serves a fixed event list and fails everything else.
type fixedEventsAPI struct {
	failingAPI
	events []models.Event
}

func (f fixedEventsAPI) GetEvents(ctx context.Context) ([]models.Event, error) { return f.events, nil }

func TestEventHandler_ListEvents(t *testing.T) {
	app := newTestApp(t, eventize.NewEventizeApiClientMock())

	rr := app.do(t, "GET", "/v1/events?q=night", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	assert.Equal(t, []string{"1", "2", "6"}, decodeEventIDs(t, rr))

	app.do(t, "PUT", "/v1/favorites/6", "")
	rr = app.do(t, "GET", "/v1/events?q=night&favorites=true", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, []string{"6"}, decodeEventIDs(t, rr))
}

func TestEventHandler_ListEvents_BadArgs(t *testing.T) {
	app := newTestApp(t, eventize.NewEventizeApiClientMock())

	for _, path := range []string{
		"/v1/events?favorites=maybe",
		"/v1/events?lat=abc&lon=1",
		"/v1/events?lat=1",
	} {
		rr := app.do(t, "GET", path, "")
		assert.Equal(t, http.StatusBadRequest, rr.Code, path)
	}
}

func TestEventHandler_ListEvents_UpstreamFailure(t *testing.T) {
	app := newTestApp(t, failingAPI{err: &api.NetworkError{Kind: api.DataParsing, Err: errors.New("key not found: title")}})

	rr := app.do(t, "GET", "/v1/events", "")

	assert.Equal(t, http.StatusBadGateway, rr.Code)
	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "data_parsing_failure", body.Kind)
}

func TestEventHandler_GetEventAt(t *testing.T) {
	app := newTestApp(t, eventize.NewEventizeApiClientMock())

	rr := app.do(t, "GET", "/v1/events/index/2?q=night", "")
	require.Equal(t, http.StatusOK, rr.Code)
	var e models.Event
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &e))
	assert.Equal(t, "6", e.EventUUID)

	assert.Equal(t, http.StatusNotFound, app.do(t, "GET", "/v1/events/index/3?q=night", "").Code)
	assert.Equal(t, http.StatusNotFound, app.do(t, "GET", "/v1/events/index/-1", "").Code)
	assert.Equal(t, http.StatusBadRequest, app.do(t, "GET", "/v1/events/index/first", "").Code)
}

func TestEventHandler_GetEvent(t *testing.T) {
	app := newTestApp(t, eventize.NewEventizeApiClientMock())

	rr := app.do(t, "GET", "/v1/events/4", "")
	require.Equal(t, http.StatusOK, rr.Code)
	var body struct {
		Event   models.Event        `json:"event"`
		Details models.EventDetails `json:"details"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "Art Exhibition: Modern Masterpieces", body.Event.Content.Title)
	require.NotNil(t, body.Details.Description)

	assert.Equal(t, http.StatusNotFound, app.do(t, "GET", "/v1/events/404", "").Code)
}

func TestEventHandler_GetEventImage(t *testing.T) {
	var poster bytes.Buffer
	require.NoError(t, png.Encode(&poster, image.NewRGBA(image.Rect(0, 0, 300, 150))))
	imgSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(poster.Bytes())
	}))
	defer imgSrv.Close()

	posterURL := imgSrv.URL + "/p.png"
	withImage := models.Event{EventUUID: "1", Content: models.EventContent{Title: "Rock", ImageURL: &posterURL}}
	noImage := models.Event{EventUUID: "2", Content: models.EventContent{Title: "Jazz"}}
	app := newTestApp(t, fixedEventsAPI{events: []models.Event{withImage, noImage}})

	rr := app.do(t, "GET", "/v1/events/1/image?width=60", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "image/jpeg", rr.Header().Get("Content-Type"))
	img, err := jpeg.Decode(rr.Body)
	require.NoError(t, err)
	assert.Equal(t, 60, img.Bounds().Dx())
	assert.Equal(t, 30, img.Bounds().Dy())

	assert.Equal(t, http.StatusNotFound, app.do(t, "GET", "/v1/events/2/image", "").Code)
	assert.Equal(t, http.StatusNotFound, app.do(t, "GET", "/v1/events/3/image", "").Code)
	assert.Equal(t, http.StatusBadRequest, app.do(t, "GET", "/v1/events/1/image?width=wide", "").Code)
}

func TestEventHandler_GetEventsNearby(t *testing.T) {
	app := newTestApp(t, eventize.NewEventizeApiClientMock())
	placed := models.Event{EventUUID: "1", Content: models.EventContent{Title: "Rock"}}.
		WithCoordinate(models.Coordinate{Latitude: -23.558037, Longitude: -46.700183})
	require.NoError(t, app.eventDao.UpsertEvent(placed))

	rr := app.do(t, "GET", "/v1/events/nearby?lat=-23.5580&lon=-46.7001&radius=1", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, []string{"1"}, decodeEventIDs(t, rr))

	rr = app.do(t, "GET", "/v1/events/nearby?lat=0&lon=0", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `[]`, rr.Body.String())

	assert.Equal(t, http.StatusBadRequest, app.do(t, "GET", "/v1/events/nearby?lat=0", "").Code)
	assert.Equal(t, http.StatusBadRequest, app.do(t, "GET", "/v1/events/nearby?lat=0&lon=0&radius=-2", "").Code)
}

func TestFavoritesHandler(t *testing.T) {
	app := newTestApp(t, eventize.NewEventizeApiClientMock())

	rr := app.do(t, "GET", "/v1/favorites", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"favorite_events_uuids":[]}`, rr.Body.String())

	rr = app.do(t, "PUT", "/v1/favorites/2", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"favorite_events_uuids":["2"]}`, rr.Body.String())

	rr = app.do(t, "POST", "/v1/favorites/5/toggle", "")
	assert.JSONEq(t, `{"favorite_events_uuids":["2","5"]}`, rr.Body.String())

	rr = app.do(t, "DELETE", "/v1/favorites/2", "")
	assert.JSONEq(t, `{"favorite_events_uuids":["5"]}`, rr.Body.String())

	stored, err := app.prefs.GetFavorites()
	require.NoError(t, err)
	assert.Equal(t, []string{"5"}, stored.IDs())
}

func TestTicketHandler(t *testing.T) {
	app := newTestApp(t, eventize.NewEventizeApiClientMock())

	rr := app.do(t, "POST", "/v1/tickets/1/validate", "")
	require.Equal(t, http.StatusOK, rr.Code)
	var ticket models.Ticket
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &ticket))
	assert.False(t, ticket.IsValid)
	assert.Equal(t, "1", ticket.EventUUID)

	assert.Equal(t, http.StatusConflict, app.do(t, "POST", "/v1/tickets/1/validate", "").Code)
	assert.Equal(t, http.StatusNotFound, app.do(t, "POST", "/v1/tickets/nope/validate", "").Code)

	rr = app.do(t, "GET", "/v1/tickets", "")
	require.Equal(t, http.StatusOK, rr.Code)
	var tickets []models.Ticket
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &tickets))
	assert.Len(t, tickets, 3)
}

func TestTicketHandler_UpstreamFailure(t *testing.T) {
	app := newTestApp(t, failingAPI{err: &api.NetworkError{Kind: api.Transport, Err: errors.New("connection refused")}})

	rr := app.do(t, "GET", "/v1/tickets", "")

	assert.Equal(t, http.StatusBadGateway, rr.Code)
	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "network_failure", body.Kind)
}

func TestLocationHandler(t *testing.T) {
	app := newTestApp(t, eventize.NewEventizeApiClientMock())

	assert.Equal(t, http.StatusNotFound, app.do(t, "GET", "/v1/location", "").Code)

	rr := app.do(t, "POST", "/v1/location/fix", `{"latitude":-23.5505,"longitude":-46.6333}`)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"applied":true}`, rr.Body.String())

	rr = app.do(t, "PUT", "/v1/location", `{"latitude":-22.9099,"longitude":-47.0626}`)
	require.Equal(t, http.StatusOK, rr.Code)
	var current LocationResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &current))
	assert.True(t, current.Manual)
	assert.Equal(t, -22.9099, current.Coordinate.Latitude)
	require.NotNil(t, current.Geolocation)
	assert.Equal(t, "São Paulo", current.Geolocation.City)

	rr = app.do(t, "POST", "/v1/location/fix", `{"latitude":-20,"longitude":-40}`)
	assert.JSONEq(t, `{"applied":false}`, rr.Body.String())

	rr = app.do(t, "POST", "/v1/location/request", "")
	require.Equal(t, http.StatusOK, rr.Code)
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &current))
	assert.False(t, current.Manual)
	assert.Equal(t, -23.5505, current.Coordinate.Latitude)

	assert.Equal(t, http.StatusBadRequest, app.do(t, "PUT", "/v1/location", `{"latitude":"x"}`).Code)
	assert.Equal(t, http.StatusBadRequest, app.do(t, "PUT", "/v1/location", `{"latitude":100,"longitude":0}`).Code)
}

func TestPing(t *testing.T) {
	app := newTestApp(t, eventize.NewEventizeApiClientMock())

	rr := app.do(t, "GET", "/ping", "")

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"pong"}`, rr.Body.String())
}
