package di

import (
	"context"
	"fmt"
	"log"
	"time"

	"eventize/api"
	"eventize/api/eventize"
	"eventize/config"
	"eventize/dao/redis"
	"eventize/db"
	"eventize/dispatch"
	"eventize/location"
	"eventize/query"
	"eventize/server"
	"eventize/server/handlers"
	services "eventize/service"
	"eventize/util"

	goredis "github.com/go-redis/redis/v8"
	"github.com/gorilla/mux"
)

// Container holds all application dependencies.
type Container struct {
	Config                 config.Config
	RedisClient            db.RedisClient
	RedisEventDao          *redis.RedisEventDAO
	RedisPreferencesDao    *redis.RedisPreferencesDAO
	EventizeAPI            eventize.EventizeAPI
	MainQueue              *dispatch.MainQueue
	LocationManager        *location.Manager
	EventService           *services.EventService
	TicketService          *services.TicketService
	ImageService           *services.ImageService
	EventsRefresherService *services.EventsRefresherService
	MuxRouter              *mux.Router
	Router                 *server.Router
	EventizeHttpServer     *server.EventizeHttpServer
}

// NewContainer wires every dependency. Outside "prod" the fixture API client
// and the in-memory redis are used.
func NewContainer(cfg config.Config) (*Container, error) {
	log.Printf("[Container] initializing container - env: %s", cfg.Env)
	ctx := context.Background()

	redisClient, err := newRedisClient(ctx, cfg)
	if err != nil {
		return nil, err
	}
	redisEventDao := redis.NewRedisEventDAO(redisClient)
	redisPreferencesDao := redis.NewRedisPreferencesDAO(redisClient)

	eventizeApi, err := newEventizeAPI(cfg)
	if err != nil {
		return nil, err
	}

	geocoder := location.NewNominatimGeocoder(api.NewHTTPClient(cfg.GeocoderBaseURL), config.NOMINATIM_USER_AGENT)
	locationManager := location.NewManager(redisPreferencesDao, geocoder, cfg.DistanceFilterMeters)

	seed := cfg.RandomSeed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	mainQueue := dispatch.NewMainQueue()
	eventService := services.NewEventService(
		eventizeApi,
		redisPreferencesDao,
		redisEventDao,
		locationManager,
		mainQueue,
		query.NewSeededSource(seed),
		cfg.JitterRadiusMeters,
	)
	ticketService := services.NewTicketService(eventizeApi, mainQueue)
	imageService := services.NewImageService(api.NewHTTPClient(cfg.EventizeAPIBaseURL))
	eventsRefresherService := services.NewEventsRefresherService(redisEventDao, eventizeApi)

	muxRouter := mux.NewRouter()
	router := server.NewRouter(
		handlers.NewEventHandler(eventService, imageService),
		handlers.NewFavoritesHandler(eventService),
		handlers.NewTicketHandler(ticketService),
		handlers.NewLocationHandler(locationManager),
		muxRouter,
	)
	eventizeHttpServer := server.NewEventizeHttpServer(
		router,
		muxRouter,
		cfg.ServerPort,
		cfg.CORSAllowedOrigins,
		config.SERVER_SHUTDOWN_TIMEOUT_SECONDS*time.Second,
	)

	return &Container{
		Config:                 cfg,
		RedisClient:            redisClient,
		RedisEventDao:          redisEventDao,
		RedisPreferencesDao:    redisPreferencesDao,
		EventizeAPI:            eventizeApi,
		MainQueue:              mainQueue,
		LocationManager:        locationManager,
		EventService:           eventService,
		TicketService:          ticketService,
		ImageService:           imageService,
		EventsRefresherService: eventsRefresherService,
		MuxRouter:              muxRouter,
		Router:                 router,
		EventizeHttpServer:     eventizeHttpServer,
	}, nil
}

func newRedisClient(ctx context.Context, cfg config.Config) (db.RedisClient, error) {
	if cfg.Env != "prod" {
		log.Println("[Container] Using in-memory redis")
		return db.NewMockRedisClient(ctx), nil
	}

	redisInternalClient := goredis.NewClient(&goredis.Options{
		Addr:     cfg.RedisAddress,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	redisClient, err := db.NewGeoRedisClient(ctx, redisInternalClient)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.RedisAddress, err)
	}
	return redisClient, nil
}

func newEventizeAPI(cfg config.Config) (eventize.EventizeAPI, error) {
	switch {
	case cfg.Env == "prod":
		log.Printf("[Container] Using prod eventize api at %s", cfg.EventizeAPIBaseURL)
		return eventize.NewEventizeApiClient(api.NewHTTPClient(cfg.EventizeAPIBaseURL)), nil
	case cfg.FixturesFromResources:
		log.Println("[Container] Using mock eventize api with on-disk fixtures")
		client, err := util.NewEventizeApiClientMockFromResources()
		if err != nil {
			return nil, err
		}
		return client, nil
	default:
		log.Println("[Container] Using mock eventize api")
		return eventize.NewEventizeApiClientMock(), nil
	}
}
