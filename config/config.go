package config

import (
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Redis Config
const REDIS_DB_ADDRESS = "redis:6379"
const REDIS_DB_PASSWORD = ""
const REDIS_DB = 0

// Server config
const SERVER_PORT = "8080"
const SERVER_SHUTDOWN_TIMEOUT_SECONDS = 5

// Eventize API
const EVENTIZE_API_SCHEME = "https"
const EVENTIZE_API_HOST = "eventize-api-6bd6089a59f0.herokuapp.com"
const NOMINATIM_ENDPOINT_BASE = "https://nominatim.openstreetmap.org"
const NOMINATIM_USER_AGENT = "Eventize/1.0 (+https://eventize-api-6bd6089a59f0.herokuapp.com)"

// Events Refresher config
const EVENTS_REFRESHER_SCHEDULE_MINUTES = 30
const EVENTS_REFRESH_MAX_RETRIES = 3
const EVENTS_REFRESH_RETRY_WAIT_SECONDS = 5

// Location config
const LOCATION_DISTANCE_FILTER_METERS = 500.0
const EVENT_JITTER_RADIUS_METERS = 1000.0
const NEARBY_EVENTS_DEFAULT_RADIUS_KM = 5.0

// Resources file paths
const RESOURCES_PATH_PREFIX = "resources"
const EVENTS_RESOURCE = "events.json"
const TICKETS_RESOURCE = "tickets.json"
const EVENT_DETAILS_RESOURCE = "event_details.json"

// Config holds the runtime settings. Defaults come from the constants above.
type Config struct {
	Env                   string
	ServerPort            string
	RedisAddress          string
	RedisPassword         string
	RedisDB               int
	EventizeAPIBaseURL    string
	GeocoderBaseURL       string
	RefresherScheduleMins int
	JitterRadiusMeters    float64
	DistanceFilterMeters  float64
	RandomSeed            uint64
	CORSAllowedOrigins    []string
	FixturesFromResources bool
}

// LoadEnv loads variables from the first .env file found.
func LoadEnv(paths ...string) {
	if len(paths) == 0 {
		paths = []string{".env", "../.env"}
	}
	for _, path := range paths {
		if err := godotenv.Load(path); err == nil {
			log.Printf("[Config] Loaded environment variables from %s", path)
			return
		}
	}
	log.Println("[Config] No .env file found, using environment variables")
}

// Load reads .env files, then the environment, falling back to the constants.
func Load(envFiles ...string) Config {
	LoadEnv(envFiles...)

	return Config{
		Env:                   getEnv("EVENTIZE_ENV", "dev"),
		ServerPort:            getEnv("SERVER_PORT", SERVER_PORT),
		RedisAddress:          getEnv("REDIS_ADDR", REDIS_DB_ADDRESS),
		RedisPassword:         getEnv("REDIS_PASSWORD", REDIS_DB_PASSWORD),
		RedisDB:               getEnvInt("REDIS_DB", REDIS_DB),
		EventizeAPIBaseURL:    EVENTIZE_API_SCHEME + "://" + getEnv("EVENTIZE_API_HOST", EVENTIZE_API_HOST),
		GeocoderBaseURL:       getEnv("GEOCODER_BASE_URL", NOMINATIM_ENDPOINT_BASE),
		RefresherScheduleMins: getEnvInt("EVENTS_REFRESHER_SCHEDULE_MINUTES", EVENTS_REFRESHER_SCHEDULE_MINUTES),
		JitterRadiusMeters:    getEnvFloat("EVENT_JITTER_RADIUS_METERS", EVENT_JITTER_RADIUS_METERS),
		DistanceFilterMeters:  getEnvFloat("LOCATION_DISTANCE_FILTER_METERS", LOCATION_DISTANCE_FILTER_METERS),
		RandomSeed:            uint64(getEnvInt("EVENTIZE_RANDOM_SEED", 0)),
		CORSAllowedOrigins:    splitList(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		FixturesFromResources: getEnv("FIXTURES_FROM_RESOURCES", "false") == "true",
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		log.Printf("[Config] Invalid integer for %s=%q, using %d", key, raw, fallback)
		return fallback
	}
	return v
}

func getEnvFloat(key string, fallback float64) float64 {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		log.Printf("[Config] Invalid number for %s=%q, using %v", key, raw, fallback)
		return fallback
	}
	return v
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// BaseDir returns the absolute path of the project root directory
func BaseDir() string {
	if root := os.Getenv("PROJECT_ROOT"); root != "" {
		return root
	}

	wd, err := os.Getwd()
	if err != nil {
		panic("Unable to determine working directory: " + err.Error())
	}

	return wd
}

func GetResourcePath(resourceFile string) string {
	return filepath.Join(BaseDir(), RESOURCES_PATH_PREFIX, resourceFile)
}
