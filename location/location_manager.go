// Package location tracks the user's reference coordinate and pushes
// reverse-geocoded updates to subscribers.
package location

import (
	"context"
	"log"
	"sync"

	"eventize/models"
)

// Update is delivered to subscribers whenever the resolved location changes.
type Update struct {
	Geolocation models.GeoLocation
	Coordinate  models.Coordinate
}

// LocationCache persists the last device fix between runs.
type LocationCache interface {
	GetCachedLocation() (*models.Coordinate, error)
	SetCachedLocation(c *models.Coordinate) error
}

type Provider interface {
	CurrentCoordinate() (models.Coordinate, bool)
	CurrentGeolocation() (models.GeoLocation, bool)
	HasManualLocation() bool
	RequestLocation(ctx context.Context) error
	SetUserLocation(ctx context.Context, c models.Coordinate) error
	Subscribe() (<-chan Update, func())
}

// Manager implements Provider. Device fixes arrive through HandleFix.
type Manager struct {
	cache                LocationCache
	geocoder             ReverseGeocoder
	distanceFilterMeters float64

	mu          sync.Mutex
	current     *models.Coordinate
	geolocation *models.GeoLocation
	manual      bool
	subscribers map[int]chan Update
	nextID      int
}

func NewManager(cache LocationCache, geocoder ReverseGeocoder, distanceFilterMeters float64) *Manager {
	return &Manager{
		cache:                cache,
		geocoder:             geocoder,
		distanceFilterMeters: distanceFilterMeters,
		subscribers:          make(map[int]chan Update),
	}
}

func (m *Manager) CurrentCoordinate() (models.Coordinate, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current == nil {
		return models.Coordinate{}, false
	}
	return *m.current, true
}

func (m *Manager) CurrentGeolocation() (models.GeoLocation, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.geolocation == nil {
		return models.GeoLocation{}, false
	}
	return *m.geolocation, true
}

func (m *Manager) HasManualLocation() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.manual
}

// RequestLocation drops any manual selection and replays the cached fix, if any.
func (m *Manager) RequestLocation(ctx context.Context) error {
	m.mu.Lock()
	m.manual = false
	m.mu.Unlock()

	cached, err := m.cache.GetCachedLocation()
	if err != nil {
		log.Printf("[LocationManager] Failed to read cached location: %v", err)
		return err
	}
	if cached == nil {
		return nil
	}
	return m.resolve(ctx, *cached)
}

// SetUserLocation pins a manually chosen coordinate; device fixes are ignored
// until RequestLocation is called again.
func (m *Manager) SetUserLocation(ctx context.Context, c models.Coordinate) error {
	m.mu.Lock()
	m.manual = true
	m.mu.Unlock()
	return m.resolve(ctx, c)
}

// HandleFix processes a device fix. Fixes closer than the distance filter to
// the current coordinate are dropped. It reports whether the fix was applied.
func (m *Manager) HandleFix(ctx context.Context, c models.Coordinate) (bool, error) {
	m.mu.Lock()
	if m.manual {
		m.mu.Unlock()
		return false, nil
	}
	if m.current != nil && m.current.DistanceMeters(c) < m.distanceFilterMeters {
		m.mu.Unlock()
		return false, nil
	}
	m.mu.Unlock()

	if err := m.cache.SetCachedLocation(&c); err != nil {
		log.Printf("[LocationManager] Failed to cache location: %v", err)
	}
	if err := m.resolve(ctx, c); err != nil {
		return false, err
	}
	return true, nil
}

// Subscribe registers a listener. Each channel holds only the latest update;
// call the returned function to unsubscribe.
func (m *Manager) Subscribe() (<-chan Update, func()) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := m.nextID
	m.nextID++
	ch := make(chan Update, 1)
	m.subscribers[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			m.mu.Lock()
			defer m.mu.Unlock()
			delete(m.subscribers, id)
			close(ch)
		})
	}
}

func (m *Manager) resolve(ctx context.Context, c models.Coordinate) error {
	geo, err := m.geocoder.ReverseGeocode(ctx, c)
	if err != nil {
		log.Printf("[LocationManager] Error reverse geocoding %.6f,%.6f: %v", c.Latitude, c.Longitude, err)
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = &c
	m.geolocation = &geo

	u := Update{Geolocation: geo, Coordinate: c}
	for _, ch := range m.subscribers {
		select {
		case ch <- u:
		default:
			select {
			case <-ch:
			default:
			}
			ch <- u
		}
	}
	return nil
}
