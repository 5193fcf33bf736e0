package location

import (
	"context"
	"strconv"

	"eventize/api"
	"eventize/models"
)

type ReverseGeocoder interface {
	ReverseGeocode(ctx context.Context, c models.Coordinate) (models.GeoLocation, error)
}

const nominatimCaller = "NominatimGeocoder"

// NominatimGeocoder resolves coordinates with the OpenStreetMap Nominatim
// /reverse endpoint.
type NominatimGeocoder struct {
	client *api.HTTPClient
}

// NewNominatimGeocoder sends userAgent on every lookup; Nominatim refuses
// anonymous clients.
func NewNominatimGeocoder(client *api.HTTPClient, userAgent string) *NominatimGeocoder {
	return &NominatimGeocoder{client: client.WithHeader("User-Agent", userAgent)}
}

type nominatimResponse struct {
	Name    string `json:"name"`
	Address struct {
		Road     string `json:"road"`
		City     string `json:"city"`
		Town     string `json:"town"`
		Village  string `json:"village"`
		State    string `json:"state"`
		Postcode string `json:"postcode"`
		Country  string `json:"country"`
	} `json:"address"`
}

func (g *NominatimGeocoder) ReverseGeocode(ctx context.Context, c models.Coordinate) (models.GeoLocation, error) {
	u, err := g.client.Endpoint("/reverse", map[string]string{
		"format": "jsonv2",
		"lat":    strconv.FormatFloat(c.Latitude, 'f', -1, 64),
		"lon":    strconv.FormatFloat(c.Longitude, 'f', -1, 64),
	})
	if err != nil {
		return models.GeoLocation{}, err
	}

	res, err := api.FetchDecoded[nominatimResponse](ctx, g.client, u, nominatimCaller)
	if err != nil {
		return models.GeoLocation{}, err
	}

	city := res.Address.City
	if city == "" {
		city = res.Address.Town
	}
	if city == "" {
		city = res.Address.Village
	}
	return models.GeoLocation{
		Name:       res.Name,
		StreetName: res.Address.Road,
		City:       city,
		State:      res.Address.State,
		ZipCode:    res.Address.Postcode,
		Country:    res.Address.Country,
	}, nil
}

// StaticGeocoder answers every lookup with the same place.
type StaticGeocoder struct {
	Location models.GeoLocation
	Err      error
}

func (g StaticGeocoder) ReverseGeocode(ctx context.Context, c models.Coordinate) (models.GeoLocation, error) {
	return g.Location, g.Err
}
