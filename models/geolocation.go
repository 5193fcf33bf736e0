package models

// GeoLocation is a reverse-geocoded place.
type GeoLocation struct {
	Name       string `json:"name"`
	StreetName string `json:"street_name"`
	City       string `json:"city"`
	State      string `json:"state"`
	ZipCode    string `json:"zip_code"`
	Country    string `json:"country"`
}
