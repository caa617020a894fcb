package models

import "encoding/json"

// GeoPoint is a stored location: a coordinate pair plus a free-text
// address. Coordinates are kept in dedicated columns so listings can
// prefilter by bounding box; the JSON form is a GeoJSON Point with
// coordinates ordered [longitude, latitude].
type GeoPoint struct {
	Longitude *float64 `gorm:"column:longitude" json:"-"`
	Latitude  *float64 `gorm:"column:latitude" json:"-"`
	Address   string   `gorm:"column:address" json:"-"`
}

// geoPointJSON is the wire representation of a GeoPoint.
type geoPointJSON struct {
	Type        string    `json:"type"`
	Coordinates []float64 `json:"coordinates"`
	Address     string    `json:"address,omitempty"`
}

// HasCoordinates reports whether the point carries a usable coordinate
// pair. A (0,0) pair is treated as "no location" — several clients send
// zeroes when the device location is unavailable.
func (p GeoPoint) HasCoordinates() bool {
	if p.Longitude == nil || p.Latitude == nil {
		return false
	}
	return *p.Longitude != 0 || *p.Latitude != 0
}

// Coordinates returns (latitude, longitude) and whether they are usable.
func (p GeoPoint) Coordinates() (float64, float64, bool) {
	if !p.HasCoordinates() {
		return 0, 0, false
	}
	return *p.Latitude, *p.Longitude, true
}

// NewGeoPoint builds a GeoPoint from a coordinate pair and address.
func NewGeoPoint(lat, lon float64, address string) GeoPoint {
	return GeoPoint{
		Longitude: &lon,
		Latitude:  &lat,
		Address:   address,
	}
}

// MarshalJSON renders the point as a GeoJSON Point, or null when no
// coordinates are stored.
func (p GeoPoint) MarshalJSON() ([]byte, error) {
	if p.Longitude == nil || p.Latitude == nil {
		return []byte("null"), nil
	}
	return json.Marshal(geoPointJSON{
		Type:        "Point",
		Coordinates: []float64{*p.Longitude, *p.Latitude},
		Address:     p.Address,
	})
}

// UnmarshalJSON accepts the GeoJSON form, or null.
func (p *GeoPoint) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*p = GeoPoint{}
		return nil
	}
	var raw geoPointJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if len(raw.Coordinates) == 2 {
		lon, lat := raw.Coordinates[0], raw.Coordinates[1]
		p.Longitude = &lon
		p.Latitude = &lat
	}
	p.Address = raw.Address
	return nil
}
