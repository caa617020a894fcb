package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCoordinates(t *testing.T) {
	tests := []struct {
		name    string
		lat     string
		lon     string
		wantLat float64
		wantLon float64
		wantOK  bool
	}{
		{"valid pair", "47.6062", "-122.3321", 47.6062, -122.3321, true},
		{"missing lat", "", "-122.3321", 0, 0, false},
		{"missing lon", "47.6062", "", 0, 0, false},
		{"both missing", "", "", 0, 0, false},
		{"malformed lat", "north", "-122.3321", 0, 0, false},
		{"malformed lon", "47.6062", "west", 0, 0, false},
		{"null island", "0", "0", 0, 0, false},
		{"lat out of range", "91", "10", 0, 0, false},
		{"lon out of range", "45", "181", 0, 0, false},
		{"negative valid", "-33.8688", "151.2093", -33.8688, 151.2093, true},
		{"zero lat only", "0", "100", 0, 100, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lat, lon, ok := ParseCoordinates(tt.lat, tt.lon)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.InDelta(t, tt.wantLat, lat, 1e-9)
				assert.InDelta(t, tt.wantLon, lon, 1e-9)
			}
		})
	}
}

func TestHaversine(t *testing.T) {
	// Seattle to Portland is roughly 233km.
	d := Haversine(47.6062, -122.3321, 45.5152, -122.6784)
	assert.InDelta(t, 233000, d, 5000)

	// Identical points.
	assert.InDelta(t, 0, Haversine(47.6062, -122.3321, 47.6062, -122.3321), 0.001)

	// Roughly 1.11km per hundredth of a degree of latitude.
	d = Haversine(47.60, -122.33, 47.61, -122.33)
	assert.InDelta(t, 1111, d, 10)
}

func TestBoundingBoxContainsRadius(t *testing.T) {
	lat, lon := 47.6062, -122.3321
	minLat, maxLat, minLon, maxLon := BoundingBox(lat, lon, SearchRadiusMeters)

	assert.Less(t, minLat, lat)
	assert.Greater(t, maxLat, lat)
	assert.Less(t, minLon, lon)
	assert.Greater(t, maxLon, lon)

	// A point exactly at the radius due north stays inside the box.
	northLat := lat + float64(SearchRadiusMeters)/6371000*180/3.14159265358979
	assert.LessOrEqual(t, northLat, maxLat+1e-9)
}

func TestBoundingBoxNearPoles(t *testing.T) {
	_, _, minLon, maxLon := BoundingBox(89.9999, 0, SearchRadiusMeters)
	assert.Equal(t, float64(-180), minLon)
	assert.Equal(t, float64(180), maxLon)

	_, _, minLon, maxLon = BoundingBox(90, 0, SearchRadiusMeters)
	assert.Equal(t, float64(-180), minLon)
	assert.Equal(t, float64(180), maxLon)
}

func TestBoundingBoxCrossingAntimeridian(t *testing.T) {
	// A box straddling the +/-180 seam widens to the full longitude
	// range so rows on the far side stay in the candidate set.
	_, _, minLon, maxLon := BoundingBox(0, 179.99, SearchRadiusMeters)
	assert.Equal(t, float64(-180), minLon)
	assert.Equal(t, float64(180), maxLon)

	_, _, minLon, maxLon = BoundingBox(0, -179.99, SearchRadiusMeters)
	assert.Equal(t, float64(-180), minLon)
	assert.Equal(t, float64(180), maxLon)

	// Away from the seam the box stays tight.
	_, _, minLon, maxLon = BoundingBox(47.6062, -122.3321, SearchRadiusMeters)
	assert.Greater(t, maxLon-minLon, 0.0)
	assert.Less(t, maxLon-minLon, 1.0)
}
