package geo

import (
	"math"
	"strconv"
)

// SearchRadiusMeters is the fixed radius for all proximity listings.
const SearchRadiusMeters = 10000

const earthRadiusMeters = 6371000

// ParseCoordinates interprets the lat/lon query parameters of a
// listing request. It is deliberately lenient: absent or malformed
// values, the (0,0) pair, and out-of-range coordinates all yield
// ok=false, which callers treat as "no viewer location" and fall back
// to a recency-ordered listing rather than rejecting the request.
func ParseCoordinates(latStr, lonStr string) (lat, lon float64, ok bool) {
	if latStr == "" || lonStr == "" {
		return 0, 0, false
	}
	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		return 0, 0, false
	}
	lon, err = strconv.ParseFloat(lonStr, 64)
	if err != nil {
		return 0, 0, false
	}
	if lat == 0 && lon == 0 {
		return 0, 0, false
	}
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return 0, 0, false
	}
	return lat, lon, true
}

// Haversine returns the great-circle distance in meters between two
// coordinate pairs.
func Haversine(lat1, lon1, lat2, lon2 float64) float64 {
	phi1 := lat1 * math.Pi / 180
	phi2 := lat2 * math.Pi / 180
	dPhi := (lat2 - lat1) * math.Pi / 180
	dLambda := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(dPhi/2)*math.Sin(dPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Sin(dLambda/2)*math.Sin(dLambda/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusMeters * c
}

// BoundingBox returns the lat/lon bounds of a square that fully
// contains the circle of the given radius around the center. Used as
// a cheap SQL prefilter before exact distance checks.
func BoundingBox(lat, lon, radiusMeters float64) (minLat, maxLat, minLon, maxLon float64) {
	latDelta := radiusMeters / earthRadiusMeters * 180 / math.Pi
	minLat = lat - latDelta
	maxLat = lat + latDelta

	// Longitude degrees shrink with latitude. When the box would span
	// half the globe or cross the antimeridian, fall back to the full
	// longitude range; the exact distance check filters the excess.
	cosLat := math.Cos(lat * math.Pi / 180)
	lonDelta := 180.0
	if cosLat > 0 {
		lonDelta = latDelta / cosLat
	}
	if lonDelta >= 180 || lon-lonDelta < -180 || lon+lonDelta > 180 {
		return minLat, maxLat, -180, 180
	}
	return minLat, maxLat, lon - lonDelta, lon + lonDelta
}
