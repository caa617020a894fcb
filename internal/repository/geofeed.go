package repository

import (
	"sort"

	"gorm.io/gorm"

	"github.com/CreativeZee/local-hub-replicator/internal/geo"
	"github.com/CreativeZee/local-hub-replicator/internal/metrics"
	"github.com/CreativeZee/local-hub-replicator/internal/models"
)

// GeoQuery describes one proximity listing request. When HasPoint is
// false the listing degrades to a recency ordering over everything.
// Limit is opt-in: zero returns the full result set, which is what
// the listing endpoints serve.
type GeoQuery struct {
	Lat          float64
	Lon          float64
	HasPoint     bool
	RadiusMeters float64
	Limit        int

	// Kind labels the content type in metrics.
	Kind string
}

// NewGeoQuery builds a query from already-parsed coordinates using
// the fixed neighborhood radius.
func NewGeoQuery(lat, lon float64, hasPoint bool, kind string) GeoQuery {
	return GeoQuery{
		Lat:          lat,
		Lon:          lon,
		HasPoint:     hasPoint,
		RadiusMeters: geo.SearchRadiusMeters,
		Kind:         kind,
	}
}

// ListNearby returns rows of T within the query radius, nearest
// first, with newer entries winning ties. Rows without stored
// coordinates are excluded from proximity results. Without a viewer
// location it returns a plain newest-first listing instead, including
// rows with no location.
//
// The SQL side only prefilters by bounding box; the exact
// great-circle check runs here, so the same query works on any
// backing database.
func ListNearby[T any](db *gorm.DB, q GeoQuery, point func(*T) models.GeoPoint, preloads ...string) ([]T, error) {
	m := metrics.Get()

	tx := db.Order("created_at desc")
	for _, p := range preloads {
		tx = tx.Preload(p)
	}

	if !q.HasPoint {
		m.GeoQueriesTotal.WithLabelValues(q.Kind, "recency").Inc()
		if q.Limit > 0 {
			tx = tx.Limit(q.Limit)
		}
		var rows []T
		if err := tx.Find(&rows).Error; err != nil {
			return nil, err
		}
		return rows, nil
	}

	m.GeoQueriesTotal.WithLabelValues(q.Kind, "nearby").Inc()
	minLat, maxLat, minLon, maxLon := geo.BoundingBox(q.Lat, q.Lon, q.RadiusMeters)

	var candidates []T
	err := tx.
		Where("loc_latitude IS NOT NULL AND loc_longitude IS NOT NULL").
		Where("loc_latitude BETWEEN ? AND ?", minLat, maxLat).
		Where("loc_longitude BETWEEN ? AND ?", minLon, maxLon).
		Find(&candidates).Error
	if err != nil {
		return nil, err
	}
	m.GeoQueryCandidates.Observe(float64(len(candidates)))

	type scored struct {
		row      T
		distance float64
	}
	within := make([]scored, 0, len(candidates))
	for i := range candidates {
		p := point(&candidates[i])
		lat, lon, ok := p.Coordinates()
		if !ok {
			continue
		}
		d := geo.Haversine(q.Lat, q.Lon, lat, lon)
		if d <= q.RadiusMeters {
			within = append(within, scored{row: candidates[i], distance: d})
		}
	}

	// Input is newest-first; the stable sort keeps that ordering for
	// equal distances.
	sort.SliceStable(within, func(i, j int) bool {
		return within[i].distance < within[j].distance
	})

	if q.Limit > 0 && len(within) > q.Limit {
		within = within[:q.Limit]
	}
	out := make([]T, len(within))
	for i, s := range within {
		out[i] = s.row
	}
	return out, nil
}
