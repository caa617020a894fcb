package handlers

import (
	"context"

	"gorm.io/gorm"

	"github.com/CreativeZee/local-hub-replicator/internal/auth"
	"github.com/CreativeZee/local-hub-replicator/internal/config"
	"github.com/CreativeZee/local-hub-replicator/internal/geo"
	"github.com/CreativeZee/local-hub-replicator/internal/models"
	"github.com/CreativeZee/local-hub-replicator/internal/news"
)

// Handlers bundles the HTTP handlers and their dependencies.
type Handlers struct {
	db       *gorm.DB
	auth     *auth.Service
	geocoder *geo.Geocoder
	news     *news.Client
	cfg      *config.Config
}

// New builds the handler set.
func New(db *gorm.DB, authService *auth.Service, geocoder *geo.Geocoder, newsClient *news.Client, cfg *config.Config) *Handlers {
	return &Handlers{
		db:       db,
		auth:     authService,
		geocoder: geocoder,
		news:     newsClient,
		cfg:      cfg,
	}
}

// locationInput is the location payload accepted on content creation:
// explicit coordinates, a free-text address, or both. When only an
// address is given it is geocoded best effort; a failed lookup leaves
// the content without coordinates rather than failing the request.
type locationInput struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	Address   string   `json:"address"`
}

func (h *Handlers) resolveLocation(ctx context.Context, in *locationInput) models.GeoPoint {
	if in == nil {
		return models.GeoPoint{}
	}
	if in.Latitude != nil && in.Longitude != nil {
		return models.GeoPoint{
			Latitude:  in.Latitude,
			Longitude: in.Longitude,
			Address:   in.Address,
		}
	}
	if in.Address != "" && h.geocoder != nil {
		if lat, lon, ok := h.geocoder.Geocode(ctx, in.Address); ok {
			return models.NewGeoPoint(lat, lon, in.Address)
		}
	}
	return models.GeoPoint{Address: in.Address}
}
