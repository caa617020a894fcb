package handlers

import (
	"github.com/gin-gonic/gin"

	apierrors "github.com/CreativeZee/local-hub-replicator/internal/errors"
	"github.com/CreativeZee/local-hub-replicator/internal/geo"
	"github.com/CreativeZee/local-hub-replicator/internal/models"
	"github.com/CreativeZee/local-hub-replicator/internal/repository"
	"github.com/CreativeZee/local-hub-replicator/internal/util"
)

// currentUser loads the authenticated user's row.
func (h *Handlers) currentUser(c *gin.Context) (*models.User, error) {
	userID, ok := util.GetUserIDFromContext(c)
	if !ok {
		return nil, apierrors.Unauthorized("authentication required")
	}
	var user models.User
	if err := h.db.First(&user, "id = ?", userID).Error; err != nil {
		return nil, apierrors.Unauthorized("account no longer exists")
	}
	return &user, nil
}

// geoQueryFromRequest builds a proximity query from the lat/lng query
// parameters. Missing or unusable coordinates yield the recency
// fallback, never an error.
func geoQueryFromRequest(c *gin.Context, kind string) repository.GeoQuery {
	lat, lon, ok := geo.ParseCoordinates(c.Query("lat"), c.Query("lng"))
	return repository.NewGeoQuery(lat, lon, ok, kind)
}
