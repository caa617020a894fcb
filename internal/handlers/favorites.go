package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	apierrors "github.com/CreativeZee/local-hub-replicator/internal/errors"
	"github.com/CreativeZee/local-hub-replicator/internal/models"
	"github.com/CreativeZee/local-hub-replicator/internal/util"
)

// favoriteEntry is one expanded favorite in a listing response.
type favoriteEntry struct {
	ID        string              `json:"id"`
	Kind      models.FavoriteKind `json:"kind"`
	ItemID    string              `json:"itemId"`
	Item      interface{}         `json:"item"`
	CreatedAt time.Time           `json:"createdAt"`
}

// AddFavorite handles POST /profile/favorites. The same item cannot
// be favorited twice under the same kind.
func (h *Handlers) AddFavorite(c *gin.Context) {
	userID, _ := util.GetUserIDFromContext(c)

	var input struct {
		Kind   models.FavoriteKind `json:"kind"`
		ItemID string              `json:"itemId"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		util.RespondWithAPIError(c, apierrors.BadRequest("invalid request body"))
		return
	}
	if !input.Kind.Valid() {
		util.RespondWithAPIError(c, apierrors.BadRequest("unknown favorite kind"))
		return
	}
	if input.ItemID == "" {
		util.RespondWithAPIError(c, apierrors.ValidationError("itemId", "an item is required"))
		return
	}
	if !h.favoriteTargetExists(input.Kind, input.ItemID) {
		util.RespondWithAPIError(c, apierrors.NotFound("favorite target"))
		return
	}

	var existing models.Favorite
	err := h.db.Where("user_id = ? AND kind = ? AND item_id = ?", userID, input.Kind, input.ItemID).
		First(&existing).Error
	if err == nil {
		util.RespondWithAPIError(c, apierrors.Conflict("already favorited"))
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		util.HandleDBError(c, err, "favorite")
		return
	}

	favorite := models.Favorite{
		UserID: userID,
		Kind:   input.Kind,
		ItemID: input.ItemID,
	}
	if err := h.db.Create(&favorite).Error; err != nil {
		util.HandleDBError(c, err, "favorite")
		return
	}
	c.JSON(http.StatusCreated, h.expandFavorites(userID))
}

// RemoveFavorite handles DELETE /profile/favorites/:itemId. Removal
// matches on the item id alone, across every kind the caller has
// saved it under.
func (h *Handlers) RemoveFavorite(c *gin.Context) {
	userID, _ := util.GetUserIDFromContext(c)

	res := h.db.Where("user_id = ? AND item_id = ?", userID, c.Param("itemId")).
		Delete(&models.Favorite{})
	if res.Error != nil {
		util.HandleDBError(c, res.Error, "favorite")
		return
	}
	if res.RowsAffected == 0 {
		util.RespondWithAPIError(c, apierrors.NotFound("favorite"))
		return
	}
	c.JSON(http.StatusOK, h.expandFavorites(userID))
}

// ListFavorites handles GET /profile/favorites.
func (h *Handlers) ListFavorites(c *gin.Context) {
	userID, _ := util.GetUserIDFromContext(c)
	c.JSON(http.StatusOK, h.expandFavorites(userID))
}

// expandFavorites loads the user's favorites most-recent-first and
// expands each to its current target. Entries whose targets have
// since been deleted are silently omitted rather than erroring the
// list.
func (h *Handlers) expandFavorites(userID string) []favoriteEntry {
	var favorites []models.Favorite
	h.db.Where("user_id = ?", userID).Order("created_at desc").Find(&favorites)

	entries := make([]favoriteEntry, 0, len(favorites))
	for _, f := range favorites {
		item, ok := h.resolveFavoriteTarget(f.Kind, f.ItemID)
		if !ok {
			continue
		}
		entries = append(entries, favoriteEntry{
			ID:        f.ID,
			Kind:      f.Kind,
			ItemID:    f.ItemID,
			Item:      item,
			CreatedAt: f.CreatedAt,
		})
	}
	return entries
}

func (h *Handlers) favoriteTargetExists(kind models.FavoriteKind, itemID string) bool {
	_, ok := h.resolveFavoriteTarget(kind, itemID)
	return ok
}

// resolveFavoriteTarget looks the target up by kind. Recommendation
// favorites point at review rows.
func (h *Handlers) resolveFavoriteTarget(kind models.FavoriteKind, itemID string) (interface{}, bool) {
	switch kind {
	case models.FavoriteKindPost:
		var post models.Post
		if err := h.db.Preload("User").First(&post, "id = ?", itemID).Error; err != nil {
			return nil, false
		}
		return post, true
	case models.FavoriteKindUser:
		var user models.User
		if err := h.db.First(&user, "id = ?", itemID).Error; err != nil {
			return nil, false
		}
		return user.PublicProfile(), true
	case models.FavoriteKindService:
		var service models.Service
		if err := h.db.Preload("User").First(&service, "id = ?", itemID).Error; err != nil {
			return nil, false
		}
		return service, true
	case models.FavoriteKindRecommendation:
		var review models.Review
		if err := h.db.Preload("Business").First(&review, "id = ?", itemID).Error; err != nil {
			return nil, false
		}
		return review, true
	}
	return nil, false
}
