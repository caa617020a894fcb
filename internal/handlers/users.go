package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	apierrors "github.com/CreativeZee/local-hub-replicator/internal/errors"
	"github.com/CreativeZee/local-hub-replicator/internal/models"
	"github.com/CreativeZee/local-hub-replicator/internal/util"
)

// GetUser handles GET /users/:id. The response honors the target's
// privacy settings; a hidden profile returns 404 to avoid confirming
// the account exists.
func (h *Handlers) GetUser(c *gin.Context) {
	var user models.User
	if err := h.db.First(&user, "id = ?", c.Param("id")).Error; err != nil {
		util.HandleDBError(c, err, "user")
		return
	}

	viewerID, _ := util.GetUserIDFromContext(c)
	if viewerID != user.ID && !user.PrivacySettings.ProfileVisible {
		util.RespondWithAPIError(c, apierrors.NotFound("user"))
		return
	}
	if viewerID == user.ID {
		c.JSON(http.StatusOK, user)
		return
	}
	c.JSON(http.StatusOK, user.PublicProfile())
}

// SearchUsers handles GET /users?q=. Matches name, business name, and
// business category, case-insensitively. Hidden profiles and accounts
// that blocked the viewer are excluded.
func (h *Handlers) SearchUsers(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	viewerID, _ := util.GetUserIDFromContext(c)

	tx := h.db.Limit(50).Order("name asc")
	if query != "" {
		like := "%" + strings.ToLower(query) + "%"
		tx = tx.Where(
			"lower(name) LIKE ? OR lower(business_name) LIKE ? OR lower(business_category) LIKE ?",
			like, like, like,
		)
	}
	if kind := c.Query("userType"); kind != "" {
		tx = tx.Where("user_type = ?", kind)
	}

	var users []models.User
	if err := tx.Find(&users).Error; err != nil {
		util.HandleDBError(c, err, "users")
		return
	}

	results := make([]map[string]interface{}, 0, len(users))
	for i := range users {
		u := &users[i]
		if !u.PrivacySettings.ProfileVisible && u.ID != viewerID {
			continue
		}
		if u.HasBlocked(viewerID) {
			continue
		}
		results = append(results, u.PublicProfile())
	}
	c.JSON(http.StatusOK, results)
}
