package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apierrors "github.com/CreativeZee/local-hub-replicator/internal/errors"
	"github.com/CreativeZee/local-hub-replicator/internal/models"
	"github.com/CreativeZee/local-hub-replicator/internal/repository"
	"github.com/CreativeZee/local-hub-replicator/internal/util"
)

// ListGroups handles GET /groups.
func (h *Handlers) ListGroups(c *gin.Context) {
	q := geoQueryFromRequest(c, "groups")
	groups, err := repository.ListNearby(h.db, q, func(g *models.Group) models.GeoPoint {
		return g.Location
	}, "User", "Members")
	if err != nil {
		util.HandleDBError(c, err, "groups")
		return
	}
	c.JSON(http.StatusOK, groups)
}

// ListUserGroups handles GET /groups/user/:userId, the groups a user
// belongs to.
func (h *Handlers) ListUserGroups(c *gin.Context) {
	var groups []models.Group
	err := h.db.Preload("User").Preload("Members").
		Joins("JOIN group_members ON group_members.group_id = groups.id").
		Where("group_members.user_id = ?", c.Param("userId")).
		Order("groups.created_at desc").
		Find(&groups).Error
	if err != nil {
		util.HandleDBError(c, err, "groups")
		return
	}
	c.JSON(http.StatusOK, groups)
}

// ListCreatedGroups handles GET /groups/created/:userId.
func (h *Handlers) ListCreatedGroups(c *gin.Context) {
	var groups []models.Group
	err := h.db.Preload("User").Preload("Members").
		Where("user_id = ?", c.Param("userId")).
		Order("created_at desc").
		Find(&groups).Error
	if err != nil {
		util.HandleDBError(c, err, "groups")
		return
	}
	c.JSON(http.StatusOK, groups)
}

// GetGroup handles GET /groups/:id.
func (h *Handlers) GetGroup(c *gin.Context) {
	var group models.Group
	err := h.db.Preload("User").Preload("Members").
		First(&group, "id = ?", c.Param("id")).Error
	if err != nil {
		util.HandleDBError(c, err, "group")
		return
	}
	c.JSON(http.StatusOK, group)
}

// CreateGroup handles POST /groups. The creator becomes the first
// member.
func (h *Handlers) CreateGroup(c *gin.Context) {
	user, err := h.currentUser(c)
	if err != nil {
		util.RespondWithAPIError(c, err)
		return
	}

	var input struct {
		Name        string         `json:"name"`
		Description string         `json:"description"`
		Image       string         `json:"image"`
		Category    string         `json:"category"`
		Location    *locationInput `json:"location"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		util.RespondWithAPIError(c, apierrors.BadRequest("invalid request body"))
		return
	}
	if input.Name == "" {
		util.RespondWithAPIError(c, apierrors.ValidationError("name", "name is required"))
		return
	}

	group := models.Group{
		UserID:      user.ID,
		Name:        input.Name,
		Description: input.Description,
		Image:       input.Image,
		Category:    input.Category,
		Location:    h.resolveLocation(c.Request.Context(), input.Location),
		Members:     []models.GroupMember{{UserID: user.ID}},
	}
	if err := h.db.Create(&group).Error; err != nil {
		util.HandleDBError(c, err, "group")
		return
	}
	c.JSON(http.StatusCreated, group)
}

// DeleteGroup handles DELETE /groups/:id.
func (h *Handlers) DeleteGroup(c *gin.Context) {
	userID, _ := util.GetUserIDFromContext(c)

	var group models.Group
	if err := h.db.First(&group, "id = ?", c.Param("id")).Error; err != nil {
		util.HandleDBError(c, err, "group")
		return
	}
	if group.UserID != userID {
		util.RespondWithAPIError(c, apierrors.Forbidden("only the creator can delete a group"))
		return
	}

	if err := h.db.Select("Members").Delete(&group).Error; err != nil {
		util.HandleDBError(c, err, "group")
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": group.ID})
}

// JoinGroup handles POST /groups/:id/join. Joining twice is a
// conflict.
func (h *Handlers) JoinGroup(c *gin.Context) {
	userID, _ := util.GetUserIDFromContext(c)
	groupID := c.Param("id")

	var group models.Group
	if err := h.db.Preload("Members").First(&group, "id = ?", groupID).Error; err != nil {
		util.HandleDBError(c, err, "group")
		return
	}

	if group.HasMember(userID) {
		util.RespondWithAPIError(c, apierrors.Conflict("already a member of this group"))
		return
	}

	member := models.GroupMember{GroupID: groupID, UserID: userID}
	if err := h.db.Create(&member).Error; err != nil {
		util.HandleDBError(c, err, "group")
		return
	}

	var members []models.GroupMember
	h.db.Where("group_id = ?", groupID).Find(&members)
	c.JSON(http.StatusOK, members)
}

// LeaveGroup handles POST /groups/:id/leave.
func (h *Handlers) LeaveGroup(c *gin.Context) {
	userID, _ := util.GetUserIDFromContext(c)
	groupID := c.Param("id")

	var group models.Group
	if err := h.db.First(&group, "id = ?", groupID).Error; err != nil {
		util.HandleDBError(c, err, "group")
		return
	}

	res := h.db.Where("group_id = ? AND user_id = ?", groupID, userID).Delete(&models.GroupMember{})
	if res.Error != nil {
		util.HandleDBError(c, res.Error, "group")
		return
	}
	if res.RowsAffected == 0 {
		util.RespondWithAPIError(c, apierrors.Conflict("not a member of this group"))
		return
	}

	var members []models.GroupMember
	h.db.Where("group_id = ?", groupID).Find(&members)
	c.JSON(http.StatusOK, members)
}
