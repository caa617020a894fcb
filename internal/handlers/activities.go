package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apierrors "github.com/CreativeZee/local-hub-replicator/internal/errors"
	"github.com/CreativeZee/local-hub-replicator/internal/models"
	"github.com/CreativeZee/local-hub-replicator/internal/util"
)

// ListBusinessActivities handles GET /activities/business/:businessId.
// A business's work log is public: it is the evidence behind its
// reviews.
func (h *Handlers) ListBusinessActivities(c *gin.Context) {
	var business models.User
	if err := h.db.First(&business, "id = ?", c.Param("businessId")).Error; err != nil {
		util.HandleDBError(c, err, "business")
		return
	}

	var activities []models.Activity
	err := h.db.Preload("Client").
		Where("business_id = ?", business.ID).
		Order("created_at desc").
		Find(&activities).Error
	if err != nil {
		util.HandleDBError(c, err, "activities")
		return
	}
	c.JSON(http.StatusOK, activities)
}

// ListClientActivities handles GET /activities/client/:clientId. Only
// the client can see work logged against them.
func (h *Handlers) ListClientActivities(c *gin.Context) {
	userID, _ := util.GetUserIDFromContext(c)
	if c.Param("clientId") != userID {
		util.RespondWithAPIError(c, apierrors.Forbidden("can only view your own activities"))
		return
	}

	var activities []models.Activity
	err := h.db.Preload("Business").
		Where("client_id = ?", userID).
		Order("created_at desc").
		Find(&activities).Error
	if err != nil {
		util.HandleDBError(c, err, "activities")
		return
	}
	c.JSON(http.StatusOK, activities)
}

// CreateActivity handles POST /activities. Only a business account
// can log work. The job address is geocoded best effort; a failed
// lookup stores the activity without coordinates.
func (h *Handlers) CreateActivity(c *gin.Context) {
	user, err := h.currentUser(c)
	if err != nil {
		util.RespondWithAPIError(c, err)
		return
	}
	if !user.IsBusiness() {
		util.RespondWithAPIError(c, apierrors.Forbidden("only business accounts can log activities"))
		return
	}

	var input struct {
		ClientID       string     `json:"clientId"`
		Description    string     `json:"description"`
		ServiceType    string     `json:"serviceType"`
		Address        string     `json:"address"`
		DateCompleted  *time.Time `json:"dateCompleted"`
		ClientFeedback string     `json:"clientFeedback"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		util.RespondWithAPIError(c, apierrors.BadRequest("invalid request body"))
		return
	}
	if input.Description == "" {
		util.RespondWithAPIError(c, apierrors.ValidationError("description", "description is required"))
		return
	}
	if input.ClientID != "" {
		var client models.User
		if err := h.db.First(&client, "id = ?", input.ClientID).Error; err != nil {
			util.HandleDBError(c, err, "client")
			return
		}
	}

	activity := models.Activity{
		BusinessID:     user.ID,
		ClientID:       input.ClientID,
		Description:    input.Description,
		ServiceType:    input.ServiceType,
		DateCompleted:  input.DateCompleted,
		ClientFeedback: input.ClientFeedback,
		Location:       h.resolveLocation(c.Request.Context(), &locationInput{Address: input.Address}),
	}
	if err := h.db.Create(&activity).Error; err != nil {
		util.HandleDBError(c, err, "activity")
		return
	}
	c.JSON(http.StatusCreated, activity)
}

// UpdateActivity handles PUT /activities/:activityId. Owner only.
func (h *Handlers) UpdateActivity(c *gin.Context) {
	userID, _ := util.GetUserIDFromContext(c)

	var activity models.Activity
	if err := h.db.First(&activity, "id = ?", c.Param("activityId")).Error; err != nil {
		util.HandleDBError(c, err, "activity")
		return
	}
	if activity.BusinessID != userID {
		util.RespondWithAPIError(c, apierrors.Forbidden("only the business can update an activity"))
		return
	}

	var input struct {
		Description    *string    `json:"description"`
		ServiceType    *string    `json:"serviceType"`
		Address        *string    `json:"address"`
		DateCompleted  *time.Time `json:"dateCompleted"`
		ClientFeedback *string    `json:"clientFeedback"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		util.RespondWithAPIError(c, apierrors.BadRequest("invalid request body"))
		return
	}

	if input.Description != nil {
		if *input.Description == "" {
			util.RespondWithAPIError(c, apierrors.ValidationError("description", "description cannot be empty"))
			return
		}
		activity.Description = *input.Description
	}
	if input.ServiceType != nil {
		activity.ServiceType = *input.ServiceType
	}
	if input.Address != nil {
		activity.Location = h.resolveLocation(c.Request.Context(), &locationInput{Address: *input.Address})
	}
	if input.DateCompleted != nil {
		activity.DateCompleted = input.DateCompleted
	}
	if input.ClientFeedback != nil {
		activity.ClientFeedback = *input.ClientFeedback
	}

	if err := h.db.Save(&activity).Error; err != nil {
		util.HandleDBError(c, err, "activity")
		return
	}
	c.JSON(http.StatusOK, activity)
}

// DeleteActivity handles DELETE /activities/:activityId. Owner only.
func (h *Handlers) DeleteActivity(c *gin.Context) {
	userID, _ := util.GetUserIDFromContext(c)

	var activity models.Activity
	if err := h.db.First(&activity, "id = ?", c.Param("activityId")).Error; err != nil {
		util.HandleDBError(c, err, "activity")
		return
	}
	if activity.BusinessID != userID {
		util.RespondWithAPIError(c, apierrors.Forbidden("only the business can delete an activity"))
		return
	}

	if err := h.db.Delete(&activity).Error; err != nil {
		util.HandleDBError(c, err, "activity")
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": activity.ID})
}
