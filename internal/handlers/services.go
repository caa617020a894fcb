package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apierrors "github.com/CreativeZee/local-hub-replicator/internal/errors"
	"github.com/CreativeZee/local-hub-replicator/internal/models"
	"github.com/CreativeZee/local-hub-replicator/internal/repository"
	"github.com/CreativeZee/local-hub-replicator/internal/util"
)

// ListServices handles GET /services.
func (h *Handlers) ListServices(c *gin.Context) {
	q := geoQueryFromRequest(c, "services")
	services, err := repository.ListNearby(h.db, q, func(s *models.Service) models.GeoPoint {
		return s.Location
	}, "User")
	if err != nil {
		util.HandleDBError(c, err, "services")
		return
	}
	c.JSON(http.StatusOK, services)
}

// ListUserServices handles GET /services/user/:userId.
func (h *Handlers) ListUserServices(c *gin.Context) {
	var services []models.Service
	err := h.db.Preload("User").
		Where("user_id = ?", c.Param("userId")).
		Order("created_at desc").
		Find(&services).Error
	if err != nil {
		util.HandleDBError(c, err, "services")
		return
	}
	c.JSON(http.StatusOK, services)
}

// GetService handles GET /services/:id.
func (h *Handlers) GetService(c *gin.Context) {
	var service models.Service
	if err := h.db.Preload("User").First(&service, "id = ?", c.Param("id")).Error; err != nil {
		util.HandleDBError(c, err, "service")
		return
	}
	c.JSON(http.StatusOK, service)
}

// CreateService handles POST /services. Only business accounts can
// publish services.
func (h *Handlers) CreateService(c *gin.Context) {
	user, err := h.currentUser(c)
	if err != nil {
		util.RespondWithAPIError(c, err)
		return
	}
	if !user.IsBusiness() {
		util.RespondWithAPIError(c, apierrors.Forbidden("only business accounts can publish services"))
		return
	}

	var input struct {
		Title       string         `json:"title"`
		Description string         `json:"description"`
		Category    string         `json:"category"`
		Price       float64        `json:"price"`
		PriceUnit   string         `json:"priceUnit"`
		Image       string         `json:"image"`
		Location    *locationInput `json:"location"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		util.RespondWithAPIError(c, apierrors.BadRequest("invalid request body"))
		return
	}
	if input.Title == "" {
		util.RespondWithAPIError(c, apierrors.ValidationError("title", "title is required"))
		return
	}

	service := models.Service{
		UserID:      user.ID,
		Title:       input.Title,
		Description: input.Description,
		Category:    input.Category,
		Price:       input.Price,
		PriceUnit:   input.PriceUnit,
		Image:       input.Image,
		Location:    h.resolveLocation(c.Request.Context(), input.Location),
	}
	if err := h.db.Create(&service).Error; err != nil {
		util.HandleDBError(c, err, "service")
		return
	}
	c.JSON(http.StatusCreated, service)
}

// UpdateService handles PUT /services/:id.
func (h *Handlers) UpdateService(c *gin.Context) {
	userID, _ := util.GetUserIDFromContext(c)

	var service models.Service
	if err := h.db.First(&service, "id = ?", c.Param("id")).Error; err != nil {
		util.HandleDBError(c, err, "service")
		return
	}
	if service.UserID != userID {
		util.RespondWithAPIError(c, apierrors.Forbidden("only the owner can edit a service"))
		return
	}

	var input struct {
		Title       *string  `json:"title"`
		Description *string  `json:"description"`
		Category    *string  `json:"category"`
		Price       *float64 `json:"price"`
		PriceUnit   *string  `json:"priceUnit"`
		Image       *string  `json:"image"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		util.RespondWithAPIError(c, apierrors.BadRequest("invalid request body"))
		return
	}

	if input.Title != nil {
		service.Title = *input.Title
	}
	if input.Description != nil {
		service.Description = *input.Description
	}
	if input.Category != nil {
		service.Category = *input.Category
	}
	if input.Price != nil {
		service.Price = *input.Price
	}
	if input.PriceUnit != nil {
		service.PriceUnit = *input.PriceUnit
	}
	if input.Image != nil {
		service.Image = *input.Image
	}

	if err := h.db.Save(&service).Error; err != nil {
		util.HandleDBError(c, err, "service")
		return
	}
	c.JSON(http.StatusOK, service)
}

// DeleteService handles DELETE /services/:id.
func (h *Handlers) DeleteService(c *gin.Context) {
	userID, _ := util.GetUserIDFromContext(c)

	var service models.Service
	if err := h.db.First(&service, "id = ?", c.Param("id")).Error; err != nil {
		util.HandleDBError(c, err, "service")
		return
	}
	if service.UserID != userID {
		util.RespondWithAPIError(c, apierrors.Forbidden("only the owner can delete a service"))
		return
	}

	if err := h.db.Delete(&service).Error; err != nil {
		util.HandleDBError(c, err, "service")
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": service.ID})
}
