package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apierrors "github.com/CreativeZee/local-hub-replicator/internal/errors"
	"github.com/CreativeZee/local-hub-replicator/internal/models"
	"github.com/CreativeZee/local-hub-replicator/internal/repository"
	"github.com/CreativeZee/local-hub-replicator/internal/util"
)

// ListMarketplaceItems handles GET /marketplace.
func (h *Handlers) ListMarketplaceItems(c *gin.Context) {
	q := geoQueryFromRequest(c, "marketplace")
	items, err := repository.ListNearby(h.db, q, func(m *models.MarketplaceItem) models.GeoPoint {
		return m.Location
	}, "User")
	if err != nil {
		util.HandleDBError(c, err, "marketplace items")
		return
	}
	c.JSON(http.StatusOK, items)
}

// ListUserMarketplaceItems handles GET /marketplace/user/:userId.
func (h *Handlers) ListUserMarketplaceItems(c *gin.Context) {
	var items []models.MarketplaceItem
	err := h.db.Preload("User").
		Where("user_id = ?", c.Param("userId")).
		Order("created_at desc").
		Find(&items).Error
	if err != nil {
		util.HandleDBError(c, err, "marketplace items")
		return
	}
	c.JSON(http.StatusOK, items)
}

// GetMarketplaceItem handles GET /marketplace/:id.
func (h *Handlers) GetMarketplaceItem(c *gin.Context) {
	var item models.MarketplaceItem
	if err := h.db.Preload("User").First(&item, "id = ?", c.Param("id")).Error; err != nil {
		util.HandleDBError(c, err, "marketplace item")
		return
	}
	c.JSON(http.StatusOK, item)
}

// CreateMarketplaceItem handles POST /marketplace.
func (h *Handlers) CreateMarketplaceItem(c *gin.Context) {
	user, err := h.currentUser(c)
	if err != nil {
		util.RespondWithAPIError(c, err)
		return
	}

	var input struct {
		Title       string         `json:"title"`
		Description string         `json:"description"`
		Price       *float64       `json:"price"`
		Category    string         `json:"category"`
		Condition   string         `json:"condition"`
		Images      []string       `json:"images"`
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
	if input.Price == nil || *input.Price < 0 {
		util.RespondWithAPIError(c, apierrors.ValidationError("price", "a non-negative price is required"))
		return
	}

	item := models.MarketplaceItem{
		UserID:      user.ID,
		Title:       input.Title,
		Description: input.Description,
		Price:       *input.Price,
		Category:    input.Category,
		Condition:   input.Condition,
		Images:      models.StringList(input.Images),
		Location:    h.resolveLocation(c.Request.Context(), input.Location),
	}
	if err := h.db.Create(&item).Error; err != nil {
		util.HandleDBError(c, err, "marketplace item")
		return
	}
	c.JSON(http.StatusCreated, item)
}

// UpdateMarketplaceItem handles PUT /marketplace/:id. Only the seller
// may edit; marking an item sold happens here too.
func (h *Handlers) UpdateMarketplaceItem(c *gin.Context) {
	userID, _ := util.GetUserIDFromContext(c)

	var item models.MarketplaceItem
	if err := h.db.First(&item, "id = ?", c.Param("id")).Error; err != nil {
		util.HandleDBError(c, err, "marketplace item")
		return
	}
	if item.UserID != userID {
		util.RespondWithAPIError(c, apierrors.Forbidden("only the seller can edit a listing"))
		return
	}

	var input struct {
		Title       *string  `json:"title"`
		Description *string  `json:"description"`
		Price       *float64 `json:"price"`
		Category    *string  `json:"category"`
		Condition   *string  `json:"condition"`
		Images      []string `json:"images"`
		Sold        *bool    `json:"sold"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		util.RespondWithAPIError(c, apierrors.BadRequest("invalid request body"))
		return
	}

	if input.Title != nil {
		item.Title = *input.Title
	}
	if input.Description != nil {
		item.Description = *input.Description
	}
	if input.Price != nil {
		if *input.Price < 0 {
			util.RespondWithAPIError(c, apierrors.ValidationError("price", "price cannot be negative"))
			return
		}
		item.Price = *input.Price
	}
	if input.Category != nil {
		item.Category = *input.Category
	}
	if input.Condition != nil {
		item.Condition = *input.Condition
	}
	if input.Images != nil {
		item.Images = models.StringList(input.Images)
	}
	if input.Sold != nil {
		item.Sold = *input.Sold
	}

	if err := h.db.Save(&item).Error; err != nil {
		util.HandleDBError(c, err, "marketplace item")
		return
	}
	c.JSON(http.StatusOK, item)
}

// DeleteMarketplaceItem handles DELETE /marketplace/:id.
func (h *Handlers) DeleteMarketplaceItem(c *gin.Context) {
	userID, _ := util.GetUserIDFromContext(c)

	var item models.MarketplaceItem
	if err := h.db.First(&item, "id = ?", c.Param("id")).Error; err != nil {
		util.HandleDBError(c, err, "marketplace item")
		return
	}
	if item.UserID != userID {
		util.RespondWithAPIError(c, apierrors.Forbidden("only the seller can delete a listing"))
		return
	}

	if err := h.db.Delete(&item).Error; err != nil {
		util.HandleDBError(c, err, "marketplace item")
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": item.ID})
}
