package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	apierrors "github.com/CreativeZee/local-hub-replicator/internal/errors"
	"github.com/CreativeZee/local-hub-replicator/internal/models"
	"github.com/CreativeZee/local-hub-replicator/internal/util"
)

// ListReviews handles GET /users/:id/reviews. Returns all reviews
// left on a business account, newest first, with the average rating.
func (h *Handlers) ListReviews(c *gin.Context) {
	businessID := c.Param("id")

	var business models.User
	if err := h.db.First(&business, "id = ?", businessID).Error; err != nil {
		util.HandleDBError(c, err, "user")
		return
	}

	var reviews []models.Review
	err := h.db.Where("business_id = ?", businessID).
		Order("created_at desc").
		Find(&reviews).Error
	if err != nil {
		util.HandleDBError(c, err, "reviews")
		return
	}

	var average float64
	if len(reviews) > 0 {
		var sum int
		for _, r := range reviews {
			sum += r.Rating
		}
		average = float64(sum) / float64(len(reviews))
	}
	c.JSON(http.StatusOK, gin.H{"reviews": reviews, "averageRating": average})
}

// CreateReview handles POST /users/:id/reviews. A user can review a
// business once; reviewing yourself is forbidden.
func (h *Handlers) CreateReview(c *gin.Context) {
	user, err := h.currentUser(c)
	if err != nil {
		util.RespondWithAPIError(c, err)
		return
	}
	businessID := c.Param("id")

	var business models.User
	if err := h.db.First(&business, "id = ?", businessID).Error; err != nil {
		util.HandleDBError(c, err, "user")
		return
	}
	if !business.IsBusiness() {
		util.RespondWithAPIError(c, apierrors.BadRequest("reviews can only be left on business accounts"))
		return
	}
	if business.ID == user.ID {
		util.RespondWithAPIError(c, apierrors.Forbidden("cannot review your own business"))
		return
	}

	var input struct {
		Rating int    `json:"rating"`
		Text   string `json:"text"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		util.RespondWithAPIError(c, apierrors.BadRequest("invalid request body"))
		return
	}
	if input.Rating < 1 || input.Rating > 5 {
		util.RespondWithAPIError(c, apierrors.ValidationError("rating", "rating must be between 1 and 5"))
		return
	}

	var existing models.Review
	err = h.db.Where("business_id = ? AND user_id = ?", businessID, user.ID).First(&existing).Error
	if err == nil {
		util.RespondWithAPIError(c, apierrors.Conflict("you have already reviewed this business"))
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		util.HandleDBError(c, err, "review")
		return
	}

	review := models.Review{
		BusinessID:   businessID,
		UserID:       user.ID,
		Rating:       input.Rating,
		Text:         input.Text,
		AuthorName:   user.Name,
		AuthorAvatar: user.Avatar,
	}
	if err := h.db.Create(&review).Error; err != nil {
		util.HandleDBError(c, err, "review")
		return
	}
	c.JSON(http.StatusCreated, review)
}

// DeleteReview handles DELETE /reviews/:id. Only the reviewer may
// remove it.
func (h *Handlers) DeleteReview(c *gin.Context) {
	userID, _ := util.GetUserIDFromContext(c)

	var review models.Review
	if err := h.db.First(&review, "id = ?", c.Param("id")).Error; err != nil {
		util.HandleDBError(c, err, "review")
		return
	}
	if review.UserID != userID {
		util.RespondWithAPIError(c, apierrors.Forbidden("only the reviewer can delete a review"))
		return
	}

	if err := h.db.Delete(&review).Error; err != nil {
		util.HandleDBError(c, err, "review")
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": review.ID})
}
