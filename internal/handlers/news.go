package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apierrors "github.com/CreativeZee/local-hub-replicator/internal/errors"
	"github.com/CreativeZee/local-hub-replicator/internal/util"
)

// GetNews handles GET /news. The upstream response body is relayed
// as-is.
func (h *Handlers) GetNews(c *gin.Context) {
	body, err := h.news.TopHeadlines(c.Request.Context(), c.Query("country"), c.Query("category"))
	if err != nil {
		util.RespondWithAPIError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/json", body)
}

// UploadImage handles POST /upload. Stores the image locally and
// returns its public path for use in posts, listings, and profiles.
func (h *Handlers) UploadImage(c *gin.Context) {
	file, err := c.FormFile("image")
	if err != nil {
		util.RespondWithAPIError(c, apierrors.BadRequest("an image file is required"))
		return
	}

	path, err := util.SaveUploadedImage(c, file, h.cfg.UploadDir)
	if err != nil {
		util.RespondWithAPIError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"path": path})
}
