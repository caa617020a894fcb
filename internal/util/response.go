package util

import (
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	apierrors "github.com/CreativeZee/local-hub-replicator/internal/errors"
	"github.com/CreativeZee/local-hub-replicator/internal/logger"
)

// RespondWithAPIError writes a structured error response. Plain
// errors are wrapped as internal errors so the response shape stays
// uniform.
func RespondWithAPIError(c *gin.Context, err error) {
	var apiErr *apierrors.APIError
	if !errors.As(err, &apiErr) {
		logger.ErrorWithFields("unhandled error", err)
		apiErr = apierrors.InternalError("something went wrong")
	}
	c.JSON(apiErr.Code.StatusCode(), gin.H{"error": apiErr})
}

// HandleDBError maps a database error to an API error, translating
// missing rows to a 404 for the named resource.
func HandleDBError(c *gin.Context, err error, resource string) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		RespondWithAPIError(c, apierrors.NotFound(resource))
		return
	}
	logger.ErrorWithFields("database error", err)
	RespondWithAPIError(c, apierrors.InternalError("something went wrong"))
}
