package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/CreativeZee/local-hub-replicator/internal/auth"
	apierrors "github.com/CreativeZee/local-hub-replicator/internal/errors"
	"github.com/CreativeZee/local-hub-replicator/internal/logger"
	"github.com/CreativeZee/local-hub-replicator/internal/middleware"
	"github.com/CreativeZee/local-hub-replicator/internal/util"
)

// Register handles POST /auth/register. An optional address is
// geocoded best effort; failure leaves the account without a
// location, never fails the registration.
func (h *Handlers) Register(c *gin.Context) {
	var input struct {
		auth.RegisterInput
		Address string `json:"address"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		util.RespondWithAPIError(c, apierrors.BadRequest("invalid request body"))
		return
	}

	user, token, err := h.auth.Register(input.RegisterInput)
	if err != nil {
		util.RespondWithAPIError(c, err)
		return
	}
	logger.Log.Info("account created",
		logger.WithUserID(user.ID),
		logger.WithRequestID(middleware.GetRequestID(c)))

	if input.Address != "" {
		user.Location = h.resolveLocation(c.Request.Context(), &locationInput{Address: input.Address})
		if err := h.db.Save(user).Error; err != nil {
			util.HandleDBError(c, err, "profile")
			return
		}
	}
	c.JSON(http.StatusCreated, gin.H{"token": token, "user": user})
}

// Login handles POST /auth/login.
func (h *Handlers) Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		util.RespondWithAPIError(c, apierrors.BadRequest("invalid request body"))
		return
	}

	user, token, err := h.auth.Login(input.Email, input.Password)
	if err != nil {
		util.RespondWithAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token, "user": user})
}

// tokenFromRequest reads the bearer token. The web client sends
// x-auth-token; Authorization: Bearer is accepted as well.
func tokenFromRequest(c *gin.Context) string {
	if token := c.GetHeader("x-auth-token"); token != "" {
		return token
	}
	if bearer := c.GetHeader("Authorization"); strings.HasPrefix(bearer, "Bearer ") {
		return strings.TrimPrefix(bearer, "Bearer ")
	}
	return ""
}

// OptionalAuthMiddleware resolves the viewer identity on the public
// surface. Listings and profiles are readable anonymously, but
// privacy checks (hidden profiles, blocks) need to know who is asking
// when a token is sent. Invalid tokens are treated as anonymous, not
// rejected.
func (h *Handlers) OptionalAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := tokenFromRequest(c); token != "" {
			if userID, err := h.auth.ValidateToken(token); err == nil {
				c.Set(util.UserIDKey, userID)
			}
		}
		c.Next()
	}
}

// AuthMiddleware rejects requests without a valid token.
func (h *Handlers) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := tokenFromRequest(c)
		if token == "" {
			apiErr := apierrors.Unauthorized("authentication required")
			c.AbortWithStatusJSON(apiErr.Status, gin.H{"error": apiErr})
			return
		}

		userID, err := h.auth.ValidateToken(token)
		if err != nil {
			apiErr := apierrors.Unauthorized("invalid or expired token")
			c.AbortWithStatusJSON(apiErr.Status, gin.H{"error": apiErr})
			return
		}

		c.Set(util.UserIDKey, userID)
		c.Next()
	}
}
