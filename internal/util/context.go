package util

import "github.com/gin-gonic/gin"

// UserIDKey is the gin context key the auth middleware sets.
const UserIDKey = "user_id"

// GetUserIDFromContext returns the authenticated user's ID. The
// second return is false on unauthenticated requests.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	v, ok := c.Get(UserIDKey)
	if !ok {
		return "", false
	}
	id, ok := v.(string)
	if !ok || id == "" {
		return "", false
	}
	return id, true
}
