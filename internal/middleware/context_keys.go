package middleware

import "github.com/gin-gonic/gin"

// userIDKey is the key used to store the authenticated user's ID.
const userIDKey = contextKey("userID")

// businessIDKey is the key used to store the caller's business (tenant) ID.
const businessIDKey = contextKey("businessID")

// GetUserIDFromContext retrieves the authenticated user ID from the Gin
// context. It returns the user ID and a boolean indicating if it was found.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	if v := c.Request.Context().Value(userIDKey); v != nil {
		userID, ok := v.(string)
		return userID, ok
	}
	return "", false
}

// GetBusinessIDFromContext retrieves the caller's business ID from the Gin
// context. Every business-scoped route requires it.
func GetBusinessIDFromContext(c *gin.Context) (string, bool) {
	if v := c.Request.Context().Value(businessIDKey); v != nil {
		businessID, ok := v.(string)
		return businessID, ok
	}
	return "", false
}
