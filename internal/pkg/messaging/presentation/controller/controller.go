package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// actingUser extracts the authenticated user id the auth middleware placed on
// the request. Authentication itself is owned by another subsystem; this
// layer only consumes the resolved identity.
func actingUser(c *gin.Context) (int64, bool) {
	raw := c.GetHeader("X-User-ID")
	if raw == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing authenticated user"})
		return 0, false
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid authenticated user"})
		return 0, false
	}
	return id, true
}

// pagination reads limit/offset query params with defaults.
func pagination(c *gin.Context) (limit, offset int) {
	limit = 50
	offset = 0
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}
	if v := c.Query("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			offset = n
		}
	}
	return limit, offset
}

func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": name + " must be a positive integer"})
		return 0, false
	}
	return id, true
}
