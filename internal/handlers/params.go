package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/EcoTrackApp/ecotrack-go/internal/middleware"
)

// pagination parses page/limit query parameters with sane bounds.
func pagination(c *gin.Context, defaultLimit int) (page, limit, offset int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}

	limit, _ = strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultLimit)))
	if limit < 1 || limit > 100 {
		limit = defaultLimit
	}

	return page, limit, (page - 1) * limit
}

// middlewareUserID reads the authenticated user ID set by RequireAuth.
func middlewareUserID(c *gin.Context) (uuid.UUID, bool) {
	userID, ok := middleware.GetAuthUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return uuid.Nil, false
	}
	return userID, true
}

// requireSelf parses the :id path parameter and rejects requests for
// anyone other than the authenticated user.
func requireSelf(c *gin.Context) (uuid.UUID, bool) {
	authID, ok := middlewareUserID(c)
	if !ok {
		return uuid.Nil, false
	}

	targetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID format"})
		return uuid.Nil, false
	}

	if targetID != authID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Unauthorized to access this data"})
		return uuid.Nil, false
	}
	return targetID, true
}
