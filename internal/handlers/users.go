package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/EcoTrackApp/ecotrack-go/internal/gamify"
	"github.com/EcoTrackApp/ecotrack-go/internal/store"
)

type UpdateProfileRequest struct {
	Name              *string `json:"name,omitempty"`
	ProfilePictureURL *string `json:"profile_picture_url,omitempty"`
}

type FollowRequest struct {
	Follow *bool `json:"follow" binding:"required"`
}

// GetProfile returns a user's public profile. The is_following flag is
// computed against the requesting user.
func GetProfile(users *store.Users) gin.HandlerFunc {
	return func(c *gin.Context) {
		viewerID, ok := middlewareUserID(c)
		if !ok {
			return
		}

		targetID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID format"})
			return
		}

		target, err := users.GetByID(c.Request.Context(), targetID)
		if err != nil {
			if errors.Is(err, gamify.ErrUserNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get profile", "details": err.Error()})
			}
			return
		}

		if viewerID != targetID {
			if viewer, err := users.GetByID(c.Request.Context(), viewerID); err == nil {
				c.JSON(http.StatusOK, target.ToProfileResponse(viewer))
				return
			}
		}
		c.JSON(http.StatusOK, target.ToProfileResponse(nil))
	}
}

// UpdateProfile edits the authenticated user's own profile fields.
func UpdateProfile(users *store.Users) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := requireSelf(c)
		if !ok {
			return
		}

		var req UpdateProfileRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
			return
		}

		if req.Name == nil && req.ProfilePictureURL == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "No valid fields to update"})
			return
		}
		if req.Name != nil && *req.Name == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Name cannot be empty"})
			return
		}

		updated, err := users.UpdateProfile(c.Request.Context(), userID, req.Name, req.ProfilePictureURL)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile", "details": err.Error()})
			return
		}
		if !updated {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Profile updated successfully"})
	}
}

// Follow sets or clears the follow edge from the authenticated user to the
// target user.
func Follow(users *store.Users) gin.HandlerFunc {
	return func(c *gin.Context) {
		followerID, ok := middlewareUserID(c)
		if !ok {
			return
		}

		targetID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID format"})
			return
		}
		if targetID == followerID {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot follow yourself"})
			return
		}

		var req FollowRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
			return
		}

		if _, err := users.GetByID(c.Request.Context(), targetID); err != nil {
			if errors.Is(err, gamify.ErrUserNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query user", "details": err.Error()})
			}
			return
		}

		if err := users.SetFollow(c.Request.Context(), followerID, targetID, *req.Follow); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update follow status", "details": err.Error()})
			return
		}

		message := "User followed successfully"
		if !*req.Follow {
			message = "User unfollowed successfully"
		}
		c.JSON(http.StatusOK, gin.H{"message": message, "following": *req.Follow})
	}
}
