package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/EcoTrackApp/ecotrack-go/internal/gamify"
	"github.com/EcoTrackApp/ecotrack-go/internal/models"
	"github.com/EcoTrackApp/ecotrack-go/internal/store"
)

type CreateRewardRequest struct {
	Title          string  `json:"title" binding:"required"`
	Description    string  `json:"description" binding:"required"`
	PointsRequired *int    `json:"points_required" binding:"required"`
	BadgeName      *string `json:"badge_name,omitempty"`
	TaskType       string  `json:"task_type" binding:"required"`
	TaskCount      float64 `json:"task_count,omitempty"`
}

// CreateReward adds a catalog entry. Task types must be automatically
// verifiable so the claim engine can evaluate them.
func CreateReward(rewards *store.Rewards) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateRewardRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
			return
		}

		if *req.PointsRequired < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Points required cannot be negative"})
			return
		}
		if !gamify.KnownTaskType(req.TaskType) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown task type"})
			return
		}
		if req.BadgeName != nil && *req.BadgeName == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Badge name cannot be empty"})
			return
		}

		taskCount := req.TaskCount
		if taskCount <= 0 {
			taskCount = 1
		}

		reward, err := rewards.Create(c.Request.Context(),
			req.Title, req.Description, *req.PointsRequired, req.BadgeName, req.TaskType, taskCount)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create reward", "details": err.Error()})
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"message":   "Reward created successfully",
			"reward_id": reward.ID,
		})
	}
}

// PlatformStats returns platform-wide totals for the admin dashboard.
func PlatformStats(users *store.Users, posts *store.Posts, reports *store.Reports, rewards *store.Rewards) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		userCount, totalCarbonSaved, err := users.Stats(ctx)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get stats", "details": err.Error()})
			return
		}

		postCount, err := posts.Count(ctx)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get stats", "details": err.Error()})
			return
		}

		reportCount, err := reports.Count(ctx)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get stats", "details": err.Error()})
			return
		}

		rewardCount, err := rewards.Count(ctx)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get stats", "details": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"total_users":        userCount,
			"total_posts":        postCount,
			"total_reports":      reportCount,
			"total_rewards":      rewardCount,
			"total_carbon_saved": totalCarbonSaved,
		})
	}
}

// ListUsers returns the registered users for the admin dashboard.
func ListUsers(users *store.Users) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, limit, offset := pagination(c, 50)

		list, err := users.List(c.Request.Context(), limit, offset)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get users", "details": err.Error()})
			return
		}

		responses := make([]models.AdminUserResponse, 0, len(list))
		for i := range list {
			responses = append(responses, list[i].ToAdminResponse())
		}

		c.JSON(http.StatusOK, gin.H{
			"users": responses,
			"page":  page,
			"limit": limit,
		})
	}
}

// DeleteUser removes a user account along with their posts and reports.
// Bills and notifications are removed by foreign key cascade. Admin
// accounts cannot be deleted.
func DeleteUser(users *store.Users, posts *store.Posts, reports *store.Reports) gin.HandlerFunc {
	return func(c *gin.Context) {
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
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query user", "details": err.Error()})
			}
			return
		}
		if target.IsAdmin() {
			c.JSON(http.StatusForbidden, gin.H{"error": "Admin accounts cannot be deleted"})
			return
		}

		if err := posts.DeleteByUser(c.Request.Context(), targetID); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete user content", "details": err.Error()})
			return
		}
		if err := reports.DeleteByUser(c.Request.Context(), targetID); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete user content", "details": err.Error()})
			return
		}

		deleted, err := users.Delete(c.Request.Context(), targetID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete user", "details": err.Error()})
			return
		}
		if !deleted {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
	}
}
