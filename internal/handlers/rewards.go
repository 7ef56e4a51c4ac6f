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

// ListRewards returns the reward catalog annotated with the requesting
// user's eligibility.
func ListRewards(users *store.Users, rewards *store.Rewards) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middlewareUserID(c)
		if !ok {
			return
		}

		user, err := users.GetByID(c.Request.Context(), userID)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}

		catalog, err := rewards.List(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get rewards", "details": err.Error()})
			return
		}

		list := make([]models.RewardListResponse, 0, len(catalog))
		for i := range catalog {
			list = append(list, catalog[i].ToListResponse(user))
		}

		c.JSON(http.StatusOK, gin.H{
			"rewards":     list,
			"user_points": user.Points,
			"user_level":  user.Level,
		})
	}
}

// ClaimReward runs the claim engine for the authenticated user and maps
// the engine's error taxonomy onto HTTP statuses.
func ClaimReward(claims *gamify.Claims) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middlewareUserID(c)
		if !ok {
			return
		}

		rewardID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid reward ID format"})
			return
		}

		result, err := claims.Claim(c.Request.Context(), userID, rewardID)
		if err != nil {
			var insufficientErr *gamify.InsufficientPointsError
			var taskErr *gamify.TaskIncompleteError
			switch {
			case errors.Is(err, gamify.ErrRewardNotFound):
				c.JSON(http.StatusNotFound, gin.H{"error": "Reward not found"})
			case errors.Is(err, gamify.ErrUserNotFound):
				c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			case errors.Is(err, gamify.ErrAlreadyClaimed):
				c.JSON(http.StatusBadRequest, gin.H{"error": "Reward already claimed"})
			case errors.As(err, &insufficientErr):
				c.JSON(http.StatusBadRequest, gin.H{
					"error":           "Insufficient points",
					"points_required": insufficientErr.Required,
					"points_held":     insufficientErr.Held,
				})
			case errors.As(err, &taskErr):
				c.JSON(http.StatusBadRequest, gin.H{"error": taskErr.Error()})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to claim reward", "details": err.Error()})
			}
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message": "Reward claimed successfully",
			"reward":  result,
		})
	}
}

// RewardProgress reports the user's progress toward each reward's
// qualifying task alongside their point balance.
func RewardProgress(users *store.Users, rewards *store.Rewards, activity *store.Activity) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := requireSelf(c)
		if !ok {
			return
		}

		user, err := users.GetByID(c.Request.Context(), userID)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}

		catalog, err := rewards.List(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get rewards", "details": err.Error()})
			return
		}

		ctx := c.Request.Context()
		postsCount, _ := activity.CountPosts(ctx, userID)
		reportsCount, _ := activity.CountReports(ctx, userID)
		billsCount, _ := activity.CountBills(ctx, userID)
		likesReceived, _ := activity.LikesReceived(ctx, userID)

		currentFor := func(taskType string) float64 {
			switch gamify.TaskType(taskType) {
			case gamify.TaskPostsCreated:
				return float64(postsCount)
			case gamify.TaskReportsCreated:
				return float64(reportsCount)
			case gamify.TaskBillsUploaded:
				return float64(billsCount)
			case gamify.TaskCarbonSaved:
				return user.CarbonSaved
			case gamify.TaskLikesReceived:
				return float64(likesReceived)
			case gamify.TaskLevelReached:
				return float64(user.Level)
			default:
				return 0
			}
		}

		progress := make([]gin.H, 0, len(catalog))
		for i := range catalog {
			reward := &catalog[i]
			current := currentFor(reward.TaskType)

			percent := 100.0
			if reward.TaskCount > 0 {
				percent = current / reward.TaskCount * 100
				if percent > 100 {
					percent = 100
				}
			}

			claimed := false
			if badge := reward.Badge(); badge != "" {
				claimed = user.HasBadge(badge)
			}

			progress = append(progress, gin.H{
				"reward_id":        reward.ID,
				"title":            reward.Title,
				"points_required":  reward.PointsRequired,
				"task_type":        reward.TaskType,
				"task_count":       reward.TaskCount,
				"current_progress": current,
				"progress_percent": percent,
				"points_eligible":  user.Points >= reward.PointsRequired,
				"already_claimed":  claimed,
			})
		}

		c.JSON(http.StatusOK, gin.H{
			"user_points": user.Points,
			"user_level":  user.Level,
			"progress":    progress,
		})
	}
}

// RewardsLeaderboard returns the top 50 users by points.
func RewardsLeaderboard(users *store.Users) gin.HandlerFunc {
	return func(c *gin.Context) {
		viewerID, ok := middlewareUserID(c)
		if !ok {
			return
		}

		ranked, err := users.Leaderboard(c.Request.Context(), "points", 50, 0)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get leaderboard", "details": err.Error()})
			return
		}

		entries := make([]models.LeaderboardEntry, 0, len(ranked))
		for i := range ranked {
			u := &ranked[i]
			entries = append(entries, models.LeaderboardEntry{
				Rank:          i + 1,
				UserID:        u.ID,
				Name:          u.Name,
				Points:        u.Points,
				Level:         u.Level,
				CarbonSaved:   u.CarbonSaved,
				BadgesCount:   len(u.Badges),
				IsCurrentUser: u.ID == viewerID,
			})
		}

		c.JSON(http.StatusOK, models.LeaderboardResponse{
			Leaderboard: entries,
			SortBy:      "points",
			TotalUsers:  len(entries),
		})
	}
}
