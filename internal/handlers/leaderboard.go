package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/EcoTrackApp/ecotrack-go/internal/models"
	"github.com/EcoTrackApp/ecotrack-go/internal/store"
)

func validLeaderboardSort(sortBy string) bool {
	switch sortBy {
	case "points", "carbon_saved", "level":
		return true
	}
	return false
}

// Leaderboard returns the global ranking sorted by points, carbon saved,
// or level.
func Leaderboard(users *store.Users) gin.HandlerFunc {
	return func(c *gin.Context) {
		viewerID, ok := middlewareUserID(c)
		if !ok {
			return
		}

		sortBy := c.DefaultQuery("sort", "points")
		if !validLeaderboardSort(sortBy) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid sort field. Must be one of: points, carbon_saved, level"})
			return
		}

		page, limit, offset := pagination(c, 20)

		ranked, err := users.Leaderboard(c.Request.Context(), sortBy, limit, offset)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get leaderboard", "details": err.Error()})
			return
		}

		entries := make([]models.LeaderboardEntry, 0, len(ranked))
		for i := range ranked {
			u := &ranked[i]
			entries = append(entries, models.LeaderboardEntry{
				Rank:          offset + i + 1,
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
			Page:        page,
			Limit:       limit,
			SortBy:      sortBy,
			TotalUsers:  len(entries),
		})
	}
}

// FriendsLeaderboard ranks the authenticated user together with everyone
// they follow.
func FriendsLeaderboard(users *store.Users) gin.HandlerFunc {
	return func(c *gin.Context) {
		viewerID, ok := requireSelf(c)
		if !ok {
			return
		}

		viewer, err := users.GetByID(c.Request.Context(), viewerID)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}

		ids := append(viewer.Following, viewer.ID)
		ranked, err := users.ListByIDs(c.Request.Context(), ids)
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
			TotalUsers:  len(entries),
		})
	}
}
