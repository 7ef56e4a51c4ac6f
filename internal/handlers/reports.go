package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/EcoTrackApp/ecotrack-go/internal/gamify"
	"github.com/EcoTrackApp/ecotrack-go/internal/models"
	"github.com/EcoTrackApp/ecotrack-go/internal/store"
)

var reportCategories = map[string]bool{
	"pollution":      true,
	"deforestation":  true,
	"waste_dumping":  true,
	"water_issue":    true,
	"air_quality":    true,
	"wildlife":       true,
	"green_activity": true,
	"other":          true,
}

type CreateReportRequest struct {
	Title       string `json:"title" binding:"required"`
	Category    string `json:"category" binding:"required"`
	Location    string `json:"location" binding:"required"`
	Description string `json:"description" binding:"required"`
}

// CreateReport files a community environmental report and credits the
// reporter.
func CreateReport(reports *store.Reports, ledger *gamify.Ledger) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middlewareUserID(c)
		if !ok {
			return
		}

		var req CreateReportRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
			return
		}

		if !reportCategories[req.Category] {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid report category"})
			return
		}
		if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Description) == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Title and description cannot be empty"})
			return
		}

		report, err := reports.Create(c.Request.Context(), userID,
			req.Title, req.Category, req.Location, req.Description)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create report", "details": err.Error()})
			return
		}

		ledger.AddPoints(c.Request.Context(), userID, pointsPerReport)

		c.JSON(http.StatusCreated, gin.H{
			"message":       "Report created successfully",
			"report_id":     report.ID,
			"points_earned": pointsPerReport,
		})
	}
}

// ListReports returns community reports, newest first, optionally filtered
// by category.
func ListReports(reports *store.Reports) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := middlewareUserID(c); !ok {
			return
		}

		category := c.Query("category")
		if category != "" && !reportCategories[category] {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid report category"})
			return
		}

		page, limit, offset := pagination(c, 20)

		list, err := reports.List(c.Request.Context(), category, limit, offset)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get reports", "details": err.Error()})
			return
		}

		responses := make([]models.ReportResponse, 0, len(list))
		for i := range list {
			responses = append(responses, list[i].ToResponse())
		}

		c.JSON(http.StatusOK, gin.H{
			"reports": responses,
			"page":    page,
			"limit":   limit,
		})
	}
}

// LikeReport toggles the requester's like on a report. A new like credits
// the report owner and notifies them.
func LikeReport(reports *store.Reports, users *store.Users, ledger *gamify.Ledger, notifier gamify.Notifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middlewareUserID(c)
		if !ok {
			return
		}

		reportID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid report ID format"})
			return
		}

		ownerID, liked, err := reports.ToggleLike(c.Request.Context(), reportID, userID)
		if err != nil {
			if errors.Is(err, store.ErrReportNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Report not found"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to like report", "details": err.Error()})
			}
			return
		}

		if liked && ownerID != userID {
			ledger.AddPoints(c.Request.Context(), ownerID, pointsPerLikeOwner)

			likerName := "Someone"
			if liker, err := users.GetByID(c.Request.Context(), userID); err == nil {
				likerName = liker.Name
			}
			_ = notifier.Notify(c.Request.Context(), ownerID,
				"New Like!",
				fmt.Sprintf("%s liked your report", likerName),
				models.NotificationTypeReport,
				map[string]interface{}{"report_id": reportID.String()},
			)
		}

		message := "Report liked"
		if !liked {
			message = "Report unliked"
		}
		c.JSON(http.StatusOK, gin.H{"message": message, "liked": liked})
	}
}

// VerifyReport records the requester's verification of a report, once per
// user, and credits the verifier for the community moderation work.
func VerifyReport(reports *store.Reports, ledger *gamify.Ledger, notifier gamify.Notifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middlewareUserID(c)
		if !ok {
			return
		}

		reportID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid report ID format"})
			return
		}

		report, err := reports.GetByID(c.Request.Context(), reportID)
		if err != nil {
			if errors.Is(err, store.ErrReportNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Report not found"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query report", "details": err.Error()})
			}
			return
		}
		if report.UserID == userID {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot verify your own report"})
			return
		}

		verified, err := reports.Verify(c.Request.Context(), reportID, userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify report", "details": err.Error()})
			return
		}
		if !verified {
			c.JSON(http.StatusBadRequest, gin.H{"error": "You have already verified this report"})
			return
		}

		ledger.AddPoints(c.Request.Context(), userID, pointsPerVerification)

		_ = notifier.Notify(c.Request.Context(), report.UserID,
			"Report Verified!",
			fmt.Sprintf("Your report %q was verified by the community", report.Title),
			models.NotificationTypeReport,
			map[string]interface{}{"report_id": reportID.String()},
		)

		c.JSON(http.StatusOK, gin.H{
			"message":            "Report verified successfully",
			"points_earned":      pointsPerVerification,
			"verification_count": report.VerificationCount + 1,
		})
	}
}
