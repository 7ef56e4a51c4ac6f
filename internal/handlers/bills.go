package handlers

import (
	"errors"
	"fmt"
	"math"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/EcoTrackApp/ecotrack-go/internal/carbon"
	"github.com/EcoTrackApp/ecotrack-go/internal/gamify"
	"github.com/EcoTrackApp/ecotrack-go/internal/models"
	"github.com/EcoTrackApp/ecotrack-go/internal/store"
)

// maxReductionPoints caps the points awarded for a single usage reduction.
const maxReductionPoints = 50

type ManualEntryRequest struct {
	Type          string   `json:"type" binding:"required"`
	UsageAmount   *float64 `json:"usage_amount" binding:"required"`
	UsageUnit     string   `json:"usage_unit" binding:"required"`
	Cost          *float64 `json:"cost" binding:"required"`
	BillingPeriod string   `json:"billing_period" binding:"required"`
}

type UpdateBillRequest struct {
	UsageAmount   *float64 `json:"usage_amount,omitempty"`
	UsageUnit     *string  `json:"usage_unit,omitempty"`
	Cost          *float64 `json:"cost,omitempty"`
	BillingPeriod *string  `json:"billing_period,omitempty"`
}

// ManualEntry records a bill and credits carbon savings and points when
// usage dropped compared to the previous bill of the same type.
func ManualEntry(bills *store.Bills, comparator *gamify.Comparator, ledger *gamify.Ledger, notifier gamify.Notifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middlewareUserID(c)
		if !ok {
			return
		}

		var req ManualEntryRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
			return
		}

		if !models.ValidBillType(req.Type) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid bill type. Must be one of: water, electricity, gas"})
			return
		}

		bill, err := bills.Insert(c.Request.Context(), userID, req.Type,
			*req.UsageAmount, req.UsageUnit, *req.Cost, req.BillingPeriod)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record bill", "details": err.Error()})
			return
		}

		// Credit savings when this bill is a reduction from the previous one.
		comparison, err := comparator.Latest(c.Request.Context(), userID, req.Type)
		if err == nil && comparison != nil && comparison.UsageDifference < 0 {
			carbonSaved := carbon.CalculateSavings(req.Type, math.Abs(comparison.UsageDifference))
			ledger.AddCarbonSavings(c.Request.Context(), userID, carbonSaved)

			pointsEarned := int(math.Abs(comparison.PercentageChange))
			if pointsEarned > maxReductionPoints {
				pointsEarned = maxReductionPoints
			}
			ledger.AddPoints(c.Request.Context(), userID, pointsEarned)

			_ = notifier.Notify(c.Request.Context(), userID,
				"Great Job!",
				fmt.Sprintf("You saved %.1fkg CO2 by reducing your %s usage!", carbonSaved, req.Type),
				models.NotificationTypeAchievement,
				map[string]interface{}{"carbon_saved": carbonSaved, "points_earned": pointsEarned},
			)
		}

		c.JSON(http.StatusCreated, gin.H{
			"message": "Bill recorded successfully",
			"bill_id": bill.ID,
		})
	}
}

// BillHistory returns a user's bill history, newest first.
func BillHistory(bills *store.Bills) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := requireSelf(c)
		if !ok {
			return
		}

		page, limit, offset := pagination(c, 20)
		billType := c.Query("type")

		records, err := bills.ListByUser(c.Request.Context(), userID, billType, limit, offset)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get bill history", "details": err.Error()})
			return
		}

		history := make([]models.BillResponse, 0, len(records))
		for i := range records {
			history = append(history, records[i].ToResponse())
		}

		c.JSON(http.StatusOK, gin.H{
			"bills": history,
			"page":  page,
			"limit": limit,
			"total": len(history),
		})
	}
}

// UsageComparisonHandler compares the user's two most recent bills of one
// type and reports the environmental impact of the change.
func UsageComparisonHandler(comparator *gamify.Comparator) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := requireSelf(c)
		if !ok {
			return
		}

		billType := c.Query("type")
		if billType == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Bill type is required"})
			return
		}

		comparison, err := comparator.Latest(c.Request.Context(), userID, billType)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get usage comparison", "details": err.Error()})
			return
		}
		if comparison == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Not enough data for comparison (need at least 2 bills)"})
			return
		}

		var impactMessage string
		if comparison.UsageDifference < 0 {
			carbonSaved := carbon.CalculateSavings(billType, math.Abs(comparison.UsageDifference))
			impactMessage = fmt.Sprintf("Great! You saved %.1fkg CO2 equivalent", carbonSaved)
		} else {
			carbonIncreased := carbon.CalculateSavings(billType, comparison.UsageDifference)
			impactMessage = fmt.Sprintf("Your usage increased by %.1fkg CO2 equivalent", carbonIncreased)
		}

		c.JSON(http.StatusOK, gin.H{
			"current_usage":        comparison.CurrentUsage,
			"previous_usage":       comparison.PreviousUsage,
			"usage_difference":     comparison.UsageDifference,
			"cost_difference":      comparison.CostDifference,
			"percentage_change":    comparison.PercentageChange,
			"environmental_impact": impactMessage,
			"bill_type":            billType,
		})
	}
}

// CarbonFootprint breaks down a user's carbon savings by bill type with
// equivalent environmental impacts.
func CarbonFootprint(users *store.Users, bills *store.Bills) gin.HandlerFunc {
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

		billTypes := []string{models.BillTypeWater, models.BillTypeElectricity, models.BillTypeGas}
		breakdown := gin.H{}
		totalSaved := 0.0

		for _, billType := range billTypes {
			records, err := bills.AllByUserAndType(c.Request.Context(), userID, billType)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get carbon footprint", "details": err.Error()})
				return
			}

			typeSavings := 0.0
			comparisons := []gin.H{}

			// Savings for each consecutive pair of bills, newest first.
			for i := 0; i+1 < len(records); i++ {
				usageReduced := records[i+1].UsageAmount - records[i].UsageAmount
				if usageReduced <= 0 {
					continue
				}
				saved := carbon.CalculateSavings(billType, usageReduced)
				typeSavings += saved
				if len(comparisons) < 3 {
					comparisons = append(comparisons, gin.H{
						"period":        records[i].BillingPeriod,
						"carbon_saved":  saved,
						"usage_reduced": usageReduced,
					})
				}
			}

			breakdown[billType] = gin.H{
				"total_carbon_saved": typeSavings,
				"bills_count":        len(records),
				"recent_comparisons": comparisons,
			}
			totalSaved += typeSavings
		}

		impacts := carbon.Impacts(totalSaved)

		c.JSON(http.StatusOK, gin.H{
			"user_id":             userID,
			"total_carbon_saved":  totalSaved,
			"stored_carbon_saved": user.CarbonSaved,
			"breakdown_by_type":   breakdown,
			"equivalent_impact": gin.H{
				"trees_planted":            impacts.TreesPlanted,
				"car_miles_saved":          impacts.CarMilesAvoided,
				"plastic_bottles_recycled": impacts.PlasticBottlesRecycled,
				"light_bulbs_hours":        impacts.LightBulbHours,
				"description": fmt.Sprintf(
					"Equivalent to planting %.1f trees or avoiding %.0f miles of car travel",
					impacts.TreesPlanted, impacts.CarMilesAvoided),
			},
		})
	}
}

// BillTypes returns the supported bill types and their usage units.
func BillTypes() gin.HandlerFunc {
	descriptions := map[string]string{
		models.BillTypeElectricity: "Electrical energy consumption",
		models.BillTypeWater:       "Water consumption",
		models.BillTypeGas:         "Natural gas consumption",
	}

	return func(c *gin.Context) {
		billTypes := gin.H{}
		for billType, description := range descriptions {
			billTypes[billType] = gin.H{
				"units":       carbon.Units(billType),
				"description": description,
			}
		}
		c.JSON(http.StatusOK, gin.H{"bill_types": billTypes})
	}
}

// GetBill returns one bill owned by the authenticated user.
func GetBill(bills *store.Bills) gin.HandlerFunc {
	return func(c *gin.Context) {
		bill, ok := ownedBill(c, bills)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, bill.ToResponse())
	}
}

// UpdateBill edits the user-editable fields of a bill.
func UpdateBill(bills *store.Bills) gin.HandlerFunc {
	return func(c *gin.Context) {
		bill, ok := ownedBill(c, bills)
		if !ok {
			return
		}

		var req UpdateBillRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
			return
		}

		if req.UsageAmount == nil && req.UsageUnit == nil && req.Cost == nil && req.BillingPeriod == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "No valid fields to update"})
			return
		}

		updated, err := bills.Update(c.Request.Context(), bill.ID,
			req.UsageAmount, req.UsageUnit, req.Cost, req.BillingPeriod)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update bill", "details": err.Error()})
			return
		}
		if !updated {
			c.JSON(http.StatusNotFound, gin.H{"error": "Bill not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Bill updated successfully"})
	}
}

// DeleteBill removes a bill owned by the authenticated user.
func DeleteBill(bills *store.Bills) gin.HandlerFunc {
	return func(c *gin.Context) {
		bill, ok := ownedBill(c, bills)
		if !ok {
			return
		}

		deleted, err := bills.Delete(c.Request.Context(), bill.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete bill", "details": err.Error()})
			return
		}
		if !deleted {
			c.JSON(http.StatusNotFound, gin.H{"error": "Bill not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Bill deleted successfully"})
	}
}

// UsageAnalytics summarizes usage and cost per bill type with a simple
// first-half vs second-half trend.
func UsageAnalytics(bills *store.Bills) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := requireSelf(c)
		if !ok {
			return
		}

		billTypes := []string{models.BillTypeWater, models.BillTypeElectricity, models.BillTypeGas}
		analytics := gin.H{}

		for _, billType := range billTypes {
			records, err := bills.AllByUserAndType(c.Request.Context(), userID, billType)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get analytics", "details": err.Error()})
				return
			}

			if len(records) == 0 {
				analytics[billType] = gin.H{
					"total_bills":   0,
					"average_usage": 0,
					"average_cost":  0,
					"trend":         "no_data",
				}
				continue
			}

			// Oldest first for the trend halves.
			for i, j := 0, len(records)-1; i < j; i, j = i+1, j-1 {
				records[i], records[j] = records[j], records[i]
			}

			totalUsage := 0.0
			totalCost := 0.0
			for _, b := range records {
				totalUsage += b.UsageAmount
				totalCost += b.Cost
			}

			trend := "insufficient_data"
			if mid := len(records) / 2; mid > 0 {
				firstHalf := 0.0
				for _, b := range records[:mid] {
					firstHalf += b.UsageAmount
				}
				firstAvg := firstHalf / float64(mid)

				secondHalf := 0.0
				for _, b := range records[mid:] {
					secondHalf += b.UsageAmount
				}
				secondAvg := secondHalf / float64(len(records)-mid)

				switch {
				case secondAvg < firstAvg*0.95:
					trend = "decreasing"
				case secondAvg > firstAvg*1.05:
					trend = "increasing"
				default:
					trend = "stable"
				}
			}

			latest := records[len(records)-1]
			analytics[billType] = gin.H{
				"total_bills":   len(records),
				"average_usage": math.Round(totalUsage/float64(len(records))*100) / 100,
				"average_cost":  math.Round(totalCost/float64(len(records))*100) / 100,
				"total_usage":   math.Round(totalUsage*100) / 100,
				"total_cost":    math.Round(totalCost*100) / 100,
				"trend":         trend,
				"latest_usage":  latest.UsageAmount,
				"latest_cost":   latest.Cost,
			}
		}

		c.JSON(http.StatusOK, gin.H{
			"user_id":   userID,
			"analytics": analytics,
		})
	}
}

// ownedBill loads the bill from the :id param and enforces ownership.
func ownedBill(c *gin.Context, bills *store.Bills) (*models.UtilityBill, bool) {
	userID, ok := middlewareUserID(c)
	if !ok {
		return nil, false
	}

	billID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid bill ID format"})
		return nil, false
	}

	bill, err := bills.GetByID(c.Request.Context(), billID)
	if err != nil {
		if errors.Is(err, store.ErrBillNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Bill not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query bill", "details": err.Error()})
		}
		return nil, false
	}

	if bill.UserID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Unauthorized to access this bill"})
		return nil, false
	}
	return bill, true
}
