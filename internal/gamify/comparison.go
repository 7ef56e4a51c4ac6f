package gamify

import (
	"context"

	"github.com/google/uuid"

	"github.com/EcoTrackApp/ecotrack-go/internal/models"
)

// Comparator computes the usage difference between a user's two most
// recent bills of one type.
type Comparator struct {
	bills BillStore
}

// NewComparator creates a usage comparator over the given bill store.
func NewComparator(bills BillStore) *Comparator {
	return &Comparator{bills: bills}
}

// Compare computes the delta between the newest and second-newest bill.
// Percentage change is guarded against a zero previous usage.
func Compare(current, previous models.UtilityBill) models.UsageComparison {
	usageDiff := current.UsageAmount - previous.UsageAmount

	comparison := models.UsageComparison{
		CurrentUsage:    current.UsageAmount,
		PreviousUsage:   previous.UsageAmount,
		UsageDifference: usageDiff,
		CostDifference:  current.Cost - previous.Cost,
	}
	if previous.UsageAmount > 0 {
		comparison.PercentageChange = usageDiff / previous.UsageAmount * 100
	}
	return comparison
}

// Latest compares the user's two most recent bills of the given type.
// Returns nil (with no error) when fewer than two bills exist; that is a
// valid "not enough data" result.
func (c *Comparator) Latest(ctx context.Context, userID uuid.UUID, billType string) (*models.UsageComparison, error) {
	bills, err := c.bills.LastTwo(ctx, userID, billType)
	if err != nil {
		return nil, err
	}
	if len(bills) < 2 {
		return nil, nil
	}

	comparison := Compare(bills[0], bills[1])
	return &comparison, nil
}
