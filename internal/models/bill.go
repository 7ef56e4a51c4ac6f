package models

import (
	"time"

	"github.com/google/uuid"
)

// Bill types supported for utility tracking
const (
	BillTypeWater       = "water"
	BillTypeElectricity = "electricity"
	BillTypeGas         = "gas"
)

// ValidBillType reports whether t is a recognized utility bill type
func ValidBillType(t string) bool {
	switch t {
	case BillTypeWater, BillTypeElectricity, BillTypeGas:
		return true
	}
	return false
}

// UtilityBill represents one submitted utility bill record
type UtilityBill struct {
	ID            uuid.UUID `json:"id" db:"id"`
	UserID        uuid.UUID `json:"user_id" db:"user_id"`
	BillType      string    `json:"type" db:"bill_type"`
	UsageAmount   float64   `json:"usage_amount" db:"usage_amount"`
	UsageUnit     string    `json:"usage_unit" db:"usage_unit"`
	Cost          float64   `json:"cost" db:"cost"`
	BillingPeriod string    `json:"billing_period" db:"billing_period"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}

// BillResponse is the API response format for a bill
type BillResponse struct {
	ID            uuid.UUID `json:"bill_id"`
	BillType      string    `json:"type"`
	UsageAmount   float64   `json:"usage_amount"`
	UsageUnit     string    `json:"usage_unit"`
	Cost          float64   `json:"cost"`
	BillingPeriod string    `json:"billing_period"`
	CreatedAt     string    `json:"created_at"`
}

// ToResponse converts UtilityBill to BillResponse
func (b *UtilityBill) ToResponse() BillResponse {
	return BillResponse{
		ID:            b.ID,
		BillType:      b.BillType,
		UsageAmount:   b.UsageAmount,
		UsageUnit:     b.UsageUnit,
		Cost:          b.Cost,
		BillingPeriod: b.BillingPeriod,
		CreatedAt:     b.CreatedAt.Format(time.RFC3339),
	}
}

// UsageComparison is the difference between a user's two most recent bills
// of one type. A negative UsageDifference means usage decreased.
type UsageComparison struct {
	CurrentUsage     float64 `json:"current_usage"`
	PreviousUsage    float64 `json:"previous_usage"`
	UsageDifference  float64 `json:"usage_difference"`
	CostDifference   float64 `json:"cost_difference"`
	PercentageChange float64 `json:"percentage_change"`
}
