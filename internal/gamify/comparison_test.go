package gamify

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EcoTrackApp/ecotrack-go/internal/models"
)

func bill(usage, cost float64) models.UtilityBill {
	return models.UtilityBill{UsageAmount: usage, Cost: cost}
}

func TestComparatorNotEnoughData(t *testing.T) {
	ctx := context.Background()
	store := &fakeBillStore{bills: map[string][]models.UtilityBill{
		"water": {bill(100, 40)},
	}}
	comparator := NewComparator(store)

	// No bills at all.
	got, err := comparator.Latest(ctx, uuid.New(), "electricity")
	require.NoError(t, err)
	assert.Nil(t, got)

	// Exactly one bill.
	got, err = comparator.Latest(ctx, uuid.New(), "water")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestComparatorUsageDecreased(t *testing.T) {
	store := &fakeBillStore{bills: map[string][]models.UtilityBill{
		"electricity": {bill(80, 32), bill(100, 45)}, // newest first
	}}
	comparator := NewComparator(store)

	got, err := comparator.Latest(context.Background(), uuid.New(), "electricity")
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Equal(t, 80.0, got.CurrentUsage)
	assert.Equal(t, 100.0, got.PreviousUsage)
	assert.Equal(t, -20.0, got.UsageDifference)
	assert.Equal(t, -13.0, got.CostDifference)
	assert.Equal(t, -20.0, got.PercentageChange)
}

func TestComparatorUsageIncreased(t *testing.T) {
	store := &fakeBillStore{bills: map[string][]models.UtilityBill{
		"gas": {bill(150, 60), bill(100, 50)},
	}}
	comparator := NewComparator(store)

	got, err := comparator.Latest(context.Background(), uuid.New(), "gas")
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Equal(t, 50.0, got.UsageDifference)
	assert.Equal(t, 50.0, got.PercentageChange)
	assert.Equal(t, 10.0, got.CostDifference)
}

func TestComparatorZeroPreviousUsage(t *testing.T) {
	store := &fakeBillStore{bills: map[string][]models.UtilityBill{
		"water": {bill(50, 20), bill(0, 0)},
	}}
	comparator := NewComparator(store)

	got, err := comparator.Latest(context.Background(), uuid.New(), "water")
	require.NoError(t, err)
	require.NotNil(t, got)

	// Division-by-zero guard: percentage change reports 0.
	assert.Equal(t, 50.0, got.UsageDifference)
	assert.Equal(t, 0.0, got.PercentageChange)
}

func TestComparatorStoreError(t *testing.T) {
	store := &fakeBillStore{err: errors.New("query timeout")}
	comparator := NewComparator(store)

	got, err := comparator.Latest(context.Background(), uuid.New(), "water")
	assert.Error(t, err)
	assert.Nil(t, got)
}
