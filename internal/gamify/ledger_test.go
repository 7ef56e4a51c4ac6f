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

func TestLevelForPoints(t *testing.T) {
	tests := []struct {
		points int
		want   int
	}{
		{0, 1},
		{50, 1},
		{99, 1},
		{100, 1},
		{199, 1},
		{200, 2},
		{250, 2},
		{999, 9},
		{1000, 10},
		{-50, 1}, // never below level 1
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, LevelForPoints(tt.points), "points=%d", tt.points)
	}
}

func TestLedgerAddPoints(t *testing.T) {
	ctx := context.Background()
	user := &models.User{ID: uuid.New(), Points: 0, Level: 1}
	store := newFakeUserStore(user)
	ledger := NewLedger(store)

	// Level must track points after every mutation.
	for _, delta := range []int{10, 90, 50, 350, 1} {
		require.True(t, ledger.AddPoints(ctx, user.ID, delta))

		got, err := store.GetByID(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, LevelForPoints(got.Points), got.Level)
	}

	got, err := store.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 501, got.Points)
	assert.Equal(t, 5, got.Level)
}

func TestLedgerAddPointsMissingUser(t *testing.T) {
	ledger := NewLedger(newFakeUserStore())

	assert.False(t, ledger.AddPoints(context.Background(), uuid.New(), 10))
}

func TestLedgerAddPointsStoreError(t *testing.T) {
	store := newFakeUserStore(&models.User{ID: uuid.New()})
	store.err = errors.New("connection refused")
	ledger := NewLedger(store)

	assert.False(t, ledger.AddPoints(context.Background(), uuid.New(), 10))
}

func TestLedgerAddCarbonSavings(t *testing.T) {
	ctx := context.Background()
	user := &models.User{ID: uuid.New()}
	store := newFakeUserStore(user)
	ledger := NewLedger(store)

	require.True(t, ledger.AddCarbonSavings(ctx, user.ID, 12.5))
	require.True(t, ledger.AddCarbonSavings(ctx, user.ID, 7.5))

	got, err := store.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 20.0, got.CarbonSaved)

	assert.False(t, ledger.AddCarbonSavings(ctx, uuid.New(), 1))
}
