package gamify

import (
	"context"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// LevelForPoints derives a user's level from their point balance.
// Users level up every 100 points and never drop below level 1. Level is
// always recomputed from points, never stored independently.
func LevelForPoints(points int) int {
	level := points / 100
	if level < 1 {
		return 1
	}
	return level
}

// Ledger maintains the per-user point balance, derived level, and saved
// carbon accumulator.
type Ledger struct {
	users UserStore
}

// NewLedger creates a points and leveling ledger over the given user store.
func NewLedger(users UserStore) *Ledger {
	return &Ledger{users: users}
}

// AddPoints credits delta points to the user and recomputes their level.
// Returns false when the user does not exist or the update fails; callers
// must check the result rather than expect an error.
func (l *Ledger) AddPoints(ctx context.Context, userID uuid.UUID, delta int) bool {
	ok, err := l.users.AddPoints(ctx, userID, delta)
	if err != nil {
		log.WithError(err).WithField("user_id", userID).Error("Failed to add points")
		return false
	}
	if ok && delta > 0 {
		pointsAwardedTotal.Add(float64(delta))
	}
	return ok
}

// AddCarbonSavings credits kg of CO2 equivalent to the user's saved-carbon
// accumulator. Returns false when the user does not exist.
func (l *Ledger) AddCarbonSavings(ctx context.Context, userID uuid.UUID, kg float64) bool {
	ok, err := l.users.AddCarbonSavings(ctx, userID, kg)
	if err != nil {
		log.WithError(err).WithField("user_id", userID).Error("Failed to add carbon savings")
		return false
	}
	if ok && kg > 0 {
		carbonSavedKgTotal.Add(kg)
	}
	return ok
}
