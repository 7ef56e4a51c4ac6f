package models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestHasBadge(t *testing.T) {
	u := &User{Badges: []string{"Eco Warrior", "Early Adopter"}}

	assert.True(t, u.HasBadge("Eco Warrior"))
	assert.False(t, u.HasBadge("Carbon Hero"))
	assert.False(t, (&User{}).HasBadge("Eco Warrior"))
}

func TestToProfileResponseFollowing(t *testing.T) {
	target := &User{
		ID:     uuid.New(),
		Name:   "Ada",
		Points: 250,
		Level:  2,
	}
	viewer := &User{Following: []uuid.UUID{target.ID}}
	stranger := &User{Following: []uuid.UUID{uuid.New()}}

	assert.True(t, target.ToProfileResponse(viewer).IsFollowing)
	assert.False(t, target.ToProfileResponse(stranger).IsFollowing)
	assert.False(t, target.ToProfileResponse(nil).IsFollowing)
}

func TestToProfileResponseNilBadges(t *testing.T) {
	resp := (&User{}).ToProfileResponse(nil)
	assert.NotNil(t, resp.Badges)
	assert.Empty(t, resp.Badges)
}

func TestRewardToListResponse(t *testing.T) {
	badge := "Eco Warrior"
	reward := &Reward{
		Title:          "Plant a tree",
		PointsRequired: 100,
		BadgeName:      &badge,
	}

	rich := &User{Points: 150, Badges: []string{badge}}
	resp := reward.ToListResponse(rich)
	assert.True(t, resp.Eligible)
	assert.True(t, resp.AlreadyClaimed)

	poor := &User{Points: 50}
	resp = reward.ToListResponse(poor)
	assert.False(t, resp.Eligible)
	assert.False(t, resp.AlreadyClaimed)
}

func TestRewardBadge(t *testing.T) {
	badge := "Carbon Hero"
	assert.Equal(t, badge, (&Reward{BadgeName: &badge}).Badge())
	assert.Equal(t, "", (&Reward{}).Badge())
}
