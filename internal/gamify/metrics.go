package gamify

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	pointsAwardedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ecotrack_points_awarded_total",
		Help: "Total points credited to user ledgers.",
	})

	rewardsClaimedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ecotrack_rewards_claimed_total",
		Help: "Total successful reward claims.",
	})

	carbonSavedKgTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ecotrack_carbon_saved_kg_total",
		Help: "Total kilograms of CO2 equivalent credited to users.",
	})
)
