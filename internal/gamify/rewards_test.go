package gamify

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EcoTrackApp/ecotrack-go/internal/models"
)

func strPtr(s string) *string { return &s }

func testReward(cost int, badge string) *models.Reward {
	r := &models.Reward{
		ID:             uuid.New(),
		Title:          "Eco Warrior",
		Description:    "Create 5 posts",
		PointsRequired: cost,
		TaskType:       "posts_created",
		TaskCount:      5,
	}
	if badge != "" {
		r.BadgeName = strPtr(badge)
	}
	return r
}

func claimsFixture(user *models.User, reward *models.Reward, activity *fakeActivityStore) (*Claims, *fakeUserStore, *fakeNotifier) {
	users := newFakeUserStore(user)
	notifier := &fakeNotifier{}
	engine := NewClaims(users, newFakeRewardStore(reward), NewOracle(users, activity), notifier)
	return engine, users, notifier
}

func TestClaimRewardNotFound(t *testing.T) {
	user := &models.User{ID: uuid.New(), Points: 500}
	engine, _, _ := claimsFixture(user, testReward(100, "eco-warrior"), &fakeActivityStore{})

	_, err := engine.Claim(context.Background(), user.ID, uuid.New())
	assert.ErrorIs(t, err, ErrRewardNotFound)
}

func TestClaimUserNotFound(t *testing.T) {
	reward := testReward(100, "eco-warrior")
	engine, _, _ := claimsFixture(&models.User{ID: uuid.New()}, reward, &fakeActivityStore{})

	_, err := engine.Claim(context.Background(), uuid.New(), reward.ID)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestClaimInsufficientPoints(t *testing.T) {
	// Fails on points even though the task is complete.
	user := &models.User{ID: uuid.New(), Points: 60}
	reward := testReward(100, "eco-warrior")
	engine, _, _ := claimsFixture(user, reward, &fakeActivityStore{posts: 10})

	_, err := engine.Claim(context.Background(), user.ID, reward.ID)

	var insufficient *InsufficientPointsError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, 100, insufficient.Required)
	assert.Equal(t, 60, insufficient.Held)
}

func TestClaimAlreadyClaimed(t *testing.T) {
	// Fails on badge membership even with sufficient points.
	user := &models.User{ID: uuid.New(), Points: 500, Badges: []string{"eco-warrior"}}
	reward := testReward(100, "eco-warrior")
	engine, _, _ := claimsFixture(user, reward, &fakeActivityStore{posts: 10})

	_, err := engine.Claim(context.Background(), user.ID, reward.ID)
	assert.ErrorIs(t, err, ErrAlreadyClaimed)
}

func TestClaimTaskIncomplete(t *testing.T) {
	user := &models.User{ID: uuid.New(), Points: 500}
	reward := testReward(100, "eco-warrior")
	engine, _, _ := claimsFixture(user, reward, &fakeActivityStore{posts: 2})

	_, err := engine.Claim(context.Background(), user.ID, reward.ID)

	var incomplete *TaskIncompleteError
	require.ErrorAs(t, err, &incomplete)
	assert.Equal(t, "Create 5 posts", incomplete.Description)
}

func TestClaimSuccess(t *testing.T) {
	ctx := context.Background()
	user := &models.User{ID: uuid.New(), Points: 250, Level: 2}
	reward := testReward(100, "eco-warrior")
	engine, users, notifier := claimsFixture(user, reward, &fakeActivityStore{posts: 5})

	result, err := engine.Claim(ctx, user.ID, reward.ID)
	require.NoError(t, err)

	assert.Equal(t, "Eco Warrior", result.RewardTitle)
	assert.Equal(t, 100, result.PointsSpent)
	assert.Equal(t, 150, result.RemainingPoints)
	require.NotNil(t, result.BadgeEarned)
	assert.Equal(t, "eco-warrior", *result.BadgeEarned)

	// Exactly the cost deducted, badge appended once, level recomputed.
	got, err := users.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 150, got.Points)
	assert.Equal(t, []string{"eco-warrior"}, got.Badges)
	assert.Equal(t, LevelForPoints(got.Points), got.Level)

	require.Len(t, notifier.sent, 1)
	assert.Equal(t, user.ID, notifier.sent[0].UserID)
	assert.Equal(t, models.NotificationTypeReward, notifier.sent[0].Type)
}

func TestClaimSuccessWithoutBadge(t *testing.T) {
	ctx := context.Background()
	user := &models.User{ID: uuid.New(), Points: 100}
	reward := testReward(100, "")
	engine, users, _ := claimsFixture(user, reward, &fakeActivityStore{posts: 5})

	result, err := engine.Claim(ctx, user.ID, reward.ID)
	require.NoError(t, err)
	assert.Nil(t, result.BadgeEarned)
	assert.Equal(t, 0, result.RemainingPoints)

	got, err := users.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Badges)
	assert.Equal(t, 0, got.Points)
}

func TestClaimNotifierFailureDoesNotFailClaim(t *testing.T) {
	user := &models.User{ID: uuid.New(), Points: 200}
	reward := testReward(100, "eco-warrior")
	users := newFakeUserStore(user)
	notifier := &fakeNotifier{err: assert.AnError}
	engine := NewClaims(users, newFakeRewardStore(reward),
		NewOracle(users, &fakeActivityStore{posts: 5}), notifier)

	_, err := engine.Claim(context.Background(), user.ID, reward.ID)
	assert.NoError(t, err)
}

func TestConcurrentDoubleClaim(t *testing.T) {
	// Two simultaneous claims with points == cost: exactly one may succeed.
	// The conditional update detects the lost race and reports it as
	// AlreadyClaimed or InsufficientPoints.
	user := &models.User{ID: uuid.New(), Points: 100}
	reward := testReward(100, "eco-warrior")
	engine, users, _ := claimsFixture(user, reward, &fakeActivityStore{posts: 5})

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = engine.Claim(context.Background(), user.ID, reward.ID)
		}(i)
	}
	wg.Wait()

	successes := 0
	for _, err := range errs {
		if err == nil {
			successes++
			continue
		}
		var insufficient *InsufficientPointsError
		if !errors.Is(err, ErrAlreadyClaimed) && !errors.As(err, &insufficient) {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, successes)

	got, err := users.GetByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Points)
	assert.Equal(t, []string{"eco-warrior"}, got.Badges)
}

func TestClaimRaceClassification(t *testing.T) {
	// When the conditional update reports no effect, the engine re-reads
	// the user and reports the blocking condition.
	user := &models.User{ID: uuid.New(), Points: 100}
	reward := testReward(100, "eco-warrior")
	engine, users, _ := claimsFixture(user, reward, &fakeActivityStore{posts: 5})

	// Inject a concurrent winner between the pre-checks and the update, so
	// the conditional update reports no effect.
	users.beforeApply = func() {
		ok, err := users.ApplyClaim(context.Background(), user.ID, 100, "eco-warrior")
		require.NoError(t, err)
		require.True(t, ok)
	}

	_, err := engine.Claim(context.Background(), user.ID, reward.ID)
	assert.ErrorIs(t, err, ErrAlreadyClaimed)
}
