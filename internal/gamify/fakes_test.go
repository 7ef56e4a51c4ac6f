package gamify

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/EcoTrackApp/ecotrack-go/internal/models"
)

// fakeUserStore is an in-memory UserStore with injectable failures.
type fakeUserStore struct {
	mu    sync.Mutex
	users map[uuid.UUID]*models.User
	err   error // returned from every method when set

	// beforeApply, when set, runs once at the start of the next ApplyClaim
	// call, letting tests interleave a competing update.
	beforeApply func()
}

func newFakeUserStore(users ...*models.User) *fakeUserStore {
	s := &fakeUserStore{users: make(map[uuid.UUID]*models.User)}
	for _, u := range users {
		s.users[u.ID] = u
	}
	return s
}

func (s *fakeUserStore) GetByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	u, ok := s.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	clone := *u
	clone.Badges = append([]string(nil), u.Badges...)
	return &clone, nil
}

func (s *fakeUserStore) AddPoints(_ context.Context, id uuid.UUID, delta int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return false, s.err
	}
	u, ok := s.users[id]
	if !ok {
		return false, nil
	}
	u.Points += delta
	u.Level = LevelForPoints(u.Points)
	return true, nil
}

func (s *fakeUserStore) AddCarbonSavings(_ context.Context, id uuid.UUID, kg float64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return false, s.err
	}
	u, ok := s.users[id]
	if !ok {
		return false, nil
	}
	u.CarbonSaved += kg
	return true, nil
}

func (s *fakeUserStore) ApplyClaim(_ context.Context, id uuid.UUID, cost int, badge string) (bool, error) {
	s.mu.Lock()
	if hook := s.beforeApply; hook != nil {
		s.beforeApply = nil
		s.mu.Unlock()
		hook()
		s.mu.Lock()
	}
	defer s.mu.Unlock()
	if s.err != nil {
		return false, s.err
	}
	u, ok := s.users[id]
	if !ok {
		return false, nil
	}
	if u.Points < cost {
		return false, nil
	}
	if badge != "" {
		for _, b := range u.Badges {
			if b == badge {
				return false, nil
			}
		}
	}
	u.Points -= cost
	u.Level = LevelForPoints(u.Points)
	if badge != "" {
		u.Badges = append(u.Badges, badge)
	}
	return true, nil
}

// fakeRewardStore is an in-memory RewardStore.
type fakeRewardStore struct {
	rewards map[uuid.UUID]*models.Reward
}

func newFakeRewardStore(rewards ...*models.Reward) *fakeRewardStore {
	s := &fakeRewardStore{rewards: make(map[uuid.UUID]*models.Reward)}
	for _, r := range rewards {
		s.rewards[r.ID] = r
	}
	return s
}

func (s *fakeRewardStore) GetByID(_ context.Context, id uuid.UUID) (*models.Reward, error) {
	r, ok := s.rewards[id]
	if !ok {
		return nil, ErrRewardNotFound
	}
	return r, nil
}

// fakeBillStore serves canned bill histories keyed by bill type.
type fakeBillStore struct {
	bills map[string][]models.UtilityBill // newest first
	err   error
}

func (s *fakeBillStore) LastTwo(_ context.Context, _ uuid.UUID, billType string) ([]models.UtilityBill, error) {
	if s.err != nil {
		return nil, s.err
	}
	bills := s.bills[billType]
	if len(bills) > 2 {
		bills = bills[:2]
	}
	return bills, nil
}

// fakeActivityStore serves fixed activity counts.
type fakeActivityStore struct {
	posts   int
	reports int
	bills   int
	likes   int
	err     error
}

func (s *fakeActivityStore) CountPosts(context.Context, uuid.UUID) (int, error) {
	return s.posts, s.err
}

func (s *fakeActivityStore) CountReports(context.Context, uuid.UUID) (int, error) {
	return s.reports, s.err
}

func (s *fakeActivityStore) CountBills(context.Context, uuid.UUID) (int, error) {
	return s.bills, s.err
}

func (s *fakeActivityStore) LikesReceived(context.Context, uuid.UUID) (int, error) {
	return s.likes, s.err
}

// fakeNotifier records notifications.
type fakeNotifier struct {
	mu   sync.Mutex
	sent []fakeNotification
	err  error
}

type fakeNotification struct {
	UserID  uuid.UUID
	Title   string
	Message string
	Type    string
	Data    map[string]interface{}
}

func (n *fakeNotifier) Notify(_ context.Context, userID uuid.UUID, title, message, notificationType string, data map[string]interface{}) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.err != nil {
		return n.err
	}
	n.sent = append(n.sent, fakeNotification{
		UserID: userID, Title: title, Message: message, Type: notificationType, Data: data,
	})
	return nil
}
