package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/EcoTrackApp/ecotrack-go/internal/gamify"
	"github.com/EcoTrackApp/ecotrack-go/internal/models"
)

// Rewards provides access to the reward catalog.
type Rewards struct {
	db *pgxpool.Pool
}

// NewRewards creates a reward store over the given pool.
func NewRewards(db *pgxpool.Pool) *Rewards {
	return &Rewards{db: db}
}

const rewardColumns = `
	id, title, description, points_required, badge_name, task_type, task_count, created_at
`

func scanReward(row pgx.Row) (*models.Reward, error) {
	var r models.Reward
	err := row.Scan(
		&r.ID,
		&r.Title,
		&r.Description,
		&r.PointsRequired,
		&r.BadgeName,
		&r.TaskType,
		&r.TaskCount,
		&r.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, gamify.ErrRewardNotFound
		}
		return nil, fmt.Errorf("failed to scan reward: %w", err)
	}
	return &r, nil
}

// Create inserts a new catalog entry.
func (s *Rewards) Create(ctx context.Context, title, description string, pointsRequired int, badgeName *string, taskType string, taskCount float64) (*models.Reward, error) {
	query := `
		INSERT INTO rewards (
			id, title, description, points_required, badge_name, task_type, task_count, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
		RETURNING ` + rewardColumns

	return scanReward(s.db.QueryRow(ctx, query,
		uuid.New(), title, description, pointsRequired, badgeName, taskType, taskCount))
}

// GetByID retrieves a reward. Returns gamify.ErrRewardNotFound when absent.
func (s *Rewards) GetByID(ctx context.Context, id uuid.UUID) (*models.Reward, error) {
	query := `SELECT ` + rewardColumns + ` FROM rewards WHERE id = $1`
	return scanReward(s.db.QueryRow(ctx, query, id))
}

// List returns the full catalog sorted by points required ascending.
func (s *Rewards) List(ctx context.Context) ([]models.Reward, error) {
	query := `SELECT ` + rewardColumns + ` FROM rewards ORDER BY points_required ASC`

	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query rewards: %w", err)
	}
	defer rows.Close()

	rewards := []models.Reward{}
	for rows.Next() {
		r, err := scanReward(rows)
		if err != nil {
			return nil, err
		}
		rewards = append(rewards, *r)
	}
	return rewards, rows.Err()
}

// Count returns the catalog size.
func (s *Rewards) Count(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRow(ctx, `SELECT COUNT(*) FROM rewards`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count rewards: %w", err)
	}
	return count, nil
}
