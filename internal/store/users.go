// Package store implements Postgres persistence for the EcoTrack API,
// including the store contracts consumed by the gamify rule engine.
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

// Users provides access to user records and the per-user ledger fields.
type Users struct {
	db *pgxpool.Pool
}

// NewUsers creates a user store over the given pool.
func NewUsers(db *pgxpool.Pool) *Users {
	return &Users{db: db}
}

const userColumns = `
	id, name, email, password_hash, role, points, level, badges,
	carbon_footprint_saved, profile_picture_url, followers, following,
	created_at, updated_at
`

func scanUser(row pgx.Row) (*models.User, error) {
	var u models.User
	err := row.Scan(
		&u.ID,
		&u.Name,
		&u.Email,
		&u.PasswordHash,
		&u.Role,
		&u.Points,
		&u.Level,
		&u.Badges,
		&u.CarbonSaved,
		&u.ProfilePictureURL,
		&u.Followers,
		&u.Following,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, gamify.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to scan user: %w", err)
	}
	return &u, nil
}

// Create inserts a new user with a zeroed ledger (0 points, level 1, no
// badges, no carbon saved).
func (s *Users) Create(ctx context.Context, name, email, passwordHash string) (*models.User, error) {
	query := `
		INSERT INTO users (
			id, name, email, password_hash, role, points, level, badges,
			carbon_footprint_saved, followers, following, created_at, updated_at
		) VALUES ($1, $2, $3, $4, 'user', 0, 1, '{}', 0, '{}', '{}', NOW(), NOW())
		RETURNING ` + userColumns

	return scanUser(s.db.QueryRow(ctx, query, uuid.New(), name, email, passwordHash))
}

// GetByID retrieves a user by id. Returns gamify.ErrUserNotFound when absent.
func (s *Users) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(s.db.QueryRow(ctx, query, id))
}

// GetByEmail retrieves a user by email (case-insensitive).
func (s *Users) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE LOWER(email) = LOWER($1)`
	return scanUser(s.db.QueryRow(ctx, query, email))
}

// AddPoints atomically increments the point balance and recomputes the
// level from the new balance in the same statement, so the level is always
// a pure function of points.
func (s *Users) AddPoints(ctx context.Context, id uuid.UUID, delta int) (bool, error) {
	query := `
		UPDATE users
		SET points = points + $2,
			level = GREATEST(1, (points + $2) / 100),
			updated_at = NOW()
		WHERE id = $1
	`

	tag, err := s.db.Exec(ctx, query, id, delta)
	if err != nil {
		return false, fmt.Errorf("failed to add points: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// AddCarbonSavings atomically increments the saved-carbon accumulator.
func (s *Users) AddCarbonSavings(ctx context.Context, id uuid.UUID, kg float64) (bool, error) {
	query := `
		UPDATE users
		SET carbon_footprint_saved = carbon_footprint_saved + $2,
			updated_at = NOW()
		WHERE id = $1
	`

	tag, err := s.db.Exec(ctx, query, id, kg)
	if err != nil {
		return false, fmt.Errorf("failed to add carbon savings: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// ApplyClaim performs the reward claim transition as one conditional
// update: the deduction and badge append only happen if the balance still
// covers the cost and the badge is still absent. A zero effect count tells
// the caller a concurrent claim won the race.
func (s *Users) ApplyClaim(ctx context.Context, id uuid.UUID, cost int, badge string) (bool, error) {
	query := `
		UPDATE users
		SET points = points - $2,
			level = GREATEST(1, (points - $2) / 100),
			badges = CASE WHEN $3 <> '' THEN array_append(badges, $3) ELSE badges END,
			updated_at = NOW()
		WHERE id = $1
		  AND points >= $2
		  AND ($3 = '' OR NOT ($3 = ANY(badges)))
	`

	tag, err := s.db.Exec(ctx, query, id, cost, badge)
	if err != nil {
		return false, fmt.Errorf("failed to apply claim: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// UpdateProfile updates the editable profile fields. Nil fields are left
// unchanged. Returns false when the user does not exist.
func (s *Users) UpdateProfile(ctx context.Context, id uuid.UUID, name, profilePictureURL *string) (bool, error) {
	query := `
		UPDATE users
		SET name = COALESCE($2, name),
			profile_picture_url = COALESCE($3, profile_picture_url),
			updated_at = NOW()
		WHERE id = $1
	`

	tag, err := s.db.Exec(ctx, query, id, name, profilePictureURL)
	if err != nil {
		return false, fmt.Errorf("failed to update profile: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// SetFollow adds or removes the follow edge between two users, updating
// both adjacency arrays.
func (s *Users) SetFollow(ctx context.Context, followerID, targetID uuid.UUID, follow bool) error {
	var followingUpdate, followersUpdate string
	if follow {
		followingUpdate = `array_append(following, $2)`
		followersUpdate = `array_append(followers, $2)`
	} else {
		followingUpdate = `array_remove(following, $2)`
		followersUpdate = `array_remove(followers, $2)`
	}

	_, err := s.db.Exec(ctx,
		`UPDATE users SET following = `+followingUpdate+`, updated_at = NOW()
		 WHERE id = $1 AND ($2 = ANY(following)) != $3`,
		followerID, targetID, follow,
	)
	if err != nil {
		return fmt.Errorf("failed to update following: %w", err)
	}

	_, err = s.db.Exec(ctx,
		`UPDATE users SET followers = `+followersUpdate+`, updated_at = NOW()
		 WHERE id = $1 AND ($2 = ANY(followers)) != $3`,
		targetID, followerID, follow,
	)
	if err != nil {
		return fmt.Errorf("failed to update followers: %w", err)
	}
	return nil
}

// Leaderboard returns users ordered for the requested leaderboard sort.
func (s *Users) Leaderboard(ctx context.Context, sortBy string, limit, offset int) ([]models.User, error) {
	var order string
	switch sortBy {
	case "carbon_saved":
		order = "carbon_footprint_saved DESC, points DESC"
	case "level":
		order = "level DESC, points DESC"
	default: // points
		order = "points DESC, level DESC"
	}

	query := `SELECT ` + userColumns + ` FROM users ORDER BY ` + order + ` LIMIT $1 OFFSET $2`
	return s.queryUsers(ctx, query, limit, offset)
}

// ListByIDs returns the given users ordered by points descending.
func (s *Users) ListByIDs(ctx context.Context, ids []uuid.UUID) ([]models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = ANY($1) ORDER BY points DESC`
	return s.queryUsers(ctx, query, ids)
}

// List returns users ordered by registration date, newest first.
func (s *Users) List(ctx context.Context, limit, offset int) ([]models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	return s.queryUsers(ctx, query, limit, offset)
}

func (s *Users) queryUsers(ctx context.Context, query string, args ...interface{}) ([]models.User, error) {
	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}

// Delete removes a user. Returns false when the user does not exist.
func (s *Users) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := s.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete user: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// Stats returns the user count and the platform-wide carbon saved total.
func (s *Users) Stats(ctx context.Context) (count int, totalCarbonSaved float64, err error) {
	err = s.db.QueryRow(ctx,
		`SELECT COUNT(*), COALESCE(SUM(carbon_footprint_saved), 0) FROM users`,
	).Scan(&count, &totalCarbonSaved)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to query user stats: %w", err)
	}
	return count, totalCarbonSaved, nil
}
