package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/EcoTrackApp/ecotrack-go/internal/models"
)

// ErrReportNotFound is returned for lookups of missing reports.
var ErrReportNotFound = errors.New("report not found")

// Reports provides access to community environmental reports.
type Reports struct {
	db *pgxpool.Pool
}

// NewReports creates a report store over the given pool.
func NewReports(db *pgxpool.Pool) *Reports {
	return &Reports{db: db}
}

const reportColumns = `
	id, user_id, title, category, location, description,
	likes, likes_count, verifications, verification_count, created_at, updated_at
`

func scanReport(row pgx.Row) (*models.Report, error) {
	var r models.Report
	err := row.Scan(
		&r.ID,
		&r.UserID,
		&r.Title,
		&r.Category,
		&r.Location,
		&r.Description,
		&r.Likes,
		&r.LikesCount,
		&r.Verifications,
		&r.VerificationCount,
		&r.CreatedAt,
		&r.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrReportNotFound
		}
		return nil, fmt.Errorf("failed to scan report: %w", err)
	}
	return &r, nil
}

// Create inserts a new report.
func (s *Reports) Create(ctx context.Context, userID uuid.UUID, title, category, location, description string) (*models.Report, error) {
	query := `
		INSERT INTO reports (
			id, user_id, title, category, location, description,
			likes, likes_count, verifications, verification_count, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, '{}', 0, '{}', 0, NOW(), NOW())
		RETURNING ` + reportColumns

	return scanReport(s.db.QueryRow(ctx, query,
		uuid.New(), userID, title, category, location, description))
}

// GetByID retrieves a report. Returns ErrReportNotFound when absent.
func (s *Reports) GetByID(ctx context.Context, id uuid.UUID) (*models.Report, error) {
	query := `SELECT ` + reportColumns + ` FROM reports WHERE id = $1`
	return scanReport(s.db.QueryRow(ctx, query, id))
}

// List returns reports, newest first, optionally filtered by category.
func (s *Reports) List(ctx context.Context, category string, limit, offset int) ([]models.Report, error) {
	query := `SELECT ` + reportColumns + ` FROM reports`
	params := []interface{}{}

	if category != "" {
		query += ` WHERE category = $1`
		params = append(params, category)
	}
	query += fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d OFFSET $%d`, len(params)+1, len(params)+2)
	params = append(params, limit, offset)

	rows, err := s.db.Query(ctx, query, params...)
	if err != nil {
		return nil, fmt.Errorf("failed to query reports: %w", err)
	}
	defer rows.Close()

	reports := []models.Report{}
	for rows.Next() {
		r, err := scanReport(rows)
		if err != nil {
			return nil, err
		}
		reports = append(reports, *r)
	}
	return reports, rows.Err()
}

// ToggleLike likes or unlikes a report for the user. Returns the report
// owner and whether the report is now liked.
func (s *Reports) ToggleLike(ctx context.Context, reportID, userID uuid.UUID) (ownerID uuid.UUID, liked bool, err error) {
	query := `
		UPDATE reports
		SET likes = CASE WHEN $2 = ANY(likes)
				THEN array_remove(likes, $2)
				ELSE array_append(likes, $2) END,
			likes_count = CASE WHEN $2 = ANY(likes)
				THEN likes_count - 1
				ELSE likes_count + 1 END,
			updated_at = NOW()
		WHERE id = $1
		RETURNING user_id, $2 = ANY(likes)
	`

	err = s.db.QueryRow(ctx, query, reportID, userID).Scan(&ownerID, &liked)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return uuid.Nil, false, ErrReportNotFound
		}
		return uuid.Nil, false, fmt.Errorf("failed to toggle report like: %w", err)
	}
	return ownerID, liked, nil
}

// Verify records a user's verification of a report, once per user.
// Returns false when the user already verified it.
func (s *Reports) Verify(ctx context.Context, reportID, userID uuid.UUID) (bool, error) {
	query := `
		UPDATE reports
		SET verifications = array_append(verifications, $2),
			verification_count = verification_count + 1,
			updated_at = NOW()
		WHERE id = $1 AND NOT ($2 = ANY(verifications))
	`

	tag, err := s.db.Exec(ctx, query, reportID, userID)
	if err != nil {
		return false, fmt.Errorf("failed to verify report: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// DeleteByUser removes all reports owned by a user.
func (s *Reports) DeleteByUser(ctx context.Context, userID uuid.UUID) error {
	if _, err := s.db.Exec(ctx, `DELETE FROM reports WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("failed to delete user reports: %w", err)
	}
	return nil
}

// Count returns the total number of reports.
func (s *Reports) Count(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRow(ctx, `SELECT COUNT(*) FROM reports`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count reports: %w", err)
	}
	return count, nil
}
