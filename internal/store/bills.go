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

// ErrBillNotFound is returned for lookups of missing bills.
var ErrBillNotFound = errors.New("bill not found")

// Bills provides access to utility bill records.
type Bills struct {
	db *pgxpool.Pool
}

// NewBills creates a bill store over the given pool.
func NewBills(db *pgxpool.Pool) *Bills {
	return &Bills{db: db}
}

const billColumns = `
	id, user_id, bill_type, usage_amount, usage_unit, cost, billing_period, created_at, updated_at
`

func scanBill(row pgx.Row) (*models.UtilityBill, error) {
	var b models.UtilityBill
	err := row.Scan(
		&b.ID,
		&b.UserID,
		&b.BillType,
		&b.UsageAmount,
		&b.UsageUnit,
		&b.Cost,
		&b.BillingPeriod,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrBillNotFound
		}
		return nil, fmt.Errorf("failed to scan bill: %w", err)
	}
	return &b, nil
}

// Insert records a new bill.
func (s *Bills) Insert(ctx context.Context, userID uuid.UUID, billType string, usageAmount float64, usageUnit string, cost float64, billingPeriod string) (*models.UtilityBill, error) {
	query := `
		INSERT INTO bills (
			id, user_id, bill_type, usage_amount, usage_unit, cost, billing_period, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		RETURNING ` + billColumns

	return scanBill(s.db.QueryRow(ctx, query,
		uuid.New(), userID, billType, usageAmount, usageUnit, cost, billingPeriod))
}

// GetByID retrieves a bill. Returns ErrBillNotFound when absent.
func (s *Bills) GetByID(ctx context.Context, id uuid.UUID) (*models.UtilityBill, error) {
	query := `SELECT ` + billColumns + ` FROM bills WHERE id = $1`
	return scanBill(s.db.QueryRow(ctx, query, id))
}

// Update changes the user-editable fields of a bill. Nil fields are left
// unchanged. Returns false when the bill does not exist.
func (s *Bills) Update(ctx context.Context, id uuid.UUID, usageAmount *float64, usageUnit *string, cost *float64, billingPeriod *string) (bool, error) {
	query := `
		UPDATE bills
		SET usage_amount = COALESCE($2, usage_amount),
			usage_unit = COALESCE($3, usage_unit),
			cost = COALESCE($4, cost),
			billing_period = COALESCE($5, billing_period),
			updated_at = NOW()
		WHERE id = $1
	`

	tag, err := s.db.Exec(ctx, query, id, usageAmount, usageUnit, cost, billingPeriod)
	if err != nil {
		return false, fmt.Errorf("failed to update bill: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// Delete removes a bill. Returns false when the bill does not exist.
func (s *Bills) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := s.db.Exec(ctx, `DELETE FROM bills WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete bill: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// ListByUser returns a user's bills, newest first, optionally filtered by
// type.
func (s *Bills) ListByUser(ctx context.Context, userID uuid.UUID, billType string, limit, offset int) ([]models.UtilityBill, error) {
	query := `SELECT ` + billColumns + ` FROM bills WHERE user_id = $1`
	params := []interface{}{userID}

	if billType != "" {
		query += ` AND bill_type = $2`
		params = append(params, billType)
	}
	query += fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d OFFSET $%d`, len(params)+1, len(params)+2)
	params = append(params, limit, offset)

	return s.queryBills(ctx, query, params...)
}

// AllByUserAndType returns every bill for (user, type), newest first.
func (s *Bills) AllByUserAndType(ctx context.Context, userID uuid.UUID, billType string) ([]models.UtilityBill, error) {
	query := `SELECT ` + billColumns + `
		FROM bills WHERE user_id = $1 AND bill_type = $2
		ORDER BY created_at DESC`
	return s.queryBills(ctx, query, userID, billType)
}

// LastTwo returns up to two most recent bills for (user, type), newest
// first, for the usage comparator.
func (s *Bills) LastTwo(ctx context.Context, userID uuid.UUID, billType string) ([]models.UtilityBill, error) {
	query := `SELECT ` + billColumns + `
		FROM bills WHERE user_id = $1 AND bill_type = $2
		ORDER BY created_at DESC LIMIT 2`
	return s.queryBills(ctx, query, userID, billType)
}

func (s *Bills) queryBills(ctx context.Context, query string, args ...interface{}) ([]models.UtilityBill, error) {
	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query bills: %w", err)
	}
	defer rows.Close()

	bills := []models.UtilityBill{}
	for rows.Next() {
		b, err := scanBill(rows)
		if err != nil {
			return nil, err
		}
		bills = append(bills, *b)
	}
	return bills, rows.Err()
}
