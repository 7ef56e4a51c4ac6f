package models

import (
	"time"

	"github.com/google/uuid"
)

// Report represents a community environmental report
type Report struct {
	ID                uuid.UUID   `json:"id" db:"id"`
	UserID            uuid.UUID   `json:"user_id" db:"user_id"`
	Title             string      `json:"title" db:"title"`
	Category          string      `json:"category" db:"category"`
	Location          string      `json:"location" db:"location"`
	Description       string      `json:"description" db:"description"`
	Likes             []uuid.UUID `json:"-" db:"likes"`
	LikesCount        int         `json:"likes_count" db:"likes_count"`
	Verifications     []uuid.UUID `json:"-" db:"verifications"`
	VerificationCount int         `json:"verification_count" db:"verification_count"`
	CreatedAt         time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time   `json:"updated_at" db:"updated_at"`
}

// ReportResponse is the API response format for a report
type ReportResponse struct {
	ID                uuid.UUID `json:"report_id"`
	UserID            uuid.UUID `json:"user_id"`
	Title             string    `json:"title"`
	Category          string    `json:"category"`
	Location          string    `json:"location"`
	Description       string    `json:"description"`
	LikesCount        int       `json:"likes_count"`
	VerificationCount int       `json:"verification_count"`
	CreatedAt         string    `json:"created_at"`
}

// ToResponse converts Report to ReportResponse
func (r *Report) ToResponse() ReportResponse {
	return ReportResponse{
		ID:                r.ID,
		UserID:            r.UserID,
		Title:             r.Title,
		Category:          r.Category,
		Location:          r.Location,
		Description:       r.Description,
		LikesCount:        r.LikesCount,
		VerificationCount: r.VerificationCount,
		CreatedAt:         r.CreatedAt.Format(time.RFC3339),
	}
}
