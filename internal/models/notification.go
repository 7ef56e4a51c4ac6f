package models

import (
	"time"

	"github.com/google/uuid"
)

// Notification types emitted by the platform
const (
	NotificationTypeReward      = "reward"
	NotificationTypeAchievement = "achievement"
	NotificationTypePost        = "post"
	NotificationTypeReport      = "report"
)

// Notification represents an in-app notification for a user
type Notification struct {
	ID        uuid.UUID              `json:"id" db:"id"`
	UserID    uuid.UUID              `json:"user_id" db:"user_id"`
	Title     string                 `json:"title" db:"title"`
	Message   string                 `json:"message" db:"message"`
	Type      string                 `json:"type" db:"type"`
	Data      map[string]interface{} `json:"data" db:"data"` // jsonb payload
	IsRead    bool                   `json:"is_read" db:"is_read"`
	CreatedAt time.Time              `json:"created_at" db:"created_at"`
}

// NotificationResponse is the API response format
type NotificationResponse struct {
	ID        uuid.UUID              `json:"notification_id"`
	Title     string                 `json:"title"`
	Message   string                 `json:"message"`
	Type      string                 `json:"type"`
	Data      map[string]interface{} `json:"data"`
	IsRead    bool                   `json:"is_read"`
	CreatedAt string                 `json:"created_at"`
}

// ToResponse converts Notification to NotificationResponse
func (n *Notification) ToResponse() NotificationResponse {
	data := n.Data
	if data == nil {
		data = map[string]interface{}{}
	}
	return NotificationResponse{
		ID:        n.ID,
		Title:     n.Title,
		Message:   n.Message,
		Type:      n.Type,
		Data:      data,
		IsRead:    n.IsRead,
		CreatedAt: n.CreatedAt.Format(time.RFC3339),
	}
}
