package models

import (
	"time"

	"github.com/google/uuid"
)

// Post represents a social feed post
type Post struct {
	ID         uuid.UUID   `json:"id" db:"id"`
	UserID     uuid.UUID   `json:"user_id" db:"user_id"`
	Content    string      `json:"content" db:"content"`
	Likes      []uuid.UUID `json:"-" db:"likes"`
	LikesCount int         `json:"likes_count" db:"likes_count"`
	CreatedAt  time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at" db:"updated_at"`
}

// PostResponse is the API response format, enriched with author info
type PostResponse struct {
	ID         uuid.UUID  `json:"post_id"`
	Content    string     `json:"content"`
	LikesCount int        `json:"likes_count"`
	CreatedAt  string     `json:"created_at"`
	Author     PostAuthor `json:"user"`
}

// PostAuthor is the embedded author summary on a post
type PostAuthor struct {
	ID    uuid.UUID `json:"user_id"`
	Name  string    `json:"name"`
	Level int       `json:"level"`
}

// ToResponse converts Post to PostResponse
func (p *Post) ToResponse(author *User) PostResponse {
	resp := PostResponse{
		ID:         p.ID,
		Content:    p.Content,
		LikesCount: p.LikesCount,
		CreatedAt:  p.CreatedAt.Format(time.RFC3339),
	}
	if author != nil {
		resp.Author = PostAuthor{ID: author.ID, Name: author.Name, Level: author.Level}
	}
	return resp
}
