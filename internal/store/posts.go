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

// ErrPostNotFound is returned for lookups of missing posts.
var ErrPostNotFound = errors.New("post not found")

// Posts provides access to social feed posts.
type Posts struct {
	db *pgxpool.Pool
}

// NewPosts creates a post store over the given pool.
func NewPosts(db *pgxpool.Pool) *Posts {
	return &Posts{db: db}
}

const postColumns = `
	id, user_id, content, likes, likes_count, created_at, updated_at
`

func scanPost(row pgx.Row) (*models.Post, error) {
	var p models.Post
	err := row.Scan(
		&p.ID,
		&p.UserID,
		&p.Content,
		&p.Likes,
		&p.LikesCount,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPostNotFound
		}
		return nil, fmt.Errorf("failed to scan post: %w", err)
	}
	return &p, nil
}

// Create inserts a new post.
func (s *Posts) Create(ctx context.Context, userID uuid.UUID, content string) (*models.Post, error) {
	query := `
		INSERT INTO posts (id, user_id, content, likes, likes_count, created_at, updated_at)
		VALUES ($1, $2, $3, '{}', 0, NOW(), NOW())
		RETURNING ` + postColumns

	return scanPost(s.db.QueryRow(ctx, query, uuid.New(), userID, content))
}

// List returns posts for the feed. When userID is non-nil only that user's
// posts are returned. sort is "recent" or "trending".
func (s *Posts) List(ctx context.Context, userID *uuid.UUID, sort string, limit, offset int) ([]models.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts`
	params := []interface{}{}

	if userID != nil {
		query += ` WHERE user_id = $1`
		params = append(params, *userID)
	}

	if sort == "trending" {
		query += ` ORDER BY likes_count DESC, created_at DESC`
	} else {
		query += ` ORDER BY created_at DESC`
	}
	query += fmt.Sprintf(` LIMIT $%d OFFSET $%d`, len(params)+1, len(params)+2)
	params = append(params, limit, offset)

	rows, err := s.db.Query(ctx, query, params...)
	if err != nil {
		return nil, fmt.Errorf("failed to query posts: %w", err)
	}
	defer rows.Close()

	posts := []models.Post{}
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, *p)
	}
	return posts, rows.Err()
}

// ToggleLike likes the post when the user has not liked it, unlikes it
// otherwise. Returns the post owner and whether the post is now liked.
// The membership test and counter move in one statement so concurrent
// toggles cannot skew likes_count.
func (s *Posts) ToggleLike(ctx context.Context, postID, userID uuid.UUID) (ownerID uuid.UUID, liked bool, err error) {
	query := `
		UPDATE posts
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

	err = s.db.QueryRow(ctx, query, postID, userID).Scan(&ownerID, &liked)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return uuid.Nil, false, ErrPostNotFound
		}
		return uuid.Nil, false, fmt.Errorf("failed to toggle post like: %w", err)
	}
	return ownerID, liked, nil
}

// DeleteByUser removes all posts owned by a user.
func (s *Posts) DeleteByUser(ctx context.Context, userID uuid.UUID) error {
	if _, err := s.db.Exec(ctx, `DELETE FROM posts WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("failed to delete user posts: %w", err)
	}
	return nil
}

// Count returns the total number of posts.
func (s *Posts) Count(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRow(ctx, `SELECT COUNT(*) FROM posts`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count posts: %w", err)
	}
	return count, nil
}
