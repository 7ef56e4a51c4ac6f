package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/EcoTrackApp/ecotrack-go/internal/gamify"
	"github.com/EcoTrackApp/ecotrack-go/internal/models"
	"github.com/EcoTrackApp/ecotrack-go/internal/store"
)

// Points credited for social activity.
const (
	pointsPerPost         = 10
	pointsPerReport       = 20
	pointsPerLikeOwner    = 5
	pointsPerVerification = 5
)

type CreatePostRequest struct {
	Content string `json:"content" binding:"required"`
}

// CreatePost publishes a post and credits the author.
func CreatePost(posts *store.Posts, ledger *gamify.Ledger) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middlewareUserID(c)
		if !ok {
			return
		}

		var req CreatePostRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
			return
		}

		content := strings.TrimSpace(req.Content)
		if content == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Post content cannot be empty"})
			return
		}
		if len(content) > 2000 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Post content too long (max 2000 characters)"})
			return
		}

		post, err := posts.Create(c.Request.Context(), userID, content)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create post", "details": err.Error()})
			return
		}

		ledger.AddPoints(c.Request.Context(), userID, pointsPerPost)

		c.JSON(http.StatusCreated, gin.H{
			"message":       "Post created successfully",
			"post_id":       post.ID,
			"points_earned": pointsPerPost,
		})
	}
}

// ListPosts returns the social feed enriched with author summaries.
// Supports sort=recent|trending and an optional user_id filter.
func ListPosts(posts *store.Posts, users *store.Users) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := middlewareUserID(c); !ok {
			return
		}

		sort := c.DefaultQuery("sort", "recent")
		if sort != "recent" && sort != "trending" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid sort. Must be one of: recent, trending"})
			return
		}

		var filterID *uuid.UUID
		if raw := c.Query("user_id"); raw != "" {
			id, err := uuid.Parse(raw)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID format"})
				return
			}
			filterID = &id
		}

		page, limit, offset := pagination(c, 20)

		feed, err := posts.List(c.Request.Context(), filterID, sort, limit, offset)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get posts", "details": err.Error()})
			return
		}

		authors := loadAuthors(c, users, postAuthorIDs(feed))

		responses := make([]models.PostResponse, 0, len(feed))
		for i := range feed {
			responses = append(responses, feed[i].ToResponse(authors[feed[i].UserID]))
		}

		c.JSON(http.StatusOK, gin.H{
			"posts": responses,
			"page":  page,
			"limit": limit,
			"sort":  sort,
		})
	}
}

// LikePost toggles the requester's like on a post. A new like credits the
// post owner and notifies them.
func LikePost(posts *store.Posts, users *store.Users, ledger *gamify.Ledger, notifier gamify.Notifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middlewareUserID(c)
		if !ok {
			return
		}

		postID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post ID format"})
			return
		}

		ownerID, liked, err := posts.ToggleLike(c.Request.Context(), postID, userID)
		if err != nil {
			if errors.Is(err, store.ErrPostNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to like post", "details": err.Error()})
			}
			return
		}

		// Liking someone else's post credits the owner once per like.
		if liked && ownerID != userID {
			ledger.AddPoints(c.Request.Context(), ownerID, pointsPerLikeOwner)

			likerName := "Someone"
			if liker, err := users.GetByID(c.Request.Context(), userID); err == nil {
				likerName = liker.Name
			}
			_ = notifier.Notify(c.Request.Context(), ownerID,
				"New Like!",
				fmt.Sprintf("%s liked your post", likerName),
				models.NotificationTypePost,
				map[string]interface{}{"post_id": postID.String()},
			)
		}

		message := "Post liked"
		if !liked {
			message = "Post unliked"
		}
		c.JSON(http.StatusOK, gin.H{"message": message, "liked": liked})
	}
}

// postAuthorIDs collects the distinct author IDs from a feed page.
func postAuthorIDs(feed []models.Post) []uuid.UUID {
	seen := map[uuid.UUID]bool{}
	ids := []uuid.UUID{}
	for i := range feed {
		if !seen[feed[i].UserID] {
			seen[feed[i].UserID] = true
			ids = append(ids, feed[i].UserID)
		}
	}
	return ids
}

// loadAuthors fetches the given users in one query and indexes them by ID.
// Missing authors are simply absent from the map.
func loadAuthors(c *gin.Context, users *store.Users, ids []uuid.UUID) map[uuid.UUID]*models.User {
	authors := map[uuid.UUID]*models.User{}
	if len(ids) == 0 {
		return authors
	}
	list, err := users.ListByIDs(c.Request.Context(), ids)
	if err != nil {
		return authors
	}
	for i := range list {
		authors[list[i].ID] = &list[i]
	}
	return authors
}
