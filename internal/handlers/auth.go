package handlers

import (
	"errors"
	"net/http"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/EcoTrackApp/ecotrack-go/internal/auth"
	"github.com/EcoTrackApp/ecotrack-go/internal/gamify"
	"github.com/EcoTrackApp/ecotrack-go/internal/store"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// validatePassword checks minimum password strength: at least 8 characters
// with at least one letter and one number.
func validatePassword(password string) string {
	if len(password) < 8 {
		return "Password must be at least 8 characters long"
	}
	hasLetter := false
	hasDigit := false
	for _, r := range password {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
			hasLetter = true
		case r >= '0' && r <= '9':
			hasDigit = true
		}
	}
	if !hasLetter {
		return "Password must contain at least one letter"
	}
	if !hasDigit {
		return "Password must contain at least one number"
	}
	return ""
}

// Register creates a new user with a zeroed ledger and returns a JWT token
func Register(users *store.Users, jwtService *auth.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
			return
		}

		email := strings.ToLower(strings.TrimSpace(req.Email))
		if !emailRegex.MatchString(email) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid email format"})
			return
		}

		if msg := validatePassword(req.Password); msg != "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": msg})
			return
		}

		// Check if user already exists
		if _, err := users.GetByEmail(c.Request.Context(), email); err == nil {
			c.JSON(http.StatusConflict, gin.H{"error": "User already exists with this email"})
			return
		} else if !errors.Is(err, gamify.ErrUserNotFound) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check existing user", "details": err.Error()})
			return
		}

		passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
			return
		}

		user, err := users.Create(c.Request.Context(), req.Name, email, string(passwordHash))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user", "details": err.Error()})
			return
		}

		token, err := jwtService.GenerateToken(user.ID, user.Email, user.Role)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"message":      "User registered successfully",
			"access_token": token,
			"user": gin.H{
				"user_id": user.ID,
				"name":    user.Name,
				"email":   user.Email,
				"points":  user.Points,
				"level":   user.Level,
			},
		})
	}
}

// Login authenticates a user and returns a JWT token
func Login(users *store.Users, jwtService *auth.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
			return
		}

		user, err := users.GetByEmail(c.Request.Context(), req.Email)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
			return
		}

		token, err := jwtService.GenerateToken(user.ID, user.Email, user.Role)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message":      "Login successful",
			"access_token": token,
			"user": gin.H{
				"user_id": user.ID,
				"name":    user.Name,
				"email":   user.Email,
				"points":  user.Points,
				"level":   user.Level,
			},
		})
	}
}
