package gamify

import (
	"errors"
	"fmt"
)

var (
	ErrUserNotFound   = errors.New("user not found")
	ErrRewardNotFound = errors.New("reward not found")
	ErrAlreadyClaimed = errors.New("reward already claimed")
)

// InsufficientPointsError reports a claim attempt against a balance that
// does not cover the reward cost.
type InsufficientPointsError struct {
	Required int
	Held     int
}

func (e *InsufficientPointsError) Error() string {
	return fmt.Sprintf("insufficient points: need %d, have %d", e.Required, e.Held)
}

// TaskIncompleteError reports a claim attempt for a reward whose qualifying
// task the user has not completed. Description echoes the reward's
// human-readable requirement.
type TaskIncompleteError struct {
	Description string
}

func (e *TaskIncompleteError) Error() string {
	return fmt.Sprintf("task not completed. Required: %s", e.Description)
}
