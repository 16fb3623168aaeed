package goals

import "errors"

var (
	ErrGoalNotFound  = errors.New("goal not found")
	ErrNameRequired  = errors.New("name is required")
	ErrInvalidTarget = errors.New("target must be positive")
	ErrInvalidAmount = errors.New("amount must be positive")
)
