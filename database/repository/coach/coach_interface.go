package coachRepo

import (
	"context"

	"pitchside/models"
)

// CoachRepository persists coaches and their recurring availability rules.
type CoachRepository interface {
	Create(ctx context.Context, coach *models.Coach) error
	GetByID(ctx context.Context, coachID string) (*models.Coach, error)
	// ReplaceAvailability swaps the coach's full weekly rule set
	// (profile-edit semantics; rules have no end date).
	ReplaceAvailability(ctx context.Context, coachID string, rules []models.AvailabilityRule) error
}
