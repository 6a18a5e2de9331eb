package groundRepo

import (
	"context"

	"pitchside/models"
)

// GroundRepository persists grounds. Read-only from the scheduler's
// perspective, except for the default-ground auto-provision path.
type GroundRepository interface {
	Create(ctx context.Context, ground *models.Ground) error
	GetByID(ctx context.Context, groundID string) (*models.Ground, error)
	// GetDefault returns the first ground on record, creating the configured
	// default ground when none exists yet.
	GetDefault(ctx context.Context) (*models.Ground, error)
}
