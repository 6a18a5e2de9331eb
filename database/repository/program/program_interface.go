package programRepo

import (
	"context"

	"pitchside/models"
)

// ProgramRepository persists coaching programs. The scheduling core only
// reads them for caps and cadence.
type ProgramRepository interface {
	Create(ctx context.Context, program *models.CoachingProgram) error
	GetByID(ctx context.Context, programID string) (*models.CoachingProgram, error)
}
