package enrollmentRepo

import (
	"context"

	"pitchside/models"
)

// EnrollmentRepository persists program enrollments. Progress counters are
// only ever written as recomputed snapshots derived from session records.
type EnrollmentRepository interface {
	Create(ctx context.Context, enrollment *models.Enrollment) error
	GetByID(ctx context.Context, enrollmentID string) (*models.Enrollment, error)
	UpdateProgress(ctx context.Context, enrollmentID string, progress models.EnrollmentProgress) error
}
