package sessionRepo

import (
	"context"
	"fmt"
	"time"

	"pitchside/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the necessary indexes on the sessions collection.
// The partial unique index is the authoritative double-booking guard: the
// availability pre-checks only serve as a UX filter, the index closes the
// check-then-write race.
func (repo *MongoSessionRepo) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		// Unique index on session ID.
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		// One active session per (ground, slot, date, startTime).
		{
			Keys: bson.D{
				{Key: "groundId", Value: 1},
				{Key: "groundSlot", Value: 1},
				{Key: "scheduledDate", Value: 1},
				{Key: "startTime", Value: 1},
			},
			Options: options.Index().
				SetUnique(true).
				SetName("unique_ground_slot_time").
				SetPartialFilterExpression(bson.M{
					"status": bson.M{"$ne": models.SessionCancelled},
				}),
		},
		// Compound index for coachId and date (availability query pattern).
		{
			Keys:    bson.D{{Key: "coachId", Value: 1}, {Key: "scheduledDate", Value: 1}},
			Options: options.Index().SetName("coach_date_idx"),
		},
		// Compound index for groundId and date (conflict query pattern).
		{
			Keys:    bson.D{{Key: "groundId", Value: 1}, {Key: "scheduledDate", Value: 1}},
			Options: options.Index().SetName("ground_date_idx"),
		},
		// Enrollment lookups for caps and progress recomputes.
		{
			Keys:    bson.D{{Key: "participants.enrollmentId", Value: 1}},
			Options: options.Index().SetName("enrollment_idx"),
		},
	}

	_, err := repo.sessionColl.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create session indexes: %w", err)
	}
	return nil
}
