package sessionRepo

import (
	"context"
	"fmt"
	"time"

	"pitchside/database"
	"pitchside/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoSessionRepo implements SessionRepository using MongoDB.
type MongoSessionRepo struct {
	sessionColl    *mongo.Collection
	enrollmentColl *mongo.Collection
}

// NewMongoSessionRepo constructs a new instance of MongoSessionRepo.
func NewMongoSessionRepo() SessionRepository {
	db := database.DB()
	return &MongoSessionRepo{
		sessionColl:    db.Collection("sessions"),
		enrollmentColl: db.Collection("enrollments"),
	}
}

// GetByID retrieves a session document by ID.
func (repo *MongoSessionRepo) GetByID(ctx context.Context, sessionID string) (*models.Session, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var session models.Session
	filter := bson.M{"id": sessionID}
	if err := repo.sessionColl.FindOne(ctx, filter).Decode(&session); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("error fetching session with id %s: %w", sessionID, err)
	}
	return &session, nil
}

// ListActiveForCoach retrieves all non-cancelled sessions for a coach on a date.
func (repo *MongoSessionRepo) ListActiveForCoach(ctx context.Context, coachID, date string) ([]models.Session, error) {
	filter := bson.M{
		"coachId":       coachID,
		"scheduledDate": date,
		"status":        bson.M{"$ne": models.SessionCancelled},
	}
	return repo.list(ctx, filter)
}

// ListActiveForGround retrieves all non-cancelled sessions for a ground on a date.
func (repo *MongoSessionRepo) ListActiveForGround(ctx context.Context, groundID, date string) ([]models.Session, error) {
	filter := bson.M{
		"groundId":      groundID,
		"scheduledDate": date,
		"status":        bson.M{"$ne": models.SessionCancelled},
	}
	return repo.list(ctx, filter)
}

// ListForEnrollment retrieves all sessions booked against an enrollment,
// cancelled ones included.
func (repo *MongoSessionRepo) ListForEnrollment(ctx context.Context, enrollmentID string) ([]models.Session, error) {
	filter := bson.M{"participants.enrollmentId": enrollmentID}
	return repo.list(ctx, filter)
}

func (repo *MongoSessionRepo) list(ctx context.Context, filter bson.M) ([]models.Session, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := repo.sessionColl.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("error fetching sessions: %w", err)
	}
	defer cursor.Close(ctx)

	var sessions []models.Session
	if err := cursor.All(ctx, &sessions); err != nil {
		return nil, fmt.Errorf("error decoding sessions: %w", err)
	}
	return sessions, nil
}

// CountActiveForEnrollment counts non-cancelled sessions referencing the enrollment.
func (repo *MongoSessionRepo) CountActiveForEnrollment(ctx context.Context, enrollmentID string) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"participants.enrollmentId": enrollmentID,
		"status":                    bson.M{"$ne": models.SessionCancelled},
	}
	count, err := repo.sessionColl.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("error counting sessions for enrollment %s: %w", enrollmentID, err)
	}
	return int(count), nil
}

// CountAttendedForEnrollment counts attended participant entries across the
// enrollment's non-cancelled sessions.
func (repo *MongoSessionRepo) CountAttendedForEnrollment(ctx context.Context, enrollmentID string) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{
			"participants.enrollmentId": enrollmentID,
			"status":                    bson.M{"$ne": models.SessionCancelled},
		}}},
		bson.D{{Key: "$unwind", Value: "$participants"}},
		bson.D{{Key: "$match", Value: bson.M{
			"participants.enrollmentId": enrollmentID,
			"participants.attended":     true,
		}}},
		bson.D{{Key: "$count", Value: "attended"}},
	}

	cursor, err := repo.sessionColl.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, fmt.Errorf("error counting attended sessions for enrollment %s: %w", enrollmentID, err)
	}
	defer cursor.Close(ctx)

	var result []struct {
		Attended int `bson:"attended"`
	}
	if err := cursor.All(ctx, &result); err != nil {
		return 0, fmt.Errorf("error decoding attended count: %w", err)
	}
	if len(result) == 0 {
		return 0, nil
	}
	return result[0].Attended, nil
}
