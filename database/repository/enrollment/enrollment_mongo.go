package enrollmentRepo

import (
	"context"
	"fmt"
	"time"

	"pitchside/database"
	"pitchside/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoEnrollmentRepo implements EnrollmentRepository using MongoDB.
type MongoEnrollmentRepo struct {
	coll *mongo.Collection
}

// NewMongoEnrollmentRepo constructs a new instance of MongoEnrollmentRepo.
func NewMongoEnrollmentRepo() EnrollmentRepository {
	return &MongoEnrollmentRepo{coll: database.DB().Collection("enrollments")}
}

// Create inserts a new enrollment document.
func (repo *MongoEnrollmentRepo) Create(ctx context.Context, enrollment *models.Enrollment) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := repo.coll.InsertOne(ctx, enrollment); err != nil {
		return fmt.Errorf("error creating enrollment: %w", err)
	}
	return nil
}

// GetByID retrieves an enrollment document by ID.
func (repo *MongoEnrollmentRepo) GetByID(ctx context.Context, enrollmentID string) (*models.Enrollment, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var enrollment models.Enrollment
	if err := repo.coll.FindOne(ctx, bson.M{"id": enrollmentID}).Decode(&enrollment); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("error fetching enrollment with id %s: %w", enrollmentID, err)
	}
	return &enrollment, nil
}

// UpdateProgress writes the enrollment's recomputed progress snapshot.
func (repo *MongoEnrollmentRepo) UpdateProgress(ctx context.Context, enrollmentID string, progress models.EnrollmentProgress) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"id": enrollmentID}
	update := bson.M{"$set": bson.M{"progress": progress}}
	res, err := repo.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("error updating progress for enrollment %s: %w", enrollmentID, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("enrollment %s not found", enrollmentID)
	}
	return nil
}
