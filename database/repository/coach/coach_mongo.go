package coachRepo

import (
	"context"
	"fmt"
	"time"

	"pitchside/database"
	"pitchside/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoCoachRepo implements CoachRepository using MongoDB.
type MongoCoachRepo struct {
	coll *mongo.Collection
}

// NewMongoCoachRepo constructs a new instance of MongoCoachRepo.
func NewMongoCoachRepo() CoachRepository {
	return &MongoCoachRepo{coll: database.DB().Collection("coaches")}
}

// Create inserts a new coach document.
func (repo *MongoCoachRepo) Create(ctx context.Context, coach *models.Coach) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := repo.coll.InsertOne(ctx, coach); err != nil {
		return fmt.Errorf("error creating coach: %w", err)
	}
	return nil
}

// GetByID retrieves a coach document by ID.
func (repo *MongoCoachRepo) GetByID(ctx context.Context, coachID string) (*models.Coach, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var coach models.Coach
	if err := repo.coll.FindOne(ctx, bson.M{"id": coachID}).Decode(&coach); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("error fetching coach with id %s: %w", coachID, err)
	}
	return &coach, nil
}

// ReplaceAvailability swaps the coach's weekly availability rules.
func (repo *MongoCoachRepo) ReplaceAvailability(ctx context.Context, coachID string, rules []models.AvailabilityRule) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"id": coachID}
	update := bson.M{"$set": bson.M{"availability": rules}}
	res, err := repo.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("error updating availability for coach %s: %w", coachID, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("coach %s not found", coachID)
	}
	return nil
}
