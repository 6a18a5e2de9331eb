package programRepo

import (
	"context"
	"fmt"
	"time"

	"pitchside/database"
	"pitchside/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoProgramRepo implements ProgramRepository using MongoDB.
type MongoProgramRepo struct {
	coll *mongo.Collection
}

// NewMongoProgramRepo constructs a new instance of MongoProgramRepo.
func NewMongoProgramRepo() ProgramRepository {
	return &MongoProgramRepo{coll: database.DB().Collection("programs")}
}

// Create inserts a new program document.
func (repo *MongoProgramRepo) Create(ctx context.Context, program *models.CoachingProgram) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := repo.coll.InsertOne(ctx, program); err != nil {
		return fmt.Errorf("error creating program: %w", err)
	}
	return nil
}

// GetByID retrieves a program document by ID.
func (repo *MongoProgramRepo) GetByID(ctx context.Context, programID string) (*models.CoachingProgram, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var program models.CoachingProgram
	if err := repo.coll.FindOne(ctx, bson.M{"id": programID}).Decode(&program); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("error fetching program with id %s: %w", programID, err)
	}
	return &program, nil
}
