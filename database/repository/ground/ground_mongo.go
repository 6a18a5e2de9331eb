package groundRepo

import (
	"context"
	"fmt"
	"time"

	"pitchside/config"
	"pitchside/database"
	"pitchside/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoGroundRepo implements GroundRepository using MongoDB.
type MongoGroundRepo struct {
	coll *mongo.Collection
}

// NewMongoGroundRepo constructs a new instance of MongoGroundRepo.
func NewMongoGroundRepo() GroundRepository {
	return &MongoGroundRepo{coll: database.DB().Collection("grounds")}
}

// Create inserts a new ground document.
func (repo *MongoGroundRepo) Create(ctx context.Context, ground *models.Ground) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := repo.coll.InsertOne(ctx, ground); err != nil {
		return fmt.Errorf("error creating ground: %w", err)
	}
	return nil
}

// GetByID retrieves a ground document by ID.
func (repo *MongoGroundRepo) GetByID(ctx context.Context, groundID string) (*models.Ground, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var ground models.Ground
	if err := repo.coll.FindOne(ctx, bson.M{"id": groundID}).Decode(&ground); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("error fetching ground with id %s: %w", groundID, err)
	}
	return &ground, nil
}

// GetDefault returns the first ground on record, auto-provisioning the
// configured default ground when the collection is empty.
func (repo *MongoGroundRepo) GetDefault(ctx context.Context) (*models.Ground, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var ground models.Ground
	err := repo.coll.FindOne(ctx, bson.M{}).Decode(&ground)
	if err == nil {
		return &ground, nil
	}
	if err != mongo.ErrNoDocuments {
		return nil, fmt.Errorf("error fetching default ground: %w", err)
	}

	slots := config.AppConfig.DefaultGroundSlots
	if slots <= 0 {
		slots = 4
	}
	ground = models.Ground{
		ID:         uuid.New().String(),
		Name:       config.AppConfig.DefaultGroundName,
		TotalSlots: slots,
		CreatedAt:  time.Now(),
	}
	if _, err := repo.coll.InsertOne(ctx, ground); err != nil {
		return nil, fmt.Errorf("error provisioning default ground: %w", err)
	}
	return &ground, nil
}
