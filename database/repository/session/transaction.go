package sessionRepo

import (
	"context"
	"fmt"
	"time"

	"pitchside/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// CreateWithProgress inserts the session and writes the enrollment's
// recomputed progress inside one MongoDB transaction, so booking a session
// and crediting progress commit or fail as a unit. A duplicate-key failure
// on the unique ground-slot index is mapped to ErrSlotTaken.
func (repo *MongoSessionRepo) CreateWithProgress(
	ctx context.Context,
	session *models.Session,
	enrollmentID string,
	progress models.EnrollmentProgress,
) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client := repo.sessionColl.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	txnFn := func(sc mongo.SessionContext) error {
		if _, err := repo.sessionColl.InsertOne(sc, session); err != nil {
			if mongo.IsDuplicateKeyError(err) {
				return ErrSlotTaken
			}
			return fmt.Errorf("insert session failed: %w", err)
		}

		filter := bson.M{"id": enrollmentID}
		update := bson.M{"$set": bson.M{"progress": progress}}
		res, err := repo.enrollmentColl.UpdateOne(sc, filter, update)
		if err != nil {
			return fmt.Errorf("update enrollment progress failed: %w", err)
		}
		if res.MatchedCount == 0 {
			return fmt.Errorf("enrollment %s not found during booking commit", enrollmentID)
		}
		return nil
	}

	if err := mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sess.StartTransaction(); err != nil {
			return fmt.Errorf("could not start transaction: %w", err)
		}
		if err := txnFn(sc); err != nil {
			_ = sess.AbortTransaction(sc)
			return err
		}
		return sess.CommitTransaction(sc)
	}); err != nil {
		return err
	}
	return nil
}
