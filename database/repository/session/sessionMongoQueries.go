package sessionRepo

import (
	"context"
	"fmt"
	"time"

	"pitchside/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// ApplyReschedule moves a session to a new slot. The filter only matches
// documents whose rescheduled flag is still false, so the false->true
// transition can happen at most once even under concurrent requests.
func (repo *MongoSessionRepo) ApplyReschedule(
	ctx context.Context,
	sessionID string,
	prior models.SessionSlot,
	newDate, newStart, newEnd string,
	newSlot int,
	at time.Time,
) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	newStartAbs, err := combineDateClock(newDate, newStart)
	if err != nil {
		return fmt.Errorf("invalid reschedule target for session %s: %w", sessionID, err)
	}

	filter := bson.M{"id": sessionID, "rescheduled": false}
	update := bson.M{
		"$set": bson.M{
			"scheduledDate":   newDate,
			"startTime":       newStart,
			"endTime":         newEnd,
			"groundSlot":      newSlot,
			"status":          models.SessionRescheduled,
			"rescheduled":     true,
			"rescheduledFrom": prior,
			"rescheduledAt":   at,
			"bookingDeadline": newStartAbs.Add(-24 * time.Hour),
		},
	}

	res, err := repo.sessionColl.UpdateOne(ctx, filter, update)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrSlotTaken
		}
		return fmt.Errorf("error rescheduling session %s: %w", sessionID, err)
	}
	if res.MatchedCount == 0 {
		return ErrAlreadyRescheduled
	}
	return nil
}

// SetParticipantAttendance marks one participant entry on a session.
func (repo *MongoSessionRepo) SetParticipantAttendance(
	ctx context.Context,
	sessionID, userID string,
	attended bool,
	at time.Time,
) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"id": sessionID, "participants.userId": userID}
	update := bson.M{
		"$set": bson.M{
			"participants.$.attended":           attended,
			"participants.$.attendanceMarkedAt": at,
		},
	}
	res, err := repo.sessionColl.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("error marking attendance on session %s: %w", sessionID, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("participant %s not found on session %s", userID, sessionID)
	}
	return nil
}

// UpdateStatus sets the session status.
func (repo *MongoSessionRepo) UpdateStatus(ctx context.Context, sessionID, status string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := repo.sessionColl.UpdateOne(ctx, bson.M{"id": sessionID}, bson.M{"$set": bson.M{"status": status}})
	if err != nil {
		return fmt.Errorf("error updating status of session %s: %w", sessionID, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("session %s not found", sessionID)
	}
	return nil
}

func combineDateClock(date, clock string) (time.Time, error) {
	day, err := time.ParseInLocation("2006-01-02", date, time.Local)
	if err != nil {
		return time.Time{}, err
	}
	t, err := time.Parse("15:04", clock)
	if err != nil {
		return time.Time{}, err
	}
	return day.Add(time.Duration(t.Hour()*60+t.Minute()) * time.Minute), nil
}
