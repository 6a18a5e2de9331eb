package booking

import (
	"context"
	"fmt"

	"pitchside/utils"
)

// IsSlotAvailable reports whether [startTime, endTime) on the given ground
// slot and date is free of other non-cancelled sessions. excludeSessionID
// skips one session, used when rescheduling a session onto its own slot.
//
// This is a pre-filter: the unique index on (ground, slot, date, startTime)
// is the authoritative guard at commit time.
func (svc *DefaultSessionService) IsSlotAvailable(
	ctx context.Context,
	groundID string,
	slotNumber int,
	date, startTime, endTime, excludeSessionID string,
) (bool, error) {
	start, err := utils.ParseClock(startTime)
	if err != nil {
		return false, NewValidationError(err.Error(), nil)
	}
	end, err := utils.ParseClock(endTime)
	if err != nil {
		return false, NewValidationError(err.Error(), nil)
	}

	sessions, err := svc.Sessions.ListActiveForGround(ctx, groundID, date)
	if err != nil {
		return false, fmt.Errorf("failed to fetch ground sessions: %w", err)
	}

	for _, s := range sessions {
		if s.ID == excludeSessionID || s.GroundSlot != slotNumber {
			continue
		}
		existingStart, err := utils.ParseClock(s.StartTime)
		if err != nil {
			return false, fmt.Errorf("session %s has malformed startTime: %w", s.ID, err)
		}
		existingEnd, err := utils.ParseClock(s.EndTime)
		if err != nil {
			return false, fmt.Errorf("session %s has malformed endTime: %w", s.ID, err)
		}
		if utils.Overlaps(start, end, existingStart, existingEnd) {
			return false, nil
		}
	}
	return true, nil
}

// pickGroundSlot returns the lowest-numbered free slot on the ground for the
// requested window, or 0 when every slot is taken.
func (svc *DefaultSessionService) pickGroundSlot(
	ctx context.Context,
	groundID string,
	totalSlots int,
	date, startTime, endTime string,
) (int, error) {
	for slot := 1; slot <= totalSlots; slot++ {
		free, err := svc.IsSlotAvailable(ctx, groundID, slot, date, startTime, endTime, "")
		if err != nil {
			return 0, err
		}
		if free {
			return slot, nil
		}
	}
	return 0, nil
}
