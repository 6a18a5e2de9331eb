package scheduling

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"pitchside/models"

	"go.uber.org/zap"
)

// Cached windows go stale the moment a booking lands, so the TTL is short
// and every write path calls InvalidateCache as well.
const availabilityCacheTTL = 2 * time.Minute

func availabilityCacheKey(coachID, date string, duration int) string {
	return fmt.Sprintf("availability:%s:%s:%d", coachID, date, duration)
}

func (r *DefaultAvailabilityResolver) cachedWindows(ctx context.Context, coachID, date string, duration int) ([]models.SlotWindow, bool) {
	data, err := r.Cache.Get(ctx, availabilityCacheKey(coachID, date, duration)).Result()
	if err != nil {
		return nil, false
	}
	var windows []models.SlotWindow
	if err := json.Unmarshal([]byte(data), &windows); err != nil {
		zap.L().Warn("dropping malformed availability cache entry",
			zap.String("coachId", coachID), zap.String("date", date))
		return nil, false
	}
	return windows, true
}

func (r *DefaultAvailabilityResolver) storeWindows(ctx context.Context, coachID, date string, duration int, windows []models.SlotWindow) {
	data, err := json.Marshal(windows)
	if err != nil {
		return
	}
	if err := r.Cache.Set(ctx, availabilityCacheKey(coachID, date, duration), data, availabilityCacheTTL).Err(); err != nil {
		zap.L().Warn("failed to cache availability",
			zap.String("coachId", coachID), zap.String("date", date), zap.Error(err))
	}
}

// InvalidateCache drops all cached windows for a coach/date, regardless of
// the duration they were resolved with.
func (r *DefaultAvailabilityResolver) InvalidateCache(ctx context.Context, coachID, date string) {
	r.invalidatePattern(ctx, fmt.Sprintf("availability:%s:%s:*", coachID, date))
}

// InvalidateCoach drops all cached windows for a coach across every date.
func (r *DefaultAvailabilityResolver) InvalidateCoach(ctx context.Context, coachID string) {
	r.invalidatePattern(ctx, fmt.Sprintf("availability:%s:*", coachID))
}

func (r *DefaultAvailabilityResolver) invalidatePattern(ctx context.Context, pattern string) {
	if r.Cache == nil {
		return
	}
	keys, err := r.Cache.Keys(ctx, pattern).Result()
	if err != nil || len(keys) == 0 {
		return
	}
	if err := r.Cache.Del(ctx, keys...).Err(); err != nil {
		zap.L().Warn("failed to invalidate availability cache",
			zap.String("pattern", pattern), zap.Error(err))
	}
}
