package scheduling

import (
	"context"
	"fmt"
	"sort"
	"time"

	coachRepo "pitchside/database/repository/coach"
	sessionRepo "pitchside/database/repository/session"
	"pitchside/models"
	"pitchside/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// DefaultAvailabilityResolver is the production implementation.
type DefaultAvailabilityResolver struct {
	Coaches  coachRepo.CoachRepository
	Sessions sessionRepo.SessionRepository
	// Cache holds resolved windows for general queries; optional.
	Cache *redis.Client
	// DefaultDurationMinutes is used when the caller passes no duration.
	// Sessions are booked in fixed two-hour blocks by default.
	DefaultDurationMinutes int
}

// ResolveAvailability computes the open windows for a coach on a date.
// It instantiates the coach's weekly rules for the date's weekday, steps
// through each rule in duration-sized increments, and discards candidates
// overlapping any existing non-cancelled session for that coach.
func (r *DefaultAvailabilityResolver) ResolveAvailability(
	ctx context.Context,
	coachID, date string,
	durationMinutes int,
	opts *ResolveOptions,
) ([]models.SlotWindow, error) {
	if durationMinutes <= 0 {
		durationMinutes = r.defaultDuration()
	}

	day, err := utils.ParseDate(date)
	if err != nil {
		return nil, newValidationError(err.Error(), nil)
	}

	if opts != nil {
		if err := validateBookingWindow(day, opts); err != nil {
			return nil, err
		}
	}

	// General queries are cached; enrollment-scoped ones change per caller.
	cacheable := opts == nil && r.Cache != nil
	if cacheable {
		if windows, ok := r.cachedWindows(ctx, coachID, date, durationMinutes); ok {
			return windows, nil
		}
	}

	coach, err := r.Coaches.GetByID(ctx, coachID)
	if err != nil {
		return nil, err
	}
	if coach == nil {
		return nil, ErrCoachNotFound
	}

	rules := coach.RulesForDay(day.Weekday().String())
	if len(rules) == 0 {
		// No recurring rule for this weekday: nothing bookable, not an error.
		return []models.SlotWindow{}, nil
	}

	existing, err := r.Sessions.ListActiveForCoach(ctx, coachID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch existing sessions: %w", err)
	}
	booked, err := sessionRanges(existing)
	if err != nil {
		return nil, err
	}

	var windows []models.SlotWindow
	for _, rule := range rules {
		ruleStart, err := utils.ParseClock(rule.StartTime)
		if err != nil {
			zap.L().Warn("skipping malformed availability rule",
				zap.String("coachId", coachID), zap.String("startTime", rule.StartTime))
			continue
		}
		ruleEnd, err := utils.ParseClock(rule.EndTime)
		if err != nil {
			zap.L().Warn("skipping malformed availability rule",
				zap.String("coachId", coachID), zap.String("endTime", rule.EndTime))
			continue
		}

		for start := ruleStart; start+durationMinutes <= ruleEnd; start += durationMinutes {
			end := start + durationMinutes
			if overlapsAny(start, end, booked) {
				continue
			}
			windows = append(windows, models.SlotWindow{
				StartTime: utils.FormatClock(start),
				EndTime:   utils.FormatClock(end),
				Duration:  durationMinutes,
				Available: true,
			})
		}
	}

	sort.Slice(windows, func(i, j int) bool {
		return windows[i].StartTime < windows[j].StartTime
	})

	if cacheable {
		r.storeWindows(ctx, coachID, date, durationMinutes, windows)
	}
	return windows, nil
}

// GeneralAvailability returns the coach's raw weekly rules.
func (r *DefaultAvailabilityResolver) GeneralAvailability(ctx context.Context, coachID string) ([]models.AvailabilityRule, error) {
	coach, err := r.Coaches.GetByID(ctx, coachID)
	if err != nil {
		return nil, err
	}
	if coach == nil {
		return nil, ErrCoachNotFound
	}
	return coach.Availability, nil
}

// CoversWindow reports whether some weekly rule fully contains
// [startTime, endTime) on the date's weekday.
func (r *DefaultAvailabilityResolver) CoversWindow(ctx context.Context, coachID, date, startTime, endTime string) (bool, error) {
	day, err := utils.ParseDate(date)
	if err != nil {
		return false, newValidationError(err.Error(), nil)
	}
	start, err := utils.ParseClock(startTime)
	if err != nil {
		return false, newValidationError(err.Error(), nil)
	}
	end, err := utils.ParseClock(endTime)
	if err != nil {
		return false, newValidationError(err.Error(), nil)
	}

	coach, err := r.Coaches.GetByID(ctx, coachID)
	if err != nil {
		return false, err
	}
	if coach == nil {
		return false, ErrCoachNotFound
	}

	for _, rule := range coach.RulesForDay(day.Weekday().String()) {
		ruleStart, errStart := utils.ParseClock(rule.StartTime)
		ruleEnd, errEnd := utils.ParseClock(rule.EndTime)
		if errStart != nil || errEnd != nil {
			continue
		}
		if ruleStart <= start && end <= ruleEnd {
			return true, nil
		}
	}
	return false, nil
}

func (r *DefaultAvailabilityResolver) defaultDuration() int {
	if r.DefaultDurationMinutes > 0 {
		return r.DefaultDurationMinutes
	}
	return 120
}

// validateBookingWindow checks the date against the enrollment's bookable
// range and, when a session number is supplied, against its week slice.
func validateBookingWindow(day time.Time, opts *ResolveOptions) error {
	if opts.EnrollmentDate.IsZero() || opts.ProgramWeeks <= 0 {
		return nil
	}

	rangeStart := truncateToDay(opts.EnrollmentDate)
	rangeEnd := rangeStart.AddDate(0, 0, opts.ProgramWeeks*7)
	if day.Before(rangeStart) || day.After(rangeEnd) {
		return newValidationError(
			fmt.Sprintf("date is outside the program's booking window (%s to %s)",
				rangeStart.Format(utils.DateLayout), rangeEnd.Format(utils.DateLayout)),
			map[string]any{
				"validDateRange": map[string]string{
					"from": rangeStart.Format(utils.DateLayout),
					"to":   rangeEnd.Format(utils.DateLayout),
				},
			},
		)
	}

	if opts.SessionNumber > 0 {
		perWeek := opts.SessionsPerWeek
		if perWeek <= 0 {
			perWeek = 2
		}
		expectedWeek := (opts.SessionNumber + perWeek - 1) / perWeek
		offsetDays := int(day.Sub(rangeStart).Hours() / 24)
		actualWeek := offsetDays/7 + 1
		if actualWeek != expectedWeek {
			return newValidationError(
				fmt.Sprintf("session %d must be booked in week %d, but the date falls in week %d",
					opts.SessionNumber, expectedWeek, actualWeek),
				map[string]any{
					"expectedWeek": expectedWeek,
					"actualWeek":   actualWeek,
				},
			)
		}
	}
	return nil
}

type timeRange struct {
	start int
	end   int
}

func sessionRanges(sessions []models.Session) ([]timeRange, error) {
	ranges := make([]timeRange, 0, len(sessions))
	for _, s := range sessions {
		start, err := utils.ParseClock(s.StartTime)
		if err != nil {
			return nil, fmt.Errorf("session %s has malformed startTime: %w", s.ID, err)
		}
		end, err := utils.ParseClock(s.EndTime)
		if err != nil {
			return nil, fmt.Errorf("session %s has malformed endTime: %w", s.ID, err)
		}
		ranges = append(ranges, timeRange{start: start, end: end})
	}
	return ranges, nil
}

func overlapsAny(start, end int, booked []timeRange) bool {
	for _, b := range booked {
		if utils.Overlaps(start, end, b.start, b.end) {
			return true
		}
	}
	return false
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.Local)
}
