package service

import (
	"encoding/json"
	"strconv"

	"github.com/roadready/dsm-admin-gateway/internal/models"
)

// patternConfigEntry mirrors the platform's stored day-pattern entries.
type patternConfigEntry struct {
	Day   json.Number `json:"day"`
	Hours json.Number `json:"hours"`
	Shift string      `json:"shift"`
}

// InterpretPattern turns a course's stored pattern config into the ordered
// day requirements the wizard filters against, and returns the number of
// days the enrollment must attend.
//
// Interpretation never fails: a missing or malformed config resolves to a
// single default day (4 flexible hours), and the result is padded with
// default days when the enrollment is bound to more sessions than the
// config describes, so the pattern length always matches the schedule.
func InterpretPattern(raw json.RawMessage, schedule models.EnrollmentSchedule) (models.CourseSchedulePattern, int) {
	pattern := parsePatternConfig(raw)
	if len(pattern) == 0 {
		pattern = models.CourseSchedulePattern{models.DefaultDayRequirement(0)}
	}
	for len(pattern) < len(schedule) {
		pattern = append(pattern, models.DefaultDayRequirement(len(pattern)))
	}
	return pattern, len(pattern)
}

func parsePatternConfig(raw json.RawMessage) models.CourseSchedulePattern {
	if len(raw) == 0 {
		return nil
	}

	// Some platform versions store the config double-encoded as a JSON
	// string; unwrap before decoding the array.
	var asString string
	if err := json.Unmarshal(raw, &asString); err == nil {
		raw = json.RawMessage(asString)
	}

	var entries []patternConfigEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil
	}

	pattern := make(models.CourseSchedulePattern, 0, len(entries))
	for i, entry := range entries {
		hours := numberOr(entry.Hours, 0)
		if hours <= 0 {
			hours = 4
		}
		// The stored day value is informational; position in the array is
		// what orders the pattern.
		pattern = append(pattern, models.DaySlotRequirement{
			DayIndex:      i,
			DurationHours: hours,
			TimeClass:     models.ParseTimeClass(entry.Shift),
		})
	}
	return pattern
}

func numberOr(n json.Number, fallback float64) float64 {
	if n == "" {
		return fallback
	}
	value, err := strconv.ParseFloat(string(n), 64)
	if err != nil {
		return fallback
	}
	return value
}
