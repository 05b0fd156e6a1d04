package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Raw clock spans of at least eight hours include a one hour meal break
// that does not count toward the teachable duration.
const mealBreakThresholdHours = 8.0

// AvailableSlot is one bookable calendar session from the platform's
// availability snapshot. The snapshot is immutable for the lifetime of a
// wizard run.
type AvailableSlot struct {
	ScheduleID        string    `json:"schedule_id"`
	StartDate         time.Time `json:"start_date"`
	StartTime         string    `json:"start_time"`
	EndTime           string    `json:"end_time"`
	RemainingCapacity int       `json:"remaining_capacity"`
}

// DurationHours derives the teachable duration from the slot's clock span,
// applying the meal-break reduction for spans of eight hours or more.
func (s AvailableSlot) DurationHours() float64 {
	start, err := clockMinutes(s.StartTime)
	if err != nil {
		return 0
	}
	end, err := clockMinutes(s.EndTime)
	if err != nil {
		return 0
	}
	raw := float64(end-start) / 60.0
	if raw < 0 {
		return 0
	}
	if raw >= mealBreakThresholdHours {
		raw -= 1
	}
	return raw
}

// StartHour returns the slot's start hour, or -1 when the start time is
// unparseable.
func (s AvailableSlot) StartHour() int {
	minutes, err := clockMinutes(s.StartTime)
	if err != nil {
		return -1
	}
	return minutes / 60
}

// TimeRange renders the slot's clock span for display.
func (s AvailableSlot) TimeRange() string {
	return s.StartTime + " - " + s.EndTime
}

// DateOnly truncates a timestamp to its calendar date in UTC.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func clockMinutes(raw string) (int, error) {
	parts := strings.SplitN(strings.TrimSpace(raw), ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("malformed clock value %q", raw)
	}
	hours, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("malformed clock hours %q", raw)
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("malformed clock minutes %q", raw)
	}
	if hours < 0 || hours > 23 || minutes < 0 || minutes > 59 {
		return 0, fmt.Errorf("clock value out of range %q", raw)
	}
	return hours*60 + minutes, nil
}
