package service

import (
	"math"
	"sort"
	"time"

	"github.com/roadready/dsm-admin-gateway/internal/models"
)

// DurationTolerance is the maximum gap, in hours, between a slot's derived
// duration and a day requirement for the slot to qualify.
const DurationTolerance = 0.05

// FilterCandidates computes the subset of the snapshot eligible for the
// given day requirement, taking the picks already made this run into
// account. Pure; the wizard calls it once per presented day.
//
// A slot qualifies when it is not already picked, starts strictly after the
// last pick's date, matches the required duration within tolerance, starts
// in the required time window, and still has capacity.
func FilterCandidates(snapshot []models.AvailableSlot, requirement models.DaySlotRequirement, picks []models.AvailableSlot) []models.AvailableSlot {
	picked := make(map[string]struct{}, len(picks))
	for _, pick := range picks {
		picked[pick.ScheduleID] = struct{}{}
	}

	var lastDate time.Time
	if len(picks) > 0 {
		lastDate = models.DateOnly(picks[len(picks)-1].StartDate)
	}

	eligible := make([]models.AvailableSlot, 0, len(snapshot))
	for _, slot := range snapshot {
		if _, used := picked[slot.ScheduleID]; used {
			continue
		}
		if len(picks) > 0 && !models.DateOnly(slot.StartDate).After(lastDate) {
			continue
		}
		if math.Abs(slot.DurationHours()-requirement.DurationHours) > DurationTolerance {
			continue
		}
		if hour, fixed := requirement.TimeClass.StartHour(); fixed && slot.StartHour() != hour {
			continue
		}
		if slot.RemainingCapacity <= 0 {
			continue
		}
		eligible = append(eligible, slot)
	}
	return eligible
}

// PruneSnapshot drops slots that can never qualify: sessions in the past
// relative to today. Capacity stays untouched here; the filter rules own
// that check.
func PruneSnapshot(snapshot []models.AvailableSlot, today time.Time) []models.AvailableSlot {
	cutoff := models.DateOnly(today)
	pruned := make([]models.AvailableSlot, 0, len(snapshot))
	for _, slot := range snapshot {
		if models.DateOnly(slot.StartDate).Before(cutoff) {
			continue
		}
		pruned = append(pruned, slot)
	}
	sort.Slice(pruned, func(i, j int) bool {
		if pruned[i].StartDate.Equal(pruned[j].StartDate) {
			return pruned[i].StartTime < pruned[j].StartTime
		}
		return pruned[i].StartDate.Before(pruned[j].StartDate)
	})
	return pruned
}
