package service

import (
	"fmt"

	"github.com/roadready/dsm-admin-gateway/internal/models"
	appErrors "github.com/roadready/dsm-admin-gateway/pkg/errors"
)

// BuildAssignment merges the picked replacement slots into the original
// schedule-ID list. Position i of days (traversal order) maps to picks[i];
// every other day keeps its original slot. The output always has exactly
// one entry per original day.
func BuildAssignment(original models.EnrollmentSchedule, days []int, picks []models.AvailableSlot) ([]string, error) {
	if len(picks) != len(days) {
		return nil, appErrors.Clone(appErrors.ErrSessionState,
			fmt.Sprintf("have %d picks for %d days", len(picks), len(days)))
	}

	ids := original.ScheduleIDs()
	for i, day := range days {
		if day < 0 || day >= len(ids) {
			return nil, appErrors.Clone(appErrors.ErrValidation,
				fmt.Sprintf("day index %d outside schedule of %d days", day, len(ids)))
		}
		ids[day] = picks[i].ScheduleID
	}
	return ids, nil
}
