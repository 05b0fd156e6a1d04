package service

import (
	"fmt"

	"github.com/roadready/dsm-admin-gateway/internal/models"
	appErrors "github.com/roadready/dsm-admin-gateway/pkg/errors"
)

// The wizard state machine. Transitions mutate the session in place and
// are synchronous; persistence is the caller's concern. Picks form a stack
// aligned to the traversal order of the operator-chosen days, so stepping
// back pops the previous traversal day, not dayIndex-1.

// presentCurrentDay evaluates the PresentingDay state: it filters the
// snapshot for the day under the cursor and either hands control to the
// operator (AwaitingPick) or cancels the run when nothing qualifies.
func presentCurrentDay(s *models.RescheduleSession) error {
	s.State = models.WizardStatePresentingDay
	requirement, ok := s.CurrentRequirement()
	if !ok {
		s.State = models.WizardStateCancelled
		return appErrors.Clone(appErrors.ErrSessionState, "no day left to present")
	}
	candidates := FilterCandidates(s.Snapshot, requirement, s.Picks)
	if len(candidates) == 0 {
		s.State = models.WizardStateCancelled
		return appErrors.Clone(appErrors.ErrNoCandidates,
			fmt.Sprintf("no eligible slots for day %d", requirement.DayIndex))
	}
	s.State = models.WizardStateAwaitingPick
	return nil
}

// startTraversal enters the wizard at the first traversal day.
func startTraversal(s *models.RescheduleSession) error {
	if s.State != models.WizardStateIdle {
		return appErrors.Clone(appErrors.ErrSessionState, "wizard already started")
	}
	s.Cursor = 0
	return presentCurrentDay(s)
}

// currentCandidates recomputes the eligible set for the day awaiting a
// pick. Display grouping happens at the DTO layer.
func currentCandidates(s *models.RescheduleSession) []models.AvailableSlot {
	if s.State != models.WizardStateAwaitingPick {
		return nil
	}
	requirement, ok := s.CurrentRequirement()
	if !ok {
		return nil
	}
	return FilterCandidates(s.Snapshot, requirement, s.Picks)
}

// pickSlot records the operator's choice for the current day and advances
// the traversal, completing the run after the last day.
func pickSlot(s *models.RescheduleSession, scheduleID string) error {
	if s.State != models.WizardStateAwaitingPick {
		return appErrors.Clone(appErrors.ErrSessionState, "session is not awaiting a pick")
	}
	var chosen *models.AvailableSlot
	for _, candidate := range currentCandidates(s) {
		if candidate.ScheduleID == scheduleID {
			slot := candidate
			chosen = &slot
			break
		}
	}
	if chosen == nil {
		return appErrors.Clone(appErrors.ErrValidation, "selected slot is not an eligible candidate for this day")
	}

	s.Picks = append(s.Picks, *chosen)
	if s.Cursor == len(s.Days)-1 {
		s.State = models.WizardStateCompleted
		return nil
	}
	s.Cursor++
	return presentCurrentDay(s)
}

// stepBack revises the previous traversal day by popping the last pick.
// On the first day there is nothing to revise and the run cancels.
func stepBack(s *models.RescheduleSession) error {
	if s.State != models.WizardStateAwaitingPick {
		return appErrors.Clone(appErrors.ErrSessionState, "session is not awaiting a pick")
	}
	if len(s.Picks) == 0 {
		s.State = models.WizardStateCancelled
		return nil
	}
	s.Picks = s.Picks[:len(s.Picks)-1]
	s.Cursor--
	return presentCurrentDay(s)
}

// cancelRun aborts the wizard. Always safe: nothing is persisted until the
// final submission, so discarding the session has no side effects.
func cancelRun(s *models.RescheduleSession) {
	s.State = models.WizardStateCancelled
}
