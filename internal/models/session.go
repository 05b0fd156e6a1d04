package models

import "time"

// WizardState enumerates the reschedule wizard's states.
type WizardState string

const (
	WizardStateIdle          WizardState = "idle"
	WizardStatePresentingDay WizardState = "presenting_day"
	WizardStateAwaitingPick  WizardState = "awaiting_pick"
	WizardStateCompleted     WizardState = "completed"
	WizardStateCancelled     WizardState = "cancelled"
)

// Terminal reports whether the wizard run has finished.
func (s WizardState) Terminal() bool {
	return s == WizardStateCompleted || s == WizardStateCancelled
}

// RescheduleSession is the working state of one wizard run for one
// enrollment. It is created fresh when an operator opens the reschedule
// action, discarded on cancel, and consumed on confirm; nothing is
// persisted beyond the final submission.
type RescheduleSession struct {
	ID           string         `json:"id"`
	EnrollmentID string         `json:"enrollment_id"`
	CourseID     string         `json:"course_id"`
	CourseName   string         `json:"course_name"`
	Modality     CourseModality `json:"modality"`

	Pattern  CourseSchedulePattern `json:"pattern"`
	Original EnrollmentSchedule    `json:"original"`

	// Days holds the operator-chosen day indexes in traversal order, which
	// is the order the operator selected them, not the pattern's natural
	// order.
	Days []int `json:"days"`

	// Picks is a stack aligned positionally to Days; it is always a
	// hole-free prefix of the traversal.
	Picks []AvailableSlot `json:"picks"`

	// Cursor is the position in Days currently being resolved.
	Cursor int `json:"cursor"`

	State WizardState `json:"state"`

	// Snapshot is the availability fetched once before the run started.
	Snapshot []AvailableSlot `json:"snapshot"`

	OperatorID string    `json:"operator_id"`
	BranchID   string    `json:"branch_id"`
	CreatedAt  time.Time `json:"created_at"`
}

// CurrentDay returns the pattern day index under the cursor. The second
// value is false once the traversal is exhausted or the run is terminal.
func (s *RescheduleSession) CurrentDay() (int, bool) {
	if s.State.Terminal() || s.Cursor < 0 || s.Cursor >= len(s.Days) {
		return 0, false
	}
	return s.Days[s.Cursor], true
}

// CurrentRequirement resolves the day requirement under the cursor.
func (s *RescheduleSession) CurrentRequirement() (DaySlotRequirement, bool) {
	day, ok := s.CurrentDay()
	if !ok || day < 0 || day >= len(s.Pattern) {
		return DaySlotRequirement{}, false
	}
	return s.Pattern[day], true
}
