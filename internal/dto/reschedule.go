package dto

// StartRescheduleRequest opens a wizard run for an enrollment. Days are
// 0-based pattern positions in the order the operator wants to resolve
// them; that order drives the wizard traversal.
type StartRescheduleRequest struct {
	CourseID string `json:"courseId" validate:"required"`
	Days     []int  `json:"days" validate:"required,min=1,dive,min=0"`
}

// PickRequest selects one candidate slot for the day being presented.
type PickRequest struct {
	ScheduleID string `json:"scheduleId" validate:"required"`
}

// CandidateSlot is one eligible replacement slot.
type CandidateSlot struct {
	ScheduleID        string  `json:"scheduleId"`
	Date              string  `json:"date"`
	StartTime         string  `json:"startTime"`
	EndTime           string  `json:"endTime"`
	DurationHours     float64 `json:"durationHours"`
	RemainingCapacity int     `json:"remainingCapacity"`
	CapacityUnit      string  `json:"capacityUnit"`
}

// CandidateGroup buckets candidates by calendar date for display.
type CandidateGroup struct {
	Date  string          `json:"date"`
	Slots []CandidateSlot `json:"slots"`
}

// DayView describes the requirement of the day being presented.
type DayView struct {
	DayIndex      int     `json:"dayIndex"`
	DurationHours float64 `json:"durationHours"`
	TimeClass     string  `json:"timeClass"`
}

// SummaryItem maps one rescheduled day to its chosen slot.
type SummaryItem struct {
	DayIndex   int    `json:"dayIndex"`
	ScheduleID string `json:"scheduleId"`
	Date       string `json:"date"`
	StartTime  string `json:"startTime"`
	EndTime    string `json:"endTime"`
}

// SummaryView is the confirmation summary for a completed run.
type SummaryView struct {
	EnrollmentID string        `json:"enrollmentId"`
	CourseName   string        `json:"courseName"`
	Items        []SummaryItem `json:"items"`
	ScheduleIDs  []string      `json:"scheduleIds"`
}

// SessionView reports the wizard session to the UI shell after each
// transition.
type SessionView struct {
	SessionID    string           `json:"sessionId"`
	EnrollmentID string           `json:"enrollmentId"`
	State        string           `json:"state"`
	Step         int              `json:"step"`
	TotalSteps   int              `json:"totalSteps"`
	Day          *DayView         `json:"day,omitempty"`
	Candidates   []CandidateGroup `json:"candidates,omitempty"`
	Summary      *SummaryView     `json:"summary,omitempty"`
}

// ConfirmResponse acknowledges a submitted reschedule.
type ConfirmResponse struct {
	EnrollmentID string   `json:"enrollmentId"`
	ScheduleIDs  []string `json:"scheduleIds"`
}

// EnrollmentQuery filters the host-page enrollment listing passthrough.
type EnrollmentQuery struct {
	Search   string `form:"search"`
	CourseID string `form:"courseId"`
	Page     int    `form:"page"`
	PageSize int    `form:"limit"`
}
