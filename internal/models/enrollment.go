package models

import "time"

// ScheduleRef is one bound calendar session of an enrollment.
type ScheduleRef struct {
	ScheduleID string    `json:"schedule_id"`
	StartDate  time.Time `json:"start_date"`
	StartTime  string    `json:"start_time"`
	EndTime    string    `json:"end_time"`
}

// EnrollmentSchedule is the ordered list of bound sessions, one per course
// pattern position. Its length always equals the pattern length.
type EnrollmentSchedule []ScheduleRef

// ScheduleIDs flattens the bound sessions to their opaque IDs in day order.
func (e EnrollmentSchedule) ScheduleIDs() []string {
	ids := make([]string, len(e))
	for i, ref := range e {
		ids[i] = ref.ScheduleID
	}
	return ids
}

// EnrollmentSummary is the platform's enrollment listing row, passed
// through for the host page refresh.
type EnrollmentSummary struct {
	ID          string    `json:"id"`
	StudentName string    `json:"student_name"`
	CourseID    string    `json:"course_id"`
	CourseName  string    `json:"course_name"`
	Status      string    `json:"status"`
	StartedAt   time.Time `json:"started_at"`
}

// EnrollmentFilter describes query params for listing enrollments.
type EnrollmentFilter struct {
	Search   string
	CourseID string
	Page     int
	PageSize int
}

// Pagination echoes the platform's paging metadata.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalCount int `json:"total_count"`
}
