package models

import "encoding/json"

// CourseModality distinguishes the two kinds of courses a driving school
// runs. Slot capacity means different things per modality, so dispatch on
// the type instead of ad-hoc flag checks.
type CourseModality string

const (
	ModalityTheoretical CourseModality = "theoretical"
	ModalityPractical   CourseModality = "practical"
)

// CapacityUnit names what RemainingCapacity counts for this modality:
// classroom seats for theory, vehicle units for practice.
func (m CourseModality) CapacityUnit() string {
	if m == ModalityPractical {
		return "vehicles"
	}
	return "seats"
}

// ModalityFromTheoretical maps the platform's boolean flag onto the typed
// variant.
func ModalityFromTheoretical(isTheoretical bool) CourseModality {
	if isTheoretical {
		return ModalityTheoretical
	}
	return ModalityPractical
}

// Course is the subset of platform course data the wizard needs.
type Course struct {
	ID       string         `json:"id"`
	Name     string         `json:"name"`
	Modality CourseModality `json:"modality"`

	// SchedulePatternConfig is the serialized day-pattern as stored by the
	// platform. It may be absent or malformed; interpretation never fails.
	SchedulePatternConfig json.RawMessage `json:"schedule_config,omitempty"`
}
