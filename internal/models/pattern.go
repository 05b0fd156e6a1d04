package models

// TimeClass partitions course days into fixed start windows.
type TimeClass string

const (
	TimeClassMorning   TimeClass = "morning"
	TimeClassAfternoon TimeClass = "afternoon"
	TimeClassFlexible  TimeClass = "flexible"
)

// Fixed start hours for non-flexible time classes.
const (
	MorningStartHour   = 8
	AfternoonStartHour = 13
)

// StartHour returns the mandated start hour for the time class. The second
// return value is false for flexible days, which accept any start hour.
func (t TimeClass) StartHour() (int, bool) {
	switch t {
	case TimeClassMorning:
		return MorningStartHour, true
	case TimeClassAfternoon:
		return AfternoonStartHour, true
	default:
		return 0, false
	}
}

// ParseTimeClass normalises a raw config value into a TimeClass.
// Unknown values resolve to flexible.
func ParseTimeClass(raw string) TimeClass {
	switch TimeClass(raw) {
	case TimeClassMorning:
		return TimeClassMorning
	case TimeClassAfternoon:
		return TimeClassAfternoon
	default:
		return TimeClassFlexible
	}
}

// DaySlotRequirement describes what one day of a course pattern demands of
// its calendar slot.
type DaySlotRequirement struct {
	DayIndex      int       `json:"day_index"`
	DurationHours float64   `json:"duration_hours"`
	TimeClass     TimeClass `json:"time_class"`
}

// CourseSchedulePattern is the ordered list of day requirements an
// enrollment must satisfy. DayIndex values are the positions 0..N-1; later
// days must be scheduled on or after earlier days.
type CourseSchedulePattern []DaySlotRequirement

// DefaultDayRequirement is the fallback when a course defines no usable
// pattern config.
func DefaultDayRequirement(dayIndex int) DaySlotRequirement {
	return DaySlotRequirement{DayIndex: dayIndex, DurationHours: 4, TimeClass: TimeClassFlexible}
}
