package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDurationHoursShortSlot(t *testing.T) {
	slot := AvailableSlot{StartTime: "08:00", EndTime: "12:00"}
	assert.InDelta(t, 4.0, slot.DurationHours(), 0.001)
}

func TestDurationHoursAppliesMealBreak(t *testing.T) {
	slot := AvailableSlot{StartTime: "08:00", EndTime: "16:00"}
	// Eight raw hours include a one hour meal break.
	assert.InDelta(t, 7.0, slot.DurationHours(), 0.001)

	slot = AvailableSlot{StartTime: "08:00", EndTime: "17:00"}
	assert.InDelta(t, 8.0, slot.DurationHours(), 0.001)
}

func TestDurationHoursJustUnderThreshold(t *testing.T) {
	slot := AvailableSlot{StartTime: "08:00", EndTime: "15:30"}
	assert.InDelta(t, 7.5, slot.DurationHours(), 0.001)
}

func TestDurationHoursMalformedClock(t *testing.T) {
	assert.Zero(t, AvailableSlot{StartTime: "8am", EndTime: "12:00"}.DurationHours())
	assert.Zero(t, AvailableSlot{StartTime: "25:00", EndTime: "12:00"}.DurationHours())
	assert.Zero(t, AvailableSlot{StartTime: "12:00", EndTime: "08:00"}.DurationHours())
}

func TestStartHour(t *testing.T) {
	assert.Equal(t, 8, AvailableSlot{StartTime: "08:30"}.StartHour())
	assert.Equal(t, 13, AvailableSlot{StartTime: "13:00"}.StartHour())
	assert.Equal(t, -1, AvailableSlot{StartTime: "bogus"}.StartHour())
}

func TestTimeClassStartHour(t *testing.T) {
	hour, fixed := TimeClassMorning.StartHour()
	assert.True(t, fixed)
	assert.Equal(t, 8, hour)

	hour, fixed = TimeClassAfternoon.StartHour()
	assert.True(t, fixed)
	assert.Equal(t, 13, hour)

	_, fixed = TimeClassFlexible.StartHour()
	assert.False(t, fixed)
}

func TestParseTimeClassUnknownIsFlexible(t *testing.T) {
	assert.Equal(t, TimeClassFlexible, ParseTimeClass("evening"))
	assert.Equal(t, TimeClassFlexible, ParseTimeClass(""))
	assert.Equal(t, TimeClassMorning, ParseTimeClass("morning"))
}

func TestModalityCapacityUnit(t *testing.T) {
	assert.Equal(t, "seats", ModalityTheoretical.CapacityUnit())
	assert.Equal(t, "vehicles", ModalityPractical.CapacityUnit())
	assert.Equal(t, ModalityTheoretical, ModalityFromTheoretical(true))
	assert.Equal(t, ModalityPractical, ModalityFromTheoretical(false))
}
