package usecases

import (
	"punctual/internal/models"
	"strconv"
	"strings"
	"time"
)

const FieldEventTime = "event_time"

// MaxMinutes caps travel and prep at one week each.
const MaxMinutes = 7 * 24 * 60

// Zone-less layouts are what a datetime-local input submits.
var localLayouts = []string{
	"2006-01-02T15:04",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02 15:04:05",
}

// ParseEventTime parses an RFC 3339 timestamp or a zone-less local time.
// Zone-less values are read in loc; a nil loc means time.Local.
func ParseEventTime(raw string, loc *time.Location) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, invalid(FieldEventTime, "missing")
	}
	if loc == nil {
		loc = time.Local
	}

	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, raw, loc); err == nil {
			return t, nil
		}
	}

	return time.Time{}, invalid(FieldEventTime, "not a valid time: "+raw)
}

// ComputeSchedule parses eventTime and works back from it:
// leave = event - travel, wake = leave - prep.
func ComputeSchedule(eventTime string, travelMinutes, prepMinutes int, loc *time.Location) (models.Schedule, error) {
	event, err := ParseEventTime(eventTime, loc)
	if err != nil {
		return models.Schedule{}, err
	}
	return ComputeScheduleAt(event, travelMinutes, prepMinutes)
}

// ComputeScheduleAt is ComputeSchedule for an already parsed event time.
// The zero time.Time means "no event time" and is rejected, so the instant
// 0001-01-01T00:00:00Z cannot be scheduled.
func ComputeScheduleAt(eventTime time.Time, travelMinutes, prepMinutes int) (models.Schedule, error) {
	if eventTime.IsZero() {
		return models.Schedule{}, invalid(FieldEventTime, "missing")
	}
	if err := checkMinutes(FieldTravelMinutes, travelMinutes); err != nil {
		return models.Schedule{}, err
	}
	if err := checkMinutes(FieldPrepMinutes, prepMinutes); err != nil {
		return models.Schedule{}, err
	}

	leave := eventTime.Add(-time.Duration(travelMinutes) * time.Minute)
	wake := leave.Add(-time.Duration(prepMinutes) * time.Minute)

	// ISO 8601 output only has room for years 0000-9999.
	if wake.UTC().Year() < 0 || eventTime.UTC().Year() > 9999 {
		return models.Schedule{}, invalid(FieldEventTime, "out of range")
	}

	return models.Schedule{
		EventTime: eventTime,
		LeaveTime: leave,
		WakeTime:  wake,
	}, nil
}

func checkMinutes(field string, n int) error {
	if n < 0 {
		return invalid(field, "must not be negative")
	}
	if n > MaxMinutes {
		return invalid(field, "must be at most "+strconv.Itoa(MaxMinutes))
	}
	return nil
}
