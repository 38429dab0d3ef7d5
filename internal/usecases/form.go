package usecases

import (
	"punctual/internal/models"
	"strconv"
	"strings"
	"time"
)

const (
	FieldPhoneNumber   = "phone_number"
	FieldStartAddress  = "start_address"
	FieldEventAddress  = "event_address"
	FieldTransportMode = "transport_mode"
	FieldPrepMinutes   = "prep_minutes"
	FieldPrepChecklist = "prep_checklist"
	FieldTravelMinutes = "travel_minutes"

	DefaultPrepMinutes   = 30
	DefaultTravelMinutes = 30
)

// FormFields are the raw values exactly as the user submitted them.
type FormFields struct {
	PhoneNumber   string
	StartAddress  string
	EventAddress  string
	TransportMode string
	PrepMinutes   string
	PrepChecklist string
	EventTime     string
	TravelMinutes string
}

// DecodeForm validates raw form values and freezes them into a ScheduleRequest.
func DecodeForm(f FormFields, loc *time.Location) (models.ScheduleRequest, error) {
	event, err := ParseEventTime(f.EventTime, loc)
	if err != nil {
		return models.ScheduleRequest{}, err
	}

	phone := strings.TrimSpace(f.PhoneNumber)
	if phone == "" {
		return models.ScheduleRequest{}, invalid(FieldPhoneNumber, "missing")
	}

	start := strings.TrimSpace(f.StartAddress)
	if start == "" {
		return models.ScheduleRequest{}, invalid(FieldStartAddress, "missing")
	}
	dest := strings.TrimSpace(f.EventAddress)
	if dest == "" {
		return models.ScheduleRequest{}, invalid(FieldEventAddress, "missing")
	}

	mode := models.TransportTransit
	if m := strings.ToLower(strings.TrimSpace(f.TransportMode)); m != "" {
		mode = models.TransportMode(m)
	}
	if !mode.Valid() {
		return models.ScheduleRequest{}, invalid(FieldTransportMode, "unknown mode "+f.TransportMode)
	}

	travel, err := parseMinutes(FieldTravelMinutes, f.TravelMinutes, DefaultTravelMinutes, 1)
	if err != nil {
		return models.ScheduleRequest{}, err
	}
	prep, err := parseMinutes(FieldPrepMinutes, f.PrepMinutes, DefaultPrepMinutes, 0)
	if err != nil {
		return models.ScheduleRequest{}, err
	}

	return models.ScheduleRequest{
		PhoneNumber:   phone,
		StartAddress:  start,
		EventAddress:  dest,
		TransportMode: mode,
		PrepMinutes:   prep,
		PrepChecklist: f.PrepChecklist,
		EventTime:     event,
		TravelMinutes: travel,
	}, nil
}

func parseMinutes(field, raw string, def, min int) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, invalid(field, "not a whole number of minutes")
	}
	if n < min {
		return 0, invalid(field, "must be at least "+strconv.Itoa(min))
	}
	if n > MaxMinutes {
		return 0, invalid(field, "must be at most "+strconv.Itoa(MaxMinutes))
	}
	return n, nil
}
