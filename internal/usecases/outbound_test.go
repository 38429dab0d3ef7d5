package usecases

import (
	"encoding/json"
	"errors"
	"punctual/internal/models"
	"testing"
	"time"
)

func TestBuildOutboundRequest(t *testing.T) {
	loc := time.FixedZone("MDT", -6*3600)
	req := models.ScheduleRequest{
		PhoneNumber:   "+1 (403) 123-4567",
		StartAddress:  "home",
		EventAddress:  "work",
		TransportMode: models.TransportWalking,
		PrepMinutes:   45,
		PrepChecklist: "",
		EventTime:     time.Date(2024, 6, 1, 18, 0, 0, 0, loc),
		TravelMinutes: 30,
	}

	payload, sched, err := BuildOutboundRequest(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := models.OutboundPayload{
		PhoneNumber:   "+14031234567",
		StartAddress:  "home",
		EventAddress:  "work",
		TransportMode: "walking",
		PrepMinutes:   45,
		PrepChecklist: "",
		EventTime:     "2024-06-02T00:00:00.000Z",
		TravelMinutes: 30,
		WakeTime:      "2024-06-01T22:45:00.000Z",
		LeaveTime:     "2024-06-01T23:30:00.000Z",
	}
	if payload != want {
		t.Fatalf("payload mismatch:\n got %+v\nwant %+v", payload, want)
	}
	if !sched.LeaveTime.Equal(req.EventTime.Add(-30 * time.Minute)) {
		t.Fatalf("schedule not returned alongside payload: %+v", sched)
	}
}

func TestOutboundPayloadWireNames(t *testing.T) {
	b, err := json.Marshal(models.OutboundPayload{})
	if err != nil {
		t.Fatal(err)
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		t.Fatal(err)
	}

	for _, k := range []string{
		"phone_number", "start_address", "event_address", "transport_mode",
		"prep_minutes", "travel_minutes", "prep_checklist",
		"event_time", "wake_time", "leave_time",
	} {
		if _, ok := m[k]; !ok {
			t.Errorf("missing wire field %s", k)
		}
	}
	if len(m) != 10 {
		t.Errorf("expected 10 wire fields, got %d", len(m))
	}
}

func TestBuildOutboundRequestFailsWithoutEventTime(t *testing.T) {
	_, _, err := BuildOutboundRequest(models.ScheduleRequest{PhoneNumber: "4031234567", TravelMinutes: 10})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
