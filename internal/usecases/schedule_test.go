package usecases

import (
	"errors"
	"testing"
	"time"
)

func TestComputeScheduleWorksBackFromEvent(t *testing.T) {
	loc := time.FixedZone("MDT", -6*3600)

	sched, err := ComputeSchedule("2024-06-01T18:00:00", 30, 45, loc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantLeave := time.Date(2024, 6, 1, 17, 30, 0, 0, loc)
	wantWake := time.Date(2024, 6, 1, 16, 45, 0, 0, loc)
	if !sched.LeaveTime.Equal(wantLeave) {
		t.Fatalf("leave = %s, want %s", sched.LeaveTime, wantLeave)
	}
	if !sched.WakeTime.Equal(wantWake) {
		t.Fatalf("wake = %s, want %s", sched.WakeTime, wantWake)
	}
	if got := sched.LeaveTime.Format("2006-01-02T15:04:05"); got != "2024-06-01T17:30:00" {
		t.Fatalf("leave wall clock = %s", got)
	}
}

func TestComputeScheduleOrdering(t *testing.T) {
	cases := []struct {
		travel, prep int
	}{
		{0, 0},
		{1, 0},
		{0, 1},
		{30, 45},
		{600, 1440},
	}

	for _, c := range cases {
		sched, err := ComputeSchedule("2024-11-03T01:30", c.travel, c.prep, time.UTC)
		if err != nil {
			t.Fatalf("travel=%d prep=%d: %v", c.travel, c.prep, err)
		}
		if sched.WakeTime.After(sched.LeaveTime) || sched.LeaveTime.After(sched.EventTime) {
			t.Fatalf("travel=%d prep=%d: ordering broken: wake=%s leave=%s event=%s",
				c.travel, c.prep, sched.WakeTime, sched.LeaveTime, sched.EventTime)
		}
		if c.travel == 0 && !sched.LeaveTime.Equal(sched.EventTime) {
			t.Fatalf("zero travel should leave at event time")
		}
		if c.prep == 0 && !sched.WakeTime.Equal(sched.LeaveTime) {
			t.Fatalf("zero prep should wake at leave time")
		}
	}
}

func TestComputeScheduleDeterministic(t *testing.T) {
	a, err := ComputeSchedule("2024-06-01T18:00:00Z", 12, 34, time.UTC)
	if err != nil {
		t.Fatal(err)
	}
	b, err := ComputeSchedule("2024-06-01T18:00:00Z", 12, 34, time.UTC)
	if err != nil {
		t.Fatal(err)
	}
	if a != b {
		t.Fatalf("results differ: %+v vs %+v", a, b)
	}
}

func TestComputeScheduleRejectsBadInput(t *testing.T) {
	cases := []struct {
		name         string
		event        string
		travel, prep int
		field        string
	}{
		{"empty", "", 30, 30, FieldEventTime},
		{"garbage", "tomorrow-ish", 30, 30, FieldEventTime},
		{"bad month", "2024-13-01T10:00", 30, 30, FieldEventTime},
		{"negative travel", "2024-06-01T18:00", -1, 30, FieldTravelMinutes},
		{"negative prep", "2024-06-01T18:00", 30, -5, FieldPrepMinutes},
		{"travel over cap", "2024-06-01T18:00", MaxMinutes + 1, 30, FieldTravelMinutes},
		{"prep over cap", "2024-06-01T18:00", 30, MaxMinutes + 1, FieldPrepMinutes},
		{"travel overflows duration", "2024-06-01T18:00", 200000000, 0, FieldTravelMinutes},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := ComputeSchedule(c.event, c.travel, c.prep, time.UTC)
			if !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
			var ie *InputError
			if !errors.As(err, &ie) || ie.Field != c.field {
				t.Fatalf("expected field %s, got %v", c.field, err)
			}
		})
	}
}

func TestParseEventTimeLayouts(t *testing.T) {
	loc := time.FixedZone("EST", -5*3600)
	want := time.Date(2025, 11, 15, 12, 0, 0, 0, loc)

	for _, raw := range []string{
		"2025-11-15T12:00",
		"2025-11-15T12:00:00",
		"2025-11-15 12:00",
		" 2025-11-15 12:00:00 ",
		"2025-11-15T12:00:00-05:00",
		"2025-11-15T17:00:00Z",
		"2025-11-15T17:00:00.000Z",
	} {
		got, err := ParseEventTime(raw, loc)
		if err != nil {
			t.Fatalf("%q: %v", raw, err)
		}
		if !got.Equal(want) {
			t.Fatalf("%q: got %s, want %s", raw, got, want)
		}
	}
}

func TestComputeScheduleAtCap(t *testing.T) {
	event := time.Date(2024, 6, 1, 18, 0, 0, 0, time.UTC)

	sched, err := ComputeScheduleAt(event, MaxMinutes, MaxMinutes)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sched.WakeTime.After(sched.LeaveTime) || sched.LeaveTime.After(sched.EventTime) {
		t.Fatalf("ordering broken: wake=%s leave=%s event=%s", sched.WakeTime, sched.LeaveTime, sched.EventTime)
	}
	if want := event.Add(-14 * 24 * time.Hour); !sched.WakeTime.Equal(want) {
		t.Fatalf("wake = %s, want %s", sched.WakeTime, want)
	}
}

func TestComputeScheduleAtOutOfRange(t *testing.T) {
	for name, event := range map[string]time.Time{
		"zero time":        {},
		"wake before 0000": time.Date(0, 1, 1, 0, 30, 0, 0, time.UTC),
		"event after 9999": time.Date(10000, 1, 1, 12, 0, 0, 0, time.UTC),
	} {
		_, err := ComputeScheduleAt(event, 60, 0)
		var ie *InputError
		if !errors.As(err, &ie) || ie.Field != FieldEventTime {
			t.Fatalf("%s: expected event time error, got %v", name, err)
		}
	}
}
