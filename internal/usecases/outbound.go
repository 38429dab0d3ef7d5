package usecases

import (
	"fmt"
	"punctual/internal/models"
	"time"
)

// ISOLayout matches what browsers emit from Date.toISOString.
const ISOLayout = "2006-01-02T15:04:05.000Z"

func FormatISO(t time.Time) string {
	return t.UTC().Format(ISOLayout)
}

// BuildOutboundRequest maps a request into the scheduling service payload.
// Nothing should be sent when it returns an error.
func BuildOutboundRequest(req models.ScheduleRequest) (models.OutboundPayload, models.Schedule, error) {
	op := "usecases.BuildOutboundRequest"

	sched, err := ComputeScheduleAt(req.EventTime, req.TravelMinutes, req.PrepMinutes)
	if err != nil {
		return models.OutboundPayload{}, models.Schedule{}, fmt.Errorf("%s: %w", op, err)
	}

	payload := models.OutboundPayload{
		PhoneNumber:   NormalizePhoneNumber(req.PhoneNumber),
		StartAddress:  req.StartAddress,
		EventAddress:  req.EventAddress,
		TransportMode: string(req.TransportMode),
		PrepMinutes:   req.PrepMinutes,
		PrepChecklist: req.PrepChecklist,
		EventTime:     FormatISO(sched.EventTime),
		TravelMinutes: req.TravelMinutes,
		WakeTime:      FormatISO(sched.WakeTime),
		LeaveTime:     FormatISO(sched.LeaveTime),
	}

	return payload, sched, nil
}
