package models

import (
	"time"
)

type TransportMode string

const (
	TransportTransit   TransportMode = "transit"
	TransportDriving   TransportMode = "driving"
	TransportWalking   TransportMode = "walking"
	TransportBicycling TransportMode = "bicycling"
)

func (m TransportMode) Valid() bool {
	switch m {
	case TransportTransit, TransportDriving, TransportWalking, TransportBicycling:
		return true
	}
	return false
}

// ScheduleRequest is built once per submission and never modified afterwards.
type ScheduleRequest struct {
	PhoneNumber   string
	StartAddress  string
	EventAddress  string
	TransportMode TransportMode
	PrepMinutes   int
	PrepChecklist string
	EventTime     time.Time
	TravelMinutes int
}

type Schedule struct {
	EventTime time.Time `json:"event_time"`
	LeaveTime time.Time `json:"leave_time"`
	WakeTime  time.Time `json:"wake_time"`
}

// OutboundPayload is the body posted to the scheduling service.
type OutboundPayload struct {
	PhoneNumber   string `json:"phone_number"`
	StartAddress  string `json:"start_address"`
	EventAddress  string `json:"event_address"`
	TransportMode string `json:"transport_mode"`
	PrepMinutes   int    `json:"prep_minutes"`
	PrepChecklist string `json:"prep_checklist"`
	EventTime     string `json:"event_time"`
	TravelMinutes int    `json:"travel_minutes"`
	WakeTime      string `json:"wake_time"`
	LeaveTime     string `json:"leave_time"`
}

type ScheduleResponse struct {
	Scheduled int `json:"scheduled"`
}
