package models

import (
	"time"
)

const (
	SubmissionScheduled = "scheduled"
	SubmissionFailed    = "failed"
)

type Submission struct {
	ID            string    `json:"id" db:"id"`
	PhoneNumber   string    `json:"phone_number" db:"phone_number"`
	TransportMode string    `json:"transport_mode" db:"transport_mode"`
	EventTime     time.Time `json:"event_time" db:"event_time"`
	WakeTime      time.Time `json:"wake_time" db:"wake_time"`
	LeaveTime     time.Time `json:"leave_time" db:"leave_time"`
	Scheduled     int       `json:"scheduled" db:"scheduled"`
	Status        string    `json:"status" db:"status"`
	Message       string    `json:"message" db:"message"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}
