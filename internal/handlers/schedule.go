package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"punctual/internal/models"
	"punctual/internal/usecases"
	"time"

	"github.com/google/uuid"
	"github.com/julienschmidt/httprouter"
	"github.com/rs/zerolog"
)

const (
	StatusScheduled = "scheduled"
	StatusPreview   = "preview"
	StatusInvalid   = "invalid"
	StatusFailed    = "failed"

	msgInvalidEventTime = "Please enter a valid event time."
	msgTransportFailure = "Server or SMS provider error occurred."
)

var fieldLabels = map[string]string{
	usecases.FieldPhoneNumber:   "phone number",
	usecases.FieldStartAddress:  "starting address",
	usecases.FieldEventAddress:  "event address",
	usecases.FieldTransportMode: "mode of transportation",
	usecases.FieldTravelMinutes: "travel time",
	usecases.FieldPrepMinutes:   "prep time",
}

// Scheduler is the outbound side of a submission.
type Scheduler interface {
	Schedule(ctx context.Context, payload models.OutboundPayload) (models.ScheduleResponse, error)
}

// SubmissionJournal records what happened to each submission.
type SubmissionJournal interface {
	CreateSubmission(ctx context.Context, sub *models.Submission) error
	GetSubmissions(ctx context.Context, limit int) ([]models.Submission, error)
}

type ScheduleResult struct {
	ID        string `json:"id,omitempty"`
	Status    string `json:"status"`
	Message   string `json:"message"`
	Field     string `json:"field,omitempty"`
	Scheduled int    `json:"scheduled"`
	EventTime string `json:"event_time,omitempty"`
	WakeTime  string `json:"wake_time,omitempty"`
	LeaveTime string `json:"leave_time,omitempty"`
}

type ScheduleHandler struct {
	scheduler Scheduler
	journal   SubmissionJournal
	loc       *time.Location
	log       zerolog.Logger
	now       func() time.Time
}

// NewScheduleHandler wires the submission boundary. journal may be nil.
func NewScheduleHandler(scheduler Scheduler, journal SubmissionJournal, loc *time.Location, log zerolog.Logger) *ScheduleHandler {
	if loc == nil {
		loc = time.Local
	}
	return &ScheduleHandler{
		scheduler: scheduler,
		journal:   journal,
		loc:       loc,
		log:       log,
		now:       time.Now,
	}
}

// HandleSchedule takes one form submission through to the scheduling service.
func (sh *ScheduleHandler) HandleSchedule(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	op := "handlers.HandleSchedule"

	req, ok := sh.decode(w, r, op)
	if !ok {
		return
	}

	payload, sched, err := usecases.BuildOutboundRequest(req)
	if err != nil {
		sh.respondInvalid(w, op, err)
		return
	}

	if err := usecases.CheckPhoneNumber(payload.PhoneNumber); err != nil {
		sh.log.Warn().Str("op", op).Err(err).Msg("sending possibly malformed phone number")
	}

	// The call runs to completion even if the browser goes away.
	ctx := context.WithoutCancel(r.Context())

	result := scheduleResult(sched)
	result.ID = uuid.NewString()

	resp, err := sh.scheduler.Schedule(ctx, payload)
	if err != nil {
		sh.log.Error().Str("op", op).Str("id", result.ID).Err(err).Msg("scheduling failed")
		result.Status = StatusFailed
		result.Message = msgTransportFailure
		sh.record(ctx, op, result, req, sched)

		if err := respondWithJSON(w, http.StatusBadGateway, result); err != nil {
			sh.log.Error().Str("op", op).Err(err).Msg("encode response error")
		}
		return
	}

	result.Status = StatusScheduled
	result.Scheduled = resp.Scheduled
	result.Message = fmt.Sprintf("%d text messages scheduled successfully!", resp.Scheduled)
	sh.record(ctx, op, result, req, sched)

	sh.log.Info().
		Str("op", op).
		Str("id", result.ID).
		Int("scheduled", resp.Scheduled).
		Str("mode", string(req.TransportMode)).
		Msg("reminders scheduled")

	if err := respondWithJSON(w, http.StatusOK, result); err != nil {
		sh.log.Error().Str("op", op).Err(err).Msg("encode response error")
	}
}

// HandlePreview recomputes the schedule without contacting the service.
func (sh *ScheduleHandler) HandlePreview(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	op := "handlers.HandlePreview"

	req, ok := sh.decode(w, r, op)
	if !ok {
		return
	}

	sched, err := usecases.ComputeScheduleAt(req.EventTime, req.TravelMinutes, req.PrepMinutes)
	if err != nil {
		sh.respondInvalid(w, op, err)
		return
	}

	result := scheduleResult(sched)
	result.Status = StatusPreview
	result.Message = fmt.Sprintf("Start getting ready at %s and leave at %s.",
		sched.WakeTime.Format("3:04 PM"), sched.LeaveTime.Format("3:04 PM"))

	if err := respondWithJSON(w, http.StatusOK, result); err != nil {
		sh.log.Error().Str("op", op).Err(err).Msg("encode response error")
	}
}

// HandleCalendar returns the computed schedule as an .ics download.
func (sh *ScheduleHandler) HandleCalendar(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	op := "handlers.HandleCalendar"

	req, ok := sh.decode(w, r, op)
	if !ok {
		return
	}

	sched, err := usecases.ComputeScheduleAt(req.EventTime, req.TravelMinutes, req.PrepMinutes)
	if err != nil {
		sh.respondInvalid(w, op, err)
		return
	}

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="punctual.ics"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(usecases.BuildCalendar(req, sched, sh.now()))); err != nil {
		sh.log.Error().Str("op", op).Err(err).Msg("write calendar error")
	}
}

func (sh *ScheduleHandler) decode(w http.ResponseWriter, r *http.Request, op string) (models.ScheduleRequest, bool) {
	fields, err := readForm(w, r)
	if err != nil {
		sh.log.Debug().Str("op", op).Err(err).Msg("decode error")
		_ = respondWithError(w, http.StatusBadRequest, "Bad request")
		return models.ScheduleRequest{}, false
	}

	req, err := usecases.DecodeForm(fields, sh.loc)
	if err != nil {
		sh.respondInvalid(w, op, err)
		return models.ScheduleRequest{}, false
	}
	return req, true
}

func (sh *ScheduleHandler) respondInvalid(w http.ResponseWriter, op string, err error) {
	result := ScheduleResult{Status: StatusInvalid, Message: "Please check the form and try again."}

	var ie *usecases.InputError
	if errors.As(err, &ie) {
		result.Field = ie.Field
		if ie.Field == usecases.FieldEventTime {
			result.Message = msgInvalidEventTime
		} else if label, ok := fieldLabels[ie.Field]; ok {
			result.Message = fmt.Sprintf("Please enter a valid %s.", label)
		}
	}

	sh.log.Debug().Str("op", op).Err(err).Msg("rejected submission")
	if err := respondWithJSON(w, http.StatusBadRequest, result); err != nil {
		sh.log.Error().Str("op", op).Err(err).Msg("encode response error")
	}
}

// record is best effort; a journal failure never changes the user's result.
func (sh *ScheduleHandler) record(ctx context.Context, op string, result ScheduleResult, req models.ScheduleRequest, sched models.Schedule) {
	if sh.journal == nil {
		return
	}

	status := models.SubmissionScheduled
	if result.Status != StatusScheduled {
		status = models.SubmissionFailed
	}

	sub := &models.Submission{
		ID:            result.ID,
		PhoneNumber:   usecases.NormalizePhoneNumber(req.PhoneNumber),
		TransportMode: string(req.TransportMode),
		EventTime:     sched.EventTime,
		WakeTime:      sched.WakeTime,
		LeaveTime:     sched.LeaveTime,
		Scheduled:     result.Scheduled,
		Status:        status,
		Message:       result.Message,
		CreatedAt:     sh.now().UTC(),
	}
	if err := sh.journal.CreateSubmission(ctx, sub); err != nil {
		sh.log.Error().Str("op", op).Str("id", result.ID).Err(err).Msg("save submission error")
	}
}

func scheduleResult(sched models.Schedule) ScheduleResult {
	return ScheduleResult{
		EventTime: usecases.FormatISO(sched.EventTime),
		WakeTime:  usecases.FormatISO(sched.WakeTime),
		LeaveTime: usecases.FormatISO(sched.LeaveTime),
	}
}
