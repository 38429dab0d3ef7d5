package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"punctual/internal/usecases"
)

const maxFormBytes = 64 << 10

// looseString accepts a JSON string or number. Browsers send number inputs
// as either depending on how the form state was built.
type looseString string

func (s *looseString) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*s = ""
		return nil
	}
	var str string
	if err := json.Unmarshal(b, &str); err == nil {
		*s = looseString(str)
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(b, &num); err != nil {
		return fmt.Errorf("expected string or number, got %s", b)
	}
	*s = looseString(num.String())
	return nil
}

type formBody struct {
	PhoneNumber   looseString `json:"phone_number"`
	StartAddress  looseString `json:"start_address"`
	EventAddress  looseString `json:"event_address"`
	TransportMode looseString `json:"transport_mode"`
	PrepMinutes   looseString `json:"prep_minutes"`
	PrepChecklist looseString `json:"prep_checklist"`
	EventTime     looseString `json:"event_time"`
	TravelMinutes looseString `json:"travel_minutes"`
}

var errUnreadableForm = errors.New("unreadable form body")

// readForm pulls the raw form fields from a JSON or urlencoded body.
func readForm(w http.ResponseWriter, r *http.Request) (usecases.FormFields, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mediaType {
	case "application/x-www-form-urlencoded", "multipart/form-data":
		if err := r.ParseMultipartForm(maxFormBytes); err != nil && !errors.Is(err, http.ErrNotMultipart) {
			return usecases.FormFields{}, fmt.Errorf("%w: %w", errUnreadableForm, err)
		}
		return usecases.FormFields{
			PhoneNumber:   r.PostFormValue(usecases.FieldPhoneNumber),
			StartAddress:  r.PostFormValue(usecases.FieldStartAddress),
			EventAddress:  r.PostFormValue(usecases.FieldEventAddress),
			TransportMode: r.PostFormValue(usecases.FieldTransportMode),
			PrepMinutes:   r.PostFormValue(usecases.FieldPrepMinutes),
			PrepChecklist: r.PostFormValue(usecases.FieldPrepChecklist),
			EventTime:     r.PostFormValue(usecases.FieldEventTime),
			TravelMinutes: r.PostFormValue(usecases.FieldTravelMinutes),
		}, nil
	}

	var body formBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		return usecases.FormFields{}, fmt.Errorf("%w: %w", errUnreadableForm, err)
	}
	return usecases.FormFields{
		PhoneNumber:   string(body.PhoneNumber),
		StartAddress:  string(body.StartAddress),
		EventAddress:  string(body.EventAddress),
		TransportMode: string(body.TransportMode),
		PrepMinutes:   string(body.PrepMinutes),
		PrepChecklist: string(body.PrepChecklist),
		EventTime:     string(body.EventTime),
		TravelMinutes: string(body.TravelMinutes),
	}, nil
}
