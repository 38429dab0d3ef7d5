package usecases

import (
	"fmt"
	"punctual/internal/models"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/google/uuid"
)

const calendarProduct = "-//punctual//schedule export//EN"

// BuildCalendar renders the computed schedule as an iCalendar document with a
// prep block, a travel block and the event itself. stamp fills DTSTAMP.
func BuildCalendar(req models.ScheduleRequest, sched models.Schedule, stamp time.Time) string {
	cal := ical.NewCalendar()
	cal.SetProductId(calendarProduct)
	cal.SetMethod(ical.MethodPublish)
	cal.SetXWRCalName("Punctual")

	// Same request, same UIDs, so re-importing updates instead of duplicating.
	seed := fmt.Sprintf("%s|%s|%s", NormalizePhoneNumber(req.PhoneNumber), FormatISO(sched.EventTime), req.EventAddress)
	uid := func(kind string) string {
		return uuid.NewSHA1(uuid.NameSpaceURL, []byte(seed+"|"+kind)).String() + "@punctual"
	}

	prep := cal.AddEvent(uid("wake"))
	prep.SetDtStampTime(stamp)
	prep.SetStartAt(sched.WakeTime)
	prep.SetEndAt(sched.LeaveTime)
	prep.SetSummary("Start getting ready")
	prep.SetLocation(req.StartAddress)
	if req.PrepChecklist != "" {
		prep.SetDescription(req.PrepChecklist)
	}
	addReminder(prep, "Time to start getting ready for your event.")

	travel := cal.AddEvent(uid("leave"))
	travel.SetDtStampTime(stamp)
	travel.SetStartAt(sched.LeaveTime)
	travel.SetEndAt(sched.EventTime)
	travel.SetSummary("Leave now")
	travel.SetLocation(req.StartAddress)
	travel.SetDescription(fmt.Sprintf("%s to %s (%d min)", req.TransportMode, req.EventAddress, req.TravelMinutes))
	addReminder(travel, "Time to leave now to be on time.")

	event := cal.AddEvent(uid("event"))
	event.SetDtStampTime(stamp)
	event.SetStartAt(sched.EventTime)
	event.SetSummary("Event")
	event.SetLocation(req.EventAddress)
	if req.PrepChecklist != "" {
		event.SetDescription(req.PrepChecklist)
	}

	return cal.Serialize()
}

func addReminder(event *ical.VEvent, text string) {
	alarm := event.AddAlarm()
	alarm.SetAction(ical.ActionDisplay)
	alarm.SetTrigger("PT0M")
	alarm.SetDescription(text)
}
