package main

import (
	"fmt"
	"io"
	"punctual/internal/config"
	"punctual/internal/models"
	"punctual/internal/usecases"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

const clockLayout = "Mon Jan 2 2006, 3:04 PM MST"

type formFlags struct {
	phone     string
	start     string
	event     string
	mode      string
	eventTime string
	checklist string
	travel    int
	prep      int
}

func (f *formFlags) bindTiming(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.eventTime, "event-time", "", "Event time, e.g. 2024-06-01T18:00 or RFC 3339")
	cmd.Flags().IntVar(&f.travel, "travel", usecases.DefaultTravelMinutes, "Travel time in minutes")
	cmd.Flags().IntVar(&f.prep, "prep", usecases.DefaultPrepMinutes, "Prep time in minutes")
	_ = cmd.MarkFlagRequired("event-time")
}

func (f *formFlags) bindAll(cmd *cobra.Command) {
	f.bindTiming(cmd)
	cmd.Flags().StringVar(&f.phone, "phone", "", "Phone number to text")
	cmd.Flags().StringVar(&f.start, "start", "", "Where you are leaving from")
	cmd.Flags().StringVar(&f.event, "event", "", "Where the event is")
	cmd.Flags().StringVar(&f.mode, "mode", string(models.TransportTransit), "transit, driving, walking or bicycling")
	cmd.Flags().StringVar(&f.checklist, "checklist", "", "Prep checklist")
}

func (f *formFlags) fields() usecases.FormFields {
	return usecases.FormFields{
		PhoneNumber:   f.phone,
		StartAddress:  f.start,
		EventAddress:  f.event,
		TransportMode: f.mode,
		PrepMinutes:   strconv.Itoa(f.prep),
		PrepChecklist: f.checklist,
		EventTime:     f.eventTime,
		TravelMinutes: strconv.Itoa(f.travel),
	}
}

func planCmd(cfg *config.Config, log zerolog.Logger) *cobra.Command {
	var f formFlags
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Print when to start getting ready and when to leave",
		RunE: func(cmd *cobra.Command, args []string) error {
			sched, err := usecases.ComputeSchedule(f.eventTime, f.travel, f.prep, location(cfg, log))
			if err != nil {
				return err
			}
			printSchedule(cmd.OutOrStdout(), sched)
			return nil
		},
	}
	f.bindTiming(cmd)
	return cmd
}

func submitCmd(cfg *config.Config, log zerolog.Logger) *cobra.Command {
	var f formFlags
	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Send a schedule to the SMS scheduling service",
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := usecases.DecodeForm(f.fields(), location(cfg, log))
			if err != nil {
				return err
			}
			payload, sched, err := usecases.BuildOutboundRequest(req)
			if err != nil {
				return err
			}
			if err := usecases.CheckPhoneNumber(payload.PhoneNumber); err != nil {
				log.Warn().Err(err).Msg("sending possibly malformed phone number")
			}

			out := cmd.OutOrStdout()
			printSchedule(out, sched)

			resp, err := newClient(cfg, log).Schedule(cmd.Context(), payload)
			if err != nil {
				return fmt.Errorf("server or SMS provider error occurred: %w", err)
			}
			fmt.Fprintf(out, "%d text messages scheduled successfully!\n", resp.Scheduled)
			return nil
		},
	}
	f.bindAll(cmd)
	for _, name := range []string{"phone", "start", "event"} {
		_ = cmd.MarkFlagRequired(name)
	}
	return cmd
}

func icsCmd(cfg *config.Config, log zerolog.Logger) *cobra.Command {
	var f formFlags
	cmd := &cobra.Command{
		Use:   "ics",
		Short: "Write the schedule as an iCalendar file to stdout",
		RunE: func(cmd *cobra.Command, args []string) error {
			if f.phone == "" {
				// The calendar never dials it; DecodeForm still wants one.
				f.phone = "-"
			}
			req, err := usecases.DecodeForm(f.fields(), location(cfg, log))
			if err != nil {
				return err
			}
			sched, err := usecases.ComputeScheduleAt(req.EventTime, req.TravelMinutes, req.PrepMinutes)
			if err != nil {
				return err
			}
			_, err = io.WriteString(cmd.OutOrStdout(), usecases.BuildCalendar(req, sched, time.Now()))
			return err
		},
	}
	f.bindAll(cmd)
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("event")
	return cmd
}

func printSchedule(w io.Writer, sched models.Schedule) {
	fmt.Fprintf(w, "Start getting ready: %s\n", sched.WakeTime.Format(clockLayout))
	fmt.Fprintf(w, "Leave:               %s\n", sched.LeaveTime.Format(clockLayout))
	fmt.Fprintf(w, "Event:               %s\n", sched.EventTime.Format(clockLayout))
}
