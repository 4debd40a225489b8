package calendar

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"concierge-ai/internal/schedule"
)

// Service books against a Google Calendar. It implements schedule.Calendar.
type Service struct {
	svc        *gcal.Service
	calendarID string
	timeout    time.Duration
}

// NewService builds a calendar client from an OAuth client secret file and a
// previously stored token file. Acquiring the token (the interactive consent
// flow) is outside this service; it only consumes the stored result.
func NewService(ctx context.Context, credentialsPath, tokenPath, calendarID string, timeout time.Duration) (*Service, error) {
	credBytes, err := os.ReadFile(credentialsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read credentials file: %w", err)
	}

	cfg, err := google.ConfigFromJSON(credBytes, gcal.CalendarScope)
	if err != nil {
		return nil, fmt.Errorf("failed to parse credentials file: %w", err)
	}

	tokBytes, err := os.ReadFile(tokenPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read token file: %w", err)
	}
	tok := &oauth2.Token{}
	if err := json.Unmarshal(tokBytes, tok); err != nil {
		return nil, fmt.Errorf("failed to parse token file: %w", err)
	}

	svc, err := gcal.NewService(ctx, option.WithTokenSource(cfg.TokenSource(ctx, tok)))
	if err != nil {
		return nil, fmt.Errorf("failed to create calendar service: %w", err)
	}

	return &Service{
		svc:        svc,
		calendarID: calendarID,
		timeout:    timeout,
	}, nil
}

// ListEvents returns the events in [from, to), expanded to single instances.
func (s *Service) ListEvents(ctx context.Context, from, to time.Time) ([]schedule.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	result, err := s.svc.Events.List(s.calendarID).
		TimeMin(from.Format(time.RFC3339)).
		TimeMax(to.Format(time.RFC3339)).
		SingleEvents(true).
		OrderBy("startTime").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}

	events := make([]schedule.Event, 0, len(result.Items))
	for _, item := range result.Items {
		events = append(events, schedule.Event{
			ID:      item.Id,
			Summary: item.Summary,
			Start:   parseEventTime(item.Start),
			End:     parseEventTime(item.End),
		})
	}
	return events, nil
}

// InsertEvent commits an event to the calendar, stamped UTC.
func (s *Service) InsertEvent(ctx context.Context, ev schedule.Event) (schedule.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	body := &gcal.Event{
		Summary: ev.Summary,
		Start: &gcal.EventDateTime{
			DateTime: ev.Start.UTC().Format(time.RFC3339),
			TimeZone: "UTC",
		},
		End: &gcal.EventDateTime{
			DateTime: ev.End.UTC().Format(time.RFC3339),
			TimeZone: "UTC",
		},
	}

	created, err := s.svc.Events.Insert(s.calendarID, body).Context(ctx).Do()
	if err != nil {
		return schedule.Event{}, fmt.Errorf("failed to insert event: %w", err)
	}

	return schedule.Event{
		ID:      created.Id,
		Summary: created.Summary,
		Start:   ev.Start,
		End:     ev.End,
	}, nil
}

// parseEventTime handles both timed and all-day event boundaries.
func parseEventTime(edt *gcal.EventDateTime) time.Time {
	if edt == nil {
		return time.Time{}
	}
	if edt.DateTime != "" {
		if t, err := time.Parse(time.RFC3339, edt.DateTime); err == nil {
			return t
		}
		return time.Time{}
	}
	if t, err := time.Parse("2006-01-02", edt.Date); err == nil {
		return t
	}
	return time.Time{}
}
