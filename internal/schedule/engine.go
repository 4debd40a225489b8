package schedule

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_calendar.go -package=mocks concierge-ai/internal/schedule Calendar

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"concierge-ai/internal/contextutil"
)

// Event is a calendar event as seen by the booking engine.
type Event struct {
	ID      string    `json:"id,omitempty"`
	Summary string    `json:"summary"`
	Start   time.Time `json:"start"`
	End     time.Time `json:"end"`
}

// Calendar is the calendar collaborator the engine books against.
type Calendar interface {
	// ListEvents returns the events overlapping the half-open window [from, to).
	ListEvents(ctx context.Context, from, to time.Time) ([]Event, error)
	// InsertEvent commits an event to the calendar and returns it with its
	// assigned id.
	InsertEvent(ctx context.Context, ev Event) (Event, error)
}

// Request carries the requester details and the desired appointment date.
type Request struct {
	Name  string    `json:"name"`
	Phone string    `json:"phone"`
	Email string    `json:"email"`
	Date  time.Time `json:"date"`
}

// State is the terminal state of a booking attempt.
type State string

const (
	// StateBooked means the event was committed, possibly on an alternate day.
	StateBooked State = "booked"
	// StateRejected means the request failed validation.
	StateRejected State = "rejected"
	// StateNoSlotAvailable means every day of the requested week is occupied.
	StateNoSlotAvailable State = "no_slot_available"
	// StateFailed means the calendar collaborator errored.
	StateFailed State = "failed"
)

// Outcome is the result of a booking attempt.
type Outcome struct {
	State State `json:"state"`
	// Reason explains a rejection in terms of the failing fields.
	Reason string `json:"reason,omitempty"`
	// RequestedDate is the day the requester asked for.
	RequestedDate time.Time `json:"requested_date,omitempty"`
	// BookedDate is the day actually booked. It differs from RequestedDate
	// when the requested day was occupied and an alternate was found.
	BookedDate time.Time `json:"booked_date,omitempty"`
	// Event is the committed calendar event when State is StateBooked.
	Event *Event `json:"event,omitempty"`
	// Err holds the collaborator error when State is StateFailed.
	Err error `json:"-"`
}

// Engine books day-granularity appointment slots on a calendar. A calendar
// day is either fully occupied or fully free; one appointment per day.
type Engine struct {
	calendar Calendar

	// mu serializes booking attempts so the availability check and the
	// insert behave as one step against the shared calendar.
	mu sync.Mutex
}

// NewEngine creates a booking engine over the given calendar.
func NewEngine(calendar Calendar) *Engine {
	return &Engine{calendar: calendar}
}

// Book validates the request and books the requested day, or the first free
// day of the same ISO week when the requested day is occupied. The week scan
// runs Monday through Sunday and never looks past the requested week.
func (e *Engine) Book(ctx context.Context, req Request) Outcome {
	logger := contextutil.LoggerFromContext(ctx)

	if reason := validate(req); reason != "" {
		logger.InfoContext(ctx, "booking rejected", "reason", reason)
		return Outcome{State: StateRejected, Reason: reason, RequestedDate: req.Date}
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	requested := dayStart(req.Date)

	occupied, err := e.dayOccupied(ctx, requested)
	if err != nil {
		logger.ErrorContext(ctx, "availability check failed", "error", err)
		return Outcome{State: StateFailed, RequestedDate: requested, Err: err}
	}

	target := requested
	if occupied {
		logger.InfoContext(ctx, "requested day occupied, scanning week", "requested", requested)
		alternate, err := e.firstFreeDayOfWeek(ctx, requested)
		if err != nil {
			return Outcome{State: StateFailed, RequestedDate: requested, Err: err}
		}
		if alternate.IsZero() {
			logger.InfoContext(ctx, "no free day in week", "requested", requested)
			return Outcome{State: StateNoSlotAvailable, RequestedDate: requested}
		}
		target = alternate
	}

	ev := Event{
		Summary: fmt.Sprintf("Appointment - %s, Phone: %s, Email: %s", req.Name, req.Phone, req.Email),
		Start:   target,
		End:     target.Add(time.Hour),
	}
	created, err := e.calendar.InsertEvent(ctx, ev)
	if err != nil {
		logger.ErrorContext(ctx, "event insert failed", "error", err)
		return Outcome{State: StateFailed, RequestedDate: requested, Err: err}
	}

	logger.InfoContext(ctx, "appointment booked", "requested", requested, "booked", target)
	return Outcome{
		State:         StateBooked,
		RequestedDate: requested,
		BookedDate:    target,
		Event:         &created,
	}
}

// validate returns a rejection reason naming exactly the missing fields, or
// an empty string when the request is complete.
func validate(req Request) string {
	var missing []string
	if strings.TrimSpace(req.Name) == "" {
		missing = append(missing, "name")
	}
	if strings.TrimSpace(req.Phone) == "" {
		missing = append(missing, "phone")
	}
	if strings.TrimSpace(req.Email) == "" {
		missing = append(missing, "email")
	}
	if req.Date.IsZero() {
		missing = append(missing, "requested_date")
	}
	if len(missing) == 0 {
		return ""
	}
	return "missing required fields: " + strings.Join(missing, ", ")
}

// dayOccupied reports whether any event exists in [day, day+24h).
func (e *Engine) dayOccupied(ctx context.Context, day time.Time) (bool, error) {
	events, err := e.calendar.ListEvents(ctx, day, day.AddDate(0, 0, 1))
	if err != nil {
		return false, fmt.Errorf("failed to list events: %w", err)
	}
	return len(events) > 0, nil
}

// firstFreeDayOfWeek scans the ISO week containing day from Monday upward
// and returns the first day with zero events, or the zero time when the
// whole week is occupied.
func (e *Engine) firstFreeDayOfWeek(ctx context.Context, day time.Time) (time.Time, error) {
	monday := day.AddDate(0, 0, -mondayIndex(day.Weekday()))
	for i := 0; i < 7; i++ {
		candidate := monday.AddDate(0, 0, i)
		occupied, err := e.dayOccupied(ctx, candidate)
		if err != nil {
			return time.Time{}, err
		}
		if !occupied {
			return candidate, nil
		}
	}
	return time.Time{}, nil
}

// dayStart truncates a timestamp to the start of its calendar day, stamped UTC.
// The wall-clock date is kept as the requester expressed it.
func dayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
