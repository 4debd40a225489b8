package schedule_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	. "concierge-ai/internal/schedule"
	schedule_mocks "concierge-ai/internal/schedule/mocks"

	"go.uber.org/mock/gomock"
)

// A Monday.
var monday = time.Date(2024, 12, 9, 0, 0, 0, 0, time.UTC)

func day(offset int) time.Time {
	return monday.AddDate(0, 0, offset)
}

// occupiedCalendar answers ListEvents from a fixed set of busy days.
func occupiedCalendar(cal *schedule_mocks.MockCalendar, busy map[time.Time]bool) {
	cal.EXPECT().ListEvents(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, from, to time.Time) ([]Event, error) {
			if !to.Equal(from.AddDate(0, 0, 1)) {
				return nil, errors.New("expected a one-day window")
			}
			if busy[from] {
				return []Event{{Summary: "busy"}}, nil
			}
			return nil, nil
		}).AnyTimes()
}

func validRequest(date time.Time) Request {
	return Request{
		Name:  "John Doe",
		Phone: "+1234567890",
		Email: "john.doe@example.com",
		Date:  date,
	}
}

func TestEngine_Book_FreeDay(t *testing.T) {
	ctrl := gomock.NewController(t)
	cal := schedule_mocks.NewMockCalendar(ctrl)
	engine := NewEngine(cal)

	occupiedCalendar(cal, nil)
	cal.EXPECT().InsertEvent(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, ev Event) (Event, error) {
			if !ev.Start.Equal(day(0)) {
				t.Errorf("event start = %v, want %v", ev.Start, day(0))
			}
			if !ev.End.Equal(day(0).Add(time.Hour)) {
				t.Errorf("event end = %v, want start + 1h", ev.End)
			}
			for _, part := range []string{"John Doe", "+1234567890", "john.doe@example.com"} {
				if !strings.Contains(ev.Summary, part) {
					t.Errorf("event summary %q missing %q", ev.Summary, part)
				}
			}
			ev.ID = "ev-1"
			return ev, nil
		})

	// Requested at 10:00, booked at day start.
	outcome := engine.Book(context.Background(), validRequest(day(0).Add(10*time.Hour)))
	if outcome.State != StateBooked {
		t.Fatalf("Book() state = %v, want booked", outcome.State)
	}
	if !outcome.BookedDate.Equal(day(0)) {
		t.Errorf("Book() booked date = %v, want %v", outcome.BookedDate, day(0))
	}
	if outcome.Event == nil || outcome.Event.ID != "ev-1" {
		t.Errorf("Book() event = %+v, want committed event", outcome.Event)
	}
}

func TestEngine_Book_ConflictBooksFirstFreeDayOfWeek(t *testing.T) {
	ctrl := gomock.NewController(t)
	cal := schedule_mocks.NewMockCalendar(ctrl)
	engine := NewEngine(cal)

	// Monday through Wednesday occupied; Thursday is the first free day.
	occupiedCalendar(cal, map[time.Time]bool{
		day(0): true,
		day(1): true,
		day(2): true,
	})
	cal.EXPECT().InsertEvent(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, ev Event) (Event, error) {
			if !ev.Start.Equal(day(3)) {
				t.Errorf("event start = %v, want Thursday %v", ev.Start, day(3))
			}
			return ev, nil
		})

	outcome := engine.Book(context.Background(), validRequest(day(0)))
	if outcome.State != StateBooked {
		t.Fatalf("Book() state = %v, want booked", outcome.State)
	}
	if !outcome.BookedDate.Equal(day(3)) {
		t.Errorf("Book() booked date = %v, want Thursday %v", outcome.BookedDate, day(3))
	}
	if !outcome.RequestedDate.Equal(day(0)) {
		t.Errorf("Book() requested date = %v, want Monday %v", outcome.RequestedDate, day(0))
	}
}

func TestEngine_Book_ScanStartsAtMondayEvenForLateWeekRequest(t *testing.T) {
	ctrl := gomock.NewController(t)
	cal := schedule_mocks.NewMockCalendar(ctrl)
	engine := NewEngine(cal)

	// Friday requested and occupied; Monday of the same week is free, so the
	// scan books it even though it is before the requested day.
	occupiedCalendar(cal, map[time.Time]bool{
		day(4): true,
	})
	cal.EXPECT().InsertEvent(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, ev Event) (Event, error) { return ev, nil })

	outcome := engine.Book(context.Background(), validRequest(day(4)))
	if outcome.State != StateBooked {
		t.Fatalf("Book() state = %v, want booked", outcome.State)
	}
	if !outcome.BookedDate.Equal(day(0)) {
		t.Errorf("Book() booked date = %v, want Monday %v", outcome.BookedDate, day(0))
	}
}

func TestEngine_Book_FullWeek(t *testing.T) {
	ctrl := gomock.NewController(t)
	cal := schedule_mocks.NewMockCalendar(ctrl)
	engine := NewEngine(cal)

	busy := make(map[time.Time]bool)
	for i := 0; i < 7; i++ {
		busy[day(i)] = true
	}
	occupiedCalendar(cal, busy)
	// InsertEvent is never called.

	outcome := engine.Book(context.Background(), validRequest(day(2)))
	if outcome.State != StateNoSlotAvailable {
		t.Fatalf("Book() state = %v, want no_slot_available", outcome.State)
	}
}

func TestEngine_Book_Validation(t *testing.T) {
	tests := []struct {
		name       string
		mutate     func(*Request)
		wantReason string
	}{
		{"missing name", func(r *Request) { r.Name = "" }, "missing required fields: name"},
		{"missing phone", func(r *Request) { r.Phone = "  " }, "missing required fields: phone"},
		{"missing email", func(r *Request) { r.Email = "" }, "missing required fields: email"},
		{"missing date", func(r *Request) { r.Date = time.Time{} }, "missing required fields: requested_date"},
		{"multiple missing", func(r *Request) { r.Name = ""; r.Email = "" }, "missing required fields: name, email"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			cal := schedule_mocks.NewMockCalendar(ctrl)
			engine := NewEngine(cal)
			// No calendar calls for a rejected request.

			req := validRequest(day(0))
			tt.mutate(&req)

			outcome := engine.Book(context.Background(), req)
			if outcome.State != StateRejected {
				t.Fatalf("Book() state = %v, want rejected", outcome.State)
			}
			if outcome.Reason != tt.wantReason {
				t.Errorf("Book() reason = %q, want %q", outcome.Reason, tt.wantReason)
			}
		})
	}
}

func TestEngine_Book_CalendarListFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	cal := schedule_mocks.NewMockCalendar(ctrl)
	engine := NewEngine(cal)

	cal.EXPECT().ListEvents(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("api unreachable"))

	outcome := engine.Book(context.Background(), validRequest(day(0)))
	if outcome.State != StateFailed {
		t.Fatalf("Book() state = %v, want failed", outcome.State)
	}
	if outcome.Err == nil {
		t.Error("Book() failed outcome should carry the collaborator error")
	}
}

func TestEngine_Book_InsertFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	cal := schedule_mocks.NewMockCalendar(ctrl)
	engine := NewEngine(cal)

	occupiedCalendar(cal, nil)
	cal.EXPECT().InsertEvent(gomock.Any(), gomock.Any()).Return(Event{}, errors.New("quota exceeded"))

	outcome := engine.Book(context.Background(), validRequest(day(0)))
	if outcome.State != StateFailed {
		t.Fatalf("Book() state = %v, want failed", outcome.State)
	}
}
