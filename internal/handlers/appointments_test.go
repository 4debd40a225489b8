package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"concierge-ai/internal/notify"
	notify_mocks "concierge-ai/internal/notify/mocks"
	"concierge-ai/internal/schedule"
	schedule_mocks "concierge-ai/internal/schedule/mocks"

	"go.uber.org/mock/gomock"
)

// freeCalendar reports every day as free.
func freeCalendar(cal *schedule_mocks.MockCalendar) {
	cal.EXPECT().ListEvents(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()
	cal.EXPECT().InsertEvent(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, ev schedule.Event) (schedule.Event, error) {
			ev.ID = "ev-1"
			return ev, nil
		}).AnyTimes()
}

func newAppointmentsHandler(t *testing.T) (*AppointmentsHandler, *schedule_mocks.MockCalendar, *notify_mocks.MockSender) {
	t.Helper()
	ctrl := gomock.NewController(t)
	cal := schedule_mocks.NewMockCalendar(ctrl)
	sender := notify_mocks.NewMockSender(ctrl)

	handler := NewAppointmentsHandler(schedule.NewEngine(cal), sender)
	// Fixed clock: Wednesday 2024-12-11.
	handler.now = func() time.Time { return time.Date(2024, 12, 11, 9, 0, 0, 0, time.UTC) }
	return handler, cal, sender
}

func postAppointment(t *testing.T, handler *AppointmentsHandler, body string) (*httptest.ResponseRecorder, AppointmentResponse) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/appointments", bytes.NewBufferString(body))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	var resp AppointmentResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v, body: %s", err, rec.Body.String())
	}
	return rec, resp
}

func TestAppointmentsHandler_BooksRelativeDay(t *testing.T) {
	handler, cal, sender := newAppointmentsHandler(t)
	freeCalendar(cal)
	sender.EXPECT().SendConfirmation(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, c notify.Confirmation) error {
			if c.Email != "john.doe@example.com" {
				t.Errorf("confirmation email to %q", c.Email)
			}
			return nil
		})

	rec, resp := postAppointment(t, handler,
		`{"name": "John Doe", "phone": "+1234567890", "email": "john.doe@example.com", "date": "next monday"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body: %s", rec.Code, rec.Body.String())
	}
	if resp.State != schedule.StateBooked {
		t.Fatalf("state = %v, want booked", resp.State)
	}
	// Next Monday after Wednesday 2024-12-11.
	if resp.BookedDate != "2024-12-16" {
		t.Errorf("booked date = %q, want 2024-12-16", resp.BookedDate)
	}
	if !resp.EmailSent {
		t.Error("email_sent = false, want true")
	}
}

func TestAppointmentsHandler_BooksAbsoluteDay(t *testing.T) {
	handler, cal, sender := newAppointmentsHandler(t)
	freeCalendar(cal)
	sender.EXPECT().SendConfirmation(gomock.Any(), gomock.Any()).Return(nil)

	rec, resp := postAppointment(t, handler,
		`{"name": "Jane", "phone": "+1", "email": "jane@example.com", "date": "2024-12-20"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body: %s", rec.Code, rec.Body.String())
	}
	if resp.BookedDate != "2024-12-20" {
		t.Errorf("booked date = %q, want 2024-12-20", resp.BookedDate)
	}
}

func TestAppointmentsHandler_MissingEmailRejected(t *testing.T) {
	handler, _, _ := newAppointmentsHandler(t)
	// No calendar or email expectations; validation fails first.

	rec, resp := postAppointment(t, handler,
		`{"name": "John Doe", "phone": "+1234567890", "date": "next monday"}`)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if resp.State != schedule.StateRejected {
		t.Fatalf("state = %v, want rejected", resp.State)
	}
	if resp.Reason != "missing required fields: email" {
		t.Errorf("reason = %q", resp.Reason)
	}
}

func TestAppointmentsHandler_UnresolvableDateRejected(t *testing.T) {
	handler, _, _ := newAppointmentsHandler(t)

	rec, resp := postAppointment(t, handler,
		`{"name": "John", "phone": "+1", "email": "j@example.com", "date": "someday"}`)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if resp.Reason != "missing required fields: requested_date" {
		t.Errorf("reason = %q", resp.Reason)
	}
}

func TestAppointmentsHandler_FullWeekConflict(t *testing.T) {
	handler, cal, _ := newAppointmentsHandler(t)
	cal.EXPECT().ListEvents(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]schedule.Event{{Summary: "busy"}}, nil).AnyTimes()

	rec, resp := postAppointment(t, handler,
		`{"name": "John", "phone": "+1", "email": "j@example.com", "date": "next monday"}`)

	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", rec.Code)
	}
	if resp.State != schedule.StateNoSlotAvailable {
		t.Errorf("state = %v, want no_slot_available", resp.State)
	}
}

func TestAppointmentsHandler_EmailFailureDoesNotUnbook(t *testing.T) {
	handler, cal, sender := newAppointmentsHandler(t)
	freeCalendar(cal)
	sender.EXPECT().SendConfirmation(gomock.Any(), gomock.Any()).
		Return(context.DeadlineExceeded)

	rec, resp := postAppointment(t, handler,
		`{"name": "John", "phone": "+1", "email": "j@example.com", "date": "friday"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if resp.State != schedule.StateBooked {
		t.Errorf("state = %v, want booked", resp.State)
	}
	if resp.EmailSent {
		t.Error("email_sent = true, want false")
	}
}
