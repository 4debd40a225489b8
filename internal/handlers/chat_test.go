package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	notify_mocks "concierge-ai/internal/notify/mocks"
	"concierge-ai/internal/rag"
	rag_mocks "concierge-ai/internal/rag/mocks"
	"concierge-ai/internal/route"
	"concierge-ai/internal/schedule"
	schedule_mocks "concierge-ai/internal/schedule/mocks"

	"go.uber.org/mock/gomock"
)

func newChatHandler(t *testing.T) (*ChatHandler, *rag_mocks.MockEngine, *schedule_mocks.MockCalendar, *notify_mocks.MockSender) {
	t.Helper()
	ctrl := gomock.NewController(t)
	ragEngine := rag_mocks.NewMockEngine(ctrl)
	cal := schedule_mocks.NewMockCalendar(ctrl)
	sender := notify_mocks.NewMockSender(ctrl)

	handler := NewChatHandler(ragEngine, schedule.NewEngine(cal), sender)
	// Fixed clock: Wednesday 2024-12-11.
	handler.now = func() time.Time { return time.Date(2024, 12, 11, 9, 0, 0, 0, time.UTC) }
	return handler, ragEngine, cal, sender
}

func postChat(t *testing.T, handler *ChatHandler, body string) (*httptest.ResponseRecorder, ChatResponse) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/chat", bytes.NewBufferString(body))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	var resp ChatResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v, body: %s", err, rec.Body.String())
	}
	return rec, resp
}

func TestChatHandler_QuestionRoutesToRAG(t *testing.T) {
	handler, ragEngine, _, _ := newChatHandler(t)

	ragEngine.EXPECT().Ask(gomock.Any(), rag.AskRequest{Question: "what services do you offer?"}).
		Return(rag.AskResponse{Answer: "We offer consultations."}, nil)

	rec, resp := postChat(t, handler, `{"message": "what services do you offer?"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if resp.Intent != route.IntentAnswerQuery {
		t.Errorf("intent = %v, want answer_query", resp.Intent)
	}
	if resp.Reply != "We offer consultations." {
		t.Errorf("reply = %q", resp.Reply)
	}
}

func TestChatHandler_BookingRoutesToScheduler(t *testing.T) {
	handler, _, cal, sender := newChatHandler(t)

	cal.EXPECT().ListEvents(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
	cal.EXPECT().InsertEvent(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, ev schedule.Event) (schedule.Event, error) {
			// Next Monday after Wednesday 2024-12-11.
			want := time.Date(2024, 12, 16, 0, 0, 0, 0, time.UTC)
			if !ev.Start.Equal(want) {
				t.Errorf("event start = %v, want %v", ev.Start, want)
			}
			return ev, nil
		})
	sender.EXPECT().SendConfirmation(gomock.Any(), gomock.Any()).Return(nil)

	rec, resp := postChat(t, handler,
		`{"message": "book appointment next monday", "name": "John", "phone": "+1", "email": "j@example.com"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if resp.Intent != route.IntentBookAppointment {
		t.Errorf("intent = %v, want book_appointment", resp.Intent)
	}
	if !strings.Contains(resp.Reply, "booked") {
		t.Errorf("reply = %q, want booking confirmation", resp.Reply)
	}
}

func TestChatHandler_BookingWithoutContactDetails(t *testing.T) {
	handler, _, _, _ := newChatHandler(t)

	rec, resp := postChat(t, handler, `{"message": "book appointment next monday"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(resp.Reply, "name, phone, and email") {
		t.Errorf("reply = %q, want prompt for contact details", resp.Reply)
	}
}

func TestChatHandler_EmptyMessage(t *testing.T) {
	handler, _, _, _ := newChatHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/api/chat", bytes.NewBufferString(`{"message": ""}`))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}
