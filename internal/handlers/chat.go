package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"concierge-ai/internal/contextutil"
	"concierge-ai/internal/notify"
	"concierge-ai/internal/rag"
	"concierge-ai/internal/route"
	"concierge-ai/internal/schedule"
)

// ChatHandler dispatches chat messages to question answering or booking.
type ChatHandler struct {
	ragEngine rag.Engine
	booking   *schedule.Engine
	sender    notify.Sender
	now       func() time.Time
}

// NewChatHandler creates a new ChatHandler.
func NewChatHandler(ragEngine rag.Engine, booking *schedule.Engine, sender notify.Sender) *ChatHandler {
	return &ChatHandler{
		ragEngine: ragEngine,
		booking:   booking,
		sender:    sender,
		now:       time.Now,
	}
}

// ChatRequest represents the HTTP request payload for chat. The contact
// fields are required only when the message asks for an appointment.
type ChatRequest struct {
	Message string `json:"message"`
	Name    string `json:"name,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Email   string `json:"email,omitempty"`
}

// ChatResponse represents the HTTP response payload for chat.
type ChatResponse struct {
	Reply  string       `json:"reply"`
	Intent route.Intent `json:"intent"`
}

// ServeHTTP handles HTTP requests for chat.
func (h *ChatHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodPost {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	intent := route.Classify(req.Message)
	logger.InfoContext(ctx, "chat message classified", "intent", intent)

	switch intent {
	case route.IntentBookAppointment:
		h.handleBooking(w, r, req)
	case route.IntentAnswerQuery:
		h.handleQuestion(w, r, req)
	default:
		writeError(w, http.StatusBadRequest, "Message is required")
	}
}

func (h *ChatHandler) handleQuestion(w http.ResponseWriter, r *http.Request, req ChatRequest) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	resp, err := h.ragEngine.Ask(ctx, rag.AskRequest{Question: req.Message})
	if err != nil {
		logger.ErrorContext(ctx, "failed to answer chat question", "error", err)
		writeError(w, http.StatusBadGateway, "Failed to answer question")
		return
	}

	writeJSON(w, http.StatusOK, ChatResponse{Reply: resp.Answer, Intent: route.IntentAnswerQuery})
}

func (h *ChatHandler) handleBooking(w http.ResponseWriter, r *http.Request, req ChatRequest) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	// The message itself carries the day ("book appointment next monday").
	date, _ := schedule.ResolveRelativeDay(relativeDayPart(req.Message), h.now())

	outcome := h.booking.Book(ctx, schedule.Request{
		Name:  req.Name,
		Phone: req.Phone,
		Email: req.Email,
		Date:  date,
	})

	var reply string
	switch outcome.State {
	case schedule.StateBooked:
		reply = fmt.Sprintf("Your appointment is booked for %s.", outcome.BookedDate.Format("Monday, January 2"))
		if !outcome.BookedDate.Equal(outcome.RequestedDate) {
			reply = fmt.Sprintf("%s was not available, so I booked %s instead.",
				outcome.RequestedDate.Format("Monday, January 2"),
				outcome.BookedDate.Format("Monday, January 2"))
		}
		if err := h.sender.SendConfirmation(ctx, notify.Confirmation{
			Name:            req.Name,
			Phone:           req.Phone,
			Email:           req.Email,
			AppointmentDate: outcome.BookedDate,
		}); err != nil {
			logger.ErrorContext(ctx, "confirmation email failed", "error", err)
		}
	case schedule.StateRejected:
		reply = fmt.Sprintf("I can't book that yet: %s. Please provide a day such as \"next monday\" along with your name, phone, and email.", outcome.Reason)
	case schedule.StateNoSlotAvailable:
		reply = "Every day of that week is already taken. Please try a different week."
	default:
		reply = "Something went wrong talking to the calendar. Please try again later."
	}

	writeJSON(w, http.StatusOK, ChatResponse{Reply: reply, Intent: route.IntentBookAppointment})
}

// relativeDayPart strips the message down to the part a day expression could
// start at. The resolver only matches at the start of its input, so scan for
// the first weekday-or-prefix token.
func relativeDayPart(message string) string {
	fields := strings.Fields(strings.ToLower(message))
	for i, field := range fields {
		switch field {
		case "this", "next", "monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday":
			return strings.Join(fields[i:], " ")
		}
	}
	return message
}
