package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"concierge-ai/internal/contextutil"
	"concierge-ai/internal/notify"
	"concierge-ai/internal/schedule"
)

// AppointmentsHandler handles HTTP requests for appointment booking.
type AppointmentsHandler struct {
	engine *schedule.Engine
	sender notify.Sender
	now    func() time.Time
}

// NewAppointmentsHandler creates a new AppointmentsHandler.
func NewAppointmentsHandler(engine *schedule.Engine, sender notify.Sender) *AppointmentsHandler {
	return &AppointmentsHandler{
		engine: engine,
		sender: sender,
		now:    time.Now,
	}
}

// AppointmentRequest represents the HTTP request payload for bookings.
// Date accepts either an absolute day ("2024-12-16") or a relative day
// expression ("next monday").
type AppointmentRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email"`
	Date  string `json:"date"`
}

// AppointmentResponse represents the HTTP response payload for bookings.
type AppointmentResponse struct {
	State         schedule.State  `json:"state"`
	Reason        string          `json:"reason,omitempty"`
	RequestedDate string          `json:"requested_date,omitempty"`
	BookedDate    string          `json:"booked_date,omitempty"`
	Event         *schedule.Event `json:"event,omitempty"`
	EmailSent     bool            `json:"email_sent"`
}

// ServeHTTP handles HTTP requests for appointment booking.
func (h *AppointmentsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodPost {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req AppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	// An unresolvable date stays zero so the engine rejects it along with
	// any other missing fields in one pass.
	date, _ := h.resolveDate(req.Date)

	outcome := h.engine.Book(ctx, schedule.Request{
		Name:  req.Name,
		Phone: req.Phone,
		Email: req.Email,
		Date:  date,
	})

	resp := AppointmentResponse{
		State:  outcome.State,
		Reason: outcome.Reason,
		Event:  outcome.Event,
	}
	if !outcome.RequestedDate.IsZero() {
		resp.RequestedDate = outcome.RequestedDate.Format("2006-01-02")
	}
	if !outcome.BookedDate.IsZero() {
		resp.BookedDate = outcome.BookedDate.Format("2006-01-02")
	}

	if outcome.State == schedule.StateBooked {
		if err := h.sender.SendConfirmation(ctx, notify.Confirmation{
			Name:            req.Name,
			Phone:           req.Phone,
			Email:           req.Email,
			AppointmentDate: outcome.BookedDate,
		}); err != nil {
			// The booking stands; only the notification failed.
			logger.ErrorContext(ctx, "confirmation email failed", "error", err)
		} else {
			resp.EmailSent = true
		}
	}

	writeJSON(w, statusForOutcome(outcome.State), resp)
}

// resolveDate parses an absolute day or a relative day expression.
func (h *AppointmentsHandler) resolveDate(input string) (time.Time, bool) {
	if input == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse("2006-01-02", input); err == nil {
		return t, true
	}
	return schedule.ResolveRelativeDay(input, h.now())
}

func statusForOutcome(state schedule.State) int {
	switch state {
	case schedule.StateBooked:
		return http.StatusOK
	case schedule.StateRejected:
		return http.StatusBadRequest
	case schedule.StateNoSlotAvailable:
		return http.StatusConflict
	case schedule.StateFailed:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
