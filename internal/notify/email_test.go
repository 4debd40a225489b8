package notify

import (
	"strings"
	"testing"
	"time"
)

func TestBuildMessage(t *testing.T) {
	c := Confirmation{
		Name:            "John Doe",
		Phone:           "+1234567890",
		Email:           "john.doe@example.com",
		AppointmentDate: time.Date(2024, 12, 16, 10, 0, 0, 0, time.UTC),
	}

	msg := string(buildMessage("assistant@example.com", c))

	wantParts := []string{
		"From: assistant@example.com",
		"To: john.doe@example.com",
		"Subject: New Appointment Request",
		"Dear John Doe,",
		"Name: John Doe",
		"Phone Number: +1234567890",
		"Email: john.doe@example.com",
		"Appointment Date: 2024-12-16 10:00",
	}
	for _, part := range wantParts {
		if !strings.Contains(msg, part) {
			t.Errorf("message missing %q:\n%s", part, msg)
		}
	}

	// Headers end with a blank line before the body.
	if !strings.Contains(msg, "\r\n\r\nDear John Doe,") {
		t.Error("message body must be separated from headers by a blank line")
	}
}
