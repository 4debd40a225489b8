package route

import "strings"

// Intent is the dispatch target for a user utterance.
type Intent string

const (
	// IntentAnswerQuery routes to retrieval-augmented question answering.
	IntentAnswerQuery Intent = "answer_query"
	// IntentBookAppointment routes to the booking flow.
	IntentBookAppointment Intent = "book_appointment"
	// IntentUnknown means the utterance carries nothing to act on.
	IntentUnknown Intent = "unknown"
)

// contactPhrases trigger the booking flow when present anywhere in the
// utterance. Matching is case-insensitive substring containment.
var contactPhrases = []string{
	"call me",
	"book appointment",
	"appointment",
	"contact me",
	"i want to book appointment",
	"reach out",
	"get in touch",
}

// Classify decides which capability should handle the utterance. Anything
// non-empty that does not look like a booking request is treated as a
// question.
func Classify(utterance string) Intent {
	lowered := strings.ToLower(utterance)
	if strings.TrimSpace(lowered) == "" {
		return IntentUnknown
	}
	for _, phrase := range contactPhrases {
		if strings.Contains(lowered, phrase) {
			return IntentBookAppointment
		}
	}
	return IntentAnswerQuery
}
