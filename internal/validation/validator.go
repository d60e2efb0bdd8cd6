package validation

import (
	"strings"

	"secure-sense/internal/domain"
	"secure-sense/internal/dto"
)

const (
	maxSessionIDLength = 128
	maxEventTypeLength = 64
	maxThreatBatchSize = 100
)

// Validator provides request validation functionality
type Validator struct{}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateTrackEvent validates the event tracking request body.
// The session id is an opaque correlation string, so only presence and a
// sanity length bound are checked.
func (v *Validator) ValidateTrackEvent(req *dto.TrackEventRequest) domain.ValidationErrors {
	var errors domain.ValidationErrors

	errors = append(errors, v.validateSessionID(req.SessionID)...)

	if strings.TrimSpace(req.EventType) == "" {
		errors = append(errors, domain.NewMissingFieldError("event_type"))
	} else if len(req.EventType) > maxEventTypeLength {
		errors = append(errors, domain.NewOutOfRangeError("event_type", len(req.EventType), 1, maxEventTypeLength))
	}

	return errors
}

// ValidateQuizComplete validates the quiz completion request body. Score is
// deliberately not checked against total_questions: the value is stored as
// sent and the data-quality gap is owned by the aggregation consumers.
func (v *Validator) ValidateQuizComplete(req *dto.QuizCompleteRequest) domain.ValidationErrors {
	var errors domain.ValidationErrors

	errors = append(errors, v.validateSessionID(req.SessionID)...)

	if req.Score < 0 {
		errors = append(errors, domain.NewInvalidFormatError("score", req.Score))
	}
	if req.TotalQuestions <= 0 {
		errors = append(errors, domain.NewInvalidFormatError("total_questions", req.TotalQuestions))
	}

	return errors
}

// ValidateTrackThreats validates the threat tracking request body. An empty
// batch is well-formed: it inserts nothing and succeeds.
func (v *Validator) ValidateTrackThreats(req *dto.TrackThreatsRequest) domain.ValidationErrors {
	var errors domain.ValidationErrors

	errors = append(errors, v.validateSessionID(req.SessionID)...)

	if len(req.Threats) > maxThreatBatchSize {
		errors = append(errors, domain.NewOutOfRangeError("threats", len(req.Threats), 0, maxThreatBatchSize))
		return errors
	}

	for _, threat := range req.Threats {
		if strings.TrimSpace(threat.Name) == "" {
			errors = append(errors, domain.NewMissingFieldError("threats[].name"))
			break
		}
	}

	return errors
}

// ValidateRemoveThreats validates the threat removal request body.
func (v *Validator) ValidateRemoveThreats(req *dto.RemoveThreatsRequest) domain.ValidationErrors {
	return v.validateSessionID(req.SessionID)
}

func (v *Validator) validateSessionID(sessionID string) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(sessionID) == "" {
		errors = append(errors, domain.NewMissingFieldError("session_id"))
	} else if len(sessionID) > maxSessionIDLength {
		errors = append(errors, domain.NewOutOfRangeError("session_id", len(sessionID), 1, maxSessionIDLength))
	}

	return errors
}
