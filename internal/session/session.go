// Package session owns one interactive form lifecycle: field edits,
// submission through the model service and the resulting outcome or error.
package session

import (
	"context"
	"errors"
	"sync"

	"github.com/sirupsen/logrus"

	"attrition-risk-eval/backend/internal/form"
	"attrition-risk-eval/backend/internal/predict"
	"attrition-risk-eval/backend/internal/scoring"
)

// ErrIncomplete is returned when Submit is called before every field is set.
var ErrIncomplete = errors.New("form incomplete")

// ErrBusy is returned while a prediction request is outstanding. At most one
// request is in flight per session; the caller disables its submit trigger
// and may simply drop this error.
var ErrBusy = errors.New("prediction request in flight")

// Outcome is a successful submission: the raw result plus its interpretation.
type Outcome struct {
	Result         *predict.Result
	Interpretation scoring.Interpretation
}

// Session holds the form tracker and the result/error pair of the most recent
// submission. Exactly one of the pair is set after any attempt.
type Session struct {
	tracker *form.Tracker
	client  *predict.Client

	mu       sync.Mutex
	inFlight bool
	outcome  *Outcome
	attempt  *predict.AttemptError
}

// New creates a session with an all-empty form.
func New(client *predict.Client) *Session {
	return &Session{
		tracker: form.NewTracker(),
		client:  client,
	}
}

// SetField updates one field value.
func (s *Session) SetField(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tracker.SetField(key, value)
}

// Completion reports form fill progress.
func (s *Session) Completion() form.Completion {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tracker.Completion()
}

// CanSubmit reports whether every field is filled.
func (s *Session) CanSubmit() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tracker.CanSubmit()
}

// Submit sends the current form to the model service. Both the previous
// outcome and error are cleared before the request is issued; afterwards
// exactly one of them is set. There is no retry: a failure is terminal for
// this attempt and the form stays intact for resubmission.
func (s *Session) Submit(ctx context.Context) (*Outcome, error) {
	s.mu.Lock()
	if s.inFlight {
		s.mu.Unlock()
		return nil, ErrBusy
	}
	if !s.tracker.CanSubmit() {
		s.mu.Unlock()
		return nil, ErrIncomplete
	}
	s.inFlight = true
	s.outcome = nil
	s.attempt = nil
	payload := form.BuildPayload(s.tracker.Values())
	s.mu.Unlock()

	result, err := s.client.Predict(ctx, payload)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.inFlight = false

	if err != nil {
		var attempt *predict.AttemptError
		if !errors.As(err, &attempt) {
			attempt = &predict.AttemptError{
				Kind:    predict.KindUnknown,
				Message: err.Error(),
			}
		}
		s.attempt = attempt
		logrus.WithFields(logrus.Fields{
			"kind":     attempt.Kind,
			"endpoint": attempt.Endpoint,
		}).Warn("prediction attempt failed")
		return nil, attempt
	}

	s.outcome = &Outcome{
		Result: result,
		Interpretation: scoring.Interpret(
			result.Probability.Stay,
			result.Probability.Leave,
			result.Confidence,
			result.Importances,
		),
	}
	return s.outcome, nil
}

// Outcome returns the stored result of the last successful submission.
func (s *Session) Outcome() *Outcome {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.outcome
}

// AttemptError returns the stored error of the last failed submission.
func (s *Session) AttemptError() *predict.AttemptError {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.attempt
}

// Reset clears every field and both halves of the result/error pair.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tracker.Reset()
	s.outcome = nil
	s.attempt = nil
}
