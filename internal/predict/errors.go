package predict

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"strings"
)

// Kind buckets a failed prediction attempt for user-facing messaging.
type Kind string

const (
	// KindConnection covers refused connections and generic network failures.
	KindConnection Kind = "connection"
	// KindServer covers responses with a non-2xx status.
	KindServer Kind = "server"
	// KindTimeout covers requests that saw no response within the deadline.
	KindTimeout Kind = "timeout"
	// KindUnknown covers everything else; the raw failure text is surfaced.
	KindUnknown Kind = "unknown"
)

// AttemptError describes a failed request/response exchange with the model
// service. Every kind is recoverable: the form stays intact and the user may
// resubmit.
type AttemptError struct {
	Kind     Kind
	Status   int
	Message  string
	Endpoint string
}

func (e *AttemptError) Error() string {
	return e.Message
}

// classifyTransport maps an http.Client error to the attempt taxonomy.
func classifyTransport(err error, endpoint string) *AttemptError {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || os.IsTimeout(err) ||
		(errors.As(err, &netErr) && netErr.Timeout()) {
		return &AttemptError{
			Kind:     KindTimeout,
			Message:  "no response from server",
			Endpoint: endpoint,
		}
	}

	var opErr *net.OpError
	var urlErr *url.Error
	if errors.As(err, &opErr) || errors.As(err, &urlErr) {
		return &AttemptError{
			Kind:     KindConnection,
			Message:  fmt.Sprintf("cannot connect to backend at %s", endpoint),
			Endpoint: endpoint,
		}
	}

	return &AttemptError{
		Kind:     KindUnknown,
		Message:  err.Error(),
		Endpoint: endpoint,
	}
}

// serverError builds the non-2xx attempt error, preferring the server's own
// error text when the body carried one.
func serverError(status int, serverMessage, endpoint string) *AttemptError {
	message := strings.TrimSpace(serverMessage)
	if message == "" {
		message = fmt.Sprintf("server error: %d", status)
	}
	return &AttemptError{
		Kind:     KindServer,
		Status:   status,
		Message:  message,
		Endpoint: endpoint,
	}
}
