package cyphernode

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrClockBeforeEpoch is returned when the local clock reports a time
	// before the Unix epoch, which makes it impossible to compute a token
	// expiry.
	ErrClockBeforeEpoch = errors.New("clock went backwards: time is before unix epoch")

	// ErrEmptyEnvelope is returned when a gateway response carries neither
	// a result nor an error.
	ErrEmptyEnvelope = errors.New("envelope has neither result nor error")

	// ErrTLSPolicyUnset is returned by New when the caller did not pick a
	// TLS policy.
	ErrTLSPolicyUnset = errors.New("tls policy must be chosen explicitly")
)

// Kind classifies a failure so callers can branch on it without parsing
// messages.
type Kind int

const (
	// KindInput means the caller supplied bad data, or the gateway rejected
	// the request as malformed.
	KindInput Kind = iota + 1
	// KindAuth covers token signing failures and rejected credentials.
	KindAuth
	// KindNetwork covers connect, DNS, timeout and cancellation failures.
	KindNetwork
	// KindTLS covers certificate verification and handshake failures.
	KindTLS
	// KindHTTP is a non-2xx status that has no more specific kind.
	KindHTTP
	// KindNoResource is a 404 from the gateway.
	KindNoResource
	// KindGateway means the envelope error field was populated: the remote
	// operation was rejected.
	KindGateway
	// KindInternal is a local encode/decode failure, usually a schema
	// mismatch between client and gateway.
	KindInternal
)

func (k Kind) String() string {
	switch k {
	case KindInput:
		return "input"
	case KindAuth:
		return "auth"
	case KindNetwork:
		return "network"
	case KindTLS:
		return "tls"
	case KindHTTP:
		return "http"
	case KindNoResource:
		return "no resource"
	case KindGateway:
		return "gateway"
	case KindInternal:
		return "internal"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Error is the error type returned by every Client method.
type Error struct {
	Kind Kind
	// Op is the gateway endpoint (or local step) that failed.
	Op string
	// Message is the gateway-reported message for KindGateway, or a short
	// description otherwise.
	Message string
	Err     error
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	} else if e.Err != nil {
		msg = fmt.Sprintf("%s: %s", msg, e.Err)
	}
	if e.Op == "" {
		return fmt.Sprintf("cyphernode %s error: %s", e.Kind, msg)
	}
	return fmt.Sprintf("cyphernode %s %s error: %s", e.Op, e.Kind, msg)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsKind reports whether err is a *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Kind == kind
}

// HTTPError is wrapped by *Error when the gateway answers with a non-2xx
// status.
type HTTPError struct {
	Method     string
	URL        string
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%s %s: HTTP %d: %s", e.Method, e.URL, e.StatusCode, e.Body)
}

func newError(kind Kind, op, msg string, err error) *Error {
	return &Error{Kind: kind, Op: op, Message: msg, Err: err}
}

func kindForStatus(code int) Kind {
	switch code {
	case http.StatusBadRequest, http.StatusConflict, http.StatusUnprocessableEntity:
		return KindInput
	case http.StatusUnauthorized, http.StatusForbidden:
		return KindAuth
	case http.StatusNotFound:
		return KindNoResource
	default:
		return KindHTTP
	}
}
