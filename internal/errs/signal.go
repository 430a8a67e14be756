package errs

import "time"

type Kind int

const (
	KindUnexpected Kind = iota
	KindNotFound
	KindAuthInvalid
	KindUnreachable
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindAuthInvalid:
		return "auth_invalid"
	case KindUnreachable:
		return "unreachable"
	default:
		return "unexpected"
	}
}

type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Signal is a user-displayable failure. It is an error itself and unwraps
// to the failure it was classified from.
type Signal struct {
	Kind     Kind          `json:"-"`
	Message  string        `json:"message"`
	Severity Severity      `json:"type"`
	Duration time.Duration `json:"duration,omitempty"`

	cause error
}

func (s *Signal) Error() string {
	return s.Message
}

func (s *Signal) Unwrap() error {
	return s.cause
}
