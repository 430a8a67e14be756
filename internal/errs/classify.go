package errs

import (
	"errors"
	"net"
	"net/http"
)

const (
	MsgCityNotFound     = "City not found"
	MsgAPIKeyInvalid    = "API key invalid"
	MsgSomethingWrong   = "Something went wrong"
	MsgCheckConnection  = "Please check your internet connection"
	MsgUnexpectedFailed = "An unexpected error occurred"
)

// New builds a Signal of the given kind with that kind's default message.
func New(kind Kind, cause error) *Signal {
	switch kind {
	case KindNotFound:
		return &Signal{Kind: kind, Message: MsgCityNotFound, Severity: SeverityError, cause: cause}
	case KindAuthInvalid:
		return &Signal{Kind: kind, Message: MsgAPIKeyInvalid, Severity: SeverityError, cause: cause}
	case KindUnreachable:
		return &Signal{Kind: kind, Message: MsgCheckConnection, Severity: SeverityWarning, cause: cause}
	default:
		return &Signal{Kind: KindUnexpected, Message: MsgUnexpectedFailed, Severity: SeverityError, cause: cause}
	}
}

// Classify maps a raw failure to a Signal. Signals pass through untouched
// and a nil error yields nil.
func Classify(err error) *Signal {
	if err == nil {
		return nil
	}

	var sig *Signal
	if errors.As(err, &sig) {
		return sig
	}

	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		switch statusErr.Code {
		case http.StatusNotFound:
			return New(KindNotFound, err)
		case http.StatusUnauthorized:
			return New(KindAuthInvalid, err)
		default:
			return &Signal{Kind: KindUnexpected, Message: MsgSomethingWrong, Severity: SeverityError, cause: err}
		}
	}

	if isUnreachable(err) {
		return New(KindUnreachable, err)
	}

	return New(KindUnexpected, err)
}

func isUnreachable(err error) bool {
	if errors.Is(err, ErrNetwork) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}

	return err.Error() == ErrNetwork.Error()
}

// AsSignal classifies err and reports whether there was anything to classify.
func AsSignal(err error) (*Signal, bool) {
	if err == nil {
		return nil, false
	}
	return Classify(err), true
}
