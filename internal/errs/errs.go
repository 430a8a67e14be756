package errs

import (
	"errors"
	"fmt"
)

var (
	// ErrNetwork marks a request that never produced an HTTP response.
	ErrNetwork = errors.New("Network Error") //nolint:stylecheck

	ErrNotFound            = errors.New("weather data not found")
	ErrCityNotFound        = errors.New("city not found")
	ErrForecastUnavailable = errors.New("failed to fetch forecast")
	ErrMalformedPayload    = errors.New("malformed provider payload")

	ErrCorruptPreferences = errors.New("stored preferences are corrupt")
	ErrInvalidPreferences = errors.New("invalid preferences")
)

// StatusError is returned when the provider answered with a non-success status.
type StatusError struct {
	Op   string
	Code int
	Err  error
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: %v: status %d", e.Op, e.Err, e.Code)
}

func (e *StatusError) Unwrap() error {
	return e.Err
}
