package apperrors

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidQuery      = errors.New("invalid query")
	ErrIndexUnavailable  = errors.New("spatial index unavailable")
	ErrCacheUnavailable  = errors.New("result cache unavailable")
	ErrInstanceUnhealthy = errors.New("instance unhealthy")
	ErrIllegalTransition = errors.New("illegal ranking state transition")
)

// InvalidQueryError names the offending request field.
type InvalidQueryError struct {
	Field  string
	Reason string
}

func (e *InvalidQueryError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *InvalidQueryError) Unwrap() error {
	return ErrInvalidQuery
}

func NewInvalidQueryError(field string, reason string) error {
	return &InvalidQueryError{
		Field:  field,
		Reason: reason,
	}
}

// IndexError is returned by geo index backends. Permanent errors (missing spatial
// extension, missing index) are not worth a retry.
type IndexError struct {
	Backend   string
	Permanent bool
	Err       error
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("%s index: %v", e.Backend, e.Err)
}

func (e *IndexError) Unwrap() []error {
	return []error{ErrIndexUnavailable, e.Err}
}

func NewIndexError(backend string, permanent bool, err error) error {
	return &IndexError{
		Backend:   backend,
		Permanent: permanent,
		Err:       err,
	}
}

// IsPermanentIndexError reports whether err carries an IndexError marked permanent.
func IsPermanentIndexError(err error) bool {
	var indexErr *IndexError
	return errors.As(err, &indexErr) && indexErr.Permanent
}

type ElasticSearchError struct {
	StatusCode int
	Type       string
	Reason     string
}

func (e *ElasticSearchError) Error() string {
	return fmt.Sprintf("[%d] %s: %s", e.StatusCode, e.Type, e.Reason)
}

func NewElasticSearchError(statusCode int, typeReason string, reason string) error {
	return &ElasticSearchError{
		StatusCode: statusCode,
		Type:       typeReason,
		Reason:     reason,
	}
}
