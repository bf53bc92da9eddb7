package apperrors

import (
	"errors"
	"fmt"
)

var (
	ErrInstanceNotFound = errors.New("instance not found")
	ErrInvalidHeartbeat = errors.New("invalid heartbeat")
)

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
