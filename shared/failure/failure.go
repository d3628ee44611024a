package failure

import (
	"errors"
	"fmt"
	"net/http"
)

// Failure is a wrapper for error messages and codes using standard HTTP response codes.
// Key, when set, names the localized text for the message so that the booking core
// never has to embed user-facing strings itself; Params hold the placeholder values.
type Failure struct {
	Code    int               `json:"code"`
	Message string            `json:"message"`
	Key     string            `json:"key,omitempty"`
	Params  map[string]string `json:"params,omitempty"`
}

// Error returns the error message.
func (e *Failure) Error() string {
	return e.Message
}

// BadRequest returns a new Failure with code for bad requests.
func BadRequest(err error) error {
	if err != nil {
		return &Failure{
			Code:    http.StatusBadRequest,
			Message: err.Error(),
		}
	}

	return nil
}

// BadRequestFromString returns a new Failure with code for bad requests with message set from string.
func BadRequestFromString(msg string) error {
	return &Failure{
		Code:    http.StatusBadRequest,
		Message: msg,
	}
}

// Validation returns a bad-request Failure carrying a locale key.
func Validation(key, msg string) error {
	return &Failure{
		Code:    http.StatusBadRequest,
		Message: msg,
		Key:     key,
	}
}

// InternalError returns a new Failure with code for internal error and message derived from an error interface.
func InternalError(err error) error {
	if err != nil {
		return &Failure{
			Code:    http.StatusInternalServerError,
			Message: err.Error(),
		}
	}

	return nil
}

// NotFound returns a new Failure with code for entity not found.
func NotFound(entityName string) error {
	return &Failure{
		Code:    http.StatusNotFound,
		Message: entityName,
	}
}

// DraftNotFound returns a not-found Failure for a missing or expired booking draft.
func DraftNotFound(id string) error {
	return &Failure{
		Code:    http.StatusNotFound,
		Message: fmt.Sprintf("booking draft %s not found or expired", id),
		Key:     "booking.error.draft_not_found",
	}
}

// Conflict returns a new Failure with code for conflict situations.
func Conflict(message string) error {
	return &Failure{
		Code:    http.StatusConflict,
		Message: message,
	}
}

// SlotConflict reports that a time slot on a court is already booked for a date.
func SlotConflict(date, timeLabel, court string) error {
	return &Failure{
		Code:    http.StatusConflict,
		Message: fmt.Sprintf("court %s is already booked for %s on %s", court, timeLabel, date),
		Key:     "booking.error.conflict",
		Params: map[string]string{
			"court": court,
			"time":  timeLabel,
			"date":  date,
		},
	}
}

// Unavailable wraps a storage error into the storage-unavailable Failure.
func Unavailable(err error) error {
	if err == nil {
		return nil
	}

	return &Failure{
		Code:    http.StatusServiceUnavailable,
		Message: fmt.Sprintf("booking storage is unavailable: %v", err),
		Key:     "booking.error.storage",
	}
}

// GetCode returns the error code of an error interface.
func GetCode(err error) int {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Code
	}

	return http.StatusInternalServerError
}

// As extracts the Failure from an error chain, if any.
func As(err error) (*Failure, bool) {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail, true
	}

	return nil, false
}
