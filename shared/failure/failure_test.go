package failure_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"courtside/shared/failure"
)

func TestFailure_Error(t *testing.T) {
	f := &failure.Failure{
		Code:    http.StatusBadRequest,
		Message: "test error message",
	}

	if f.Error() != "test error message" {
		t.Errorf("expected error message to be 'test error message', got %s", f.Error())
	}
}

func TestSlotConflict(t *testing.T) {
	err := failure.SlotConflict("2025-03-05", "08:00 - 09:00", "1")

	fail, ok := failure.As(err)
	if !ok {
		t.Fatal("expected a Failure")
	}

	if fail.Code != http.StatusConflict {
		t.Errorf("expected code %d, got %d", http.StatusConflict, fail.Code)
	}

	if fail.Key != "booking.error.conflict" {
		t.Errorf("unexpected key %s", fail.Key)
	}

	if fail.Params["court"] != "1" || fail.Params["time"] != "08:00 - 09:00" || fail.Params["date"] != "2025-03-05" {
		t.Errorf("unexpected params %v", fail.Params)
	}
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
	}{
		{
			name: "validation failure",
			err:  failure.Validation("booking.error.time_required", "no time slot selected"),
			code: http.StatusBadRequest,
		},
		{
			name: "draft not found",
			err:  failure.DraftNotFound("abc"),
			code: http.StatusNotFound,
		},
		{
			name: "storage unavailable",
			err:  failure.Unavailable(errors.New("connection refused")),
			code: http.StatusServiceUnavailable,
		},
		{
			name: "wrapped failure",
			err:  fmt.Errorf("submitting: %w", failure.SlotConflict("2025-03-05", "18:00 - 21:00", "2")),
			code: http.StatusConflict,
		},
		{
			name: "plain error",
			err:  errors.New("boom"),
			code: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := failure.GetCode(tt.err); got != tt.code {
				t.Errorf("expected code %d, got %d", tt.code, got)
			}
		})
	}
}
