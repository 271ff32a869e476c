package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "validation", err: Validation("bad input"), want: http.StatusBadRequest},
		{name: "duplicate", err: Duplicate("already there"), want: http.StatusBadRequest},
		{name: "notification", err: Notification("provider down"), want: http.StatusBadRequest},
		{name: "not found", err: NotFound("missing"), want: http.StatusNotFound},
		{name: "storage", err: Storage(errors.New("conn reset")), want: http.StatusInternalServerError},
		{name: "plain error", err: errors.New("boom"), want: http.StatusInternalServerError},
		{name: "wrapped", err: fmt.Errorf("outer: %w", NotFound("inner")), want: http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HTTPStatus(tt.err); got != tt.want {
				t.Errorf("HTTPStatus(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestIsCode(t *testing.T) {
	err := Duplicate("attendance already submitted for student %d", 9)
	if !IsCode(err, CodeDuplicate) {
		t.Errorf("IsCode(%v, %s) = false, want true", err, CodeDuplicate)
	}
	if IsCode(err, CodeNotFound) {
		t.Errorf("IsCode(%v, %s) = true, want false", err, CodeNotFound)
	}
	if IsCode(errors.New("plain"), CodeDuplicate) {
		t.Error("plain error should not match any code")
	}
}
