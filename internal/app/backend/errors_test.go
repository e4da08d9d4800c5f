package backend

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestError_IsNotFound(t *testing.T) {
	err := fmt.Errorf("load asset: %w", &Error{Op: "GET /asset-items/x", Status: http.StatusNotFound})
	if !errors.Is(err, ErrNotFound) {
		t.Error("404 should match ErrNotFound")
	}
	other := &Error{Op: "GET /asset-items/x", Status: http.StatusInternalServerError}
	if errors.Is(other, ErrNotFound) {
		t.Error("500 should not match ErrNotFound")
	}
}

func TestError_Retryable(t *testing.T) {
	tests := []struct {
		status int
		want   bool
	}{
		{0, true},
		{http.StatusRequestTimeout, true},
		{http.StatusTooManyRequests, true},
		{http.StatusBadGateway, true},
		{http.StatusBadRequest, false},
		{http.StatusNotFound, false},
		{http.StatusConflict, false},
	}
	for _, tt := range tests {
		e := &Error{Op: "GET /x", Status: tt.status}
		if got := e.Retryable(); got != tt.want {
			t.Errorf("Retryable(%d) = %v, want %v", tt.status, got, tt.want)
		}
	}
}

func TestMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"backend message", &Error{Op: "POST /assignment-history", Status: 409, Message: "Asset already assigned"}, "Asset already assigned"},
		{"wrapped backend message", fmt.Errorf("pair: %w", &Error{Op: "POST", Message: "nope"}), "nope"},
		{"not found", ErrNotFound, "The requested record was not found."},
		{"plain", errors.New("boom"), "boom"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Message(tt.err); got != tt.want {
				t.Errorf("Message() = %q, want %q", got, tt.want)
			}
		})
	}
}
