package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name     string
		appErr   *AppError
		expected string
	}{
		{
			name:     "error without wrapped error",
			appErr:   ErrSessionNotFound,
			expected: "Liveness session not found",
		},
		{
			name: "error with wrapped error",
			appErr: &AppError{
				Code:       "TEST_ERROR",
				Message:    "Test message",
				StatusCode: 500,
				Err:        errors.New("underlying error"),
			},
			expected: "Test message: underlying error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.appErr.Error(); got != tt.expected {
				t.Errorf("Error() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	underlying := errors.New("underlying error")
	appErr := &AppError{
		Code:       "TEST",
		Message:    "test",
		StatusCode: 500,
		Err:        underlying,
	}

	if got := appErr.Unwrap(); got != underlying {
		t.Errorf("Unwrap() = %v, want %v", got, underlying)
	}

	appErrNoWrap := ErrTokenReused
	if got := appErrNoWrap.Unwrap(); got != nil {
		t.Errorf("Unwrap() = %v, want nil", got)
	}
}

func TestAppError_WithError(t *testing.T) {
	underlying := errors.New("dial tcp: connection refused")
	newErr := ErrNetwork.WithError(underlying)

	if newErr.Code != ErrNetwork.Code {
		t.Errorf("Code = %v, want %v", newErr.Code, ErrNetwork.Code)
	}

	if newErr.StatusCode != ErrNetwork.StatusCode {
		t.Errorf("StatusCode = %v, want %v", newErr.StatusCode, ErrNetwork.StatusCode)
	}

	if newErr.Err != underlying {
		t.Errorf("Err = %v, want %v", newErr.Err, underlying)
	}

	if !errors.Is(newErr, underlying) {
		t.Errorf("errors.Is should return true for wrapped error")
	}
}

func TestAppError_Is(t *testing.T) {
	wrapped := fmt.Errorf("create session: %w", ErrBackend.WithError(errors.New("missing authToken")))

	if !errors.Is(wrapped, ErrBackend) {
		t.Error("errors.Is(wrapped, ErrBackend) = false, want true")
	}
	if errors.Is(wrapped, ErrNetwork) {
		t.Error("errors.Is(wrapped, ErrNetwork) = true, want false")
	}

	var appErr *AppError
	if !errors.As(wrapped, &appErr) {
		t.Fatal("errors.As should find the AppError")
	}
	if appErr.Code != "BACKEND_ERROR" {
		t.Errorf("Code = %s, want BACKEND_ERROR", appErr.Code)
	}
}
