package domain

import (
	"fmt"
)

type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Err        error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is matches on Code so a copy made by WithError still satisfies errors.Is
// against the pre-defined value.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

func (e *AppError) WithError(err error) *AppError {
	return &AppError{
		Code:       e.Code,
		Message:    e.Message,
		StatusCode: e.StatusCode,
		Err:        err,
	}
}

// Pre-defined errors
var (
	ErrInternal = &AppError{
		Code:       "INTERNAL_ERROR",
		Message:    "An unexpected error occurred",
		StatusCode: 500,
	}

	ErrBadRequest = &AppError{
		Code:       "BAD_REQUEST",
		Message:    "Invalid request",
		StatusCode: 400,
	}

	ErrNotFound = &AppError{
		Code:       "NOT_FOUND",
		Message:    "Resource not found",
		StatusCode: 404,
	}

	ErrValidationFailed = &AppError{
		Code:       "VALIDATION_FAILED",
		Message:    "Request validation failed",
		StatusCode: 422,
	}

	ErrInvalidImage = &AppError{
		Code:       "INVALID_IMAGE",
		Message:    "Invalid verify image",
		StatusCode: 422,
	}

	ErrInvalidOperationMode = &AppError{
		Code:       "INVALID_OPERATION_MODE",
		Message:    "Liveness operation mode must be Passive or PassiveActive",
		StatusCode: 422,
	}

	// Session bootstrap errors

	ErrNetwork = &AppError{
		Code:       "NETWORK_ERROR",
		Message:    "Could not reach the session backend",
		StatusCode: 502,
	}

	ErrBackend = &AppError{
		Code:       "BACKEND_ERROR",
		Message:    "Session backend returned an unusable response",
		StatusCode: 502,
	}

	ErrSdkFailure = &AppError{
		Code:       "SDK_FAILURE",
		Message:    "Liveness detector failed",
		StatusCode: 502,
	}

	ErrIssuerUnavailable = &AppError{
		Code:       "ISSUER_UNAVAILABLE",
		Message:    "Liveness session issuer unavailable",
		StatusCode: 503,
	}

	// Attempt lifecycle errors

	ErrAttemptInProgress = &AppError{
		Code:       "ATTEMPT_IN_PROGRESS",
		Message:    "A liveness attempt is already in progress",
		StatusCode: 409,
	}

	ErrInvalidTransition = &AppError{
		Code:       "INVALID_TRANSITION",
		Message:    "Action not allowed in the current attempt state",
		StatusCode: 409,
	}

	ErrRateLimitExceeded = &AppError{
		Code:       "RATE_LIMIT_EXCEEDED",
		Message:    "Too many session requests",
		StatusCode: 429,
	}

	ErrTokenReused = &AppError{
		Code:       "TOKEN_REUSED",
		Message:    "Session token was already consumed",
		StatusCode: 409,
	}
)
