package domain

import (
	"time"

	"github.com/google/uuid"
)

// LivenessSession is the backend record of an issued session token.
// The verify image itself is never stored, only its digest.
type LivenessSession struct {
	ID                  uuid.UUID     `json:"id"`
	AuthToken           string        `json:"-"`
	OperationMode       OperationMode `json:"operation_mode"`
	SendResultsToClient bool          `json:"send_results_to_client"`
	CorrelationID       string        `json:"device_correlation_id"`
	WithVerify          bool          `json:"with_verify"`
	VerifyImageDigest   string        `json:"verify_image_digest,omitempty"`
	Provider            string        `json:"provider"`
	ExpiresAt           time.Time     `json:"expires_at"`
	CreatedAt           time.Time     `json:"created_at"`
}

// IsExpired checks if the session has expired
func (s *LivenessSession) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

// Session-specific errors
var (
	ErrSessionNotFound = &AppError{
		Code:       "SESSION_NOT_FOUND",
		Message:    "Liveness session not found",
		StatusCode: 404,
	}

	ErrSessionExpired = &AppError{
		Code:       "SESSION_EXPIRED",
		Message:    "Liveness session has expired",
		StatusCode: 401,
	}

	ErrSessionConflict = &AppError{
		Code:       "SESSION_CONFLICT",
		Message:    "Liveness session already registered",
		StatusCode: 409,
	}
)
