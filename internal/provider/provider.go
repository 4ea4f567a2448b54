package provider

import (
	"context"
	"time"

	"github.com/saturnino-fabrica-de-software/facelive/internal/domain"
)

// LivenessDetector is the vendor liveness capability seen from the client side.
// Camera capture and spoof scoring happen inside the vendor; this layer only
// hands over the token and waits for the single resolution.
type LivenessDetector interface {
	// Start consumes the token exactly once and resolves to Success or Failure.
	// The error return is reserved for adapter level problems (cancelled context,
	// a token presented twice); it is not used for a negative liveness verdict.
	Start(ctx context.Context, token domain.SessionToken) (domain.Outcome, error)
}

// SessionIssuer creates liveness sessions with the vendor on behalf of the backend
type SessionIssuer interface {
	CreateLivenessSession(ctx context.Context, req IssueRequest) (*IssuedSession, error)

	// Name identifies the issuer in stored session records and audit events
	Name() string
}

// IssueRequest carries what the vendor needs to open a session
type IssueRequest struct {
	OperationMode       domain.OperationMode
	SendResultsToClient bool
	CorrelationID       string
	WithVerify          bool
}

// IssuedSession is the vendor answer to IssueRequest
type IssuedSession struct {
	AuthToken string
	ExpiresAt time.Time
}
