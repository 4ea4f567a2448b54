package rekognition

import (
	"context"
	"fmt"
	"time"

	"github.com/saturnino-fabrica-de-software/facelive/internal/provider"
)

const issuerName = "rekognition"

// Issuer implements provider.SessionIssuer with CreateFaceLivenessSession
type Issuer struct {
	client *Client
}

var _ provider.SessionIssuer = (*Issuer)(nil)

// NewIssuer creates an Issuer over an existing client
func NewIssuer(client *Client) *Issuer {
	return &Issuer{client: client}
}

// CreateLivenessSession opens a vendor session; the session id is the auth token
func (i *Issuer) CreateLivenessSession(ctx context.Context, req provider.IssueRequest) (*provider.IssuedSession, error) {
	sessionID, err := i.client.CreateSession(ctx, req.CorrelationID, req.OperationMode)
	if err != nil {
		return nil, fmt.Errorf("correlation %s: %w", req.CorrelationID, err)
	}

	ttl := i.client.config.SessionTTL
	if ttl <= 0 {
		ttl = DefaultConfig().SessionTTL
	}

	return &provider.IssuedSession{
		AuthToken: sessionID,
		ExpiresAt: time.Now().Add(ttl),
	}, nil
}

// Name returns "rekognition"
func (i *Issuer) Name() string {
	return issuerName
}
