package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"

	"github.com/saturnino-fabrica-de-software/facelive/internal/audit"
	"github.com/saturnino-fabrica-de-software/facelive/internal/domain"
	"github.com/saturnino-fabrica-de-software/facelive/internal/provider"
)

// MaxVerifyImageSize is the largest reference image the backend accepts
const MaxVerifyImageSize = 5 << 20

type LivenessSessionRepositoryInterface interface {
	Create(ctx context.Context, session *domain.LivenessSession) error
	GetByAuthToken(ctx context.Context, authToken string) (*domain.LivenessSession, error)
	DeleteExpired(ctx context.Context) (int64, error)
}

// SessionService issues liveness sessions for the dev backend.
// It never judges liveness; it hands out tokens and keeps a record of them.
type SessionService struct {
	repo   LivenessSessionRepositoryInterface
	issuer provider.SessionIssuer
	audit  audit.Logger
	logger *slog.Logger
}

func NewSessionService(
	repo LivenessSessionRepositoryInterface,
	issuer provider.SessionIssuer,
	logger *slog.Logger,
) *SessionService {
	if logger == nil {
		logger = slog.Default()
	}
	return &SessionService{
		repo:   repo,
		issuer: issuer,
		audit:  &audit.NoOpLogger{},
		logger: logger.With("component", "session_service"),
	}
}

func (s *SessionService) WithAudit(logger audit.Logger) *SessionService {
	s.audit = logger
	return s
}

// CreateSession validates the request, asks the issuer for a token and stores the record
func (s *SessionService) CreateSession(ctx context.Context, req domain.SessionRequest) (*domain.LivenessSession, error) {
	// 1. Validate input
	if !req.OperationMode.IsValid() {
		return nil, domain.ErrInvalidOperationMode
	}

	if req.CorrelationID == "" {
		return nil, domain.ErrValidationFailed.WithError(fmt.Errorf("deviceCorrelationId is required"))
	}

	var digest string
	if req.VerifyImage != nil {
		if len(req.VerifyImage.Data) == 0 {
			return nil, domain.ErrInvalidImage.WithError(fmt.Errorf("verify image is empty"))
		}
		if len(req.VerifyImage.Data) > MaxVerifyImageSize {
			return nil, domain.ErrInvalidImage.WithError(
				fmt.Errorf("verify image is %d bytes, limit is %d", len(req.VerifyImage.Data), MaxVerifyImageSize),
			)
		}
		sum := sha256.Sum256(req.VerifyImage.Data)
		digest = hex.EncodeToString(sum[:])
	}

	// 2. Issue the vendor session
	issued, err := s.issuer.CreateLivenessSession(ctx, provider.IssueRequest{
		OperationMode:       req.OperationMode,
		SendResultsToClient: req.SendResultsToClient,
		CorrelationID:       req.CorrelationID,
		WithVerify:          req.WithVerify(),
	})
	if err != nil {
		s.record(ctx, audit.Event{
			EventType:     audit.EventSessionRejected,
			CorrelationID: req.CorrelationID,
			OperationMode: req.OperationMode.String(),
			WithVerify:    req.WithVerify(),
			Error:         err.Error(),
		})
		return nil, domain.ErrIssuerUnavailable.WithError(err)
	}

	// 3. Persist the record
	session := &domain.LivenessSession{
		AuthToken:           issued.AuthToken,
		OperationMode:       req.OperationMode,
		SendResultsToClient: req.SendResultsToClient,
		CorrelationID:       req.CorrelationID,
		WithVerify:          req.WithVerify(),
		VerifyImageDigest:   digest,
		Provider:            s.issuer.Name(),
		ExpiresAt:           issued.ExpiresAt,
	}

	if err := s.repo.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("correlation %s: store session: %w", req.CorrelationID, err)
	}

	s.record(ctx, audit.Event{
		EventType:     audit.EventSessionCreated,
		CorrelationID: session.CorrelationID,
		SessionID:     session.ID.String(),
		OperationMode: session.OperationMode.String(),
		WithVerify:    session.WithVerify,
		Success:       true,
	})

	return session, nil
}

// GetSession retrieves a session by token, rejecting expired ones
func (s *SessionService) GetSession(ctx context.Context, authToken string) (*domain.LivenessSession, error) {
	session, err := s.repo.GetByAuthToken(ctx, authToken)
	if err != nil {
		return nil, err
	}

	if session.IsExpired() {
		return nil, domain.ErrSessionExpired
	}

	return session, nil
}

// CleanupExpiredSessions removes expired sessions (should be called periodically)
func (s *SessionService) CleanupExpiredSessions(ctx context.Context) (int64, error) {
	deleted, err := s.repo.DeleteExpired(ctx)
	if err != nil {
		return 0, fmt.Errorf("cleanup expired sessions: %w", err)
	}
	return deleted, nil
}

func (s *SessionService) record(ctx context.Context, event audit.Event) {
	event.Provider = s.issuer.Name()
	if err := s.audit.Log(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "failed to record audit event",
			slog.String("event_type", string(event.EventType)),
			slog.String("error", err.Error()),
		)
	}
}
