package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/saturnino-fabrica-de-software/facelive/internal/domain"
)

type LivenessSessionRepository struct {
	pool PgxPool
}

func NewLivenessSessionRepository(pool PgxPool) *LivenessSessionRepository {
	return &LivenessSessionRepository{pool: pool}
}

// Create stores an issued liveness session
func (r *LivenessSessionRepository) Create(ctx context.Context, session *domain.LivenessSession) error {
	query := `
		INSERT INTO liveness_sessions (id, auth_token, operation_mode, send_results_to_client, correlation_id, with_verify, verify_image_digest, provider, expires_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW())
		RETURNING created_at
	`

	if session.ID == uuid.Nil {
		session.ID = uuid.New()
	}

	err := r.pool.QueryRow(ctx, query,
		session.ID,
		session.AuthToken,
		string(session.OperationMode),
		session.SendResultsToClient,
		session.CorrelationID,
		session.WithVerify,
		session.VerifyImageDigest,
		session.Provider,
		session.ExpiresAt,
	).Scan(&session.CreatedAt)

	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrSessionConflict.WithError(err)
		}
		return fmt.Errorf("create liveness session: %w", err)
	}

	return nil
}

// GetByAuthToken retrieves a liveness session by the token handed to the client
func (r *LivenessSessionRepository) GetByAuthToken(ctx context.Context, authToken string) (*domain.LivenessSession, error) {
	query := `
		SELECT id, auth_token, operation_mode, send_results_to_client, correlation_id, with_verify, verify_image_digest, provider, expires_at, created_at
		FROM liveness_sessions
		WHERE auth_token = $1
	`

	var (
		session domain.LivenessSession
		mode    string
	)
	err := r.pool.QueryRow(ctx, query, authToken).Scan(
		&session.ID,
		&session.AuthToken,
		&mode,
		&session.SendResultsToClient,
		&session.CorrelationID,
		&session.WithVerify,
		&session.VerifyImageDigest,
		&session.Provider,
		&session.ExpiresAt,
		&session.CreatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get liveness session by auth token: %w", err)
	}

	session.OperationMode = domain.OperationMode(mode)
	return &session, nil
}

// DeleteExpired removes all expired sessions
// Returns the number of deleted sessions
func (r *LivenessSessionRepository) DeleteExpired(ctx context.Context) (int64, error) {
	query := `
		DELETE FROM liveness_sessions
		WHERE expires_at < NOW()
	`

	result, err := r.pool.Exec(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("delete expired liveness sessions: %w", err)
	}

	return result.RowsAffected(), nil
}
