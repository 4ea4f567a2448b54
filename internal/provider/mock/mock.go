package mock

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/google/uuid"
	"github.com/saturnino-fabrica-de-software/facelive/internal/domain"
	"github.com/saturnino-fabrica-de-software/facelive/internal/provider"
)

const issuerName = "mock"

// defaultSessionTTL mirrors the lifetime the vendor gives a fresh session
const defaultSessionTTL = 10 * time.Minute

// Detector implementa provider.LivenessDetector para testes e desenvolvimento.
// Retorna um resultado roteirizado e recusa tokens já consumidos.
type Detector struct {
	ledger *provider.TokenLedger
	script func(token domain.SessionToken) domain.Outcome
}

// Ensure Detector implements provider.LivenessDetector interface at compile time
var _ provider.LivenessDetector = (*Detector)(nil)

// New cria um Detector que sempre reconhece uma pessoa viva
func New() *Detector {
	return NewScripted(LiveOutcome)
}

// NewScripted cria um Detector cujo resultado é decidido por script
func NewScripted(script func(token domain.SessionToken) domain.Outcome) *Detector {
	return &Detector{
		ledger: provider.NewTokenLedger(),
		script: script,
	}
}

// Start simula a sessão do SDK: um token, uma resolução
func (d *Detector) Start(ctx context.Context, token domain.SessionToken) (domain.Outcome, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := d.ledger.Consume(token.AuthToken); err != nil {
		return nil, err
	}

	return d.script(token), nil
}

// Consumed reports whether a token was already presented
func (d *Detector) Consumed(authToken string) bool {
	return d.ledger.Consumed(authToken)
}

// LiveOutcome reconhece uma pessoa viva e, no modo de verificação, um match.
// O digest é o SHA-256 do result ID; o token nunca aparece no resultado.
func LiveOutcome(token domain.SessionToken) domain.Outcome {
	resultID := uuid.NewString()
	sum := sha256.Sum256([]byte(resultID))
	out := domain.Success{
		LivenessStatus: domain.LivenessStatusRealFace,
		ResultID:       resultID,
		Digest:         hex.EncodeToString(sum[:]),
	}
	if token.WithVerify {
		out.Verification = &domain.Verification{Status: domain.RecognitionStatusRecognized}
	}
	return out
}

// FailureOutcome retorna um script que sempre falha com o motivo informado
func FailureOutcome(reason string) func(token domain.SessionToken) domain.Outcome {
	return func(token domain.SessionToken) domain.Outcome {
		out := domain.Failure{LivenessError: reason}
		if token.WithVerify {
			verificationErr := reason
			out.VerificationError = &verificationErr
		}
		return out
	}
}

// Issuer implementa provider.SessionIssuer gerando tokens aleatórios
type Issuer struct {
	ttl time.Duration
}

var _ provider.SessionIssuer = (*Issuer)(nil)

// NewIssuer cria um Issuer; ttl zero usa o padrão de 10 minutos
func NewIssuer(ttl time.Duration) *Issuer {
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	return &Issuer{ttl: ttl}
}

// CreateLivenessSession gera um token opaco
func (i *Issuer) CreateLivenessSession(ctx context.Context, req provider.IssueRequest) (*provider.IssuedSession, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return &provider.IssuedSession{
		AuthToken: uuid.NewString(),
		ExpiresAt: time.Now().Add(i.ttl),
	}, nil
}

// Name returns "mock"
func (i *Issuer) Name() string {
	return issuerName
}
