package provider

import (
	"sync"

	"github.com/saturnino-fabrica-de-software/facelive/internal/domain"
)

// TokenLedger remembers which session tokens a detector already consumed.
// Detectors use it to refuse a second Start with the same token.
type TokenLedger struct {
	mu   sync.Mutex
	seen map[string]struct{}
}

// NewTokenLedger creates an empty ledger
func NewTokenLedger() *TokenLedger {
	return &TokenLedger{seen: make(map[string]struct{})}
}

// Consume marks the token as used, failing with ErrTokenReused on a repeat
func (l *TokenLedger) Consume(authToken string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.seen[authToken]; ok {
		return domain.ErrTokenReused
	}
	l.seen[authToken] = struct{}{}
	return nil
}

// Consumed reports whether the token was already used
func (l *TokenLedger) Consumed(authToken string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	_, ok := l.seen[authToken]
	return ok
}
