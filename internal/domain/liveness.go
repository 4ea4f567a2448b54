package domain

import (
	"fmt"
	"strings"
)

// OperationMode selects which liveness check variant the vendor runs
type OperationMode string

const (
	OperationModePassive       OperationMode = "Passive"
	OperationModePassiveActive OperationMode = "PassiveActive"
)

// ParseOperationMode accepts the wire spellings case-insensitively
func ParseOperationMode(s string) (OperationMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "passive":
		return OperationModePassive, nil
	case "passiveactive", "passive-active", "passive_active":
		return OperationModePassiveActive, nil
	default:
		return "", ErrInvalidOperationMode.WithError(fmt.Errorf("unknown operation mode %q", s))
	}
}

// IsValid reports whether m is one of the declared modes
func (m OperationMode) IsValid() bool {
	return m == OperationModePassive || m == OperationModePassiveActive
}

func (m OperationMode) String() string {
	return string(m)
}

// VerifyImage is the reference image attached to a verification session
type VerifyImage struct {
	Filename string
	Data     []byte
}

// SessionRequest describes one session-creation call
type SessionRequest struct {
	OperationMode       OperationMode
	SendResultsToClient bool
	CorrelationID       string
	VerifyImage         *VerifyImage
}

// WithVerify reports whether the request carries a verify image.
// It selects both the route and the wire encoding.
func (r SessionRequest) WithVerify() bool {
	return r.VerifyImage != nil
}

// SessionToken is the single-use credential returned by the backend.
// AuthToken is kept verbatim; WithVerify records which route issued it.
type SessionToken struct {
	AuthToken  string
	WithVerify bool
}
