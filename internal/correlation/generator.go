package correlation

import "github.com/google/uuid"

// Generator produces an opaque identifier for one liveness attempt.
// Values only need to be collision-free across attempts; they are not secrets.
type Generator interface {
	NewID() string
}

// UUIDGenerator issues random (v4) UUID strings
type UUIDGenerator struct{}

// NewUUIDGenerator creates a UUID based generator
func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

// NewID returns a fresh random UUID
func (g *UUIDGenerator) NewID() string {
	return uuid.NewString()
}

// Func adapts a plain function to Generator
type Func func() string

// NewID calls f
func (f Func) NewID() string {
	return f()
}
