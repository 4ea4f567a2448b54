package domain

// AttemptState is the lifecycle of one liveness attempt
type AttemptState string

const (
	AttemptIdle              AttemptState = "idle"
	AttemptAwaitingSession   AttemptState = "awaiting_session"
	AttemptAwaitingSdkResult AttemptState = "awaiting_sdk_result"
	AttemptCompleted         AttemptState = "completed"
	AttemptFailed            AttemptState = "failed"
)

// InFlight reports whether an attempt is outstanding in this state
func (s AttemptState) InFlight() bool {
	return s == AttemptAwaitingSession || s == AttemptAwaitingSdkResult
}

// Finished reports whether the attempt has resolved
func (s AttemptState) Finished() bool {
	return s == AttemptCompleted || s == AttemptFailed
}
