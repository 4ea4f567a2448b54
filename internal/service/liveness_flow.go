package service

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/saturnino-fabrica-de-software/facelive/internal/audit"
	"github.com/saturnino-fabrica-de-software/facelive/internal/correlation"
	"github.com/saturnino-fabrica-de-software/facelive/internal/domain"
	"github.com/saturnino-fabrica-de-software/facelive/internal/provider"
	"github.com/saturnino-fabrica-de-software/facelive/internal/result"
)

// SessionCreator obtains a session token from the application backend
type SessionCreator interface {
	CreateSession(ctx context.Context, req domain.SessionRequest) (*domain.SessionToken, error)
}

// StateListener observes every state change of a LivenessFlow
type StateListener func(from, to domain.AttemptState)

// StartParams are the user choices for an attempt. Retry reuses them.
type StartParams struct {
	OperationMode domain.OperationMode
	VerifyImage   *domain.VerifyImage
}

// Attempt is what one run of the flow produced. Display is always set.
type Attempt struct {
	CorrelationID string
	Token         *domain.SessionToken
	Outcome       domain.Outcome
	Display       domain.DisplayResult
	Err           error
}

// LivenessFlow drives Idle -> AwaitingSession -> AwaitingSdkResult -> Completed|Failed.
// Only one attempt may be outstanding; the guard lives here instead of in the UI.
type LivenessFlow struct {
	sessions SessionCreator
	detector provider.LivenessDetector
	ids      correlation.Generator
	audit    audit.Logger
	logger   *slog.Logger

	sendResultsToClient bool
	providerName        string

	mu       sync.Mutex
	state    domain.AttemptState
	last     *StartParams
	listener StateListener
}

// NewLivenessFlow creates a flow in the Idle state
func NewLivenessFlow(
	sessions SessionCreator,
	detector provider.LivenessDetector,
	ids correlation.Generator,
	logger *slog.Logger,
) *LivenessFlow {
	if logger == nil {
		logger = slog.Default()
	}
	if ids == nil {
		ids = correlation.NewUUIDGenerator()
	}
	return &LivenessFlow{
		sessions:            sessions,
		detector:            detector,
		ids:                 ids,
		audit:               &audit.NoOpLogger{},
		logger:              logger.With("component", "liveness_flow"),
		sendResultsToClient: true,
		providerName:        "unknown",
		state:               domain.AttemptIdle,
	}
}

func (f *LivenessFlow) WithAudit(logger audit.Logger) *LivenessFlow {
	f.audit = logger
	return f
}

func (f *LivenessFlow) WithSendResultsToClient(send bool) *LivenessFlow {
	f.sendResultsToClient = send
	return f
}

// WithProviderName sets the detector name recorded in audit events
func (f *LivenessFlow) WithProviderName(name string) *LivenessFlow {
	f.providerName = name
	return f
}

func (f *LivenessFlow) OnStateChange(listener StateListener) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listener = listener
}

func (f *LivenessFlow) State() domain.AttemptState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// CanStart reports whether the start control should be enabled
func (f *LivenessFlow) CanStart() bool {
	return f.State() == domain.AttemptIdle
}

// CanRetry reports whether the retry control should be enabled
func (f *LivenessFlow) CanRetry() bool {
	return f.State().Finished()
}

// Start runs a new attempt from Idle
func (f *LivenessFlow) Start(ctx context.Context, params StartParams) (*Attempt, error) {
	if !params.OperationMode.IsValid() {
		return nil, domain.ErrInvalidOperationMode
	}

	from, err := f.enter(func(state domain.AttemptState) bool {
		return state == domain.AttemptIdle
	})
	if err != nil {
		return nil, err
	}

	f.mu.Lock()
	p := params
	f.last = &p
	f.mu.Unlock()

	f.notify(from, domain.AttemptAwaitingSession)
	return f.run(ctx, params), nil
}

// Retry runs the last attempt again with a fresh correlation id and session token
func (f *LivenessFlow) Retry(ctx context.Context) (*Attempt, error) {
	from, err := f.enter(func(state domain.AttemptState) bool {
		return state.Finished()
	})
	if err != nil {
		return nil, err
	}

	f.mu.Lock()
	params := *f.last
	f.mu.Unlock()

	f.notify(from, domain.AttemptAwaitingSession)
	return f.run(ctx, params), nil
}

// Reset goes back to Idle and forgets the last parameters
func (f *LivenessFlow) Reset() error {
	f.mu.Lock()
	from := f.state
	if from.InFlight() {
		f.mu.Unlock()
		return domain.ErrAttemptInProgress
	}
	f.state = domain.AttemptIdle
	f.last = nil
	f.mu.Unlock()

	if from != domain.AttemptIdle {
		f.notify(from, domain.AttemptIdle)
	}
	return nil
}

// enter moves to AwaitingSession when allowed holds for the current state
func (f *LivenessFlow) enter(allowed func(domain.AttemptState) bool) (domain.AttemptState, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	from := f.state
	if from.InFlight() {
		return from, domain.ErrAttemptInProgress
	}
	if !allowed(from) {
		return from, domain.ErrInvalidTransition.WithError(
			errors.New("cannot leave state " + string(from)),
		)
	}
	f.state = domain.AttemptAwaitingSession
	return from, nil
}

func (f *LivenessFlow) run(ctx context.Context, params StartParams) *Attempt {
	attempt := &Attempt{CorrelationID: f.ids.NewID()}
	withVerify := params.VerifyImage != nil

	token, err := f.sessions.CreateSession(ctx, domain.SessionRequest{
		OperationMode:       params.OperationMode,
		SendResultsToClient: f.sendResultsToClient,
		CorrelationID:       attempt.CorrelationID,
		VerifyImage:         params.VerifyImage,
	})
	if err != nil {
		f.logger.WarnContext(ctx, "session creation failed",
			slog.String("correlation_id", attempt.CorrelationID),
			slog.String("error", err.Error()),
		)
		return f.fail(ctx, attempt, err, withVerify)
	}
	attempt.Token = token

	f.transition(domain.AttemptAwaitingSession, domain.AttemptAwaitingSdkResult)

	outcome, err := f.detector.Start(ctx, *token)
	if err == nil && outcome == nil {
		err = errors.New("detector resolved without an outcome")
	}
	if err != nil {
		f.logger.WarnContext(ctx, "liveness detector failed",
			slog.String("correlation_id", attempt.CorrelationID),
			slog.String("error", err.Error()),
		)
		return f.fail(ctx, attempt, domain.ErrSdkFailure.WithError(err), token.WithVerify)
	}

	attempt.Outcome = outcome
	attempt.Display = result.Normalize(outcome, token.WithVerify)

	if isSuccess(outcome) {
		f.transition(domain.AttemptAwaitingSdkResult, domain.AttemptCompleted)
		f.record(ctx, audit.EventLivenessCompleted, attempt, token.WithVerify)
	} else {
		f.transition(domain.AttemptAwaitingSdkResult, domain.AttemptFailed)
		f.record(ctx, audit.EventLivenessFailed, attempt, token.WithVerify)
	}

	f.logger.InfoContext(ctx, "liveness attempt finished",
		slog.String("correlation_id", attempt.CorrelationID),
		slog.String("result_id", attempt.Display.ResultID),
		slog.Bool("failed", attempt.Display.Failed),
	)
	return attempt
}

// fail resolves the attempt with a Failure built from err so the screen always has something to show
func (f *LivenessFlow) fail(ctx context.Context, attempt *Attempt, err error, withVerify bool) *Attempt {
	failure := domain.Failure{LivenessError: err.Error()}
	if withVerify {
		reason := failure.LivenessError
		failure.VerificationError = &reason
	}

	attempt.Err = err
	attempt.Outcome = failure
	attempt.Display = result.Normalize(failure, withVerify)

	f.mu.Lock()
	from := f.state
	f.state = domain.AttemptFailed
	f.mu.Unlock()
	f.notify(from, domain.AttemptFailed)

	f.record(ctx, audit.EventLivenessFailed, attempt, withVerify)
	return attempt
}

func (f *LivenessFlow) transition(from, to domain.AttemptState) {
	f.mu.Lock()
	f.state = to
	f.mu.Unlock()
	f.notify(from, to)
}

// notify runs the listener outside the lock so it may call State
func (f *LivenessFlow) notify(from, to domain.AttemptState) {
	f.mu.Lock()
	listener := f.listener
	f.mu.Unlock()

	if listener != nil {
		listener(from, to)
	}
}

func (f *LivenessFlow) record(ctx context.Context, eventType audit.EventType, attempt *Attempt, withVerify bool) {
	event := audit.Event{
		EventType:     eventType,
		CorrelationID: attempt.CorrelationID,
		ResultID:      attempt.Display.ResultID,
		WithVerify:    withVerify,
		Provider:      f.providerName,
		Success:       eventType == audit.EventLivenessCompleted,
	}
	if attempt.Err != nil {
		event.Error = attempt.Err.Error()
	} else if attempt.Display.Failed && attempt.Display.Liveness != nil {
		event.Error = *attempt.Display.Liveness
	}

	if err := f.audit.Log(ctx, event); err != nil {
		f.logger.WarnContext(ctx, "failed to record audit event",
			slog.String("event_type", string(eventType)),
			slog.String("error", err.Error()),
		)
	}
}

func isSuccess(outcome domain.Outcome) bool {
	switch o := outcome.(type) {
	case domain.Success:
		return true
	case *domain.Success:
		return o != nil
	}
	return false
}
