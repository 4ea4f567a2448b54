package rekognition

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/rekognition"
	"github.com/aws/aws-sdk-go-v2/service/rekognition/types"

	"github.com/saturnino-fabrica-de-software/facelive/internal/domain"
	"github.com/saturnino-fabrica-de-software/facelive/internal/provider"
)

// Detector implements provider.LivenessDetector on top of Rekognition Face Liveness.
// The capture runs in the vendor UI; the detector waits for the session to
// reach a terminal status and converts the verdict. Verify-mode sessions always
// report RecognitionStatusResultQueryableFromService: a match would have to be
// computed by a service holding the verify image, which facelive does not run.
type Detector struct {
	client *Client
	ledger *provider.TokenLedger
	logger *slog.Logger
}

// Ensure Detector implements provider.LivenessDetector interface at compile time
var _ provider.LivenessDetector = (*Detector)(nil)

// NewDetector creates a Detector over an existing client
func NewDetector(client *Client, logger *slog.Logger) *Detector {
	if logger == nil {
		logger = slog.Default()
	}
	return &Detector{
		client: client,
		ledger: provider.NewTokenLedger(),
		logger: logger.With("component", "rekognition_detector"),
	}
}

// Start polls GetFaceLivenessSessionResults until the session is SUCCEEDED,
// FAILED or EXPIRED. No deadline is imposed here; cancel ctx to stop waiting.
func (d *Detector) Start(ctx context.Context, token domain.SessionToken) (domain.Outcome, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := d.ledger.Consume(token.AuthToken); err != nil {
		return nil, err
	}

	interval := d.client.config.PollInterval
	if interval <= 0 {
		interval = DefaultConfig().PollInterval
	}

	for {
		output, err := d.client.GetSessionResults(ctx, token.AuthToken)
		switch {
		case err == nil:
		case errors.Is(err, ErrThrottled):
			d.logger.WarnContext(ctx, "liveness results throttled, retrying",
				slog.Duration("interval", interval),
			)
			output = nil
		case ctx.Err() != nil:
			return nil, ctx.Err()
		default:
			return nil, err
		}

		if output != nil {
			if outcome, done := d.toOutcome(token, output); done {
				return outcome, nil
			}
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(interval):
		}
	}
}

// toOutcome reports done=false while the session is still being captured
func (d *Detector) toOutcome(token domain.SessionToken, output *rekognition.GetFaceLivenessSessionResultsOutput) (domain.Outcome, bool) {
	sessionID := aws.ToString(output.SessionId)
	if sessionID == "" {
		sessionID = token.AuthToken
	}

	switch output.Status {
	case types.LivenessSessionStatusCreated, types.LivenessSessionStatusInProgress:
		return nil, false

	case types.LivenessSessionStatusSucceeded:
		success := domain.Success{
			LivenessStatus: d.livenessStatus(output.Confidence),
			ResultID:       sessionID,
			Digest:         referenceDigest(output.ReferenceImage),
		}
		if token.WithVerify {
			// Rekognition does not compare against the verify image. The backend keeps
			// only its digest, so nothing in facelive resolves this verdict.
			success.Verification = &domain.Verification{
				Status: domain.RecognitionStatusResultQueryableFromService,
			}
		}
		return success, true

	default:
		failure := domain.Failure{
			LivenessError: failureReason(output.Status),
			ResultID:      &sessionID,
		}
		if token.WithVerify {
			reason := failure.LivenessError
			failure.VerificationError = &reason
		}
		return failure, true
	}
}

func (d *Detector) livenessStatus(confidence *float32) domain.LivenessStatus {
	if confidence == nil {
		return domain.LivenessStatusResultQueryableFromService
	}
	if float64(*confidence) >= d.client.config.ConfidenceThreshold {
		return domain.LivenessStatusRealFace
	}
	return domain.LivenessStatusSpoofFace
}

func failureReason(status types.LivenessSessionStatus) string {
	switch status {
	case types.LivenessSessionStatusFailed:
		return "LivenessSessionFailed"
	case types.LivenessSessionStatusExpired:
		return "LivenessSessionExpired"
	}
	return fmt.Sprintf("LivenessSessionStatus%s", status)
}

// referenceDigest is the hex SHA-256 of the reference image, empty when absent
func referenceDigest(image *types.AuditImage) string {
	if image == nil || len(image.Bytes) == 0 {
		return ""
	}
	sum := sha256.Sum256(image.Bytes)
	return hex.EncodeToString(sum[:])
}
