package rekognition

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/rekognition"
	"github.com/aws/aws-sdk-go-v2/service/rekognition/types"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saturnino-fabrica-de-software/facelive/internal/domain"
	"github.com/saturnino-fabrica-de-software/facelive/internal/provider"
)

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.PollInterval = time.Millisecond
	return cfg
}

func resultsAPI(outputs ...*rekognition.GetFaceLivenessSessionResultsOutput) (*mockLivenessAPI, *atomic.Int32) {
	var calls atomic.Int32
	api := &mockLivenessAPI{
		getResultsFunc: func(ctx context.Context, params *rekognition.GetFaceLivenessSessionResultsInput, optFns ...func(*rekognition.Options)) (*rekognition.GetFaceLivenessSessionResultsOutput, error) {
			n := int(calls.Add(1)) - 1
			if n >= len(outputs) {
				n = len(outputs) - 1
			}
			return outputs[n], nil
		},
	}
	return api, &calls
}

func TestDetectorImplementsInterface(t *testing.T) {
	var _ provider.LivenessDetector = (*Detector)(nil)
}

func TestDetector_Start_Succeeded(t *testing.T) {
	reference := []byte("reference-image-bytes")
	sum := sha256.Sum256(reference)

	tests := []struct {
		name         string
		confidence   *float32
		withVerify   bool
		wantStatus   domain.LivenessStatus
		wantVerified bool
	}{
		{name: "above threshold", confidence: aws.Float32(97.5), wantStatus: domain.LivenessStatusRealFace},
		{name: "at threshold", confidence: aws.Float32(80), wantStatus: domain.LivenessStatusRealFace},
		{name: "below threshold", confidence: aws.Float32(12), wantStatus: domain.LivenessStatusSpoofFace},
		{name: "no confidence", confidence: nil, wantStatus: domain.LivenessStatusResultQueryableFromService},
		{name: "verify mode", confidence: aws.Float32(99), withVerify: true, wantStatus: domain.LivenessStatusRealFace, wantVerified: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api, _ := resultsAPI(&rekognition.GetFaceLivenessSessionResultsOutput{
				SessionId:      aws.String("session-1"),
				Status:         types.LivenessSessionStatusSucceeded,
				Confidence:     tt.confidence,
				ReferenceImage: &types.AuditImage{Bytes: reference},
			})
			detector := NewDetector(NewClientWithAPI(api, testConfig()), nil)

			outcome, err := detector.Start(context.Background(), domain.SessionToken{AuthToken: "session-1", WithVerify: tt.withVerify})

			require.NoError(t, err)
			success, ok := outcome.(domain.Success)
			require.True(t, ok, "expected Success, got %T", outcome)
			assert.Equal(t, tt.wantStatus, success.LivenessStatus)
			assert.Equal(t, "session-1", success.ResultID)
			assert.Equal(t, hex.EncodeToString(sum[:]), success.Digest)

			if tt.wantVerified {
				require.NotNil(t, success.Verification)
				assert.Equal(t, domain.RecognitionStatusResultQueryableFromService, success.Verification.Status)
			} else {
				assert.Nil(t, success.Verification)
			}
		})
	}
}

func TestDetector_Start_TerminalFailures(t *testing.T) {
	tests := []struct {
		name       string
		status     types.LivenessSessionStatus
		withVerify bool
		wantReason string
	}{
		{name: "failed", status: types.LivenessSessionStatusFailed, wantReason: "LivenessSessionFailed"},
		{name: "expired", status: types.LivenessSessionStatusExpired, wantReason: "LivenessSessionExpired"},
		{name: "failed in verify mode", status: types.LivenessSessionStatusFailed, withVerify: true, wantReason: "LivenessSessionFailed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api, _ := resultsAPI(&rekognition.GetFaceLivenessSessionResultsOutput{
				SessionId: aws.String("session-2"),
				Status:    tt.status,
			})
			detector := NewDetector(NewClientWithAPI(api, testConfig()), nil)

			outcome, err := detector.Start(context.Background(), domain.SessionToken{AuthToken: "session-2", WithVerify: tt.withVerify})

			require.NoError(t, err)
			failure, ok := outcome.(domain.Failure)
			require.True(t, ok, "expected Failure, got %T", outcome)
			assert.Equal(t, tt.wantReason, failure.LivenessError)
			require.NotNil(t, failure.ResultID)
			assert.Equal(t, "session-2", *failure.ResultID)

			if tt.withVerify {
				require.NotNil(t, failure.VerificationError)
				assert.Equal(t, tt.wantReason, *failure.VerificationError)
			} else {
				assert.Nil(t, failure.VerificationError)
			}
		})
	}
}

func TestDetector_Start_PollsUntilTerminal(t *testing.T) {
	api, calls := resultsAPI(
		&rekognition.GetFaceLivenessSessionResultsOutput{Status: types.LivenessSessionStatusCreated},
		&rekognition.GetFaceLivenessSessionResultsOutput{Status: types.LivenessSessionStatusInProgress},
		&rekognition.GetFaceLivenessSessionResultsOutput{Status: types.LivenessSessionStatusSucceeded, Confidence: aws.Float32(90)},
	)
	detector := NewDetector(NewClientWithAPI(api, testConfig()), nil)

	outcome, err := detector.Start(context.Background(), domain.SessionToken{AuthToken: "session-3"})

	require.NoError(t, err)
	assert.Equal(t, int32(3), calls.Load())

	success, ok := outcome.(domain.Success)
	require.True(t, ok)
	assert.Equal(t, "session-3", success.ResultID, "falls back to the token when SessionId is absent")
	assert.Empty(t, success.Digest)
}

func TestDetector_Start_RetriesWhenThrottled(t *testing.T) {
	var calls atomic.Int32
	api := &mockLivenessAPI{
		getResultsFunc: func(ctx context.Context, params *rekognition.GetFaceLivenessSessionResultsInput, optFns ...func(*rekognition.Options)) (*rekognition.GetFaceLivenessSessionResultsOutput, error) {
			if calls.Add(1) == 1 {
				return nil, &smithy.GenericAPIError{Code: "ThrottlingException"}
			}
			return &rekognition.GetFaceLivenessSessionResultsOutput{Status: types.LivenessSessionStatusSucceeded, Confidence: aws.Float32(95)}, nil
		},
	}
	detector := NewDetector(NewClientWithAPI(api, testConfig()), nil)

	outcome, err := detector.Start(context.Background(), domain.SessionToken{AuthToken: "session-4"})

	require.NoError(t, err)
	assert.Equal(t, int32(2), calls.Load())
	assert.IsType(t, domain.Success{}, outcome)
}

func TestDetector_Start_APIError(t *testing.T) {
	api := &mockLivenessAPI{
		getResultsFunc: func(ctx context.Context, params *rekognition.GetFaceLivenessSessionResultsInput, optFns ...func(*rekognition.Options)) (*rekognition.GetFaceLivenessSessionResultsOutput, error) {
			return nil, &smithy.GenericAPIError{Code: "AccessDeniedException"}
		},
	}
	detector := NewDetector(NewClientWithAPI(api, testConfig()), nil)

	outcome, err := detector.Start(context.Background(), domain.SessionToken{AuthToken: "session-5"})

	assert.Nil(t, outcome)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestDetector_Start_ContextCancelled(t *testing.T) {
	api, _ := resultsAPI(&rekognition.GetFaceLivenessSessionResultsOutput{Status: types.LivenessSessionStatusInProgress})
	detector := NewDetector(NewClientWithAPI(api, testConfig()), nil)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	outcome, err := detector.Start(ctx, domain.SessionToken{AuthToken: "session-6"})

	assert.Nil(t, outcome)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
}

func TestDetector_Start_RejectsReusedToken(t *testing.T) {
	api, calls := resultsAPI(&rekognition.GetFaceLivenessSessionResultsOutput{Status: types.LivenessSessionStatusSucceeded})
	detector := NewDetector(NewClientWithAPI(api, testConfig()), nil)
	token := domain.SessionToken{AuthToken: "session-7"}

	_, err := detector.Start(context.Background(), token)
	require.NoError(t, err)

	outcome, err := detector.Start(context.Background(), token)

	assert.Nil(t, outcome)
	assert.ErrorIs(t, err, domain.ErrTokenReused)
	assert.Equal(t, int32(1), calls.Load())
}
