package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOperationMode(t *testing.T) {
	tests := []struct {
		input   string
		want    OperationMode
		wantErr bool
	}{
		{"Passive", OperationModePassive, false},
		{"passive", OperationModePassive, false},
		{" PassiveActive ", OperationModePassiveActive, false},
		{"passive-active", OperationModePassiveActive, false},
		{"active", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseOperationMode(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidOperationMode))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.True(t, got.IsValid())
		})
	}
}

func TestSessionRequest_WithVerify(t *testing.T) {
	req := SessionRequest{OperationMode: OperationModePassive, CorrelationID: "abc"}
	assert.False(t, req.WithVerify())

	req.VerifyImage = &VerifyImage{Filename: "me.jpg", Data: []byte{0xff, 0xd8}}
	assert.True(t, req.WithVerify())
}

func TestAttemptState(t *testing.T) {
	assert.True(t, AttemptAwaitingSession.InFlight())
	assert.True(t, AttemptAwaitingSdkResult.InFlight())
	assert.False(t, AttemptIdle.InFlight())
	assert.False(t, AttemptCompleted.InFlight())

	assert.True(t, AttemptCompleted.Finished())
	assert.True(t, AttemptFailed.Finished())
	assert.False(t, AttemptAwaitingSdkResult.Finished())
}

func TestLivenessSession_IsExpired(t *testing.T) {
	s := &LivenessSession{ExpiresAt: time.Now().Add(time.Minute)}
	assert.False(t, s.IsExpired())

	s.ExpiresAt = time.Now().Add(-time.Second)
	assert.True(t, s.IsExpired())
}

func TestDisplayResult_Lines(t *testing.T) {
	live, matched, conf := "Live Person", "Matched", "0.93"

	t.Run("success with verification", func(t *testing.T) {
		d := DisplayResult{
			Liveness:               &live,
			Verification:           &matched,
			VerificationConfidence: &conf,
			ResultID:               "r-1",
			Digest:                 "d-1",
		}
		assert.Equal(t, []DisplayLine{
			{Label: "Liveness status", Value: "Live Person"},
			{Label: "Verification status", Value: "Matched"},
			{Label: "Verification confidence", Value: "0.93"},
			{Label: "Result ID", Value: "r-1"},
			{Label: "Result digest", Value: "d-1"},
		}, d.Lines())
	})

	t.Run("failure uses reason labels", func(t *testing.T) {
		reason := "Camera permission denied"
		d := DisplayResult{Liveness: &reason, Failed: true}
		assert.Equal(t, []DisplayLine{
			{Label: "Liveness failure reason", Value: "Camera permission denied"},
		}, d.Lines())
	})

	t.Run("empty result has no lines", func(t *testing.T) {
		assert.Empty(t, DisplayResult{}.Lines())
	})
}
