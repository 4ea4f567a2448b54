package rekognition

import (
	"context"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/rekognition"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saturnino-fabrica-de-software/facelive/internal/domain"
	"github.com/saturnino-fabrica-de-software/facelive/internal/provider"
)

func TestIssuer_CreateLivenessSession(t *testing.T) {
	api := &mockLivenessAPI{
		createSessionFunc: func(ctx context.Context, params *rekognition.CreateFaceLivenessSessionInput, optFns ...func(*rekognition.Options)) (*rekognition.CreateFaceLivenessSessionOutput, error) {
			return &rekognition.CreateFaceLivenessSessionOutput{SessionId: aws.String("vendor-session")}, nil
		},
	}
	cfg := DefaultConfig()
	cfg.SessionTTL = time.Minute
	issuer := NewIssuer(NewClientWithAPI(api, cfg))

	before := time.Now()
	issued, err := issuer.CreateLivenessSession(context.Background(), provider.IssueRequest{
		OperationMode: domain.OperationModePassive,
		CorrelationID: "corr-1",
	})

	require.NoError(t, err)
	assert.Equal(t, "vendor-session", issued.AuthToken)
	assert.WithinDuration(t, before.Add(time.Minute), issued.ExpiresAt, time.Second)
	assert.Equal(t, "rekognition", issuer.Name())
}

func TestIssuer_CreateLivenessSession_Error(t *testing.T) {
	api := &mockLivenessAPI{
		createSessionFunc: func(ctx context.Context, params *rekognition.CreateFaceLivenessSessionInput, optFns ...func(*rekognition.Options)) (*rekognition.CreateFaceLivenessSessionOutput, error) {
			return nil, &smithy.GenericAPIError{Code: "ThrottlingException"}
		},
	}
	issuer := NewIssuer(NewClientWithAPI(api, DefaultConfig()))

	issued, err := issuer.CreateLivenessSession(context.Background(), provider.IssueRequest{CorrelationID: "corr-2"})

	assert.Nil(t, issued)
	assert.ErrorIs(t, err, ErrThrottled)
	assert.Contains(t, err.Error(), "corr-2")
}
