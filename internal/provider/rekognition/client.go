package rekognition

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/rekognition"
	"github.com/aws/aws-sdk-go-v2/service/rekognition/types"
	"github.com/aws/smithy-go"

	"github.com/saturnino-fabrica-de-software/facelive/internal/domain"
)

const (
	errCodeAccessDenied     = "AccessDeniedException"
	errCodeResourceNotFound = "ResourceNotFoundException"
	errCodeSessionNotFound  = "SessionNotFoundException"
	errCodeInvalidParameter = "InvalidParameterException"
	errCodeThrottling       = "ThrottlingException"
	errCodeThroughputExceed = "ProvisionedThroughputExceededException"
)

// LivenessAPI is the subset of the Rekognition client used for Face Liveness
type LivenessAPI interface {
	CreateFaceLivenessSession(ctx context.Context, params *rekognition.CreateFaceLivenessSessionInput, optFns ...func(*rekognition.Options)) (*rekognition.CreateFaceLivenessSessionOutput, error)
	GetFaceLivenessSessionResults(ctx context.Context, params *rekognition.GetFaceLivenessSessionResultsInput, optFns ...func(*rekognition.Options)) (*rekognition.GetFaceLivenessSessionResultsOutput, error)
}

// Client wraps the AWS Rekognition client and provides Face Liveness session operations
type Client struct {
	rekognition LivenessAPI
	config      Config
}

// NewClient creates a new Rekognition client with the provided configuration
// It uses the AWS default credential chain to authenticate
func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return NewClientWithAPI(rekognition.NewFromConfig(awsCfg), cfg), nil
}

// NewClientWithAPI creates a Client over an existing LivenessAPI implementation
func NewClientWithAPI(api LivenessAPI, cfg Config) *Client {
	return &Client{
		rekognition: api,
		config:      cfg,
	}
}

// CreateSession opens a Face Liveness session and returns its id.
// The correlation id is sent as ClientRequestToken so a repeated call for the
// same attempt returns the same session.
func (c *Client) CreateSession(ctx context.Context, correlationID string, mode domain.OperationMode) (string, error) {
	settings := &types.CreateFaceLivenessSessionRequestSettings{
		ChallengePreferences: []types.ChallengePreference{
			{Type: types.ChallengeType(ChallengeFor(mode))},
		},
	}
	if c.config.AuditImagesLimit > 0 {
		settings.AuditImagesLimit = aws.Int32(c.config.AuditImagesLimit)
	}

	input := &rekognition.CreateFaceLivenessSessionInput{
		Settings: settings,
	}
	if correlationID != "" {
		input.ClientRequestToken = aws.String(correlationID)
	}

	output, err := c.rekognition.CreateFaceLivenessSession(ctx, input)
	if err != nil {
		return "", fmt.Errorf("create face liveness session: %w", mapAPIError(err))
	}

	sessionID := aws.ToString(output.SessionId)
	if sessionID == "" {
		return "", ErrEmptySessionID
	}

	return sessionID, nil
}

// GetSessionResults fetches the current state of a Face Liveness session
func (c *Client) GetSessionResults(ctx context.Context, sessionID string) (*rekognition.GetFaceLivenessSessionResultsOutput, error) {
	input := &rekognition.GetFaceLivenessSessionResultsInput{
		SessionId: aws.String(sessionID),
	}

	output, err := c.rekognition.GetFaceLivenessSessionResults(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("session %s: get face liveness results: %w", sessionID, mapAPIError(err))
	}

	return output, nil
}

// mapAPIError translates Rekognition error codes into package sentinels.
// The original error stays in the chain.
func mapAPIError(err error) error {
	var apiErr smithy.APIError
	if !errors.As(err, &apiErr) {
		return err
	}

	switch apiErr.ErrorCode() {
	case errCodeSessionNotFound, errCodeResourceNotFound:
		return fmt.Errorf("%w: %w", ErrSessionNotFound, err)
	case errCodeAccessDenied:
		return fmt.Errorf("%w: %w", ErrInvalidCredentials, err)
	case errCodeThrottling, errCodeThroughputExceed:
		return fmt.Errorf("%w: %w", ErrThrottled, err)
	case errCodeInvalidParameter:
		return fmt.Errorf("%w: %w", ErrInvalidParameter, err)
	}

	return err
}
