package face

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/saturnino-fabrica-de-software/facelive/internal/config"
	"github.com/saturnino-fabrica-de-software/facelive/internal/provider"
	"github.com/saturnino-fabrica-de-software/facelive/internal/provider/mock"
	"github.com/saturnino-fabrica-de-software/facelive/internal/provider/rekognition"
)

// ProviderType defines supported liveness provider types
type ProviderType string

const (
	// ProviderTypeMock is the scripted provider (local, for dev/test)
	ProviderTypeMock ProviderType = "mock"
	// ProviderTypeRekognition is AWS Rekognition Face Liveness (cloud, for prod)
	ProviderTypeRekognition ProviderType = "rekognition"
)

// NewDetector creates the client side LivenessDetector selected by DETECTOR_TYPE
//
// Environment variables:
//   - DETECTOR_TYPE: "mock" or "rekognition" (default: "mock")
//   - AWS_REGION: AWS region for Rekognition (default: "us-east-1")
//   - LIVENESS_CONFIDENCE_THRESHOLD: minimum confidence reported as a live person
//   - POLL_INTERVAL: wait between result polls
//   - AWS_ACCESS_KEY_ID / AWS_SECRET_ACCESS_KEY: via AWS SDK credential chain
func NewDetector(ctx context.Context, cfg *config.ClientConfig, logger *slog.Logger) (provider.LivenessDetector, error) {
	switch ProviderType(cfg.DetectorType) {
	case ProviderTypeRekognition:
		client, err := rekognition.NewClient(ctx, rekognition.Config{
			Region:              cfg.AWSRegion,
			ConfidenceThreshold: cfg.ConfidenceThreshold,
			PollInterval:        cfg.PollInterval,
		})
		if err != nil {
			return nil, fmt.Errorf("create rekognition detector: %w", err)
		}
		return rekognition.NewDetector(client, logger), nil

	case ProviderTypeMock, "":
		return mock.New(), nil

	default:
		return nil, fmt.Errorf("unknown provider type: %s (supported: %s, %s)",
			cfg.DetectorType, ProviderTypeMock, ProviderTypeRekognition)
	}
}

// NewIssuer creates the backend SessionIssuer selected by ISSUER_TYPE
//
// Environment variables:
//   - ISSUER_TYPE: "mock" or "rekognition" (default: "mock")
//   - AWS_REGION: AWS region for Rekognition (default: "us-east-1")
//   - SESSION_TTL: lifetime recorded for issued sessions
//   - AUDIT_IMAGES_LIMIT: audit images requested from Rekognition (0-4)
func NewIssuer(ctx context.Context, cfg *config.Config) (provider.SessionIssuer, error) {
	switch ProviderType(cfg.IssuerType) {
	case ProviderTypeRekognition:
		rekogConfig := rekognition.DefaultConfig()
		rekogConfig.Region = cfg.AWSRegion
		rekogConfig.AuditImagesLimit = cfg.AuditImagesLimit
		if cfg.SessionTTL > 0 {
			rekogConfig.SessionTTL = cfg.SessionTTL
		}

		client, err := rekognition.NewClient(ctx, rekogConfig)
		if err != nil {
			return nil, fmt.Errorf("create rekognition issuer: %w", err)
		}
		return rekognition.NewIssuer(client), nil

	case ProviderTypeMock, "":
		return mock.NewIssuer(cfg.SessionTTL), nil

	default:
		return nil, fmt.Errorf("unknown provider type: %s (supported: %s, %s)",
			cfg.IssuerType, ProviderTypeMock, ProviderTypeRekognition)
	}
}
