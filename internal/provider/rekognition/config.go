package rekognition

import (
	"time"

	"github.com/saturnino-fabrica-de-software/facelive/internal/domain"
)

// Config holds configuration for the AWS Rekognition Face Liveness adapter
type Config struct {
	// Region is the AWS region where Rekognition service will be used (e.g., "us-east-1")
	Region string

	// ConfidenceThreshold is the minimum liveness confidence (0-100) reported as a real face
	ConfidenceThreshold float64

	// PollInterval is the wait between GetFaceLivenessSessionResults calls
	PollInterval time.Duration

	// AuditImagesLimit is how many audit images Rekognition returns (0-4)
	AuditImagesLimit int32

	// SessionTTL is how long an issued session stays usable on the vendor side
	SessionTTL time.Duration
}

// DefaultConfig returns a Config with default values
func DefaultConfig() Config {
	return Config{
		Region:              "us-east-1",
		ConfidenceThreshold: 80,
		PollInterval:        time.Second,
		AuditImagesLimit:    0,
		SessionTTL:          3 * time.Minute,
	}
}

// ChallengeFor maps an operation mode to the Rekognition challenge type.
// PassiveActive adds the light challenge on top of face movement.
func ChallengeFor(mode domain.OperationMode) string {
	if mode == domain.OperationModePassiveActive {
		return challengeFaceMovementAndLight
	}
	return challengeFaceMovement
}

const (
	challengeFaceMovement         = "FaceMovementChallenge"
	challengeFaceMovementAndLight = "FaceMovementAndLightChallenge"
)
