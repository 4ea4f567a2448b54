package domain

// LivenessStatus is the vendor verdict on the captured face
type LivenessStatus string

const (
	LivenessStatusRealFace                   LivenessStatus = "RealFace"
	LivenessStatusSpoofFace                  LivenessStatus = "SpoofFace"
	LivenessStatusResultQueryableFromService LivenessStatus = "ResultQueryableFromService"
)

// RecognitionStatus is the vendor verdict on the match against the verify image
type RecognitionStatus string

const (
	RecognitionStatusRecognized                 RecognitionStatus = "Recognized"
	RecognitionStatusNotRecognized              RecognitionStatus = "NotRecognized"
	RecognitionStatusResultQueryableFromService RecognitionStatus = "ResultQueryableFromService"
)

// Verification is present only for sessions created with a verify image
type Verification struct {
	Status     RecognitionStatus
	Confidence *float64
}

// Outcome is the single resolution of a liveness detector run.
// It is either Success or Failure.
type Outcome interface {
	isOutcome()
}

type Success struct {
	LivenessStatus LivenessStatus
	Verification   *Verification
	ResultID       string
	Digest         string
}

type Failure struct {
	LivenessError     string
	VerificationError *string
	ResultID          *string
}

func (Success) isOutcome() {}
func (Failure) isOutcome() {}
