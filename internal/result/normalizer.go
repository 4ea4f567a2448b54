// Package result turns a liveness detector outcome into screen text.
package result

import (
	"fmt"

	"github.com/saturnino-fabrica-de-software/facelive/internal/domain"
)

// LivenessLabel returns the display text for a liveness status.
// ok is false for values outside the declared enum; no label is invented for them.
func LivenessLabel(status domain.LivenessStatus) (text string, ok bool) {
	switch status {
	case domain.LivenessStatusRealFace:
		return "Live Person", true
	case domain.LivenessStatusSpoofFace:
		return "Spoof", true
	case domain.LivenessStatusResultQueryableFromService:
		return "ResultQueryableFromService", true
	}
	return "", false
}

// RecognitionLabel returns the display text for a verification status
func RecognitionLabel(status domain.RecognitionStatus) (text string, ok bool) {
	switch status {
	case domain.RecognitionStatusRecognized:
		return "Matched", true
	case domain.RecognitionStatusNotRecognized:
		return "Not Matched", true
	case domain.RecognitionStatusResultQueryableFromService:
		return "ResultQueryableFromService", true
	}
	return "", false
}

// Normalize maps an outcome to a DisplayResult. It never fails: a missing
// or unknown field simply yields an absent line. Failure strings pass through
// untouched. Verification lines are only produced for sessions created with
// a verify image, whatever the detector reported.
func Normalize(outcome domain.Outcome, withVerify bool) domain.DisplayResult {
	var d domain.DisplayResult
	switch o := outcome.(type) {
	case domain.Success:
		d = fromSuccess(o)
	case *domain.Success:
		if o == nil {
			return domain.DisplayResult{Failed: true}
		}
		d = fromSuccess(*o)
	case domain.Failure:
		d = fromFailure(o)
	case *domain.Failure:
		if o == nil {
			return domain.DisplayResult{Failed: true}
		}
		d = fromFailure(*o)
	default:
		return domain.DisplayResult{Failed: true}
	}

	if !withVerify {
		d.Verification = nil
		d.VerificationConfidence = nil
	}
	return d
}

func fromSuccess(s domain.Success) domain.DisplayResult {
	d := domain.DisplayResult{
		ResultID: s.ResultID,
		Digest:   s.Digest,
	}

	if text, ok := LivenessLabel(s.LivenessStatus); ok {
		d.Liveness = &text
	}

	if s.Verification != nil {
		if text, ok := RecognitionLabel(s.Verification.Status); ok {
			d.Verification = &text
		}
		if s.Verification.Confidence != nil {
			conf := fmt.Sprintf("%.2f", *s.Verification.Confidence)
			d.VerificationConfidence = &conf
		}
	}

	return d
}

func fromFailure(f domain.Failure) domain.DisplayResult {
	reason := f.LivenessError
	d := domain.DisplayResult{
		Liveness: &reason,
		Failed:   true,
	}

	if f.VerificationError != nil {
		verification := *f.VerificationError
		d.Verification = &verification
	}
	if f.ResultID != nil {
		d.ResultID = *f.ResultID
	}

	return d
}
