package domain

// DisplayResult is the screen-facing view of one attempt.
// Nil fields mean the line is not shown.
type DisplayResult struct {
	Liveness               *string `json:"liveness,omitempty"`
	Verification           *string `json:"verification,omitempty"`
	VerificationConfidence *string `json:"verification_confidence,omitempty"`
	ResultID               string  `json:"result_id,omitempty"`
	Digest                 string  `json:"digest,omitempty"`
	Failed                 bool    `json:"failed"`
}

// DisplayLine is one label/value row of a result screen
type DisplayLine struct {
	Label string
	Value string
}

// Lines returns the rows in screen order, skipping absent fields
func (d DisplayResult) Lines() []DisplayLine {
	livenessLabel, verificationLabel := "Liveness status", "Verification status"
	if d.Failed {
		livenessLabel, verificationLabel = "Liveness failure reason", "Verification failure reason"
	}

	var lines []DisplayLine
	if d.Liveness != nil {
		lines = append(lines, DisplayLine{Label: livenessLabel, Value: *d.Liveness})
	}
	if d.Verification != nil {
		lines = append(lines, DisplayLine{Label: verificationLabel, Value: *d.Verification})
	}
	if d.VerificationConfidence != nil {
		lines = append(lines, DisplayLine{Label: "Verification confidence", Value: *d.VerificationConfidence})
	}
	if d.ResultID != "" {
		lines = append(lines, DisplayLine{Label: "Result ID", Value: d.ResultID})
	}
	if d.Digest != "" {
		lines = append(lines, DisplayLine{Label: "Result digest", Value: d.Digest})
	}
	return lines
}
