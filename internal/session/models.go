package session

// Backend routes for session creation
const (
	PathDetectLiveness           = "/api/detectLiveness/singleModal/sessions"
	PathDetectLivenessWithVerify = "/api/detectLivenessWithVerify/singleModal/sessions"
)

// Multipart field names used by the verify route
const (
	FieldParameters  = "Parameters"
	FieldVerifyImage = "VerifyImage"
)

// CreateSessionBody is the JSON sent as the request body, or as the
// Parameters field of the multipart form on the verify route
type CreateSessionBody struct {
	LivenessOperationMode string `json:"livenessOperationMode"`
	SendResultsToClient   bool   `json:"sendResultsToClient"`
	DeviceCorrelationID   string `json:"deviceCorrelationId"`
}

// CreateSessionResponse is what the backend answers on both routes
type CreateSessionResponse struct {
	AuthToken string `json:"authToken"`
}
