package docs

import (
	"github.com/go-swagno/swagno"
	"github.com/go-swagno/swagno/components/endpoint"
	"github.com/go-swagno/swagno/components/http/response"
	"github.com/go-swagno/swagno/components/mime"
	"github.com/go-swagno/swagno/components/parameter"
)

// SessionResponse is returned by both session routes
type SessionResponse struct {
	AuthToken string `json:"authToken" example:"eyJhbGciOiJIUzI1NiJ9.c2Vzc2lvbg"`
}

// ErrorBody carries the machine readable code and a human message
type ErrorBody struct {
	Code    string `json:"code" example:"VALIDATION_FAILED"`
	Message string `json:"message" example:"Request validation failed"`
	Details string `json:"details,omitempty" example:"deviceCorrelationId is required"`
}

// ErrorResponse represents a standard error response
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// SessionRecordResponse is the stored record returned by the lookup route
type SessionRecordResponse struct {
	ID                  string `json:"id" example:"3f1c2a9e-7b4d-4e0a-9c51-2d6f8e1b0a77"`
	OperationMode       string `json:"operation_mode" example:"PassiveActive"`
	SendResultsToClient bool   `json:"send_results_to_client" example:"true"`
	CorrelationID       string `json:"device_correlation_id" example:"b7e2c1d0-0a3f-4c55-8e9d-1f2a3b4c5d6e"`
	WithVerify          bool   `json:"with_verify" example:"true"`
	VerifyImageDigest   string `json:"verify_image_digest,omitempty" example:"e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"`
	Provider            string `json:"provider" example:"mock"`
	ExpiresAt           string `json:"expires_at" example:"2026-01-01T10:10:00Z"`
	CreatedAt           string `json:"created_at" example:"2026-01-01T10:00:00Z"`
}

// HealthResponse is returned by /health and /ready
type HealthResponse struct {
	Status  string `json:"status" example:"ok"`
	Version string `json:"version,omitempty" example:"0.1.0"`
}

func errorOf(code, message string) ErrorResponse {
	return ErrorResponse{Error: ErrorBody{Code: code, Message: message}}
}

// NewSwagger describes the development session backend
func NewSwagger() *swagno.Swagger {
	sw := swagno.New(swagno.Config{
		Title:       "Facelive Session Backend",
		Version:     "v1.0.0",
		Description: "Issues liveness session tokens for the facelive client. Liveness itself is judged by the detector on the device.",
		Host:        "localhost:3000",
		Path:        "/",
	})

	sessionErrors := []response.Response{
		response.New(errorOf("BAD_REQUEST", "Invalid request"), "400", "Bad Request"),
		response.New(errorOf("VALIDATION_FAILED", "Request validation failed"), "422", "Unprocessable Entity"),
		response.New(errorOf("INVALID_OPERATION_MODE", "Liveness operation mode must be Passive or PassiveActive"), "422", "Unprocessable Entity"),
		response.New(errorOf("RATE_LIMIT_EXCEEDED", "Too many session requests"), "429", "Too Many Requests"),
		response.New(errorOf("ISSUER_UNAVAILABLE", "Liveness session issuer unavailable"), "503", "Service Unavailable"),
		response.New(errorOf("INTERNAL_ERROR", "An unexpected error occurred"), "500", "Internal Server Error"),
	}

	endpoints := []*endpoint.EndPoint{
		// POST /api/detectLiveness/singleModal/sessions
		endpoint.New(
			endpoint.POST,
			"/api/detectLiveness/singleModal/sessions",
			endpoint.WithTags("Sessions"),
			endpoint.WithSummary("Create a liveness session"),
			endpoint.WithDescription("Body is JSON with livenessOperationMode (Passive or PassiveActive), sendResultsToClient and deviceCorrelationId. Answers with the authToken the detector consumes."),
			endpoint.WithConsume([]mime.MIME{mime.JSON}),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(SessionResponse{}, "201", "Session issued"),
			}),
			endpoint.WithErrors(sessionErrors),
		),

		// POST /api/detectLivenessWithVerify/singleModal/sessions
		endpoint.New(
			endpoint.POST,
			"/api/detectLivenessWithVerify/singleModal/sessions",
			endpoint.WithTags("Sessions"),
			endpoint.WithSummary("Create a liveness session with face verification"),
			endpoint.WithDescription("Multipart form with a Parameters field holding the same JSON as the plain route and a VerifyImage file with the reference face (at most 5 MiB)."),
			endpoint.WithConsume([]mime.MIME{mime.MIME("multipart/form-data")}),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(SessionResponse{}, "201", "Session issued"),
			}),
			endpoint.WithErrors(append(sessionErrors,
				response.New(errorOf("INVALID_IMAGE", "Invalid verify image"), "422", "Unprocessable Entity"),
			)),
		),

		// GET /api/sessions/:token
		endpoint.New(
			endpoint.GET,
			"/api/sessions/{token}",
			endpoint.WithTags("Sessions"),
			endpoint.WithSummary("Look up an issued session"),
			endpoint.WithDescription("Returns the stored record for an unexpired session: mode, verification flag, verify image digest and expiry. The token is not echoed back."),
			endpoint.WithParams(
				parameter.StrParam("token", parameter.Path, parameter.WithRequired(), parameter.WithDescription("URL-escaped authToken returned at creation")),
			),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(SessionRecordResponse{}, "200", "Session found"),
			}),
			endpoint.WithErrors([]response.Response{
				response.New(errorOf("SESSION_EXPIRED", "Liveness session has expired"), "401", "Unauthorized"),
				response.New(errorOf("SESSION_NOT_FOUND", "Liveness session not found"), "404", "Not Found"),
				response.New(errorOf("RATE_LIMIT_EXCEEDED", "Too many session requests"), "429", "Too Many Requests"),
				response.New(errorOf("INTERNAL_ERROR", "An unexpected error occurred"), "500", "Internal Server Error"),
			}),
		),

		// GET /health
		endpoint.New(
			endpoint.GET,
			"/health",
			endpoint.WithTags("Health"),
			endpoint.WithSummary("Liveness probe"),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(HealthResponse{}, "200", "Process is up"),
			}),
		),

		// GET /ready
		endpoint.New(
			endpoint.GET,
			"/ready",
			endpoint.WithTags("Health"),
			endpoint.WithSummary("Readiness probe"),
			endpoint.WithDescription("Pings the session store."),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(HealthResponse{Status: "ready"}, "200", "Ready to issue sessions"),
			}),
			endpoint.WithErrors([]response.Response{
				response.New(HealthResponse{Status: "unavailable"}, "503", "Session store unreachable"),
			}),
		),
	}

	sw.AddEndpoints(endpoints)

	return sw
}
