package session

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/saturnino-fabrica-de-software/facelive/internal/domain"
)

const defaultVerifyImageName = "verify.jpg"

// maxResponseSize bounds how much of a backend answer is read
const maxResponseSize = 1 << 20

// Config holds the configuration for the session client
type Config struct {
	BaseURL   string
	Timeout   time.Duration
	UserAgent string
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() Config {
	return Config{
		BaseURL:   "http://localhost:3000",
		Timeout:   30 * time.Second,
		UserAgent: "facelive-client/0.1.0",
	}
}

// Client creates liveness sessions on the application backend
type Client struct {
	httpClient *http.Client
	config     Config
	logger     *slog.Logger
}

// NewClient creates a new session client
func NewClient(config Config, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	config.BaseURL = strings.TrimRight(config.BaseURL, "/")

	return &Client{
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
		config: config,
		logger: logger.With("component", "session_client"),
	}
}

// CreateSession issues exactly one POST and returns the backend token verbatim.
// A verify image switches the call to the multipart verify route.
// Transport failures are ErrNetwork; anything unusable in the answer is ErrBackend.
func (c *Client) CreateSession(ctx context.Context, req domain.SessionRequest) (*domain.SessionToken, error) {
	params := CreateSessionBody{
		LivenessOperationMode: req.OperationMode.String(),
		SendResultsToClient:   req.SendResultsToClient,
		DeviceCorrelationID:   req.CorrelationID,
	}

	var (
		path        string
		body        *bytes.Buffer
		contentType string
		err         error
	)
	if req.WithVerify() {
		path = PathDetectLivenessWithVerify
		body, contentType, err = encodeMultipart(params, req.VerifyImage)
	} else {
		path = PathDetectLiveness
		body, contentType, err = encodeJSON(params)
	}
	if err != nil {
		return nil, fmt.Errorf("encode session request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.BaseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", contentType)
	httpReq.Header.Set("Accept", "application/json")
	if c.config.UserAgent != "" {
		httpReq.Header.Set("User-Agent", c.config.UserAgent)
	}

	c.logger.DebugContext(ctx, "creating liveness session",
		slog.String("path", path),
		slog.String("operation_mode", params.LivenessOperationMode),
		slog.String("correlation_id", params.DeviceCorrelationID),
	)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, domain.ErrNetwork.WithError(fmt.Errorf("do request: %w", err))
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, domain.ErrNetwork.WithError(fmt.Errorf("read response: %w", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, domain.ErrBackend.WithError(
			fmt.Errorf("backend returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(respBody))),
		)
	}

	var out CreateSessionResponse
	if err := json.Unmarshal(respBody, &out); err != nil {
		return nil, domain.ErrBackend.WithError(fmt.Errorf("decode response: %w", err))
	}
	if out.AuthToken == "" {
		return nil, domain.ErrBackend.WithError(errors.New("response has no authToken"))
	}

	c.logger.DebugContext(ctx, "liveness session created",
		slog.String("correlation_id", params.DeviceCorrelationID),
		slog.Int("status", resp.StatusCode),
	)

	return &domain.SessionToken{
		AuthToken:  out.AuthToken,
		WithVerify: req.WithVerify(),
	}, nil
}

func encodeJSON(params CreateSessionBody) (*bytes.Buffer, string, error) {
	b, err := json.Marshal(params)
	if err != nil {
		return nil, "", fmt.Errorf("marshal parameters: %w", err)
	}
	return bytes.NewBuffer(b), "application/json", nil
}

func encodeMultipart(params CreateSessionBody, image *domain.VerifyImage) (*bytes.Buffer, string, error) {
	b, err := json.Marshal(params)
	if err != nil {
		return nil, "", fmt.Errorf("marshal parameters: %w", err)
	}

	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)

	if err := w.WriteField(FieldParameters, string(b)); err != nil {
		return nil, "", fmt.Errorf("write %s field: %w", FieldParameters, err)
	}

	name := image.Filename
	if name == "" {
		name = defaultVerifyImageName
	}
	part, err := w.CreateFormFile(FieldVerifyImage, name)
	if err != nil {
		return nil, "", fmt.Errorf("create %s part: %w", FieldVerifyImage, err)
	}
	if _, err := part.Write(image.Data); err != nil {
		return nil, "", fmt.Errorf("write %s part: %w", FieldVerifyImage, err)
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("close multipart writer: %w", err)
	}

	return buf, w.FormDataContentType(), nil
}
