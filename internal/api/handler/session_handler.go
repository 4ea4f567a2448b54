package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/saturnino-fabrica-de-software/facelive/internal/domain"
	"github.com/saturnino-fabrica-de-software/facelive/internal/service"
	"github.com/saturnino-fabrica-de-software/facelive/internal/session"
)

// SessionService interface for the service
type SessionService interface {
	CreateSession(ctx context.Context, req domain.SessionRequest) (*domain.LivenessSession, error)
	GetSession(ctx context.Context, authToken string) (*domain.LivenessSession, error)
}

// SessionHandler serves the two session bootstrap routes the client calls
type SessionHandler struct {
	service SessionService
	logger  *slog.Logger
}

// NewSessionHandler creates a new SessionHandler instance
func NewSessionHandler(service SessionService, logger *slog.Logger) *SessionHandler {
	return &SessionHandler{
		service: service,
		logger:  logger,
	}
}

// CreateSession POST /api/detectLiveness/singleModal/sessions
func (h *SessionHandler) CreateSession(c *fiber.Ctx) error {
	var body session.CreateSessionBody
	if err := c.BodyParser(&body); err != nil {
		return domain.ErrBadRequest.WithError(fmt.Errorf("parse body: %w", err))
	}

	req, err := toSessionRequest(body)
	if err != nil {
		return err
	}

	return h.issue(c, req)
}

// CreateSessionWithVerify POST /api/detectLivenessWithVerify/singleModal/sessions
func (h *SessionHandler) CreateSessionWithVerify(c *fiber.Ctx) error {
	// 1. Parameters field carries the same JSON as the plain route
	raw := c.FormValue(session.FieldParameters)
	if strings.TrimSpace(raw) == "" {
		return domain.ErrValidationFailed.WithError(fmt.Errorf("%s field is required", session.FieldParameters))
	}

	var body session.CreateSessionBody
	if err := json.Unmarshal([]byte(raw), &body); err != nil {
		return domain.ErrBadRequest.WithError(fmt.Errorf("parse %s: %w", session.FieldParameters, err))
	}

	req, err := toSessionRequest(body)
	if err != nil {
		return err
	}

	// 2. Verify image
	image, err := extractVerifyImage(c)
	if err != nil {
		return err
	}
	req.VerifyImage = image

	return h.issue(c, req)
}

// GetSession GET /api/sessions/:token
// Returns the stored record; the token itself is never echoed back.
func (h *SessionHandler) GetSession(c *fiber.Ctx) error {
	token, err := url.PathUnescape(c.Params("token"))
	if err != nil {
		return domain.ErrBadRequest.WithError(fmt.Errorf("decode token: %w", err))
	}
	if strings.TrimSpace(token) == "" {
		return domain.ErrValidationFailed.WithError(errors.New("token is required"))
	}

	found, err := h.service.GetSession(c.UserContext(), token)
	if err != nil {
		return err
	}

	return c.JSON(found)
}

func (h *SessionHandler) issue(c *fiber.Ctx, req domain.SessionRequest) error {
	created, err := h.service.CreateSession(c.UserContext(), req)
	if err != nil {
		return err
	}

	h.logger.Debug("liveness session issued",
		slog.String("correlation_id", created.CorrelationID),
		slog.String("session_id", created.ID.String()),
		slog.Bool("with_verify", created.WithVerify),
	)

	return c.Status(fiber.StatusCreated).JSON(session.CreateSessionResponse{
		AuthToken: created.AuthToken,
	})
}

func toSessionRequest(body session.CreateSessionBody) (domain.SessionRequest, error) {
	mode, err := domain.ParseOperationMode(body.LivenessOperationMode)
	if err != nil {
		return domain.SessionRequest{}, err
	}

	correlationID := strings.TrimSpace(body.DeviceCorrelationID)
	if correlationID == "" {
		return domain.SessionRequest{}, domain.ErrValidationFailed.WithError(errors.New("deviceCorrelationId is required"))
	}

	return domain.SessionRequest{
		OperationMode:       mode,
		SendResultsToClient: body.SendResultsToClient,
		CorrelationID:       correlationID,
	}, nil
}

func extractVerifyImage(c *fiber.Ctx) (*domain.VerifyImage, error) {
	// 1. Extract file
	file, err := c.FormFile(session.FieldVerifyImage)
	if err != nil {
		return nil, domain.ErrValidationFailed.WithError(fmt.Errorf("%s file is required: %w", session.FieldVerifyImage, err))
	}

	// 2. Validate size
	if file.Size == 0 {
		return nil, domain.ErrInvalidImage.WithError(errors.New("verify image is empty"))
	}
	if file.Size > service.MaxVerifyImageSize {
		return nil, domain.ErrInvalidImage.WithError(
			fmt.Errorf("verify image is %d bytes, limit is %d", file.Size, service.MaxVerifyImageSize),
		)
	}

	// 3. Read content
	f, err := file.Open()
	if err != nil {
		return nil, domain.ErrInvalidImage.WithError(err)
	}
	defer func() {
		_ = f.Close()
	}()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, domain.ErrInvalidImage.WithError(err)
	}

	return &domain.VerifyImage{
		Filename: file.Filename,
		Data:     data,
	}, nil
}
