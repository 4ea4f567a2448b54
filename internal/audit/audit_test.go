package audit

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlogLogger_Log(t *testing.T) {
	tests := []struct {
		name          string
		event         Event
		wantEventType string
		wantProvider  string
		wantHasError  bool
		wantHasResult bool
	}{
		{
			name: "session created",
			event: Event{
				EventType:     EventSessionCreated,
				CorrelationID: "corr-1",
				SessionID:     uuid.NewString(),
				OperationMode: "Passive",
				Provider:      "mock",
				Success:       true,
			},
			wantEventType: string(EventSessionCreated),
			wantProvider:  "mock",
		},
		{
			name: "session rejected",
			event: Event{
				EventType:     EventSessionRejected,
				CorrelationID: "corr-2",
				Provider:      "rekognition",
				Success:       false,
				Error:         "rekognition request throttled",
			},
			wantEventType: string(EventSessionRejected),
			wantProvider:  "rekognition",
			wantHasError:  true,
		},
		{
			name: "liveness completed with result id",
			event: Event{
				EventType:     EventLivenessCompleted,
				CorrelationID: "corr-3",
				ResultID:      "result-123",
				WithVerify:    true,
				Provider:      "rekognition",
				Success:       true,
				Metadata:      map[string]string{"liveness": "RealFace"},
			},
			wantEventType: string(EventLivenessCompleted),
			wantProvider:  "rekognition",
			wantHasResult: true,
		},
		{
			name: "liveness failed",
			event: Event{
				EventType:     EventLivenessFailed,
				CorrelationID: "corr-4",
				Provider:      "mock",
				Success:       false,
				Error:         "CameraPermissionDenied",
				IPAddress:     "192.168.1.1",
				UserAgent:     "facelive-client/0.1.0",
			},
			wantEventType: string(EventLivenessFailed),
			wantProvider:  "mock",
			wantHasError:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			handler := slog.NewJSONHandler(&buf, nil)
			logger := slog.New(handler)

			auditLogger := NewSlogLogger(logger)
			err := auditLogger.Log(context.Background(), tt.event)

			require.NoError(t, err)

			output := buf.String()
			assert.Contains(t, output, tt.wantEventType)
			assert.Contains(t, output, tt.wantProvider)
			assert.Contains(t, output, tt.event.CorrelationID)
			assert.Contains(t, output, "audit_event")
			assert.Contains(t, output, "audit")

			if tt.wantHasError {
				assert.Contains(t, output, tt.event.Error)
			}

			if tt.wantHasResult {
				assert.Contains(t, output, tt.event.ResultID)
			}
		})
	}
}

func TestSlogLogger_Log_GeneratesIDAndTimestamp(t *testing.T) {
	var buf bytes.Buffer
	auditLogger := NewSlogLogger(slog.New(slog.NewJSONHandler(&buf, nil)))

	err := auditLogger.Log(context.Background(), Event{
		EventType: EventSessionCreated,
		Provider:  "mock",
		Success:   true,
	})
	require.NoError(t, err)

	var logEntry map[string]interface{}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.NotEmpty(t, lines)
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &logEntry))

	eventID, ok := logEntry["event_id"].(string)
	require.True(t, ok)
	_, err = uuid.Parse(eventID)
	assert.NoError(t, err)

	var decoded Event
	require.NoError(t, json.Unmarshal([]byte(logEntry["event_data"].(string)), &decoded))
	assert.False(t, decoded.Timestamp.IsZero())
}

func TestSlogLogger_Log_UsesProvidedID(t *testing.T) {
	var buf bytes.Buffer
	auditLogger := NewSlogLogger(slog.New(slog.NewJSONHandler(&buf, nil)))
	expectedID := uuid.New()

	err := auditLogger.Log(context.Background(), Event{
		ID:        expectedID,
		Timestamp: time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC),
		EventType: EventLivenessCompleted,
		Provider:  "mock",
		Success:   true,
	})
	require.NoError(t, err)

	assert.Contains(t, buf.String(), expectedID.String())
	assert.Contains(t, buf.String(), "2024-01-15T10:30:00Z")
}

func TestNoOpLogger_Log(t *testing.T) {
	logger := &NoOpLogger{}

	for i := 0; i < 100; i++ {
		err := logger.Log(context.Background(), Event{EventType: EventLivenessFailed})
		assert.NoError(t, err)
	}
}

func TestLoggerInterface_Compliance(t *testing.T) {
	var _ Logger = (*SlogLogger)(nil)
	var _ Logger = (*NoOpLogger)(nil)
}

func TestEvent_JSONSerialization_OmitsEmptyFields(t *testing.T) {
	data, err := json.Marshal(Event{
		EventType: EventSessionCreated,
		Provider:  "mock",
		Success:   true,
	})
	require.NoError(t, err)

	jsonStr := string(data)
	assert.NotContains(t, jsonStr, "correlation_id")
	assert.NotContains(t, jsonStr, "result_id")
	assert.NotContains(t, jsonStr, "error")
	assert.NotContains(t, jsonStr, "ip_address")
	assert.Contains(t, jsonStr, `"with_verify":false`)
}
