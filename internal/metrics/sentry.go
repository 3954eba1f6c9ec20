package metrics

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/getsentry/sentry-go"
)

const (
	// HTTP status code threshold for considering a request successful
	successStatusCodeThreshold = http.StatusBadRequest
)

// SentryMetrics handles custom metrics for Sentry
type SentryMetrics struct {
	enabled bool
}

// NewSentryMetrics creates a new Sentry metrics client
func NewSentryMetrics() *SentryMetrics {
	return &SentryMetrics{
		enabled: true, // Always enabled if Sentry is configured
	}
}

// RecordAPIRequest records API request metrics
func (m *SentryMetrics) RecordAPIRequest(ctx context.Context, endpoint string, statusCode int, duration time.Duration) {
	if !m.enabled {
		return
	}

	// Create a span for API request tracking using the request context
	span := sentry.StartSpan(ctx, "api.request")
	defer span.Finish()

	// Set span tags
	span.SetTag("endpoint", endpoint)
	span.SetTag("status_code", fmt.Sprintf("%d", statusCode))
	span.SetTag("success", fmt.Sprintf("%t", statusCode < successStatusCodeThreshold))

	// Set span data
	span.SetData("duration_ms", duration.Milliseconds())
	span.SetData("endpoint", endpoint)
	span.SetData("status_code", statusCode)

	// Set span status based on response
	if statusCode < successStatusCodeThreshold {
		span.Status = sentry.SpanStatusOK
	} else {
		span.Status = sentry.SpanStatusInternalError
	}

	// Set span description
	span.Description = fmt.Sprintf("API Request: %s", endpoint)
}

// RecordEngineUpdate records one frame update through an engine session
func (m *SentryMetrics) RecordEngineUpdate(ctx context.Context, sessionID string, duration time.Duration, musicEvents int) {
	if !m.enabled {
		return
	}

	span := sentry.StartSpan(ctx, "engine.update")
	defer span.Finish()

	// Set span tags
	span.SetTag("session_id", sessionID)

	// Set span data
	span.SetData("duration_ms", duration.Milliseconds())
	span.SetData("music_events", musicEvents)

	span.Status = sentry.SpanStatusOK
	span.Description = fmt.Sprintf("Engine Update: %s", sessionID)
}

// RecordStreamSession records a realtime stream summary when it closes
func (m *SentryMetrics) RecordStreamSession(sessionID string, frames, musicEvents uint64, duration time.Duration) {
	if !m.enabled {
		return
	}

	// Create a span for stream tracking
	ctx := context.Background()
	span := sentry.StartSpan(ctx, "stream.session")
	defer span.Finish()

	// Set span tags
	span.SetTag("session_id", sessionID)

	// Set span data
	span.SetData("frames", frames)
	span.SetData("music_events", musicEvents)
	span.SetData("duration_ms", duration.Milliseconds())

	span.Status = sentry.SpanStatusOK
	span.Description = fmt.Sprintf("Stream Session: %s", sessionID)
}

