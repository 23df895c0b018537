package utils

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type captureTransport struct {
	mu     sync.Mutex
	events []*sentry.Event
}

func (t *captureTransport) Configure(options sentry.ClientOptions) {}

func (t *captureTransport) SendEvent(event *sentry.Event) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.events = append(t.events, event)
}

func (t *captureTransport) Flush(timeout time.Duration) bool { return true }

func (t *captureTransport) FlushWithContext(ctx context.Context) bool { return true }

func (t *captureTransport) Close() {}

func TestLogErrorCapturesToSentry(t *testing.T) {
	transport := &captureTransport{}
	require.NoError(t, sentry.Init(sentry.ClientOptions{
		Dsn:       "https://key@sentry.example.com/1",
		Transport: transport,
	}))

	LogError("assessment_create", errors.New("insert failed"), map[string]interface{}{
		"user_id": 7,
	})

	transport.mu.Lock()
	defer transport.mu.Unlock()
	require.Len(t, transport.events, 1)
	event := transport.events[0]
	assert.Equal(t, "assessment_create", event.Tags["error_type"])
	assert.Equal(t, 7, event.Extra["user_id"])
	require.Len(t, event.Exception, 1)
	assert.Equal(t, "insert failed", event.Exception[0].Value)
}

func TestLogErrorWithoutClientIsNoop(t *testing.T) {
	require.NoError(t, sentry.Init(sentry.ClientOptions{}))

	// must not panic with capture effectively disabled
	LogError("noop", errors.New("ignored"), nil)
}
