package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/slack-go/slack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todobackend/models/api"
)

func newCapturingAlerter(webhookURL string) (*ErrorAlertMiddleware, chan *slack.WebhookMessage) {
	sent := make(chan *slack.WebhookMessage, 10)
	m := NewErrorAlertMiddleware(SlackAlertConfig{
		WebhookURL:  webhookURL,
		Environment: "dev",
		AppName:     "todobackend",
		LogsURL:     "https://logs.example.com",
	})
	m.postWebhook = func(ctx context.Context, url string, msg *slack.WebhookMessage) error {
		sent <- msg
		return nil
	}
	return m, sent
}

func waitForAlert(t *testing.T, sent chan *slack.WebhookMessage) *slack.WebhookMessage {
	t.Helper()
	select {
	case msg := <-sent:
		return msg
	case <-time.After(2 * time.Second):
		t.Fatal("expected a slack alert")
		return nil
	}
}

func TestErrorAlertMiddleware_HTTPMiddlewareRecoversPanics(t *testing.T) {
	m, sent := newCapturingAlerter("https://hooks.slack.test/1")

	handler := m.HTTPMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/todos", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	var body api.MessageResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.False(t, body.Success)

	msg := waitForAlert(t, sent)
	assert.Contains(t, msg.Text, "HTTP POST /api/todos: PANIC - boom")
}

func TestErrorAlertMiddleware_WrapBackgroundTask(t *testing.T) {
	t.Run("error is alerted and returned", func(t *testing.T) {
		m, sent := newCapturingAlerter("https://hooks.slack.test/1")
		taskErr := errors.New("sweep failed")

		err := m.WrapBackgroundTask("subscription sweeper", func() error { return taskErr })()
		assert.ErrorIs(t, err, taskErr)

		msg := waitForAlert(t, sent)
		assert.Equal(t, "Background task: subscription sweeper: sweep failed", msg.Text)
	})

	t.Run("panic becomes an error", func(t *testing.T) {
		m, sent := newCapturingAlerter("https://hooks.slack.test/1")

		err := m.WrapBackgroundTask("sweeper", func() error { panic("nil map") })()
		require.Error(t, err)
		waitForAlert(t, sent)
	})

	t.Run("success is silent", func(t *testing.T) {
		m, sent := newCapturingAlerter("https://hooks.slack.test/1")

		require.NoError(t, m.WrapBackgroundTask("sweeper", func() error { return nil })())
		select {
		case <-sent:
			t.Fatal("unexpected alert")
		case <-time.After(50 * time.Millisecond):
		}
	})
}

func TestErrorAlertMiddleware_Cooldown(t *testing.T) {
	m, _ := newCapturingAlerter("")
	current := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return current }

	assert.True(t, m.shouldAlert("db down"))
	assert.False(t, m.shouldAlert("db down"))
	assert.True(t, m.shouldAlert("other error"))

	current = current.Add(11 * time.Minute)
	assert.True(t, m.shouldAlert("db down"))
}

func TestErrorAlertMiddleware_DisabledWithoutWebhook(t *testing.T) {
	m, sent := newCapturingAlerter("")
	m.sendSlackAlert("error", "source")

	select {
	case <-sent:
		t.Fatal("no webhook configured, nothing should be posted")
	default:
	}
}

func TestErrorAlertMiddleware_PostsSlackWebhook(t *testing.T) {
	var (
		mu      sync.Mutex
		payload map[string]any
	)
	done := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		mu.Lock()
		_ = json.Unmarshal(body, &payload)
		mu.Unlock()
		w.WriteHeader(http.StatusOK)
		close(done)
	}))
	defer server.Close()

	m := NewErrorAlertMiddleware(SlackAlertConfig{WebhookURL: server.URL, Environment: "prod", AppName: "todobackend"})
	m.sendSlackAlert("Background task: sweeper: db down", "Background task: sweeper")

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("webhook was not called")
	}

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, "Background task: sweeper: db down", payload["text"])
	blocks, ok := payload["blocks"].([]any)
	require.True(t, ok)
	assert.Len(t, blocks, 3)
}
