package telegram

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"attendance-tasks/domain/models"
	"attendance-tasks/domain/ports"
	"attendance-tasks/pkg/config"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sentMessage struct {
	path   string
	ChatID string `json:"chat_id"`
	Text   string `json:"text"`
	Parse  string `json:"parse_mode"`
}

type inbox struct {
	mu   sync.Mutex
	msgs []sentMessage
}

func (b *inbox) all() []sentMessage {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]sentMessage(nil), b.msgs...)
}

func newTestNotifier(t *testing.T, status int) (*Notifier, *inbox) {
	t.Helper()
	box := &inbox{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var msg sentMessage
		if err := json.NewDecoder(r.Body).Decode(&msg); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		msg.path = r.URL.Path
		box.mu.Lock()
		box.msgs = append(box.msgs, msg)
		box.mu.Unlock()
		w.WriteHeader(status)
	}))
	t.Cleanup(srv.Close)

	n := NewNotifier(config.TelegramConfig{BotToken: "123:abc", ChatID: "-1001"})
	n.apiBase = srv.URL
	return n, box
}

func event(eventType ports.TaskEventType, description string) *ports.TaskEvent {
	deadline := time.Date(2026, 3, 20, 17, 0, 0, 0, time.UTC)
	task := &models.Task{
		ID:          uuid.New(),
		Variant:     models.TaskVariantGroup,
		Description: description,
		Deadline:    &deadline,
	}
	return ports.NewTaskEvent(eventType, task, uuid.New(), time.Now())
}

func TestNotifier_SendsActionableEvents(t *testing.T) {
	n, sent := newTestNotifier(t, http.StatusOK)

	require.NoError(t, n.PublishTaskEvent(context.Background(), event(ports.TaskEventSuggested, "fix <desk> & chairs")))
	msgs := sent.all()
	require.Len(t, msgs, 1)

	msg := msgs[0]
	assert.Equal(t, "/bot123:abc/sendMessage", msg.path)
	assert.Equal(t, "-1001", msg.ChatID)
	assert.Equal(t, "HTML", msg.Parse)
	assert.Contains(t, msg.Text, "New task suggestion")
	assert.Contains(t, msg.Text, "fix &lt;desk&gt; &amp; chairs")
	assert.Contains(t, msg.Text, "2026-03-20 17:00")
}

func TestNotifier_IgnoresOtherEvents(t *testing.T) {
	n, sent := newTestNotifier(t, http.StatusOK)

	for _, et := range []ports.TaskEventType{ports.TaskEventCreated, ports.TaskEventUpdated, ports.TaskEventDeleted} {
		require.NoError(t, n.PublishTaskEvent(context.Background(), event(et, "noise")))
	}
	assert.Empty(t, sent.all())
}

func TestNotifier_APIError(t *testing.T) {
	n, _ := newTestNotifier(t, http.StatusForbidden)

	err := n.PublishTaskEvent(context.Background(), event(ports.TaskEventOverdue, "late"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "403")
}

func TestTruncateString(t *testing.T) {
	assert.Equal(t, "short", truncateString("short", 10))
	assert.Equal(t, "ab...", truncateString("abcdef", 2))
	assert.True(t, strings.HasSuffix(truncateString(strings.Repeat("é", 600), 500), "..."))
}
