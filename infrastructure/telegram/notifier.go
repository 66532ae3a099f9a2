package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"attendance-tasks/domain/ports"
	"attendance-tasks/pkg/config"
	"attendance-tasks/pkg/logger"
)

const defaultAPIBase = "https://api.telegram.org"

// Notifier posts the task events that need a human to a Telegram chat.
// Other events are ignored.
type Notifier struct {
	botToken   string
	chatID     string
	apiBase    string
	httpClient *http.Client
}

func NewNotifier(cfg config.TelegramConfig) *Notifier {
	return &Notifier{
		botToken: cfg.BotToken,
		chatID:   cfg.ChatID,
		apiBase:  defaultAPIBase,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (n *Notifier) PublishTaskEvent(ctx context.Context, event *ports.TaskEvent) error {
	message, ok := formatEvent(event)
	if !ok {
		return nil
	}
	return n.sendMessage(ctx, message)
}

func formatEvent(event *ports.TaskEvent) (string, bool) {
	var title string
	switch event.Type {
	case ports.TaskEventSuggested:
		title = "💡 <b>New task suggestion</b>"
	case ports.TaskEventCompletionRequested:
		title = "🙋 <b>Completion awaiting approval</b>"
	case ports.TaskEventOverdue:
		title = "⏰ <b>Task overdue</b>"
	default:
		return "", false
	}

	var b strings.Builder
	b.WriteString(title)
	b.WriteString("\n\n📝 ")
	b.WriteString(escapeHTML(truncateString(event.Description, 500)))
	fmt.Fprintf(&b, "\n🏷️ %s", event.Variant)
	if event.Deadline != nil {
		fmt.Fprintf(&b, "\n📅 Deadline: %s", event.Deadline.UTC().Format("2006-01-02 15:04"))
	}
	fmt.Fprintf(&b, "\n🆔 <code>%s</code>", event.TaskID)
	return b.String(), true
}

func (n *Notifier) sendMessage(ctx context.Context, message string) error {
	url := fmt.Sprintf("%s/bot%s/sendMessage", n.apiBase, n.botToken)

	body, err := json.Marshal(map[string]any{
		"chat_id":    n.chatID,
		"text":       message,
		"parse_mode": "HTML",
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to send Telegram message", "error", err)
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logger.ErrorContext(ctx, "Telegram API error", "status", resp.StatusCode)
		return fmt.Errorf("telegram API returned status %d", resp.StatusCode)
	}

	logger.DebugContext(ctx, "Telegram notification sent")
	return nil
}

var htmlEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

func escapeHTML(s string) string {
	return htmlEscaper.Replace(s)
}

func truncateString(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen]) + "..."
}
