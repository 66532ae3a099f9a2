package nats

import (
	"context"
	"encoding/json"
	"fmt"

	"attendance-tasks/pkg/logger"

	"github.com/nats-io/nats.go/jetstream"
)

// Publisher publishes task events to JetStream
type Publisher struct {
	client *Client
}

func NewPublisher(client *Client) *Publisher {
	return &Publisher{
		client: client,
	}
}

// PublishTaskEvent publishes msg with its event id as the message id, so a
// retried publish is deduplicated by the stream.
func (p *Publisher) PublishTaskEvent(ctx context.Context, msg *TaskEventMessage) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal task event: %w", err)
	}

	ack, err := p.client.js.Publish(ctx, SubjectFor(msg.Type), data, jetstream.WithMsgID(msg.EventID))
	if err != nil {
		logger.ErrorContext(ctx, "Failed to publish task event",
			"task_id", msg.TaskID,
			"type", msg.Type,
			"error", err,
		)
		return fmt.Errorf("failed to publish task event: %w", err)
	}

	logger.DebugContext(ctx, "Task event published",
		"task_id", msg.TaskID,
		"type", msg.Type,
		"stream", ack.Stream,
		"sequence", ack.Sequence,
		"duplicate", ack.Duplicate,
	)
	return nil
}
