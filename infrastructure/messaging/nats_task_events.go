package messaging

import (
	"context"

	"attendance-tasks/domain/ports"
	natspkg "attendance-tasks/infrastructure/nats"

	"github.com/google/uuid"
)

type taskEventPublisher interface {
	PublishTaskEvent(ctx context.Context, msg *natspkg.TaskEventMessage) error
}

// NATSTaskEvents implements ports.TaskEventPort using NATS JetStream
type NATSTaskEvents struct {
	publisher taskEventPublisher
}

func NewNATSTaskEvents(publisher taskEventPublisher) ports.TaskEventPort {
	return &NATSTaskEvents{
		publisher: publisher,
	}
}

func (p *NATSTaskEvents) PublishTaskEvent(ctx context.Context, event *ports.TaskEvent) error {
	return p.publisher.PublishTaskEvent(ctx, toMessage(event))
}

func toMessage(event *ports.TaskEvent) *natspkg.TaskEventMessage {
	msg := &natspkg.TaskEventMessage{
		EventID:     event.ID.String(),
		Type:        string(event.Type),
		TaskID:      event.TaskID.String(),
		Variant:     string(event.Variant),
		Description: event.Description,
		OwnerID:     event.OwnerID.String(),
		GroupID:     optionalID(event.GroupID),
		AssigneeID:  optionalID(event.AssigneeID),
		AssignerID:  optionalID(event.AssignerID),
		SuggesterID: optionalID(event.SuggesterID),
		Deadline:    event.Deadline,
		OccurredAt:  event.OccurredAt.Unix(),
	}
	if event.ActorID != uuid.Nil {
		msg.ActorID = event.ActorID.String()
	}
	return msg
}

func optionalID(id *uuid.UUID) string {
	if id == nil {
		return ""
	}
	return id.String()
}
