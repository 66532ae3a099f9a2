package nats

import "time"

// Stream and subject names
const (
	StreamName          = "TASK_EVENTS"
	SubjectTaskEvents   = "tasks.events.>"
	subjectEventsPrefix = "tasks.events."
)

// SubjectFor returns the subject an event of type eventType is published on,
// e.g. "task.assigned" goes to "tasks.events.task.assigned".
func SubjectFor(eventType string) string {
	return subjectEventsPrefix + eventType
}

// ═══════════════════════════════════════════════════════════════════════════════
// TaskEventMessage - API → consumers (via JetStream)
// ═══════════════════════════════════════════════════════════════════════════════
type TaskEventMessage struct {
	EventID     string     `json:"event_id"`
	Type        string     `json:"type"`
	TaskID      string     `json:"task_id"`
	Variant     string     `json:"variant"`
	Description string     `json:"description"`
	ActorID     string     `json:"actor_id,omitempty"` // empty for scheduled events
	OwnerID     string     `json:"owner_id"`
	GroupID     string     `json:"group_id,omitempty"`
	AssigneeID  string     `json:"assignee_id,omitempty"`
	AssignerID  string     `json:"assigner_id,omitempty"`
	SuggesterID string     `json:"suggester_id,omitempty"`
	Deadline    *time.Time `json:"deadline,omitempty"`
	OccurredAt  int64      `json:"occurred_at"`
}

// ═══════════════════════════════════════════════════════════════════════════════
// JetStream Status - for the health endpoint
// ═══════════════════════════════════════════════════════════════════════════════
type StreamInfo struct {
	Name     string `json:"name"`
	Messages uint64 `json:"messages"`
	Bytes    uint64 `json:"bytes"`
	FirstSeq uint64 `json:"first_seq"`
	LastSeq  uint64 `json:"last_seq"`
}
