package events

import (
	"context"
	"time"
)

// Event types published on the domain bus.
const (
	EventSubmissionCreated     = "submission.created"
	EventSubmissionGraded      = "submission.graded"
	EventAttendanceMarked      = "attendance.marked"
	EventAnnouncementPublished = "announcement.published"
	EventCertificateIssued     = "certificate.issued"
	EventNotificationCreated   = "notification.created"
)

// Topic carries all domain events.
const Topic = "academic.events"

// Event is the envelope published after a write path commits. Publication is
// best-effort: a failed publish is logged, never surfaced to the caller.
type Event struct {
	ID         string                 `json:"id"`
	Type       string                 `json:"type"`
	OccurredAt time.Time              `json:"occurred_at"`
	Data       map[string]interface{} `json:"data"`
}

type EventPublisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}
