package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// WatermillPublisher publishes domain events on an in-process gochannel bus.
type WatermillPublisher struct {
	pubSub *gochannel.GoChannel
	logger *slog.Logger
}

func NewWatermillPublisher(logger *slog.Logger) *WatermillPublisher {
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{OutputChannelBuffer: 64},
		watermill.NewSlogLogger(logger),
	)
	return &WatermillPublisher{
		pubSub: pubSub,
		logger: logger,
	}
}

func (p *WatermillPublisher) Publish(ctx context.Context, event Event) error {
	if event.ID == "" {
		event.ID = watermill.NewUUID()
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now()
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	msg := message.NewMessage(event.ID, payload)
	msg.SetContext(ctx)
	msg.Metadata.Set("type", event.Type)

	return p.pubSub.Publish(Topic, msg)
}

// Subscribe returns the raw message stream for consumers wired in main.
func (p *WatermillPublisher) Subscribe(ctx context.Context) (<-chan *message.Message, error) {
	return p.pubSub.Subscribe(ctx, Topic)
}

func (p *WatermillPublisher) Close() error {
	return p.pubSub.Close()
}

// RunAuditSubscriber consumes the event stream and writes one structured log
// line per domain event. It returns when the context is cancelled or the bus
// closes.
func RunAuditSubscriber(ctx context.Context, publisher *WatermillPublisher, logger *slog.Logger) error {
	messages, err := publisher.Subscribe(ctx)
	if err != nil {
		return fmt.Errorf("failed to subscribe to event topic: %w", err)
	}

	for msg := range messages {
		var event Event
		if err := json.Unmarshal(msg.Payload, &event); err != nil {
			logger.Error("Failed to decode domain event", "error", err, "message_id", msg.UUID)
			msg.Ack()
			continue
		}
		logger.Info("Domain event",
			"event_id", event.ID,
			"type", event.Type,
			"occurred_at", event.OccurredAt,
			"data", event.Data)
		msg.Ack()
	}
	return nil
}

// MockEventPublisher records events for tests.
type MockEventPublisher struct {
	mu     sync.Mutex
	events []Event
	logger *slog.Logger
}

func NewMockEventPublisher(logger *slog.Logger) *MockEventPublisher {
	return &MockEventPublisher{logger: logger}
}

func (p *MockEventPublisher) Publish(_ context.Context, event Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *MockEventPublisher) Close() error { return nil }

func (p *MockEventPublisher) GetPublishedEvents() []Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]Event, len(p.events))
	copy(out, p.events)
	return out
}

func (p *MockEventPublisher) ClearEvents() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = nil
}
