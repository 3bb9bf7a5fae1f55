package events

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

const (
	TopicUser  = "user_events"
	TopicCart  = "cart_events"
	TopicOrder = "order_events"
)

type Event map[string]any

// New stamps an event with its type, a unique event_id and the UTC time.
func New(eventType string, fields map[string]any) Event {
	ev := make(Event, len(fields)+3)
	for k, v := range fields {
		ev[k] = v
	}
	ev["type"] = eventType
	ev["event_id"] = uuid.NewString()
	ev["occurred_at"] = time.Now().UTC().Format(time.RFC3339Nano)
	return ev
}

func (e Event) Type() string {
	s, _ := e["type"].(string)
	return s
}

type Publisher interface {
	Publish(ctx context.Context, topic, key string, event Event) error
	Close() error
}

// Nop drops every event. Used when no brokers are configured.
type Nop struct{}

func (Nop) Publish(context.Context, string, string, Event) error { return nil }
func (Nop) Close() error                                         { return nil }

type Message struct {
	Topic string
	Key   string
	Event Event
}

// Recorder keeps published events in memory.
type Recorder struct {
	mu   sync.Mutex
	msgs []Message
}

func (r *Recorder) Publish(_ context.Context, topic, key string, event Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.msgs = append(r.msgs, Message{Topic: topic, Key: key, Event: event})
	return nil
}

func (r *Recorder) Close() error { return nil }

func (r *Recorder) Messages() []Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Message(nil), r.msgs...)
}

// Of returns the recorded events of one type, oldest first.
func (r *Recorder) Of(eventType string) []Message {
	var out []Message
	for _, m := range r.Messages() {
		if m.Event.Type() == eventType {
			out = append(out, m)
		}
	}
	return out
}
