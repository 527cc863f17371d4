package kafka

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Message is a broker message with the headers shared across services.
type Message struct {
	Key       string
	Value     []byte
	Headers   map[string]string
	Timestamp time.Time
}

const (
	HeaderEventID       = "event-id"
	HeaderEventType     = "event-type"
	HeaderSource        = "source"
	HeaderTimestamp     = "timestamp"
	HeaderOriginalTopic = "original-topic"
	HeaderError         = "dlq-error"
)

// MessageHandler processes one consumed message. A nil return commits the
// offset; an error is logged and the message is skipped after DLQ handoff.
type MessageHandler func(ctx context.Context, msg Message) error

// NewMessage builds a message with a generated event id. The value is
// JSON-encoded; encoding failures surface on publish as ErrEmptyValue.
func NewMessage(key, eventType, source string, value any) Message {
	data, err := json.Marshal(value)
	if err != nil {
		data = nil
	}
	now := time.Now()
	return Message{
		Key:   key,
		Value: data,
		Headers: map[string]string{
			HeaderEventID:   uuid.New().String(),
			HeaderEventType: eventType,
			HeaderSource:    source,
			HeaderTimestamp: now.Format(time.RFC3339),
		},
		Timestamp: now,
	}
}

// DecodeValue decodes the message payload into v.
func (m *Message) DecodeValue(v any) error {
	return json.Unmarshal(m.Value, v)
}

func (m *Message) EventType() string {
	return m.Headers[HeaderEventType]
}

func (m *Message) EventID() string {
	return m.Headers[HeaderEventID]
}
