package events

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

var ErrMalformedEvent = errors.New("malformed event")

// Event is the envelope carried by the task transports.
type Event interface {
	// EventType names the work to perform, e.g. "process_source".
	EventType() string

	Payload() map[string]interface{}

	Timestamp() time.Time
}

type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

type wireEvent struct {
	Type       string                 `json:"type"`
	Data       map[string]interface{} `json:"payload"`
	OccurredAt time.Time              `json:"occurred_at"`
}

// Marshal encodes an event for the wire.
func Marshal(e Event) ([]byte, error) {
	return json.Marshal(wireEvent{
		Type:       e.EventType(),
		Data:       e.Payload(),
		OccurredAt: e.Timestamp(),
	})
}

// Unmarshal decodes an event written by Marshal. Bytes that are not an event
// envelope, or one without a type, yield ErrMalformedEvent.
func Unmarshal(data []byte) (BaseEvent, error) {
	var w wireEvent
	if err := json.Unmarshal(data, &w); err != nil {
		return BaseEvent{}, fmt.Errorf("%w: %v", ErrMalformedEvent, err)
	}
	if w.Type == "" {
		return BaseEvent{}, fmt.Errorf("%w: missing type", ErrMalformedEvent)
	}
	if w.Data == nil {
		w.Data = map[string]interface{}{}
	}
	return BaseEvent{Type: w.Type, Data: w.Data, OccurredAt: w.OccurredAt}, nil
}
