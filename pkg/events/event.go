package events

import (
	"time"

	"github.com/google/uuid"
)

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "PREFERENCE_CHANGED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
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

const TypePreferenceChanged = "PREFERENCE_CHANGED"

// NewPreferenceChanged builds the event emitted after every committed
// document mutation. ChangeId references the history record so consumers
// can fetch the full before/after states on demand.
func NewPreferenceChanged(userId, changeId uuid.UUID, source string) Event {
	return BaseEvent{
		Type: TypePreferenceChanged,
		Data: map[string]interface{}{
			"user_id":   userId.String(),
			"change_id": changeId.String(),
			"source":    source,
		},
		OccurredAt: time.Now(),
	}
}
