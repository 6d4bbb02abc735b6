package parts

import "time"

// EventType identifies a part change.
type EventType string

const (
	EventCreated EventType = "part.created"
	EventUpdated EventType = "part.updated"
	EventDeleted EventType = "part.deleted"
)

// Event describes a change to a part. Deleted events carry only the part
// id.
type Event struct {
	Type     EventType `json:"type"`
	PartID   string    `json:"partId"`
	Category string    `json:"category,omitempty"`
	Part     *Part     `json:"part,omitempty"`
	Time     time.Time `json:"time"`
}

// EventPublisher receives part change events. Publish must not block.
type EventPublisher interface {
	Publish(Event)
}
