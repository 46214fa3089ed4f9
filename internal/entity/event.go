package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type EventType string

const (
	EventItemCreated       EventType = "created"
	EventItemUpdated       EventType = "updated"
	EventItemStatusChanged EventType = "status_changed"
	EventItemSoftDeleted   EventType = "soft_deleted"
	EventItemDeleted       EventType = "deleted"
)

type ItemEvent struct {
	Type       EventType          `json:"type"`
	ItemID     primitive.ObjectID `json:"itemId"`
	Item       *Item              `json:"item,omitempty"`
	OccurredAt time.Time          `json:"occurredAt"`
}
