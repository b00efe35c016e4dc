package models

import (
	"time"

	"github.com/google/uuid"
)

const DefaultItemTitle = "Untitled"

// Item is the persisted record. Ids are not guaranteed unique.
type Item struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

const (
	EventItemCreated = "items.created"
	EventItemUpdated = "items.updated"
)

type ItemPayload struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

func NewItemEvent(eventType string, it Item) Event[ItemPayload] {
	return Event[ItemPayload]{
		ID:      uuid.NewString(),
		Type:    eventType,
		Version: 1,
		Time:    time.Now(),
		ItemID:  it.ID,
		Payload: ItemPayload{
			Title:       it.Title,
			Description: it.Description,
		},
	}
}
