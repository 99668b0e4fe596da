package model

import "time"

const (
	// HookEventSaved defines the event type for a stored AOI.
	HookEventSaved = "aoi.saved"
	// HookEventDeleted defines the event type for a removed AOI.
	HookEventDeleted = "aoi.deleted"
)

// HookEvent is a model that represents the payload posted to the configured webhook.
type HookEvent struct {
	Event     string    `json:"event"`
	ID        uint64    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	Count     int       `json:"count"`
}
