package domain

import "time"

// EventType defines the category of the event.
type EventType string

const (
	EventSessionOpen   EventType = "session_open"
	EventNormalized    EventType = "materials_normalized"
	EventCommandStart  EventType = "command_start"
	EventCommandDone   EventType = "command_done"
	EventDocumentSaved EventType = "document_saved"
)

// Event is published on a session's event channel. It is observability-only:
// subscribers must never drive control flow from it.
type Event struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	SessionID string    `json:"session_id,omitempty"`
	Command   string    `json:"command,omitempty"`
	Material  string    `json:"material,omitempty"`
	Path      string    `json:"path,omitempty"`
	Count     int       `json:"count,omitempty"`
	IsError   bool      `json:"is_error,omitempty"`
	Detail    string    `json:"detail,omitempty"`
}
