package events

import (
	"time"

	"github.com/helpdesk-kit/itsm-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUserCreated         EventType = "user_created"
	EventTicketCreated       EventType = "ticket_created"
	EventTicketStatusChanged EventType = "ticket_status_changed"
	EventTicketAssigned      EventType = "ticket_assigned"
	EventTicketCommented     EventType = "ticket_commented"
	EventAssetRegistered     EventType = "asset_registered"
)

// Actor identifies who performed the operation. ActorID is nil for
// unguarded operations where no caller identity is required.
type Actor struct {
	ActorID  *uint64     `json:"actor_id,omitempty"`
	Username string      `json:"username,omitempty"`
	Role     domain.Role `json:"role,omitempty"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	EntityID  uint64      `json:"entity_id"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// UserCreatedPayload payload.
type UserCreatedPayload struct {
	Username string      `json:"username"`
	Role     domain.Role `json:"role"`
}

// TicketCreatedPayload payload.
type TicketCreatedPayload struct {
	Title    string                `json:"title"`
	Priority domain.TicketPriority `json:"priority"`
}

// TicketStatusChangedPayload payload.
type TicketStatusChangedPayload struct {
	OldStatus domain.TicketStatus `json:"old_status"`
	NewStatus domain.TicketStatus `json:"new_status"`
}

// TicketAssignedPayload payload.
type TicketAssignedPayload struct {
	AssignedTo uint64 `json:"assigned_to"`
}

// TicketCommentedPayload payload.
type TicketCommentedPayload struct {
	UserID      uint64 `json:"user_id"`
	BodyPreview string `json:"body_preview"`
}

// AssetRegisteredPayload payload.
type AssetRegisteredPayload struct {
	AssetName  string           `json:"asset_name"`
	AssetType  domain.AssetType `json:"asset_type"`
	AssignedTo uint64           `json:"assigned_to"`
}
