package domain

import "time"

// TicketStatus enumerates lifecycle states for tickets. The string value
// doubles as the label written into history entries.
type TicketStatus string

const (
	TicketStatusOpen       TicketStatus = "Open"
	TicketStatusInProgress TicketStatus = "InProgress"
	TicketStatusClosed     TicketStatus = "Closed"
)

// Valid reports whether the status is one of the known values.
func (s TicketStatus) Valid() bool {
	switch s {
	case TicketStatusOpen, TicketStatusInProgress, TicketStatusClosed:
		return true
	}
	return false
}

// TicketPriority enumerates urgency levels.
type TicketPriority string

const (
	TicketPriorityLow    TicketPriority = "Low"
	TicketPriorityMedium TicketPriority = "Medium"
	TicketPriorityHigh   TicketPriority = "High"
)

// Valid reports whether the priority is one of the known values.
func (p TicketPriority) Valid() bool {
	switch p {
	case TicketPriorityLow, TicketPriorityMedium, TicketPriorityHigh:
		return true
	}
	return false
}

// StatusChange is an immutable audit entry appended on every status update,
// including no-op transitions to the same status.
type StatusChange struct {
	Status    string    `json:"status"`
	ChangedAt time.Time `json:"changed_at"`
}

// Comment is an immutable entry in a ticket's comment trail.
type Comment struct {
	UserID      uint64    `json:"user_id"`
	Content     string    `json:"content"`
	CommentedAt time.Time `json:"commented_at"`
}

// Ticket is the aggregate for support requests. History and Comments are
// append-only; entries are never removed or reordered.
type Ticket struct {
	ID          uint64         `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Status      TicketStatus   `json:"status"`
	Priority    TicketPriority `json:"priority"`
	CreatedAt   time.Time      `json:"created_at"`
	CreatedBy   uint64         `json:"created_by"`
	AssignedTo  *uint64        `json:"assigned_to"`
	History     []StatusChange `json:"history"`
	Comments    []Comment      `json:"comments"`
}
