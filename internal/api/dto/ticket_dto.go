package dto

import (
	"time"

	"github.com/helpdesk-kit/itsm-service/internal/domain"
)

// CreateTicketRequest payload. Caller may be omitted when a bearer token is
// supplied instead.
type CreateTicketRequest struct {
	Caller      *Caller               `json:"caller,omitempty"`
	Title       string                `json:"title"`
	Description string                `json:"description"`
	Priority    domain.TicketPriority `json:"priority"`
}

// AssignTicketRequest payload.
type AssignTicketRequest struct {
	Caller     *Caller `json:"caller,omitempty"`
	TicketID   uint64  `json:"ticket_id"`
	AssignedTo uint64  `json:"assigned_to"`
}

// UpdateTicketStatusRequest payload.
type UpdateTicketStatusRequest struct {
	ID     uint64              `json:"id"`
	Status domain.TicketStatus `json:"status"`
}

// AddTicketCommentRequest payload.
type AddTicketCommentRequest struct {
	TicketID uint64 `json:"ticket_id"`
	UserID   uint64 `json:"user_id"`
	Content  string `json:"content"`
}

// StatusChangeResponse is one history entry.
type StatusChangeResponse struct {
	Status    string    `json:"status"`
	ChangedAt time.Time `json:"changed_at"`
}

// CommentResponse is one comment entry.
type CommentResponse struct {
	UserID      uint64    `json:"user_id"`
	Content     string    `json:"content"`
	CommentedAt time.Time `json:"commented_at"`
}

// TicketResponse mirrors the stored ticket record.
type TicketResponse struct {
	ID          uint64                 `json:"id"`
	Title       string                 `json:"title"`
	Description string                 `json:"description"`
	Status      domain.TicketStatus    `json:"status"`
	Priority    domain.TicketPriority  `json:"priority"`
	CreatedAt   time.Time              `json:"created_at"`
	CreatedBy   uint64                 `json:"created_by"`
	AssignedTo  *uint64                `json:"assigned_to"`
	History     []StatusChangeResponse `json:"history"`
	Comments    []CommentResponse      `json:"comments"`
}

// NewTicketResponse maps a domain ticket.
func NewTicketResponse(ticket *domain.Ticket) TicketResponse {
	history := make([]StatusChangeResponse, 0, len(ticket.History))
	for _, entry := range ticket.History {
		history = append(history, StatusChangeResponse{Status: entry.Status, ChangedAt: entry.ChangedAt})
	}
	comments := make([]CommentResponse, 0, len(ticket.Comments))
	for _, comment := range ticket.Comments {
		comments = append(comments, CommentResponse{
			UserID:      comment.UserID,
			Content:     comment.Content,
			CommentedAt: comment.CommentedAt,
		})
	}
	return TicketResponse{
		ID:          ticket.ID,
		Title:       ticket.Title,
		Description: ticket.Description,
		Status:      ticket.Status,
		Priority:    ticket.Priority,
		CreatedAt:   ticket.CreatedAt,
		CreatedBy:   ticket.CreatedBy,
		AssignedTo:  ticket.AssignedTo,
		History:     history,
		Comments:    comments,
	}
}

// NewTicketResponses maps a listing.
func NewTicketResponses(tickets []domain.Ticket) []TicketResponse {
	out := make([]TicketResponse, 0, len(tickets))
	for i := range tickets {
		out = append(out, NewTicketResponse(&tickets[i]))
	}
	return out
}
