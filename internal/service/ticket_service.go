package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/helpdesk-kit/itsm-service/internal/auth"
	"github.com/helpdesk-kit/itsm-service/internal/domain"
	"github.com/helpdesk-kit/itsm-service/internal/events"
	"github.com/helpdesk-kit/itsm-service/internal/repository"
	apperrors "github.com/helpdesk-kit/itsm-service/pkg/util"
)

var errCommentUserMissing = errors.New("comment user missing")

// TicketService owns the ticket lifecycle: creation, assignment, status
// transitions and the append-only history and comment trails.
//
// The permission asymmetry is deliberate and preserved from the system of
// record: creation and assignment are role-gated while status updates and
// comments are open to any caller.
type TicketService struct {
	tickets    repository.TicketRepository
	users      repository.UserRepository
	allocator  repository.IDAllocator
	gate       *auth.Gate
	dispatcher events.Dispatcher
}

// TicketDependencies bundles collaborators for the ticket service.
type TicketDependencies struct {
	TicketRepo repository.TicketRepository
	UserRepo   repository.UserRepository
	Allocator  repository.IDAllocator
	Gate       *auth.Gate
	Dispatcher events.Dispatcher
}

// TicketCreateInput describes the ticket creation payload.
type TicketCreateInput struct {
	Title       string
	Description string
	Priority    domain.TicketPriority
}

// NewTicketService constructs the service.
func NewTicketService(deps TicketDependencies) *TicketService {
	return &TicketService{
		tickets:    deps.TicketRepo,
		users:      deps.UserRepo,
		allocator:  deps.Allocator,
		gate:       deps.Gate,
		dispatcher: deps.Dispatcher,
	}
}

// CreateTicket opens a new ticket for an authenticated User or Admin caller.
// New tickets start Open with empty history and comments and no assignee.
func (s *TicketService) CreateTicket(ctx context.Context, caller auth.CallerClaim, input TicketCreateInput) (*domain.Ticket, error) {
	user, err := s.gate.Authenticate(ctx, caller.Username, caller.Role)
	if err != nil {
		return nil, err
	}
	if err := s.gate.RequireRole(user, domain.RoleUser, domain.RoleAdmin); err != nil {
		return nil, err
	}

	title := strings.TrimSpace(input.Title)
	description := strings.TrimSpace(input.Description)
	if title == "" || description == "" {
		return nil, apperrors.NewInvalidPayload("ensure 'title' and 'description' are provided", nil)
	}
	if !input.Priority.Valid() {
		return nil, apperrors.NewInvalidPayload("unknown priority", map[string]any{"priority": input.Priority})
	}

	id, err := s.allocator.NextID(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	ticket := &domain.Ticket{
		ID:          id,
		Title:       title,
		Description: description,
		Status:      domain.TicketStatusOpen,
		Priority:    input.Priority,
		CreatedAt:   time.Now().UTC(),
		CreatedBy:   user.ID,
		AssignedTo:  nil,
		History:     []domain.StatusChange{},
		Comments:    []domain.Comment{},
	}
	if err := s.tickets.Insert(ctx, ticket); err != nil {
		return nil, mapStoreError("ticket", err)
	}

	publishEvent(ctx, s.dispatcher, events.Event{
		Type:     events.EventTicketCreated,
		EntityID: ticket.ID,
		Actor:    actorFor(user),
		Payload: events.TicketCreatedPayload{
			Title:    ticket.Title,
			Priority: ticket.Priority,
		},
	})
	return ticket, nil
}

// AssignTicket sets the assignee for an ITSupport or Admin caller. Repeated
// assignment overwrites; assignment appends no history entry, only status
// changes do.
func (s *TicketService) AssignTicket(ctx context.Context, caller auth.CallerClaim, ticketID, assigneeID uint64) (*domain.Ticket, error) {
	user, err := s.gate.Authenticate(ctx, caller.Username, caller.Role)
	if err != nil {
		return nil, err
	}
	if err := s.gate.RequireRole(user, domain.RoleITSupport, domain.RoleAdmin); err != nil {
		return nil, err
	}

	exists, err := s.users.ExistsByID(ctx, assigneeID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if !exists {
		return nil, apperrors.NewInvalidPayload("assigned user does not exist", map[string]any{"assigned_to": assigneeID})
	}

	ticket, err := s.tickets.Update(ctx, ticketID, func(t *domain.Ticket) error {
		assignee := assigneeID
		t.AssignedTo = &assignee
		return nil
	})
	if err != nil {
		return nil, mapStoreError("ticket", err)
	}

	publishEvent(ctx, s.dispatcher, events.Event{
		Type:     events.EventTicketAssigned,
		EntityID: ticket.ID,
		Actor:    actorFor(user),
		Payload: events.TicketAssignedPayload{
			AssignedTo: assigneeID,
		},
	})
	return ticket, nil
}

// UpdateStatus moves the ticket to the given status and appends one history
// entry, even when the status is unchanged. Any status may move to any
// other; no role check applies.
func (s *TicketService) UpdateStatus(ctx context.Context, ticketID uint64, status domain.TicketStatus) (*domain.Ticket, error) {
	if !status.Valid() {
		return nil, apperrors.NewInvalidPayload("unknown status", map[string]any{"status": status})
	}

	var oldStatus domain.TicketStatus
	ticket, err := s.tickets.Update(ctx, ticketID, func(t *domain.Ticket) error {
		oldStatus = t.Status
		t.Status = status
		t.History = append(t.History, domain.StatusChange{
			Status:    string(status),
			ChangedAt: time.Now().UTC(),
		})
		return nil
	})
	if err != nil {
		return nil, mapStoreError("ticket", err)
	}

	publishEvent(ctx, s.dispatcher, events.Event{
		Type:     events.EventTicketStatusChanged,
		EntityID: ticket.ID,
		Payload: events.TicketStatusChangedPayload{
			OldStatus: oldStatus,
			NewStatus: status,
		},
	})
	return ticket, nil
}

// AddComment appends one comment after verifying the authoring user exists.
// No role check applies.
func (s *TicketService) AddComment(ctx context.Context, ticketID, userID uint64, content string) (*domain.Ticket, error) {
	ticket, err := s.tickets.Update(ctx, ticketID, func(t *domain.Ticket) error {
		exists, err := s.users.ExistsByID(ctx, userID)
		if err != nil {
			return err
		}
		if !exists {
			return errCommentUserMissing
		}
		t.Comments = append(t.Comments, domain.Comment{
			UserID:      userID,
			Content:     content,
			CommentedAt: time.Now().UTC(),
		})
		return nil
	})
	if err != nil {
		if errors.Is(err, errCommentUserMissing) {
			return nil, apperrors.NewInvalidPayload("user does not exist", map[string]any{"user_id": userID})
		}
		return nil, mapStoreError("ticket", err)
	}

	publishEvent(ctx, s.dispatcher, events.Event{
		Type:     events.EventTicketCommented,
		EntityID: ticket.ID,
		Payload: events.TicketCommentedPayload{
			UserID:      userID,
			BodyPreview: stringPreview(content, 120),
		},
	})
	return ticket, nil
}

// GetTicket fetches a ticket by ID.
func (s *TicketService) GetTicket(ctx context.Context, id uint64) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewNotFound("ticket", map[string]any{"ticket_id": id})
		}
		return nil, apperrors.MapError(err)
	}
	return ticket, nil
}

// ListTickets returns every ticket in key order; an empty store is an error
// by policy.
func (s *TicketService) ListTickets(ctx context.Context) ([]domain.Ticket, error) {
	tickets, err := s.tickets.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if len(tickets) == 0 {
		return nil, apperrors.NewNotFound("tickets", nil)
	}
	return tickets, nil
}
