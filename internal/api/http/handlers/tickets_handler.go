package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/helpdesk-kit/itsm-service/internal/api/dto"
	"github.com/helpdesk-kit/itsm-service/internal/service"
	apperrors "github.com/helpdesk-kit/itsm-service/pkg/util"
)

// TicketsHandler exposes ticket lifecycle operations.
type TicketsHandler struct {
	tickets *service.TicketService
}

// NewTicketsHandler constructs handler.
func NewTicketsHandler(tickets *service.TicketService) *TicketsHandler {
	return &TicketsHandler{tickets: tickets}
}

// Create handles POST /tickets. Guarded: User or Admin.
func (h *TicketsHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewInvalidPayload("invalid payload", nil)
	}
	caller, err := resolveCaller(c, req.Caller)
	if err != nil {
		return err
	}

	ticket, err := h.tickets.CreateTicket(c.UserContext(), caller, service.TicketCreateInput{
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewTicketResponse(ticket)})
}

// List handles GET /tickets.
func (h *TicketsHandler) List(c *fiber.Ctx) error {
	tickets, err := h.tickets.ListTickets(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewTicketResponses(tickets)})
}

// Get handles GET /tickets/:id.
func (h *TicketsHandler) Get(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	ticket, err := h.tickets.GetTicket(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewTicketResponse(ticket)})
}

// Assign handles POST /tickets/assign. Guarded: ITSupport or Admin.
func (h *TicketsHandler) Assign(c *fiber.Ctx) error {
	var req dto.AssignTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewInvalidPayload("invalid payload", nil)
	}
	caller, err := resolveCaller(c, req.Caller)
	if err != nil {
		return err
	}

	ticket, err := h.tickets.AssignTicket(c.UserContext(), caller, req.TicketID, req.AssignedTo)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewTicketResponse(ticket)})
}

// UpdateStatus handles PATCH /tickets/status. Deliberately unguarded.
func (h *TicketsHandler) UpdateStatus(c *fiber.Ctx) error {
	var req dto.UpdateTicketStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewInvalidPayload("invalid payload", nil)
	}

	ticket, err := h.tickets.UpdateStatus(c.UserContext(), req.ID, req.Status)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewTicketResponse(ticket)})
}

// AddComment handles POST /tickets/comments. Deliberately unguarded.
func (h *TicketsHandler) AddComment(c *fiber.Ctx) error {
	var req dto.AddTicketCommentRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewInvalidPayload("invalid payload", nil)
	}

	ticket, err := h.tickets.AddComment(c.UserContext(), req.TicketID, req.UserID, req.Content)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewTicketResponse(ticket)})
}
