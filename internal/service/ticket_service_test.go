package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helpdesk-kit/itsm-service/internal/auth"
	"github.com/helpdesk-kit/itsm-service/internal/domain"
)

func ticketInput() TicketCreateInput {
	return TicketCreateInput{
		Title:       "Laptop will not boot",
		Description: "Black screen after the vendor logo.",
		Priority:    domain.TicketPriorityHigh,
	}
}

func TestCreateTicketInitialState(t *testing.T) {
	f := newFixture(t)
	reporter := f.mustCreateUser(t, "alice", domain.RoleUser)

	before := time.Now()
	ticket, err := f.tickets.CreateTicket(context.Background(), callerOf(reporter), ticketInput())
	require.NoError(t, err)

	assert.Equal(t, domain.TicketStatusOpen, ticket.Status)
	assert.Equal(t, reporter.ID, ticket.CreatedBy)
	assert.Nil(t, ticket.AssignedTo)
	assert.Empty(t, ticket.History)
	assert.Empty(t, ticket.Comments)
	assert.False(t, ticket.CreatedAt.Before(before.Add(-time.Second)))
}

func TestCreateTicketRoleGate(t *testing.T) {
	f := newFixture(t)
	support := f.mustCreateUser(t, "sam", domain.RoleITSupport)
	admin := f.mustCreateUser(t, "root", domain.RoleAdmin)

	// ITSupport may not open tickets; Admin may.
	_, err := f.tickets.CreateTicket(context.Background(), callerOf(support), ticketInput())
	requireErrorCode(t, err, "UNAUTHORIZED")

	_, err = f.tickets.CreateTicket(context.Background(), callerOf(admin), ticketInput())
	require.NoError(t, err)
}

func TestCreateTicketRejectsUnknownCaller(t *testing.T) {
	f := newFixture(t)
	user := f.mustCreateUser(t, "alice", domain.RoleUser)

	// Claimed role must match the stored record exactly.
	claim := auth.CallerClaim{Username: user.Username, Role: domain.RoleAdmin}
	_, err := f.tickets.CreateTicket(context.Background(), claim, ticketInput())
	requireErrorCode(t, err, "UNAUTHORIZED")
}

func TestCreateTicketValidation(t *testing.T) {
	f := newFixture(t)
	user := f.mustCreateUser(t, "alice", domain.RoleUser)

	input := ticketInput()
	input.Title = "  "
	_, err := f.tickets.CreateTicket(context.Background(), callerOf(user), input)
	requireErrorCode(t, err, "INVALID_PAYLOAD")

	input = ticketInput()
	input.Priority = domain.TicketPriority("Urgent")
	_, err = f.tickets.CreateTicket(context.Background(), callerOf(user), input)
	requireErrorCode(t, err, "INVALID_PAYLOAD")
}

func TestAssignTicket(t *testing.T) {
	f := newFixture(t)
	reporter := f.mustCreateUser(t, "alice", domain.RoleUser)
	support := f.mustCreateUser(t, "sam", domain.RoleITSupport)

	ticket, err := f.tickets.CreateTicket(context.Background(), callerOf(reporter), ticketInput())
	require.NoError(t, err)

	updated, err := f.tickets.AssignTicket(context.Background(), callerOf(support), ticket.ID, support.ID)
	require.NoError(t, err)
	require.NotNil(t, updated.AssignedTo)
	assert.Equal(t, support.ID, *updated.AssignedTo)
	// Assignment alone leaves the status trail untouched.
	assert.Empty(t, updated.History)
}

func TestAssignTicketRoleGate(t *testing.T) {
	f := newFixture(t)
	reporter := f.mustCreateUser(t, "alice", domain.RoleUser)

	ticket, err := f.tickets.CreateTicket(context.Background(), callerOf(reporter), ticketInput())
	require.NoError(t, err)

	_, err = f.tickets.AssignTicket(context.Background(), callerOf(reporter), ticket.ID, reporter.ID)
	requireErrorCode(t, err, "UNAUTHORIZED")
}

func TestAssignTicketUnknownAssigneeLeavesTicketUnchanged(t *testing.T) {
	f := newFixture(t)
	reporter := f.mustCreateUser(t, "alice", domain.RoleUser)
	support := f.mustCreateUser(t, "sam", domain.RoleITSupport)

	ticket, err := f.tickets.CreateTicket(context.Background(), callerOf(reporter), ticketInput())
	require.NoError(t, err)

	_, err = f.tickets.AssignTicket(context.Background(), callerOf(support), ticket.ID, 12345)
	requireErrorCode(t, err, "INVALID_PAYLOAD")

	stored, err := f.tickets.GetTicket(context.Background(), ticket.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.AssignedTo)
}

func TestAssignTicketMissingTicket(t *testing.T) {
	f := newFixture(t)
	support := f.mustCreateUser(t, "sam", domain.RoleITSupport)

	_, err := f.tickets.AssignTicket(context.Background(), callerOf(support), 42, support.ID)
	requireErrorCode(t, err, "NOT_FOUND")
}

func TestUpdateStatusAppendsHistoryEveryTime(t *testing.T) {
	f := newFixture(t)
	reporter := f.mustCreateUser(t, "alice", domain.RoleUser)

	ticket, err := f.tickets.CreateTicket(context.Background(), callerOf(reporter), ticketInput())
	require.NoError(t, err)

	updated, err := f.tickets.UpdateStatus(context.Background(), ticket.ID, domain.TicketStatusInProgress)
	require.NoError(t, err)
	require.Len(t, updated.History, 1)
	assert.Equal(t, "InProgress", updated.History[0].Status)

	// Re-applying the same status still records a transition.
	updated, err = f.tickets.UpdateStatus(context.Background(), ticket.ID, domain.TicketStatusInProgress)
	require.NoError(t, err)
	require.Len(t, updated.History, 2)
	assert.Equal(t, "InProgress", updated.History[1].Status)
	assert.Equal(t, domain.TicketStatusInProgress, updated.Status)
}

func TestUpdateStatusValidation(t *testing.T) {
	f := newFixture(t)
	reporter := f.mustCreateUser(t, "alice", domain.RoleUser)

	ticket, err := f.tickets.CreateTicket(context.Background(), callerOf(reporter), ticketInput())
	require.NoError(t, err)

	_, err = f.tickets.UpdateStatus(context.Background(), ticket.ID, domain.TicketStatus("Reopened"))
	requireErrorCode(t, err, "INVALID_PAYLOAD")

	_, err = f.tickets.UpdateStatus(context.Background(), 42, domain.TicketStatusClosed)
	requireErrorCode(t, err, "NOT_FOUND")
}

func TestAddComment(t *testing.T) {
	f := newFixture(t)
	reporter := f.mustCreateUser(t, "alice", domain.RoleUser)

	ticket, err := f.tickets.CreateTicket(context.Background(), callerOf(reporter), ticketInput())
	require.NoError(t, err)

	updated, err := f.tickets.AddComment(context.Background(), ticket.ID, reporter.ID, "rebooted, no change")
	require.NoError(t, err)
	require.Len(t, updated.Comments, 1)
	assert.Equal(t, reporter.ID, updated.Comments[0].UserID)
	assert.Equal(t, "rebooted, no change", updated.Comments[0].Content)
	assert.False(t, updated.Comments[0].CommentedAt.Before(ticket.CreatedAt))
}

func TestAddCommentValidation(t *testing.T) {
	f := newFixture(t)
	reporter := f.mustCreateUser(t, "alice", domain.RoleUser)

	ticket, err := f.tickets.CreateTicket(context.Background(), callerOf(reporter), ticketInput())
	require.NoError(t, err)

	_, err = f.tickets.AddComment(context.Background(), ticket.ID, 777, "ghost comment")
	requireErrorCode(t, err, "INVALID_PAYLOAD")

	_, err = f.tickets.AddComment(context.Background(), 42, reporter.ID, "lost ticket")
	requireErrorCode(t, err, "NOT_FOUND")

	stored, err := f.tickets.GetTicket(context.Background(), ticket.ID)
	require.NoError(t, err)
	assert.Empty(t, stored.Comments)
}

func TestListTicketsEmptyStoreIsNotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.tickets.ListTickets(context.Background())
	requireErrorCode(t, err, "NOT_FOUND")
}

func TestIDsUniqueAcrossEntityKinds(t *testing.T) {
	f := newFixture(t)
	reporter := f.mustCreateUser(t, "alice", domain.RoleUser)
	support := f.mustCreateUser(t, "sam", domain.RoleITSupport)

	ticket, err := f.tickets.CreateTicket(context.Background(), callerOf(reporter), ticketInput())
	require.NoError(t, err)

	asset, err := f.assets.CreateAsset(context.Background(), callerOf(support), AssetCreateInput{
		AssetName:        "ThinkPad T14",
		AssetType:        domain.AssetTypeLaptop,
		PurchaseDate:     time.Now(),
		AssignedTo:       reporter.ID,
		ApproxValue:      1400,
		DepreciationRate: 20,
	})
	require.NoError(t, err)

	seen := map[uint64]struct{}{}
	for _, id := range []uint64{reporter.ID, support.ID, ticket.ID, asset.ID} {
		_, dup := seen[id]
		assert.False(t, dup, "id %d allocated twice", id)
		seen[id] = struct{}{}
	}
}
