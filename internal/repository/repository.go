package repository

import (
	"context"
	"errors"

	"github.com/helpdesk-kit/itsm-service/internal/domain"
)

// ErrNotFound is returned when a point lookup or keyed update finds nothing.
var ErrNotFound = errors.New("record not found")

// IDAllocator issues identifiers drawn from a single durable counter shared
// by users, tickets and assets. Each call returns the pre-increment counter
// value, so the first issued ID is 0; values strictly increase and are never
// reused, even across entity types.
type IDAllocator interface {
	NextID(ctx context.Context) (uint64, error)
}

// UserRepository defines persistence access for user records.
type UserRepository interface {
	Insert(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uint64) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	// FindByCredentials matches a user on username AND role; a correct
	// username with a different role yields ErrNotFound.
	FindByCredentials(ctx context.Context, username string, role domain.Role) (*domain.User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByID(ctx context.Context, id uint64) (bool, error)
}

// TicketRepository defines persistence access for ticket records.
type TicketRepository interface {
	Insert(ctx context.Context, ticket *domain.Ticket) error
	GetByID(ctx context.Context, id uint64) (*domain.Ticket, error)
	List(ctx context.Context) ([]domain.Ticket, error)
	// Update applies mutate to the stored ticket and writes the result back
	// as one atomic step; concurrent callers on the same key cannot
	// interleave. Returns ErrNotFound when the ticket does not exist and
	// writes nothing when mutate fails.
	Update(ctx context.Context, id uint64, mutate func(*domain.Ticket) error) (*domain.Ticket, error)
}

// AssetRepository defines persistence access for IT asset records.
type AssetRepository interface {
	Insert(ctx context.Context, asset *domain.ITAsset) error
	GetByID(ctx context.Context, id uint64) (*domain.ITAsset, error)
	List(ctx context.Context) ([]domain.ITAsset, error)
}
