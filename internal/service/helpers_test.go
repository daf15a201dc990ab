package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helpdesk-kit/itsm-service/internal/auth"
	"github.com/helpdesk-kit/itsm-service/internal/domain"
	"github.com/helpdesk-kit/itsm-service/internal/events"
	"github.com/helpdesk-kit/itsm-service/internal/repository"
	apperrors "github.com/helpdesk-kit/itsm-service/pkg/util"
)

// fixture wires all three services against the in-memory substrate with a
// shared allocator, mirroring the production wiring.
type fixture struct {
	users   *UserService
	tickets *TicketService
	assets  *AssetService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	allocator := repository.NewMemoryIDAllocator()
	userRepo := repository.NewMemoryUserRepository()
	ticketRepo := repository.NewMemoryTicketRepository()
	assetRepo := repository.NewMemoryAssetRepository()
	gate := auth.NewGate(userRepo)
	dispatcher := events.NewInMemoryDispatcher()

	return &fixture{
		users: NewUserService(UserDependencies{
			UserRepo:     userRepo,
			Allocator:    allocator,
			Gate:         gate,
			TokenManager: auth.NewTokenManager("test-secret", 30),
			Dispatcher:   dispatcher,
		}),
		tickets: NewTicketService(TicketDependencies{
			TicketRepo: ticketRepo,
			UserRepo:   userRepo,
			Allocator:  allocator,
			Gate:       gate,
			Dispatcher: dispatcher,
		}),
		assets: NewAssetService(AssetDependencies{
			AssetRepo:  assetRepo,
			UserRepo:   userRepo,
			Allocator:  allocator,
			Gate:       gate,
			Dispatcher: dispatcher,
		}),
	}
}

func (f *fixture) mustCreateUser(t *testing.T, username string, role domain.Role) *domain.User {
	t.Helper()
	user, err := f.users.CreateUser(context.Background(), username, role)
	require.NoError(t, err)
	return user
}

func callerOf(user *domain.User) auth.CallerClaim {
	return auth.CallerClaim{Username: user.Username, Role: user.Role}
}

func requireErrorCode(t *testing.T, err error, code string) {
	t.Helper()
	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, code, domainErr.Code)
}
