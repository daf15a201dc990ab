package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helpdesk-kit/itsm-service/internal/domain"
	"github.com/helpdesk-kit/itsm-service/internal/repository"
	apperrors "github.com/helpdesk-kit/itsm-service/pkg/util"
)

func seedGate(t *testing.T) (*Gate, repository.UserRepository) {
	t.Helper()
	users := repository.NewMemoryUserRepository()
	require.NoError(t, users.Insert(context.Background(), &domain.User{
		ID: 1, Username: "alice", Role: domain.RoleAdmin, CreatedAt: time.Now().UTC(),
	}))
	return NewGate(users), users
}

func requireErrorCode(t *testing.T, err error, code string) {
	t.Helper()
	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, code, domainErr.Code)
}

func TestAuthenticateExactMatch(t *testing.T) {
	gate, _ := seedGate(t)
	ctx := context.Background()

	user, err := gate.Authenticate(ctx, "alice", domain.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), user.ID)
}

func TestAuthenticateRejectsPartialMatch(t *testing.T) {
	gate, _ := seedGate(t)
	ctx := context.Background()

	_, err := gate.Authenticate(ctx, "alice", domain.RoleUser)
	requireErrorCode(t, err, "UNAUTHORIZED")

	_, err = gate.Authenticate(ctx, "mallory", domain.RoleAdmin)
	requireErrorCode(t, err, "UNAUTHORIZED")
}

func TestRequireRole(t *testing.T) {
	gate, _ := seedGate(t)
	support := &domain.User{ID: 2, Username: "sam", Role: domain.RoleITSupport}

	require.NoError(t, gate.RequireRole(support, domain.RoleITSupport, domain.RoleAdmin))

	err := gate.RequireRole(support, domain.RoleUser, domain.RoleAdmin)
	requireErrorCode(t, err, "UNAUTHORIZED")
}
