package auth

import (
	"context"
	"errors"

	"github.com/helpdesk-kit/itsm-service/internal/domain"
	"github.com/helpdesk-kit/itsm-service/internal/repository"
	apperrors "github.com/helpdesk-kit/itsm-service/pkg/util"
)

// Gate validates a caller's claimed identity and role against the user store
// before a guarded mutation. There is no secret credential: the role IS the
// claim, and authentication is an exact match of username and role.
type Gate struct {
	users repository.UserRepository
}

// NewGate constructs the gate.
func NewGate(users repository.UserRepository) *Gate {
	return &Gate{users: users}
}

// Authenticate resolves the claimed username/role pair. A correct username
// with a different role fails just like an unknown username.
func (g *Gate) Authenticate(ctx context.Context, username string, role domain.Role) (*domain.User, error) {
	user, err := g.users.FindByCredentials(ctx, username, role)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewUnauthorized("invalid credentials")
		}
		return nil, apperrors.MapError(err)
	}
	return user, nil
}

// RequireRole fails unless the user's role is in the allowed set.
func (g *Gate) RequireRole(user *domain.User, allowed ...domain.Role) error {
	for _, role := range allowed {
		if user.Role == role {
			return nil
		}
	}
	return apperrors.NewUnauthorized("insufficient role for this operation")
}
