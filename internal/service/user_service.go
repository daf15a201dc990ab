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

// UserService owns user creation, lookups and token issuance. Users are
// immutable once created; there is no update or delete path.
type UserService struct {
	users      repository.UserRepository
	allocator  repository.IDAllocator
	gate       *auth.Gate
	tokens     *auth.TokenManager
	dispatcher events.Dispatcher
}

// UserDependencies bundles collaborators for the user service.
type UserDependencies struct {
	UserRepo     repository.UserRepository
	Allocator    repository.IDAllocator
	Gate         *auth.Gate
	TokenManager *auth.TokenManager
	Dispatcher   events.Dispatcher
}

// NewUserService constructs the service.
func NewUserService(deps UserDependencies) *UserService {
	return &UserService{
		users:      deps.UserRepo,
		allocator:  deps.Allocator,
		gate:       deps.Gate,
		tokens:     deps.TokenManager,
		dispatcher: deps.Dispatcher,
	}
}

// CreateUser registers a new account. No role check applies; usernames are
// unique across the store.
func (s *UserService) CreateUser(ctx context.Context, username string, role domain.Role) (*domain.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, apperrors.NewInvalidPayload("ensure 'username' and 'role' are provided", nil)
	}
	if !role.Valid() {
		return nil, apperrors.NewInvalidPayload("unknown role", map[string]any{"role": role})
	}

	exists, err := s.users.ExistsByUsername(ctx, username)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if exists {
		return nil, apperrors.NewConflict("user already exists", map[string]any{"username": username})
	}

	id, err := s.allocator.NextID(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	user := &domain.User{
		ID:        id,
		Username:  username,
		Role:      role,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.users.Insert(ctx, user); err != nil {
		return nil, mapStoreError("user", err)
	}

	publishEvent(ctx, s.dispatcher, events.Event{
		Type:     events.EventUserCreated,
		EntityID: user.ID,
		Actor:    actorFor(user),
		Payload: events.UserCreatedPayload{
			Username: user.Username,
			Role:     user.Role,
		},
	})
	return user, nil
}

// GetUser fetches a user by ID.
func (s *UserService) GetUser(ctx context.Context, id uint64) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewNotFound("user", map[string]any{"user_id": id})
		}
		return nil, apperrors.MapError(err)
	}
	return user, nil
}

// ListUsers returns every user in key order. An empty store is an error by
// policy, not an empty result.
func (s *UserService) ListUsers(ctx context.Context) ([]domain.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if len(users) == 0 {
		return nil, apperrors.NewNotFound("users", nil)
	}
	return users, nil
}

// IssueToken authenticates the claimed username/role pair and returns a
// signed bearer token carrying that same pair.
func (s *UserService) IssueToken(ctx context.Context, username string, role domain.Role) (*domain.User, string, time.Time, error) {
	user, err := s.gate.Authenticate(ctx, username, role)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	token, expiresAt, err := s.tokens.GenerateToken(user.Username, user.Role)
	if err != nil {
		return nil, "", time.Time{}, apperrors.MapError(err)
	}
	return user, token, expiresAt, nil
}
