package dto

import (
	"time"

	"github.com/helpdesk-kit/itsm-service/internal/domain"
)

// Caller is the identity a request claims for a guarded operation.
type Caller struct {
	Username string      `json:"username"`
	Role     domain.Role `json:"role"`
}

// CreateUserRequest payload.
type CreateUserRequest struct {
	Username string      `json:"username"`
	Role     domain.Role `json:"role"`
}

// TokenRequest payload for POST /auth/token.
type TokenRequest struct {
	Username string      `json:"username"`
	Role     domain.Role `json:"role"`
}

// AuthResponse standard response for the token endpoint.
type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// UserResponse mirrors the stored user record.
type UserResponse struct {
	ID        uint64      `json:"id"`
	Username  string      `json:"username"`
	Role      domain.Role `json:"role"`
	CreatedAt time.Time   `json:"created_at"`
}

// NewUserResponse maps a domain user.
func NewUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		Role:      user.Role,
		CreatedAt: user.CreatedAt,
	}
}

// NewUserResponses maps a listing.
func NewUserResponses(users []domain.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for i := range users {
		out = append(out, NewUserResponse(&users[i]))
	}
	return out
}
