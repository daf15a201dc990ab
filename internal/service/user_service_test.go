package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helpdesk-kit/itsm-service/internal/domain"
)

func TestCreateUserAssignsSequentialIDs(t *testing.T) {
	f := newFixture(t)

	alice := f.mustCreateUser(t, "alice", domain.RoleAdmin)
	bob := f.mustCreateUser(t, "bob", domain.RoleUser)

	assert.Equal(t, uint64(0), alice.ID)
	assert.Equal(t, uint64(1), bob.ID)
	assert.False(t, alice.CreatedAt.IsZero())
}

func TestCreateUserValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.users.CreateUser(ctx, "   ", domain.RoleUser)
	requireErrorCode(t, err, "INVALID_PAYLOAD")

	_, err = f.users.CreateUser(ctx, "carol", domain.Role("Superuser"))
	requireErrorCode(t, err, "INVALID_PAYLOAD")
}

func TestCreateUserRejectsDuplicateUsername(t *testing.T) {
	f := newFixture(t)

	f.mustCreateUser(t, "alice", domain.RoleAdmin)

	_, err := f.users.CreateUser(context.Background(), "alice", domain.RoleUser)
	requireErrorCode(t, err, "CONFLICT")
}

func TestGetUser(t *testing.T) {
	f := newFixture(t)

	created := f.mustCreateUser(t, "alice", domain.RoleITSupport)

	got, err := f.users.GetUser(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Username, got.Username)
	assert.Equal(t, created.Role, got.Role)

	_, err = f.users.GetUser(context.Background(), 9999)
	requireErrorCode(t, err, "NOT_FOUND")
}

func TestListUsersEmptyStoreIsNotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.users.ListUsers(context.Background())
	requireErrorCode(t, err, "NOT_FOUND")

	f.mustCreateUser(t, "alice", domain.RoleUser)
	f.mustCreateUser(t, "bob", domain.RoleUser)

	users, err := f.users.ListUsers(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "alice", users[0].Username)
	assert.Equal(t, "bob", users[1].Username)
}

func TestIssueTokenRequiresExactCredentialMatch(t *testing.T) {
	f := newFixture(t)

	f.mustCreateUser(t, "alice", domain.RoleAdmin)

	user, token, expiresAt, err := f.users.IssueToken(context.Background(), "alice", domain.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.NotEmpty(t, token)
	assert.True(t, expiresAt.After(time.Now()))

	// Right username, wrong claimed role.
	_, _, _, err = f.users.IssueToken(context.Background(), "alice", domain.RoleUser)
	requireErrorCode(t, err, "UNAUTHORIZED")

	_, _, _, err = f.users.IssueToken(context.Background(), "nobody", domain.RoleAdmin)
	requireErrorCode(t, err, "UNAUTHORIZED")
}
