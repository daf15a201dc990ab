package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helpdesk-kit/itsm-service/internal/domain"
)

func TestRecordCodecRoundTrip(t *testing.T) {
	user := domain.User{ID: 9, Username: "carol", Role: domain.RoleITSupport}

	encoded, err := encodeRecord(&user, MaxUserRecordSize)
	require.NoError(t, err)
	assert.Equal(t, recordCodecVersion, encoded[0])

	var decoded domain.User
	require.NoError(t, decodeRecord(encoded, &decoded))
	assert.Equal(t, user, decoded)
}

func TestDecodeRecordRejectsBadInput(t *testing.T) {
	var user domain.User
	assert.ErrorIs(t, decodeRecord(nil, &user), ErrBadRecord)
	assert.ErrorIs(t, decodeRecord([]byte{0xFF, '{', '}'}, &user), ErrBadRecord)
}
