package util

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDomainErrorCodesAndStatuses(t *testing.T) {
	cases := []struct {
		err    error
		code   string
		status int
	}{
		{NewInvalidPayload("bad input", nil), "INVALID_PAYLOAD", http.StatusBadRequest},
		{NewNotFound("ticket", nil), "NOT_FOUND", http.StatusNotFound},
		{NewUnauthorized("invalid credentials"), "UNAUTHORIZED", http.StatusUnauthorized},
		{NewConflict("user already exists", nil), "CONFLICT", http.StatusConflict},
		{NewRecordTooLarge("ticket", nil), "RECORD_TOO_LARGE", http.StatusRequestEntityTooLarge},
		{NewInternalError(errors.New("boom")), "INTERNAL_ERROR", http.StatusInternalServerError},
	}

	for _, tc := range cases {
		var domainErr *DomainError
		require.ErrorAs(t, tc.err, &domainErr)
		assert.Equal(t, tc.code, domainErr.Code)
		assert.Equal(t, tc.status, domainErr.HTTPStatus)
	}
}

func TestToDomainErrorWrapsUnknownErrors(t *testing.T) {
	cause := errors.New("connection reset")

	domainErr := ToDomainError(cause)
	require.NotNil(t, domainErr)
	assert.Equal(t, "INTERNAL_ERROR", domainErr.Code)
	assert.ErrorIs(t, domainErr, cause)

	assert.Nil(t, ToDomainError(nil))
}

func TestToDomainErrorPassesThroughDomainErrors(t *testing.T) {
	original := NewNotFound("asset", nil)

	domainErr := ToDomainError(original)
	require.NotNil(t, domainErr)
	assert.Equal(t, "NOT_FOUND", domainErr.Code)
	assert.Equal(t, original, error(domainErr))
}
