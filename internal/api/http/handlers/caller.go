package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/helpdesk-kit/itsm-service/internal/api/dto"
	"github.com/helpdesk-kit/itsm-service/internal/auth"
	apperrors "github.com/helpdesk-kit/itsm-service/pkg/util"
)

// resolveCaller picks the claimed identity for a guarded operation: a bearer
// token resolved by the claim middleware wins, otherwise the inline caller
// object from the payload is used.
func resolveCaller(c *fiber.Ctx, inline *dto.Caller) (auth.CallerClaim, error) {
	if claim, ok := auth.CallerFromContext(c); ok {
		return *claim, nil
	}
	if inline != nil {
		return auth.CallerClaim{Username: inline.Username, Role: inline.Role}, nil
	}
	return auth.CallerClaim{}, apperrors.NewUnauthorized("caller identity required")
}

func parseIDParam(c *fiber.Ctx, name string) (uint64, error) {
	id, err := strconv.ParseUint(c.Params(name), 10, 64)
	if err != nil {
		return 0, apperrors.NewInvalidPayload("invalid id parameter", map[string]any{name: c.Params(name)})
	}
	return id, nil
}
