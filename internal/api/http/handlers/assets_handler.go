package handlers

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/helpdesk-kit/itsm-service/internal/api/dto"
	"github.com/helpdesk-kit/itsm-service/internal/service"
	apperrors "github.com/helpdesk-kit/itsm-service/pkg/util"
)

// AssetsHandler exposes IT asset operations.
type AssetsHandler struct {
	assets *service.AssetService
}

// NewAssetsHandler constructs handler.
func NewAssetsHandler(assets *service.AssetService) *AssetsHandler {
	return &AssetsHandler{assets: assets}
}

// Create handles POST /assets. Guarded: ITSupport or Admin.
func (h *AssetsHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateAssetRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewInvalidPayload("invalid payload", nil)
	}
	caller, err := resolveCaller(c, req.Caller)
	if err != nil {
		return err
	}

	asset, err := h.assets.CreateAsset(c.UserContext(), caller, service.AssetCreateInput{
		AssetName:        req.AssetName,
		AssetType:        req.AssetType,
		PurchaseDate:     time.Unix(req.PurchaseDate, 0).UTC(),
		AssignedTo:       req.AssignedTo,
		ApproxValue:      req.ApproxValue,
		DepreciationRate: req.DepreciationRate,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewAssetResponse(asset)})
}

// List handles GET /assets.
func (h *AssetsHandler) List(c *fiber.Ctx) error {
	assets, err := h.assets.ListAssets(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewAssetResponses(assets)})
}

// Get handles GET /assets/:id.
func (h *AssetsHandler) Get(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	asset, err := h.assets.GetAsset(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewAssetResponse(asset)})
}

// Depreciation handles POST /assets/depreciation.
func (h *AssetsHandler) Depreciation(c *fiber.Ctx) error {
	var req dto.CalculateDepreciationRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewInvalidPayload("invalid payload", nil)
	}

	value, err := h.assets.CalculateDepreciation(c.UserContext(), req.ITAssetID, req.Years)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.DepreciationResponse{
		ITAssetID: req.ITAssetID,
		Years:     req.Years,
		Value:     value,
	}})
}
