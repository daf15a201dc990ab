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

// AssetService owns the IT asset inventory. Assets are immutable once
// registered; the only derived read is the depreciation calculation.
type AssetService struct {
	assets     repository.AssetRepository
	users      repository.UserRepository
	allocator  repository.IDAllocator
	gate       *auth.Gate
	dispatcher events.Dispatcher
}

// AssetDependencies bundles collaborators for the asset service.
type AssetDependencies struct {
	AssetRepo  repository.AssetRepository
	UserRepo   repository.UserRepository
	Allocator  repository.IDAllocator
	Gate       *auth.Gate
	Dispatcher events.Dispatcher
}

// AssetCreateInput describes the asset registration payload.
type AssetCreateInput struct {
	AssetName        string
	AssetType        domain.AssetType
	PurchaseDate     time.Time
	AssignedTo       uint64
	ApproxValue      float64
	DepreciationRate float64
}

// NewAssetService constructs the service.
func NewAssetService(deps AssetDependencies) *AssetService {
	return &AssetService{
		assets:     deps.AssetRepo,
		users:      deps.UserRepo,
		allocator:  deps.Allocator,
		gate:       deps.Gate,
		dispatcher: deps.Dispatcher,
	}
}

// CreateAsset registers a new asset for an ITSupport or Admin caller.
func (s *AssetService) CreateAsset(ctx context.Context, caller auth.CallerClaim, input AssetCreateInput) (*domain.ITAsset, error) {
	user, err := s.gate.Authenticate(ctx, caller.Username, caller.Role)
	if err != nil {
		return nil, err
	}
	if err := s.gate.RequireRole(user, domain.RoleITSupport, domain.RoleAdmin); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(input.AssetName)
	if name == "" {
		return nil, apperrors.NewInvalidPayload("ensure 'asset_name' and 'asset_type' are provided", nil)
	}
	if !input.AssetType.Valid() {
		return nil, apperrors.NewInvalidPayload("unknown asset type", map[string]any{"asset_type": input.AssetType})
	}

	exists, err := s.users.ExistsByID(ctx, input.AssignedTo)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if !exists {
		return nil, apperrors.NewInvalidPayload("assigned user does not exist", map[string]any{"assigned_to": input.AssignedTo})
	}

	id, err := s.allocator.NextID(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	asset := &domain.ITAsset{
		ID:               id,
		AssetName:        name,
		AssetType:        input.AssetType,
		PurchaseDate:     input.PurchaseDate,
		AssignedTo:       input.AssignedTo,
		ApproxValue:      input.ApproxValue,
		DepreciationRate: input.DepreciationRate,
	}
	if err := s.assets.Insert(ctx, asset); err != nil {
		return nil, mapStoreError("asset", err)
	}

	publishEvent(ctx, s.dispatcher, events.Event{
		Type:     events.EventAssetRegistered,
		EntityID: asset.ID,
		Actor:    actorFor(user),
		Payload: events.AssetRegisteredPayload{
			AssetName:  asset.AssetName,
			AssetType:  asset.AssetType,
			AssignedTo: asset.AssignedTo,
		},
	})
	return asset, nil
}

// GetAsset fetches an asset by ID.
func (s *AssetService) GetAsset(ctx context.Context, id uint64) (*domain.ITAsset, error) {
	asset, err := s.assets.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewNotFound("asset", map[string]any{"it_asset_id": id})
		}
		return nil, apperrors.MapError(err)
	}
	return asset, nil
}

// ListAssets returns every asset in key order; an empty store is an error
// by policy.
func (s *AssetService) ListAssets(ctx context.Context) ([]domain.ITAsset, error) {
	assets, err := s.assets.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if len(assets) == 0 {
		return nil, apperrors.NewNotFound("assets", nil)
	}
	return assets, nil
}

// CalculateDepreciation resolves the asset and compounds its stored yearly
// rate over the elapsed year count.
func (s *AssetService) CalculateDepreciation(ctx context.Context, assetID, years uint64) (float64, error) {
	asset, err := s.GetAsset(ctx, assetID)
	if err != nil {
		return 0, err
	}
	return domain.DepreciatedValue(asset.DepreciationRate, years), nil
}
