package dto

import (
	"time"

	"github.com/helpdesk-kit/itsm-service/internal/domain"
)

// CreateAssetRequest payload. PurchaseDate is a unix timestamp in seconds.
type CreateAssetRequest struct {
	Caller           *Caller          `json:"caller,omitempty"`
	AssetName        string           `json:"asset_name"`
	AssetType        domain.AssetType `json:"asset_type"`
	PurchaseDate     int64            `json:"purchase_date"`
	AssignedTo       uint64           `json:"assigned_to"`
	ApproxValue      float64          `json:"approx_value"`
	DepreciationRate float64          `json:"depreciation_rate"`
}

// CalculateDepreciationRequest payload.
type CalculateDepreciationRequest struct {
	ITAssetID uint64 `json:"it_asset_id"`
	Years     uint64 `json:"years"`
}

// DepreciationResponse carries the computed value.
type DepreciationResponse struct {
	ITAssetID uint64  `json:"it_asset_id"`
	Years     uint64  `json:"years"`
	Value     float64 `json:"value"`
}

// AssetResponse mirrors the stored asset record.
type AssetResponse struct {
	ID               uint64           `json:"id"`
	AssetName        string           `json:"asset_name"`
	AssetType        domain.AssetType `json:"asset_type"`
	PurchaseDate     time.Time        `json:"purchase_date"`
	AssignedTo       uint64           `json:"assigned_to"`
	ApproxValue      float64          `json:"approx_value"`
	DepreciationRate float64          `json:"depreciation_rate"`
}

// NewAssetResponse maps a domain asset.
func NewAssetResponse(asset *domain.ITAsset) AssetResponse {
	return AssetResponse{
		ID:               asset.ID,
		AssetName:        asset.AssetName,
		AssetType:        asset.AssetType,
		PurchaseDate:     asset.PurchaseDate,
		AssignedTo:       asset.AssignedTo,
		ApproxValue:      asset.ApproxValue,
		DepreciationRate: asset.DepreciationRate,
	}
}

// NewAssetResponses maps a listing.
func NewAssetResponses(assets []domain.ITAsset) []AssetResponse {
	out := make([]AssetResponse, 0, len(assets))
	for i := range assets {
		out = append(out, NewAssetResponse(&assets[i]))
	}
	return out
}
