package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helpdesk-kit/itsm-service/internal/domain"
)

func assetInput(assignedTo uint64) AssetCreateInput {
	return AssetCreateInput{
		AssetName:        "Dell U2720Q",
		AssetType:        domain.AssetTypeMonitor,
		PurchaseDate:     time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC),
		AssignedTo:       assignedTo,
		ApproxValue:      550,
		DepreciationRate: 15,
	}
}

func TestCreateAsset(t *testing.T) {
	f := newFixture(t)
	owner := f.mustCreateUser(t, "alice", domain.RoleUser)
	support := f.mustCreateUser(t, "sam", domain.RoleITSupport)

	asset, err := f.assets.CreateAsset(context.Background(), callerOf(support), assetInput(owner.ID))
	require.NoError(t, err)
	assert.Equal(t, "Dell U2720Q", asset.AssetName)
	assert.Equal(t, domain.AssetTypeMonitor, asset.AssetType)
	assert.Equal(t, owner.ID, asset.AssignedTo)

	got, err := f.assets.GetAsset(context.Background(), asset.ID)
	require.NoError(t, err)
	assert.Equal(t, asset.ID, got.ID)
}

func TestCreateAssetRoleGate(t *testing.T) {
	f := newFixture(t)
	owner := f.mustCreateUser(t, "alice", domain.RoleUser)

	// Plain users cannot register assets.
	_, err := f.assets.CreateAsset(context.Background(), callerOf(owner), assetInput(owner.ID))
	requireErrorCode(t, err, "UNAUTHORIZED")
}

func TestCreateAssetValidation(t *testing.T) {
	f := newFixture(t)
	owner := f.mustCreateUser(t, "alice", domain.RoleUser)
	support := f.mustCreateUser(t, "sam", domain.RoleITSupport)

	input := assetInput(owner.ID)
	input.AssetName = ""
	_, err := f.assets.CreateAsset(context.Background(), callerOf(support), input)
	requireErrorCode(t, err, "INVALID_PAYLOAD")

	input = assetInput(owner.ID)
	input.AssetType = domain.AssetType("Tablet")
	_, err = f.assets.CreateAsset(context.Background(), callerOf(support), input)
	requireErrorCode(t, err, "INVALID_PAYLOAD")

	input = assetInput(4242)
	_, err = f.assets.CreateAsset(context.Background(), callerOf(support), input)
	requireErrorCode(t, err, "INVALID_PAYLOAD")
}

func TestListAssetsEmptyStoreIsNotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.assets.ListAssets(context.Background())
	requireErrorCode(t, err, "NOT_FOUND")
}

func TestCalculateDepreciation(t *testing.T) {
	f := newFixture(t)
	owner := f.mustCreateUser(t, "alice", domain.RoleUser)
	support := f.mustCreateUser(t, "sam", domain.RoleITSupport)

	input := assetInput(owner.ID)
	input.DepreciationRate = 10
	asset, err := f.assets.CreateAsset(context.Background(), callerOf(support), input)
	require.NoError(t, err)

	// Zero elapsed years yields the base value regardless of the asset's
	// recorded purchase price.
	value, err := f.assets.CalculateDepreciation(context.Background(), asset.ID, 0)
	require.NoError(t, err)
	assert.InDelta(t, domain.DepreciationBaseValue, value, 1e-9)

	value, err = f.assets.CalculateDepreciation(context.Background(), asset.ID, 2)
	require.NoError(t, err)
	assert.InDelta(t, 810.0, value, 1e-9)

	_, err = f.assets.CalculateDepreciation(context.Background(), 9999, 1)
	requireErrorCode(t, err, "NOT_FOUND")
}
