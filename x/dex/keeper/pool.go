package keeper

import (
	"context"
	"encoding/json"
	"fmt"

	"cosmossdk.io/math"
	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/algoswap/algoswap/x/dex/types"
)

// GetPool returns the pool stored under pk.
func (k Keeper) GetPool(ctx context.Context, pk types.PairKey) (*types.Pool, error) {
	bz := k.getStore(ctx).Get(types.GetPoolKey(pk))
	if bz == nil {
		return nil, types.ErrNotFound.Wrapf("pool %s", pk.Label())
	}

	var pool types.Pool
	if err := json.Unmarshal(bz, &pool); err != nil {
		return nil, fmt.Errorf("GetPool: unmarshal %s: %w", pk.Label(), err)
	}
	return &pool, nil
}

// HasPool reports whether a pool exists under pk.
func (k Keeper) HasPool(ctx context.Context, pk types.PairKey) bool {
	return k.getStore(ctx).Has(types.GetPoolKey(pk))
}

// setPool validates and writes a pool record.
func (k Keeper) setPool(ctx context.Context, pool types.Pool) error {
	if err := pool.Validate(); err != nil {
		return err
	}
	bz, err := json.Marshal(pool)
	if err != nil {
		return fmt.Errorf("setPool: marshal: %w", err)
	}
	k.getStore(ctx).Set(types.GetPoolKey(pool.PairKey()), bz)
	return nil
}

// CreatePoolRecord stores an empty pool for the pair. Fails with
// ErrAlreadyExists when the key is taken.
func (k Keeper) CreatePoolRecord(ctx context.Context, pk types.PairKey) (*types.Pool, error) {
	if k.HasPool(ctx, pk) {
		return nil, types.ErrAlreadyExists.Wrapf("pool %s", pk.Label())
	}
	a, b := pk.Assets()
	pool := types.NewPool(a, b)
	if err := k.setPool(ctx, pool); err != nil {
		return nil, fmt.Errorf("CreatePoolRecord: %w", err)
	}
	return &pool, nil
}

// UpdatePool replaces the reserve and supply fields of an existing pool.
func (k Keeper) UpdatePool(ctx context.Context, pk types.PairKey, reserveA, reserveB, totalLp math.Int) (*types.Pool, error) {
	pool, err := k.GetPool(ctx, pk)
	if err != nil {
		return nil, err
	}
	pool.ReserveA = reserveA
	pool.ReserveB = reserveB
	pool.TotalLpSupply = totalLp
	if err := k.setPool(ctx, *pool); err != nil {
		return nil, err
	}
	return pool, nil
}

// IteratePools iterates over all pools in key order
func (k Keeper) IteratePools(ctx context.Context, cb func(pool types.Pool) (stop bool)) error {
	iterator := storetypes.KVStorePrefixIterator(k.getStore(ctx), types.PoolKey)
	defer iterator.Close()

	for ; iterator.Valid(); iterator.Next() {
		var pool types.Pool
		if err := json.Unmarshal(iterator.Value(), &pool); err != nil {
			return fmt.Errorf("IteratePools: unmarshal: %w", err)
		}
		if cb(pool) {
			break
		}
	}
	return nil
}

// GetAllPools returns all pools
func (k Keeper) GetAllPools(ctx context.Context) ([]types.Pool, error) {
	pools := []types.Pool{}
	err := k.IteratePools(ctx, func(pool types.Pool) bool {
		pools = append(pools, pool)
		return false
	})
	return pools, err
}

// CreatePool registers an empty pool for (assetA, assetB) in either order.
func (k Keeper) CreatePool(ctx context.Context, creator sdk.AccAddress, assetA, assetB types.AssetID) (*types.Pool, error) {
	// 1. Input validation
	pk, err := types.NewPairKey(assetA, assetB)
	if err != nil {
		return nil, err
	}

	// 2. Zero record under the canonical key
	pool, err := k.CreatePoolRecord(ctx, pk)
	if err != nil {
		return nil, err
	}

	// 3. Emit event
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	sdkCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeCreatePool,
			sdk.NewAttribute(types.AttributeKeyPairKey, pk.String()),
			sdk.NewAttribute(types.AttributeKeyAssetA, pool.AssetA.String()),
			sdk.NewAttribute(types.AttributeKeyAssetB, pool.AssetB.String()),
			sdk.NewAttribute(types.AttributeKeyCreator, creator.String()),
		),
	)

	k.Logger(ctx).Info("pool created", "pair", pk.Label(), "creator", creator.String())
	return pool, nil
}

// EnsureEscrowOptIn opts the pool escrow in to both pool assets.
func (k Keeper) EnsureEscrowOptIn(ctx context.Context, pk types.PairKey) error {
	escrow := types.EscrowAddress(pk)
	a, b := pk.Assets()
	for _, asset := range []types.AssetID{a, b} {
		if err := k.custodyKeeper.OptIn(ctx, escrow, uint64(asset)); err != nil {
			return fmt.Errorf("EnsureEscrowOptIn: asset %d: %w", asset, err)
		}
	}
	return nil
}
