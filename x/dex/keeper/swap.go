package keeper

import (
	"context"
	"fmt"
	"math/big"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/algoswap/algoswap/x/dex/types"
)

// quote prices a trade against the current pool state.
func (k Keeper) quote(ctx context.Context, pool types.Pool, sentAsset types.AssetID, amountIn math.Int) (types.SwapQuote, error) {
	reserveIn, reserveOut, err := pool.Reserves(sentAsset)
	if err != nil {
		return types.SwapQuote{}, err
	}
	params, err := k.GetParams(ctx)
	if err != nil {
		return types.SwapQuote{}, err
	}
	q, err := types.CalculateSwapOut(reserveIn, reserveOut, amountIn, params)
	if err != nil {
		return types.SwapQuote{}, err
	}
	q.SentAsset = sentAsset
	q.ReceivedAsset = pool.Other(sentAsset)
	return q, nil
}

// SimulateSwap prices a trade without changing state.
func (k Keeper) SimulateSwap(ctx context.Context, assetA, assetB, sentAsset types.AssetID, amountIn math.Int) (types.SwapQuote, error) {
	pk, err := types.NewPairKey(assetA, assetB)
	if err != nil {
		return types.SwapQuote{}, err
	}
	pool, err := k.GetPool(ctx, pk)
	if err != nil {
		return types.SwapQuote{}, err
	}
	return k.quote(ctx, *pool, sentAsset, amountIn)
}

// Swap trades amountIn of sentAsset, already transferred to the pool
// escrow, for the other asset. Run it through ExecuteBundle or inside a
// cache context.
func (k Keeper) Swap(ctx context.Context, trader sdk.AccAddress, assetA, assetB, sentAsset types.AssetID, amountIn math.Int) (math.Int, *types.Pool, error) {
	// 1. Input validation
	pk, err := types.NewPairKey(assetA, assetB)
	if err != nil {
		return math.Int{}, nil, err
	}
	pool, err := k.GetPool(ctx, pk)
	if err != nil {
		return math.Int{}, nil, err
	}
	if !pool.HasAsset(sentAsset) {
		return math.Int{}, nil, types.ErrInvalidInput.Wrapf("asset %d is not in pool %s", sentAsset, pk.Label())
	}

	// 2. Constant-product quote
	q, err := k.quote(ctx, *pool, sentAsset, amountIn)
	if err != nil {
		return math.Int{}, nil, err
	}

	reserveA, reserveB := q.NewReserveIn, q.NewReserveOut
	if sentAsset == pool.AssetB {
		reserveA, reserveB = q.NewReserveOut, q.NewReserveIn
	}

	// 3. Invariant: k must not decrease
	oldK := new(big.Int).Mul(pool.ReserveA.BigInt(), pool.ReserveB.BigInt())
	newK := new(big.Int).Mul(reserveA.BigInt(), reserveB.BigInt())
	if newK.Cmp(oldK) < 0 {
		return math.Int{}, nil, types.ErrArithmetic.Wrapf("constant product decreased: %s -> %s", oldK, newK)
	}

	// 4. Reconcile with custody
	inA, inB := q.NewReserveIn, math.ZeroInt()
	if sentAsset == pool.AssetB {
		inA, inB = math.ZeroInt(), q.NewReserveIn
	}
	if err := k.requireEscrowCovers(ctx, *pool, inA, inB); err != nil {
		return math.Int{}, nil, err
	}

	// 5. Persist and pay out
	updated, err := k.UpdatePool(ctx, pk, reserveA, reserveB, pool.TotalLpSupply)
	if err != nil {
		return math.Int{}, nil, fmt.Errorf("Swap: update pool: %w", err)
	}
	if err := k.custodyKeeper.Transfer(ctx, uint64(q.ReceivedAsset), q.AmountOut, types.EscrowAddress(pk), trader); err != nil {
		return math.Int{}, nil, fmt.Errorf("Swap: pay out: %w", err)
	}

	sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeSwap,
			sdk.NewAttribute(types.AttributeKeyPairKey, pk.String()),
			sdk.NewAttribute(types.AttributeKeyTrader, trader.String()),
			sdk.NewAttribute(types.AttributeKeySentAsset, sentAsset.String()),
			sdk.NewAttribute(types.AttributeKeyReceivedAsset, q.ReceivedAsset.String()),
			sdk.NewAttribute(types.AttributeKeyAmountIn, amountIn.String()),
			sdk.NewAttribute(types.AttributeKeyAmountOut, q.AmountOut.String()),
			sdk.NewAttribute(types.AttributeKeyReserveA, updated.ReserveA.String()),
			sdk.NewAttribute(types.AttributeKeyReserveB, updated.ReserveB.String()),
		),
	)

	k.Logger(ctx).Debug("swap executed", "pair", pk.Label(), "trader", trader.String(), "amount_in", amountIn.String(), "amount_out", q.AmountOut.String())
	return q.AmountOut, updated, nil
}
