package keeper

import (
	"context"
	"time"

	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/algoswap/algoswap/x/dex/types"
)

// bundleLockKeys returns the pair lock plus the signer's custody balances in
// both pool assets. Escrow balances are covered by the pair lock.
func bundleLockKeys(msg types.Msg) []string {
	a, b := msg.Pair()
	signer := msg.GetSigner()
	return []string{
		pairLockKey(types.MustPairKey(a, b)),
		balanceLockKey(a, signer),
		balanceLockKey(b, signer),
	}
}

// ExecuteBundle applies a pool operation together with its transfer legs as
// one unit. Either every transfer and state write lands or none does.
func (k Keeper) ExecuteBundle(ctx context.Context, bundle types.Bundle) (result *types.BundleResult, err error) {
	start := time.Now()
	sdkCtx := sdk.UnwrapSDKContext(ctx)

	if bundle.ID == "" {
		bundle.ID = types.NewBundleID()
	}
	kind := "unknown"
	if !types.IsNilMsg(bundle.Msg) {
		kind = bundle.Msg.Type()
	}
	defer func() {
		k.metrics.observeBundle(kind, err, time.Since(start))
		if err != nil {
			k.Logger(ctx).Debug("bundle rejected", "bundle_id", bundle.ID, "type", kind, "error", err)
		}
	}()

	// 1. Shape and leg reconciliation
	if err := bundle.ValidateBasic(); err != nil {
		return nil, err
	}

	// 2. Serialize against other writers of the same pool and balances
	unlock := k.locks.Lock(bundleLockKeys(bundle.Msg)...)
	defer unlock()

	// Legs into the escrow of a missing pool would fail on opt-in first
	if _, isCreate := bundle.Msg.(*types.MsgCreatePool); !isCreate {
		a, b := bundle.Msg.Pair()
		if pk := types.MustPairKey(a, b); !k.HasPool(sdkCtx, pk) {
			return nil, types.ErrNotFound.Wrapf("pool %s", pk.Label())
		}
	}

	// 3. Apply legs and the operation on a cache branch
	cacheCtx, write := sdkCtx.WithEventManager(sdk.NewEventManager()).CacheContext()

	for i, leg := range bundle.Legs {
		from, err := sdk.AccAddressFromBech32(leg.Sender)
		if err != nil {
			return nil, types.ErrBundleViolation.Wrapf("leg %d sender: %s", i, err)
		}
		to, err := sdk.AccAddressFromBech32(leg.Receiver)
		if err != nil {
			return nil, types.ErrBundleViolation.Wrapf("leg %d receiver: %s", i, err)
		}
		if err := k.custodyKeeper.Transfer(cacheCtx, uint64(leg.Asset), leg.Amount, from, to); err != nil {
			return nil, errorsmod.Wrapf(err, "leg %d", i)
		}
	}

	result, err = k.applyMsg(cacheCtx, bundle.Msg)
	if err != nil {
		return nil, err
	}
	result.BundleID = bundle.ID

	cacheCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeBundle,
			sdk.NewAttribute(types.AttributeKeyBundleID, bundle.ID),
			sdk.NewAttribute(types.AttributeKeyOperation, kind),
			sdk.NewAttribute(types.AttributeKeyPairKey, result.PairKey.String()),
		),
	)
	result.Events = cacheCtx.EventManager().Events()

	// 4. Commit
	write()
	sdkCtx.EventManager().EmitEvents(result.Events)

	if create, ok := bundle.Msg.(*types.MsgCreatePool); ok {
		// Opt-in failures leave a usable pool; EnsureEscrowOptIn can retry.
		if err := k.EnsureEscrowOptIn(sdkCtx, result.PairKey); err != nil {
			k.Logger(ctx).Error("escrow opt-in failed", "pair", result.PairKey.Label(), "creator", create.Creator, "error", err)
		}
	}

	k.metrics.observePool(result.Pool)
	return result, nil
}

func (k Keeper) applyMsg(ctx sdk.Context, msg types.Msg) (*types.BundleResult, error) {
	a, b := msg.Pair()
	pk := types.MustPairKey(a, b)
	res := &types.BundleResult{
		Type:      msg.Type(),
		PairKey:   pk,
		LpMinted:  math.ZeroInt(),
		AmountA:   math.ZeroInt(),
		AmountB:   math.ZeroInt(),
		AmountOut: math.ZeroInt(),
	}

	switch msg := msg.(type) {
	case *types.MsgCreatePool:
		pool, err := k.CreatePool(ctx, msg.GetSigner(), msg.AssetA, msg.AssetB)
		if err != nil {
			return nil, err
		}
		res.Pool = *pool

	case *types.MsgAddLiquidity:
		minted, pool, err := k.AddLiquidity(ctx, msg.GetSigner(), msg.AssetA, msg.AssetB, msg.AmountA, msg.AmountB)
		if err != nil {
			return nil, err
		}
		res.Pool = *pool
		res.LpMinted = minted
		res.AmountA, res.AmountB = msg.AmountA, msg.AmountB
		if msg.AssetA != pool.AssetA {
			res.AmountA, res.AmountB = msg.AmountB, msg.AmountA
		}
		k.metrics.observeDeposit(*pool, res.AmountA, res.AmountB)

	case *types.MsgRemoveLiquidity:
		amountA, amountB, pool, err := k.RemoveLiquidity(ctx, msg.GetSigner(), msg.AssetA, msg.AssetB, msg.LpBurn)
		if err != nil {
			return nil, err
		}
		res.Pool = *pool
		res.AmountA, res.AmountB = amountA, amountB
		k.metrics.observeWithdrawal(*pool, amountA, amountB)

	case *types.MsgSwap:
		amountOut, pool, err := k.Swap(ctx, msg.GetSigner(), msg.AssetA, msg.AssetB, msg.SentAsset, msg.AmountIn)
		if err != nil {
			return nil, err
		}
		res.Pool = *pool
		res.AmountOut = amountOut
		k.metrics.observeSwap(*pool, msg.SentAsset, msg.AmountIn)

	default:
		return nil, types.ErrBundleViolation.Wrapf("unsupported operation %T", msg)
	}
	return res, nil
}
