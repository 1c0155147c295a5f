package keeper

import (
	"context"
	"fmt"

	"cosmossdk.io/math"
	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/algoswap/algoswap/x/dex/types"
)

// GetLpBalance returns the provider's LP shares in a pool, zero if none.
func (k Keeper) GetLpBalance(ctx context.Context, pk types.PairKey, provider sdk.AccAddress) (math.Int, error) {
	bz := k.getStore(ctx).Get(types.GetLiquidityKey(pk, provider))
	if bz == nil {
		return math.ZeroInt(), nil
	}

	var shares math.Int
	if err := shares.Unmarshal(bz); err != nil {
		return math.Int{}, fmt.Errorf("GetLpBalance: unmarshal: %w", err)
	}
	return shares, nil
}

// setLpBalance writes a balance; zero balances are removed.
func (k Keeper) setLpBalance(ctx context.Context, pk types.PairKey, provider sdk.AccAddress, shares math.Int) error {
	store := k.getStore(ctx)
	key := types.GetLiquidityKey(pk, provider)

	if shares.IsZero() {
		store.Delete(key)
		return nil
	}
	if shares.IsNegative() {
		return types.ErrArithmetic.Wrapf("negative LP balance %s", shares)
	}

	bz, err := shares.Marshal()
	if err != nil {
		return fmt.Errorf("setLpBalance: marshal: %w", err)
	}
	store.Set(key, bz)
	return nil
}

// CreditLp adds shares to the provider's balance.
func (k Keeper) CreditLp(ctx context.Context, pk types.PairKey, provider sdk.AccAddress, shares math.Int) error {
	current, err := k.GetLpBalance(ctx, pk, provider)
	if err != nil {
		return err
	}
	updated, err := types.SafeAdd(current, shares)
	if err != nil {
		return err
	}
	return k.setLpBalance(ctx, pk, provider, updated)
}

// DebitLp removes shares from the provider's balance.
func (k Keeper) DebitLp(ctx context.Context, pk types.PairKey, provider sdk.AccAddress, shares math.Int) error {
	current, err := k.GetLpBalance(ctx, pk, provider)
	if err != nil {
		return err
	}
	if current.LT(shares) {
		return types.ErrInsufficientBalance.Wrapf("have %s, need %s", current, shares)
	}
	return k.setLpBalance(ctx, pk, provider, current.Sub(shares))
}

// IterateLpBalances iterates over all LP balances of one pool
func (k Keeper) IterateLpBalances(ctx context.Context, pk types.PairKey, cb func(provider sdk.AccAddress, shares math.Int) (stop bool)) error {
	return k.iterateLiquidity(ctx, types.GetPoolLiquidityPrefix(pk), func(_ types.PairKey, provider sdk.AccAddress, shares math.Int) bool {
		return cb(provider, shares)
	})
}

// IterateAllLpBalances iterates over the LP balances of every pool
func (k Keeper) IterateAllLpBalances(ctx context.Context, cb func(pk types.PairKey, provider sdk.AccAddress, shares math.Int) (stop bool)) error {
	return k.iterateLiquidity(ctx, types.LiquidityKey, cb)
}

func (k Keeper) iterateLiquidity(ctx context.Context, prefix []byte, cb func(pk types.PairKey, provider sdk.AccAddress, shares math.Int) bool) error {
	iterator := storetypes.KVStorePrefixIterator(k.getStore(ctx), prefix)
	defer iterator.Close()

	for ; iterator.Valid(); iterator.Next() {
		pk, provider, err := types.SplitLiquidityKey(iterator.Key())
		if err != nil {
			return err
		}
		var shares math.Int
		if err := shares.Unmarshal(iterator.Value()); err != nil {
			return fmt.Errorf("iterate liquidity: unmarshal: %w", err)
		}
		if cb(pk, provider, shares) {
			break
		}
	}
	return nil
}

// requireEscrowCovers checks that the tokens backing new reserves actually
// reached the pool escrow.
func (k Keeper) requireEscrowCovers(ctx context.Context, pool types.Pool, reserveA, reserveB math.Int) error {
	escrow := types.EscrowAddress(pool.PairKey())
	if bal := k.custodyKeeper.Balance(ctx, escrow, uint64(pool.AssetA)); bal.LT(reserveA) {
		return types.ErrBundleViolation.Wrapf("escrow holds %s of asset %d, reserves need %s", bal, pool.AssetA, reserveA)
	}
	if bal := k.custodyKeeper.Balance(ctx, escrow, uint64(pool.AssetB)); bal.LT(reserveB) {
		return types.ErrBundleViolation.Wrapf("escrow holds %s of asset %d, reserves need %s", bal, pool.AssetB, reserveB)
	}
	return nil
}

// AddLiquidity credits LP shares for a deposit that has already been
// transferred to the pool escrow. Amounts follow the argument asset order.
// Run it through ExecuteBundle or inside a cache context.
func (k Keeper) AddLiquidity(ctx context.Context, provider sdk.AccAddress, assetA, assetB types.AssetID, amountA, amountB math.Int) (math.Int, *types.Pool, error) {
	// 1. Input validation
	pk, err := types.NewPairKey(assetA, assetB)
	if err != nil {
		return math.Int{}, nil, err
	}
	if amountA.IsNil() || !amountA.IsPositive() || amountB.IsNil() || !amountB.IsPositive() {
		return math.Int{}, nil, types.ErrInvalidInput.Wrap("deposit amounts must be positive")
	}

	pool, err := k.GetPool(ctx, pk)
	if err != nil {
		return math.Int{}, nil, err
	}

	// 2. Map caller order onto the canonical sides
	if assetA != pool.AssetA {
		amountA, amountB = amountB, amountA
	}

	params, err := k.GetParams(ctx)
	if err != nil {
		return math.Int{}, nil, err
	}

	// 3. Shares to mint
	var lpMinted, reserveA, reserveB math.Int
	if pool.IsEmpty() {
		lpMinted, err = types.CalculateInitialShares(amountA, amountB, params)
		if err != nil {
			return math.Int{}, nil, err
		}
		reserveA, reserveB = amountA, amountB
	} else {
		lpMinted, err = types.CalculateLpMint(amountA, amountB, pool.ReserveA, pool.ReserveB, pool.TotalLpSupply)
		if err != nil {
			return math.Int{}, nil, err
		}
		if reserveA, err = types.SafeAdd(pool.ReserveA, amountA); err != nil {
			return math.Int{}, nil, err
		}
		if reserveB, err = types.SafeAdd(pool.ReserveB, amountB); err != nil {
			return math.Int{}, nil, err
		}
	}
	if !lpMinted.IsPositive() {
		return math.Int{}, nil, types.ErrInvalidInput.Wrapf("deposit %s/%s is too small to mint shares", amountA, amountB)
	}

	totalLp, err := types.SafeAdd(pool.TotalLpSupply, lpMinted)
	if err != nil {
		return math.Int{}, nil, err
	}

	// 4. Reconcile with custody
	if err := k.requireEscrowCovers(ctx, *pool, reserveA, reserveB); err != nil {
		return math.Int{}, nil, err
	}

	// 5. Persist
	updated, err := k.UpdatePool(ctx, pk, reserveA, reserveB, totalLp)
	if err != nil {
		return math.Int{}, nil, fmt.Errorf("AddLiquidity: update pool: %w", err)
	}
	if err := k.CreditLp(ctx, pk, provider, lpMinted); err != nil {
		return math.Int{}, nil, fmt.Errorf("AddLiquidity: credit: %w", err)
	}

	sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeAddLiquidity,
			sdk.NewAttribute(types.AttributeKeyPairKey, pk.String()),
			sdk.NewAttribute(types.AttributeKeyProvider, provider.String()),
			sdk.NewAttribute(types.AttributeKeyAmountA, amountA.String()),
			sdk.NewAttribute(types.AttributeKeyAmountB, amountB.String()),
			sdk.NewAttribute(types.AttributeKeyLpMinted, lpMinted.String()),
			sdk.NewAttribute(types.AttributeKeyReserveA, updated.ReserveA.String()),
			sdk.NewAttribute(types.AttributeKeyReserveB, updated.ReserveB.String()),
		),
	)

	k.Logger(ctx).Debug("liquidity added", "pair", pk.Label(), "provider", provider.String(), "lp_minted", lpMinted.String())
	return lpMinted, updated, nil
}

// RemoveLiquidity burns lpBurn shares and pays the pro-rata reserves from
// the escrow to the provider. Amounts are returned in canonical order.
// Run it through ExecuteBundle or inside a cache context.
func (k Keeper) RemoveLiquidity(ctx context.Context, provider sdk.AccAddress, assetA, assetB types.AssetID, lpBurn math.Int) (math.Int, math.Int, *types.Pool, error) {
	// 1. Input validation
	pk, err := types.NewPairKey(assetA, assetB)
	if err != nil {
		return math.Int{}, math.Int{}, nil, err
	}
	if lpBurn.IsNil() || !lpBurn.IsPositive() {
		return math.Int{}, math.Int{}, nil, types.ErrInvalidInput.Wrap("LP burn amount must be positive")
	}

	pool, err := k.GetPool(ctx, pk)
	if err != nil {
		return math.Int{}, math.Int{}, nil, err
	}

	balance, err := k.GetLpBalance(ctx, pk, provider)
	if err != nil {
		return math.Int{}, math.Int{}, nil, err
	}
	if balance.LT(lpBurn) {
		return math.Int{}, math.Int{}, nil, types.ErrInsufficientBalance.Wrapf("have %s, burn %s", balance, lpBurn)
	}

	// 2. Pro-rata amounts
	amountA, amountB, err := types.CalculateWithdrawal(lpBurn, pool.ReserveA, pool.ReserveB, pool.TotalLpSupply)
	if err != nil {
		return math.Int{}, math.Int{}, nil, err
	}
	reserveA, err := types.SafeSub(pool.ReserveA, amountA)
	if err != nil {
		return math.Int{}, math.Int{}, nil, err
	}
	reserveB, err := types.SafeSub(pool.ReserveB, amountB)
	if err != nil {
		return math.Int{}, math.Int{}, nil, err
	}
	totalLp, err := types.SafeSub(pool.TotalLpSupply, lpBurn)
	if err != nil {
		return math.Int{}, math.Int{}, nil, err
	}

	// 3. Persist
	updated, err := k.UpdatePool(ctx, pk, reserveA, reserveB, totalLp)
	if err != nil {
		return math.Int{}, math.Int{}, nil, fmt.Errorf("RemoveLiquidity: update pool: %w", err)
	}
	if err := k.DebitLp(ctx, pk, provider, lpBurn); err != nil {
		return math.Int{}, math.Int{}, nil, err
	}

	// 4. Pay out
	escrow := types.EscrowAddress(pk)
	for _, payout := range []struct {
		asset  types.AssetID
		amount math.Int
	}{{pool.AssetA, amountA}, {pool.AssetB, amountB}} {
		if payout.amount.IsZero() {
			continue
		}
		if err := k.custodyKeeper.Transfer(ctx, uint64(payout.asset), payout.amount, escrow, provider); err != nil {
			return math.Int{}, math.Int{}, nil, fmt.Errorf("RemoveLiquidity: pay asset %d: %w", payout.asset, err)
		}
	}

	sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeRemoveLiquidity,
			sdk.NewAttribute(types.AttributeKeyPairKey, pk.String()),
			sdk.NewAttribute(types.AttributeKeyProvider, provider.String()),
			sdk.NewAttribute(types.AttributeKeyLpBurned, lpBurn.String()),
			sdk.NewAttribute(types.AttributeKeyAmountA, amountA.String()),
			sdk.NewAttribute(types.AttributeKeyAmountB, amountB.String()),
			sdk.NewAttribute(types.AttributeKeyReserveA, updated.ReserveA.String()),
			sdk.NewAttribute(types.AttributeKeyReserveB, updated.ReserveB.String()),
		),
	)

	k.Logger(ctx).Debug("liquidity removed", "pair", pk.Label(), "provider", provider.String(), "lp_burned", lpBurn.String())
	return amountA, amountB, updated, nil
}
