package keeper

import (
	"context"
	"fmt"

	"cosmossdk.io/math"
	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/algoswap/algoswap/x/custody/types"
)

// IsOptedIn reports whether account may hold asset.
func (k Keeper) IsOptedIn(ctx context.Context, account sdk.AccAddress, asset uint64) bool {
	return k.getStore(ctx).Has(types.GetBalanceKey(asset, account))
}

// OptIn registers account for asset. Opting in twice is a no-op.
func (k Keeper) OptIn(ctx context.Context, account sdk.AccAddress, asset uint64) error {
	if len(account) == 0 {
		return types.ErrInvalidAccount.Wrap("empty account")
	}
	if asset == 0 {
		return types.ErrInvalidAmount.Wrap("asset id must be positive")
	}
	if k.IsOptedIn(ctx, account, asset) {
		return nil
	}
	if err := k.setBalance(ctx, account, asset, math.ZeroInt()); err != nil {
		return fmt.Errorf("OptIn: %w", err)
	}

	sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeOptIn,
			sdk.NewAttribute(types.AttributeKeyAccount, account.String()),
			sdk.NewAttribute(types.AttributeKeyAsset, fmt.Sprintf("%d", asset)),
		),
	)
	return nil
}

// Balance returns the account's holding of asset, zero when not opted in.
func (k Keeper) Balance(ctx context.Context, account sdk.AccAddress, asset uint64) math.Int {
	bz := k.getStore(ctx).Get(types.GetBalanceKey(asset, account))
	if bz == nil {
		return math.ZeroInt()
	}

	var amount math.Int
	if err := amount.Unmarshal(bz); err != nil {
		k.Logger(ctx).Error("corrupt balance entry", "account", account.String(), "asset", asset, "error", err)
		return math.ZeroInt()
	}
	return amount
}

func (k Keeper) setBalance(ctx context.Context, account sdk.AccAddress, asset uint64, amount math.Int) error {
	bz, err := amount.Marshal()
	if err != nil {
		return fmt.Errorf("marshal balance: %w", err)
	}
	k.getStore(ctx).Set(types.GetBalanceKey(asset, account), bz)
	return nil
}

// Mint credits amount of asset to account, opting it in first.
func (k Keeper) Mint(ctx context.Context, account sdk.AccAddress, asset uint64, amount math.Int) error {
	if amount.IsNil() || amount.IsNegative() {
		return types.ErrInvalidAmount.Wrapf("cannot mint %s", amount)
	}
	if err := k.OptIn(ctx, account, asset); err != nil {
		return err
	}

	newBalance, err := k.Balance(ctx, account, asset).SafeAdd(amount)
	if err != nil {
		return types.ErrInvalidAmount.Wrapf("mint overflows balance: %s", err)
	}
	if err := k.setBalance(ctx, account, asset, newBalance); err != nil {
		return fmt.Errorf("Mint: %w", err)
	}

	sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeMint,
			sdk.NewAttribute(types.AttributeKeyAccount, account.String()),
			sdk.NewAttribute(types.AttributeKeyAsset, fmt.Sprintf("%d", asset)),
			sdk.NewAttribute(types.AttributeKeyAmount, amount.String()),
		),
	)
	return nil
}

// Transfer moves amount of asset from one opted-in account to another.
// A zero amount only checks that both sides are opted in.
func (k Keeper) Transfer(ctx context.Context, asset uint64, amount math.Int, from, to sdk.AccAddress) error {
	if amount.IsNil() || amount.IsNegative() {
		return types.ErrInvalidAmount.Wrapf("cannot transfer %s", amount)
	}
	if !k.IsOptedIn(ctx, from, asset) {
		return types.ErrNotOptedIn.Wrapf("sender %s, asset %d", from, asset)
	}
	if !k.IsOptedIn(ctx, to, asset) {
		return types.ErrNotOptedIn.Wrapf("receiver %s, asset %d", to, asset)
	}
	if amount.IsZero() || from.Equals(to) {
		return nil
	}

	fromBalance := k.Balance(ctx, from, asset)
	if fromBalance.LT(amount) {
		return types.ErrInsufficientFunds.Wrapf("%s has %s of asset %d, needs %s", from, fromBalance, asset, amount)
	}
	toBalance, err := k.Balance(ctx, to, asset).SafeAdd(amount)
	if err != nil {
		return types.ErrInvalidAmount.Wrapf("transfer overflows receiver balance: %s", err)
	}

	if err := k.setBalance(ctx, from, asset, fromBalance.Sub(amount)); err != nil {
		return fmt.Errorf("Transfer: debit: %w", err)
	}
	if err := k.setBalance(ctx, to, asset, toBalance); err != nil {
		return fmt.Errorf("Transfer: credit: %w", err)
	}

	sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeTransfer,
			sdk.NewAttribute(types.AttributeKeySender, from.String()),
			sdk.NewAttribute(types.AttributeKeyReceiver, to.String()),
			sdk.NewAttribute(types.AttributeKeyAsset, fmt.Sprintf("%d", asset)),
			sdk.NewAttribute(types.AttributeKeyAmount, amount.String()),
		),
	)
	return nil
}

// IterateBalances calls cb for every opted-in holding until cb returns true.
func (k Keeper) IterateBalances(ctx context.Context, cb func(account sdk.AccAddress, asset uint64, amount math.Int) (stop bool)) {
	iterator := storetypes.KVStorePrefixIterator(k.getStore(ctx), types.BalanceKey)
	defer iterator.Close()

	for ; iterator.Valid(); iterator.Next() {
		asset, account, ok := types.SplitBalanceKey(iterator.Key())
		if !ok {
			continue
		}
		var amount math.Int
		if err := amount.Unmarshal(iterator.Value()); err != nil {
			continue
		}
		if cb(account, asset, amount) {
			break
		}
	}
}
