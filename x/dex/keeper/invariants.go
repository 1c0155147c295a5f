package keeper

import (
	"fmt"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/algoswap/algoswap/x/dex/types"
)

// RegisterInvariants registers all DEX invariants
func RegisterInvariants(ir sdk.InvariantRegistry, k Keeper) {
	ir.RegisterRoute(types.ModuleName, "lp-supply", LpSupplyInvariant(k))
	ir.RegisterRoute(types.ModuleName, "positive-reserves", PositiveReservesInvariant(k))
	ir.RegisterRoute(types.ModuleName, "escrow-balance", EscrowBalanceInvariant(k))
}

// AllInvariants runs all invariants of the DEX module
func AllInvariants(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		res, stop := LpSupplyInvariant(k)(ctx)
		if stop {
			return res, stop
		}

		res, stop = PositiveReservesInvariant(k)(ctx)
		if stop {
			return res, stop
		}

		return EscrowBalanceInvariant(k)(ctx)
	}
}

// LpSupplyInvariant checks that every pool's LP supply equals the sum of its
// providers' balances
func LpSupplyInvariant(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		var (
			msg   string
			count int
		)

		pools, err := k.GetAllPools(ctx)
		if err != nil {
			return sdk.FormatInvariant(types.ModuleName, "lp-supply", err.Error()), true
		}
		for _, pool := range pools {
			sum := math.ZeroInt()
			err := k.IterateLpBalances(ctx, pool.PairKey(), func(_ sdk.AccAddress, shares math.Int) bool {
				sum = sum.Add(shares)
				return false
			})
			if err != nil {
				count++
				msg += fmt.Sprintf("pool %s: %s\n", pool.PairKey().Label(), err)
				continue
			}
			if !sum.Equal(pool.TotalLpSupply) {
				count++
				msg += fmt.Sprintf("pool %s: total supply %s != sum of balances %s\n",
					pool.PairKey().Label(), pool.TotalLpSupply, sum)
			}
		}

		broken := count != 0
		return sdk.FormatInvariant(
			types.ModuleName, "lp-supply",
			fmt.Sprintf("found %d pools with mismatched LP supply\n%s", count, msg),
		), broken
	}
}

// PositiveReservesInvariant checks that pools with outstanding shares hold
// both reserves and are stored in canonical order
func PositiveReservesInvariant(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		var (
			msg   string
			count int
		)

		err := k.IteratePools(ctx, func(pool types.Pool) bool {
			if err := pool.Validate(); err != nil {
				count++
				msg += fmt.Sprintf("%s: %s\n", pool, err)
			}
			return false
		})
		if err != nil {
			return sdk.FormatInvariant(types.ModuleName, "positive-reserves", err.Error()), true
		}

		broken := count != 0
		return sdk.FormatInvariant(
			types.ModuleName, "positive-reserves",
			fmt.Sprintf("found %d invalid pools\n%s", count, msg),
		), broken
	}
}

// EscrowBalanceInvariant checks that each pool escrow holds at least the
// pool's reserves
func EscrowBalanceInvariant(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		var (
			msg   string
			count int
		)

		pools, err := k.GetAllPools(ctx)
		if err != nil {
			return sdk.FormatInvariant(types.ModuleName, "escrow-balance", err.Error()), true
		}
		for _, pool := range pools {
			escrow := types.EscrowAddress(pool.PairKey())
			for _, side := range []struct {
				asset   types.AssetID
				reserve math.Int
			}{{pool.AssetA, pool.ReserveA}, {pool.AssetB, pool.ReserveB}} {
				bal := k.custodyKeeper.Balance(ctx, escrow, uint64(side.asset))
				if bal.LT(side.reserve) {
					count++
					msg += fmt.Sprintf("pool %s: escrow balance for %d (%s) < reserve (%s)\n",
						pool.PairKey().Label(), side.asset, bal, side.reserve)
				}
			}
		}

		broken := count != 0
		return sdk.FormatInvariant(
			types.ModuleName, "escrow-balance",
			fmt.Sprintf("found %d underfunded reserves\n%s", count, msg),
		), broken
	}
}
