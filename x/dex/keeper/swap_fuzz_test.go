package keeper_test

import (
	"errors"
	"testing"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	keepertest "github.com/algoswap/algoswap/testutil/keeper"
	"github.com/algoswap/algoswap/x/dex/types"
)

// FuzzSwap executes a single swap against a freshly seeded pool and checks
// reserves against the custody ledger
func FuzzSwap(f *testing.F) {
	f.Add(int64(1_000_000), int64(2_000_000), int64(10_000))
	f.Add(int64(1_000_000_000), int64(2_000_000_000), int64(10_000_000))
	f.Add(int64(1), int64(1), int64(1))
	f.Add(int64(1<<40), int64(3), int64(1<<41))

	f.Fuzz(func(t *testing.T, reserveA, reserveB, amountIn int64) {
		if reserveA <= 0 || reserveB <= 0 || amountIn <= 0 {
			return
		}
		if reserveA > 1<<60 || reserveB > 1<<60 || amountIn > 1<<60 {
			return
		}

		dexApp, ctx := keepertest.DexKeeper(t)
		lp, trader := keepertest.TestAddr(1), keepertest.TestAddr(2)
		pool := keepertest.CreateTestPool(t, dexApp, ctx, lp, assetLow, assetHigh, reserveA, reserveB)
		keepertest.Fund(t, dexApp, ctx, trader, assetLow, amountIn)
		require.NoError(t, dexApp.CustodyKeeper.OptIn(ctx, trader, uint64(assetHigh)))

		res, err := dexApp.DexKeeper.ExecuteBundle(ctx, types.NewSwapBundle(trader, assetLow, assetHigh, assetLow, math.NewInt(amountIn)))
		if err != nil {
			require.True(t, errors.Is(err, types.ErrInvalidInput) || errors.Is(err, types.ErrArithmetic), err.Error())
			after, gerr := dexApp.DexKeeper.GetPool(ctx, pool.PairKey())
			require.NoError(t, gerr)
			require.Equal(t, pool.String(), after.String())
			return
		}

		require.True(t, res.AmountOut.IsPositive())
		require.True(t, res.AmountOut.LT(pool.ReserveB))
		requireIntEqual(t, pool.ReserveA.AddRaw(amountIn), res.Pool.ReserveA)
		requireIntEqual(t, pool.ReserveB.Sub(res.AmountOut), res.Pool.ReserveB)
		requireIntEqual(t, res.AmountOut, dexApp.CustodyKeeper.Balance(ctx, trader, uint64(assetHigh)))
		require.NoError(t, dexApp.CheckInvariants())
	})
}
