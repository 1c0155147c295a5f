package keeper_test

import (
	"testing"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	keepertest "github.com/algoswap/algoswap/testutil/keeper"
	"github.com/algoswap/algoswap/x/dex/types"
)

// TestSwap_ReferenceScenario tests the exact output on a 1e6/2e6 pool
func TestSwap_ReferenceScenario(t *testing.T) {
	dexApp, ctx := keepertest.DexKeeper(t)
	lp, trader := keepertest.TestAddr(1), keepertest.TestAddr(2)

	keepertest.CreateTestPool(t, dexApp, ctx, lp, assetLow, assetHigh, 1_000_000, 2_000_000)
	keepertest.Fund(t, dexApp, ctx, trader, assetLow, 10_000)
	require.NoError(t, dexApp.CustodyKeeper.OptIn(ctx, trader, uint64(assetHigh)))

	res, err := dexApp.DexKeeper.ExecuteBundle(ctx, types.NewSwapBundle(trader, assetLow, assetHigh, assetLow, math.NewInt(10_000)))
	require.NoError(t, err)
	requireIntEqual(t, math.NewInt(13_844), res.AmountOut)
	requireIntEqual(t, math.NewInt(1_010_000), res.Pool.ReserveA)
	requireIntEqual(t, math.NewInt(1_986_156), res.Pool.ReserveB)
	requireIntEqual(t, math.NewInt(1000), res.Pool.TotalLpSupply)

	requireIntEqual(t, math.ZeroInt(), dexApp.CustodyKeeper.Balance(ctx, trader, uint64(assetLow)))
	requireIntEqual(t, math.NewInt(13_844), dexApp.CustodyKeeper.Balance(ctx, trader, uint64(assetHigh)))
	require.NoError(t, dexApp.CheckInvariants())
}

func TestSwap_SendSecondAsset(t *testing.T) {
	dexApp, ctx := keepertest.DexKeeper(t)
	lp, trader := keepertest.TestAddr(1), keepertest.TestAddr(2)

	keepertest.CreateTestPool(t, dexApp, ctx, lp, assetLow, assetHigh, 1_000_000, 2_000_000)
	keepertest.Fund(t, dexApp, ctx, trader, assetHigh, 100_000)
	require.NoError(t, dexApp.CustodyKeeper.OptIn(ctx, trader, uint64(assetLow)))

	res, err := dexApp.DexKeeper.ExecuteBundle(ctx, types.NewSwapBundle(trader, assetHigh, assetLow, assetHigh, math.NewInt(100_000)))
	require.NoError(t, err)
	requireIntEqual(t, math.NewInt(44_754), res.AmountOut)
	requireIntEqual(t, math.NewInt(955_246), res.Pool.ReserveA)
	requireIntEqual(t, math.NewInt(2_100_000), res.Pool.ReserveB)
}

func TestSwap_Errors(t *testing.T) {
	dexApp, ctx := keepertest.DexKeeper(t)
	lp, trader := keepertest.TestAddr(1), keepertest.TestAddr(2)

	before := keepertest.CreateTestPool(t, dexApp, ctx, lp, assetLow, assetHigh, 1_000_000, 2_000_000)
	keepertest.Fund(t, dexApp, ctx, trader, assetLow, 1_000_000)
	keepertest.Fund(t, dexApp, ctx, trader, assetAlt, 1_000_000)
	require.NoError(t, dexApp.CustodyKeeper.OptIn(ctx, trader, uint64(assetHigh)))

	testCases := []struct {
		name    string
		assetA  types.AssetID
		assetB  types.AssetID
		sent    types.AssetID
		amount  int64
		simErr  error
		execErr error
	}{
		{"sent asset outside pair", assetLow, assetHigh, assetAlt, 100_000, types.ErrInvalidInput, types.ErrInvalidInput},
		{"zero amount", assetLow, assetHigh, assetLow, 0, types.ErrInvalidInput, types.ErrInvalidInput},
		{"fee exceeds tiny trade", assetLow, assetHigh, assetLow, 1000, types.ErrInvalidInput, types.ErrInvalidInput},
		{"identical assets", assetLow, assetLow, assetLow, 100_000, types.ErrInvalidInput, types.ErrInvalidInput},
		{"pool not found", assetLow, assetAlt, assetLow, 100_000, types.ErrNotFound, types.ErrNotFound},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := dexApp.DexKeeper.SimulateSwap(ctx, tc.assetA, tc.assetB, tc.sent, math.NewInt(tc.amount))
			require.ErrorIs(t, err, tc.simErr)

			var bundle types.Bundle
			if tc.assetA == tc.assetB {
				bundle = types.Bundle{Msg: types.NewMsgSwap(trader.String(), tc.assetA, tc.assetB, tc.sent, math.NewInt(tc.amount))}
			} else {
				bundle = types.NewSwapBundle(trader, tc.assetA, tc.assetB, tc.sent, math.NewInt(tc.amount))
			}
			_, err = dexApp.DexKeeper.ExecuteBundle(ctx, bundle)
			require.ErrorIs(t, err, tc.execErr)
		})
	}

	after, err := dexApp.DexKeeper.GetPool(ctx, before.PairKey())
	require.NoError(t, err)
	require.Equal(t, before.String(), after.String())
	requireIntEqual(t, math.NewInt(1_000_000), dexApp.CustodyKeeper.Balance(ctx, trader, uint64(assetLow)))
	requireIntEqual(t, math.NewInt(1_000_000), dexApp.CustodyKeeper.Balance(ctx, trader, uint64(assetAlt)))
}

func TestSwap_EmptyPool(t *testing.T) {
	dexApp, ctx := keepertest.DexKeeper(t)
	trader := keepertest.TestAddr(2)

	_, err := dexApp.DexKeeper.ExecuteBundle(ctx, types.NewCreatePoolBundle(trader, assetLow, assetHigh))
	require.NoError(t, err)

	_, err = dexApp.DexKeeper.SimulateSwap(ctx, assetLow, assetHigh, assetLow, math.NewInt(10_000))
	require.ErrorIs(t, err, types.ErrArithmetic)
}

// TestSimulateSwap_MatchesExecution tests that a quote predicts the trade
func TestSimulateSwap_MatchesExecution(t *testing.T) {
	dexApp, ctx := keepertest.DexKeeper(t)
	lp, trader := keepertest.TestAddr(1), keepertest.TestAddr(2)

	keepertest.CreateTestPool(t, dexApp, ctx, lp, assetLow, assetHigh, 5_000_000, 7_000_000)
	keepertest.Fund(t, dexApp, ctx, trader, assetHigh, 250_000)
	require.NoError(t, dexApp.CustodyKeeper.OptIn(ctx, trader, uint64(assetLow)))

	quote, err := dexApp.DexKeeper.SimulateSwap(ctx, assetLow, assetHigh, assetHigh, math.NewInt(250_000))
	require.NoError(t, err)
	require.Equal(t, assetLow, quote.ReceivedAsset)

	res, err := dexApp.DexKeeper.ExecuteBundle(ctx, types.NewSwapBundle(trader, assetLow, assetHigh, assetHigh, math.NewInt(250_000)))
	require.NoError(t, err)
	requireIntEqual(t, quote.AmountOut, res.AmountOut)
	requireIntEqual(t, quote.NewReserveOut, res.Pool.ReserveA)
}
