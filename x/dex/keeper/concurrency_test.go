package keeper_test

import (
	"sync"
	"testing"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	keepertest "github.com/algoswap/algoswap/testutil/keeper"
	"github.com/algoswap/algoswap/x/dex/types"
)

// TestConcurrentBundles_SamePair tests that parallel swaps and deposits on
// one pool serialize without losing updates
func TestConcurrentBundles_SamePair(t *testing.T) {
	dexApp, ctx := keepertest.DexKeeper(t)
	lp := keepertest.TestAddr(0)
	pool := keepertest.CreateTestPool(t, dexApp, ctx, lp, assetLow, assetHigh, 10_000_000, 20_000_000)

	const workers = 12
	for i := 1; i <= workers; i++ {
		trader := keepertest.TestAddr(i)
		keepertest.Fund(t, dexApp, ctx, trader, assetLow, 1_000_000)
		keepertest.Fund(t, dexApp, ctx, trader, assetHigh, 1_000_000)
	}

	var wg sync.WaitGroup
	errs := make(chan error, workers*4)
	for i := 1; i <= workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			trader := keepertest.TestAddr(i)
			for j := 0; j < 4; j++ {
				wctx := dexApp.NewContext()
				var bundle types.Bundle
				switch (i + j) % 3 {
				case 0:
					bundle = types.NewSwapBundle(trader, assetLow, assetHigh, assetLow, math.NewInt(50_000))
				case 1:
					bundle = types.NewSwapBundle(trader, assetHigh, assetLow, assetHigh, math.NewInt(80_000))
				default:
					bundle = types.NewAddLiquidityBundle(trader, assetLow, assetHigh, math.NewInt(100_000), math.NewInt(100_000))
				}
				if _, err := dexApp.DexKeeper.ExecuteBundle(wctx, bundle); err != nil {
					errs <- err
				}
			}
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	require.NoError(t, dexApp.CheckInvariants())

	after, err := dexApp.DexKeeper.GetPool(ctx, pool.PairKey())
	require.NoError(t, err)
	escrow := types.EscrowAddress(pool.PairKey())
	requireIntEqual(t, after.ReserveA, dexApp.CustodyKeeper.Balance(ctx, escrow, uint64(assetLow)))
	requireIntEqual(t, after.ReserveB, dexApp.CustodyKeeper.Balance(ctx, escrow, uint64(assetHigh)))

	// every unit of both assets is still accounted for
	totalA, totalB := after.ReserveA, after.ReserveB
	for i := 0; i <= workers; i++ {
		totalA = totalA.Add(dexApp.CustodyKeeper.Balance(ctx, keepertest.TestAddr(i), uint64(assetLow)))
		totalB = totalB.Add(dexApp.CustodyKeeper.Balance(ctx, keepertest.TestAddr(i), uint64(assetHigh)))
	}
	requireIntEqual(t, math.NewInt(10_000_000+workers*1_000_000), totalA)
	requireIntEqual(t, math.NewInt(20_000_000+workers*1_000_000), totalB)
}

// TestConcurrentBundles_DistinctPairs tests bundles on unrelated pools
// running side by side
func TestConcurrentBundles_DistinctPairs(t *testing.T) {
	dexApp, ctx := keepertest.DexKeeper(t)

	const pairs = 8
	base := types.AssetID(1000)
	for i := 0; i < pairs; i++ {
		a, b := base+types.AssetID(2*i), base+types.AssetID(2*i+1)
		keepertest.CreateTestPool(t, dexApp, ctx, keepertest.TestAddr(100+i), a, b, 1_000_000, 1_000_000)
		keepertest.Fund(t, dexApp, ctx, keepertest.TestAddr(200+i), a, 500_000)
		require.NoError(t, dexApp.CustodyKeeper.OptIn(ctx, keepertest.TestAddr(200+i), uint64(b)))
	}

	var wg sync.WaitGroup
	errs := make(chan error, pairs*5)
	for i := 0; i < pairs; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			a, b := base+types.AssetID(2*i), base+types.AssetID(2*i+1)
			trader := keepertest.TestAddr(200 + i)
			for j := 0; j < 5; j++ {
				_, err := dexApp.DexKeeper.ExecuteBundle(dexApp.NewContext(), types.NewSwapBundle(trader, a, b, a, math.NewInt(40_000)))
				if err != nil {
					errs <- err
				}
				if _, err := dexApp.QueryServer.Pool(dexApp.NewContext(), &types.QueryPoolRequest{AssetA: a, AssetB: b}); err != nil {
					errs <- err
				}
			}
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	require.NoError(t, dexApp.CheckInvariants())
	pools, err := dexApp.DexKeeper.GetAllPools(ctx)
	require.NoError(t, err)
	require.Len(t, pools, pairs)
	for _, p := range pools {
		requireIntEqual(t, math.NewInt(1_200_000), p.ReserveA)
	}
}
