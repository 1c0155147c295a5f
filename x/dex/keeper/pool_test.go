package keeper_test

import (
	"testing"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	keepertest "github.com/algoswap/algoswap/testutil/keeper"
	"github.com/algoswap/algoswap/x/dex/types"
)

const (
	assetLow  types.AssetID = 312769
	assetHigh types.AssetID = 31566704
	assetAlt  types.AssetID = 27165954
)

func requireIntEqual(t *testing.T, want, got math.Int) {
	t.Helper()
	require.Truef(t, want.Equal(got), "want %s, got %s", want, got)
}

// TestCreatePool_Valid tests successful pool creation in both argument orders
func TestCreatePool_Valid(t *testing.T) {
	dexApp, ctx := keepertest.DexKeeper(t)
	k := dexApp.DexKeeper
	creator := keepertest.TestAddr(1)

	pool, err := k.CreatePool(ctx, creator, assetHigh, assetLow)
	require.NoError(t, err)
	require.Equal(t, assetLow, pool.AssetA)
	require.Equal(t, assetHigh, pool.AssetB)
	require.True(t, pool.IsEmpty())

	stored, err := k.GetPool(ctx, types.MustPairKey(assetHigh, assetLow))
	require.NoError(t, err)
	require.Equal(t, pool.String(), stored.String())
	require.True(t, k.HasPool(ctx, types.MustPairKey(assetLow, assetHigh)))
}

// TestCreatePool_Duplicate tests rejection regardless of argument order
func TestCreatePool_Duplicate(t *testing.T) {
	dexApp, ctx := keepertest.DexKeeper(t)
	k := dexApp.DexKeeper
	creator := keepertest.TestAddr(1)

	_, err := k.CreatePool(ctx, creator, assetLow, assetHigh)
	require.NoError(t, err)

	_, err = k.CreatePool(ctx, creator, assetLow, assetHigh)
	require.ErrorIs(t, err, types.ErrAlreadyExists)

	_, err = k.CreatePool(ctx, creator, assetHigh, assetLow)
	require.ErrorIs(t, err, types.ErrAlreadyExists)
}

func TestCreatePool_InvalidPair(t *testing.T) {
	dexApp, ctx := keepertest.DexKeeper(t)
	creator := keepertest.TestAddr(1)

	_, err := dexApp.DexKeeper.CreatePool(ctx, creator, assetLow, assetLow)
	require.ErrorIs(t, err, types.ErrInvalidInput)

	_, err = dexApp.DexKeeper.CreatePool(ctx, creator, 0, assetLow)
	require.ErrorIs(t, err, types.ErrInvalidInput)
}

func TestGetPool_NotFound(t *testing.T) {
	dexApp, ctx := keepertest.DexKeeper(t)

	_, err := dexApp.DexKeeper.GetPool(ctx, types.MustPairKey(assetLow, assetHigh))
	require.ErrorIs(t, err, types.ErrNotFound)
}

// TestCreatePoolBundle_EscrowOptIn tests that the escrow can receive both
// assets once the create bundle returns
func TestCreatePoolBundle_EscrowOptIn(t *testing.T) {
	dexApp, ctx := keepertest.DexKeeper(t)
	creator := keepertest.TestAddr(1)

	res, err := dexApp.DexKeeper.ExecuteBundle(ctx, types.NewCreatePoolBundle(creator, assetLow, assetHigh))
	require.NoError(t, err)
	require.NotEmpty(t, res.BundleID)
	require.Equal(t, types.MustPairKey(assetLow, assetHigh), res.PairKey)

	escrow := types.EscrowAddress(res.PairKey)
	require.True(t, dexApp.CustodyKeeper.IsOptedIn(ctx, escrow, uint64(assetLow)))
	require.True(t, dexApp.CustodyKeeper.IsOptedIn(ctx, escrow, uint64(assetHigh)))
}

func TestGetAllPools_KeyOrder(t *testing.T) {
	dexApp, ctx := keepertest.DexKeeper(t)
	k := dexApp.DexKeeper
	creator := keepertest.TestAddr(1)

	pairs := [][2]types.AssetID{{assetLow, assetHigh}, {assetAlt, assetLow}, {assetHigh, assetAlt}}
	for _, p := range pairs {
		_, err := k.CreatePool(ctx, creator, p[0], p[1])
		require.NoError(t, err)
	}

	pools, err := k.GetAllPools(ctx)
	require.NoError(t, err)
	require.Len(t, pools, len(pairs))
	for i := 1; i < len(pools); i++ {
		prev, cur := pools[i-1].PairKey(), pools[i].PairKey()
		require.Less(t, prev.String(), cur.String())
	}
}
