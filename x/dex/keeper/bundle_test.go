package keeper_test

import (
	"testing"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"

	keepertest "github.com/algoswap/algoswap/testutil/keeper"
	custodytypes "github.com/algoswap/algoswap/x/custody/types"
	"github.com/algoswap/algoswap/x/dex/types"
)

func eventAttr(ev sdk.Event, key string) (string, bool) {
	for _, attr := range ev.Attributes {
		if attr.Key == key {
			return attr.Value, true
		}
	}
	return "", false
}

// TestExecuteBundle_LegMismatch tests that legs disagreeing with the declared
// amounts abort before any transfer
func TestExecuteBundle_LegMismatch(t *testing.T) {
	dexApp, ctx := keepertest.DexKeeper(t)
	lp, trader := keepertest.TestAddr(1), keepertest.TestAddr(2)

	before := keepertest.CreateTestPool(t, dexApp, ctx, lp, assetLow, assetHigh, 1_000_000, 2_000_000)
	keepertest.Fund(t, dexApp, ctx, trader, assetLow, 100_000)
	require.NoError(t, dexApp.CustodyKeeper.OptIn(ctx, trader, uint64(assetHigh)))

	testCases := []struct {
		name   string
		mutate func(b *types.Bundle)
	}{
		{"leg amount below declared", func(b *types.Bundle) { b.Legs[0].Amount = math.NewInt(1) }},
		{"leg to trader", func(b *types.Bundle) { b.Legs[0].Receiver = trader.String() }},
		{"leg from another account", func(b *types.Bundle) { b.Legs[0].Sender = lp.String() }},
		{"leg of other asset", func(b *types.Bundle) { b.Legs[0].Asset = assetHigh }},
		{"missing leg", func(b *types.Bundle) { b.Legs = nil }},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			bundle := types.NewSwapBundle(trader, assetLow, assetHigh, assetLow, math.NewInt(100_000))
			tc.mutate(&bundle)
			_, err := dexApp.DexKeeper.ExecuteBundle(ctx, bundle)
			require.ErrorIs(t, err, types.ErrBundleViolation)
		})
	}

	after, err := dexApp.DexKeeper.GetPool(ctx, before.PairKey())
	require.NoError(t, err)
	require.Equal(t, before.String(), after.String())
	requireIntEqual(t, math.NewInt(100_000), dexApp.CustodyKeeper.Balance(ctx, trader, uint64(assetLow)))
}

// TestExecuteBundle_PayoutFailureRollsBack tests that a failed payout undoes
// the input transfer and the reserve update
func TestExecuteBundle_PayoutFailureRollsBack(t *testing.T) {
	dexApp, ctx := keepertest.DexKeeper(t)
	lp, trader := keepertest.TestAddr(1), keepertest.TestAddr(2)

	before := keepertest.CreateTestPool(t, dexApp, ctx, lp, assetLow, assetHigh, 1_000_000, 2_000_000)
	keepertest.Fund(t, dexApp, ctx, trader, assetLow, 10_000)

	// trader never opted in to the output asset
	ctx = ctx.WithEventManager(sdk.NewEventManager())
	_, err := dexApp.DexKeeper.ExecuteBundle(ctx, types.NewSwapBundle(trader, assetLow, assetHigh, assetLow, math.NewInt(10_000)))
	require.ErrorIs(t, err, custodytypes.ErrNotOptedIn)
	require.Empty(t, ctx.EventManager().Events())

	after, err := dexApp.DexKeeper.GetPool(ctx, before.PairKey())
	require.NoError(t, err)
	require.Equal(t, before.String(), after.String())

	escrow := types.EscrowAddress(before.PairKey())
	requireIntEqual(t, math.NewInt(10_000), dexApp.CustodyKeeper.Balance(ctx, trader, uint64(assetLow)))
	requireIntEqual(t, math.NewInt(1_000_000), dexApp.CustodyKeeper.Balance(ctx, escrow, uint64(assetLow)))
	require.NoError(t, dexApp.CheckInvariants())
}

// TestExecuteBundle_Events tests that a committed bundle forwards its events
// tagged with the bundle id
func TestExecuteBundle_Events(t *testing.T) {
	dexApp, ctx := keepertest.DexKeeper(t)
	provider := keepertest.TestAddr(1)

	_, err := dexApp.DexKeeper.ExecuteBundle(ctx, types.NewCreatePoolBundle(provider, assetLow, assetHigh))
	require.NoError(t, err)
	keepertest.Fund(t, dexApp, ctx, provider, assetLow, 1000)
	keepertest.Fund(t, dexApp, ctx, provider, assetHigh, 1000)

	bundle := types.NewAddLiquidityBundle(provider, assetLow, assetHigh, math.NewInt(1000), math.NewInt(1000))
	bundle.ID = "deposit-1"

	ctx = ctx.WithEventManager(sdk.NewEventManager())
	res, err := dexApp.DexKeeper.ExecuteBundle(ctx, bundle)
	require.NoError(t, err)
	require.Equal(t, "deposit-1", res.BundleID)
	require.Equal(t, types.TypeMsgAddLiquidity, res.Type)

	events := ctx.EventManager().Events()
	require.Equal(t, res.Events, events)

	var sawDeposit, sawBundle bool
	for _, ev := range events {
		switch ev.Type {
		case types.EventTypeAddLiquidity:
			sawDeposit = true
			minted, ok := eventAttr(ev, types.AttributeKeyLpMinted)
			require.True(t, ok)
			require.Equal(t, "1000", minted)
		case types.EventTypeBundle:
			sawBundle = true
			id, _ := eventAttr(ev, types.AttributeKeyBundleID)
			require.Equal(t, "deposit-1", id)
			op, _ := eventAttr(ev, types.AttributeKeyOperation)
			require.Equal(t, types.TypeMsgAddLiquidity, op)
		}
	}
	require.True(t, sawDeposit)
	require.True(t, sawBundle)
}

func TestExecuteBundle_AssignsID(t *testing.T) {
	dexApp, ctx := keepertest.DexKeeper(t)

	bundle := types.NewCreatePoolBundle(keepertest.TestAddr(1), assetLow, assetHigh)
	bundle.ID = ""
	res, err := dexApp.DexKeeper.ExecuteBundle(ctx, bundle)
	require.NoError(t, err)
	require.NotEmpty(t, res.BundleID)
}

func TestExecuteBundle_NilMessage(t *testing.T) {
	dexApp, ctx := keepertest.DexKeeper(t)

	for _, msg := range []types.Msg{nil, (*types.MsgSwap)(nil), (*types.MsgCreatePool)(nil)} {
		require.NotPanics(t, func() {
			_, err := dexApp.DexKeeper.ExecuteBundle(ctx, types.Bundle{Msg: msg})
			require.ErrorIs(t, err, types.ErrBundleViolation)
		})
	}
}

// TestExecuteBundle_MissingPool tests that operations on an uncreated pair
// report the missing pool and leave the sender's funds alone
func TestExecuteBundle_MissingPool(t *testing.T) {
	dexApp, ctx := keepertest.DexKeeper(t)
	trader := keepertest.TestAddr(2)
	keepertest.Fund(t, dexApp, ctx, trader, assetLow, 100_000)

	bundles := []types.Bundle{
		types.NewSwapBundle(trader, assetLow, assetAlt, assetLow, math.NewInt(1000)),
		types.NewAddLiquidityBundle(trader, assetLow, assetAlt, math.NewInt(1000), math.NewInt(1000)),
		types.NewRemoveLiquidityBundle(trader, assetLow, assetAlt, math.NewInt(1)),
	}
	for _, bundle := range bundles {
		_, err := dexApp.DexKeeper.ExecuteBundle(ctx, bundle)
		require.ErrorIs(t, err, types.ErrNotFound)
	}
	requireIntEqual(t, math.NewInt(100_000), dexApp.CustodyKeeper.Balance(ctx, trader, uint64(assetLow)))

	_, err := dexApp.MsgServer.Swap(ctx, types.NewMsgSwap(trader.String(), assetLow, assetAlt, assetLow, math.NewInt(1000)))
	require.ErrorIs(t, err, types.ErrNotFound)
}

// TestMsgServer tests each message handler end to end
func TestMsgServer(t *testing.T) {
	dexApp, ctx := keepertest.DexKeeper(t)
	ms := dexApp.MsgServer
	alice, bob := keepertest.TestAddr(1), keepertest.TestAddr(2)

	createResp, err := ms.CreatePool(ctx, types.NewMsgCreatePool(alice.String(), assetHigh, assetLow))
	require.NoError(t, err)
	require.Equal(t, types.MustPairKey(assetLow, assetHigh), createResp.PairKey)

	_, err = ms.CreatePool(ctx, types.NewMsgCreatePool(bob.String(), assetLow, assetHigh))
	require.ErrorIs(t, err, types.ErrAlreadyExists)

	keepertest.Fund(t, dexApp, ctx, alice, assetLow, 1_000_000)
	keepertest.Fund(t, dexApp, ctx, alice, assetHigh, 2_000_000)
	addResp, err := ms.AddLiquidity(ctx, types.NewMsgAddLiquidity(alice.String(), assetLow, assetHigh, math.NewInt(1_000_000), math.NewInt(2_000_000)))
	require.NoError(t, err)
	requireIntEqual(t, math.NewInt(1000), addResp.LpMinted)

	keepertest.Fund(t, dexApp, ctx, bob, assetLow, 10_000)
	require.NoError(t, dexApp.CustodyKeeper.OptIn(ctx, bob, uint64(assetHigh)))
	swapResp, err := ms.Swap(ctx, types.NewMsgSwap(bob.String(), assetLow, assetHigh, assetLow, math.NewInt(10_000)))
	require.NoError(t, err)
	requireIntEqual(t, math.NewInt(13_844), swapResp.AmountOut)

	removeResp, err := ms.RemoveLiquidity(ctx, types.NewMsgRemoveLiquidity(alice.String(), assetLow, assetHigh, math.NewInt(1000)))
	require.NoError(t, err)
	requireIntEqual(t, math.NewInt(1_010_000), removeResp.AmountA)
	requireIntEqual(t, math.NewInt(1_986_156), removeResp.AmountB)

	_, err = ms.Swap(ctx, &types.MsgSwap{Trader: "not-an-address", AssetA: assetLow, AssetB: assetHigh, SentAsset: assetLow, AmountIn: math.OneInt()})
	require.ErrorIs(t, err, types.ErrInvalidInput)

	require.NoError(t, dexApp.CheckInvariants())
}
