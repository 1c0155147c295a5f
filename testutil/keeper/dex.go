package keeper

import (
	"fmt"
	"testing"

	"cosmossdk.io/log"
	"cosmossdk.io/math"
	dbm "github.com/cosmos/cosmos-db"
	"github.com/cosmos/cosmos-sdk/crypto/keys/secp256k1"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"

	"github.com/algoswap/algoswap/app"
	"github.com/algoswap/algoswap/x/dex/types"
)

// DexApp creates an application over an in-memory database with default
// genesis committed.
func DexApp(t testing.TB) *app.DexApp {
	t.Helper()

	dexApp, err := app.NewDexApp(log.NewNopLogger(), dbm.NewMemDB(), "")
	require.NoError(t, err)
	require.NoError(t, dexApp.InitChain(app.NewDefaultGenesisState()))
	t.Cleanup(func() { _ = dexApp.Close() })
	return dexApp
}

// DexKeeper creates a test app and returns its dex keeper and a fresh context.
func DexKeeper(t testing.TB) (*app.DexApp, sdk.Context) {
	t.Helper()

	dexApp := DexApp(t)
	return dexApp, dexApp.NewContext()
}

// TestAddr returns a deterministic account address for index i.
func TestAddr(i int) sdk.AccAddress {
	return sdk.AccAddress(secp256k1.GenPrivKeyFromSecret([]byte(fmt.Sprintf("algoswap-test-%d", i))).PubKey().Address())
}

// Fund mints amount of asset to account.
func Fund(t testing.TB, dexApp *app.DexApp, ctx sdk.Context, account sdk.AccAddress, asset types.AssetID, amount int64) {
	t.Helper()
	require.NoError(t, dexApp.CustodyKeeper.Mint(ctx, account, uint64(asset), math.NewInt(amount)))
}

// CreateTestPool creates the pair and seeds it with the given reserves from
// provider, funding provider first. Amounts follow the argument order.
func CreateTestPool(t testing.TB, dexApp *app.DexApp, ctx sdk.Context, provider sdk.AccAddress, assetA, assetB types.AssetID, amountA, amountB int64) types.Pool {
	t.Helper()

	_, err := dexApp.DexKeeper.ExecuteBundle(ctx, types.NewCreatePoolBundle(provider, assetA, assetB))
	require.NoError(t, err)
	return Deposit(t, dexApp, ctx, provider, assetA, assetB, amountA, amountB)
}

// Deposit funds provider and adds the amounts to an existing pool.
func Deposit(t testing.TB, dexApp *app.DexApp, ctx sdk.Context, provider sdk.AccAddress, assetA, assetB types.AssetID, amountA, amountB int64) types.Pool {
	t.Helper()

	Fund(t, dexApp, ctx, provider, assetA, amountA)
	Fund(t, dexApp, ctx, provider, assetB, amountB)

	res, err := dexApp.DexKeeper.ExecuteBundle(ctx,
		types.NewAddLiquidityBundle(provider, assetA, assetB, math.NewInt(amountA), math.NewInt(amountB)))
	require.NoError(t, err)
	return res.Pool
}
