package keeper

import (
	"context"
	"fmt"

	"cosmossdk.io/log"
	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/algoswap/algoswap/x/dex/types"
)

// Keeper of the dex store
type Keeper struct {
	storeKey      storetypes.StoreKey
	custodyKeeper types.CustodyKeeper
	locks         *lockTable
	metrics       *DEXMetrics
}

// NewKeeper creates a new dex Keeper instance
func NewKeeper(key storetypes.StoreKey, custodyKeeper types.CustodyKeeper) *Keeper {
	return &Keeper{
		storeKey:      key,
		custodyKeeper: custodyKeeper,
		locks:         newLockTable(),
		metrics:       NewDEXMetrics(),
	}
}

// Logger returns a module-specific logger.
func (k Keeper) Logger(ctx context.Context) log.Logger {
	return sdk.UnwrapSDKContext(ctx).Logger().With("module", fmt.Sprintf("x/%s", types.ModuleName))
}

// getStore returns the KVStore for the dex module
func (k Keeper) getStore(ctx context.Context) storetypes.KVStore {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	return sdkCtx.KVStore(k.storeKey)
}
