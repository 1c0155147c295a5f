package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"cosmossdk.io/log"
	"cosmossdk.io/math"
	"cosmossdk.io/store"
	"cosmossdk.io/store/metrics"
	storetypes "cosmossdk.io/store/types"
	cmtproto "github.com/cometbft/cometbft/proto/tendermint/types"
	dbm "github.com/cosmos/cosmos-db"
	sdk "github.com/cosmos/cosmos-sdk/types"

	custodykeeper "github.com/algoswap/algoswap/x/custody/keeper"
	custodytypes "github.com/algoswap/algoswap/x/custody/types"
	dexkeeper "github.com/algoswap/algoswap/x/dex/keeper"
	dextypes "github.com/algoswap/algoswap/x/dex/types"
)

const (
	// Name is the application name.
	Name = "dexd"

	// DefaultChainID is used when no chain id is configured.
	DefaultChainID = "algoswap-local"
)

// DefaultNodeHome is the default home directory for the application daemon.
var DefaultNodeHome string

func init() {
	userHomeDir, err := os.UserHomeDir()
	if err != nil {
		panic(err)
	}
	DefaultNodeHome = filepath.Join(userHomeDir, ".algoswap")
}

// DexApp owns the multistore and the keepers of the pool engine.
type DexApp struct {
	logger  log.Logger
	db      dbm.DB
	chainID string

	cms  storetypes.CommitMultiStore
	keys map[string]*storetypes.KVStoreKey

	// commits are rare and must not interleave with each other
	commitMu sync.Mutex

	CustodyKeeper custodykeeper.Keeper
	DexKeeper     *dexkeeper.Keeper

	MsgServer   dextypes.MsgServer
	QueryServer dextypes.QueryServer

	invariants *InvariantRegistry
}

// NewDexApp mounts the module stores on db and wires the keepers. Stores are
// plain DB stores so bundles on distinct pairs can write their cache branches
// concurrently; db must be safe for concurrent use.
func NewDexApp(logger log.Logger, db dbm.DB, chainID string) (*DexApp, error) {
	if chainID == "" {
		chainID = DefaultChainID
	}

	keys := map[string]*storetypes.KVStoreKey{
		custodytypes.StoreKey: storetypes.NewKVStoreKey(custodytypes.StoreKey),
		dextypes.StoreKey:     storetypes.NewKVStoreKey(dextypes.StoreKey),
	}

	cms := store.NewCommitMultiStore(db, logger, metrics.NewNoOpMetrics())
	// DB stores write through to db one Set at a time, with no batch per flush
	for _, key := range keys {
		cms.MountStoreWithDB(key, storetypes.StoreTypeDB, nil)
	}
	if err := cms.LoadLatestVersion(); err != nil {
		return nil, fmt.Errorf("NewDexApp: load stores: %w", err)
	}

	app := &DexApp{
		logger:     logger,
		db:         db,
		chainID:    chainID,
		cms:        cms,
		keys:       keys,
		invariants: NewInvariantRegistry(),
	}

	app.CustodyKeeper = custodykeeper.NewKeeper(keys[custodytypes.StoreKey])
	app.DexKeeper = dexkeeper.NewKeeper(keys[dextypes.StoreKey], app.CustodyKeeper)
	app.MsgServer = dexkeeper.NewMsgServerImpl(*app.DexKeeper)
	app.QueryServer = dexkeeper.NewQueryServerImpl(*app.DexKeeper)

	dexkeeper.RegisterInvariants(app.invariants, *app.DexKeeper)

	return app, nil
}

// Logger returns the application logger.
func (app *DexApp) Logger() log.Logger { return app.logger }

// ChainID returns the configured chain id.
func (app *DexApp) ChainID() string { return app.chainID }

// GetKey returns the KVStoreKey for the provided store key.
func (app *DexApp) GetKey(storeKey string) *storetypes.KVStoreKey {
	return app.keys[storeKey]
}

// NewContext returns a context over the latest state. Each call gets its
// own gas meter and event manager.
func (app *DexApp) NewContext() sdk.Context {
	header := cmtproto.Header{
		ChainID: app.chainID,
		Time:    time.Now().UTC(),
	}
	return sdk.NewContext(app.cms, header, false, app.logger)
}

// LastCommitID returns the id of the latest commit.
func (app *DexApp) LastCommitID() storetypes.CommitID {
	app.commitMu.Lock()
	defer app.commitMu.Unlock()
	return app.cms.LastCommitID()
}

// IsFresh reports whether genesis has never been committed.
func (app *DexApp) IsFresh() bool {
	return app.LastCommitID().Version == 0
}

// Commit records a new version of the multistore.
func (app *DexApp) Commit() storetypes.CommitID {
	app.commitMu.Lock()
	defer app.commitMu.Unlock()
	return app.cms.Commit()
}

// CheckInvariants runs every registered invariant against current state.
func (app *DexApp) CheckInvariants() error {
	return app.invariants.Assert(app.NewContext())
}

// Close releases the database.
func (app *DexApp) Close() error {
	return app.db.Close()
}

// Queries returns the read-only dex query surface.
func (app *DexApp) Queries() dextypes.QueryServer { return app.QueryServer }

// ExecuteBundle runs a bundle against the latest state.
func (app *DexApp) ExecuteBundle(ctx context.Context, bundle dextypes.Bundle) (*dextypes.BundleResult, error) {
	return app.DexKeeper.ExecuteBundle(ctx, bundle)
}

// AssetBalance returns an account's custody balance of asset.
func (app *DexApp) AssetBalance(ctx context.Context, account sdk.AccAddress, asset uint64) (math.Int, bool) {
	return app.CustodyKeeper.Balance(ctx, account, asset), app.CustodyKeeper.IsOptedIn(ctx, account, asset)
}
