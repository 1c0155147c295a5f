package keeper

import (
	"context"
	"encoding/json"
	"fmt"

	"cosmossdk.io/math"
	"cosmossdk.io/store/prefix"
	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	"github.com/algoswap/algoswap/x/dex/types"
)

type queryServer struct {
	Keeper
}

const (
	defaultPaginationLimit = 100
	maxPaginationLimit     = 1000
)

// NewQueryServerImpl returns an implementation of the dex QueryServer interface.
// Reads of a single pool hold that pool's read lock, so they never observe a
// bundle half applied.
func NewQueryServerImpl(keeper Keeper) types.QueryServer {
	return &queryServer{Keeper: keeper}
}

var _ types.QueryServer = queryServer{}

// Params returns the module parameters
func (qs queryServer) Params(goCtx context.Context, req *types.QueryParamsRequest) (*types.QueryParamsResponse, error) {
	if req == nil {
		return nil, sdkerrors.ErrInvalidRequest
	}

	params, err := qs.Keeper.GetParams(goCtx)
	if err != nil {
		return nil, fmt.Errorf("Params: get params: %w", err)
	}
	return &types.QueryParamsResponse{Params: params}, nil
}

// PoolExists reports whether the pair has a pool. Identical assets never do.
func (qs queryServer) PoolExists(goCtx context.Context, req *types.QueryPoolRequest) (*types.QueryPoolExistsResponse, error) {
	if req == nil {
		return nil, sdkerrors.ErrInvalidRequest
	}

	pk, err := types.NewPairKey(req.AssetA, req.AssetB)
	if err != nil {
		return &types.QueryPoolExistsResponse{Exists: false}, nil
	}

	unlock := qs.locks.RLock(pairLockKey(pk))
	defer unlock()

	return &types.QueryPoolExistsResponse{Exists: qs.HasPool(goCtx, pk)}, nil
}

// Pool returns the pool of a pair
func (qs queryServer) Pool(goCtx context.Context, req *types.QueryPoolRequest) (*types.QueryPoolResponse, error) {
	if req == nil {
		return nil, sdkerrors.ErrInvalidRequest
	}

	pk, err := types.NewPairKey(req.AssetA, req.AssetB)
	if err != nil {
		return nil, err
	}

	unlock := qs.locks.RLock(pairLockKey(pk))
	defer unlock()

	pool, err := qs.GetPool(goCtx, pk)
	if err != nil {
		return nil, err
	}
	return &types.QueryPoolResponse{PairKey: pk, Pool: *pool}, nil
}

// Pools returns pools in pair key order with pagination
func (qs queryServer) Pools(goCtx context.Context, req *types.QueryPoolsRequest) (*types.QueryPoolsResponse, error) {
	if req == nil {
		return nil, sdkerrors.ErrInvalidRequest
	}

	// Enforce sane pagination defaults and caps to protect against unbounded queries.
	limit := req.Limit
	if limit == 0 {
		limit = defaultPaginationLimit
	}
	if limit > maxPaginationLimit {
		limit = maxPaginationLimit
	}

	var start []byte
	if req.StartAfter != (types.PairKey{}) {
		start = append(req.StartAfter.Bytes(), 0x00)
	}

	ctx := sdk.UnwrapSDKContext(goCtx)
	store := prefix.NewStore(ctx.KVStore(qs.storeKey), types.PoolKey)
	iterator := store.Iterator(start, nil)
	defer iterator.Close()

	resp := &types.QueryPoolsResponse{Pools: []types.Pool{}}
	for ; iterator.Valid(); iterator.Next() {
		if uint64(len(resp.Pools)) == limit {
			next := resp.Pools[len(resp.Pools)-1].PairKey()
			resp.NextKey = &next
			break
		}
		var pool types.Pool
		if err := json.Unmarshal(iterator.Value(), &pool); err != nil {
			return nil, fmt.Errorf("Pools: unmarshal: %w", err)
		}
		resp.Pools = append(resp.Pools, pool)
	}
	return resp, nil
}

// LpBalance returns an account's LP shares, zero for unknown pools or
// accounts.
func (qs queryServer) LpBalance(goCtx context.Context, req *types.QueryLpBalanceRequest) (*types.QueryLpBalanceResponse, error) {
	if req == nil {
		return nil, sdkerrors.ErrInvalidRequest
	}

	account, err := sdk.AccAddressFromBech32(req.Account)
	if err != nil {
		return nil, types.ErrInvalidInput.Wrapf("invalid account: %s", err)
	}
	pk, err := types.NewPairKey(req.AssetA, req.AssetB)
	if err != nil {
		return &types.QueryLpBalanceResponse{Shares: math.ZeroInt()}, nil
	}

	unlock := qs.locks.RLock(pairLockKey(pk))
	defer unlock()

	shares, err := qs.GetLpBalance(goCtx, pk, account)
	if err != nil {
		return nil, err
	}
	return &types.QueryLpBalanceResponse{Shares: shares}, nil
}

// SimulateSwap quotes a trade against current reserves
func (qs queryServer) SimulateSwap(goCtx context.Context, req *types.QuerySimulateSwapRequest) (*types.QuerySimulateSwapResponse, error) {
	if req == nil {
		return nil, sdkerrors.ErrInvalidRequest
	}

	pk, err := types.NewPairKey(req.AssetA, req.AssetB)
	if err != nil {
		return nil, err
	}

	unlock := qs.locks.RLock(pairLockKey(pk))
	defer unlock()

	quote, err := qs.Keeper.SimulateSwap(goCtx, req.AssetA, req.AssetB, req.SentAsset, req.AmountIn)
	if err != nil {
		return nil, err
	}
	return &types.QuerySimulateSwapResponse{Quote: quote}, nil
}
