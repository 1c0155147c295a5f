package types

import (
	"context"

	"cosmossdk.io/math"
)

// QueryServer is the read-only surface used by the gateway and other
// read-model consumers.
type QueryServer interface {
	Params(context.Context, *QueryParamsRequest) (*QueryParamsResponse, error)
	PoolExists(context.Context, *QueryPoolRequest) (*QueryPoolExistsResponse, error)
	Pool(context.Context, *QueryPoolRequest) (*QueryPoolResponse, error)
	Pools(context.Context, *QueryPoolsRequest) (*QueryPoolsResponse, error)
	LpBalance(context.Context, *QueryLpBalanceRequest) (*QueryLpBalanceResponse, error)
	SimulateSwap(context.Context, *QuerySimulateSwapRequest) (*QuerySimulateSwapResponse, error)
}

type QueryParamsRequest struct{}

type QueryParamsResponse struct {
	Params Params `json:"params"`
}

// QueryPoolRequest names a pair in either order.
type QueryPoolRequest struct {
	AssetA AssetID `json:"asset_a"`
	AssetB AssetID `json:"asset_b"`
}

type QueryPoolExistsResponse struct {
	Exists bool `json:"exists"`
}

type QueryPoolResponse struct {
	PairKey PairKey `json:"pair_key"`
	Pool    Pool    `json:"pool"`
}

// QueryPoolsRequest pages through pools in pair key order. StartAfter is
// exclusive; the zero key starts at the beginning.
type QueryPoolsRequest struct {
	StartAfter PairKey `json:"start_after"`
	Limit      uint64  `json:"limit"`
}

type QueryPoolsResponse struct {
	Pools   []Pool   `json:"pools"`
	NextKey *PairKey `json:"next_key,omitempty"`
}

type QueryLpBalanceRequest struct {
	AssetA  AssetID `json:"asset_a"`
	AssetB  AssetID `json:"asset_b"`
	Account string  `json:"account"`
}

type QueryLpBalanceResponse struct {
	Shares math.Int `json:"shares"`
}

type QuerySimulateSwapRequest struct {
	AssetA    AssetID  `json:"asset_a"`
	AssetB    AssetID  `json:"asset_b"`
	SentAsset AssetID  `json:"sent_asset"`
	AmountIn  math.Int `json:"amount_in"`
}

type QuerySimulateSwapResponse struct {
	Quote SwapQuote `json:"quote"`
}
