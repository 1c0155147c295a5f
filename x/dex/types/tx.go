package types

import (
	"context"

	"cosmossdk.io/math"
)

// MsgServer executes each pool operation as its own bundle.
type MsgServer interface {
	CreatePool(context.Context, *MsgCreatePool) (*MsgCreatePoolResponse, error)
	AddLiquidity(context.Context, *MsgAddLiquidity) (*MsgAddLiquidityResponse, error)
	RemoveLiquidity(context.Context, *MsgRemoveLiquidity) (*MsgRemoveLiquidityResponse, error)
	Swap(context.Context, *MsgSwap) (*MsgSwapResponse, error)
}

// MsgCreatePoolResponse is the reply to MsgCreatePool.
type MsgCreatePoolResponse struct {
	BundleID string  `json:"bundle_id"`
	PairKey  PairKey `json:"pair_key"`
	Pool     Pool    `json:"pool"`
}

// MsgAddLiquidityResponse is the reply to MsgAddLiquidity.
type MsgAddLiquidityResponse struct {
	BundleID string   `json:"bundle_id"`
	LpMinted math.Int `json:"lp_minted"`
}

// MsgRemoveLiquidityResponse is the reply to MsgRemoveLiquidity. Amounts are
// in canonical asset order.
type MsgRemoveLiquidityResponse struct {
	BundleID string   `json:"bundle_id"`
	AmountA  math.Int `json:"amount_a"`
	AmountB  math.Int `json:"amount_b"`
}

// MsgSwapResponse is the reply to MsgSwap.
type MsgSwapResponse struct {
	BundleID  string   `json:"bundle_id"`
	AmountOut math.Int `json:"amount_out"`
}
