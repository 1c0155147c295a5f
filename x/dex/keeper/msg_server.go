package keeper

import (
	"context"
	"fmt"

	"github.com/algoswap/algoswap/x/dex/types"
)

type msgServer struct {
	Keeper
}

// NewMsgServerImpl returns an implementation of the dex MsgServer interface.
// Each message is wrapped in a bundle whose legs move the declared amounts
// from the signer to the pool escrow.
func NewMsgServerImpl(keeper Keeper) types.MsgServer {
	return &msgServer{Keeper: keeper}
}

var _ types.MsgServer = msgServer{}

// CreatePool handles the creation of a new liquidity pool
func (ms msgServer) CreatePool(goCtx context.Context, msg *types.MsgCreatePool) (*types.MsgCreatePoolResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, fmt.Errorf("CreatePool: validate: %w", err)
	}

	res, err := ms.ExecuteBundle(goCtx, types.NewCreatePoolBundle(msg.GetSigner(), msg.AssetA, msg.AssetB))
	if err != nil {
		return nil, fmt.Errorf("CreatePool: %w", err)
	}

	return &types.MsgCreatePoolResponse{BundleID: res.BundleID, PairKey: res.PairKey, Pool: res.Pool}, nil
}

// AddLiquidity handles adding liquidity to an existing pool
func (ms msgServer) AddLiquidity(goCtx context.Context, msg *types.MsgAddLiquidity) (*types.MsgAddLiquidityResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, fmt.Errorf("AddLiquidity: validate: %w", err)
	}

	bundle := types.NewAddLiquidityBundle(msg.GetSigner(), msg.AssetA, msg.AssetB, msg.AmountA, msg.AmountB)
	res, err := ms.ExecuteBundle(goCtx, bundle)
	if err != nil {
		return nil, fmt.Errorf("AddLiquidity: %w", err)
	}

	return &types.MsgAddLiquidityResponse{BundleID: res.BundleID, LpMinted: res.LpMinted}, nil
}

// RemoveLiquidity handles removing liquidity from a pool
func (ms msgServer) RemoveLiquidity(goCtx context.Context, msg *types.MsgRemoveLiquidity) (*types.MsgRemoveLiquidityResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, fmt.Errorf("RemoveLiquidity: validate: %w", err)
	}

	res, err := ms.ExecuteBundle(goCtx, types.NewRemoveLiquidityBundle(msg.GetSigner(), msg.AssetA, msg.AssetB, msg.LpBurn))
	if err != nil {
		return nil, fmt.Errorf("RemoveLiquidity: %w", err)
	}

	return &types.MsgRemoveLiquidityResponse{BundleID: res.BundleID, AmountA: res.AmountA, AmountB: res.AmountB}, nil
}

// Swap handles token swaps
func (ms msgServer) Swap(goCtx context.Context, msg *types.MsgSwap) (*types.MsgSwapResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, fmt.Errorf("Swap: validate: %w", err)
	}

	bundle := types.NewSwapBundle(msg.GetSigner(), msg.AssetA, msg.AssetB, msg.SentAsset, msg.AmountIn)
	res, err := ms.ExecuteBundle(goCtx, bundle)
	if err != nil {
		return nil, fmt.Errorf("Swap: %w", err)
	}

	return &types.MsgSwapResponse{BundleID: res.BundleID, AmountOut: res.AmountOut}, nil
}
