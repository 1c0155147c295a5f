package keeper

import (
	"context"
	"fmt"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/algoswap/algoswap/x/dex/types"
)

// InitGenesis initializes the dex module's state from a genesis state.
func (k Keeper) InitGenesis(ctx context.Context, genState types.GenesisState) error {
	if err := genState.Validate(); err != nil {
		return fmt.Errorf("InitGenesis: %w", err)
	}
	if err := k.SetParams(ctx, genState.Params); err != nil {
		return fmt.Errorf("InitGenesis: params: %w", err)
	}

	for _, pool := range genState.Pools {
		if err := k.setPool(ctx, pool); err != nil {
			return fmt.Errorf("InitGenesis: pool %s: %w", pool.PairKey().Label(), err)
		}
		if err := k.EnsureEscrowOptIn(ctx, pool.PairKey()); err != nil {
			return fmt.Errorf("InitGenesis: %w", err)
		}
	}

	for _, pos := range genState.LpPositions {
		provider, err := sdk.AccAddressFromBech32(pos.Provider)
		if err != nil {
			return fmt.Errorf("InitGenesis: provider: %w", err)
		}
		if err := k.setLpBalance(ctx, types.MustPairKey(pos.AssetA, pos.AssetB), provider, pos.Shares); err != nil {
			return fmt.Errorf("InitGenesis: lp position: %w", err)
		}
	}
	return nil
}

// ExportGenesis returns the dex module's exported genesis.
func (k Keeper) ExportGenesis(ctx context.Context) (*types.GenesisState, error) {
	params, err := k.GetParams(ctx)
	if err != nil {
		return nil, err
	}
	pools, err := k.GetAllPools(ctx)
	if err != nil {
		return nil, err
	}

	positions := []types.LpPosition{}
	err = k.IterateAllLpBalances(ctx, func(pk types.PairKey, provider sdk.AccAddress, shares math.Int) bool {
		a, b := pk.Assets()
		positions = append(positions, types.LpPosition{AssetA: a, AssetB: b, Provider: provider.String(), Shares: shares})
		return false
	})
	if err != nil {
		return nil, err
	}

	return &types.GenesisState{Params: params, Pools: pools, LpPositions: positions}, nil
}
