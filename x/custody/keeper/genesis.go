package keeper

import (
	"context"
	"fmt"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/algoswap/algoswap/x/custody/types"
)

// InitGenesis loads balances into the store.
func (k Keeper) InitGenesis(ctx context.Context, genState types.GenesisState) error {
	if err := genState.Validate(); err != nil {
		return err
	}
	for _, b := range genState.Balances {
		account, err := sdk.AccAddressFromBech32(b.Account)
		if err != nil {
			return fmt.Errorf("InitGenesis: %w", err)
		}
		if err := k.setBalance(ctx, account, b.Asset, b.Amount); err != nil {
			return fmt.Errorf("InitGenesis: %w", err)
		}
	}
	return nil
}

// ExportGenesis dumps every opted-in balance.
func (k Keeper) ExportGenesis(ctx context.Context) *types.GenesisState {
	gs := types.DefaultGenesis()
	k.IterateBalances(ctx, func(account sdk.AccAddress, asset uint64, amount math.Int) bool {
		gs.Balances = append(gs.Balances, types.Balance{Account: account.String(), Asset: asset, Amount: amount})
		return false
	})
	return gs
}
