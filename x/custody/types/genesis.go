package types

import (
	"fmt"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// Balance is one opted-in (account, asset) holding.
type Balance struct {
	Account string   `json:"account"`
	Asset   uint64   `json:"asset"`
	Amount  math.Int `json:"amount"`
}

// GenesisState is the exported state of the custody ledger.
type GenesisState struct {
	Balances []Balance `json:"balances"`
}

// DefaultGenesis returns an empty ledger.
func DefaultGenesis() *GenesisState {
	return &GenesisState{Balances: []Balance{}}
}

// Validate ensures the genesis state is well-formed.
func (gs GenesisState) Validate() error {
	seen := make(map[string]struct{}, len(gs.Balances))
	for _, b := range gs.Balances {
		if _, err := sdk.AccAddressFromBech32(b.Account); err != nil {
			return ErrInvalidGenesis.Wrapf("balance account %q: %s", b.Account, err)
		}
		if b.Asset == 0 {
			return ErrInvalidGenesis.Wrapf("balance of %s has zero asset id", b.Account)
		}
		if b.Amount.IsNil() || b.Amount.IsNegative() {
			return ErrInvalidGenesis.Wrapf("balance of %s in asset %d is negative", b.Account, b.Asset)
		}
		id := fmt.Sprintf("%d/%s", b.Asset, b.Account)
		if _, dup := seen[id]; dup {
			return ErrInvalidGenesis.Wrapf("duplicate balance %s", id)
		}
		seen[id] = struct{}{}
	}
	return nil
}
