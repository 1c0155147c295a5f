package types

import (
	"fmt"

	sdkmath "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// LpPosition is one provider's LP balance in genesis.
type LpPosition struct {
	AssetA   AssetID     `json:"asset_a"`
	AssetB   AssetID     `json:"asset_b"`
	Provider string      `json:"provider"`
	Shares   sdkmath.Int `json:"shares"`
}

// GenesisState is the exported state of the DEX module.
type GenesisState struct {
	Params      Params       `json:"params"`
	Pools       []Pool       `json:"pools"`
	LpPositions []LpPosition `json:"lp_positions"`
}

// DefaultGenesis returns the default genesis state for the DEX module.
func DefaultGenesis() *GenesisState {
	return &GenesisState{
		Params:      DefaultParams(),
		Pools:       []Pool{},
		LpPositions: []LpPosition{},
	}
}

// Validate ensures the genesis state is well-formed.
func (gs GenesisState) Validate() error {
	if err := gs.Params.Validate(); err != nil {
		return err
	}

	supplies := make(map[PairKey]sdkmath.Int, len(gs.Pools))
	for _, pool := range gs.Pools {
		if err := pool.Validate(); err != nil {
			return ErrInvalidGenesis.Wrapf("%s: %s", pool, err)
		}
		pk := pool.PairKey()
		if _, dup := supplies[pk]; dup {
			return ErrInvalidGenesis.Wrapf("duplicate pool %s", pk.Label())
		}
		supplies[pk] = sdkmath.ZeroInt()
	}

	seen := make(map[string]struct{}, len(gs.LpPositions))
	for _, pos := range gs.LpPositions {
		pk, err := NewPairKey(pos.AssetA, pos.AssetB)
		if err != nil {
			return ErrInvalidGenesis.Wrapf("lp position: %s", err)
		}
		sum, ok := supplies[pk]
		if !ok {
			return ErrInvalidGenesis.Wrapf("lp position references unknown pool %s", pk.Label())
		}
		if _, err := sdk.AccAddressFromBech32(pos.Provider); err != nil {
			return ErrInvalidGenesis.Wrapf("lp position provider %q: %s", pos.Provider, err)
		}
		if pos.Shares.IsNil() || !pos.Shares.IsPositive() {
			return ErrInvalidGenesis.Wrapf("lp position %s/%s must hold positive shares", pk.Label(), pos.Provider)
		}
		id := fmt.Sprintf("%s/%s", pk, pos.Provider)
		if _, dup := seen[id]; dup {
			return ErrInvalidGenesis.Wrapf("duplicate lp position %s", id)
		}
		seen[id] = struct{}{}
		supplies[pk] = sum.Add(pos.Shares)
	}

	for _, pool := range gs.Pools {
		if sum := supplies[pool.PairKey()]; !sum.Equal(pool.TotalLpSupply) {
			return ErrInvalidGenesis.Wrapf("pool %d/%d supply %s != sum of positions %s",
				pool.AssetA, pool.AssetB, pool.TotalLpSupply, sum)
		}
	}
	return nil
}
