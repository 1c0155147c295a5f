package types

import (
	"fmt"

	"cosmossdk.io/math"
)

// Pool is the reserve record of one asset pair.
type Pool struct {
	AssetA        AssetID  `json:"asset_a"`
	AssetB        AssetID  `json:"asset_b"`
	ReserveA      math.Int `json:"reserve_a"`
	ReserveB      math.Int `json:"reserve_b"`
	TotalLpSupply math.Int `json:"total_lp_supply"`
}

// NewPool returns an empty pool for the pair in canonical order.
func NewPool(a, b AssetID) Pool {
	lo, hi := CanonicalOrder(a, b)
	return Pool{
		AssetA:        lo,
		AssetB:        hi,
		ReserveA:      math.ZeroInt(),
		ReserveB:      math.ZeroInt(),
		TotalLpSupply: math.ZeroInt(),
	}
}

// PairKey returns the pool's store key.
func (p Pool) PairKey() PairKey {
	return MustPairKey(p.AssetA, p.AssetB)
}

// HasAsset reports whether asset is one side of the pool.
func (p Pool) HasAsset(asset AssetID) bool {
	return asset == p.AssetA || asset == p.AssetB
}

// Reserves returns (reserveIn, reserveOut) for a trade that sends sent.
func (p Pool) Reserves(sent AssetID) (math.Int, math.Int, error) {
	switch sent {
	case p.AssetA:
		return p.ReserveA, p.ReserveB, nil
	case p.AssetB:
		return p.ReserveB, p.ReserveA, nil
	default:
		return math.Int{}, math.Int{}, ErrInvalidInput.Wrapf("asset %d is not in pool %d/%d", sent, p.AssetA, p.AssetB)
	}
}

// Other returns the asset on the opposite side of asset.
func (p Pool) Other(asset AssetID) AssetID {
	if asset == p.AssetA {
		return p.AssetB
	}
	return p.AssetA
}

// IsEmpty reports whether no LP shares are outstanding.
func (p Pool) IsEmpty() bool {
	return p.TotalLpSupply.IsZero()
}

// Validate checks the record-local invariants.
func (p Pool) Validate() error {
	if p.AssetA == 0 || p.AssetB == 0 {
		return ErrInvalidInput.Wrap("asset id must be positive")
	}
	if p.AssetA >= p.AssetB {
		return ErrInvalidInput.Wrapf("assets %d/%d are not in canonical order", p.AssetA, p.AssetB)
	}
	if p.ReserveA.IsNil() || p.ReserveB.IsNil() || p.TotalLpSupply.IsNil() {
		return ErrInvalidInput.Wrap("pool amounts must be set")
	}
	if p.ReserveA.IsNegative() || p.ReserveB.IsNegative() || p.TotalLpSupply.IsNegative() {
		return ErrArithmetic.Wrap("pool amounts cannot be negative")
	}
	if p.TotalLpSupply.IsPositive() && (!p.ReserveA.IsPositive() || !p.ReserveB.IsPositive()) {
		return ErrInvariantViolation.Wrapf("pool %d/%d has LP supply %s with reserves %s/%s",
			p.AssetA, p.AssetB, p.TotalLpSupply, p.ReserveA, p.ReserveB)
	}
	return nil
}

func (p Pool) String() string {
	return fmt.Sprintf("pool %d/%d reserves=%s/%s lp=%s", p.AssetA, p.AssetB, p.ReserveA, p.ReserveB, p.TotalLpSupply)
}
