package types

import (
	"fmt"

	"cosmossdk.io/math"
)

const (
	// BootstrapFixed mints a constant number of shares on first deposit.
	BootstrapFixed = "fixed"
	// BootstrapGeometric mints floor(sqrt(amountA*amountB)) shares on first deposit.
	BootstrapGeometric = "geometric"
)

// Default parameter values
const (
	DefaultFeeNumerator    uint64 = 997
	DefaultFeeDenominator  uint64 = 1000
	DefaultBootstrapShares uint64 = 1000
)

// Params defines the parameters for the dex module.
type Params struct {
	FeeNumerator    uint64 `json:"fee_numerator"`
	FeeDenominator  uint64 `json:"fee_denominator"`
	BootstrapShares uint64 `json:"bootstrap_shares"`
	BootstrapMode   string `json:"bootstrap_mode"`
}

// DefaultParams returns default parameters
func DefaultParams() Params {
	return Params{
		FeeNumerator:    DefaultFeeNumerator,
		FeeDenominator:  DefaultFeeDenominator,
		BootstrapShares: DefaultBootstrapShares,
		BootstrapMode:   BootstrapFixed,
	}
}

// Validate validates the params
func (p Params) Validate() error {
	if p.FeeDenominator == 0 {
		return ErrInvalidParams.Wrap("fee denominator cannot be zero")
	}
	if p.FeeNumerator == 0 || p.FeeNumerator > p.FeeDenominator {
		return ErrInvalidParams.Wrapf("fee numerator must be in (0, %d], got %d", p.FeeDenominator, p.FeeNumerator)
	}
	switch p.BootstrapMode {
	case BootstrapFixed:
		if p.BootstrapShares == 0 {
			return ErrInvalidParams.Wrap("bootstrap shares must be positive")
		}
	case BootstrapGeometric:
	default:
		return ErrInvalidParams.Wrapf("unknown bootstrap mode %q", p.BootstrapMode)
	}
	return nil
}

// FeeNum returns the fee numerator as math.Int.
func (p Params) FeeNum() math.Int { return math.NewIntFromUint64(p.FeeNumerator) }

// FeeDen returns the fee denominator as math.Int.
func (p Params) FeeDen() math.Int { return math.NewIntFromUint64(p.FeeDenominator) }

func (p Params) String() string {
	return fmt.Sprintf("fee=%d/%d bootstrap=%s(%d)", p.FeeNumerator, p.FeeDenominator, p.BootstrapMode, p.BootstrapShares)
}
