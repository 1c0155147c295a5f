package types

import (
	"cosmossdk.io/math"
)

// SwapQuote is the outcome of the constant-product formula for one trade.
type SwapQuote struct {
	SentAsset     AssetID  `json:"sent_asset"`
	ReceivedAsset AssetID  `json:"received_asset"`
	AmountIn      math.Int `json:"amount_in"`
	AmountOut     math.Int `json:"amount_out"`
	NewReserveIn  math.Int `json:"new_reserve_in"`
	NewReserveOut math.Int `json:"new_reserve_out"`
}

// CalculateSwapOut applies the fee-adjusted constant product:
//
//	newReserveOut = floor(reserveIn*reserveOut*feeDen / ((reserveIn+amountIn)*feeNum))
//	amountOut     = reserveOut - newReserveOut
func CalculateSwapOut(reserveIn, reserveOut, amountIn math.Int, params Params) (SwapQuote, error) {
	if amountIn.IsNil() || !amountIn.IsPositive() {
		return SwapQuote{}, ErrInvalidInput.Wrap("swap amount must be positive")
	}
	if !reserveIn.IsPositive() || !reserveOut.IsPositive() {
		return SwapQuote{}, ErrArithmetic.Wrap("pool has no liquidity")
	}

	k, err := SafeMul(reserveIn, reserveOut)
	if err != nil {
		return SwapQuote{}, err
	}
	newReserveIn, err := SafeAdd(reserveIn, amountIn)
	if err != nil {
		return SwapQuote{}, err
	}
	denominator, err := SafeMul(newReserveIn, params.FeeNum())
	if err != nil {
		return SwapQuote{}, err
	}
	newReserveOut, err := SafeMulDiv(k, params.FeeDen(), denominator)
	if err != nil {
		return SwapQuote{}, err
	}

	if newReserveOut.GTE(reserveOut) {
		return SwapQuote{}, ErrInvalidInput.Wrapf("swap of %s yields no output", amountIn)
	}
	if newReserveOut.IsZero() {
		return SwapQuote{}, ErrArithmetic.Wrap("swap would drain the output reserve")
	}

	return SwapQuote{
		AmountIn:      amountIn,
		AmountOut:     reserveOut.Sub(newReserveOut),
		NewReserveIn:  newReserveIn,
		NewReserveOut: newReserveOut,
	}, nil
}

// CalculateInitialShares returns the LP shares minted by the first deposit.
func CalculateInitialShares(amountA, amountB math.Int, params Params) (math.Int, error) {
	if params.BootstrapMode == BootstrapGeometric {
		return SafeSqrtProduct(amountA, amountB)
	}
	return math.NewIntFromUint64(params.BootstrapShares), nil
}

// CalculateLpMint returns min(floor(a*T/Ra), floor(b*T/Rb)) for a pool with
// outstanding supply T.
func CalculateLpMint(amountA, amountB, reserveA, reserveB, totalLp math.Int) (math.Int, error) {
	sharesA, err := SafeMulDiv(amountA, totalLp, reserveA)
	if err != nil {
		return math.Int{}, err
	}
	sharesB, err := SafeMulDiv(amountB, totalLp, reserveB)
	if err != nil {
		return math.Int{}, err
	}
	return math.MinInt(sharesA, sharesB), nil
}

// CalculateWithdrawal returns the pro-rata reserves owed for burning lpBurn shares.
func CalculateWithdrawal(lpBurn, reserveA, reserveB, totalLp math.Int) (math.Int, math.Int, error) {
	amountA, err := SafeMulDiv(reserveA, lpBurn, totalLp)
	if err != nil {
		return math.Int{}, math.Int{}, err
	}
	amountB, err := SafeMulDiv(reserveB, lpBurn, totalLp)
	if err != nil {
		return math.Int{}, math.Int{}, err
	}
	return amountA, amountB, nil
}
