package types

import (
	"math/big"
	"testing"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"
)

func TestCalculateSwapOut(t *testing.T) {
	params := DefaultParams()

	tests := []struct {
		name       string
		reserveIn  int64
		reserveOut int64
		amountIn   int64
		wantOut    int64
		wantErr    error
	}{
		{name: "reference trade", reserveIn: 1_000_000, reserveOut: 2_000_000, amountIn: 10_000, wantOut: 13_844},
		{name: "balanced pool", reserveIn: 1_000_000, reserveOut: 1_000_000, amountIn: 100_000, wantOut: 88_174},
		{name: "zero amount", reserveIn: 1_000, reserveOut: 1_000, amountIn: 0, wantErr: ErrInvalidInput},
		{name: "empty pool", reserveIn: 0, reserveOut: 0, amountIn: 10, wantErr: ErrArithmetic},
		{name: "fee exceeds tiny trade", reserveIn: 1_000_000, reserveOut: 1_000_000, amountIn: 1_000, wantErr: ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			quote, err := CalculateSwapOut(math.NewInt(tt.reserveIn), math.NewInt(tt.reserveOut), math.NewInt(tt.amountIn), params)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			requireIntEqual(t, math.NewInt(tt.wantOut), quote.AmountOut)
			requireIntEqual(t, math.NewInt(tt.reserveIn+tt.amountIn), quote.NewReserveIn)
			requireIntEqual(t, math.NewInt(tt.reserveOut-tt.wantOut), quote.NewReserveOut)
		})
	}
}

func TestCalculateSwapOutProductNonDecreasing(t *testing.T) {
	params := DefaultParams()
	rIn, rOut := math.NewInt(123_456_789), math.NewInt(987_654_321)
	for _, amt := range []int64{5_000_000, 77_777_777, 1_000_000_000} {
		quote, err := CalculateSwapOut(rIn, rOut, math.NewInt(amt), params)
		require.NoError(t, err)
		require.True(t, quote.NewReserveIn.Mul(quote.NewReserveOut).GTE(rIn.Mul(rOut)))
	}
}

func TestCalculateInitialShares(t *testing.T) {
	a, b := math.NewInt(1_000_000), math.NewInt(2_000_000)

	shares, err := CalculateInitialShares(a, b, DefaultParams())
	require.NoError(t, err)
	requireIntEqual(t, math.NewInt(1000), shares)

	geometric := DefaultParams()
	geometric.BootstrapMode = BootstrapGeometric
	shares, err = CalculateInitialShares(a, b, geometric)
	require.NoError(t, err)
	requireIntEqual(t, math.NewInt(1_414_213), shares)
}

func TestCalculateLpMint(t *testing.T) {
	// deposit too small to mint a share
	minted, err := CalculateLpMint(math.NewInt(500), math.NewInt(1000), math.NewInt(1_000_000), math.NewInt(2_000_000), math.NewInt(1000))
	require.NoError(t, err)
	requireIntEqual(t, math.NewInt(0), minted)

	minted, err = CalculateLpMint(math.NewInt(100_000), math.NewInt(300_000), math.NewInt(1_000_000), math.NewInt(2_000_000), math.NewInt(1000))
	require.NoError(t, err)
	requireIntEqual(t, math.NewInt(100), minted)

	_, err = CalculateLpMint(math.NewInt(1), math.NewInt(1), math.ZeroInt(), math.NewInt(1), math.NewInt(1))
	require.ErrorIs(t, err, ErrArithmetic)
}

func TestCalculateWithdrawal(t *testing.T) {
	a, b, err := CalculateWithdrawal(math.NewInt(333), math.NewInt(1_000_000), math.NewInt(2_000_000), math.NewInt(1000))
	require.NoError(t, err)
	requireIntEqual(t, math.NewInt(333_000), a)
	requireIntEqual(t, math.NewInt(666_000), b)
}

func TestSafeMathOverflow(t *testing.T) {
	x := math.NewIntFromBigInt(new(big.Int).Lsh(big.NewInt(1), 200))

	_, err := SafeMul(x, x)
	require.ErrorIs(t, err, ErrArithmetic)

	// the intermediate product may exceed 256 bits when the quotient fits
	res, err := SafeMulDiv(x, x, x)
	require.NoError(t, err)
	requireIntEqual(t, x, res)

	_, err = SafeMulDiv(x, x, math.ZeroInt())
	require.ErrorIs(t, err, ErrArithmetic)

	_, err = SafeSub(math.NewInt(1), math.NewInt(2))
	require.ErrorIs(t, err, ErrArithmetic)
}

func requireIntEqual(t *testing.T, want, got math.Int) {
	t.Helper()
	require.True(t, want.Equal(got), "want %s, got %s", want, got)
}
