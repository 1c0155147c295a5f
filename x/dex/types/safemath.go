package types

import (
	"math/big"

	"cosmossdk.io/math"
)

// Results must fit the 256-bit range of math.Int; intermediates are unbounded.
var maxIntBound = new(big.Int).Lsh(big.NewInt(1), math.MaxBitLen)

func toInt(v *big.Int) (math.Int, error) {
	if v.Sign() < 0 {
		return math.Int{}, ErrArithmetic.Wrapf("negative result %s", v)
	}
	if v.Cmp(maxIntBound) >= 0 {
		return math.Int{}, ErrArithmetic.Wrap("overflow: result exceeds 256 bits")
	}
	return math.NewIntFromBigInt(v), nil
}

// SafeAdd adds two math.Int values with overflow checking
func SafeAdd(a, b math.Int) (math.Int, error) {
	return toInt(new(big.Int).Add(a.BigInt(), b.BigInt()))
}

// SafeSub subtracts b from a, failing on underflow
func SafeSub(a, b math.Int) (math.Int, error) {
	if a.LT(b) {
		return math.Int{}, ErrArithmetic.Wrapf("underflow: cannot subtract %s from %s", b, a)
	}
	return math.NewIntFromBigInt(new(big.Int).Sub(a.BigInt(), b.BigInt())), nil
}

// SafeMul multiplies two math.Int values with overflow checking
func SafeMul(a, b math.Int) (math.Int, error) {
	return toInt(new(big.Int).Mul(a.BigInt(), b.BigInt()))
}

// SafeMulDiv computes floor(a*b/c) without bounding the intermediate product
func SafeMulDiv(a, b, c math.Int) (math.Int, error) {
	if c.IsZero() {
		return math.Int{}, ErrArithmetic.Wrap("division by zero")
	}
	num := new(big.Int).Mul(a.BigInt(), b.BigInt())
	return toInt(num.Quo(num, c.BigInt()))
}

// SafeSqrtProduct computes floor(sqrt(a*b))
func SafeSqrtProduct(a, b math.Int) (math.Int, error) {
	prod := new(big.Int).Mul(a.BigInt(), b.BigInt())
	return toInt(prod.Sqrt(prod))
}
