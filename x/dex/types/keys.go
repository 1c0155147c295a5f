package types

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"strconv"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/cosmos-sdk/types/address"
)

const (
	// ModuleName defines the module name
	ModuleName = "dex"

	// StoreKey defines the primary module store key
	StoreKey = ModuleName
)

// Store key prefixes
var (
	PoolKey      = []byte{0x01} // prefix for pool records by pair key
	LiquidityKey = []byte{0x02} // prefix for LP balances by pair key and account
	ParamsKey    = []byte{0x03} // key for module params
)

// PairKeyLength is the byte length of a PairKey.
const PairKeyLength = 16

// AssetID identifies a fungible asset held by the custody layer.
type AssetID uint64

// String returns the decimal form of the id.
func (a AssetID) String() string {
	return strconv.FormatUint(uint64(a), 10)
}

// ParseAssetID parses a decimal asset id.
func ParseAssetID(s string) (AssetID, error) {
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, ErrInvalidInput.Wrapf("invalid asset id %q", s)
	}
	return AssetID(v), nil
}

// PairKey is the canonical key of an unordered asset pair: the big-endian
// encoding of the smaller asset id followed by that of the larger one.
type PairKey [PairKeyLength]byte

// NewPairKey returns the order-independent key for the pair (a, b).
func NewPairKey(a, b AssetID) (PairKey, error) {
	var pk PairKey
	if a == b {
		return pk, ErrInvalidInput.Wrapf("identical assets %d", a)
	}
	if a == 0 || b == 0 {
		return pk, ErrInvalidInput.Wrap("asset id must be positive")
	}
	lo, hi := CanonicalOrder(a, b)
	binary.BigEndian.PutUint64(pk[:8], uint64(lo))
	binary.BigEndian.PutUint64(pk[8:], uint64(hi))
	return pk, nil
}

// MustPairKey is NewPairKey for inputs known to be valid.
func MustPairKey(a, b AssetID) PairKey {
	pk, err := NewPairKey(a, b)
	if err != nil {
		panic(err)
	}
	return pk
}

// ParsePairKey decodes the hex form produced by PairKey.String.
func ParsePairKey(s string) (PairKey, error) {
	var pk PairKey
	bz, err := hex.DecodeString(s)
	if err != nil || len(bz) != PairKeyLength {
		return pk, ErrInvalidInput.Wrapf("invalid pair key %q", s)
	}
	copy(pk[:], bz)
	a, b := pk.Assets()
	if a >= b || a == 0 {
		return pk, ErrInvalidInput.Wrapf("pair key %q is not canonical", s)
	}
	return pk, nil
}

// CanonicalOrder returns the two ids smaller first.
func CanonicalOrder(a, b AssetID) (AssetID, AssetID) {
	if a > b {
		return b, a
	}
	return a, b
}

// Assets decodes the canonical (smaller, larger) pair.
func (pk PairKey) Assets() (AssetID, AssetID) {
	return AssetID(binary.BigEndian.Uint64(pk[:8])), AssetID(binary.BigEndian.Uint64(pk[8:]))
}

// Bytes returns a copy of the key bytes.
func (pk PairKey) Bytes() []byte {
	bz := make([]byte, PairKeyLength)
	copy(bz, pk[:])
	return bz
}

func (pk PairKey) String() string {
	return hex.EncodeToString(pk[:])
}

// MarshalText encodes the key as hex for JSON.
func (pk PairKey) MarshalText() ([]byte, error) {
	return []byte(pk.String()), nil
}

// UnmarshalText decodes a hex key.
func (pk *PairKey) UnmarshalText(text []byte) error {
	parsed, err := ParsePairKey(string(text))
	if err != nil {
		return err
	}
	*pk = parsed
	return nil
}

// Label is the human readable "a/b" form used in logs and metrics.
func (pk PairKey) Label() string {
	a, b := pk.Assets()
	return fmt.Sprintf("%d/%d", a, b)
}

// GetPoolKey returns the store key for a pool record
func GetPoolKey(pk PairKey) []byte {
	key := make([]byte, 0, len(PoolKey)+PairKeyLength)
	key = append(key, PoolKey...)
	return append(key, pk[:]...)
}

// GetPoolLiquidityPrefix returns the prefix of every LP balance of one pool
func GetPoolLiquidityPrefix(pk PairKey) []byte {
	key := make([]byte, 0, len(LiquidityKey)+PairKeyLength)
	key = append(key, LiquidityKey...)
	return append(key, pk[:]...)
}

// GetLiquidityKey returns the store key for an LP balance
func GetLiquidityKey(pk PairKey, provider sdk.AccAddress) []byte {
	return append(GetPoolLiquidityPrefix(pk), address.MustLengthPrefix(provider)...)
}

// SplitLiquidityKey extracts the pair key and provider from an LP balance key.
func SplitLiquidityKey(key []byte) (PairKey, sdk.AccAddress, error) {
	var pk PairKey
	offset := len(LiquidityKey)
	if len(key) < offset+PairKeyLength+1 {
		return pk, nil, fmt.Errorf("liquidity key too short: %d", len(key))
	}
	copy(pk[:], key[offset:offset+PairKeyLength])
	rest := key[offset+PairKeyLength:]
	addrLen := int(rest[0])
	if len(rest) != 1+addrLen {
		return pk, nil, fmt.Errorf("liquidity key has malformed address length %d", addrLen)
	}
	return pk, sdk.AccAddress(rest[1:]), nil
}

// EscrowAddress is the custody account that backs a pool's reserves.
func EscrowAddress(pk PairKey) sdk.AccAddress {
	return sdk.AccAddress(address.Module(ModuleName, pk[:]))
}
