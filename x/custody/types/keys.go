package types

import (
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/cosmos-sdk/types/address"
)

const (
	// ModuleName defines the module name
	ModuleName = "custody"

	// StoreKey defines the primary module store key
	StoreKey = ModuleName
)

// BalanceKey prefixes balances by asset then account. A present key marks
// the account as opted in to the asset.
var BalanceKey = []byte{0x01}

// GetAssetBalancesPrefix returns the prefix of every balance of one asset
func GetAssetBalancesPrefix(asset uint64) []byte {
	key := make([]byte, 0, len(BalanceKey)+8)
	key = append(key, BalanceKey...)
	return append(key, sdk.Uint64ToBigEndian(asset)...)
}

// GetBalanceKey returns the store key for one (asset, account) balance
func GetBalanceKey(asset uint64, account sdk.AccAddress) []byte {
	return append(GetAssetBalancesPrefix(asset), address.MustLengthPrefix(account)...)
}

// SplitBalanceKey extracts the asset and account from a balance key.
func SplitBalanceKey(key []byte) (uint64, sdk.AccAddress, bool) {
	offset := len(BalanceKey)
	if len(key) < offset+9 {
		return 0, nil, false
	}
	asset := sdk.BigEndianToUint64(key[offset : offset+8])
	rest := key[offset+8:]
	if len(rest) != 1+int(rest[0]) {
		return 0, nil, false
	}
	return asset, sdk.AccAddress(rest[1:]), true
}
