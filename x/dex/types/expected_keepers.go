package types

import (
	"context"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// CustodyKeeper moves asset balances between accounts. Every transfer a pool
// operation needs goes through it, so the enclosing bundle context decides
// whether the transfer is kept.
type CustodyKeeper interface {
	Transfer(ctx context.Context, asset uint64, amount math.Int, from, to sdk.AccAddress) error
	OptIn(ctx context.Context, account sdk.AccAddress, asset uint64) error
	IsOptedIn(ctx context.Context, account sdk.AccAddress, asset uint64) bool
	Balance(ctx context.Context, account sdk.AccAddress, asset uint64) math.Int
}
