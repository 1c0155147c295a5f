package types

import (
	"cosmossdk.io/errors"
)

// Custody module sentinel errors
var (
	ErrInvalidAmount     = errors.Register(ModuleName, 1, "invalid amount")
	ErrNotOptedIn        = errors.Register(ModuleName, 2, "account not opted in to asset")
	ErrInsufficientFunds = errors.Register(ModuleName, 3, "insufficient funds")
	ErrInvalidAccount    = errors.Register(ModuleName, 4, "invalid account")
	ErrInvalidGenesis    = errors.Register(ModuleName, 5, "invalid genesis state")
)
