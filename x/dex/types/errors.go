package types

import (
	"cosmossdk.io/errors"
)

// DEX module sentinel errors
var (
	ErrInvalidInput        = errors.Register(ModuleName, 1, "invalid input")
	ErrNotFound            = errors.Register(ModuleName, 2, "pool not found")
	ErrAlreadyExists       = errors.Register(ModuleName, 3, "pool already exists")
	ErrInsufficientBalance = errors.Register(ModuleName, 4, "insufficient LP balance")
	ErrBundleViolation     = errors.Register(ModuleName, 5, "bundle violation")
	ErrArithmetic          = errors.Register(ModuleName, 6, "arithmetic error")
	ErrInvalidParams       = errors.Register(ModuleName, 7, "invalid params")
	ErrInvariantViolation  = errors.Register(ModuleName, 8, "invariant violation")
	ErrInvalidGenesis      = errors.Register(ModuleName, 9, "invalid genesis state")
)
