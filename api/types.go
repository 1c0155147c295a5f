package api

import (
	"errors"
	"net/http"

	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/math"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
	"github.com/gin-gonic/gin"

	custodytypes "github.com/algoswap/algoswap/x/custody/types"
	dextypes "github.com/algoswap/algoswap/x/dex/types"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

// PoolResponse is one pool with its key.
type PoolResponse struct {
	PairKey dextypes.PairKey `json:"pair_key"`
	Pool    dextypes.Pool    `json:"pool"`
}

// PoolsResponse is a page of pools.
type PoolsResponse struct {
	Pools   []dextypes.Pool   `json:"pools"`
	NextKey *dextypes.PairKey `json:"next_key,omitempty"`
}

// LpBalanceResponse reports an account's shares in a pool.
type LpBalanceResponse struct {
	Account string   `json:"account"`
	Shares  math.Int `json:"shares"`
}

// BalanceResponse reports a custody balance.
type BalanceResponse struct {
	Account string   `json:"account"`
	Asset   uint64   `json:"asset"`
	OptedIn bool     `json:"opted_in"`
	Amount  math.Int `json:"amount"`
}

// statusFor maps engine errors onto HTTP statuses and stable codes.
func statusFor(err error) (int, string) {
	switch {
	case errorsmod.IsOf(err, dextypes.ErrInvalidInput, dextypes.ErrInvalidParams, sdkerrors.ErrInvalidRequest,
		custodytypes.ErrInvalidAmount, custodytypes.ErrInvalidAccount):
		return http.StatusBadRequest, "INVALID_INPUT"
	case errorsmod.IsOf(err, dextypes.ErrBundleViolation, custodytypes.ErrNotOptedIn):
		return http.StatusBadRequest, "BUNDLE_VIOLATION"
	case errors.Is(err, dextypes.ErrNotFound):
		return http.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, dextypes.ErrAlreadyExists):
		return http.StatusConflict, "ALREADY_EXISTS"
	case errorsmod.IsOf(err, dextypes.ErrInsufficientBalance, custodytypes.ErrInsufficientFunds):
		return http.StatusUnprocessableEntity, "INSUFFICIENT_BALANCE"
	case errors.Is(err, dextypes.ErrArithmetic):
		return http.StatusUnprocessableEntity, "ARITHMETIC"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR"
	}
}

func respondError(c *gin.Context, err error) {
	status, code := statusFor(err)
	resp := ErrorResponse{Error: http.StatusText(status), Code: code, Details: err.Error()}
	if status == http.StatusInternalServerError {
		// internal details stay in the log
		resp.Details = ""
		c.Error(err) //nolint:errcheck
	}
	c.JSON(status, resp)
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: msg, Code: "INVALID_INPUT"})
}
