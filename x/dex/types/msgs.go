package types

import (
	sdkerrors "cosmossdk.io/errors"
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// Message kinds, also used as bundle type tags and metric labels.
const (
	TypeMsgCreatePool      = "create_pool"
	TypeMsgAddLiquidity    = "add_liquidity"
	TypeMsgRemoveLiquidity = "remove_liquidity"
	TypeMsgSwap            = "swap"
)

// Msg is a pool operation carried by a bundle.
type Msg interface {
	Type() string
	ValidateBasic() error
	GetSigner() sdk.AccAddress
	Pair() (AssetID, AssetID)
}

// IsNilMsg reports whether msg is nil, including a nil pointer to one of the
// operation types.
func IsNilMsg(msg Msg) bool {
	switch m := msg.(type) {
	case nil:
		return true
	case *MsgCreatePool:
		return m == nil
	case *MsgAddLiquidity:
		return m == nil
	case *MsgRemoveLiquidity:
		return m == nil
	case *MsgSwap:
		return m == nil
	default:
		return false
	}
}

var (
	_ Msg = &MsgCreatePool{}
	_ Msg = &MsgAddLiquidity{}
	_ Msg = &MsgRemoveLiquidity{}
	_ Msg = &MsgSwap{}
)

func validateSigner(field, addr string) error {
	if _, err := sdk.AccAddressFromBech32(addr); err != nil {
		return sdkerrors.Wrapf(ErrInvalidInput, "invalid %s address (%s)", field, err)
	}
	return nil
}

func validatePair(a, b AssetID) error {
	_, err := NewPairKey(a, b)
	return err
}

func validatePositive(field string, amt math.Int) error {
	if amt.IsNil() || !amt.IsPositive() {
		return ErrInvalidInput.Wrapf("%s must be positive", field)
	}
	return nil
}

func mustSigner(addr string) sdk.AccAddress {
	acc, err := sdk.AccAddressFromBech32(addr)
	if err != nil {
		panic(err)
	}
	return acc
}

// MsgCreatePool registers an empty pool for a pair.
type MsgCreatePool struct {
	Creator string  `json:"creator"`
	AssetA  AssetID `json:"asset_a"`
	AssetB  AssetID `json:"asset_b"`
}

// NewMsgCreatePool creates a new MsgCreatePool instance
func NewMsgCreatePool(creator string, assetA, assetB AssetID) *MsgCreatePool {
	return &MsgCreatePool{Creator: creator, AssetA: assetA, AssetB: assetB}
}

func (msg MsgCreatePool) Type() string              { return TypeMsgCreatePool }
func (msg MsgCreatePool) Pair() (AssetID, AssetID)  { return msg.AssetA, msg.AssetB }
func (msg MsgCreatePool) GetSigner() sdk.AccAddress { return mustSigner(msg.Creator) }

// ValidateBasic performs stateless validation
func (msg MsgCreatePool) ValidateBasic() error {
	if err := validateSigner("creator", msg.Creator); err != nil {
		return err
	}
	return validatePair(msg.AssetA, msg.AssetB)
}

// MsgAddLiquidity deposits both assets of a pair. Amounts follow the
// message's asset order, not the canonical one.
type MsgAddLiquidity struct {
	Provider string   `json:"provider"`
	AssetA   AssetID  `json:"asset_a"`
	AssetB   AssetID  `json:"asset_b"`
	AmountA  math.Int `json:"amount_a"`
	AmountB  math.Int `json:"amount_b"`
}

// NewMsgAddLiquidity creates a new MsgAddLiquidity instance
func NewMsgAddLiquidity(provider string, assetA, assetB AssetID, amountA, amountB math.Int) *MsgAddLiquidity {
	return &MsgAddLiquidity{Provider: provider, AssetA: assetA, AssetB: assetB, AmountA: amountA, AmountB: amountB}
}

func (msg MsgAddLiquidity) Type() string              { return TypeMsgAddLiquidity }
func (msg MsgAddLiquidity) Pair() (AssetID, AssetID)  { return msg.AssetA, msg.AssetB }
func (msg MsgAddLiquidity) GetSigner() sdk.AccAddress { return mustSigner(msg.Provider) }

// ValidateBasic performs stateless validation
func (msg MsgAddLiquidity) ValidateBasic() error {
	if err := validateSigner("provider", msg.Provider); err != nil {
		return err
	}
	if err := validatePair(msg.AssetA, msg.AssetB); err != nil {
		return err
	}
	if err := validatePositive("amount a", msg.AmountA); err != nil {
		return err
	}
	return validatePositive("amount b", msg.AmountB)
}

// MsgRemoveLiquidity burns LP shares for a pro-rata share of reserves.
type MsgRemoveLiquidity struct {
	Provider string   `json:"provider"`
	AssetA   AssetID  `json:"asset_a"`
	AssetB   AssetID  `json:"asset_b"`
	LpBurn   math.Int `json:"lp_burn"`
}

// NewMsgRemoveLiquidity creates a new MsgRemoveLiquidity instance
func NewMsgRemoveLiquidity(provider string, assetA, assetB AssetID, lpBurn math.Int) *MsgRemoveLiquidity {
	return &MsgRemoveLiquidity{Provider: provider, AssetA: assetA, AssetB: assetB, LpBurn: lpBurn}
}

func (msg MsgRemoveLiquidity) Type() string              { return TypeMsgRemoveLiquidity }
func (msg MsgRemoveLiquidity) Pair() (AssetID, AssetID)  { return msg.AssetA, msg.AssetB }
func (msg MsgRemoveLiquidity) GetSigner() sdk.AccAddress { return mustSigner(msg.Provider) }

// ValidateBasic performs stateless validation
func (msg MsgRemoveLiquidity) ValidateBasic() error {
	if err := validateSigner("provider", msg.Provider); err != nil {
		return err
	}
	if err := validatePair(msg.AssetA, msg.AssetB); err != nil {
		return err
	}
	if msg.LpBurn.IsNil() || !msg.LpBurn.IsPositive() {
		return ErrInvalidInput.Wrap("LP burn amount must be positive")
	}
	return nil
}

// MsgSwap trades AmountIn of SentAsset for the other asset of the pair.
type MsgSwap struct {
	Trader    string   `json:"trader"`
	AssetA    AssetID  `json:"asset_a"`
	AssetB    AssetID  `json:"asset_b"`
	SentAsset AssetID  `json:"sent_asset"`
	AmountIn  math.Int `json:"amount_in"`
}

// NewMsgSwap creates a new MsgSwap instance
func NewMsgSwap(trader string, assetA, assetB, sentAsset AssetID, amountIn math.Int) *MsgSwap {
	return &MsgSwap{Trader: trader, AssetA: assetA, AssetB: assetB, SentAsset: sentAsset, AmountIn: amountIn}
}

func (msg MsgSwap) Type() string              { return TypeMsgSwap }
func (msg MsgSwap) Pair() (AssetID, AssetID)  { return msg.AssetA, msg.AssetB }
func (msg MsgSwap) GetSigner() sdk.AccAddress { return mustSigner(msg.Trader) }

// ValidateBasic performs stateless validation
func (msg MsgSwap) ValidateBasic() error {
	if err := validateSigner("trader", msg.Trader); err != nil {
		return err
	}
	if err := validatePair(msg.AssetA, msg.AssetB); err != nil {
		return err
	}
	if msg.SentAsset != msg.AssetA && msg.SentAsset != msg.AssetB {
		return ErrInvalidInput.Wrapf("sent asset %d is not in pair %d/%d", msg.SentAsset, msg.AssetA, msg.AssetB)
	}
	return validatePositive("amount in", msg.AmountIn)
}
