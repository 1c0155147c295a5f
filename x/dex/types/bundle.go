package types

import (
	"encoding/json"
	"fmt"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/google/uuid"
)

// TransferLeg is a custody transfer that travels with a pool operation.
type TransferLeg struct {
	Sender   string   `json:"sender"`
	Receiver string   `json:"receiver"`
	Asset    AssetID  `json:"asset"`
	Amount   math.Int `json:"amount"`
}

// Bundle is one pool operation plus the transfer legs that fund it. A bundle
// is applied completely or not at all.
type Bundle struct {
	ID   string
	Msg  Msg
	Legs []TransferLeg
}

// BundleResult reports what an executed bundle did.
type BundleResult struct {
	BundleID  string     `json:"bundle_id"`
	Type      string     `json:"type"`
	PairKey   PairKey    `json:"pair_key"`
	Pool      Pool       `json:"pool"`
	LpMinted  math.Int   `json:"lp_minted"`
	AmountA   math.Int   `json:"amount_a"`
	AmountB   math.Int   `json:"amount_b"`
	AmountOut math.Int   `json:"amount_out"`
	Events    sdk.Events `json:"events,omitempty"`
}

// NewBundleID returns a fresh random bundle id.
func NewBundleID() string {
	return uuid.NewString()
}

func escrowLeg(sender sdk.AccAddress, a, b, asset AssetID, amount math.Int) TransferLeg {
	return TransferLeg{
		Sender:   sender.String(),
		Receiver: EscrowAddress(MustPairKey(a, b)).String(),
		Asset:    asset,
		Amount:   amount,
	}
}

// NewCreatePoolBundle returns a leg-free pool creation bundle.
func NewCreatePoolBundle(creator sdk.AccAddress, a, b AssetID) Bundle {
	return Bundle{ID: NewBundleID(), Msg: NewMsgCreatePool(creator.String(), a, b)}
}

// NewAddLiquidityBundle returns a deposit bundle with one escrow leg per asset.
func NewAddLiquidityBundle(provider sdk.AccAddress, a, b AssetID, amountA, amountB math.Int) Bundle {
	return Bundle{
		ID:  NewBundleID(),
		Msg: NewMsgAddLiquidity(provider.String(), a, b, amountA, amountB),
		Legs: []TransferLeg{
			escrowLeg(provider, a, b, a, amountA),
			escrowLeg(provider, a, b, b, amountB),
		},
	}
}

// NewRemoveLiquidityBundle returns a leg-free withdrawal bundle.
func NewRemoveLiquidityBundle(provider sdk.AccAddress, a, b AssetID, lpBurn math.Int) Bundle {
	return Bundle{ID: NewBundleID(), Msg: NewMsgRemoveLiquidity(provider.String(), a, b, lpBurn)}
}

// NewSwapBundle returns a swap bundle with its single input leg.
func NewSwapBundle(trader sdk.AccAddress, a, b, sent AssetID, amountIn math.Int) Bundle {
	return Bundle{
		ID:   NewBundleID(),
		Msg:  NewMsgSwap(trader.String(), a, b, sent, amountIn),
		Legs: []TransferLeg{escrowLeg(trader, a, b, sent, amountIn)},
	}
}

// ValidateBasic checks the message and that the legs match its declared
// amounts exactly.
func (b Bundle) ValidateBasic() error {
	if IsNilMsg(b.Msg) {
		return ErrBundleViolation.Wrap("bundle has no operation")
	}
	if err := b.Msg.ValidateBasic(); err != nil {
		return err
	}

	signer := b.Msg.GetSigner()
	assetA, assetB := b.Msg.Pair()
	escrow := EscrowAddress(MustPairKey(assetA, assetB))

	for i, leg := range b.Legs {
		sender, err := sdk.AccAddressFromBech32(leg.Sender)
		if err != nil || !sender.Equals(signer) {
			return ErrBundleViolation.Wrapf("leg %d is not sent by the operation signer", i)
		}
		receiver, err := sdk.AccAddressFromBech32(leg.Receiver)
		if err != nil || !receiver.Equals(escrow) {
			return ErrBundleViolation.Wrapf("leg %d is not received by the pool escrow", i)
		}
		if leg.Amount.IsNil() || leg.Amount.IsNegative() {
			return ErrBundleViolation.Wrapf("leg %d has invalid amount", i)
		}
	}

	switch msg := b.Msg.(type) {
	case *MsgCreatePool, *MsgRemoveLiquidity:
		if len(b.Legs) != 0 {
			return ErrBundleViolation.Wrapf("%s carries no transfers, got %d", msg.Type(), len(b.Legs))
		}
	case *MsgAddLiquidity:
		if len(b.Legs) != 2 {
			return ErrBundleViolation.Wrapf("add_liquidity needs 2 transfers, got %d", len(b.Legs))
		}
		if err := matchLeg(b.Legs, msg.AssetA, msg.AmountA); err != nil {
			return err
		}
		if err := matchLeg(b.Legs, msg.AssetB, msg.AmountB); err != nil {
			return err
		}
	case *MsgSwap:
		if len(b.Legs) != 1 {
			return ErrBundleViolation.Wrapf("swap needs 1 transfer, got %d", len(b.Legs))
		}
		if err := matchLeg(b.Legs, msg.SentAsset, msg.AmountIn); err != nil {
			return err
		}
	default:
		return ErrBundleViolation.Wrapf("unsupported operation %T", b.Msg)
	}
	return nil
}

func matchLeg(legs []TransferLeg, asset AssetID, amount math.Int) error {
	for _, leg := range legs {
		if leg.Asset != asset {
			continue
		}
		if !leg.Amount.Equal(amount) {
			return ErrBundleViolation.Wrapf("transfer of asset %d is %s, declared %s", asset, leg.Amount, amount)
		}
		return nil
	}
	return ErrBundleViolation.Wrapf("missing transfer of asset %d", asset)
}

type bundleJSON struct {
	ID   string          `json:"id"`
	Type string          `json:"type"`
	Msg  json.RawMessage `json:"msg"`
	Legs []TransferLeg   `json:"legs"`
}

// MarshalJSON tags the operation with its type.
func (b Bundle) MarshalJSON() ([]byte, error) {
	if IsNilMsg(b.Msg) {
		return nil, ErrBundleViolation.Wrap("bundle has no operation")
	}
	msg, err := json.Marshal(b.Msg)
	if err != nil {
		return nil, err
	}
	return json.Marshal(bundleJSON{ID: b.ID, Type: b.Msg.Type(), Msg: msg, Legs: b.Legs})
}

// UnmarshalJSON decodes a bundle produced by MarshalJSON.
func (b *Bundle) UnmarshalJSON(bz []byte) error {
	var raw bundleJSON
	if err := json.Unmarshal(bz, &raw); err != nil {
		return err
	}

	var msg Msg
	switch raw.Type {
	case TypeMsgCreatePool:
		msg = &MsgCreatePool{}
	case TypeMsgAddLiquidity:
		msg = &MsgAddLiquidity{}
	case TypeMsgRemoveLiquidity:
		msg = &MsgRemoveLiquidity{}
	case TypeMsgSwap:
		msg = &MsgSwap{}
	default:
		return ErrBundleViolation.Wrapf("unknown operation type %q", raw.Type)
	}
	if err := json.Unmarshal(raw.Msg, msg); err != nil {
		return fmt.Errorf("decode %s: %w", raw.Type, err)
	}

	b.ID = raw.ID
	b.Msg = msg
	b.Legs = raw.Legs
	return nil
}
