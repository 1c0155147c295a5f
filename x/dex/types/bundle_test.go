package types

import (
	"bytes"
	"encoding/json"
	"testing"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"
)

var (
	alice = sdk.AccAddress(bytes.Repeat([]byte{0x01}, 20))
	bob   = sdk.AccAddress(bytes.Repeat([]byte{0x02}, 20))
)

func TestBundleValidateBasic(t *testing.T) {
	tests := []struct {
		name    string
		bundle  func() Bundle
		wantErr error
	}{
		{
			name:   "create pool",
			bundle: func() Bundle { return NewCreatePoolBundle(alice, 1, 2) },
		},
		{
			name: "add liquidity in caller order",
			bundle: func() Bundle {
				return NewAddLiquidityBundle(alice, 2, 1, math.NewInt(5), math.NewInt(7))
			},
		},
		{
			name:   "swap",
			bundle: func() Bundle { return NewSwapBundle(alice, 1, 2, 2, math.NewInt(10)) },
		},
		{
			name:   "remove liquidity",
			bundle: func() Bundle { return NewRemoveLiquidityBundle(alice, 1, 2, math.NewInt(10)) },
		},
		{
			name:    "no operation",
			bundle:  func() Bundle { return Bundle{ID: "x"} },
			wantErr: ErrBundleViolation,
		},
		{
			name: "create pool with a leg",
			bundle: func() Bundle {
				b := NewCreatePoolBundle(alice, 1, 2)
				b.Legs = NewSwapBundle(alice, 1, 2, 1, math.NewInt(1)).Legs
				return b
			},
			wantErr: ErrBundleViolation,
		},
		{
			name: "declared amount differs from leg",
			bundle: func() Bundle {
				b := NewAddLiquidityBundle(alice, 1, 2, math.NewInt(5), math.NewInt(7))
				b.Legs[1].Amount = math.NewInt(6)
				return b
			},
			wantErr: ErrBundleViolation,
		},
		{
			name: "swap missing leg",
			bundle: func() Bundle {
				b := NewSwapBundle(alice, 1, 2, 1, math.NewInt(10))
				b.Legs = nil
				return b
			},
			wantErr: ErrBundleViolation,
		},
		{
			name: "swap leg in wrong asset",
			bundle: func() Bundle {
				b := NewSwapBundle(alice, 1, 2, 1, math.NewInt(10))
				b.Legs[0].Asset = 2
				return b
			},
			wantErr: ErrBundleViolation,
		},
		{
			name: "leg sent by someone else",
			bundle: func() Bundle {
				b := NewSwapBundle(alice, 1, 2, 1, math.NewInt(10))
				b.Legs[0].Sender = bob.String()
				return b
			},
			wantErr: ErrBundleViolation,
		},
		{
			name: "leg to wrong escrow",
			bundle: func() Bundle {
				b := NewSwapBundle(alice, 1, 2, 1, math.NewInt(10))
				b.Legs[0].Receiver = EscrowAddress(MustPairKey(1, 3)).String()
				return b
			},
			wantErr: ErrBundleViolation,
		},
		{
			name:    "identical assets",
			bundle:  func() Bundle { return Bundle{Msg: NewMsgCreatePool(alice.String(), 4, 4)} },
			wantErr: ErrInvalidInput,
		},
		{
			name:    "sent asset outside pair",
			bundle:  func() Bundle { return NewSwapBundle(alice, 1, 2, 3, math.NewInt(10)) },
			wantErr: ErrInvalidInput,
		},
		{
			name:    "zero burn",
			bundle:  func() Bundle { return NewRemoveLiquidityBundle(alice, 1, 2, math.ZeroInt()) },
			wantErr: ErrInvalidInput,
		},
		{
			name:    "typed nil message",
			bundle:  func() Bundle { return Bundle{Msg: (*MsgSwap)(nil)} },
			wantErr: ErrBundleViolation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.bundle().ValidateBasic()
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestBundleJSON(t *testing.T) {
	orig := NewAddLiquidityBundle(alice, 1, 2, math.NewInt(5), math.NewInt(7))

	bz, err := json.Marshal(orig)
	require.NoError(t, err)
	require.Contains(t, string(bz), `"type":"add_liquidity"`)

	var decoded Bundle
	require.NoError(t, json.Unmarshal(bz, &decoded))
	require.Equal(t, orig.ID, decoded.ID)
	require.NoError(t, decoded.ValidateBasic())

	msg, ok := decoded.Msg.(*MsgAddLiquidity)
	require.True(t, ok)
	require.True(t, msg.AmountB.Equal(math.NewInt(7)))

	err = json.Unmarshal([]byte(`{"type":"flash_loan","msg":{}}`), &decoded)
	require.ErrorIs(t, err, ErrBundleViolation)

	_, err = json.Marshal(Bundle{Msg: (*MsgRemoveLiquidity)(nil)})
	require.ErrorIs(t, err, ErrBundleViolation)
}

func TestIsNilMsg(t *testing.T) {
	require.True(t, IsNilMsg(nil))
	require.True(t, IsNilMsg((*MsgCreatePool)(nil)))
	require.True(t, IsNilMsg((*MsgAddLiquidity)(nil)))
	require.True(t, IsNilMsg((*MsgRemoveLiquidity)(nil)))
	require.True(t, IsNilMsg((*MsgSwap)(nil)))
	require.False(t, IsNilMsg(NewMsgCreatePool(alice.String(), 1, 2)))
}
