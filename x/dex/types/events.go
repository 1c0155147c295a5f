package types

// Event types for the DEX module
const (
	EventTypeCreatePool      = "create_pool"
	EventTypeAddLiquidity    = "add_liquidity"
	EventTypeRemoveLiquidity = "remove_liquidity"
	EventTypeSwap            = "swap"
	EventTypeBundle          = "dex_bundle"
)

// Event attribute keys
const (
	AttributeKeyBundleID      = "bundle_id"
	AttributeKeyPairKey       = "pair_key"
	AttributeKeyAssetA        = "asset_a"
	AttributeKeyAssetB        = "asset_b"
	AttributeKeyCreator       = "creator"
	AttributeKeyProvider      = "provider"
	AttributeKeyTrader        = "trader"
	AttributeKeyAmountA       = "amount_a"
	AttributeKeyAmountB       = "amount_b"
	AttributeKeyLpMinted      = "lp_minted"
	AttributeKeyLpBurned      = "lp_burned"
	AttributeKeySentAsset     = "sent_asset"
	AttributeKeyReceivedAsset = "received_asset"
	AttributeKeyAmountIn      = "amount_in"
	AttributeKeyAmountOut     = "amount_out"
	AttributeKeyReserveA      = "reserve_a"
	AttributeKeyReserveB      = "reserve_b"
	AttributeKeyOperation     = "operation"
)
