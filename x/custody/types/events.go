package types

// Event types for the custody module
const (
	EventTypeOptIn    = "opt_in"
	EventTypeTransfer = "transfer"
	EventTypeMint     = "mint"

	AttributeKeyAccount  = "account"
	AttributeKeyAsset    = "asset"
	AttributeKeyAmount   = "amount"
	AttributeKeySender   = "sender"
	AttributeKeyReceiver = "receiver"
)
