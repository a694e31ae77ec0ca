package ledger

// AdjustmentProductName labels adjustment entries in listings
const AdjustmentProductName = "Ajustement de points"

// MaxAdjustment bounds the magnitude of a single admin adjustment
const MaxAdjustment int64 = 1_000_000_000

// Log messages
const (
	LogMsgTransactionClaimed = "Transaction claimed"
	LogMsgBalanceAdjusted    = "Balance adjusted"
)
