package shop

// Keys of the product_buy mail data
const (
	MailKeyProductName = "product_name"
	MailKeyCost        = "cost"
	MailKeyCurrency    = "currency"
	MailKeyTransaction = "transaction_id"
)

// Log messages
const (
	LogMsgPointsPurchase   = "Points purchase completed"
	LogMsgPaymentRecorded  = "Payment recorded"
	LogMsgPurchaseRejected = "Purchase rejected"
)
