package payment

// MinorUnitExponent is the number of decimals of the shop currency
const MinorUnitExponent = 2

// Checkout metadata keys and redirect paths
const (
	MetadataAccountID     = "account_id"
	MetadataItemID        = "item_id"
	CheckoutSessionHolder = "{CHECKOUT_SESSION_ID}"
	SuccessPath           = "/shop/payment/success"
	CancelPath            = "/shop"
	ListLimit             = "100"
)

// Log messages
const (
	LogMsgCheckoutCreated     = "Checkout session created"
	LogMsgPaymentConfirmed    = "Payment confirmed"
	LogMsgPaymentRejected     = "Payment confirmation rejected"
	LogMsgReconcileStarted    = "Price reconciliation started"
	LogMsgReconcileCompleted  = "Price reconciliation completed"
	LogMsgReconcileItemFailed = "Price reconciliation failed for item"
	LogMsgPriceDrift          = "Stored price differs from processor price"
)
