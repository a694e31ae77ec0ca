package catalog

// Log messages
const (
	LogMsgItemCreated      = "Catalog item created"
	LogMsgItemUpdated      = "Catalog item updated"
	LogMsgItemRemoved      = "Catalog item removed"
	LogMsgItemPriceUpdated = "Catalog item price updated"
)
