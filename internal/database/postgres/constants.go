package postgres

// PostgreSQL Error Codes
const (
	// PgErrorCodeUniqueViolation is the PostgreSQL error code for unique constraint violations
	PgErrorCodeUniqueViolation = "23505"
	// PgErrorCodeCheckViolation is raised by CHECK constraints such as the non-negative balance
	PgErrorCodeCheckViolation = "23514"
	// PgErrorCodeNumericOutOfRange is raised when a balance would leave the BIGINT range
	PgErrorCodeNumericOutOfRange = "22003"
)

// Error Messages - Transaction Operations
const (
	ErrMsgFailedToBeginTransaction  = "failed to begin transaction"
	ErrMsgFailedToCommitTransaction = "failed to commit transaction"
)

// Error Messages - Accounts
const (
	ErrMsgFailedToInsertAccount = "failed to insert account"
	ErrMsgFailedToGetAccount    = "failed to get account"
	ErrMsgFailedToUpdateAccount = "failed to update account"
	ErrMsgFailedToListAccounts  = "failed to list accounts"
	ErrMsgFailedToUpdateBalance = "failed to update balance"
	ErrMsgFailedToUpdateRoles   = "failed to update roles"
)

// Error Messages - Sessions and identities
const (
	ErrMsgFailedToUpsertSession    = "failed to upsert session"
	ErrMsgFailedToGetSession       = "failed to get session"
	ErrMsgFailedToDeleteSession    = "failed to delete session"
	ErrMsgFailedToGetIdentity      = "failed to get linked identity"
	ErrMsgFailedToReplaceIdentity  = "failed to replace linked identity"
	ErrMsgFailedToGetExchangeToken = "failed to get exchange token"
	ErrMsgFailedToStoreExchange    = "failed to store exchange token"
)

// Error Messages - Catalog
const (
	ErrMsgFailedToInsertItem  = "failed to insert catalog item"
	ErrMsgFailedToUpdateItem  = "failed to update catalog item"
	ErrMsgFailedToDeleteItem  = "failed to delete catalog item"
	ErrMsgFailedToGetItem     = "failed to get catalog item"
	ErrMsgFailedToListItems   = "failed to list catalog items"
	ErrMsgFailedToMarshal     = "failed to marshal document"
	ErrMsgFailedToUnmarshal   = "failed to unmarshal document"
	ErrMsgFailedToParseAmount = "failed to parse amount"
)

// Error Messages - Ledger and stats
const (
	ErrMsgFailedToInsertTransaction = "failed to insert transaction"
	ErrMsgFailedToGetTransaction    = "failed to get transaction"
	ErrMsgFailedToListTransactions  = "failed to list transactions"
	ErrMsgFailedToCountTransactions = "failed to count transactions"
	ErrMsgFailedToUpdateStatus      = "failed to update transaction status"
	ErrMsgFailedToCheckSession      = "failed to check payment session"
	ErrMsgFailedToQueryStats        = "failed to query statistics"
)
