package domain

// MailType selects the template of a transactional mail
type MailType string

const (
	MailRegistration          MailType = "registration"
	MailProductBuy            MailType = "product_buy"
	MailResetPassword         MailType = "reset_password"
	MailChangePasswordSuccess MailType = "change_password_success"
)

// Mail is a transactional message addressed to one account
type Mail struct {
	Type     MailType
	To       string
	Username string
	// Data is merged into the template next to the common fields
	Data map[string]string
}

// PurchaseNotice describes a completed purchase for staff and buyer notifications
type PurchaseNotice struct {
	AccountID   string
	Username    string
	Email       string
	ProductName string
	Currency    CurrencyKind
	Cost        string
	GameName    string
	Transaction string
}
