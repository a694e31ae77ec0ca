package notify

import (
	"time"

	"github.com/saofrance/shop-api/internal/domain"
)

// DefaultSendTimeout bounds one SMTP or webhook delivery
const DefaultSendTimeout = 15 * time.Second

// Mail subjects per template
var subjects = map[domain.MailType]string{
	domain.MailRegistration:          "Bienvenue sur SaoFrance",
	domain.MailProductBuy:            "Confirmation de votre achat",
	domain.MailResetPassword:         "Réinitialisation de votre mot de passe",
	domain.MailChangePasswordSuccess: "Votre mot de passe a été modifié",
}

// Template files per mail type
var templateFiles = map[domain.MailType]string{
	domain.MailRegistration:          "templates/registration.html",
	domain.MailProductBuy:            "templates/product_buy.html",
	domain.MailResetPassword:         "templates/reset_password.html",
	domain.MailChangePasswordSuccess: "templates/change_password_success.html",
}

// ProfilePath is the storefront page linked from mails
const ProfilePath = "/profile"

// Staff feed
const (
	FeedUsername    = "SaoFrance Shop"
	FeedTitle       = "Nouvel achat"
	FeedColor       = 0x2ecc71
	FieldBuyer      = "Joueur"
	FieldGameName   = "Pseudo en jeu"
	FieldProduct    = "Produit"
	FieldCost       = "Prix"
	FieldTxID       = "Transaction"
	NoGameNameValue = "-"
)

// Log messages
const (
	LogMsgMailSent          = "Mail sent"
	LogMsgMailFailed        = "Failed to send mail"
	LogMsgMailDisabled      = "Mail delivery disabled, dropping mail"
	LogMsgFeedSent          = "Staff feed notified"
	LogMsgFeedFailed        = "Failed to notify staff feed"
	LogMsgNotificationQueue = "Notification queue full, dropping notification"
)
