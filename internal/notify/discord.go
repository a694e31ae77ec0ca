package notify

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/saofrance/shop-api/internal/domain"
	"github.com/saofrance/shop-api/internal/logger"
)

// StaffFeed posts completed purchases to a Discord webhook
type StaffFeed struct {
	session   *discordgo.Session
	webhookID string
	token     string
}

// NewStaffFeed creates the feed. Without a webhook id or token every call is a no-op.
func NewStaffFeed(webhookID, token string) (*StaffFeed, error) {
	if webhookID == "" || token == "" {
		return &StaffFeed{}, nil
	}
	// webhook execution needs no bot token
	s, err := discordgo.New("")
	if err != nil {
		return nil, fmt.Errorf("error creating Discord session: %w", err)
	}
	return &StaffFeed{session: s, webhookID: webhookID, token: token}, nil
}

// Enabled reports whether a webhook is configured
func (f *StaffFeed) Enabled() bool {
	return f.session != nil
}

// PurchaseCompleted posts one purchase
func (f *StaffFeed) PurchaseCompleted(ctx context.Context, notice domain.PurchaseNotice) error {
	if !f.Enabled() {
		return nil
	}
	gameName := notice.GameName
	if gameName == "" {
		gameName = NoGameNameValue
	}

	_, err := f.session.WebhookExecute(f.webhookID, f.token, false, &discordgo.WebhookParams{
		Username: FeedUsername,
		Embeds: []*discordgo.MessageEmbed{{
			Title: FeedTitle,
			Color: FeedColor,
			Fields: []*discordgo.MessageEmbedField{
				{Name: FieldBuyer, Value: notice.Username, Inline: true},
				{Name: FieldGameName, Value: gameName, Inline: true},
				{Name: FieldProduct, Value: notice.ProductName},
				{Name: FieldCost, Value: formatCost(notice), Inline: true},
				{Name: FieldTxID, Value: notice.Transaction, Inline: true},
			},
		}},
	}, discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("%w: discord webhook: %v", domain.ErrUpstreamFailure, err)
	}
	logger.FromContext(ctx).Debug(LogMsgFeedSent, "transaction_id", notice.Transaction)
	return nil
}

func formatCost(n domain.PurchaseNotice) string {
	if n.Currency == domain.CurrencyRealMoney {
		return n.Cost + " €"
	}
	return n.Cost + " points"
}
