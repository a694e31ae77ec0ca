package notify

import (
	"context"

	"github.com/saofrance/shop-api/internal/domain"
	"github.com/saofrance/shop-api/internal/logger"
	"github.com/saofrance/shop-api/internal/metrics"
	"github.com/saofrance/shop-api/internal/worker"
)

// MailSender is the synchronous mail delivery; implemented by Mailer
type MailSender interface {
	Send(ctx context.Context, mail domain.Mail) error
}

// FeedSender is the synchronous staff feed; implemented by StaffFeed
type FeedSender interface {
	PurchaseCompleted(ctx context.Context, notice domain.PurchaseNotice) error
}

// Dispatcher hands notifications to the worker pool so request handlers never
// wait on SMTP or Discord. Failures are logged and counted, never returned.
type Dispatcher struct {
	pool   *worker.Pool
	mailer MailSender
	feed   FeedSender
}

// NewDispatcher creates a dispatcher; feed may be nil
func NewDispatcher(pool *worker.Pool, mailer MailSender, feed FeedSender) *Dispatcher {
	return &Dispatcher{pool: pool, mailer: mailer, feed: feed}
}

// SendMail queues a transactional mail
func (d *Dispatcher) SendMail(ctx context.Context, mail domain.Mail) {
	if d.mailer == nil {
		return
	}
	d.enqueue(ctx, metrics.ChannelMail, func(jobCtx context.Context) error {
		err := d.mailer.Send(jobCtx, mail)
		if err != nil {
			logger.FromContext(jobCtx).Error(LogMsgMailFailed, "type", mail.Type, "error", err)
		}
		return err
	})
}

// PurchaseCompleted queues the buyer-independent staff notice
func (d *Dispatcher) PurchaseCompleted(ctx context.Context, notice domain.PurchaseNotice) {
	if d.feed == nil {
		return
	}
	d.enqueue(ctx, metrics.ChannelStaffFeed, func(jobCtx context.Context) error {
		err := d.feed.PurchaseCompleted(jobCtx, notice)
		if err != nil {
			logger.FromContext(jobCtx).Error(LogMsgFeedFailed, "transaction_id", notice.Transaction, "error", err)
		}
		return err
	})
}

func (d *Dispatcher) enqueue(ctx context.Context, channel string, send func(context.Context) error) {
	requestID := logger.GetRequestID(ctx)
	job := worker.JobFunc(func(jobCtx context.Context) error {
		if requestID != "" {
			jobCtx = logger.WithRequestID(jobCtx, requestID)
		}
		ctx, cancel := context.WithTimeout(jobCtx, DefaultSendTimeout)
		defer cancel()

		if err := send(ctx); err != nil {
			metrics.Notifications.WithLabelValues(channel, metrics.OutcomeFailure).Inc()
			return nil
		}
		metrics.Notifications.WithLabelValues(channel, metrics.OutcomeSuccess).Inc()
		return nil
	})
	if !d.pool.TryEnqueue(job) {
		logger.FromContext(ctx).Warn(LogMsgNotificationQueue, "channel", channel)
		metrics.Notifications.WithLabelValues(channel, metrics.OutcomeFailure).Inc()
	}
}
