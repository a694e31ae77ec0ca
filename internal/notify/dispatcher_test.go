package notify

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saofrance/shop-api/internal/domain"
	"github.com/saofrance/shop-api/internal/logger"
	"github.com/saofrance/shop-api/internal/worker"
)

type recordingMailer struct {
	mu         sync.Mutex
	mails      []domain.Mail
	requestIDs []string
	err        error
}

func (r *recordingMailer) Send(ctx context.Context, mail domain.Mail) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.mails = append(r.mails, mail)
	r.requestIDs = append(r.requestIDs, logger.GetRequestID(ctx))
	return r.err
}

func (r *recordingMailer) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.mails)
}

type recordingFeed struct {
	mu      sync.Mutex
	notices []domain.PurchaseNotice
}

func (r *recordingFeed) PurchaseCompleted(_ context.Context, n domain.PurchaseNotice) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notices = append(r.notices, n)
	return nil
}

func (r *recordingFeed) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.notices)
}

func startPool(t *testing.T) *worker.Pool {
	t.Helper()
	pool := worker.NewPool(2, 10)
	pool.Start()
	t.Cleanup(func() { _ = pool.Stop(context.Background()) })
	return pool
}

func TestDispatcher_DeliversInBackground(t *testing.T) {
	mailer := &recordingMailer{}
	feed := &recordingFeed{}
	d := NewDispatcher(startPool(t), mailer, feed)

	ctx := logger.WithRequestID(context.Background(), "req-1")
	d.SendMail(ctx, domain.Mail{Type: domain.MailRegistration, To: "k@example.com"})
	d.PurchaseCompleted(ctx, domain.PurchaseNotice{Transaction: "tx-1"})

	assert.Eventually(t, func() bool { return mailer.count() == 1 && feed.count() == 1 }, time.Second, 10*time.Millisecond)
	mailer.mu.Lock()
	defer mailer.mu.Unlock()
	assert.Equal(t, "req-1", mailer.requestIDs[0])
}

func TestDispatcher_FailureIsSwallowed(t *testing.T) {
	mailer := &recordingMailer{err: errors.New("smtp down")}
	d := NewDispatcher(startPool(t), mailer, nil)

	require.NotPanics(t, func() {
		d.SendMail(context.Background(), domain.Mail{Type: domain.MailRegistration})
		d.PurchaseCompleted(context.Background(), domain.PurchaseNotice{})
	})
	assert.Eventually(t, func() bool { return mailer.count() == 1 }, time.Second, 10*time.Millisecond)
}

func TestDispatcher_StoppedPoolDropsNotifications(t *testing.T) {
	pool := worker.NewPool(1, 1)
	pool.Start()
	require.NoError(t, pool.Stop(context.Background()))

	mailer := &recordingMailer{}
	d := NewDispatcher(pool, mailer, nil)
	d.SendMail(context.Background(), domain.Mail{Type: domain.MailRegistration})

	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, 0, mailer.count())
}
