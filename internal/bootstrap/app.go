package bootstrap

import (
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/saofrance/shop-api/internal/account"
	"github.com/saofrance/shop-api/internal/auth"
	"github.com/saofrance/shop-api/internal/catalog"
	"github.com/saofrance/shop-api/internal/concurrency"
	"github.com/saofrance/shop-api/internal/config"
	"github.com/saofrance/shop-api/internal/handler"
	"github.com/saofrance/shop-api/internal/identity"
	"github.com/saofrance/shop-api/internal/ledger"
	"github.com/saofrance/shop-api/internal/notify"
	"github.com/saofrance/shop-api/internal/payment"
	"github.com/saofrance/shop-api/internal/scheduler"
	"github.com/saofrance/shop-api/internal/server"
	"github.com/saofrance/shop-api/internal/shop"
	"github.com/saofrance/shop-api/internal/stats"
	"github.com/saofrance/shop-api/internal/worker"
)

// App is the fully wired application
type App struct {
	Server     *server.Server
	Scheduler  *scheduler.Scheduler
	WorkerPool *worker.Pool
	DBPool     *pgxpool.Pool
}

// Build wires repositories, services, background jobs and the HTTP server.
// The worker pool is started; the scheduler already has its jobs registered.
func Build(cfg *config.Config, dbPool *pgxpool.Pool) (*App, error) {
	repos := InitializeRepositories(dbPool)

	pool := worker.NewPool(cfg.WorkerCount, cfg.WorkerQueueSize)
	pool.Start()

	dispatcher, err := newDispatcher(cfg, pool)
	if err != nil {
		return nil, err
	}

	tokens, err := auth.NewTokenService(auth.TokenConfig{
		SessionSecret: cfg.JWTSecret,
		SessionTTL:    cfg.SessionTTL,
		ResetSecret:   cfg.PasswordResetSecret,
		ResetTTL:      cfg.PasswordResetTTL,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgTokenService, err)
	}
	sessions := auth.NewRegistry(repos.Sessions, repos.Accounts, tokens)

	accountService := account.NewService(repos.Accounts, repos.Identities, sessions, tokens, dispatcher, account.Config{
		FrontClientURL: cfg.FrontClientURL,
	})
	catalogService := catalog.NewService(repos.Catalog)
	ledgerService := ledger.NewService(repos.Ledger)
	shopService := shop.NewService(repos.Catalog, repos.Identities, repos.Ledger, dispatcher, accountService)

	if cfg.StripeSecretKey == "" {
		slog.Warn(LogMsgPaymentsDisabled)
	}
	processor := payment.NewStripeProcessor(cfg.StripeSecretKey, cfg.PaymentCurrency, nil)
	paymentService := payment.NewService(processor, repos.Catalog, repos.Ledger, shopService, payment.Config{
		FrontClientURL: cfg.FrontClientURL,
		Currency:       cfg.PaymentCurrency,
		StatusSecret:   cfg.JWTSecret,
	})

	federation := identity.NewClient(identity.Endpoints{
		UserAuthURL:     cfg.XboxUserAuthURL,
		XSTSURL:         cfg.XboxXSTSURL,
		GameServicesURL: cfg.GameServicesURL,
	}, cfg.IdentityTimeout)
	identityService := identity.NewService(federation, repos.Identities, accountService, concurrency.NewLockManager())

	statsService := stats.NewService(repos.Stats)

	sched := scheduler.New(pool)
	sched.Schedule(JobPriceSync, cfg.PriceSyncInterval, payment.NewReconciler(processor, catalogService))

	srv := server.NewServer(server.Options{
		Port:               cfg.Port,
		GameServerAPIKey:   cfg.GameServerAPIKey,
		AllowedOrigins:     cfg.AllowedOrigins,
		TrustedProxies:     cfg.TrustedProxies,
		LoginRatePerMinute: cfg.LoginRatePerMinute,
		Version:            cfg.Version,
		Integrations: handler.Integrations{
			Payments:  cfg.StripeSecretKey != "",
			Mail:      cfg.MailEnabled(),
			StaffFeed: cfg.StaffFeedEnabled(),
		},
	}, dbPool, server.Services{
		Sessions: sessions,
		Tokens:   sessions,
		Accounts: accountService,
		Catalog:  catalogService,
		Ledger:   ledgerService,
		Shop:     shopService,
		Payments: paymentService,
		Identity: identityService,
		Stats:    statsService,
	})

	return &App{
		Server:     srv,
		Scheduler:  sched,
		WorkerPool: pool,
		DBPool:     dbPool,
	}, nil
}

// newDispatcher builds the async notifier. Mail and the staff feed each
// degrade to a no-op when their settings are absent.
func newDispatcher(cfg *config.Config, pool *worker.Pool) (*notify.Dispatcher, error) {
	mailCfg := notify.MailConfig{
		Host:           cfg.SMTPHost,
		Port:           cfg.SMTPPort,
		User:           cfg.SMTPUser,
		Pass:           cfg.SMTPPass,
		From:           cfg.MailFrom,
		FrontClientURL: cfg.FrontClientURL,
		Timeout:        notify.DefaultSendTimeout,
	}

	var sender notify.Sender
	if cfg.MailEnabled() {
		client, err := notify.NewSMTPSender(mailCfg)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgMailer, err)
		}
		sender = client
	} else {
		slog.Warn(LogMsgMailDisabled)
	}

	mailer, err := notify.NewMailer(sender, mailCfg)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgMailer, err)
	}

	if !cfg.StaffFeedEnabled() {
		slog.Warn(LogMsgStaffFeedDisabled)
	}
	feed, err := notify.NewStaffFeed(cfg.DiscordWebhookID, cfg.DiscordWebhookToken)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgStaffFeed, err)
	}

	return notify.NewDispatcher(pool, mailer, feed), nil
}
