package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/saofrance/shop-api/internal/account"
	"github.com/saofrance/shop-api/internal/auth"
	"github.com/saofrance/shop-api/internal/catalog"
	"github.com/saofrance/shop-api/internal/database"
	"github.com/saofrance/shop-api/internal/domain"
	"github.com/saofrance/shop-api/internal/handler"
	"github.com/saofrance/shop-api/internal/identity"
	"github.com/saofrance/shop-api/internal/ledger"
	"github.com/saofrance/shop-api/internal/logger"
	"github.com/saofrance/shop-api/internal/metrics"
	"github.com/saofrance/shop-api/internal/payment"
	"github.com/saofrance/shop-api/internal/shop"
	"github.com/saofrance/shop-api/internal/stats"
)

// Options configures the HTTP layer
type Options struct {
	Port               int
	GameServerAPIKey   string
	AllowedOrigins     []string
	TrustedProxies     []string
	LoginRatePerMinute int
	Version            string
	Integrations       handler.Integrations
}

// Services are the application services exposed over HTTP
type Services struct {
	Sessions handler.SessionManager
	Tokens   auth.Validator
	Accounts account.Service
	Catalog  catalog.Service
	Ledger   ledger.Service
	Shop     shop.Service
	Payments payment.Service
	Identity identity.Service
	Stats    stats.Service
}

type Server struct {
	httpServer *http.Server
	dbPool     database.Pool
}

// NewServer builds the router and wraps it in an http.Server
func NewServer(opts Options, dbPool database.Pool, svc Services) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", opts.Port),
			Handler:           NewRouter(opts, dbPool, svc),
			ReadHeaderTimeout: ReadHeaderTimeout,
		},
		dbPool: dbPool,
	}
}

// NewRouter wires middleware and routes
func NewRouter(opts Options, dbPool database.Pool, svc Services) http.Handler {
	r := chi.NewRouter()

	// Chi middleware executes in order defined (outermost to innermost)
	detector := NewSuspiciousActivityDetector()
	loginLimiter := NewLoginRateLimiter(opts.LoginRatePerMinute, opts.TrustedProxies)

	r.Use(loggingMiddleware)
	r.Use(middleware.Recoverer)
	r.Use(SecurityHeadersMiddleware())
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", HeaderAuthorization, "Content-Type", HeaderAPIKey},
		ExposedHeaders:   []string{HeaderRequestID},
		AllowCredentials: true,
		MaxAge:           CORSMaxAgeSeconds,
	}))
	r.Use(AbuseDetectionMiddleware(opts.TrustedProxies, detector))
	r.Use(RequestSizeLimitMiddleware(MaxBodyBytes))
	r.Use(metrics.Middleware)

	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(dbPool, opts.Integrations))
	r.Get("/version", handler.HandleVersion(opts.Version))
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	requireAuth := auth.RequireAuth(svc.Tokens)
	catalogManagers := auth.RequireRoles(domain.CatalogManagers...)
	accountManagers := auth.RequireRoles(domain.AccountManagers...)

	r.Route(APIPrefix, func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.With(loginLimiter.Middleware).Post("/login", handler.HandleLogin(svc.Sessions))
			r.With(requireAuth).Post("/logout", handler.HandleLogout(svc.Sessions))
		})

		r.Route("/users", func(r chi.Router) {
			r.Post("/", handler.HandleRegister(svc.Accounts))
			r.With(loginLimiter.Middleware).Post("/password/forgot", handler.HandleForgotPassword(svc.Accounts))
			r.With(loginLimiter.Middleware).Post("/password/reset", handler.HandleResetPassword(svc.Accounts))

			r.Group(func(r chi.Router) {
				r.Use(requireAuth)
				r.Put("/", handler.HandleUpdateAccount(svc.Accounts))
				r.Get("/profile", handler.HandleGetPrivateProfile(svc.Accounts))
				r.Get("/profile/{id}", handler.HandleGetPublicProfile(svc.Accounts))
				r.Post("/identity/link", handler.HandleLinkIdentity(svc.Identity))
				r.Get("/identity", handler.HandleGetIdentity(svc.Identity))
				r.With(accountManagers).Get("/", handler.HandleListAccounts(svc.Accounts))
			})
		})

		r.Route("/admin/accounts/{id}", func(r chi.Router) {
			r.Use(requireAuth)
			r.With(accountManagers).Post("/points", handler.HandleAdjustPoints(svc.Ledger))
			r.Group(func(r chi.Router) {
				r.Use(auth.RequireRoles(domain.RoleAdmin))
				r.Post("/roles", handler.HandleGrantRole(svc.Accounts))
				r.Delete("/roles/{role}", handler.HandleRevokeRole(svc.Accounts))
			})
		})

		r.Route("/shop", func(r chi.Router) {
			r.Route("/products", func(r chi.Router) {
				r.With(auth.OptionalAuth(svc.Tokens)).Get("/", handler.HandleListProducts(svc.Catalog))
				r.Get("/{id}", handler.HandleGetProduct(svc.Catalog))
				r.With(requireAuth).Post("/{id}/pay", handler.HandlePurchaseWithPoints(svc.Shop))

				r.Group(func(r chi.Router) {
					r.Use(requireAuth, catalogManagers)
					r.Post("/", handler.HandleCreateProduct(svc.Catalog))
					r.Put("/{id}", handler.HandleEditProduct(svc.Catalog))
					r.Delete("/{id}", handler.HandleRemoveProduct(svc.Catalog))
				})
			})

			r.Route("/claims", func(r chi.Router) {
				r.Use(auth.RequireAPIKey(opts.GameServerAPIKey))
				r.Get("/", handler.HandleListClaims(svc.Ledger))
				r.Post("/{id}", handler.HandleClaim(svc.Ledger))
			})
		})

		r.Route("/payments", func(r chi.Router) {
			r.Get("/products", handler.HandleListPaymentProducts(svc.Payments))
			r.Get("/prices/active", handler.HandleListActivePrices(svc.Payments))
			r.Get("/prices/{id}", handler.HandleGetPrice(svc.Payments))
			r.With(requireAuth).Get("/checkout/{productId}", handler.HandleCheckout(svc.Payments))
			r.With(requireAuth).Post("/confirm/{productId}", handler.HandleConfirmPayment(svc.Payments))
		})

		r.Route("/transactions", func(r chi.Router) {
			r.Use(requireAuth)
			r.Get("/", handler.HandleListMyTransactions(svc.Ledger))
			r.Group(func(r chi.Router) {
				r.Use(accountManagers)
				r.Get("/all", handler.HandleListAllTransactions(svc.Ledger))
				r.Get("/page", handler.HandleListTransactionPage(svc.Ledger))
				r.Get("/{id}", handler.HandleGetTransaction(svc.Ledger))
			})
		})

		r.With(requireAuth, auth.RequireRoles(domain.StatisticsViewers...)).
			Get("/statistics/admin", handler.HandleAdminStats(svc.Stats))
	})

	return r
}

func isQuietPath(path string) bool {
	for _, p := range QuietPaths {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		requestID := r.Header.Get(HeaderRequestID)
		if requestID == "" {
			requestID = logger.GenerateRequestID()
		}
		w.Header().Set(HeaderRequestID, requestID)

		ctx := logger.WithRequestID(r.Context(), requestID)
		r = r.WithContext(ctx)

		if isQuietPath(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		log := logger.FromContext(ctx)
		log.Info(LogMsgRequestStarted,
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"content_length", r.ContentLength,
			"user_agent", r.UserAgent())

		sanitizedHeaders := make(http.Header)
		for k, v := range r.Header {
			if strings.EqualFold(k, HeaderAPIKey) || strings.EqualFold(k, HeaderAuthorization) {
				sanitizedHeaders[k] = []string{RedactedValue}
			} else {
				sanitizedHeaders[k] = v
			}
		}
		log.Debug(LogMsgRequestHeaders, "headers", sanitizedHeaders)

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		duration := time.Since(start)
		log.Info(LogMsgRequestCompleted,
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration_ms", duration.Milliseconds())
	})
}

// Start starts the server
func (s *Server) Start() error {
	slog.Default().Info(LogMsgServerStarting, "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
