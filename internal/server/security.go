package server

import (
	"log/slog"
	"net"
	"net/http"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/saofrance/shop-api/internal/logger"
)

// RequestSizeLimitMiddleware limits request body size
func RequestSizeLimitMiddleware(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			next.ServeHTTP(w, r)
		})
	}
}

type ipActivity struct {
	requests   int
	failedAuth int
}

// SuspiciousActivityDetector counts requests and rejected credentials per
// client IP over a fixed DetectorWindow
type SuspiciousActivityDetector struct {
	mu          sync.Mutex
	byIP        map[string]*ipActivity
	windowStart time.Time
	now         func() time.Time
}

func NewSuspiciousActivityDetector() *SuspiciousActivityDetector {
	return &SuspiciousActivityDetector{
		byIP:        make(map[string]*ipActivity),
		windowStart: time.Now(),
		now:         time.Now,
	}
}

// activity returns the counters of ip, starting a new window first when the
// current one has elapsed. Caller must hold the mutex.
func (s *SuspiciousActivityDetector) activity(ip string) *ipActivity {
	if now := s.now(); now.Sub(s.windowStart) > DetectorWindow {
		clear(s.byIP)
		s.windowStart = now
	}
	a, ok := s.byIP[ip]
	if !ok {
		a = &ipActivity{}
		s.byIP[ip] = a
	}
	return a
}

// RecordFailedAuth counts a 401/403 answer and returns the count for ip in
// the current window
func (s *SuspiciousActivityDetector) RecordFailedAuth(ip string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	a := s.activity(ip)
	a.failedAuth++
	if a.failedAuth >= FailedAuthAlertCount {
		slog.Warn(SecurityAlertFailedAuth, "ip", ip, "count", a.failedAuth)
	}
	return a.failedAuth
}

// RecordRequest counts a request and reports whether ip is still under
// MaxRequestsPerWindow
func (s *SuspiciousActivityDetector) RecordRequest(ip string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	a := s.activity(ip)
	a.requests++
	if a.requests <= MaxRequestsPerWindow {
		return true
	}
	if a.requests%HighRateLogEveryNthHit == 0 {
		slog.Warn(SecurityAlertHighRate, "ip", ip, "count_in_window", a.requests)
	}
	return false
}

func (s *SuspiciousActivityDetector) counts(ip string) (requests, failedAuth int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if a, ok := s.byIP[ip]; ok {
		return a.requests, a.failedAuth
	}
	return 0, 0
}

// AbuseDetectionMiddleware rejects clients over the per-IP request ceiling
// and feeds 401/403 answers back into the detector
func AbuseDetectionMiddleware(trustedProxies []string, detector *SuspiciousActivityDetector) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := extractIP(r, trustedProxies)
			if !detector.RecordRequest(ip) {
				http.Error(w, ErrMsgTooManyRequests, http.StatusTooManyRequests)
				return
			}

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			switch status := ww.Status(); status {
			case http.StatusUnauthorized, http.StatusForbidden:
				count := detector.RecordFailedAuth(ip)
				logger.FromContext(r.Context()).Debug(LogMsgRequestRejected,
					"ip", ip,
					"path", r.URL.Path,
					"status", status,
					"failures_in_window", count)
			}
		})
	}
}

// extractIP returns the client address. X-Forwarded-For is only honoured when
// the direct peer is a trusted proxy, and then its rightmost hop is used.
func extractIP(r *http.Request, trustedProxies []string) string {
	remoteIP, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		remoteIP = r.RemoteAddr
	}
	if !slices.Contains(trustedProxies, remoteIP) {
		return remoteIP
	}

	forwarded := r.Header.Get(HeaderForwardedFor)
	if forwarded == "" {
		return remoteIP
	}
	hops := strings.Split(forwarded, ",")
	return strings.TrimSpace(hops[len(hops)-1])
}

// SecurityHeadersMiddleware adds security headers to responses
func SecurityHeadersMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			h.Set(HeaderContentType, HeaderValueNoSniff)
			h.Set(HeaderFrameOptions, HeaderValueDeny)
			h.Set(HeaderXSSProtection, HeaderValueXSSBlock)
			h.Set(HeaderReferrerPolicy, HeaderValueReferrerStrictOrigin)
			// API payloads carry session tokens and balances
			if strings.HasPrefix(r.URL.Path, APIPrefix) {
				h.Set(HeaderCacheControl, HeaderValueNoStore)
			}

			next.ServeHTTP(w, r)
		})
	}
}
