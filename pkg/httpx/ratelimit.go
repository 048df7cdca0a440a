package httpx

import (
	"net"
	"net/http"
	"net/netip"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/aussiebroadwan/handoff/pkg/slogx"
	"golang.org/x/time/rate"
)

// RateLimitConfig defines the rate limiting parameters.
type RateLimitConfig struct {
	// RequestsPerWindow is the number of requests allowed in the time window
	RequestsPerWindow int
	// Window is the time window for rate limiting
	Window time.Duration
	// Burst allows for temporary bursts above the rate limit
	Burst int
}

// RateLimits groups the profiles the router hands out per endpoint class.
type RateLimits struct {
	// Strict guards anonymous redemption and secret reveal.
	Strict RateLimitConfig
	// Moderate guards authenticated mutations.
	Moderate RateLimitConfig
	// Lenient guards authenticated reads and health checks.
	Lenient RateLimitConfig
	// Public guards cheap public endpoints.
	Public RateLimitConfig
	// TrustedProxies are the peers whose forwarding headers are believed.
	// Empty means the client is always the TCP peer.
	TrustedProxies []netip.Prefix
}

// DefaultRateLimits returns the production profiles.
func DefaultRateLimits() RateLimits {
	return RateLimits{
		Strict:   RateLimitConfig{RequestsPerWindow: 5, Window: time.Minute, Burst: 5},
		Moderate: RateLimitConfig{RequestsPerWindow: 20, Window: time.Minute, Burst: 20},
		Lenient:  RateLimitConfig{RequestsPerWindow: 100, Window: time.Minute, Burst: 100},
		Public:   RateLimitConfig{RequestsPerWindow: 1000, Window: time.Minute, Burst: 1000},
	}
}

// RateLimitsFromEnv overlays RATELIMIT_{STRICT,MODERATE,LENIENT,PUBLIC}_*
// variables on the defaults.
func RateLimitsFromEnv(getenv func(string) string) RateLimits {
	l := DefaultRateLimits()
	l.Strict = ParseRateLimitFromEnv(getenv, "STRICT", l.Strict)
	l.Moderate = ParseRateLimitFromEnv(getenv, "MODERATE", l.Moderate)
	l.Lenient = ParseRateLimitFromEnv(getenv, "LENIENT", l.Lenient)
	l.Public = ParseRateLimitFromEnv(getenv, "PUBLIC", l.Public)
	l.TrustedProxies = ParseTrustedProxies(getenv("RATELIMIT_TRUSTED_PROXIES"))
	return l
}

// ParseTrustedProxies reads a comma-separated list of CIDRs or bare
// addresses. Entries that do not parse are skipped.
func ParseTrustedProxies(s string) []netip.Prefix {
	var out []netip.Prefix
	for _, field := range strings.Split(s, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		if p, err := netip.ParsePrefix(field); err == nil {
			out = append(out, p.Masked())
			continue
		}
		if a, err := netip.ParseAddr(field); err == nil {
			a = a.Unmap()
			out = append(out, netip.PrefixFrom(a, a.BitLen()))
		}
	}
	return out
}

// ParseRateLimitFromEnv reads RATELIMIT_{prefix}_REQUESTS, _WINDOW_SEC and
// _BURST. Missing or non-positive values keep the default.
func ParseRateLimitFromEnv(getenv func(string) string, prefix string, def RateLimitConfig) RateLimitConfig {
	cfg := def
	positive := func(name string) (int, bool) {
		n, err := strconv.Atoi(getenv("RATELIMIT_" + prefix + "_" + name))
		return n, err == nil && n > 0
	}

	if n, ok := positive("REQUESTS"); ok {
		cfg.RequestsPerWindow = n
	}
	if n, ok := positive("WINDOW_SEC"); ok {
		cfg.Window = time.Duration(n) * time.Second
	}
	if n, ok := positive("BURST"); ok {
		cfg.Burst = n
	}
	return cfg
}

// KeyExtractor derives the bucket key for a request.
type KeyExtractor func(*http.Request) string

// IPKeyExtractor keys on the TCP peer address. Forwarding headers are
// ignored; use TrustedIPKeyExtractor behind a reverse proxy.
func IPKeyExtractor(r *http.Request) string {
	return remoteHost(r)
}

// TrustedIPKeyExtractor keys on the client address reported by a trusted
// proxy. Requests from any other peer are keyed on the peer itself.
func TrustedIPKeyExtractor(trusted []netip.Prefix) KeyExtractor {
	if len(trusted) == 0 {
		return IPKeyExtractor
	}
	return func(r *http.Request) string {
		return ClientIP(r, trusted)
	}
}

// ClientIP returns the originating client address. X-Forwarded-For is walked
// right to left past trusted hops, then X-Real-IP is tried; both are read
// only when the peer itself is trusted. Anything unparsable falls back to
// the peer.
func ClientIP(r *http.Request, trusted []netip.Prefix) string {
	peer := remoteHost(r)
	if !isTrusted(peer, trusted) {
		return peer
	}

	hops := strings.Split(strings.Join(r.Header.Values("X-Forwarded-For"), ","), ",")
	for i := len(hops) - 1; i >= 0; i-- {
		addr, err := netip.ParseAddr(strings.TrimSpace(hops[i]))
		if err != nil {
			break
		}
		if !isTrusted(addr.String(), trusted) {
			return addr.Unmap().String()
		}
	}

	if addr, err := netip.ParseAddr(strings.TrimSpace(r.Header.Get("X-Real-IP"))); err == nil {
		return addr.Unmap().String()
	}
	return peer
}

func remoteHost(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func isTrusted(ip string, trusted []netip.Prefix) bool {
	addr, err := netip.ParseAddr(ip)
	if err != nil {
		return false
	}
	addr = addr.Unmap()
	for _, p := range trusted {
		if p.Contains(addr) {
			return true
		}
	}
	return false
}

// UserIDKeyExtractor extracts the authenticated user ID, or "".
func UserIDKeyExtractor(r *http.Request) string {
	if userID, ok := r.Context().Value(CtxKeyUserID).(string); ok {
		return userID
	}
	return ""
}

// CompositeKeyExtractor joins the non-empty keys of several extractors.
func CompositeKeyExtractor(sep string, extractors ...KeyExtractor) KeyExtractor {
	return func(r *http.Request) string {
		var parts []string
		for _, extractor := range extractors {
			if key := extractor(r); key != "" {
				parts = append(parts, key)
			}
		}
		return strings.Join(parts, sep)
	}
}

// limiterStore lazily creates one token bucket per key.
type limiterStore struct {
	limiters sync.Map // map[string]*rate.Limiter
	rate     rate.Limit
	burst    int

	mu          sync.Mutex
	lastCleanup time.Time
}

func (s *limiterStore) get(key string) *rate.Limiter {
	if l, ok := s.limiters.Load(key); ok {
		return l.(*rate.Limiter)
	}

	actual, _ := s.limiters.LoadOrStore(key, rate.NewLimiter(s.rate, s.burst))
	s.maybeCleanup()
	return actual.(*rate.Limiter)
}

// maybeCleanup drops full (idle) buckets at most every five minutes.
func (s *limiterStore) maybeCleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if time.Since(s.lastCleanup) < 5*time.Minute {
		return
	}
	s.lastCleanup = time.Now()

	s.limiters.Range(func(key, value any) bool {
		if value.(*rate.Limiter).Tokens() >= float64(s.burst) {
			s.limiters.Delete(key)
		}
		return true
	})
}

// RateLimitMiddleware limits requests per extracted key.
func RateLimitMiddleware(config RateLimitConfig, keyExtractor KeyExtractor) Middleware {
	store := &limiterStore{
		rate:        rate.Limit(float64(config.RequestsPerWindow) / config.Window.Seconds()),
		burst:       config.Burst,
		lastCleanup: time.Now(),
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			log := slogx.FromContext(r.Context())

			// An unkeyable request still shares a bucket with its peer.
			key := keyExtractor(r)
			if key == "" {
				key = remoteHost(r)
			}
			if key == "" {
				key = "unknown"
			}

			limiter := store.get(key)
			if !limiter.Allow() {
				reservation := limiter.Reserve()
				retryAfter := max(int(reservation.Delay().Seconds()), 1)
				reservation.Cancel()

				w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
				w.Header().Set("X-RateLimit-Limit", strconv.Itoa(config.RequestsPerWindow))
				w.Header().Set("X-RateLimit-Window", config.Window.String())

				log.Warn("rate limit exceeded", "endpoint", r.URL.Path, "retry_after", retryAfter)

				WriteError(w, http.StatusTooManyRequests, "rate_limit_exceeded", "Too many requests. Please try again later.")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RateLimitByIP limits by client IP only. Forwarding headers count only
// when the peer is one of trusted.
func RateLimitByIP(config RateLimitConfig, trusted ...netip.Prefix) Middleware {
	return RateLimitMiddleware(config, TrustedIPKeyExtractor(trusted))
}

// RateLimitByUser limits by authenticated user, combined with IP.
func RateLimitByUser(config RateLimitConfig, trusted ...netip.Prefix) Middleware {
	return RateLimitMiddleware(config, CompositeKeyExtractor(":",
		UserIDKeyExtractor,
		TrustedIPKeyExtractor(trusted),
	))
}
