package http

import (
	"context"
	"math"
	"net"
	"net/http"
	"net/netip"
	"strconv"
	"strings"

	"github.com/redmonkez12/fintrack-api/internal/apperror"
	"github.com/redmonkez12/fintrack-api/internal/httputil"
	"github.com/redmonkez12/fintrack-api/internal/logging"
	"github.com/redmonkez12/fintrack-api/internal/ratelimit"
)

const msgTooManyRequests = "Too many requests, please try again later"

// RateLimiter decides whether a request identified by key may proceed
type RateLimiter interface {
	Allow(ctx context.Context, purpose, key string) (ratelimit.Result, error)
}

// RateLimitRecorder counts rejected requests
type RateLimitRecorder interface {
	RateLimited(purpose string)
}

// SecurityHeaders adds security-related headers to all responses.
func SecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

		// Swagger UI needs scripts, styles, and images to render
		if strings.HasPrefix(r.URL.Path, "/swagger/") {
			w.Header().Set("Content-Security-Policy", "default-src 'self'; script-src 'self' 'unsafe-inline'; style-src 'self' 'unsafe-inline'; img-src 'self' data:")
		} else {
			w.Header().Set("Content-Security-Policy", "default-src 'none'")
		}

		next.ServeHTTP(w, r)
	})
}

// RateLimit rejects requests from a client IP once it exceeds the limiter's
// budget for purpose. Limiter failures let the request through.
func RateLimit(limiter RateLimiter, purpose string, recorder RateLimitRecorder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if limiter == nil {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := getClientIP(r)

			res, err := limiter.Allow(r.Context(), purpose, ip)
			if err != nil {
				logging.GetLoggerFromContext(r.Context()).Warn("rate limiter unavailable",
					"purpose", purpose,
					"error", err.Error(),
				)
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("X-RateLimit-Remaining", strconv.FormatInt(res.Remaining, 10))

			if !res.Allowed {
				if recorder != nil {
					recorder.RateLimited(purpose)
				}
				logging.GetLoggerFromContext(r.Context()).Warn("rate limit exceeded",
					"purpose", purpose,
					"ip", ip,
					"hits", res.CurrentHits,
				)
				w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(res.RetryAfter.Seconds()))))
				httputil.RespondError(w, r, apperror.TooManyRequests(msgTooManyRequests))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RealIP replaces r.RemoteAddr with the forwarded client address, but only
// when the connecting peer is one of the trusted proxies. X-Forwarded-For is
// read right to left and the first hop outside the trusted set wins.
func RealIP(trusted []netip.Prefix) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if len(trusted) == 0 {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			peer, ok := parseIP(r.RemoteAddr)
			if ok && isTrusted(trusted, peer) {
				if ip, found := forwardedClient(r, trusted); found {
					r.RemoteAddr = ip.String()
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

func forwardedClient(r *http.Request, trusted []netip.Prefix) (netip.Addr, bool) {
	if xff := r.Header.Values("X-Forwarded-For"); len(xff) > 0 {
		hops := strings.Split(strings.Join(xff, ","), ",")
		for i := len(hops) - 1; i >= 0; i-- {
			ip, ok := parseIP(strings.TrimSpace(hops[i]))
			if !ok {
				break
			}
			if !isTrusted(trusted, ip) {
				return ip, true
			}
		}
	}

	if ip, ok := parseIP(strings.TrimSpace(r.Header.Get("X-Real-IP"))); ok {
		return ip, true
	}
	return netip.Addr{}, false
}

func isTrusted(trusted []netip.Prefix, ip netip.Addr) bool {
	for _, p := range trusted {
		if p.Contains(ip) {
			return true
		}
	}
	return false
}

// parseIP accepts "ip" or "ip:port"
func parseIP(s string) (netip.Addr, bool) {
	if ap, err := netip.ParseAddrPort(s); err == nil {
		return ap.Addr().Unmap(), true
	}
	if ip, err := netip.ParseAddr(s); err == nil {
		return ip.Unmap(), true
	}
	return netip.Addr{}, false
}

// getClientIP returns the host part of r.RemoteAddr. Forwarded headers are
// honored only through RealIP.
func getClientIP(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
