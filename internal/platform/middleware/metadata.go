package middleware

import (
	"net/http"
	"strings"

	"github.com/mssola/useragent"

	"github.com/ClementJar/IDV-sub000/pkg/requestcontext"
)

// ClientMetadata extracts the client IP and User-Agent from the request and
// adds them, plus a parsed device summary, to the context for logging and
// audit enrichment. Apply early in the chain.
func ClientMetadata(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		ctx = requestcontext.WithClientIP(ctx, clientIPFromRequest(r))

		if ua := r.Header.Get("User-Agent"); ua != "" {
			ctx = requestcontext.WithUserAgent(ctx, ua)
			parsed := useragent.New(ua)
			browser, _ := parsed.Browser()
			ctx = requestcontext.WithDeviceInfo(ctx, requestcontext.Device{
				Browser: browser,
				OS:      parsed.OS(),
				Mobile:  parsed.Mobile(),
			})
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// clientIPFromRequest extracts the originating client IP, handling proxies.
func clientIPFromRequest(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		// X-Forwarded-For lists client, proxy1, proxy2, ... - take the first.
		if idx := strings.Index(xff, ","); idx != -1 {
			return strings.TrimSpace(xff[:idx])
		}
		return strings.TrimSpace(xff)
	}
	if rip := r.Header.Get("X-Real-IP"); rip != "" {
		return rip
	}
	// RemoteAddr carries host:port.
	if idx := strings.LastIndex(r.RemoteAddr, ":"); idx != -1 {
		return r.RemoteAddr[:idx]
	}
	return r.RemoteAddr
}
