// Package metadata stamps each request's context with the values the audit
// trail wants: a correlation ID, the request time, the client IP, and a
// parsed User-Agent summary.
package metadata

import (
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mssola/useragent"

	"surveyor/pkg/requestcontext"
)

// Collect returns the metadata middleware.
func Collect() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			requestID := r.Header.Get("X-Request-Id")
			if requestID == "" {
				requestID = uuid.NewString()
			}
			ctx = requestcontext.WithRequestID(ctx, requestID)
			ctx = requestcontext.WithTime(ctx, time.Now())
			ctx = requestcontext.WithClientMetadata(ctx, clientIP(r), userAgentSummary(r.UserAgent()))

			w.Header().Set("X-Request-Id", requestID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		parts := strings.Split(fwd, ",")
		return strings.TrimSpace(parts[0])
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// userAgentSummary condenses the raw User-Agent into "Browser version on OS"
// so audit entries stay readable without storing the full header.
func userAgentSummary(raw string) string {
	if raw == "" {
		return ""
	}
	ua := useragent.New(raw)
	name, version := ua.Browser()
	if name == "" {
		return raw
	}
	summary := name
	if version != "" {
		summary += " " + version
	}
	if os := ua.OS(); os != "" {
		summary += " on " + os
	}
	return summary
}
