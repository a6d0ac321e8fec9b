package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/skillswap/skillswap/internal/ctxkeys"
)

// SecurityHeaders sets the browser hardening headers. Scripts only run from
// /assets/ or with the request nonce; pictures may come from any https host
// because profile pictures can be external URLs.
func SecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		scriptSrc := "'self'"
		nonce := GetNonce(r.Context())
		if nonce != "" {
			scriptSrc += fmt.Sprintf(" 'nonce-%s'", nonce)
		}

		imgSrc := "'self' data: https:"
		cfg := ctxkeys.Config(r.Context())
		if cfg != nil && cfg.S3Endpoint != "" {
			imgSrc += " " + cfg.S3Endpoint
		}

		h := w.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		h.Set("Permissions-Policy", "geolocation=(), camera=(), microphone=()")
		h.Set("Content-Security-Policy", fmt.Sprintf(
			"default-src 'self'; script-src %s; style-src 'self'; img-src %s; frame-ancestors 'none'; base-uri 'self'; form-action 'self'",
			scriptSrc, imgSrc,
		))

		if r.TLS != nil || strings.EqualFold(strings.TrimSpace(r.Header.Get("X-Forwarded-Proto")), "https") {
			h.Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		}

		next.ServeHTTP(w, r)
	})
}
