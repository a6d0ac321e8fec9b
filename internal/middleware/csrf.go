package middleware

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"log/slog"
	"net/http"

	"github.com/skillswap/skillswap/internal/ctxkeys"
)

const (
	csrfCookieName = "csrf_token"
	csrfFormField  = "csrf_token"
	csrfHeader     = "X-CSRF-Token"
	csrfTokenBytes = 32
	csrfCookieAge  = 7 * 24 * 60 * 60
)

// CSRFProtection gives every browser a token cookie and requires it back on
// unsafe methods, in the X-CSRF-Token header (message script) or the
// csrf_token form field (plain forms). Requests a browser marks as
// cross-site are refused before the body is read.
func CSRFProtection(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := csrfCookieToken(w, r)
		r = r.WithContext(ctxkeys.WithCSRFToken(r.Context(), token))

		if safeMethod(r.Method) {
			next.ServeHTTP(w, r)
			return
		}

		if r.Header.Get("Sec-Fetch-Site") == "cross-site" {
			rejectCSRF(w, r, "cross-site request")
			return
		}

		submitted := r.Header.Get(csrfHeader)
		if submitted == "" {
			// Parses multipart bodies too; LimitBody caps the read.
			submitted = r.PostFormValue(csrfFormField)
		}
		if !validCSRFToken(token, submitted) {
			rejectCSRF(w, r, "token mismatch")
			return
		}

		next.ServeHTTP(w, r)
	})
}

func safeMethod(method string) bool {
	return method == http.MethodGet || method == http.MethodHead || method == http.MethodOptions
}

func rejectCSRF(w http.ResponseWriter, r *http.Request, reason string) {
	slog.Warn("csrf validation failed",
		"reason", reason,
		"path", r.URL.Path,
		"method", r.Method,
		"ip", getClientIP(r, false),
	)
	http.Error(w, "Invalid CSRF token", http.StatusForbidden)
}

// csrfCookieToken returns the browser's token, issuing a new cookie when it
// is missing or malformed.
func csrfCookieToken(w http.ResponseWriter, r *http.Request) string {
	cookie, err := r.Cookie(csrfCookieName)
	if err == nil && len(cookie.Value) == base64.RawURLEncoding.EncodedLen(csrfTokenBytes) {
		return cookie.Value
	}

	b := make([]byte, csrfTokenBytes)
	_, err = rand.Read(b)
	if err != nil {
		panic("failed to generate csrf token: " + err.Error())
	}
	token := base64.RawURLEncoding.EncodeToString(b)

	cfg := ctxkeys.Config(r.Context())
	http.SetCookie(w, &http.Cookie{
		Name:     csrfCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   cfg != nil && cfg.IsProduction(),
		SameSite: http.SameSiteLaxMode,
		MaxAge:   csrfCookieAge,
	})
	return token
}

func validCSRFToken(expected, actual string) bool {
	if expected == "" || actual == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(expected), []byte(actual)) == 1
}
