package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/a-h/templ"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/skillswap/skillswap/internal/config"
	"github.com/skillswap/skillswap/internal/ctxkeys"
	"github.com/skillswap/skillswap/internal/db/dbtest"
	"github.com/skillswap/skillswap/internal/middleware"
	"github.com/skillswap/skillswap/internal/model"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
	_, _ = w.Write([]byte("ok"))
})

func TestChainOrder(t *testing.T) {
	var order []string
	mark := func(name string) func(http.Handler) http.Handler {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	h := middleware.Chain(okHandler, mark("a"), mark("b"), mark("c"))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, []string{"a", "b", "c"}, order)
}

func TestNonceAndSecurityHeaders(t *testing.T) {
	var nonce string
	h := middleware.Chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		nonce = templ.GetNonce(r.Context())
	}), middleware.NonceMiddleware, middleware.SecurityHeaders)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.NotEmpty(t, nonce)
	csp := rec.Header().Get("Content-Security-Policy")
	assert.Contains(t, csp, "'nonce-"+nonce+"'")
	assert.Contains(t, csp, "frame-ancestors 'none'")
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.Empty(t, rec.Header().Get("Strict-Transport-Security"))
}

func TestSecurityHeadersHSTSBehindHTTPSProxy(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Forwarded-Proto", "https")
	rec := httptest.NewRecorder()
	middleware.SecurityHeaders(okHandler).ServeHTTP(rec, req)
	assert.NotEmpty(t, rec.Header().Get("Strict-Transport-Security"))
}

func TestRequestLoggingSetsRequestID(t *testing.T) {
	var fromCtx string
	h := middleware.RequestLogging(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fromCtx = ctxkeys.RequestID(r.Context())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/landing", nil))
	id := rec.Header().Get("X-Request-ID")
	_, err := uuid.Parse(id)
	require.NoError(t, err)
	assert.Equal(t, id, fromCtx)

	incoming := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/landing", nil)
	req.Header.Set("X-Request-ID", incoming)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, incoming, rec.Header().Get("X-Request-ID"))

	req = httptest.NewRequest(http.MethodGet, "/landing", nil)
	req.Header.Set("X-Request-ID", "<script>")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.NotEqual(t, "<script>", rec.Header().Get("X-Request-ID"))
}

func TestCSRFProtection(t *testing.T) {
	var token string
	h := middleware.CSRFProtection(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token = ctxkeys.CSRFToken(r.Context())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.NotEmpty(t, token)
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	cookie := cookies[0]

	// Missing token
	req := httptest.NewRequest(http.MethodPost, "/send_message", nil)
	req.AddCookie(cookie)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// Header token
	req = httptest.NewRequest(http.MethodPost, "/send_message", nil)
	req.AddCookie(cookie)
	req.Header.Set("X-CSRF-Token", cookie.Value)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	// Form token
	form := url.Values{"csrf_token": {cookie.Value}}
	req = httptest.NewRequest(http.MethodPost, "/post_request", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(cookie)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	// A valid token does not help a request the browser marks cross-site
	req = httptest.NewRequest(http.MethodPost, "/send_message", nil)
	req.AddCookie(cookie)
	req.Header.Set("X-CSRF-Token", cookie.Value)
	req.Header.Set("Sec-Fetch-Site", "cross-site")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireAuthVariants(t *testing.T) {
	guest := httptest.NewRequest(http.MethodGet, "/messages", nil)
	signedIn := guest.WithContext(ctxkeys.WithUser(context.Background(), &model.User{ID: 1}))

	rec := httptest.NewRecorder()
	middleware.RequireAuth(okHandler)(rec, guest)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))

	rec = httptest.NewRecorder()
	middleware.RequireAuthPlain(okHandler)(rec, guest)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = httptest.NewRecorder()
	middleware.RequireAuth(okHandler)(rec, signedIn)
	assert.Equal(t, "ok", rec.Body.String())

	rec = httptest.NewRecorder()
	middleware.RequireGuest(okHandler)(rec, signedIn)
	assert.Equal(t, "/landing", rec.Header().Get("Location"))
}

func TestRequireDB(t *testing.T) {
	database := dbtest.New(t)
	guard := middleware.RequireDB(database, time.Second)

	rec := httptest.NewRecorder()
	guard(okHandler)(rec, httptest.NewRequest(http.MethodGet, "/users", nil))
	assert.Equal(t, "ok", rec.Body.String())

	require.NoError(t, database.Close())
	rec = httptest.NewRecorder()
	guard(okHandler)(rec, httptest.NewRequest(http.MethodGet, "/users", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "Database connection is not available.\n", rec.Body.String())
}

func TestRateLimitAuth(t *testing.T) {
	limit := middleware.RateLimitAuth(middleware.NewRateLimiter(2, time.Minute), false)
	h := limit(okHandler)

	post := func(path, remote string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, path, nil)
		req.RemoteAddr = remote
		rec := httptest.NewRecorder()
		h(rec, req)
		return rec
	}

	codes := []int{}
	var last *httptest.ResponseRecorder
	for range 3 {
		last = post("/login", "10.0.0.1:5555")
		codes = append(codes, last.Code)
	}
	assert.Equal(t, []int{200, 200, http.StatusTooManyRequests}, codes)
	assert.NotEmpty(t, last.Header().Get("Retry-After"))

	assert.Equal(t, http.StatusOK, post("/login", "10.0.0.2:5555").Code, "other clients are unaffected")
	assert.Equal(t, http.StatusOK, post("/", "10.0.0.1:5555").Code, "registration has its own budget")
	assert.Equal(t, http.StatusOK, post("/login", "[::1]:5555").Code)
}

func TestRateLimitAuthIgnoresForwardedHeadersByDefault(t *testing.T) {
	h := middleware.RateLimitAuth(middleware.NewRateLimiter(1, time.Minute), false)(okHandler)

	post := func(forwarded string) int {
		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		req.RemoteAddr = "10.0.0.1:5555"
		req.Header.Set("X-Forwarded-For", forwarded)
		req.Header.Set("X-Real-IP", forwarded)
		rec := httptest.NewRecorder()
		h(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, post("1.1.1.1"))
	assert.Equal(t, http.StatusTooManyRequests, post("2.2.2.2"), "rotating the header does not reset the budget")
}

func TestRateLimitAuthBehindProxy(t *testing.T) {
	h := middleware.RateLimitAuth(middleware.NewRateLimiter(1, time.Minute), true)(okHandler)

	post := func(forwarded string) int {
		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		req.RemoteAddr = "10.0.0.254:443"
		req.Header.Set("X-Forwarded-For", forwarded)
		rec := httptest.NewRecorder()
		h(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, post("203.0.113.7"))
	assert.Equal(t, http.StatusOK, post("198.51.100.9"), "distinct clients behind the proxy")
	assert.Equal(t, http.StatusTooManyRequests, post("6.6.6.6, 203.0.113.7"), "spoofed leading hops are ignored")
}

func TestRateLimiterRunStopsWithContext(t *testing.T) {
	defer goleak.VerifyNone(t)

	rl := middleware.NewRateLimiter(1, time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		rl.Run(ctx, time.Millisecond)
		close(done)
	}()

	ok, _ := rl.Allow("10.0.0.1 /login")
	assert.True(t, ok)
	time.Sleep(5 * time.Millisecond)
	ok, _ = rl.Allow("10.0.0.1 /login")
	assert.True(t, ok, "expired entries no longer count")

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestLimitBody(t *testing.T) {
	h := middleware.LimitBody(8)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		err := r.ParseForm()
		if err != nil {
			http.Error(w, "too large", http.StatusRequestEntityTooLarge)
			return
		}
		_, _ = w.Write([]byte(r.PostFormValue("a")))
	}))

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("a=1"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "1", rec.Body.String())

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader("a="+strings.Repeat("x", 64)))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestRecover(t *testing.T) {
	h := middleware.Recover(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestConfigSanitized(t *testing.T) {
	cfg := &config.Config{AppName: "Skill Swap", JWTSecret: "secret", DBConnection: "dsn"}
	var got *config.Config
	middleware.Config(cfg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = ctxkeys.Config(r.Context())
	})).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	require.NotNil(t, got)
	assert.Equal(t, "Skill Swap", got.AppName)
	assert.Empty(t, got.JWTSecret)
	assert.Empty(t, got.DBConnection)
}
