package routes

import (
	"io/fs"
	"net/http"

	"github.com/skillswap/skillswap"
	"github.com/skillswap/skillswap/internal/app"
	"github.com/skillswap/skillswap/internal/handler"
	"github.com/skillswap/skillswap/internal/middleware"
)

func SetupRoutes(app *app.App, rateLimiter *middleware.RateLimiter) http.Handler {
	// Handlers
	auth := handler.NewAuthHandler(app.AuthService, app.PictureService, app.Cfg.MaxUploadSizeMB)
	users := handler.NewUserHandler(app.UserService)
	messages := handler.NewMessageHandler(app.MessageService)
	collaborate := handler.NewCollaborateHandler(app.CollaborationService)
	notifications := handler.NewNotificationHandler(app.NotificationService)
	reports := handler.NewReportHandler(app.ReportService)
	pages := handler.NewPageHandler(app.PageService)
	health := handler.NewHealthHandler(app.DB, app.Cfg.DBPingTimeout)

	requireDB := middleware.RequireDB(app.DB, app.Cfg.DBPingTimeout)
	rateLimit := middleware.RateLimitAuth(rateLimiter, app.Cfg.TrustProxyHeaders)

	mux := http.NewServeMux()

	// ============================================================================
	// PUBLIC ROUTES
	// ============================================================================

	// Static files
	sub, _ := fs.Sub(skillswap.AssetsFS, "assets")
	mux.Handle("GET /assets/", http.StripPrefix("/assets/", http.FileServer(http.FS(sub))))

	mux.HandleFunc("GET /healthz", health.Check)

	// Static views
	mux.HandleFunc("GET /code_board", pages.Show("code_board"))
	mux.HandleFunc("GET /skill_swap", pages.Show("skill_swap"))

	// Registration and login (rate limited)
	mux.HandleFunc("GET /{$}", middleware.RequireGuest(auth.RegisterPage))
	mux.HandleFunc("POST /{$}", rateLimit(middleware.RequireGuest(requireDB(auth.Register))))
	mux.HandleFunc("GET /login", middleware.RequireGuest(auth.LoginPage))
	mux.HandleFunc("POST /login", rateLimit(middleware.RequireGuest(requireDB(auth.Login))))
	mux.HandleFunc("POST /logout", auth.Logout)

	// Reports and directory
	mux.HandleFunc("GET /users", requireDB(users.Users))
	mux.HandleFunc("GET /detailed_users", requireDB(reports.DetailedUsers))
	mux.HandleFunc("GET /mutual_messages", requireDB(reports.MutualMessages))
	mux.HandleFunc("GET /collaborate", requireDB(collaborate.Page))

	// ============================================================================
	// PROTECTED ROUTES
	// ============================================================================

	mux.HandleFunc("GET /landing", middleware.RequireAuth(requireDB(users.Landing)))
	mux.HandleFunc("GET /messages", middleware.RequireAuth(requireDB(messages.Inbox)))
	mux.HandleFunc("GET /notifications", middleware.RequireAuth(requireDB(notifications.Feed)))
	mux.HandleFunc("POST /post_request", middleware.RequireAuth(requireDB(collaborate.Post)))

	// AJAX endpoint, answers in plain text
	mux.HandleFunc("POST /send_message", middleware.RequireAuthPlain(requireDB(messages.Send)))

	// Catch-all
	mux.HandleFunc("/", pages.NotFound)

	// Global middleware chain (order matters: outer to inner)
	return middleware.Chain(mux,
		middleware.Config(app.Cfg),
		middleware.RequestLogging,
		middleware.Recover,
		middleware.NonceMiddleware,
		middleware.SecurityHeaders,
		middleware.LimitBody(app.Cfg.MaxUploadSizeMB<<20),
		middleware.CSRFProtection,
		middleware.AuthMiddleware(app.AuthService, app.UserService),
		middleware.WithURLPath,
	)
}
