package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/skillswap/skillswap/internal/db"
)

const dbUnavailableMessage = "Database connection is not available."

// RequireDB answers 503 when the database cannot be reached, before any
// handler touches it.
func RequireDB(database *sqlx.DB, timeout time.Duration) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			err := db.Ping(r.Context(), database, timeout)
			if err != nil {
				slog.Error("database unavailable", "error", err, "path", r.URL.Path)
				http.Error(w, dbUnavailableMessage, http.StatusServiceUnavailable)
				return
			}
			next(w, r)
		}
	}
}
