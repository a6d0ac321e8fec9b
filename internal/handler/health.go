package handler

import (
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/skillswap/skillswap/internal/db"
	"github.com/skillswap/skillswap/internal/ui"
)

type HealthHandler struct {
	db      *sqlx.DB
	timeout time.Duration
}

func NewHealthHandler(database *sqlx.DB, timeout time.Duration) *HealthHandler {
	return &HealthHandler{db: database, timeout: timeout}
}

func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	err := db.Ping(r.Context(), h.db, h.timeout)
	if err != nil {
		ui.RenderText(w, http.StatusServiceUnavailable, "database unavailable")
		return
	}
	ui.RenderText(w, http.StatusOK, "ok")
}
