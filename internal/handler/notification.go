package handler

import (
	"log/slog"
	"net/http"

	"github.com/skillswap/skillswap/internal/ctxkeys"
	"github.com/skillswap/skillswap/internal/service"
	"github.com/skillswap/skillswap/internal/ui"
	"github.com/skillswap/skillswap/internal/ui/pages"
)

type NotificationHandler struct {
	notificationService *service.NotificationService
}

func NewNotificationHandler(notificationService *service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

func (h *NotificationHandler) Feed(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	feed, err := h.notificationService.Feed(r.Context(), user.ID)
	if err != nil {
		slog.Error("failed to load notifications", "error", err, "user_id", user.ID)
		ui.Render(w, r, pages.Notifications(nil, "Notifications could not be loaded."))
		return
	}
	ui.Render(w, r, pages.Notifications(feed, ""))
}
