package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/skillswap/skillswap/internal/repository"
	"github.com/skillswap/skillswap/internal/service"
	"github.com/skillswap/skillswap/internal/ui"
	"github.com/skillswap/skillswap/internal/ui/pages"
)

// PurposeCategories are the filter chips on the landing page.
var PurposeCategories = []string{"learning", "teaching", "collaboration", "mentoring", "networking"}

type UserHandler struct {
	userService *service.UserService
}

func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// Landing searches users by ?query= and any number of ?filter= purposes.
func (h *UserHandler) Landing(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := repository.SearchFilter{
		Query:      strings.TrimSpace(q.Get("query")),
		Categories: q["filter"],
	}

	data := pages.LandingData{
		Query:      filter.Query,
		Categories: PurposeCategories,
		Selected:   map[string]bool{},
	}
	for _, c := range filter.Normalized().Categories {
		data.Selected[c] = true
	}

	users, err := h.userService.Search(r.Context(), filter)
	if err != nil {
		slog.Error("user search failed", "error", err, "query", filter.Query)
		data.Error = "Search is unavailable right now."
	}
	data.Users = users

	ui.Render(w, r, pages.Landing(data))
}

func (h *UserHandler) Users(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.List(r.Context())
	if err != nil {
		slog.Error("failed to list users", "error", err)
		ui.Render(w, r, pages.Users(nil, "Users could not be loaded."))
		return
	}
	ui.Render(w, r, pages.Users(users, ""))
}
