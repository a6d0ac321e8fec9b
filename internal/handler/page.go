package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/skillswap/skillswap/internal/service"
	"github.com/skillswap/skillswap/internal/ui"
	"github.com/skillswap/skillswap/internal/ui/pages"
)

type PageHandler struct {
	pageService *service.PageService
}

func NewPageHandler(pageService *service.PageService) *PageHandler {
	return &PageHandler{pageService: pageService}
}

// Show returns a handler for the markdown page with the given slug.
func (h *PageHandler) Show(slug string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, err := h.pageService.Page(slug)
		if err != nil {
			if !errors.Is(err, service.ErrPageNotFound) {
				slog.Error("failed to load page", "error", err, "slug", slug)
			}
			h.NotFound(w, r)
			return
		}

		ui.Render(w, r, pages.Static(pages.StaticPage{
			Title:   page.Title,
			Summary: page.Summary,
			Content: page.Content,
		}))
	}
}

func (h *PageHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	ui.RenderStatus(w, r, http.StatusNotFound, pages.NotFound())
}
