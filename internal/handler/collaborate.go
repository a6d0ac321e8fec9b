package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/skillswap/skillswap/internal/ctxkeys"
	"github.com/skillswap/skillswap/internal/service"
	"github.com/skillswap/skillswap/internal/ui"
	"github.com/skillswap/skillswap/internal/ui/pages"
)

type CollaborateHandler struct {
	collaborationService *service.CollaborationService
}

func NewCollaborateHandler(collaborationService *service.CollaborationService) *CollaborateHandler {
	return &CollaborateHandler{collaborationService: collaborationService}
}

func (h *CollaborateHandler) Page(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, pages.CollaborateData{})
}

func (h *CollaborateHandler) Post(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	form := pages.RequestForm{
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		SkillNeeded: r.FormValue("skill_needed"),
	}

	err := h.collaborationService.Post(r.Context(), user, form.Title, form.Description, form.SkillNeeded)
	if err != nil {
		var verr *service.ValidationError
		if errors.As(err, &verr) {
			h.render(w, r, http.StatusBadRequest, pages.CollaborateData{Form: form, Error: verr.Error()})
			return
		}
		slog.Error("failed to post request", "error", err, "user_id", user.ID)
		h.render(w, r, http.StatusInternalServerError, pages.CollaborateData{Form: form, Error: "Your request could not be posted."})
		return
	}

	http.Redirect(w, r, "/collaborate", http.StatusSeeOther)
}

// render shows the feed next to the form. A failed feed query renders an
// empty feed.
func (h *CollaborateHandler) render(w http.ResponseWriter, r *http.Request, status int, data pages.CollaborateData) {
	requests, err := h.collaborationService.Requests(r.Context())
	if err != nil {
		slog.Error("failed to load requests", "error", err)
	}
	data.Requests = requests
	ui.RenderStatus(w, r, status, pages.Collaborate(data))
}
