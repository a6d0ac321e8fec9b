package handler

import (
	"log/slog"
	"net/http"

	"github.com/skillswap/skillswap/internal/service"
	"github.com/skillswap/skillswap/internal/ui"
	"github.com/skillswap/skillswap/internal/ui/pages"
)

// ReportHandler renders the reports. A failed query renders an empty table.
type ReportHandler struct {
	reportService *service.ReportService
}

func NewReportHandler(reportService *service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

func (h *ReportHandler) DetailedUsers(w http.ResponseWriter, r *http.Request) {
	rows, err := h.reportService.DetailedUsers(r.Context())
	if err != nil {
		slog.Error("detailed users report failed", "error", err)
	}
	ui.Render(w, r, pages.DetailedUsers(rows, ""))
}

func (h *ReportHandler) MutualMessages(w http.ResponseWriter, r *http.Request) {
	rows, err := h.reportService.MutualMessages(r.Context())
	if err != nil {
		slog.Error("mutual messages report failed", "error", err)
	}
	ui.Render(w, r, pages.MutualMessages(rows, ""))
}
