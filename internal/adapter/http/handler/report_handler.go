package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ysonawan/duebook/internal/usecase"
)

// ReportHandler handles summary, trend and dashboard HTTP requests.
type ReportHandler struct {
	reportUC *usecase.ReportUseCase
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportUC *usecase.ReportUseCase) *ReportHandler {
	return &ReportHandler{reportUC: reportUC}
}

// Summary returns ledger totals over the whole filtered entry set.
func (h *ReportHandler) Summary(w http.ResponseWriter, r *http.Request) {
	shopID := chi.URLParam(r, "shopID")
	if shopID == "" {
		writeError(w, http.StatusBadRequest, "missing shop ID", "")
		return
	}

	summary, err := h.reportUC.GetSummary(r.Context(), entryFilterFromQuery(r, shopID))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to compute summary", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, summary)
}

// Trend returns per-day debit/credit buckets, ascending by date.
func (h *ReportHandler) Trend(w http.ResponseWriter, r *http.Request) {
	shopID := chi.URLParam(r, "shopID")
	if shopID == "" {
		writeError(w, http.StatusBadRequest, "missing shop ID", "")
		return
	}

	trend, err := h.reportUC.GetTrend(r.Context(), entryFilterFromQuery(r, shopID))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to compute trend", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, trend)
}

// Dashboard returns the aggregate metrics backing the dashboard screen.
func (h *ReportHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	shopID := chi.URLParam(r, "shopID")
	if shopID == "" {
		writeError(w, http.StatusBadRequest, "missing shop ID", "")
		return
	}

	metrics, err := h.reportUC.GetDashboard(r.Context(), shopID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to compute dashboard", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, metrics)
}
