package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ysonawan/duebook/internal/adapter/http/dto"
	"github.com/ysonawan/duebook/internal/usecase"
)

// AuditHandler exposes the audit trail of ledger and customer mutations.
type AuditHandler struct {
	auditRepo usecase.AuditRepository
}

// NewAuditHandler creates a new AuditHandler.
func NewAuditHandler(auditRepo usecase.AuditRepository) *AuditHandler {
	return &AuditHandler{auditRepo: auditRepo}
}

// GetByEntity lists audit logs for one entity, newest first.
func (h *AuditHandler) GetByEntity(w http.ResponseWriter, r *http.Request) {
	entityType := chi.URLParam(r, "entityType")
	entityID := chi.URLParam(r, "entityID")
	if entityType == "" || entityID == "" {
		writeError(w, http.StatusBadRequest, "missing entity type or ID", "")
		return
	}

	logs, err := h.auditRepo.GetByEntity(r.Context(), entityType, entityID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list audit logs", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.AuditLogsFromDomain(logs))
}
