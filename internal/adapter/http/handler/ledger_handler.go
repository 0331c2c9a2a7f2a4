package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ysonawan/duebook/internal/adapter/http/dto"
	"github.com/ysonawan/duebook/internal/adapter/http/middleware"
	"github.com/ysonawan/duebook/internal/domain"
	"github.com/ysonawan/duebook/internal/infrastructure/metrics"
	"github.com/ysonawan/duebook/internal/usecase"
)

// LedgerHandler handles ledger entry HTTP requests.
type LedgerHandler struct {
	ledgerUC *usecase.LedgerUseCase
}

// NewLedgerHandler creates a new LedgerHandler.
func NewLedgerHandler(ledgerUC *usecase.LedgerUseCase) *LedgerHandler {
	return &LedgerHandler{ledgerUC: ledgerUC}
}

// Post posts a new BAKI or PAID entry.
func (h *LedgerHandler) Post(w http.ResponseWriter, r *http.Request) {
	var req dto.PostEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	input, err := req.ToUseCaseInput(middleware.UserIDFromContext(r.Context()))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid entry date", err.Error())
		return
	}

	entry, err := h.ledgerUC.PostEntry(r.Context(), input)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to post entry", err.Error())

		return
	}

	amount, _ := entry.Amount.Float64()
	metrics.EntryPosted(string(entry.Type), amount)

	writeJSON(w, http.StatusCreated, dto.EntryFromDomain(entry))
}

// Reverse creates a compensating REVERSAL for an entry.
func (h *LedgerHandler) Reverse(w http.ResponseWriter, r *http.Request) {
	entryID := chi.URLParam(r, "id")
	if entryID == "" {
		writeError(w, http.StatusBadRequest, "missing entry ID", "")
		return
	}

	var req dto.ReverseEntryRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
			return
		}
	}

	input := req.ToUseCaseInput(entryID, middleware.UserIDFromContext(r.Context()))
	reversal, err := h.ledgerUC.ReverseEntry(r.Context(), input)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to reverse entry", err.Error())

		return
	}

	metrics.EntryReversed()

	writeJSON(w, http.StatusCreated, dto.EntryFromDomain(reversal))
}

// Get retrieves an entry by ID.
func (h *LedgerHandler) Get(w http.ResponseWriter, r *http.Request) {
	entryID := chi.URLParam(r, "id")
	if entryID == "" {
		writeError(w, http.StatusBadRequest, "missing entry ID", "")
		return
	}

	entry, err := h.ledgerUC.GetEntry(r.Context(), entryID)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to get entry", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.EntryFromDomain(entry))
}

// ListByShop returns one page of a shop's ledger, newest entry date first.
// Shop ID "0" spans all shops.
func (h *LedgerHandler) ListByShop(w http.ResponseWriter, r *http.Request) {
	shopID := chi.URLParam(r, "shopID")
	if shopID == "" {
		writeError(w, http.StatusBadRequest, "missing shop ID", "")
		return
	}

	page, err := h.ledgerUC.ListEntries(r.Context(), usecase.ListEntriesInput{
		Filter: entryFilterFromQuery(r, shopID),
		Page:   parseIntQuery(r, "page", 0),
		Size:   parseIntQuery(r, "size", 20),
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list entries", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.EntryPageFromDomain(page))
}

func entryFilterFromQuery(r *http.Request, shopID string) usecase.EntryFilter {
	return usecase.EntryFilter{
		ShopID:     shopID,
		CustomerID: r.URL.Query().Get("customer_id"),
		EntryType:  domain.EntryType(r.URL.Query().Get("type")),
		StartDate:  parseDateQuery(r, "start_date"),
		EndDate:    parseDateQuery(r, "end_date"),
	}
}
