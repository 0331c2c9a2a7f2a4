package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ysonawan/duebook/internal/adapter/http/dto"
	"github.com/ysonawan/duebook/internal/adapter/http/middleware"
	"github.com/ysonawan/duebook/internal/usecase"
)

// ShopHandler handles shop provisioning HTTP requests.
type ShopHandler struct {
	shopUC *usecase.ShopUseCase
}

// NewShopHandler creates a new ShopHandler.
func NewShopHandler(shopUC *usecase.ShopUseCase) *ShopHandler {
	return &ShopHandler{shopUC: shopUC}
}

// Create creates a new shop.
func (h *ShopHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateShopRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	shop, err := h.shopUC.CreateShop(r.Context(), req.ToUseCaseInput(middleware.UserIDFromContext(r.Context())))
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to create shop", err.Error())

		return
	}

	writeJSON(w, http.StatusCreated, dto.ShopFromDomain(shop))
}

// Get retrieves a shop by ID.
func (h *ShopHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "shopID")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing shop ID", "")
		return
	}

	shop, err := h.shopUC.GetShop(r.Context(), id)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to get shop", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.ShopFromDomain(shop))
}
