package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ysonawan/duebook/internal/adapter/http/dto"
	"github.com/ysonawan/duebook/internal/adapter/http/middleware"
	"github.com/ysonawan/duebook/internal/infrastructure/metrics"
	"github.com/ysonawan/duebook/internal/usecase"
)

// CustomerHandler handles customer directory HTTP requests.
type CustomerHandler struct {
	customerUC *usecase.CustomerUseCase
}

// NewCustomerHandler creates a new CustomerHandler.
func NewCustomerHandler(customerUC *usecase.CustomerUseCase) *CustomerHandler {
	return &CustomerHandler{customerUC: customerUC}
}

// Create creates a new customer.
func (h *CustomerHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateCustomerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	customer, err := h.customerUC.CreateCustomer(r.Context(), req.ToUseCaseInput(middleware.UserIDFromContext(r.Context())))
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to create customer", err.Error())

		return
	}

	metrics.CustomerCreated()

	writeJSON(w, http.StatusCreated, dto.CustomerFromDomain(customer))
}

// Get retrieves a customer by ID.
func (h *CustomerHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing customer ID", "")
		return
	}

	customer, err := h.customerUC.GetCustomer(r.Context(), id)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to get customer", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.CustomerFromDomain(customer))
}

// ListByShop lists a shop's customers.
func (h *CustomerHandler) ListByShop(w http.ResponseWriter, r *http.Request) {
	shopID := chi.URLParam(r, "shopID")
	if shopID == "" {
		writeError(w, http.StatusBadRequest, "missing shop ID", "")
		return
	}

	customers, err := h.customerUC.ListCustomers(r.Context(), usecase.ListCustomersInput{
		ShopID: shopID,
		Limit:  parseIntQuery(r, "limit", 20),
		Offset: parseIntQuery(r, "offset", 0),
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list customers", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.CustomersFromDomain(customers))
}

// SetStatus activates or deactivates a customer.
func (h *CustomerHandler) SetStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing customer ID", "")
		return
	}

	var req dto.SetCustomerStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	customer, err := h.customerUC.SetCustomerStatus(r.Context(), id, req.Active, middleware.UserIDFromContext(r.Context()))
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to update customer status", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.CustomerFromDomain(customer))
}
