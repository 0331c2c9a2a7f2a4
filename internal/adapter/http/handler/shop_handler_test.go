package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/ysonawan/duebook/internal/adapter/http/dto"
	"github.com/ysonawan/duebook/internal/adapter/http/handler"
	"github.com/ysonawan/duebook/internal/domain"
	"github.com/ysonawan/duebook/internal/usecase"
	"github.com/ysonawan/duebook/internal/usecase/mocks"
)

func newShopTestServer(t *testing.T) (http.Handler, *mocks.FakeShopRepository) {
	t.Helper()

	shopRepo := mocks.NewFakeShopRepository()
	shopUC := usecase.NewShopUseCase(shopRepo, mocks.NewFakeAuditRepository(), mocks.NewFakeIDGenerator())

	h := handler.NewShopHandler(shopUC)

	r := chi.NewRouter()
	r.Post("/shops", h.Create)
	r.Get("/shops/{shopID}", h.Get)

	return r, shopRepo
}

func TestShopHandlerCreate(t *testing.T) {
	server, _ := newShopTestServer(t)

	body := `{"name":"corner store","address":"12 Main St"}`
	req := httptest.NewRequest(http.MethodPost, "/shops", strings.NewReader(body))
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp dto.ShopResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.ID == "" {
		t.Error("expected a shop ID in the response")
	}
	if !resp.IsActive {
		t.Error("new shop must be active")
	}
}

func TestShopHandlerCreateRejectsBlankName(t *testing.T) {
	server, _ := newShopTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/shops", strings.NewReader(`{"name":""}`))
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestShopHandlerGet(t *testing.T) {
	server, shopRepo := newShopTestServer(t)
	shopRepo.Add(&domain.Shop{ID: "shop-1", Name: "corner store", IsActive: true})

	req := httptest.NewRequest(http.MethodGet, "/shops/shop-1", nil)
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	req = httptest.NewRequest(http.MethodGet, "/shops/missing", nil)
	rec = httptest.NewRecorder()
	server.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown shop, got %d", rec.Code)
	}
}
