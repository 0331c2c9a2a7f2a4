package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/ysonawan/duebook/internal/adapter/http/handler"
	apimiddleware "github.com/ysonawan/duebook/internal/adapter/http/middleware"
	"github.com/ysonawan/duebook/internal/usecase"
	"github.com/ysonawan/duebook/internal/usecase/mocks"
)

func TestNewRouter_HealthEndpointAvailable(t *testing.T) {
	router := NewRouter(newRouterConfig())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected /health to return 200, got %d", rec.Code)
	}
}

func TestNewRouter_MetricsEndpointAvailable(t *testing.T) {
	router := NewRouter(newRouterConfig())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected /metrics to return 200, got %d", rec.Code)
	}
}

func TestNewRouter_RateLimiterBlocksExcessRequests(t *testing.T) {
	rl := apimiddleware.NewRateLimiter(1, 1)
	router := NewRouter(newRouterConfig(func(cfg *RouterConfig) {
		cfg.RateLimiter = rl
	}))

	req1 := httptest.NewRequest(http.MethodGet, "/health", nil)
	req1.RemoteAddr = "1.2.3.4:1234"
	rec1 := httptest.NewRecorder()
	router.ServeHTTP(rec1, req1)
	if rec1.Code != http.StatusOK {
		t.Fatalf("expected first request to succeed, got %d", rec1.Code)
	}

	req2 := httptest.NewRequest(http.MethodGet, "/health", nil)
	req2.RemoteAddr = "1.2.3.4:1234"
	rec2 := httptest.NewRecorder()
	router.ServeHTTP(rec2, req2)
	if rec2.Code != http.StatusTooManyRequests {
		t.Fatalf("expected second request to be throttled, got %d", rec2.Code)
	}
}

func TestNewRouter_RegistersKeyRoutes(t *testing.T) {
	router := NewRouter(newRouterConfig())

	chiRoutes, ok := router.(chi.Router)
	if !ok {
		t.Fatal("router does not implement chi.Routes")
	}

	seen := map[string]bool{}
	if err := chi.Walk(chiRoutes, func(method string, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		seen[method+" "+route] = true
		return nil
	}); err != nil {
		t.Fatalf("walk failed: %v", err)
	}

	expected := []string{
		"GET /health",
		"GET /ready",
		"POST /api/v1/ledger/",
		"GET /api/v1/ledger/{id}",
		"POST /api/v1/ledger/{id}/reverse",
		"POST /api/v1/shops/",
		"GET /api/v1/shops/{shopID}/",
		"GET /api/v1/shops/{shopID}/ledger",
		"GET /api/v1/shops/{shopID}/ledger/summary",
		"GET /api/v1/shops/{shopID}/ledger/trend",
		"GET /api/v1/shops/{shopID}/dashboard",
		"GET /api/v1/shops/{shopID}/customers",
		"POST /api/v1/customers/",
		"PATCH /api/v1/customers/{id}/status",
		"GET /api/v1/audit/{entityType}/{entityID}",
	}

	for _, route := range expected {
		if !seen[route] {
			t.Fatalf("expected route %s to be registered", route)
		}
	}
}

func newRouterConfig(opts ...func(*RouterConfig)) RouterConfig {
	entryRepo := mocks.NewFakeEntryRepository()
	customerRepo := mocks.NewFakeCustomerRepository()
	shopRepo := mocks.NewFakeShopRepository()
	auditRepo := mocks.NewFakeAuditRepository()
	idGen := mocks.NewFakeIDGenerator()

	ledgerUC := usecase.NewLedgerUseCase(mocks.NewFakeTransactionManager(), entryRepo, customerRepo, shopRepo, auditRepo, idGen)
	reportUC := usecase.NewReportUseCase(entryRepo, customerRepo)
	customerUC := usecase.NewCustomerUseCase(customerRepo, shopRepo, auditRepo, idGen)
	shopUC := usecase.NewShopUseCase(shopRepo, auditRepo, idGen)

	cfg := RouterConfig{
		LedgerHandler:   handler.NewLedgerHandler(ledgerUC),
		ReportHandler:   handler.NewReportHandler(reportUC),
		CustomerHandler: handler.NewCustomerHandler(customerUC),
		ShopHandler:     handler.NewShopHandler(shopUC),
		AuditHandler:    handler.NewAuditHandler(auditRepo),
		HealthHandler:   &handler.HealthHandler{},
		Logger:          zerolog.Nop(),
	}

	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}
