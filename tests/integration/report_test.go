package integration

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/ysonawan/duebook/internal/adapter/repository/postgres"
	"github.com/ysonawan/duebook/internal/domain"
	"github.com/ysonawan/duebook/internal/usecase"
	"github.com/ysonawan/duebook/tests/testutil"
)

func newReportUseCase(testDB *testutil.TestDB) *usecase.ReportUseCase {
	return usecase.NewReportUseCase(
		postgres.NewEntryRepository(testDB.Pool),
		postgres.NewCustomerRepository(testDB.Pool),
	)
}

func TestSummaryExcludesReversedEntries(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()
	testDB := testutil.NewTestDB(t)
	defer testDB.Cleanup()
	testDB.TruncateAll(ctx)

	ledgerUC := newLedgerUseCase(testDB)
	reportUC := newReportUseCase(testDB)

	shop := testDB.CreateTestShop(ctx, "corner store")
	customer := testDB.CreateTestCustomer(ctx, shop.ID, "asha")

	// 500 BAKI (later reversed), 300 BAKI, 200 PAID.
	reversed, err := ledgerUC.PostEntry(ctx, usecase.PostEntryInput{
		CustomerID: customer.ID,
		ShopID:     shop.ID,
		Type:       domain.EntryTypeBaki,
		Amount:     decimal.NewFromInt(500),
	})
	if err != nil {
		t.Fatalf("failed to post entry: %v", err)
	}

	if _, err := ledgerUC.PostEntry(ctx, usecase.PostEntryInput{
		CustomerID: customer.ID,
		ShopID:     shop.ID,
		Type:       domain.EntryTypeBaki,
		Amount:     decimal.NewFromInt(300),
	}); err != nil {
		t.Fatalf("failed to post entry: %v", err)
	}

	if _, err := ledgerUC.PostEntry(ctx, usecase.PostEntryInput{
		CustomerID: customer.ID,
		ShopID:     shop.ID,
		Type:       domain.EntryTypePaid,
		Amount:     decimal.NewFromInt(200),
	}); err != nil {
		t.Fatalf("failed to post entry: %v", err)
	}

	if _, err := ledgerUC.ReverseEntry(ctx, usecase.ReverseEntryInput{EntryID: reversed.ID}); err != nil {
		t.Fatalf("failed to reverse entry: %v", err)
	}

	summary, err := reportUC.GetSummary(ctx, usecase.EntryFilter{ShopID: shop.ID})
	if err != nil {
		t.Fatalf("failed to get summary: %v", err)
	}

	if !summary.TotalDebit.Equal(decimal.NewFromInt(300)) {
		t.Errorf("expected total debit 300, got %s", summary.TotalDebit)
	}
	if !summary.TotalCredit.Equal(decimal.NewFromInt(200)) {
		t.Errorf("expected total credit 200, got %s", summary.TotalCredit)
	}
	if !summary.NetBalance.Equal(decimal.NewFromInt(100)) {
		t.Errorf("expected net balance 100, got %s", summary.NetBalance)
	}
	if summary.TotalEffectiveEntries != 2 {
		t.Errorf("expected 2 effective entries, got %d", summary.TotalEffectiveEntries)
	}
}

func TestDashboardMetrics(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()
	testDB := testutil.NewTestDB(t)
	defer testDB.Cleanup()
	testDB.TruncateAll(ctx)

	ledgerUC := newLedgerUseCase(testDB)
	reportUC := newReportUseCase(testDB)

	shop := testDB.CreateTestShop(ctx, "corner store")
	owing := testDB.CreateTestCustomer(ctx, shop.ID, "asha")
	testDB.CreateTestCustomer(ctx, shop.ID, "bina")

	if _, err := ledgerUC.PostEntry(ctx, usecase.PostEntryInput{
		CustomerID: owing.ID,
		ShopID:     shop.ID,
		Type:       domain.EntryTypeBaki,
		Amount:     decimal.NewFromInt(400),
	}); err != nil {
		t.Fatalf("failed to post entry: %v", err)
	}

	metrics, err := reportUC.GetDashboard(ctx, shop.ID)
	if err != nil {
		t.Fatalf("failed to get dashboard: %v", err)
	}

	if metrics.TotalCustomers != 2 {
		t.Errorf("expected 2 customers, got %d", metrics.TotalCustomers)
	}
	if metrics.ActiveCustomers != 2 {
		t.Errorf("expected 2 active customers, got %d", metrics.ActiveCustomers)
	}
	if metrics.OutstandingCount != 1 {
		t.Errorf("expected 1 owing customer, got %d", metrics.OutstandingCount)
	}
	if !metrics.TotalOutstanding.Equal(decimal.NewFromInt(400)) {
		t.Errorf("expected 400 outstanding, got %s", metrics.TotalOutstanding)
	}
	if metrics.Distribution.BakiCount != 1 {
		t.Errorf("expected 1 BAKI in distribution, got %d", metrics.Distribution.BakiCount)
	}
}
