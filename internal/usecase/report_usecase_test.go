package usecase_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"

	"github.com/ysonawan/duebook/internal/domain"
	"github.com/ysonawan/duebook/internal/usecase"
	"github.com/ysonawan/duebook/internal/usecase/mocks"
)

func reportEntries(now time.Time) []*domain.Entry {
	ref := "e1"
	return []*domain.Entry{
		{ID: "e1", ShopID: "shop-1", CustomerID: "c1", Type: domain.EntryTypeBaki, Amount: decimal.NewFromInt(500), EntryDate: now.AddDate(0, 0, -2)},
		{ID: "e2", ShopID: "shop-1", CustomerID: "c1", Type: domain.EntryTypePaid, Amount: decimal.NewFromInt(200), EntryDate: now.AddDate(0, 0, -1)},
		{ID: "e3", ShopID: "shop-1", CustomerID: "c2", Type: domain.EntryTypeBaki, Amount: decimal.NewFromInt(300), EntryDate: now},
		// e1 is reversed: both e1 and its reversal drop out of the effective set.
		{ID: "e4", ShopID: "shop-1", CustomerID: "c1", Type: domain.EntryTypeReversal, Amount: decimal.NewFromInt(500), ReferenceEntryID: &ref, EntryDate: now},
	}
}

func TestReportUseCase_GetSummary(t *testing.T) {
	ctrl := gomock.NewController(t)
	entryRepo := mocks.NewMockEntryRepository(ctrl)
	customerRepo := mocks.NewMockCustomerRepository(ctrl)

	now := time.Now().UTC()
	filter := usecase.EntryFilter{ShopID: "shop-1"}

	entryRepo.EXPECT().ListAll(gomock.Any(), filter).Return(reportEntries(now), nil)

	uc := usecase.NewReportUseCase(entryRepo, customerRepo)

	summary, err := uc.GetSummary(context.Background(), filter)
	if err != nil {
		t.Fatalf("summary: %v", err)
	}

	if !summary.TotalDebit.Equal(decimal.NewFromInt(300)) {
		t.Errorf("expected debit 300, got %s", summary.TotalDebit)
	}
	if !summary.TotalCredit.Equal(decimal.NewFromInt(200)) {
		t.Errorf("expected credit 200, got %s", summary.TotalCredit)
	}
	if !summary.NetBalance.Equal(decimal.NewFromInt(100)) {
		t.Errorf("expected net 100, got %s", summary.NetBalance)
	}
	if summary.TotalEffectiveEntries != 2 {
		t.Errorf("expected 2 effective entries, got %d", summary.TotalEffectiveEntries)
	}
}

func TestReportUseCase_GetSummary_CacheHit(t *testing.T) {
	ctrl := gomock.NewController(t)
	entryRepo := mocks.NewMockEntryRepository(ctrl)
	customerRepo := mocks.NewMockCustomerRepository(ctrl)
	cache := mocks.NewMockCache(ctrl)

	want := domain.Summary{
		TotalDebit:            decimal.NewFromInt(900),
		TotalCredit:           decimal.NewFromInt(400),
		NetBalance:            decimal.NewFromInt(500),
		TotalEffectiveEntries: 7,
	}
	raw, _ := json.Marshal(want)

	// No ListAll expectation: a cache hit must not touch storage.
	cache.EXPECT().Get(gomock.Any(), gomock.Any()).Return(string(raw), nil)

	uc := usecase.NewReportUseCase(entryRepo, customerRepo).WithCache(cache)

	summary, err := uc.GetSummary(context.Background(), usecase.EntryFilter{ShopID: "shop-1"})
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if !summary.TotalDebit.Equal(want.TotalDebit) || summary.TotalEffectiveEntries != want.TotalEffectiveEntries {
		t.Errorf("expected cached summary %+v, got %+v", want, summary)
	}
}

func TestReportUseCase_GetSummary_CacheMissRecomputes(t *testing.T) {
	ctrl := gomock.NewController(t)
	entryRepo := mocks.NewMockEntryRepository(ctrl)
	customerRepo := mocks.NewMockCustomerRepository(ctrl)
	cache := mocks.NewMockCache(ctrl)

	now := time.Now().UTC()

	cache.EXPECT().Get(gomock.Any(), gomock.Any()).Return("", nil)
	entryRepo.EXPECT().ListAll(gomock.Any(), gomock.Any()).Return(reportEntries(now), nil)
	cache.EXPECT().Set(gomock.Any(), gomock.Any(), gomock.Any(), 30*time.Second).Return(nil)

	uc := usecase.NewReportUseCase(entryRepo, customerRepo).WithCache(cache)

	summary, err := uc.GetSummary(context.Background(), usecase.EntryFilter{ShopID: "shop-1"})
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if summary.TotalEffectiveEntries != 2 {
		t.Errorf("expected recomputed summary, got %+v", summary)
	}
}

func TestReportUseCase_InvalidateShop(t *testing.T) {
	ctrl := gomock.NewController(t)
	entryRepo := mocks.NewMockEntryRepository(ctrl)
	customerRepo := mocks.NewMockCustomerRepository(ctrl)
	cache := mocks.NewFakeCache()

	now := time.Now().UTC()
	entryRepo.EXPECT().ListAll(gomock.Any(), gomock.Any()).Return(reportEntries(now), nil).Times(2)

	uc := usecase.NewReportUseCase(entryRepo, customerRepo).WithCache(cache)

	filter := usecase.EntryFilter{ShopID: "shop-1"}
	if _, err := uc.GetSummary(context.Background(), filter); err != nil {
		t.Fatalf("summary: %v", err)
	}

	uc.InvalidateShop(context.Background(), "shop-1")

	// The cached summary is gone, so storage is hit again.
	if _, err := uc.GetSummary(context.Background(), filter); err != nil {
		t.Fatalf("summary after invalidation: %v", err)
	}
}

func TestReportUseCase_GetTrend(t *testing.T) {
	ctrl := gomock.NewController(t)
	entryRepo := mocks.NewMockEntryRepository(ctrl)
	customerRepo := mocks.NewMockCustomerRepository(ctrl)

	now := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)
	entryRepo.EXPECT().ListAll(gomock.Any(), gomock.Any()).Return(reportEntries(now), nil)

	uc := usecase.NewReportUseCase(entryRepo, customerRepo)

	trend, err := uc.GetTrend(context.Background(), usecase.EntryFilter{ShopID: "shop-1"})
	if err != nil {
		t.Fatalf("trend: %v", err)
	}

	// e1 and e4 cancel out; e2 and e3 land on consecutive days.
	if len(trend) != 2 {
		t.Fatalf("expected 2 buckets, got %d", len(trend))
	}
	if !trend[0].Date.Before(trend[1].Date) {
		t.Errorf("buckets must be ascending: %v then %v", trend[0].Date, trend[1].Date)
	}
	if !trend[0].CreditAmount.Equal(decimal.NewFromInt(200)) {
		t.Errorf("expected first bucket credit 200, got %s", trend[0].CreditAmount)
	}
	if !trend[1].DebitAmount.Equal(decimal.NewFromInt(300)) {
		t.Errorf("expected second bucket debit 300, got %s", trend[1].DebitAmount)
	}
}

func TestReportUseCase_GetDashboard(t *testing.T) {
	ctrl := gomock.NewController(t)
	entryRepo := mocks.NewMockEntryRepository(ctrl)
	customerRepo := mocks.NewMockCustomerRepository(ctrl)

	now := time.Now().UTC()

	entryRepo.EXPECT().ListAll(gomock.Any(), usecase.EntryFilter{ShopID: "shop-1"}).Return(reportEntries(now), nil)
	customerRepo.EXPECT().CountByShop(gomock.Any(), "shop-1").Return(int64(5), int64(4), nil)
	customerRepo.EXPECT().Outstanding(gomock.Any(), "shop-1").Return(int64(3), decimal.NewFromInt(700), nil)

	uc := usecase.NewReportUseCase(entryRepo, customerRepo)

	metrics, err := uc.GetDashboard(context.Background(), "shop-1")
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}

	if metrics.TotalCustomers != 5 || metrics.ActiveCustomers != 4 {
		t.Errorf("unexpected customer counts: %d/%d", metrics.ActiveCustomers, metrics.TotalCustomers)
	}
	if metrics.OutstandingCount != 3 || !metrics.TotalOutstanding.Equal(decimal.NewFromInt(700)) {
		t.Errorf("unexpected outstanding: %d owing %s", metrics.OutstandingCount, metrics.TotalOutstanding)
	}
	// (300 debit + 200 credit) over 2 effective entries.
	if !metrics.AverageEntryValue.Equal(decimal.NewFromInt(250)) {
		t.Errorf("expected average 250, got %s", metrics.AverageEntryValue)
	}
	if metrics.Distribution.BakiCount != 1 || metrics.Distribution.PaidCount != 1 {
		t.Errorf("unexpected distribution: %+v", metrics.Distribution)
	}
	if len(metrics.Trend) == 0 {
		t.Error("expected a non-empty trend")
	}
}

func TestReportUseCase_GetDashboard_AllShops(t *testing.T) {
	ctrl := gomock.NewController(t)
	entryRepo := mocks.NewMockEntryRepository(ctrl)
	customerRepo := mocks.NewMockCustomerRepository(ctrl)

	// "0" spans every shop and normalizes to "" for customer queries.
	entryRepo.EXPECT().ListAll(gomock.Any(), usecase.EntryFilter{ShopID: "0"}).Return(nil, nil)
	customerRepo.EXPECT().CountByShop(gomock.Any(), "").Return(int64(0), int64(0), nil)
	customerRepo.EXPECT().Outstanding(gomock.Any(), "").Return(int64(0), decimal.Zero, nil)

	uc := usecase.NewReportUseCase(entryRepo, customerRepo)

	metrics, err := uc.GetDashboard(context.Background(), "0")
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}
	if !metrics.AverageEntryValue.Equal(decimal.Zero) {
		t.Errorf("empty ledger average must be 0, got %s", metrics.AverageEntryValue)
	}
}
