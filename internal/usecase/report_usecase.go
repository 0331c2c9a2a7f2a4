package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ysonawan/duebook/internal/domain"
)

const (
	defaultReportCacheTTL = 30 * time.Second
	trendWindowDays       = 30
)

// ReportUseCase derives summaries, trends and dashboard metrics from the
// ledger. All aggregation is pure over one storage snapshot; results may be
// cached briefly.
type ReportUseCase struct {
	entryRepo    EntryRepository
	customerRepo CustomerRepository
	cache        Cache
	cacheTTL     time.Duration
}

// NewReportUseCase creates a new ReportUseCase.
func NewReportUseCase(entryRepo EntryRepository, customerRepo CustomerRepository) *ReportUseCase {
	return &ReportUseCase{
		entryRepo:    entryRepo,
		customerRepo: customerRepo,
	}
}

// WithCache enables short-lived caching of computed reports.
func (uc *ReportUseCase) WithCache(cache Cache) *ReportUseCase {
	uc.cache = cache
	return uc
}

// WithCacheTTL overrides how long computed reports stay cached. A
// non-positive ttl keeps the default of 30 seconds.
func (uc *ReportUseCase) WithCacheTTL(ttl time.Duration) *ReportUseCase {
	uc.cacheTTL = ttl
	return uc
}

func (uc *ReportUseCase) ttl() time.Duration {
	if uc.cacheTTL > 0 {
		return uc.cacheTTL
	}

	return defaultReportCacheTTL
}

// GetSummary computes ledger totals over the full filtered entry set, not
// just one page.
func (uc *ReportUseCase) GetSummary(ctx context.Context, filter EntryFilter) (domain.Summary, error) {
	key := reportCacheKey("summary", filter)

	var cached domain.Summary
	if uc.cacheGet(ctx, key, &cached) {
		return cached, nil
	}

	entries, err := uc.entryRepo.ListAll(ctx, filter)
	if err != nil {
		return domain.Summary{}, err
	}

	summary := domain.Summarize(entries)
	uc.cacheSet(ctx, key, summary, uc.ttl())

	return summary, nil
}

// GetTrend buckets the filtered effective entries by calendar day, ascending.
func (uc *ReportUseCase) GetTrend(ctx context.Context, filter EntryFilter) ([]domain.DailyBucket, error) {
	entries, err := uc.entryRepo.ListAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	return domain.Trend(entries), nil
}

// DashboardMetrics is the aggregate view backing the dashboard screen.
type DashboardMetrics struct {
	Summary           domain.Summary          `json:"summary"`
	Distribution      domain.TypeDistribution `json:"distribution"`
	Trend             []domain.DailyBucket    `json:"trend"`
	AverageEntryValue decimal.Decimal         `json:"average_entry_value"`
	TotalOutstanding  decimal.Decimal         `json:"total_outstanding"`
	TotalCustomers    int64                   `json:"total_customers"`
	ActiveCustomers   int64                   `json:"active_customers"`
	OutstandingCount  int64                   `json:"outstanding_count"`
}

// GetDashboard computes the dashboard metrics for one shop, or for all shops
// when shopID is "0" or empty. The trend and distribution cover the last 30
// days; the summary covers the whole ledger.
func (uc *ReportUseCase) GetDashboard(ctx context.Context, shopID string) (*DashboardMetrics, error) {
	filter := EntryFilter{ShopID: shopID}
	key := reportCacheKey("dashboard", filter)

	var cached DashboardMetrics
	if uc.cacheGet(ctx, key, &cached) {
		return &cached, nil
	}

	entries, err := uc.entryRepo.ListAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	summary := domain.Summarize(entries)

	windowStart := time.Now().UTC().AddDate(0, 0, -trendWindowDays)
	var recent []*domain.Entry
	for _, e := range entries {
		if !e.EntryDate.Before(windowStart) {
			recent = append(recent, e)
		}
	}

	total, active, err := uc.customerRepo.CountByShop(ctx, normalizeShopID(shopID))
	if err != nil {
		return nil, err
	}

	outstandingCount, outstandingTotal, err := uc.customerRepo.Outstanding(ctx, normalizeShopID(shopID))
	if err != nil {
		return nil, err
	}

	avg := decimal.Zero
	if summary.TotalEffectiveEntries > 0 {
		avg = summary.TotalDebit.Add(summary.TotalCredit).
			Div(decimal.NewFromInt(summary.TotalEffectiveEntries))
	}

	metrics := &DashboardMetrics{
		Summary:           summary,
		Distribution:      domain.Distribution(recent),
		Trend:             domain.Trend(recent),
		AverageEntryValue: avg,
		TotalOutstanding:  outstandingTotal,
		TotalCustomers:    total,
		ActiveCustomers:   active,
		OutstandingCount:  outstandingCount,
	}

	uc.cacheSet(ctx, key, metrics, uc.ttl())

	return metrics, nil
}

// cacheGet loads a cached report into dest; a miss or any cache error just
// means recompute.
func (uc *ReportUseCase) cacheGet(ctx context.Context, key string, dest any) bool {
	if uc.cache == nil {
		return false
	}

	raw, err := uc.cache.Get(ctx, key)
	if err != nil || raw == "" {
		return false
	}

	return json.Unmarshal([]byte(raw), dest) == nil
}

func (uc *ReportUseCase) cacheSet(ctx context.Context, key string, value any, ttl time.Duration) {
	if uc.cache == nil {
		return
	}

	raw, err := json.Marshal(value)
	if err != nil {
		return
	}

	_ = uc.cache.Set(ctx, key, string(raw), ttl)
}

// InvalidateShop drops every cached report covering shopID, including the
// all-shops views that fold its entries in. Best-effort: a failed delete only
// extends staleness until the TTL.
func (uc *ReportUseCase) InvalidateShop(ctx context.Context, shopID string) {
	if uc.cache == nil {
		return
	}

	shop := normalizeShopID(shopID)
	_ = uc.cache.DeletePrefix(ctx, "report:"+shop+":")
	if shop != "" {
		_ = uc.cache.DeletePrefix(ctx, "report::")
	}
}

// reportCacheKey keys reports shop-first so InvalidateShop can drop them by
// prefix.
func reportCacheKey(kind string, f EntryFilter) string {
	start, end := "", ""
	if f.StartDate != nil {
		start = f.StartDate.Format("2006-01-02")
	}
	if f.EndDate != nil {
		end = f.EndDate.Format("2006-01-02")
	}

	return fmt.Sprintf("report:%s:%s:%s:%s:%s:%s",
		normalizeShopID(f.ShopID), kind, f.CustomerID, f.EntryType, start, end)
}

func normalizeShopID(shopID string) string {
	if shopID == "0" {
		return ""
	}

	return shopID
}
