package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	entriesPosted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "duebook_entries_posted_total",
			Help: "Total number of ledger entries posted by type",
		},
		[]string{"entry_type"},
	)

	entriesReversed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "duebook_entries_reversed_total",
		Help: "Total number of ledger entries reversed",
	})

	entryAmount = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "duebook_entry_amount",
		Help:    "Posted entry amounts",
		Buckets: []float64{1, 10, 100, 1000, 10000, 100000, 1000000},
	})

	customersCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "duebook_customers_created_total",
		Help: "Total number of customers created",
	})

	reportCacheOps = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "duebook_report_cache_ops_total",
			Help: "Report cache operations by result",
		},
		[]string{"result"},
	)

	auditLogsCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "duebook_audit_logs_total",
			Help: "Total audit logs written by action",
		},
		[]string{"action"},
	)
)

// EntryPosted records a successfully posted ledger entry.
func EntryPosted(entryType string, amount float64) {
	entriesPosted.WithLabelValues(entryType).Inc()
	entryAmount.Observe(amount)
}

// EntryReversed records a successful reversal.
func EntryReversed() {
	entriesReversed.Inc()
}

// CustomerCreated records a newly registered customer.
func CustomerCreated() {
	customersCreated.Inc()
}

// CacheHit records a report cache hit.
func CacheHit() {
	reportCacheOps.WithLabelValues("hit").Inc()
}

// CacheMiss records a report cache miss.
func CacheMiss() {
	reportCacheOps.WithLabelValues("miss").Inc()
}

// AuditLogCreated records a written audit log.
func AuditLogCreated(action string) {
	auditLogsCreated.WithLabelValues(action).Inc()
}
