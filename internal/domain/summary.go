package domain

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// Summary aggregates the effective entries of a ledger slice.
type Summary struct {
	TotalDebit            decimal.Decimal `json:"total_debit"`
	TotalCredit           decimal.Decimal `json:"total_credit"`
	NetBalance            decimal.Decimal `json:"net_balance"`
	TotalEffectiveEntries int64           `json:"total_effective_entries"`
}

// DailyBucket holds per-day debit/credit totals for the trend view.
type DailyBucket struct {
	Date         time.Time       `json:"date"`
	DebitAmount  decimal.Decimal `json:"debit_amount"`
	CreditAmount decimal.Decimal `json:"credit_amount"`
	DebitCount   int64           `json:"debit_count"`
	CreditCount  int64           `json:"credit_count"`
}

// TypeDistribution counts effective entries by type.
type TypeDistribution struct {
	BakiAmount decimal.Decimal `json:"baki_amount"`
	PaidAmount decimal.Decimal `json:"paid_amount"`
	BakiCount  int64           `json:"baki_count"`
	PaidCount  int64           `json:"paid_count"`
}

// ReversedEntryIDs collects the ids of entries that a REVERSAL in the input
// references. The reversed status is derived here, never stored on the entry.
func ReversedEntryIDs(entries []*Entry) map[string]struct{} {
	reversed := make(map[string]struct{})
	for _, e := range entries {
		if e.Type == EntryTypeReversal && e.ReferenceEntryID != nil {
			reversed[*e.ReferenceEntryID] = struct{}{}
		}
	}

	return reversed
}

// EffectiveEntries returns the entries that count toward totals: reversed
// originals and the reversal entries themselves are both excluded. Every
// summary in the system must derive from this set.
func EffectiveEntries(entries []*Entry) []*Entry {
	reversed := ReversedEntryIDs(entries)

	effective := make([]*Entry, 0, len(entries))
	for _, e := range entries {
		if e.Type == EntryTypeReversal {
			continue
		}
		if _, ok := reversed[e.ID]; ok {
			continue
		}

		effective = append(effective, e)
	}

	return effective
}

// Summarize computes ledger totals over any entry slice, including the empty
// slice.
func Summarize(entries []*Entry) Summary {
	s := Summary{
		TotalDebit:  decimal.Zero,
		TotalCredit: decimal.Zero,
		NetBalance:  decimal.Zero,
	}

	for _, e := range EffectiveEntries(entries) {
		switch e.Type {
		case EntryTypeBaki:
			s.TotalDebit = s.TotalDebit.Add(e.Amount)
		case EntryTypePaid:
			s.TotalCredit = s.TotalCredit.Add(e.Amount)
		}

		s.TotalEffectiveEntries++
	}

	s.NetBalance = s.TotalDebit.Sub(s.TotalCredit)

	return s
}

// Trend buckets effective entries by calendar day of the entry date and
// returns the buckets in ascending date order. Days with no effective entries
// produce no bucket.
func Trend(entries []*Entry) []DailyBucket {
	byDay := make(map[time.Time]*DailyBucket)
	for _, e := range EffectiveEntries(entries) {
		day := bucketDay(e.EntryDate)

		b, ok := byDay[day]
		if !ok {
			b = &DailyBucket{
				Date:         day,
				DebitAmount:  decimal.Zero,
				CreditAmount: decimal.Zero,
			}
			byDay[day] = b
		}

		switch e.Type {
		case EntryTypeBaki:
			b.DebitAmount = b.DebitAmount.Add(e.Amount)
			b.DebitCount++
		case EntryTypePaid:
			b.CreditAmount = b.CreditAmount.Add(e.Amount)
			b.CreditCount++
		}
	}

	buckets := make([]DailyBucket, 0, len(byDay))
	for _, b := range byDay {
		buckets = append(buckets, *b)
	}

	sort.Slice(buckets, func(i, j int) bool {
		return buckets[i].Date.Before(buckets[j].Date)
	})

	return buckets
}

// Distribution counts effective entries by type.
func Distribution(entries []*Entry) TypeDistribution {
	d := TypeDistribution{
		BakiAmount: decimal.Zero,
		PaidAmount: decimal.Zero,
	}

	for _, e := range EffectiveEntries(entries) {
		switch e.Type {
		case EntryTypeBaki:
			d.BakiAmount = d.BakiAmount.Add(e.Amount)
			d.BakiCount++
		case EntryTypePaid:
			d.PaidAmount = d.PaidAmount.Add(e.Amount)
			d.PaidCount++
		}
	}

	return d
}

// bucketDay truncates a timestamp to its UTC calendar day. Timezone display
// policy belongs to the caller.
func bucketDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
