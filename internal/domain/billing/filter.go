package billing

import (
	"strings"
	"time"
)

// Date range filter values accepted by List.
const (
	RangeAll   = "all"
	RangeToday = "today"
	RangeWeek  = "week"
	RangeMonth = "month"
)

// FilterOptions combine with AND. Zero values mean "no constraint".
type FilterOptions struct {
	Search    string
	Status    string
	DateRange string
}

// Summary aggregates are always computed over the unfiltered collection,
// regardless of which filters are active.
type Summary struct {
	PendingTotal float64 `json:"pending_total"`
	PaidTotal    float64 `json:"paid_total"`
}

// ApplyFilters narrows invoices to those matching every active filter. The
// input slice is never mutated. Search is a case-insensitive substring match
// over invoice number, patient name and service description; an invoice with
// no joined patient matches on its other fields only. Date ranges are
// measured as fractional days from now against CreatedAt with strict upper
// bounds, so an invoice created exactly 7.0 days ago falls outside "week".
func ApplyFilters(invoices []*Invoice, opts FilterOptions, now time.Time) []*Invoice {
	out := make([]*Invoice, 0, len(invoices))
	needle := strings.ToLower(opts.Search)
	for _, inv := range invoices {
		if needle != "" && !matchesSearch(inv, needle) {
			continue
		}
		if opts.Status != "" && opts.Status != RangeAll && inv.Status != opts.Status {
			continue
		}
		if !matchesDateRange(inv, opts.DateRange, now) {
			continue
		}
		out = append(out, inv)
	}
	return out
}

func matchesSearch(inv *Invoice, needle string) bool {
	if strings.Contains(strings.ToLower(inv.InvoiceNumber), needle) {
		return true
	}
	if inv.PatientName != nil && strings.Contains(strings.ToLower(*inv.PatientName), needle) {
		return true
	}
	return strings.Contains(strings.ToLower(inv.ServiceDescription), needle)
}

func matchesDateRange(inv *Invoice, dateRange string, now time.Time) bool {
	if dateRange == "" || dateRange == RangeAll {
		return true
	}
	days := now.Sub(inv.CreatedAt).Hours() / 24
	switch dateRange {
	case RangeToday:
		return days < 1
	case RangeWeek:
		return days < 7
	case RangeMonth:
		return days < 30
	default:
		return true
	}
}

// Summarize sums pending and paid amounts. Overdue invoices count toward
// neither bucket.
func Summarize(invoices []*Invoice) Summary {
	var s Summary
	for _, inv := range invoices {
		switch inv.Status {
		case StatusPending:
			s.PendingTotal += inv.Amount
		case StatusPaid:
			s.PaidTotal += inv.Amount
		}
	}
	return s
}
