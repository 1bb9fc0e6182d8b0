// Package query implements the sales query engine: declarative filtering,
// sorting and pagination over a supplied record set. The engine is a pure
// computation — it never mutates the records or any shared state, so
// concurrent queries against the same source are safe.
package query

import (
	"context"
	"fmt"
	"sort"

	"salesbrowser/models"
)

// RecordSource supplies the full candidate record set. Implementations may
// hold an in-memory snapshot loaded at startup or fetch from a store per
// request.
type RecordSource interface {
	Records(ctx context.Context) ([]models.SalesRecord, error)
}

// Engine answers queries against a RecordSource.
type Engine struct {
	source RecordSource
}

func NewEngine(source RecordSource) *Engine {
	return &Engine{source: source}
}

// Query filters, sorts and paginates the record set according to p.
// Malformed filter values degrade to their documented defaults; the only
// error path is the record source itself being unavailable.
func (e *Engine) Query(ctx context.Context, p Params) (*models.ResultPage, error) {
	records, err := e.source.Records(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading sales records: %w", err)
	}

	s := normalize(p)
	filtered := s.filter(records)
	sortRecords(filtered, s.key, s.descending)

	totalItems := len(filtered)
	totalPages := (totalItems + s.pageSize - 1) / s.pageSize
	if totalPages < 1 {
		totalPages = 1
	}

	// Out-of-range pages clamp silently, never error.
	page := s.page
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * s.pageSize
	end := start + s.pageSize
	if start > totalItems {
		start = totalItems
	}
	if end > totalItems {
		end = totalItems
	}

	return &models.ResultPage{
		Meta: models.Pagination{
			Page:       page,
			PageSize:   s.pageSize,
			TotalItems: totalItems,
			TotalPages: totalPages,
		},
		Data: filtered[start:end],
	}, nil
}

// Summarize aggregates the filtered (pre-pagination) result set for the
// same parameters a Query call would use; paging inputs are ignored.
func (e *Engine) Summarize(ctx context.Context, p Params) (*models.SalesSummary, error) {
	records, err := e.source.Records(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading sales records: %w", err)
	}

	s := normalize(p)
	summary := &models.SalesSummary{
		RevenueByCategory: make(map[string]float64),
	}
	for i := range records {
		r := &records[i]
		if !s.matches(r) {
			continue
		}
		summary.TotalItems++
		summary.TotalQuantity += r.Quantity
		summary.TotalAmount += r.TotalAmount
		summary.FinalAmount += r.FinalAmount
		if r.ProductCategory != "" {
			summary.RevenueByCategory[r.ProductCategory] += r.FinalAmount
		}
	}
	return summary, nil
}

// FilterOptions collects the distinct values available for each
// multi-select filter across the full record set, sorted for display.
func (e *Engine) FilterOptions(ctx context.Context) (*models.FilterOptions, error) {
	records, err := e.source.Records(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading sales records: %w", err)
	}

	regions := map[string]bool{}
	genders := map[string]bool{}
	categories := map[string]bool{}
	payments := map[string]bool{}
	tags := map[string]bool{}

	for i := range records {
		r := &records[i]
		if r.CustomerRegion != "" {
			regions[r.CustomerRegion] = true
		}
		if r.Gender != "" {
			genders[r.Gender] = true
		}
		if r.ProductCategory != "" {
			categories[r.ProductCategory] = true
		}
		if r.PaymentMethod != "" {
			payments[r.PaymentMethod] = true
		}
		for _, t := range r.Tags {
			if t != "" {
				tags[t] = true
			}
		}
	}

	return &models.FilterOptions{
		Regions:           sortedKeys(regions),
		Genders:           sortedKeys(genders),
		ProductCategories: sortedKeys(categories),
		PaymentMethods:    sortedKeys(payments),
		Tags:              sortedKeys(tags),
	}, nil
}

// filter returns the records passing every active predicate, in source
// order. The result is always a fresh slice; the input is never reordered.
func (s *spec) filter(records []models.SalesRecord) []models.SalesRecord {
	filtered := make([]models.SalesRecord, 0, len(records))
	for i := range records {
		if s.matches(&records[i]) {
			filtered = append(filtered, records[i])
		}
	}
	return filtered
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
