package query

import (
	"sort"
	"strings"

	"salesbrowser/models"
)

// sortKey enumerates the supported sort fields. Keeping the set closed in a
// comparator table means an unrecognized sortBy can only ever dispatch to
// sortNone, the identity sort.
type sortKey int

const (
	sortNone sortKey = iota
	sortDate
	sortQuantity
	sortAmount
	sortCustomerName
)

var sortKeys = map[string]sortKey{
	"date":         sortDate,
	"quantity":     sortQuantity,
	"qty":          sortQuantity,
	"amount":       sortAmount,
	"finalAmount":  sortAmount,
	"customerName": sortCustomerName,
}

func parseSortKey(raw string) sortKey {
	return sortKeys[strings.TrimSpace(raw)]
}

// normalizeOrder resolves the sort direction. When sortOrder is absent, date
// sorts descending (newest first) and every other key ascending, matching
// the behavior the frontend was built against.
func normalizeOrder(raw string, key sortKey) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "desc":
		return true
	case "asc":
		return false
	default:
		return key == sortDate
	}
}

// comparator returns <0, 0 or >0 for ascending order between two records.
type comparator func(a, b *models.SalesRecord) int

var comparators = map[sortKey]comparator{
	sortDate:         compareDate,
	sortQuantity:     compareQuantity,
	sortAmount:       compareAmount,
	sortCustomerName: compareCustomerName,
}

func compareDate(a, b *models.SalesRecord) int {
	// Unparseable dates fall back to the zero time and sort lowest.
	ta, _, _ := parseDate(a.Date)
	tb, _, _ := parseDate(b.Date)
	switch {
	case ta.Before(tb):
		return -1
	case ta.After(tb):
		return 1
	default:
		return 0
	}
}

func compareQuantity(a, b *models.SalesRecord) int {
	return a.Quantity - b.Quantity
}

func compareAmount(a, b *models.SalesRecord) int {
	switch {
	case a.FinalAmount < b.FinalAmount:
		return -1
	case a.FinalAmount > b.FinalAmount:
		return 1
	default:
		return 0
	}
}

func compareCustomerName(a, b *models.SalesRecord) int {
	return strings.Compare(strings.ToLower(a.CustomerName), strings.ToLower(b.CustomerName))
}

// sortRecords sorts in place, stably, so records comparing equal keep their
// pre-sort relative order. sortNone leaves the slice untouched.
func sortRecords(records []models.SalesRecord, key sortKey, descending bool) {
	cmp, ok := comparators[key]
	if !ok {
		return
	}
	sort.SliceStable(records, func(i, j int) bool {
		c := cmp(&records[i], &records[j])
		if descending {
			return c > 0
		}
		return c < 0
	})
}
