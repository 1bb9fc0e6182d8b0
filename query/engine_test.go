package query

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salesbrowser/models"
)

type staticSource struct {
	records []models.SalesRecord
}

func (s *staticSource) Records(ctx context.Context) ([]models.SalesRecord, error) {
	return s.records, nil
}

type failingSource struct{}

func (failingSource) Records(ctx context.Context) ([]models.SalesRecord, error) {
	return nil, errors.New("connection refused")
}

func intPtr(n int) *int { return &n }

func testRecords() []models.SalesRecord {
	return []models.SalesRecord{
		{
			CustomerID: "C001", CustomerName: "Aarav Shah", PhoneNumber: "9876500001",
			Gender: "Male", Age: intPtr(34), CustomerRegion: "North",
			ProductCategory: "Beauty", Tags: []string{"organic", "skincare"},
			Quantity: 2, TotalAmount: 500, FinalAmount: 450,
			Date: "2024-05-09", PaymentMethod: "UPI",
		},
		{
			CustomerID: "C002", CustomerName: "Bina Patel", PhoneNumber: "9876500002",
			Gender: "Female", Age: intPtr(27), CustomerRegion: "South",
			ProductCategory: "Electronics", Tags: []string{"gadget"},
			Quantity: 1, TotalAmount: 1200, FinalAmount: 1100,
			Date: "2024-05-10T23:59:00", PaymentMethod: "Cash",
		},
		{
			CustomerID: "C003", CustomerName: "Chirag Rao", PhoneNumber: "9876500003",
			Gender: "Male", Age: intPtr(45), CustomerRegion: "North",
			ProductCategory: "Beauty", Tags: []string{"organic"},
			Quantity: 5, TotalAmount: 300, FinalAmount: 300,
			Date: "2024-05-11", PaymentMethod: "Wallet",
		},
		{
			CustomerID: "C004", CustomerName: "Divya Nair", PhoneNumber: "9876500004",
			Gender: "Female", Age: nil, CustomerRegion: "",
			ProductCategory: "Clothing", Tags: nil,
			Quantity: 3, TotalAmount: 800, FinalAmount: 720,
			Date: "not-a-date", PaymentMethod: "UPI",
		},
	}
}

func newTestEngine(records []models.SalesRecord) *Engine {
	return NewEngine(&staticSource{records: records})
}

func TestQueryNoFiltersReturnsEverything(t *testing.T) {
	engine := newTestEngine(testRecords())

	page, err := engine.Query(context.Background(), Params{})
	require.NoError(t, err)

	assert.Equal(t, 4, page.Meta.TotalItems)
	assert.Equal(t, 1, page.Meta.Page)
	assert.Equal(t, 10, page.Meta.PageSize)
	assert.Equal(t, 1, page.Meta.TotalPages)
	assert.Len(t, page.Data, 4)
}

func TestQuerySoundnessAndCompleteness(t *testing.T) {
	records := testRecords()
	engine := newTestEngine(records)

	params := Params{
		Search:         "98765",
		Regions:        []string{"North,South"},
		Genders:        []string{"Male", "Female"},
		AgeMin:         "20",
		AgeMax:         "50",
		PaymentMethods: []string{"UPI", "Cash", "Wallet"},
		DateStart:      "2024-05-01",
		DateEnd:        "2024-05-31",
		PageSize:       "100",
	}

	page, err := engine.Query(context.Background(), params)
	require.NoError(t, err)

	s := normalize(params)
	included := map[string]bool{}
	for i := range page.Data {
		// Soundness: every returned record passes every active predicate.
		assert.True(t, s.matches(&page.Data[i]), "record %s should match", page.Data[i].CustomerID)
		included[page.Data[i].CustomerID] = true
	}
	// Completeness: every record left out fails at least one predicate.
	for i := range records {
		if !included[records[i].CustomerID] {
			assert.False(t, s.matches(&records[i]), "record %s should not match", records[i].CustomerID)
		}
	}

	// C004 has no region, no age and a broken date; the active filters must
	// reject it rather than let it slip through unclassified.
	assert.False(t, included["C004"])
}

func TestTagFilterIsContainmentNotMembership(t *testing.T) {
	engine := newTestEngine(testRecords())

	// C003 carries only {organic}; requiring both tags must exclude it even
	// though a membership filter would let it in.
	page, err := engine.Query(context.Background(), Params{Tags: []string{"organic", "skincare"}})
	require.NoError(t, err)

	require.Len(t, page.Data, 1)
	assert.Equal(t, "C001", page.Data[0].CustomerID)
}

func TestDateEndIncludesWholeDay(t *testing.T) {
	engine := newTestEngine(testRecords())

	page, err := engine.Query(context.Background(), Params{DateEnd: "2024-05-10"})
	require.NoError(t, err)

	ids := recordIDs(page.Data)
	// C002 is stamped 23:59 on the end day and must still be included.
	assert.Contains(t, ids, "C002")
	assert.Contains(t, ids, "C001")
	assert.NotContains(t, ids, "C003")
}

func TestPaginationClampsOutOfRangePage(t *testing.T) {
	engine := newTestEngine(testRecords()[:3])

	page, err := engine.Query(context.Background(), Params{Page: "999", PageSize: "10"})
	require.NoError(t, err)

	assert.Equal(t, 1, page.Meta.Page)
	assert.Equal(t, 1, page.Meta.TotalPages)
	assert.Equal(t, 3, page.Meta.TotalItems)
	assert.Len(t, page.Data, 3)
}

func TestPaginationSlicesPages(t *testing.T) {
	engine := newTestEngine(testRecords())

	first, err := engine.Query(context.Background(), Params{PageSize: "3"})
	require.NoError(t, err)
	assert.Equal(t, 2, first.Meta.TotalPages)
	assert.Len(t, first.Data, 3)

	second, err := engine.Query(context.Background(), Params{Page: "2", PageSize: "3"})
	require.NoError(t, err)
	assert.Equal(t, 2, second.Meta.Page)
	assert.Len(t, second.Data, 1)
}

func TestSortStability(t *testing.T) {
	records := []models.SalesRecord{
		{CustomerID: "A", Quantity: 1, Date: "2024-01-01"},
		{CustomerID: "B", Quantity: 1, Date: "2024-01-01"},
		{CustomerID: "C", Quantity: 1, Date: "2024-01-01"},
	}
	engine := newTestEngine(records)

	page, err := engine.Query(context.Background(), Params{SortBy: "quantity"})
	require.NoError(t, err)

	assert.Equal(t, []string{"A", "B", "C"}, recordIDs(page.Data))
}

func TestSortByDateDefaultsDescending(t *testing.T) {
	engine := newTestEngine(testRecords())

	page, err := engine.Query(context.Background(), Params{SortBy: "date"})
	require.NoError(t, err)

	// C004's date is unparseable and sorts lowest, so it lands last when
	// descending.
	assert.Equal(t, []string{"C003", "C002", "C001", "C004"}, recordIDs(page.Data))
}

func TestSortByAmountAscending(t *testing.T) {
	engine := newTestEngine(testRecords())

	page, err := engine.Query(context.Background(), Params{SortBy: "amount"})
	require.NoError(t, err)

	assert.Equal(t, []string{"C003", "C001", "C004", "C002"}, recordIDs(page.Data))
}

func TestUnknownSortKeyKeepsSourceOrder(t *testing.T) {
	engine := newTestEngine(testRecords())

	page, err := engine.Query(context.Background(), Params{SortBy: "discount"})
	require.NoError(t, err)

	assert.Equal(t, []string{"C001", "C002", "C003", "C004"}, recordIDs(page.Data))
}

func TestAgeBoundsSwap(t *testing.T) {
	engine := newTestEngine(testRecords())

	swapped, err := engine.Query(context.Background(), Params{AgeMin: "50", AgeMax: "20"})
	require.NoError(t, err)
	straight, err := engine.Query(context.Background(), Params{AgeMin: "20", AgeMax: "50"})
	require.NoError(t, err)

	assert.Equal(t, recordIDs(straight.Data), recordIDs(swapped.Data))
	assert.Equal(t, []string{"C001", "C002", "C003"}, recordIDs(straight.Data))
}

func TestListAndCommaStringAreEquivalent(t *testing.T) {
	engine := newTestEngine(testRecords())

	asString, err := engine.Query(context.Background(), Params{Regions: []string{"North, South"}})
	require.NoError(t, err)
	asList, err := engine.Query(context.Background(), Params{Regions: []string{"North", "South"}})
	require.NoError(t, err)

	assert.Equal(t, recordIDs(asList.Data), recordIDs(asString.Data))
	assert.Equal(t, 3, asString.Meta.TotalItems)
}

func TestEmptyResultSet(t *testing.T) {
	engine := newTestEngine(testRecords())

	page, err := engine.Query(context.Background(), Params{Regions: []string{"West"}})
	require.NoError(t, err)

	assert.Equal(t, 0, page.Meta.TotalItems)
	assert.Equal(t, 1, page.Meta.TotalPages)
	assert.Equal(t, 1, page.Meta.Page)
	assert.NotNil(t, page.Data)
	assert.Empty(t, page.Data)
}

func TestQuerySourceFailure(t *testing.T) {
	engine := NewEngine(failingSource{})

	_, err := engine.Query(context.Background(), Params{})
	require.Error(t, err)
}

func TestSummarize(t *testing.T) {
	engine := newTestEngine(testRecords())

	summary, err := engine.Summarize(context.Background(), Params{Regions: []string{"North"}})
	require.NoError(t, err)

	assert.Equal(t, 2, summary.TotalItems)
	assert.Equal(t, 7, summary.TotalQuantity)
	assert.InDelta(t, 800, summary.TotalAmount, 0.001)
	assert.InDelta(t, 750, summary.FinalAmount, 0.001)
	assert.InDelta(t, 750, summary.RevenueByCategory["Beauty"], 0.001)
}

func TestFilterOptions(t *testing.T) {
	engine := newTestEngine(testRecords())

	opts, err := engine.FilterOptions(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"North", "South"}, opts.Regions)
	assert.Equal(t, []string{"Female", "Male"}, opts.Genders)
	assert.Equal(t, []string{"Beauty", "Clothing", "Electronics"}, opts.ProductCategories)
	assert.Equal(t, []string{"Cash", "UPI", "Wallet"}, opts.PaymentMethods)
	assert.Equal(t, []string{"gadget", "organic", "skincare"}, opts.Tags)
}

func TestQueryDoesNotMutateSource(t *testing.T) {
	records := testRecords()
	engine := newTestEngine(records)

	_, err := engine.Query(context.Background(), Params{SortBy: "amount", SortOrder: "desc"})
	require.NoError(t, err)

	assert.Equal(t, []string{"C001", "C002", "C003", "C004"}, recordIDs(records))
}

func recordIDs(records []models.SalesRecord) []string {
	ids := make([]string, len(records))
	for i := range records {
		ids[i] = records[i].CustomerID
	}
	return ids
}
