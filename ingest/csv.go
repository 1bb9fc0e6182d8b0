// Package ingest loads sales records from a CSV export and serves them as an
// in-memory snapshot.
package ingest

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"salesbrowser/models"
)

// CSVSource holds the record set loaded once at construction. Records is
// read-only afterwards, so the same source is safe to share across requests.
type CSVSource struct {
	records []models.SalesRecord
}

// NewCSVSource reads the whole file up front. Malformed field values inside
// a row degrade to zero values; only an unreadable file is an error.
func NewCSVSource(path string) (*CSVSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening sales CSV: %w", err)
	}
	defer f.Close()

	records, err := Load(f)
	if err != nil {
		return nil, err
	}
	return &CSVSource{records: records}, nil
}

func (s *CSVSource) Records(ctx context.Context) ([]models.SalesRecord, error) {
	return s.records, nil
}

// Load parses header-keyed CSV rows into sales records. The first row names
// the columns with the export's display labels ("Customer Name", "Final
// Amount", ...); row order is preserved.
func Load(r io.Reader) ([]models.SalesRecord, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("reading CSV header: %w", err)
	}
	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.TrimSpace(name)] = i
	}

	var records []models.SalesRecord
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading CSV row: %w", err)
		}
		records = append(records, mapRow(columns, row))
	}
	return records, nil
}

func mapRow(columns map[string]int, row []string) models.SalesRecord {
	field := func(name string) string {
		i, ok := columns[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	return models.SalesRecord{
		CustomerID:     field("Customer ID"),
		CustomerName:   field("Customer Name"),
		PhoneNumber:    field("Phone Number"),
		Gender:         field("Gender"),
		Age:            parseAge(field("Age")),
		CustomerRegion: field("Customer Region"),
		CustomerType:   field("Customer Type"),

		ProductID:       field("Product ID"),
		ProductName:     field("Product Name"),
		Brand:           field("Brand"),
		ProductCategory: field("Product Category"),
		Tags:            splitTags(field("Tags")),

		Quantity:           parseInt(field("Quantity")),
		PricePerUnit:       parseFloat(field("Price per Unit")),
		DiscountPercentage: parseFloat(field("Discount Percentage")),
		TotalAmount:        parseFloat(field("Total Amount")),
		FinalAmount:        parseFloat(field("Final Amount")),

		Date:          field("Date"),
		PaymentMethod: field("Payment Method"),
		OrderStatus:   field("Order Status"),
		DeliveryType:  field("Delivery Type"),
		StoreID:       field("Store ID"),
		StoreLocation: field("Store Location"),
		SalespersonID: field("Salesperson ID"),
		EmployeeName:  field("Employee Name"),
	}
}

func splitTags(raw string) []string {
	if raw == "" {
		return nil
	}
	var tags []string
	for _, t := range strings.Split(raw, ",") {
		t = strings.TrimSpace(t)
		if t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

// parseAge keeps "age unknown" distinct from zero so an active age filter
// can reject unclassifiable records.
func parseAge(raw string) *int {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	return &n
}

func parseInt(raw string) int {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return n
}

func parseFloat(raw string) float64 {
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0
	}
	return f
}
