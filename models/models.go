package models

// SalesRecord is the canonical shape of one sales transaction. Records are
// populated once at ingestion (CSV row mapping or a database scan) and are
// treated as read-only afterwards; the query engine never mutates them.
type SalesRecord struct {
	CustomerID     string `json:"customerId"`
	CustomerName   string `json:"customerName"`
	PhoneNumber    string `json:"phoneNumber"`
	Gender         string `json:"gender"`
	Age            *int   `json:"age"`
	CustomerRegion string `json:"customerRegion"`
	CustomerType   string `json:"customerType"`

	ProductID       string   `json:"productId"`
	ProductName     string   `json:"productName"`
	Brand           string   `json:"brand"`
	ProductCategory string   `json:"productCategory"`
	Tags            []string `json:"tags"`

	Quantity           int     `json:"quantity"`
	PricePerUnit       float64 `json:"pricePerUnit"`
	DiscountPercentage float64 `json:"discountPercentage"`
	TotalAmount        float64 `json:"totalAmount"`
	FinalAmount        float64 `json:"finalAmount"`

	// Date is kept as the raw ingested string. Source data carries no
	// timezone guarantee beyond "parseable as a date", so parsing happens
	// lazily in the engine and an unparseable value degrades instead of
	// failing ingestion.
	Date          string `json:"date"`
	PaymentMethod string `json:"paymentMethod"`
	OrderStatus   string `json:"orderStatus"`
	DeliveryType  string `json:"deliveryType"`
	StoreID       string `json:"storeId"`
	StoreLocation string `json:"storeLocation"`
	SalespersonID string `json:"salespersonId"`
	EmployeeName  string `json:"employeeName"`
}

// HasTag reports whether the record carries the given tag.
func (r *SalesRecord) HasTag(tag string) bool {
	for _, t := range r.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Pagination describes where a page sits inside the filtered result set.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	TotalItems int `json:"totalItems"`
	TotalPages int `json:"totalPages"`
}

// ResultPage is the engine's output: one page of records plus its meta block.
// Serialized verbatim by the HTTP layer.
type ResultPage struct {
	Meta Pagination    `json:"meta"`
	Data []SalesRecord `json:"data"`
}

// FilterOptions lists the distinct values available for each multi-select
// filter, for the frontend filter panel.
type FilterOptions struct {
	Regions           []string `json:"regions"`
	Genders           []string `json:"genders"`
	ProductCategories []string `json:"productCategories"`
	PaymentMethods    []string `json:"paymentMethods"`
	Tags              []string `json:"tags"`
}

// SalesSummary aggregates the filtered (pre-pagination) result set.
type SalesSummary struct {
	TotalItems        int                `json:"totalItems"`
	TotalQuantity     int                `json:"totalQuantity"`
	TotalAmount       float64            `json:"totalAmount"`
	FinalAmount       float64            `json:"finalAmount"`
	RevenueByCategory map[string]float64 `json:"revenueByCategory"`
}
