package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"salesbrowser/models"
)

// SalesSource supplies the sales record set from Postgres. Each call is one
// query round trip; filtering, sorting and paging all happen in the engine,
// so the store stays a dumb snapshot provider.
type SalesSource struct {
	pool *pgxpool.Pool
}

func NewSalesSource(pool *pgxpool.Pool) *SalesSource {
	return &SalesSource{pool: pool}
}

func (s *SalesSource) Records(ctx context.Context) ([]models.SalesRecord, error) {
	query := `
		SELECT
			COALESCE(customer_id, ''), COALESCE(customer_name, ''), COALESCE(phone_number, ''),
			COALESCE(gender, ''), age, COALESCE(customer_region, ''), COALESCE(customer_type, ''),
			COALESCE(product_id, ''), COALESCE(product_name, ''), COALESCE(brand, ''),
			COALESCE(product_category, ''), COALESCE(tags, '{}'),
			COALESCE(quantity, 0), COALESCE(price_per_unit, 0), COALESCE(discount_percentage, 0),
			COALESCE(total_amount, 0), COALESCE(final_amount, 0),
			COALESCE(sale_date::text, ''), COALESCE(payment_method, ''), COALESCE(order_status, ''),
			COALESCE(delivery_type, ''), COALESCE(store_id, ''), COALESCE(store_location, ''),
			COALESCE(salesperson_id, ''), COALESCE(employee_name, '')
		FROM sales
		ORDER BY id
	`
	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying sales: %w", err)
	}
	defer rows.Close()

	var records []models.SalesRecord
	for rows.Next() {
		var r models.SalesRecord
		var age sql.NullInt32
		if err := rows.Scan(
			&r.CustomerID, &r.CustomerName, &r.PhoneNumber,
			&r.Gender, &age, &r.CustomerRegion, &r.CustomerType,
			&r.ProductID, &r.ProductName, &r.Brand,
			&r.ProductCategory, &r.Tags,
			&r.Quantity, &r.PricePerUnit, &r.DiscountPercentage,
			&r.TotalAmount, &r.FinalAmount,
			&r.Date, &r.PaymentMethod, &r.OrderStatus,
			&r.DeliveryType, &r.StoreID, &r.StoreLocation,
			&r.SalespersonID, &r.EmployeeName,
		); err != nil {
			return nil, fmt.Errorf("scanning sales row: %w", err)
		}
		if age.Valid {
			v := int(age.Int32)
			r.Age = &v
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading sales rows: %w", err)
	}
	return records, nil
}
