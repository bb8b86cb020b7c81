package store

import (
	"database/sql"
	"fmt"
	"time"
)

// SeedDemo populates products and a handful of historical orders so the
// reporting endpoints return data on a fresh database. Safe to run twice:
// rows are keyed by fixed UUIDs and inserted with ON CONFLICT DO NOTHING.
func SeedDemo(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}

	products := []struct {
		id, name, category string
		price              float64
	}{
		{"5b0c1a52-0001-4f1e-9a10-000000000001", "Mechanical Keyboard", "electronics", 89.99},
		{"5b0c1a52-0001-4f1e-9a10-000000000002", "USB-C Dock", "electronics", 129.50},
		{"5b0c1a52-0001-4f1e-9a10-000000000003", "Desk Chair", "furniture", 249.00},
		{"5b0c1a52-0001-4f1e-9a10-000000000004", "Standing Desk", "furniture", 399.00},
		{"5b0c1a52-0001-4f1e-9a10-000000000005", "Notebook Set", "stationery", 12.75},
	}
	for _, p := range products {
		_, err = tx.Exec(`INSERT INTO products (id, name, category, price) VALUES ($1, $2, $3, $4) ON CONFLICT DO NOTHING`,
			p.id, p.name, p.category, p.price)
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("error seeding products: %w", err)
		}
	}

	demoUser := "5b0c1a52-0002-4f1e-9a10-000000000001"
	now := time.Now().UTC()
	orders := []struct {
		id        string
		createdAt time.Time
		items     []struct {
			product  string
			quantity int
			price    float64
		}
	}{
		{
			id:        "5b0c1a52-0003-4f1e-9a10-000000000001",
			createdAt: time.Date(now.Year(), now.Month(), 3, 10, 0, 0, 0, time.UTC),
			items: []struct {
				product  string
				quantity int
				price    float64
			}{
				{products[0].id, 2, products[0].price},
				{products[2].id, 1, products[2].price},
			},
		},
		{
			id:        "5b0c1a52-0003-4f1e-9a10-000000000002",
			createdAt: time.Date(now.Year(), now.Month(), 12, 15, 30, 0, 0, time.UTC),
			items: []struct {
				product  string
				quantity int
				price    float64
			}{
				{products[0].id, 1, products[0].price},
				{products[4].id, 10, products[4].price},
			},
		},
	}
	for _, o := range orders {
		res, err := tx.Exec(`INSERT INTO orders (id, user_id, created_at) VALUES ($1, $2, $3) ON CONFLICT DO NOTHING`,
			o.id, demoUser, o.createdAt)
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("error seeding orders: %w", err)
		}
		// order_items has no conflict key; only attach items when the
		// order row was actually inserted
		if n, _ := res.RowsAffected(); n == 0 {
			continue
		}
		for _, it := range o.items {
			_, err = tx.Exec(`INSERT INTO order_items (order_id, product_id, quantity, price) VALUES ($1, $2, $3, $4)`,
				o.id, it.product, it.quantity, it.price)
			if err != nil {
				tx.Rollback()
				return fmt.Errorf("error seeding order items: %w", err)
			}
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("error committing transaction: %w", err)
	}
	return nil
}
