package analytics

import (
	"context"
	"database/sql"
	"strconv"
	"time"
)

// Repository runs the aggregation queries over orders and line items.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a repo.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// TopProducts groups line items of orders created in [start, end) by product
// and returns the top sellers by revenue.
func (r *Repository) TopProducts(ctx context.Context, start, end time.Time, limit int) ([]ProductSales, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT p.id, p.name, p.category,
		       SUM(oi.quantity) AS total_quantity,
		       SUM(oi.quantity * oi.price) AS total_revenue
		FROM order_items oi
		JOIN orders o ON o.id = oi.order_id
		JOIN products p ON p.id = oi.product_id
		WHERE o.created_at >= $1 AND o.created_at < $2
		GROUP BY p.id, p.name, p.category
		ORDER BY total_revenue DESC
		LIMIT $3
	`, start, end, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var res []ProductSales
	for rows.Next() {
		var ps ProductSales
		if err := rows.Scan(&ps.ProductID, &ps.Name, &ps.Category, &ps.TotalQuantitySold, &ps.TotalRevenue); err != nil {
			return nil, err
		}
		res = append(res, ps)
	}
	return res, rows.Err()
}

// CategorySales groups line items of orders created in [start, end) by the
// product's category.
func (r *Repository) CategorySales(ctx context.Context, start, end time.Time) ([]CategorySales, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT p.category,
		       SUM(oi.quantity) AS total_quantity,
		       SUM(oi.quantity * oi.price) AS total_revenue,
		       AVG(oi.price) AS average_price
		FROM order_items oi
		JOIN orders o ON o.id = oi.order_id
		JOIN products p ON p.id = oi.product_id
		WHERE o.created_at >= $1 AND o.created_at < $2
		GROUP BY p.category
		ORDER BY total_revenue DESC
	`, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var res []CategorySales
	for rows.Next() {
		var cs CategorySales
		if err := rows.Scan(&cs.Category, &cs.TotalQuantity, &cs.TotalRevenue, &cs.AveragePrice); err != nil {
			return nil, err
		}
		res = append(res, cs)
	}
	return res, rows.Err()
}

// OrderTotals rolls line items up to one row per order, oldest first.
// Either bound may be nil; from is inclusive, until exclusive.
func (r *Repository) OrderTotals(ctx context.Context, from, until *time.Time) ([]OrderTotal, error) {
	query := `
		SELECT o.id, o.user_id, o.created_at,
		       COALESCE(SUM(oi.quantity), 0) AS total_quantity,
		       COALESCE(SUM(oi.quantity * oi.price), 0) AS total_revenue
		FROM orders o
		LEFT JOIN order_items oi ON oi.order_id = o.id`
	args := []any{}
	if from != nil {
		args = append(args, *from)
		query += ` WHERE o.created_at >= $` + strconv.Itoa(len(args))
	}
	if until != nil {
		args = append(args, *until)
		if from != nil {
			query += ` AND o.created_at < $` + strconv.Itoa(len(args))
		} else {
			query += ` WHERE o.created_at < $` + strconv.Itoa(len(args))
		}
	}
	query += `
		GROUP BY o.id, o.user_id, o.created_at
		ORDER BY o.created_at ASC, o.id ASC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return collectTotals(rows)
}

// OrderTotalsForActiveUsers returns the full order history, oldest first, of
// every user who placed at least one order in [start, end). The cohort report
// needs lifetime totals, so the window restricts the user set, not the rows.
func (r *Repository) OrderTotalsForActiveUsers(ctx context.Context, start, end time.Time) ([]OrderTotal, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT o.id, o.user_id, o.created_at,
		       COALESCE(SUM(oi.quantity), 0) AS total_quantity,
		       COALESCE(SUM(oi.quantity * oi.price), 0) AS total_revenue
		FROM orders o
		LEFT JOIN order_items oi ON oi.order_id = o.id
		WHERE o.user_id IN (
			SELECT DISTINCT user_id FROM orders
			WHERE created_at >= $1 AND created_at < $2
		)
		GROUP BY o.id, o.user_id, o.created_at
		ORDER BY o.created_at ASC, o.id ASC
	`, start, end)
	if err != nil {
		return nil, err
	}
	return collectTotals(rows)
}

func collectTotals(rows *sql.Rows) ([]OrderTotal, error) {
	defer rows.Close()
	var res []OrderTotal
	for rows.Next() {
		var ot OrderTotal
		if err := rows.Scan(&ot.OrderID, &ot.UserID, &ot.CreatedAt, &ot.Quantity, &ot.Revenue); err != nil {
			return nil, err
		}
		res = append(res, ot)
	}
	return res, rows.Err()
}
