package analytics

import (
	"errors"
	"time"
)

// ProductSales is one ranked row of the top-products report.
type ProductSales struct {
	ProductID         string  `json:"productId"`
	Name              string  `json:"name"`
	Category          string  `json:"category"`
	TotalQuantitySold int     `json:"totalQuantitySold"`
	TotalRevenue      float64 `json:"totalRevenue"`
}

// CategorySales is one row of the monthly category sales report.
type CategorySales struct {
	Category      string  `json:"category"`
	TotalQuantity int     `json:"totalQuantity"`
	TotalRevenue  float64 `json:"totalRevenue"`
	AveragePrice  float64 `json:"averagePrice"`
}

// OrderTotal is a per-order rollup of line items, the intermediate shape the
// lifetime-value and cohort reports aggregate further.
type OrderTotal struct {
	OrderID   string
	UserID    string
	CreatedAt time.Time
	Quantity  int
	Revenue   float64
}

// CustomerValue is one row of the customer lifetime value report.
type CustomerValue struct {
	UserID            string    `json:"userId"`
	TotalOrders       int       `json:"totalOrders"`
	TotalQuantity     int       `json:"totalQuantity"`
	TotalRevenue      float64   `json:"totalRevenue"`
	FirstOrder        time.Time `json:"firstOrder"`
	LastOrder         time.Time `json:"lastOrder"`
	AverageOrderValue float64   `json:"averageOrderValue"`
}

// CohortRow groups customers by their first-purchase month.
type CohortRow struct {
	Year                      int     `json:"cohortYear"`
	Month                     int     `json:"cohortMonth"`
	Customers                 int     `json:"customers"`
	TotalRevenue              float64 `json:"totalRevenue"`
	AverageRevenuePerCustomer float64 `json:"averageRevenuePerCustomer"`
}

// ErrInvalidPeriod is returned for a month outside 1-12 or a year before 2000.
var ErrInvalidPeriod = errors.New("invalid month or year")
