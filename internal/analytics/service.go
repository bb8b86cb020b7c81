package analytics

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"
)

// Store is the persistence surface the service needs.
type Store interface {
	TopProducts(ctx context.Context, start, end time.Time, limit int) ([]ProductSales, error)
	CategorySales(ctx context.Context, start, end time.Time) ([]CategorySales, error)
	OrderTotals(ctx context.Context, from, until *time.Time) ([]OrderTotal, error)
	OrderTotalsForActiveUsers(ctx context.Context, start, end time.Time) ([]OrderTotal, error)
}

// Service produces the sales reports. Results are served through an optional
// read-through cache; reports over no matching data come back as empty
// slices, never as errors.
type Service struct {
	store Store
	cache *Cache
}

// NewService creates a service backed by a store and an optional cache
// (nil disables caching).
func NewService(store Store, cache *Cache) *Service {
	return &Service{store: store, cache: cache}
}

// TopProducts returns the five best-selling products by revenue for the month.
func (s *Service) TopProducts(ctx context.Context, month, year int) ([]ProductSales, error) {
	if err := validatePeriod(month, year); err != nil {
		return nil, err
	}
	key := fmt.Sprintf("reports:top-products:%04d-%02d", year, month)
	var cached []ProductSales
	if s.cache.Get(ctx, key, &cached) {
		return cached, nil
	}

	start, end := MonthWindow(month, year)
	rows, err := s.store.TopProducts(ctx, start, end, 5)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []ProductSales{}
	}
	s.cache.Set(ctx, key, rows)
	return rows, nil
}

// MonthlySales returns per-category quantity, revenue and average unit price
// for the month, highest revenue first.
func (s *Service) MonthlySales(ctx context.Context, month, year int) ([]CategorySales, error) {
	if err := validatePeriod(month, year); err != nil {
		return nil, err
	}
	key := fmt.Sprintf("reports:monthly-sales:%04d-%02d", year, month)
	var cached []CategorySales
	if s.cache.Get(ctx, key, &cached) {
		return cached, nil
	}

	start, end := MonthWindow(month, year)
	rows, err := s.store.CategorySales(ctx, start, end)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []CategorySales{}
	}
	s.cache.Set(ctx, key, rows)
	return rows, nil
}

// CustomerLifetimeValue aggregates per-order totals up to one row per
// customer. Both bounds are optional inclusive calendar dates.
func (s *Service) CustomerLifetimeValue(ctx context.Context, from, to *time.Time) ([]CustomerValue, error) {
	var until *time.Time
	if to != nil {
		// inclusive date bound: cover the whole day
		u := to.AddDate(0, 0, 1)
		until = &u
	}
	orders, err := s.store.OrderTotals(ctx, from, until)
	if err != nil {
		return nil, err
	}
	return groupByCustomer(orders), nil
}

// CustomerCohort buckets every customer active in the given month by the
// month of their first-ever order. Revenue per cohort is the customers'
// lifetime total, not just the report month.
func (s *Service) CustomerCohort(ctx context.Context, month, year int) ([]CohortRow, error) {
	if err := validatePeriod(month, year); err != nil {
		return nil, err
	}
	start, end := MonthWindow(month, year)
	orders, err := s.store.OrderTotalsForActiveUsers(ctx, start, end)
	if err != nil {
		return nil, err
	}
	return groupByCohort(orders), nil
}

// MonthWindow returns the UTC half-open interval [first of month, first of
// next month).
func MonthWindow(month, year int) (time.Time, time.Time) {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, 0)
}

func validatePeriod(month, year int) error {
	if month < 1 || month > 12 || year < 2000 {
		return ErrInvalidPeriod
	}
	return nil
}

// groupByCustomer folds per-order rows into per-customer totals. Input rows
// are ordered oldest first, so first/last order fall out of iteration order.
func groupByCustomer(orders []OrderTotal) []CustomerValue {
	byUser := make(map[string]*CustomerValue)
	for _, o := range orders {
		cv, ok := byUser[o.UserID]
		if !ok {
			cv = &CustomerValue{UserID: o.UserID, FirstOrder: o.CreatedAt}
			byUser[o.UserID] = cv
		}
		cv.TotalOrders++
		cv.TotalQuantity += o.Quantity
		cv.TotalRevenue += o.Revenue
		cv.LastOrder = o.CreatedAt
	}

	res := make([]CustomerValue, 0, len(byUser))
	for _, cv := range byUser {
		cv.AverageOrderValue = round2(cv.TotalRevenue / float64(cv.TotalOrders))
		cv.TotalRevenue = round2(cv.TotalRevenue)
		res = append(res, *cv)
	}
	sort.Slice(res, func(i, j int) bool {
		if res[i].TotalRevenue != res[j].TotalRevenue {
			return res[i].TotalRevenue > res[j].TotalRevenue
		}
		return res[i].UserID < res[j].UserID
	})
	return res
}

// groupByCohort reduces order history to per-user first-order month and
// lifetime revenue, then rolls users up into cohort buckets.
func groupByCohort(orders []OrderTotal) []CohortRow {
	type lifetime struct {
		first   time.Time
		revenue float64
	}
	byUser := make(map[string]*lifetime)
	for _, o := range orders {
		lt, ok := byUser[o.UserID]
		if !ok {
			lt = &lifetime{first: o.CreatedAt}
			byUser[o.UserID] = lt
		}
		lt.revenue += o.Revenue
	}

	type bucket struct {
		customers int
		revenue   float64
	}
	cohorts := make(map[[2]int]*bucket)
	for _, lt := range byUser {
		key := [2]int{lt.first.UTC().Year(), int(lt.first.UTC().Month())}
		b, ok := cohorts[key]
		if !ok {
			b = &bucket{}
			cohorts[key] = b
		}
		b.customers++
		b.revenue += lt.revenue
	}

	res := make([]CohortRow, 0, len(cohorts))
	for key, b := range cohorts {
		res = append(res, CohortRow{
			Year:                      key[0],
			Month:                     key[1],
			Customers:                 b.customers,
			TotalRevenue:              round2(b.revenue),
			AverageRevenuePerCustomer: round2(b.revenue / float64(b.customers)),
		})
	}
	sort.Slice(res, func(i, j int) bool {
		if res[i].Year != res[j].Year {
			return res[i].Year < res[j].Year
		}
		return res[i].Month < res[j].Month
	})
	return res
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
