package analytics

import (
	"context"
	"errors"
	"testing"
	"time"
)

type fakeStore struct {
	topProducts []ProductSales
	categories  []CategorySales
	orders      []OrderTotal

	lastStart, lastEnd time.Time
}

func (f *fakeStore) TopProducts(_ context.Context, start, end time.Time, _ int) ([]ProductSales, error) {
	f.lastStart, f.lastEnd = start, end
	return f.topProducts, nil
}

func (f *fakeStore) CategorySales(_ context.Context, start, end time.Time) ([]CategorySales, error) {
	f.lastStart, f.lastEnd = start, end
	return f.categories, nil
}

func (f *fakeStore) OrderTotals(_ context.Context, from, until *time.Time) ([]OrderTotal, error) {
	var res []OrderTotal
	for _, o := range f.orders {
		if from != nil && o.CreatedAt.Before(*from) {
			continue
		}
		if until != nil && !o.CreatedAt.Before(*until) {
			continue
		}
		res = append(res, o)
	}
	return res, nil
}

func (f *fakeStore) OrderTotalsForActiveUsers(_ context.Context, start, end time.Time) ([]OrderTotal, error) {
	active := map[string]bool{}
	for _, o := range f.orders {
		if !o.CreatedAt.Before(start) && o.CreatedAt.Before(end) {
			active[o.UserID] = true
		}
	}
	var res []OrderTotal
	for _, o := range f.orders {
		if active[o.UserID] {
			res = append(res, o)
		}
	}
	return res, nil
}

func at(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
}

func TestMonthWindow(t *testing.T) {
	start, end := MonthWindow(3, 2024)
	if !start.Equal(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected start %v", start)
	}
	if !end.Equal(time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected end %v", end)
	}

	// December rolls over the year
	start, end = MonthWindow(12, 2023)
	if end.Year() != 2024 || end.Month() != time.January {
		t.Fatalf("december window should end in january, got %v", end)
	}
	_ = start
}

func TestPeriodValidation(t *testing.T) {
	svc := NewService(&fakeStore{}, nil)
	ctx := context.Background()

	for _, tc := range []struct{ month, year int }{
		{0, 2024}, {13, 2024}, {3, 1999}, {0, 0},
	} {
		if _, err := svc.TopProducts(ctx, tc.month, tc.year); !errors.Is(err, ErrInvalidPeriod) {
			t.Errorf("TopProducts(%d, %d): expected ErrInvalidPeriod, got %v", tc.month, tc.year, err)
		}
		if _, err := svc.MonthlySales(ctx, tc.month, tc.year); !errors.Is(err, ErrInvalidPeriod) {
			t.Errorf("MonthlySales(%d, %d): expected ErrInvalidPeriod, got %v", tc.month, tc.year, err)
		}
		if _, err := svc.CustomerCohort(ctx, tc.month, tc.year); !errors.Is(err, ErrInvalidPeriod) {
			t.Errorf("CustomerCohort(%d, %d): expected ErrInvalidPeriod, got %v", tc.month, tc.year, err)
		}
	}
}

func TestTopProductsEmptyIsNotAnError(t *testing.T) {
	svc := NewService(&fakeStore{}, nil)

	rows, err := svc.TopProducts(context.Background(), 3, 2024)
	if err != nil {
		t.Fatalf("expected empty result, got error %v", err)
	}
	if rows == nil || len(rows) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", rows)
	}
}

func TestTopProductsUsesMonthWindow(t *testing.T) {
	store := &fakeStore{}
	svc := NewService(store, nil)

	if _, err := svc.TopProducts(context.Background(), 3, 2024); err != nil {
		t.Fatalf("top products: %v", err)
	}
	wantStart, wantEnd := MonthWindow(3, 2024)
	if !store.lastStart.Equal(wantStart) || !store.lastEnd.Equal(wantEnd) {
		t.Fatalf("query window [%v, %v), want [%v, %v)", store.lastStart, store.lastEnd, wantStart, wantEnd)
	}
}

func TestCustomerLifetimeValue(t *testing.T) {
	store := &fakeStore{orders: []OrderTotal{
		{OrderID: "o1", UserID: "u1", CreatedAt: at(2024, 1, 5), Quantity: 2, Revenue: 100},
		{OrderID: "o2", UserID: "u1", CreatedAt: at(2024, 2, 5), Quantity: 3, Revenue: 200},
		{OrderID: "o3", UserID: "u2", CreatedAt: at(2024, 2, 6), Quantity: 1, Revenue: 50},
	}}
	svc := NewService(store, nil)

	rows, err := svc.CustomerLifetimeValue(context.Background(), nil, nil)
	if err != nil {
		t.Fatalf("clv: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 customers, got %d", len(rows))
	}

	// sorted by revenue descending, u1 first
	u1 := rows[0]
	if u1.UserID != "u1" {
		t.Fatalf("expected u1 first, got %s", u1.UserID)
	}
	if u1.TotalOrders != 2 || u1.TotalQuantity != 5 || u1.TotalRevenue != 300 {
		t.Fatalf("unexpected totals %+v", u1)
	}
	if u1.AverageOrderValue != 150 {
		t.Fatalf("expected average order value 150, got %v", u1.AverageOrderValue)
	}
	if !u1.FirstOrder.Equal(at(2024, 1, 5)) || !u1.LastOrder.Equal(at(2024, 2, 5)) {
		t.Fatalf("unexpected first/last order %v / %v", u1.FirstOrder, u1.LastOrder)
	}
}

func TestCustomerLifetimeValueToBoundIsInclusive(t *testing.T) {
	store := &fakeStore{orders: []OrderTotal{
		{OrderID: "o1", UserID: "u1", CreatedAt: at(2024, 1, 31), Revenue: 100},
		{OrderID: "o2", UserID: "u1", CreatedAt: at(2024, 2, 1), Revenue: 200},
	}}
	svc := NewService(store, nil)

	to := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)
	rows, err := svc.CustomerLifetimeValue(context.Background(), nil, &to)
	if err != nil {
		t.Fatalf("clv: %v", err)
	}
	if len(rows) != 1 || rows[0].TotalOrders != 1 || rows[0].TotalRevenue != 100 {
		t.Fatalf("expected only the jan 31 order inside the bound, got %+v", rows)
	}
}

func TestCustomerCohortBucketsByFirstOrder(t *testing.T) {
	// u1's first order is january; a later march order must not move the
	// cohort, and cohort revenue covers the full lifetime.
	store := &fakeStore{orders: []OrderTotal{
		{OrderID: "o1", UserID: "u1", CreatedAt: at(2024, 1, 10), Revenue: 100},
		{OrderID: "o2", UserID: "u1", CreatedAt: at(2024, 3, 10), Revenue: 200},
		{OrderID: "o3", UserID: "u2", CreatedAt: at(2024, 3, 12), Revenue: 80},
	}}
	svc := NewService(store, nil)

	rows, err := svc.CustomerCohort(context.Background(), 3, 2024)
	if err != nil {
		t.Fatalf("cohort: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 cohorts, got %d", len(rows))
	}

	jan := rows[0]
	if jan.Year != 2024 || jan.Month != 1 {
		t.Fatalf("expected january cohort first, got %d-%d", jan.Year, jan.Month)
	}
	if jan.Customers != 1 || jan.TotalRevenue != 300 {
		t.Fatalf("january cohort should carry u1's lifetime revenue, got %+v", jan)
	}

	mar := rows[1]
	if mar.Year != 2024 || mar.Month != 3 || mar.Customers != 1 || mar.TotalRevenue != 80 {
		t.Fatalf("unexpected march cohort %+v", mar)
	}
	if mar.AverageRevenuePerCustomer != 80 {
		t.Fatalf("expected average 80, got %v", mar.AverageRevenuePerCustomer)
	}
}

func TestCustomerCohortEmptyMonth(t *testing.T) {
	svc := NewService(&fakeStore{}, nil)
	rows, err := svc.CustomerCohort(context.Background(), 6, 2024)
	if err != nil {
		t.Fatalf("expected empty result, got error %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("expected no cohorts, got %+v", rows)
	}
}
