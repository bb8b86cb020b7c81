// Package httpapi maps the user, attendance and reporting services onto the
// REST surface. All error responses share the {"message": ...} body; internal
// failures are collapsed to a fixed message so storage details never leak.
package httpapi

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"worktrack/internal/analytics"
	"worktrack/internal/attendance"
	"worktrack/internal/product"
	"worktrack/internal/queue"
	"worktrack/internal/user"
)

// UserService is the account surface the handlers need.
type UserService interface {
	Create(ctx context.Context, name, email, password string) error
	GetByID(ctx context.Context, id string) (user.User, error)
	List(ctx context.Context, page, limit int) (user.Page, error)
	Search(ctx context.Context, page, limit int, term string) (user.Page, error)
}

// AttendanceService is the check-in/check-out surface the handlers need.
type AttendanceService interface {
	CheckIn(ctx context.Context, userID string) (attendance.Record, error)
	CheckOut(ctx context.Context, userID string) (attendance.Record, error)
	Report(ctx context.Context, userID, from, to string) (attendance.Report, error)
}

// AnalyticsService is the reporting surface the handlers need.
type AnalyticsService interface {
	TopProducts(ctx context.Context, month, year int) ([]analytics.ProductSales, error)
	MonthlySales(ctx context.Context, month, year int) ([]analytics.CategorySales, error)
	CustomerLifetimeValue(ctx context.Context, from, to *time.Time) ([]analytics.CustomerValue, error)
	CustomerCohort(ctx context.Context, month, year int) ([]analytics.CohortRow, error)
}

// ProductLister exposes the product catalog.
type ProductLister interface {
	List(ctx context.Context) ([]product.Product, error)
}

// Register wires every route under the shared /api base path.
func Register(r *gin.Engine, users UserService, att AttendanceService, reports AnalyticsService, catalog ProductLister, events queue.Queue) {
	userHandler := NewUserHandler(users)
	attHandler := NewAttendanceHandler(att, events)
	reportHandler := NewAnalyticsHandler(reports)
	productHandler := NewProductHandler(catalog)

	api := r.Group("/api")

	api.POST("/users", userHandler.Create)
	api.GET("/user/:id", userHandler.GetByID)
	api.GET("/users", userHandler.List)
	api.GET("/filter-users", userHandler.Search)

	api.POST("/attendance/check-in", attHandler.CheckIn)
	api.PUT("/attendance/check-out", attHandler.CheckOut)
	api.GET("/attendance/report", attHandler.Report)

	api.GET("/report", reportHandler.TopProducts)
	api.GET("/monthly-report", reportHandler.MonthlySales)
	api.GET("/customer-value", reportHandler.CustomerValue)
	api.GET("/customer-cohort", reportHandler.CustomerCohort)

	api.POST("/all-products", productHandler.List)
}
