package attendance

import (
	"context"
	"math"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// Store is the persistence surface the service needs.
type Store interface {
	FindByUserAndDate(ctx context.Context, userID, date string) (*Record, error)
	Insert(ctx context.Context, rec Record) (Record, error)
	SetCheckOut(ctx context.Context, id string, t time.Time) error
	ListByUser(ctx context.Context, userID, from, to string) ([]Record, error)
}

// Service implements check-in/check-out transitions and reporting.
type Service struct {
	store Store
}

// NewService creates a service backed by a store.
func NewService(store Store) *Service {
	return &Service{store: store}
}

// CheckIn opens today's record for the user. The pre-check gives a friendly
// conflict on the common path; a concurrent duplicate is still rejected by
// the storage unique constraint.
func (s *Service) CheckIn(ctx context.Context, userID string) (Record, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return Record{}, ErrInvalidUserID
	}
	now := time.Now().UTC()
	today := now.Format(DateLayout)

	existing, err := s.store.FindByUserAndDate(ctx, userID, today)
	if err != nil {
		return Record{}, err
	}
	if existing != nil {
		return Record{}, ErrAlreadyCheckedIn
	}

	return s.store.Insert(ctx, Record{
		UserID:  userID,
		Date:    today,
		CheckIn: &now,
		Status:  StatusPresent,
	})
}

// CheckOut closes today's record for the user.
func (s *Service) CheckOut(ctx context.Context, userID string) (Record, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return Record{}, ErrInvalidUserID
	}
	now := time.Now().UTC()
	today := now.Format(DateLayout)

	rec, err := s.store.FindByUserAndDate(ctx, userID, today)
	if err != nil {
		return Record{}, err
	}
	if rec == nil {
		return Record{}, ErrNotCheckedIn
	}
	if rec.CheckOut != nil {
		return Record{}, ErrAlreadyCheckedOut
	}

	if err := s.store.SetCheckOut(ctx, rec.ID, now); err != nil {
		return Record{}, err
	}
	rec.CheckOut = &now
	return *rec, nil
}

// Report computes per-day hours and totals for a user. The from/to range is
// applied only when both bounds are given, inclusive on both ends. A user
// with no matching records yields ErrNoRecords.
func (s *Service) Report(ctx context.Context, userID, from, to string) (Report, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return Report{}, ErrInvalidUserID
	}

	records, err := s.store.ListByUser(ctx, userID, from, to)
	if err != nil {
		return Report{}, err
	}
	if len(records) == 0 {
		return Report{}, ErrNoRecords
	}

	return buildReport(userID, records, time.Now().UTC()), nil
}

// buildReport shapes records into report rows. Open records (no check-out)
// count hours up to now; records without a check-in contribute "0.00".
func buildReport(userID string, records []Record, now time.Time) Report {
	rows := make([]ReportRow, 0, len(records))
	var total float64
	for _, rec := range records {
		h := hoursWorked(rec.CheckIn, rec.CheckOut, now)
		total += h
		rows = append(rows, ReportRow{
			Date:        rec.Date,
			CheckIn:     rec.CheckIn,
			CheckOut:    rec.CheckOut,
			HoursWorked: formatHours(h),
			Status:      rec.Status,
		})
	}
	return Report{
		UserID:     userID,
		TotalDays:  len(rows),
		TotalHours: formatHours(math.Round(total*100) / 100),
		Report:     rows,
	}
}

// hoursWorked returns hours between check-in and check-out (or now when the
// record is still open), rounded to two decimals.
func hoursWorked(checkIn, checkOut *time.Time, now time.Time) float64 {
	if checkIn == nil {
		return 0
	}
	end := now
	if checkOut != nil {
		end = *checkOut
	}
	h := end.Sub(*checkIn).Hours()
	return math.Round(h*100) / 100
}

func formatHours(h float64) string {
	return strconv.FormatFloat(h, 'f', 2, 64)
}
