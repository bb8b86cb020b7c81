package attendance

import (
	"errors"
	"time"
)

// Record statuses.
const (
	StatusPresent = "present"
	StatusAbsent  = "absent"
)

// DateLayout is the calendar-date format stored per record. At most one
// record exists per (user, date); the database enforces this.
const DateLayout = "2006-01-02"

// Record is one user's attendance for one calendar date.
type Record struct {
	ID        string     `json:"id"`
	UserID    string     `json:"userId"`
	Date      string     `json:"date"`
	CheckIn   *time.Time `json:"checkIn,omitempty"`
	CheckOut  *time.Time `json:"checkOut,omitempty"`
	Status    string     `json:"status"`
	CreatedAt time.Time  `json:"createdAt"`
}

// ReportRow is one record of a per-user report with derived hours.
type ReportRow struct {
	Date        string     `json:"date"`
	CheckIn     *time.Time `json:"checkIn,omitempty"`
	CheckOut    *time.Time `json:"checkOut,omitempty"`
	HoursWorked string     `json:"hoursWorked"`
	Status      string     `json:"status"`
}

// Report aggregates a user's attendance over an optional date range.
type Report struct {
	UserID     string      `json:"userId"`
	TotalDays  int         `json:"totalDays"`
	TotalHours string      `json:"totalHours"`
	Report     []ReportRow `json:"report"`
}

var (
	// ErrInvalidUserID is returned when the user id is not a well-formed UUID.
	ErrInvalidUserID = errors.New("invalid user id")
	// ErrAlreadyCheckedIn is returned on a duplicate check-in for the day.
	ErrAlreadyCheckedIn = errors.New("already checked in today")
	// ErrNotCheckedIn is returned when checking out without a record for today.
	ErrNotCheckedIn = errors.New("not checked in today")
	// ErrAlreadyCheckedOut is returned when today's record is already closed.
	ErrAlreadyCheckedOut = errors.New("already checked out")
	// ErrNoRecords is returned when a report matches no attendance records.
	ErrNoRecords = errors.New("no attendance records")
)
