package attendance

import (
	"context"
	"errors"
	"testing"
	"time"
)

type fakeStore struct {
	records   map[string]*Record // keyed by userID+"|"+date
	checkOuts int
}

func newFakeStore() *fakeStore {
	return &fakeStore{records: make(map[string]*Record)}
}

func (f *fakeStore) FindByUserAndDate(_ context.Context, userID, date string) (*Record, error) {
	if rec, ok := f.records[userID+"|"+date]; ok {
		cp := *rec
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeStore) Insert(_ context.Context, rec Record) (Record, error) {
	key := rec.UserID + "|" + rec.Date
	if _, ok := f.records[key]; ok {
		return Record{}, ErrAlreadyCheckedIn
	}
	rec.ID = "rec-" + rec.Date
	rec.CreatedAt = time.Now()
	cp := rec
	f.records[key] = &cp
	return rec, nil
}

func (f *fakeStore) SetCheckOut(_ context.Context, id string, t time.Time) error {
	for _, rec := range f.records {
		if rec.ID == id {
			rec.CheckOut = &t
			f.checkOuts++
			return nil
		}
	}
	return errors.New("record not found")
}

func (f *fakeStore) ListByUser(_ context.Context, userID, from, to string) ([]Record, error) {
	var res []Record
	for _, rec := range f.records {
		if rec.UserID != userID {
			continue
		}
		if from != "" && to != "" && (rec.Date < from || rec.Date > to) {
			continue
		}
		res = append(res, *rec)
	}
	return res, nil
}

const testUser = "2a2b1c7e-9d9f-4f7e-8a81-2b4a6c8d0e1f"

func TestCheckInInvalidUserID(t *testing.T) {
	svc := NewService(newFakeStore())
	if _, err := svc.CheckIn(context.Background(), "not-a-uuid"); !errors.Is(err, ErrInvalidUserID) {
		t.Fatalf("expected ErrInvalidUserID, got %v", err)
	}
}

func TestCheckInTwiceConflicts(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store)

	rec, err := svc.CheckIn(context.Background(), testUser)
	if err != nil {
		t.Fatalf("first check-in: %v", err)
	}
	if rec.Status != StatusPresent {
		t.Fatalf("expected status present, got %q", rec.Status)
	}
	if rec.CheckIn == nil {
		t.Fatal("check-in timestamp not set")
	}

	if _, err := svc.CheckIn(context.Background(), testUser); !errors.Is(err, ErrAlreadyCheckedIn) {
		t.Fatalf("expected ErrAlreadyCheckedIn, got %v", err)
	}
	if len(store.records) != 1 {
		t.Fatalf("expected exactly one record, got %d", len(store.records))
	}
}

func TestCheckOutWithoutCheckIn(t *testing.T) {
	svc := NewService(newFakeStore())
	if _, err := svc.CheckOut(context.Background(), testUser); !errors.Is(err, ErrNotCheckedIn) {
		t.Fatalf("expected ErrNotCheckedIn, got %v", err)
	}
}

func TestCheckOutPersistsAndRejectsSecond(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store)

	if _, err := svc.CheckIn(context.Background(), testUser); err != nil {
		t.Fatalf("check-in: %v", err)
	}
	rec, err := svc.CheckOut(context.Background(), testUser)
	if err != nil {
		t.Fatalf("check-out: %v", err)
	}
	if rec.CheckOut == nil {
		t.Fatal("check-out timestamp not set")
	}
	if store.checkOuts != 1 {
		t.Fatalf("expected the check-out to be persisted once, got %d writes", store.checkOuts)
	}

	if _, err := svc.CheckOut(context.Background(), testUser); !errors.Is(err, ErrAlreadyCheckedOut) {
		t.Fatalf("expected ErrAlreadyCheckedOut, got %v", err)
	}
}

func TestReportNoRecords(t *testing.T) {
	svc := NewService(newFakeStore())
	if _, err := svc.Report(context.Background(), testUser, "", ""); !errors.Is(err, ErrNoRecords) {
		t.Fatalf("expected ErrNoRecords, got %v", err)
	}
}

func TestReportDateRangeInclusive(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store)

	in := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	out := in.Add(8 * time.Hour)
	for _, date := range []string{"2024-03-01", "2024-03-02", "2024-03-05"} {
		ci, co := in, out
		store.records[testUser+"|"+date] = &Record{
			ID: "rec-" + date, UserID: testUser, Date: date,
			CheckIn: &ci, CheckOut: &co, Status: StatusPresent,
		}
	}

	rep, err := svc.Report(context.Background(), testUser, "2024-03-01", "2024-03-02")
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	if rep.TotalDays != 2 {
		t.Fatalf("expected 2 days inside range, got %d", rep.TotalDays)
	}
	if rep.TotalHours != "16.00" {
		t.Fatalf("expected 16.00 total hours, got %s", rep.TotalHours)
	}
}

func TestBuildReportHours(t *testing.T) {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	checkIn := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	checkOut := time.Date(2024, 3, 1, 17, 0, 0, 0, time.UTC)
	halfIn := time.Date(2024, 3, 2, 9, 0, 0, 0, time.UTC)
	halfOut := time.Date(2024, 3, 2, 13, 30, 0, 0, time.UTC)

	records := []Record{
		{Date: "2024-03-01", CheckIn: &checkIn, CheckOut: &checkOut, Status: StatusPresent},
		{Date: "2024-03-02", CheckIn: &halfIn, CheckOut: &halfOut, Status: StatusPresent},
		{Date: "2024-03-03", Status: StatusAbsent}, // never checked in
	}

	rep := buildReport(testUser, records, now)

	if got := rep.Report[0].HoursWorked; got != "8.00" {
		t.Errorf("expected 8.00 hours, got %s", got)
	}
	if got := rep.Report[1].HoursWorked; got != "4.50" {
		t.Errorf("expected 4.50 hours, got %s", got)
	}
	if got := rep.Report[2].HoursWorked; got != "0.00" {
		t.Errorf("expected 0.00 hours for missing check-in, got %s", got)
	}
	if rep.TotalDays != 3 {
		t.Errorf("expected 3 days, got %d", rep.TotalDays)
	}
	if rep.TotalHours != "12.50" {
		t.Errorf("expected 12.50 total hours, got %s", rep.TotalHours)
	}
}

func TestBuildReportOpenRecordUsesNow(t *testing.T) {
	checkIn := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	now := checkIn.Add(3 * time.Hour)

	rep := buildReport(testUser, []Record{{Date: "2024-03-01", CheckIn: &checkIn, Status: StatusPresent}}, now)
	if got := rep.Report[0].HoursWorked; got != "3.00" {
		t.Fatalf("expected 3.00 hours for open record, got %s", got)
	}
}
