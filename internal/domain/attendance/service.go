package attendance

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrAlreadyCheckedIn  = errors.New("already checked in today")
	ErrMustCheckInFirst  = errors.New("must check in before checking out")
	ErrAlreadyCheckedOut = errors.New("already checked out today")
	ErrInvalidCheckOut   = errors.New("check-out must be after check-in")
)

type Rules struct {
	CutoffHour    int
	CutoffMinute  int
	StandardHours float64
}

type Service struct {
	Store *Store
	Rules Rules

	now func() time.Time
}

func NewService(store *Store, rules Rules) *Service {
	return &Service{Store: store, Rules: rules, now: time.Now}
}

func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// CheckIn creates the day's record. The effective time is the caller's, or
// the wall clock when none is supplied; the day is derived from it.
func (s *Service) CheckIn(ctx context.Context, employeeID string, at *time.Time, remarks string) (CheckInResult, error) {
	effective := s.now()
	if at != nil {
		effective = *at
	}
	day := dateOf(effective)

	late := IsLate(effective, s.Rules.CutoffHour, s.Rules.CutoffMinute)
	if late {
		remarks = LateRemarks(remarks)
	}

	rec, err := s.Store.Insert(ctx, employeeID, day, effective, strings.TrimSpace(remarks))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return CheckInResult{}, ErrAlreadyCheckedIn
		}
		return CheckInResult{}, err
	}

	return CheckInResult{
		AttendanceID: rec.ID,
		CheckInTime:  effective,
		IsLate:       late,
		Status:       rec.Status,
	}, nil
}

// CheckOut fills the derived fields on the day's record. Remarks are only
// overwritten when the caller supplies new ones.
func (s *Service) CheckOut(ctx context.Context, employeeID string, at *time.Time, remarks string) (CheckOutResult, error) {
	effective := s.now()
	if at != nil {
		effective = *at
	}
	day := dateOf(effective)

	rec, err := s.Store.GetByDay(ctx, employeeID, day)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return CheckOutResult{}, ErrMustCheckInFirst
		}
		return CheckOutResult{}, err
	}
	if rec.CheckOutTime != nil {
		return CheckOutResult{}, ErrAlreadyCheckedOut
	}
	if rec.CheckInTime == nil {
		return CheckOutResult{}, ErrMustCheckInFirst
	}
	// Caller-supplied times could otherwise persist a negative span.
	if !effective.After(*rec.CheckInTime) {
		return CheckOutResult{}, ErrInvalidCheckOut
	}

	workHours := WorkHours(*rec.CheckInTime, effective)
	extraHours := ExtraHours(workHours, s.Rules.StandardHours)

	var newRemarks *string
	if trimmed := strings.TrimSpace(remarks); trimmed != "" {
		newRemarks = &trimmed
	}

	if _, err := s.Store.SetCheckOut(ctx, rec.ID, effective, workHours, extraHours, newRemarks); err != nil {
		return CheckOutResult{}, err
	}

	return CheckOutResult{
		CheckInTime:  *rec.CheckInTime,
		CheckOutTime: effective,
		WorkHours:    workHours,
		ExtraHours:   extraHours,
	}, nil
}

func (s *Service) List(ctx context.Context, filter ListFilter) (ListResult, error) {
	if filter.Limit <= 0 {
		filter.Limit = 31
	}
	records, total, err := s.Store.List(ctx, filter)
	if err != nil {
		return ListResult{}, err
	}
	return ListResult{Records: records, Total: total, Summary: Summarize(records)}, nil
}

// MonthSummary reduces one employee-month, for payslips and dashboards.
func (s *Service) MonthSummary(ctx context.Context, employeeID string, year int, month time.Month) (Summary, error) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, -1)
	records, err := s.Store.ListRange(ctx, employeeID, start, end)
	if err != nil {
		return Summary{}, err
	}
	return Summarize(records), nil
}
