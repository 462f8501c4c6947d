package reports

import (
	"context"
	"time"

	"github.com/KHILANO5/HRMS-sub001/internal/domain/attendance"
	"github.com/KHILANO5/HRMS-sub001/internal/domain/leave"
	"github.com/KHILANO5/HRMS-sub001/internal/platform/querier"
)

type Store struct {
	DB querier.Querier
}

func NewStore(db querier.Querier) *Store {
	return &Store{DB: db}
}

func (s *Store) ActiveHeadcount(ctx context.Context) (int, error) {
	var count int
	err := s.DB.QueryRow(ctx, "SELECT COUNT(1) FROM employees WHERE is_active").Scan(&count)
	return count, err
}

func (s *Store) PresentCount(ctx context.Context, day time.Time) (int, error) {
	var count int
	err := s.DB.QueryRow(ctx, "SELECT COUNT(1) FROM attendance WHERE attendance_date = $1 AND status = $2",
		day, attendance.StatusPresent).Scan(&count)
	return count, err
}

func (s *Store) LateCount(ctx context.Context, day time.Time) (int, error) {
	var count int
	err := s.DB.QueryRow(ctx, "SELECT COUNT(1) FROM attendance WHERE attendance_date = $1 AND remarks LIKE $2",
		day, attendance.LateRemarkPrefix+"%").Scan(&count)
	return count, err
}

func (s *Store) PendingLeaveCount(ctx context.Context) (int, error) {
	var count int
	err := s.DB.QueryRow(ctx, "SELECT COUNT(1) FROM leave_requests WHERE status = $1",
		leave.StatusPending).Scan(&count)
	return count, err
}

func (s *Store) OnLeaveCount(ctx context.Context, day time.Time) (int, error) {
	var count int
	err := s.DB.QueryRow(ctx, `
    SELECT COUNT(DISTINCT employee_id)
    FROM leave_requests
    WHERE status = $1 AND start_date <= $2 AND end_date >= $2
  `, leave.StatusApproved, day).Scan(&count)
	return count, err
}

func (s *Store) MonthHours(ctx context.Context, start, end time.Time) (float64, float64, error) {
	var work, extra float64
	err := s.DB.QueryRow(ctx, `
    SELECT COALESCE(SUM(work_hours), 0), COALESCE(SUM(extra_hours), 0)
    FROM attendance
    WHERE attendance_date >= $1 AND attendance_date <= $2
  `, start, end).Scan(&work, &extra)
	return work, extra, err
}
