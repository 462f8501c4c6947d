package attendance

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/KHILANO5/HRMS-sub001/internal/platform/querier"
)

type Store struct {
	DB querier.Querier
}

func NewStore(db querier.Querier) *Store {
	return &Store{DB: db}
}

const recordColumns = "id, employee_id, attendance_date, check_in_time, check_out_time, work_hours, extra_hours, status, remarks, created_at, updated_at"

func scanRecord(row pgx.Row, rec *Record) error {
	return row.Scan(&rec.ID, &rec.EmployeeID, &rec.AttendanceDate, &rec.CheckInTime,
		&rec.CheckOutTime, &rec.WorkHours, &rec.ExtraHours, &rec.Status, &rec.Remarks,
		&rec.CreatedAt, &rec.UpdatedAt)
}

func (s *Store) GetByDay(ctx context.Context, employeeID string, day time.Time) (Record, error) {
	var rec Record
	err := scanRecord(s.DB.QueryRow(ctx, `
    SELECT `+recordColumns+`
    FROM attendance
    WHERE employee_id = $1 AND attendance_date = $2
  `, employeeID, day), &rec)
	return rec, err
}

// Insert relies on the unique (employee_id, attendance_date) constraint to
// serialize simultaneous check-ins; the loser gets a 23505 back.
func (s *Store) Insert(ctx context.Context, employeeID string, day time.Time, checkIn time.Time, remarks string) (Record, error) {
	var rec Record
	err := scanRecord(s.DB.QueryRow(ctx, `
    INSERT INTO attendance (employee_id, attendance_date, check_in_time, status, remarks)
    VALUES ($1, $2, $3, $4, $5)
    RETURNING `+recordColumns+`
  `, employeeID, day, checkIn, StatusPresent, remarks), &rec)
	return rec, err
}

func (s *Store) SetCheckOut(ctx context.Context, id string, checkOut time.Time, workHours, extraHours float64, remarks *string) (Record, error) {
	var rec Record
	err := scanRecord(s.DB.QueryRow(ctx, `
    UPDATE attendance
    SET check_out_time = $2,
        work_hours = $3,
        extra_hours = $4,
        remarks = COALESCE($5, remarks),
        updated_at = now()
    WHERE id = $1
    RETURNING `+recordColumns+`
  `, id, checkOut, workHours, extraHours, remarks), &rec)
	return rec, err
}

func (s *Store) List(ctx context.Context, filter ListFilter) ([]Record, int, error) {
	where := " WHERE 1=1"
	var args []any

	if filter.EmployeeID != "" {
		args = append(args, filter.EmployeeID)
		where += fmt.Sprintf(" AND employee_id = $%d", len(args))
	}
	if !filter.StartDate.IsZero() {
		args = append(args, filter.StartDate)
		where += fmt.Sprintf(" AND attendance_date >= $%d", len(args))
	}
	if !filter.EndDate.IsZero() {
		args = append(args, filter.EndDate)
		where += fmt.Sprintf(" AND attendance_date <= $%d", len(args))
	}

	var total int
	if err := s.DB.QueryRow(ctx, "SELECT COUNT(1) FROM attendance"+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := "SELECT " + recordColumns + " FROM attendance" + where + " ORDER BY attendance_date DESC, employee_id"
	args = append(args, filter.Limit, filter.Offset)
	query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var rec Record
		if err := rows.Scan(&rec.ID, &rec.EmployeeID, &rec.AttendanceDate, &rec.CheckInTime,
			&rec.CheckOutTime, &rec.WorkHours, &rec.ExtraHours, &rec.Status, &rec.Remarks,
			&rec.CreatedAt, &rec.UpdatedAt); err != nil {
			return nil, 0, err
		}
		records = append(records, rec)
	}
	return records, total, rows.Err()
}

// ListRange returns every matching record without pagination, for summary
// reductions over a filtered set.
func (s *Store) ListRange(ctx context.Context, employeeID string, start, end time.Time) ([]Record, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT `+recordColumns+`
    FROM attendance
    WHERE employee_id = $1 AND attendance_date >= $2 AND attendance_date <= $3
    ORDER BY attendance_date
  `, employeeID, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var rec Record
		if err := rows.Scan(&rec.ID, &rec.EmployeeID, &rec.AttendanceDate, &rec.CheckInTime,
			&rec.CheckOutTime, &rec.WorkHours, &rec.ExtraHours, &rec.Status, &rec.Remarks,
			&rec.CreatedAt, &rec.UpdatedAt); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
