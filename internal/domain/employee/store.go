package employee

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/KHILANO5/HRMS-sub001/internal/platform/querier"
)

type Store struct {
	DB querier.Beginner
}

func NewStore(db querier.Beginner) *Store {
	return &Store{DB: db}
}

func scanEmployee(row pgx.Row, emp *Employee) error {
	return row.Scan(&emp.ID, &emp.Code, &emp.FirstName, &emp.LastName, &emp.Department,
		&emp.Designation, &emp.JoinDate, &emp.IsActive, &emp.CreatedAt, &emp.UpdatedAt)
}

const employeeColumns = "id, code, first_name, last_name, department, designation, join_date, is_active, created_at, updated_at"

func (s *Store) Get(ctx context.Context, id string) (Employee, error) {
	var emp Employee
	err := scanEmployee(s.DB.QueryRow(ctx, `
    SELECT `+employeeColumns+`
    FROM employees
    WHERE id = $1
  `, id), &emp)
	return emp, err
}

func (s *Store) GetByCode(ctx context.Context, code string) (Employee, error) {
	var emp Employee
	err := scanEmployee(s.DB.QueryRow(ctx, `
    SELECT `+employeeColumns+`
    FROM employees
    WHERE code = $1
  `, code), &emp)
	return emp, err
}

func (s *Store) List(ctx context.Context, filter ListFilter) ([]Employee, int, error) {
	query := "SELECT " + employeeColumns + " FROM employees WHERE 1=1"
	countQuery := "SELECT COUNT(1) FROM employees WHERE 1=1"
	var args []any

	if filter.Department != "" {
		args = append(args, filter.Department)
		clause := " AND department = $1"
		query += clause
		countQuery += clause
	}
	if filter.ActiveOnly {
		query += " AND is_active"
		countQuery += " AND is_active"
	}

	var total int
	if err := s.DB.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query += " ORDER BY code"
	limitPos := len(args) + 1
	offsetPos := len(args) + 2
	query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", limitPos, offsetPos)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var employees []Employee
	for rows.Next() {
		var emp Employee
		if err := scanEmployee(rows, &emp); err != nil {
			return nil, 0, err
		}
		employees = append(employees, emp)
	}
	return employees, total, rows.Err()
}

func (s *Store) Update(ctx context.Context, id string, params UpdateParams) error {
	tag, err := s.DB.Exec(ctx, `
    UPDATE employees
    SET first_name = $2, last_name = $3, department = $4, designation = $5, updated_at = now()
    WHERE id = $1
  `, id, params.FirstName, params.LastName, params.Department, params.Designation)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// Deactivate soft-deletes: rows referencing the employee stay valid.
func (s *Store) Deactivate(ctx context.Context, id string) error {
	tag, err := s.DB.Exec(ctx, `
    UPDATE employees
    SET is_active = FALSE, updated_at = now()
    WHERE id = $1
  `, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (s *Store) insertTx(ctx context.Context, tx pgx.Tx, params CreateParams) (Employee, error) {
	var emp Employee
	err := scanEmployee(tx.QueryRow(ctx, `
    INSERT INTO employees (code, first_name, last_name, department, designation, join_date)
    VALUES ($1, $2, $3, $4, $5, $6)
    RETURNING `+employeeColumns+`
  `, params.Code, params.FirstName, params.LastName, params.Department, params.Designation, params.JoinDate), &emp)
	return emp, err
}

func (s *Store) seedBalanceTx(ctx context.Context, tx pgx.Tx, employeeID, leaveType string, year int, allocated float64) error {
	_, err := tx.Exec(ctx, `
    INSERT INTO leave_balances (employee_id, leave_type, year, total_allocated, used, remaining)
    VALUES ($1, $2, $3, $4, 0, $4)
  `, employeeID, leaveType, year, allocated)
	return err
}

func (s *Store) createUserTx(ctx context.Context, tx pgx.Tx, email, passwordHash, role, employeeID string) error {
	_, err := tx.Exec(ctx, `
    INSERT INTO users (email, password_hash, role, employee_id)
    VALUES ($1, $2, $3, $4)
  `, email, passwordHash, role, employeeID)
	return err
}
