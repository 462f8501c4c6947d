package leave

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

const requestColumns = "id, employee_id, leave_type, start_date, end_date, number_of_days, reason, status, admin_remarks, approved_by, approved_at, created_at"

func scanRequest(row pgx.Row, req *Request) error {
	return row.Scan(&req.ID, &req.EmployeeID, &req.LeaveType, &req.StartDate, &req.EndDate,
		&req.NumberOfDays, &req.Reason, &req.Status, &req.AdminRemarks, &req.ApprovedBy,
		&req.ApprovedAt, &req.CreatedAt)
}

func (s *Store) GetBalance(ctx context.Context, employeeID, leaveType string, year int) (Balance, error) {
	return s.getBalance(ctx, s.DB, employeeID, leaveType, year, false)
}

// BalanceForUpdateTx locks the ledger row for the rest of the transaction so
// submission checks and approval commits serialize per employee and type.
func (s *Store) BalanceForUpdateTx(ctx context.Context, tx pgx.Tx, employeeID, leaveType string, year int) (Balance, error) {
	return s.getBalance(ctx, tx, employeeID, leaveType, year, true)
}

func (s *Store) getBalance(ctx context.Context, q querier.Querier, employeeID, leaveType string, year int, lock bool) (Balance, error) {
	query := `
    SELECT id, employee_id, leave_type, year, total_allocated, used, remaining, updated_at
    FROM leave_balances
    WHERE employee_id = $1 AND leave_type = $2 AND year = $3
  `
	if lock {
		query += " FOR UPDATE"
	}
	var bal Balance
	err := q.QueryRow(ctx, query, employeeID, leaveType, year).Scan(&bal.ID, &bal.EmployeeID,
		&bal.LeaveType, &bal.Year, &bal.TotalAllocated, &bal.Used, &bal.Remaining, &bal.UpdatedAt)
	return bal, err
}

func (s *Store) ListBalances(ctx context.Context, employeeID string, year int) ([]Balance, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, employee_id, leave_type, year, total_allocated, used, remaining, updated_at
    FROM leave_balances
    WHERE employee_id = $1 AND year = $2
    ORDER BY leave_type
  `, employeeID, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var balances []Balance
	for rows.Next() {
		var bal Balance
		if err := rows.Scan(&bal.ID, &bal.EmployeeID, &bal.LeaveType, &bal.Year,
			&bal.TotalAllocated, &bal.Used, &bal.Remaining, &bal.UpdatedAt); err != nil {
			return nil, err
		}
		balances = append(balances, bal)
	}
	return balances, rows.Err()
}

// CommitBalanceTx applies an approved request's days to the ledger row, which
// must already be locked in this transaction. The WHERE clause re-checks
// sufficiency so two approvals cannot jointly overdraw the balance.
func (s *Store) CommitBalanceTx(ctx context.Context, tx pgx.Tx, employeeID, leaveType string, year int, days float64) (bool, error) {
	tag, err := tx.Exec(ctx, `
    UPDATE leave_balances
    SET used = used + $4, remaining = remaining - $4, updated_at = now()
    WHERE employee_id = $1 AND leave_type = $2 AND year = $3 AND remaining >= $4
  `, employeeID, leaveType, year, days)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

// ActiveRangesTx returns the date ranges of the employee's pending and
// approved requests, for overlap detection at submission time.
func (s *Store) ActiveRangesTx(ctx context.Context, tx pgx.Tx, employeeID string) ([]DateRange, error) {
	rows, err := tx.Query(ctx, `
    SELECT start_date, end_date
    FROM leave_requests
    WHERE employee_id = $1 AND status IN ($2, $3)
  `, employeeID, StatusPending, StatusApproved)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ranges []DateRange
	for rows.Next() {
		var r DateRange
		if err := rows.Scan(&r.Start, &r.End); err != nil {
			return nil, err
		}
		ranges = append(ranges, r)
	}
	return ranges, rows.Err()
}

func (s *Store) InsertRequestTx(ctx context.Context, tx pgx.Tx, req Request) (Request, error) {
	var out Request
	err := scanRequest(tx.QueryRow(ctx, `
    INSERT INTO leave_requests (employee_id, leave_type, start_date, end_date, number_of_days, reason, status)
    VALUES ($1, $2, $3, $4, $5, $6, $7)
    RETURNING `+requestColumns+`
  `, req.EmployeeID, req.LeaveType, req.StartDate, req.EndDate, req.NumberOfDays, req.Reason, StatusPending), &out)
	return out, err
}

func (s *Store) GetRequest(ctx context.Context, id string) (Request, error) {
	var req Request
	err := scanRequest(s.DB.QueryRow(ctx, `
    SELECT `+requestColumns+`
    FROM leave_requests
    WHERE id = $1
  `, id), &req)
	return req, err
}

func (s *Store) GetRequestForUpdateTx(ctx context.Context, tx pgx.Tx, id string) (Request, error) {
	var req Request
	err := scanRequest(tx.QueryRow(ctx, `
    SELECT `+requestColumns+`
    FROM leave_requests
    WHERE id = $1
    FOR UPDATE
  `, id), &req)
	return req, err
}

func (s *Store) DecideRequestTx(ctx context.Context, tx pgx.Tx, id, status, approverUserID, adminRemarks string) (Request, error) {
	var req Request
	err := scanRequest(tx.QueryRow(ctx, `
    UPDATE leave_requests
    SET status = $2, approved_by = $3, approved_at = now(), admin_remarks = $4
    WHERE id = $1
    RETURNING `+requestColumns+`
  `, id, status, approverUserID, adminRemarks), &req)
	return req, err
}

// DeleteRequest removes a still-pending request. Cancellation is a hard
// delete: nothing was reserved, so there is no ledger to unwind.
func (s *Store) DeleteRequest(ctx context.Context, id string) error {
	tag, err := s.DB.Exec(ctx, "DELETE FROM leave_requests WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (s *Store) History(ctx context.Context, filter HistoryFilter) (HistoryResult, error) {
	where := " WHERE status <> $1"
	args := []any{StatusPending}

	if filter.EmployeeID != "" {
		args = append(args, filter.EmployeeID)
		where += fmt.Sprintf(" AND employee_id = $%d", len(args))
	}
	if filter.Year != 0 {
		args = append(args, filter.Year)
		where += fmt.Sprintf(" AND EXTRACT(YEAR FROM start_date) = $%d", len(args))
	}

	var total int
	if err := s.DB.QueryRow(ctx, "SELECT COUNT(1) FROM leave_requests"+where, args...).Scan(&total); err != nil {
		return HistoryResult{}, err
	}

	query := "SELECT " + requestColumns + " FROM leave_requests" + where + " ORDER BY created_at DESC"
	args = append(args, filter.Limit, filter.Offset)
	query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return HistoryResult{}, err
	}
	defer rows.Close()

	result := HistoryResult{Total: total}
	for rows.Next() {
		var req Request
		if err := rows.Scan(&req.ID, &req.EmployeeID, &req.LeaveType, &req.StartDate, &req.EndDate,
			&req.NumberOfDays, &req.Reason, &req.Status, &req.AdminRemarks, &req.ApprovedBy,
			&req.ApprovedAt, &req.CreatedAt); err != nil {
			return HistoryResult{}, err
		}
		result.Requests = append(result.Requests, req)
	}
	return result, rows.Err()
}
