package leave

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
)

type Service struct {
	Store *Store

	now func() time.Time
}

func NewService(store *Store) *Service {
	return &Service{Store: store, now: time.Now}
}

// CreateRequest runs the submission sequence inside one transaction holding a
// row lock on the employee's ledger row: sufficiency check, overlap check,
// pending insert. No days are reserved until an admin approves.
func (s *Service) CreateRequest(ctx context.Context, employeeID, leaveType string, startDate, endDate time.Time, reason string) (Request, error) {
	days, err := CalculateDays(startDate, endDate)
	if err != nil {
		return Request{}, err
	}

	tx, err := s.Store.DB.Begin(ctx)
	if err != nil {
		return Request{}, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	year := s.now().Year()
	bal, err := s.Store.BalanceForUpdateTx(ctx, tx, employeeID, leaveType, year)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Request{}, ErrInsufficientBalance
		}
		return Request{}, err
	}
	if bal.Remaining < float64(days) {
		return Request{}, ErrInsufficientBalance
	}

	existing, err := s.Store.ActiveRangesTx(ctx, tx, employeeID)
	if err != nil {
		return Request{}, err
	}
	if Overlaps(DateRange{Start: startDate, End: endDate}, existing) {
		return Request{}, ErrOverlapConflict
	}

	req, err := s.Store.InsertRequestTx(ctx, tx, Request{
		EmployeeID:   employeeID,
		LeaveType:    leaveType,
		StartDate:    startDate,
		EndDate:      endDate,
		NumberOfDays: days,
		Reason:       reason,
	})
	if err != nil {
		return Request{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return Request{}, err
	}
	return req, nil
}

// Decide moves a pending request to its terminal state. Approval commits the
// days against the ledger row for the year current at decision time, not the
// leave's own year; a request decided after the year boundary draws from the
// new year's row. The status write and the ledger commit share a transaction.
func (s *Service) Decide(ctx context.Context, requestID, approverUserID, status, adminRemarks string) (Request, error) {
	tx, err := s.Store.DB.Begin(ctx)
	if err != nil {
		return Request{}, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	req, err := s.Store.GetRequestForUpdateTx(ctx, tx, requestID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Request{}, ErrNotFound
		}
		return Request{}, err
	}
	if err := ValidateDecision(req.Status, status); err != nil {
		return Request{}, err
	}

	updated, err := s.Store.DecideRequestTx(ctx, tx, requestID, status, approverUserID, adminRemarks)
	if err != nil {
		return Request{}, err
	}

	if status == StatusApproved {
		year := s.now().Year()
		if _, err := s.Store.BalanceForUpdateTx(ctx, tx, req.EmployeeID, req.LeaveType, year); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return Request{}, ErrBalanceNotFound
			}
			return Request{}, err
		}
		committed, err := s.Store.CommitBalanceTx(ctx, tx, req.EmployeeID, req.LeaveType, year, float64(req.NumberOfDays))
		if err != nil {
			return Request{}, err
		}
		if !committed {
			// Sufficiency was only checked at submission; another approval may
			// have drained the balance since.
			return Request{}, ErrInsufficientBalance
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return Request{}, err
	}
	return updated, nil
}

// Cancel deletes a still-pending request. Only the owning employee may cancel,
// and nothing touches the ledger because submission reserved nothing.
func (s *Service) Cancel(ctx context.Context, requestID, actorEmployeeID string) error {
	req, err := s.Store.GetRequest(ctx, requestID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	if req.EmployeeID != actorEmployeeID {
		return ErrForbidden
	}
	if req.Status != StatusPending {
		return ErrInvalidState
	}
	if err := s.Store.DeleteRequest(ctx, requestID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func (s *Service) GetBalance(ctx context.Context, employeeID, leaveType string, year int) (Balance, error) {
	if year == 0 {
		year = s.now().Year()
	}
	bal, err := s.Store.GetBalance(ctx, employeeID, leaveType, year)
	if errors.Is(err, pgx.ErrNoRows) {
		return Balance{}, ErrBalanceNotFound
	}
	return bal, err
}

func (s *Service) Balances(ctx context.Context, employeeID string, year int) ([]Balance, error) {
	if year == 0 {
		year = s.now().Year()
	}
	balances, err := s.Store.ListBalances(ctx, employeeID, year)
	if err != nil {
		return nil, err
	}
	if len(balances) == 0 {
		return nil, ErrBalanceNotFound
	}
	return balances, nil
}

func (s *Service) GetRequest(ctx context.Context, requestID string) (Request, error) {
	req, err := s.Store.GetRequest(ctx, requestID)
	if errors.Is(err, pgx.ErrNoRows) {
		return Request{}, ErrNotFound
	}
	return req, err
}

// History lists terminal requests, optionally scoped to the calendar year of
// their start date.
func (s *Service) History(ctx context.Context, filter HistoryFilter) (HistoryResult, error) {
	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	return s.Store.History(ctx, filter)
}
