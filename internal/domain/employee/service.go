package employee

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/KHILANO5/HRMS-sub001/internal/domain/auth"
	"github.com/KHILANO5/HRMS-sub001/internal/domain/leave"
)

var (
	ErrNotFound  = errors.New("employee not found")
	ErrDuplicate = errors.New("employee code or email already in use")
)

type Service struct {
	Store *Store

	// Ledger defaults seeded once per employee per leave type at onboarding,
	// for the current calendar year only.
	PaidLeaveDefault float64
	SickLeaveDefault float64
}

func NewService(store *Store, paidDefault, sickDefault float64) *Service {
	return &Service{Store: store, PaidLeaveDefault: paidDefault, SickLeaveDefault: sickDefault}
}

// Create onboards an employee: the employee row, both leave ledger rows for
// the current year, and an optional login account, in one transaction.
func (s *Service) Create(ctx context.Context, params CreateParams) (Employee, error) {
	tx, err := s.Store.DB.Begin(ctx)
	if err != nil {
		return Employee{}, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	emp, err := s.Store.insertTx(ctx, tx, params)
	if err != nil {
		return Employee{}, translateConflict(err)
	}

	year := time.Now().Year()
	if err := s.Store.seedBalanceTx(ctx, tx, emp.ID, leave.TypePaid, year, s.PaidLeaveDefault); err != nil {
		return Employee{}, err
	}
	if err := s.Store.seedBalanceTx(ctx, tx, emp.ID, leave.TypeSick, year, s.SickLeaveDefault); err != nil {
		return Employee{}, err
	}

	if strings.TrimSpace(params.Email) != "" {
		hash, err := auth.HashPassword(params.Password)
		if err != nil {
			return Employee{}, err
		}
		if err := s.Store.createUserTx(ctx, tx, params.Email, hash, auth.RoleEmployee, emp.ID); err != nil {
			return Employee{}, translateConflict(err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return Employee{}, err
	}
	return emp, nil
}

func (s *Service) Get(ctx context.Context, id string) (Employee, error) {
	emp, err := s.Store.Get(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return Employee{}, ErrNotFound
	}
	return emp, err
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]Employee, int, error) {
	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	return s.Store.List(ctx, filter)
}

func (s *Service) Update(ctx context.Context, id string, params UpdateParams) (Employee, error) {
	if err := s.Store.Update(ctx, id, params); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Employee{}, ErrNotFound
		}
		return Employee{}, err
	}
	return s.Store.Get(ctx, id)
}

func (s *Service) Deactivate(ctx context.Context, id string) error {
	err := s.Store.Deactivate(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

func translateConflict(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrDuplicate
	}
	return err
}
