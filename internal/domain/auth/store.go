package auth

import (
	"context"

	"github.com/KHILANO5/HRMS-sub001/internal/platform/querier"
)

type AuthUser struct {
	ID           string
	Email        string
	PasswordHash string
	Role         string
	EmployeeID   string
}

type Store struct {
	DB querier.Querier
}

func NewStore(db querier.Querier) *Store {
	return &Store{DB: db}
}

func (s *Store) FindUserByEmail(ctx context.Context, email string) (AuthUser, error) {
	var user AuthUser
	var employeeID *string
	err := s.DB.QueryRow(ctx, `
    SELECT id, email, password_hash, role, employee_id
    FROM users
    WHERE email = $1
  `, email).Scan(&user.ID, &user.Email, &user.PasswordHash, &user.Role, &employeeID)
	if err != nil {
		return AuthUser{}, err
	}
	if employeeID != nil {
		user.EmployeeID = *employeeID
	}
	return user, nil
}

func (s *Store) CreateUser(ctx context.Context, email, passwordHash, role, employeeID string) (string, error) {
	var id string
	var empRef any
	if employeeID != "" {
		empRef = employeeID
	}
	err := s.DB.QueryRow(ctx, `
    INSERT INTO users (email, password_hash, role, employee_id)
    VALUES ($1, $2, $3, $4)
    RETURNING id
  `, email, passwordHash, role, empRef).Scan(&id)
	return id, err
}
