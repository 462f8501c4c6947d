package salary

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/KHILANO5/HRMS-sub001/internal/platform/querier"
)

type Store struct {
	DB querier.Querier
}

func NewStore(db querier.Querier) *Store {
	return &Store{DB: db}
}

const structureColumns = "id, employee_id, basic_salary, allowances, deductions, effective_from, updated_at"

func scanStructure(row pgx.Row, st *Structure) error {
	return row.Scan(&st.ID, &st.EmployeeID, &st.BasicSalary, &st.Allowances,
		&st.Deductions, &st.EffectiveFrom, &st.UpdatedAt)
}

func (s *Store) GetByEmployee(ctx context.Context, employeeID string) (Structure, error) {
	var st Structure
	err := scanStructure(s.DB.QueryRow(ctx, `
    SELECT `+structureColumns+`
    FROM salary_structures
    WHERE employee_id = $1
  `, employeeID), &st)
	return st, err
}

// Upsert is last-write-wins at the row level; one structure per employee.
func (s *Store) Upsert(ctx context.Context, params UpsertParams) (Structure, error) {
	var st Structure
	err := scanStructure(s.DB.QueryRow(ctx, `
    INSERT INTO salary_structures (employee_id, basic_salary, allowances, deductions, effective_from)
    VALUES ($1, $2, $3, $4, $5)
    ON CONFLICT (employee_id) DO UPDATE
    SET basic_salary = EXCLUDED.basic_salary,
        allowances = EXCLUDED.allowances,
        deductions = EXCLUDED.deductions,
        effective_from = EXCLUDED.effective_from,
        updated_at = now()
    RETURNING `+structureColumns+`
  `, params.EmployeeID, params.BasicSalary, params.Allowances, params.Deductions, params.EffectiveFrom), &st)
	return st, err
}
